package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/showfolio-dev/showfolio/internal/config"
	"github.com/showfolio-dev/showfolio/internal/handlers"
	"github.com/showfolio-dev/showfolio/internal/middleware"
	"github.com/showfolio-dev/showfolio/internal/types"
	"github.com/showfolio-dev/showfolio/pkg/logger"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(logger.GinLogger(), logger.GinRecovery())

	origins := append([]string{}, types.DefaultOrigins...)
	origins = append(origins, cfg.Server.AllowedOrigins...)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.GET("/me", handlers.Me)
		api.POST("/login", handlers.Login)
		api.POST("/logout", handlers.Logout)
		api.POST("/register", handlers.Register)

		api.GET("/projects", handlers.ListPublishedProjects)
		api.GET("/projects/:slug", handlers.GetPublishedProject)

		users := api.Group("/users")
		{
			users.GET("/me", middleware.RequireLogin(), handlers.GetSelf)
			users.PUT("/me", middleware.RequireLogin(), handlers.UpdateSelf)
			users.GET("/:username", handlers.GetPublicProfile)
			users.GET("", middleware.RequireLogin(), middleware.RequireOwner(), handlers.ListUsers)
		}

		codes := api.Group("/codes", middleware.RequireLogin(), middleware.RequireOwner())
		{
			codes.GET("", handlers.ListCodes)
			codes.POST("", handlers.GenerateCodes)
			codes.DELETE("/:code", handlers.DeleteCode)
		}

		admin := api.Group("/admin", middleware.RequireLogin(), middleware.RequireOwner())
		{
			admin.GET("/projects", handlers.AdminListProjects)
			admin.POST("/projects", handlers.AdminCreateProject)
			admin.PUT("/projects/:id", handlers.AdminUpdateProject)
			admin.DELETE("/projects/:id", handlers.AdminDeleteProject)

			admin.GET("/projects/:id/members", handlers.ListMembers)
			admin.POST("/projects/:id/members", handlers.AddMember)
			admin.PUT("/projects/:id/members/:member_id", handlers.UpdateMember)
			admin.DELETE("/projects/:id/members/:member_id", handlers.RemoveMember)

			admin.GET("/users", handlers.AdminListUsers)
		}
	}

	return r
}
