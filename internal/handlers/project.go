package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/showfolio-dev/showfolio/db"
	"github.com/showfolio-dev/showfolio/internal/models"
	"github.com/showfolio-dev/showfolio/pkg/logger"
	"gorm.io/gorm"
)

type ProjectRequest struct {
	Title        string `json:"title" binding:"required"`
	Slug         string `json:"slug" binding:"required"`
	Description  string `json:"description"`
	Content      string `json:"content"`
	ReleaseNotes string `json:"release_notes"`
	SiteURL      string `json:"site_url"`
	GithubURL    string `json:"github_url"`
	Published    bool   `json:"published"`
}

type ProjectSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// ProjectMemberInfo is the public roster entry for a project page.
type ProjectMemberInfo struct {
	ID           uint    `json:"id"`
	Username     string  `json:"username"`
	Name         *string `json:"name"`
	Bio          *string `json:"bio"`
	Role         string  `json:"role"`
	Contribution *string `json:"contribution"`
}

// ListPublishedProjects returns the public catalog: published
// projects only, newest first, without content bodies.
func ListPublishedProjects(ctx *gin.Context) {
	var projects []ProjectSummary

	err := db.DB.Model(&models.Project{}).
		Select("id, title, slug, description").
		Where("published = ?", true).
		Order("created_at DESC").
		Scan(&projects).Error

	if err != nil {
		logger.Error().Err(err).Msg("failed to list published projects")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if projects == nil {
		projects = []ProjectSummary{}
	}

	ctx.JSON(http.StatusOK, gin.H{"projects": projects})
}

// GetPublishedProject returns the full record plus the member roster.
// Unpublished projects are indistinguishable from missing ones.
func GetPublishedProject(ctx *gin.Context) {
	var project models.Project

	err := db.DB.Where("slug = ? AND published = ?", ctx.Param("slug"), true).First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		} else {
			logger.Error().Err(err).Msg("failed to fetch project")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var members []ProjectMemberInfo

	err = db.DB.Table("project_members pm").
		Select("u.id, u.username, u.name, u.bio, pm.role, pm.contribution").
		Joins("JOIN users u ON pm.user_id = u.id").
		Where("pm.project_id = ?", project.ID).
		Scan(&members).Error

	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch project members")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if members == nil {
		members = []ProjectMemberInfo{}
	}

	ctx.JSON(http.StatusOK, gin.H{"project": project, "members": members})
}

// AdminListProjects returns every project regardless of publish state.
func AdminListProjects(ctx *gin.Context) {
	var projects []models.Project

	if err := db.DB.Order("created_at DESC").Find(&projects).Error; err != nil {
		logger.Error().Err(err).Msg("failed to list projects")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"projects": projects})
}

func AdminCreateProject(ctx *gin.Context) {
	var body ProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing"})
		return
	}

	project := models.Project{
		Title:        body.Title,
		Slug:         body.Slug,
		Description:  body.Description,
		Content:      body.Content,
		ReleaseNotes: body.ReleaseNotes,
		SiteURL:      body.SiteURL,
		GithubURL:    body.GithubURL,
		Published:    body.Published,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Slug exists"})
			return
		}
		logger.Error().Err(err).Msg("failed to create project")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": project.ID})
}

// AdminUpdateProject overwrites every field and stamps updated_at.
func AdminUpdateProject(ctx *gin.Context) {
	var body ProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing"})
		return
	}

	var project models.Project

	if err := db.DB.Where("id = ?", ctx.Param("id")).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		} else {
			logger.Error().Err(err).Msg("failed to fetch project")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	project.Title = body.Title
	project.Slug = body.Slug
	project.Description = body.Description
	project.Content = body.Content
	project.ReleaseNotes = body.ReleaseNotes
	project.SiteURL = body.SiteURL
	project.GithubURL = body.GithubURL
	project.Published = body.Published

	if err := db.DB.Save(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Slug exists"})
			return
		}
		logger.Error().Err(err).Msg("failed to update project")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// AdminDeleteProject removes the project; membership rows cascade.
func AdminDeleteProject(ctx *gin.Context) {
	var project models.Project

	if err := db.DB.Where("id = ?", ctx.Param("id")).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		} else {
			logger.Error().Err(err).Msg("failed to fetch project")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DB.Delete(&project).Error; err != nil {
		logger.Error().Err(err).Msg("failed to delete project")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
