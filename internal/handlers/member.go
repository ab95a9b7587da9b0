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

type AddMemberRequest struct {
	UserID       uint    `json:"user_id"`
	Role         string  `json:"role"`
	Contribution *string `json:"contribution"`
}

type UpdateMemberRequest struct {
	Role         string  `json:"role"`
	Contribution *string `json:"contribution"`
}

// MemberRow is the admin view of a membership, joined with the user.
type MemberRow struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"user_id"`
	Username     string  `json:"username"`
	Name         *string `json:"name"`
	Role         string  `json:"role"`
	Contribution *string `json:"contribution"`
}

func ListMembers(ctx *gin.Context) {
	var members []MemberRow

	err := db.DB.Table("project_members pm").
		Select("pm.id, pm.user_id, u.username, u.name, pm.role, pm.contribution").
		Joins("JOIN users u ON pm.user_id = u.id").
		Where("pm.project_id = ?", ctx.Param("id")).
		Scan(&members).Error

	if err != nil {
		logger.Error().Err(err).Msg("failed to list project members")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if members == nil {
		members = []MemberRow{}
	}

	ctx.JSON(http.StatusOK, gin.H{"members": members})
}

// AddMember attaches a user to a project. The (project, user) pair is
// unique; a duplicate insert is rejected by the store.
func AddMember(ctx *gin.Context) {
	var body AddMemberRequest

	if err := ctx.BindJSON(&body); err != nil || body.UserID == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
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

	role := body.Role
	if role == "" {
		role = "contributor"
	}

	member := models.ProjectMember{
		ProjectID:    project.ID,
		UserID:       body.UserID,
		Role:         role,
		Contribution: body.Contribution,
	}

	if err := db.DB.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Already a member"})
			return
		}
		logger.Error().Err(err).Msg("failed to add project member")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

// UpdateMember overwrites role and contribution; an empty role falls
// back to "contributor".
func UpdateMember(ctx *gin.Context) {
	var body UpdateMemberRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing"})
		return
	}

	var member models.ProjectMember

	if err := db.DB.Where("id = ?", ctx.Param("member_id")).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		} else {
			logger.Error().Err(err).Msg("failed to fetch project member")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	role := body.Role
	if role == "" {
		role = "contributor"
	}

	updates := map[string]interface{}{
		"role":         role,
		"contribution": body.Contribution,
	}

	if err := db.DB.Model(&member).Updates(updates).Error; err != nil {
		logger.Error().Err(err).Msg("failed to update project member")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}

func RemoveMember(ctx *gin.Context) {
	if err := db.DB.Delete(&models.ProjectMember{}, "id = ?", ctx.Param("member_id")).Error; err != nil {
		logger.Error().Err(err).Msg("failed to remove project member")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
