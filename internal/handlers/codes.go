package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/showfolio-dev/showfolio/db"
	"github.com/showfolio-dev/showfolio/internal/middleware"
	"github.com/showfolio-dev/showfolio/internal/models"
	"github.com/showfolio-dev/showfolio/pkg/logger"
)

type GenerateCodesRequest struct {
	Count int `json:"count"`
}

type CodeResponse struct {
	Code      string     `json:"code"`
	Used      bool       `json:"used"`
	CreatedAt time.Time  `json:"created_at"`
	UsedAt    *time.Time `json:"used_at"`
}

func ListCodes(ctx *gin.Context) {
	var codes []models.InviteCode

	if err := db.DB.Order("created_at DESC").Find(&codes).Error; err != nil {
		logger.Error().Err(err).Msg("failed to list invite codes")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]CodeResponse, 0, len(codes))

	for _, code := range codes {
		response = append(response, CodeResponse{
			Code:      code.Code,
			Used:      code.Used,
			CreatedAt: code.CreatedAt,
			UsedAt:    code.UsedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"codes": response})
}

// GenerateCodes inserts count unused codes attributed to the calling
// owner and returns them. count defaults to 1.
func GenerateCodes(ctx *gin.Context) {
	session, err := middleware.CurrentSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body GenerateCodesRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing"})
		return
	}

	n := body.Count
	if n < 1 {
		n = 1
	}

	created := make([]string, 0, n)

	for i := 0; i < n; i++ {
		code := models.InviteCode{
			Code:      uuid.NewString(),
			CreatedBy: session.UserID,
		}

		if err := db.DB.Create(&code).Error; err != nil {
			logger.Error().Err(err).Msg("failed to create invite code")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		created = append(created, code.Code)
	}

	ctx.JSON(http.StatusOK, gin.H{"created": created})
}

// DeleteCode removes a code regardless of its used state.
func DeleteCode(ctx *gin.Context) {
	code := ctx.Param("code")

	if err := db.DB.Delete(&models.InviteCode{}, "code = ?", code).Error; err != nil {
		logger.Error().Err(err).Msg("failed to delete invite code")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true})
}
