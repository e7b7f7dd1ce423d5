package handlers

import (
	"net/http"

	"github.com/donelist-dev/donelist/db"
	"github.com/donelist-dev/donelist/internal/repository"
	"github.com/donelist-dev/donelist/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func CreateTag(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateTagRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	tag, err := repository.NewTagRepository(db.DB).Create(ctx.Request.Context(), body.Name)

	if err != nil {
		handleRepositoryError(ctx, err, "Tag not found")
		return
	}

	BroadcastRefresh(userID)
	ctx.JSON(http.StatusCreated, TagResponse{ID: tag.ID, Name: tag.Name})
}

func ListTags(ctx *gin.Context) {
	tags, err := repository.NewTagRepository(db.DB).List(ctx.Request.Context())

	if err != nil {
		Logger.Error("failed to list tags", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]TagResponse, 0, len(tags))

	for _, tag := range tags {
		response = append(response, TagResponse{ID: tag.ID, Name: tag.Name})
	}

	ctx.JSON(http.StatusOK, response)
}

func DeleteTag(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tagID, err := parseID(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag id"})
		return
	}

	if err := repository.NewTagRepository(db.DB).SoftDelete(ctx.Request.Context(), tagID); err != nil {
		handleRepositoryError(ctx, err, "Tag not found")
		return
	}

	BroadcastRefresh(userID)
	ctx.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
