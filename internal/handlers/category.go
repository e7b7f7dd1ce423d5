package handlers

import (
	"net/http"

	"github.com/donelist-dev/donelist/db"
	"github.com/donelist-dev/donelist/internal/repository"
	"github.com/donelist-dev/donelist/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func CreateCategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateCategoryRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	category, err := repository.NewCategoryRepository(db.DB).Create(ctx.Request.Context(), body.Name)

	if err != nil {
		handleRepositoryError(ctx, err, "Category not found")
		return
	}

	BroadcastRefresh(userID)
	ctx.JSON(http.StatusCreated, CategoryResponse{ID: category.ID, Name: category.Name})
}

func ListCategories(ctx *gin.Context) {
	categories, err := repository.NewCategoryRepository(db.DB).List(ctx.Request.Context())

	if err != nil {
		Logger.Error("failed to list categories", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]CategoryResponse, 0, len(categories))

	for _, category := range categories {
		response = append(response, CategoryResponse{ID: category.ID, Name: category.Name})
	}

	ctx.JSON(http.StatusOK, response)
}

func DeleteCategory(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	categoryID, err := parseID(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
		return
	}

	if err := repository.NewCategoryRepository(db.DB).SoftDelete(ctx.Request.Context(), categoryID); err != nil {
		handleRepositoryError(ctx, err, "Category not found")
		return
	}

	BroadcastRefresh(userID)
	ctx.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
