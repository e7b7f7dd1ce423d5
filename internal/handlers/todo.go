package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/donelist-dev/donelist/db"
	"github.com/donelist-dev/donelist/internal/models"
	"github.com/donelist-dev/donelist/internal/repository"
	"github.com/donelist-dev/donelist/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CreateTodoRequest struct {
	Title      string `json:"title" binding:"required"`
	CategoryID *uint  `json:"category_id"`
	TagIDs     []uint `json:"tag_ids"`
}

type UpdateTodoRequest struct {
	Title         *string `json:"title"`
	Completed     *bool   `json:"completed"`
	CategoryID    *uint   `json:"category_id"`
	ClearCategory bool    `json:"clear_category"`
	TagIDs        *[]uint `json:"tag_ids"`
}

type TodoResponse struct {
	ID         uint              `json:"id"`
	Title      string            `json:"title"`
	Completed  bool              `json:"completed"`
	CategoryID *uint             `json:"category_id"`
	Category   *CategoryResponse `json:"category,omitempty"`
	Tags       []TagResponse     `json:"tags"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
	DeletedAt  *string           `json:"deleted_at"`
}

func CreateTodo(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateTodoRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	repo := repository.NewTodoRepository(db.DB)

	todo, err := repo.Create(ctx.Request.Context(), userID, repository.CreateTodoInput{
		Title:      body.Title,
		CategoryID: body.CategoryID,
		TagIDs:     body.TagIDs,
	})

	if err != nil {
		handleRepositoryError(ctx, err, "Category or tag not found")
		return
	}

	created, err := repo.Get(ctx.Request.Context(), userID, todo.ID, false)

	if err != nil {
		handleRepositoryError(ctx, err, "Todo not found")
		return
	}

	BroadcastRefresh(userID)
	ctx.JSON(http.StatusCreated, toTodoResponse(*created))
}

func ListTodos(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var filter repository.ListTodosFilter

	if raw := ctx.Query("category_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		filter.CategoryID = &id
	}

	if raw := ctx.Query("tag_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag id"})
			return
		}
		filter.TagID = &id
	}

	filter.IncludeDeleted = ctx.Query("include_deleted") == "true"

	todos, err := repository.NewTodoRepository(db.DB).List(ctx.Request.Context(), userID, filter)

	if err != nil {
		Logger.Error("failed to list todos", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]TodoResponse, 0, len(todos))

	for _, todo := range todos {
		response = append(response, toTodoResponse(todo))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetTodo(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	todoID, err := parseID(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo id"})
		return
	}

	includeDeleted := ctx.Query("include_deleted") == "true"

	todo, err := repository.NewTodoRepository(db.DB).Get(ctx.Request.Context(), userID, todoID, includeDeleted)

	if err != nil {
		handleRepositoryError(ctx, err, "Todo not found")
		return
	}

	ctx.JSON(http.StatusOK, toTodoResponse(*todo))
}

func UpdateTodo(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	todoID, err := parseID(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo id"})
		return
	}

	var body UpdateTodoRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	repo := repository.NewTodoRepository(db.DB)

	err = repo.Update(ctx.Request.Context(), userID, todoID, repository.UpdateTodoInput{
		Title:         body.Title,
		Completed:     body.Completed,
		CategoryID:    body.CategoryID,
		ClearCategory: body.ClearCategory,
		TagIDs:        body.TagIDs,
	})

	if err != nil {
		handleRepositoryError(ctx, err, "Todo not found")
		return
	}

	todo, err := repo.Get(ctx.Request.Context(), userID, todoID, false)

	if err != nil {
		handleRepositoryError(ctx, err, "Todo not found")
		return
	}

	BroadcastRefresh(userID)
	ctx.JSON(http.StatusOK, toTodoResponse(*todo))
}

func DeleteTodo(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	todoID, err := parseID(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid todo id"})
		return
	}

	if err := repository.NewTodoRepository(db.DB).SoftDelete(ctx.Request.Context(), userID, todoID); err != nil {
		handleRepositoryError(ctx, err, "Todo not found")
		return
	}

	BroadcastRefresh(userID)
	ctx.JSON(http.StatusOK, gin.H{"message": "Todo deleted successfully"})
}

func toTodoResponse(todo models.Todo) TodoResponse {
	response := TodoResponse{
		ID:         todo.ID,
		Title:      todo.Title,
		Completed:  todo.Completed,
		CategoryID: todo.CategoryID,
		Tags:       make([]TagResponse, 0, len(todo.Tags)),
		CreatedAt:  utils.FormatTimestamp(todo.CreatedAt),
		UpdatedAt:  utils.FormatTimestamp(todo.UpdatedAt),
		DeletedAt:  utils.FormatDeletedAt(todo.DeletedAt),
	}

	if todo.Category != nil {
		response.Category = &CategoryResponse{
			ID:   todo.Category.ID,
			Name: todo.Category.Name,
		}
	}

	for _, tag := range todo.Tags {
		response.Tags = append(response.Tags, TagResponse{ID: tag.ID, Name: tag.Name})
	}

	return response
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func handleRepositoryError(ctx *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, repository.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Please fill all required data."})
	case errors.Is(err, repository.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	default:
		Logger.Error("repository failure", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
