// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"
	"todoapp-server/db"
	"todoapp-server/middlewares"
	"todoapp-server/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const maxTodoInputLength = 100

func todoResponse(todo *models.Todo) TodoResponse {
	hashtags := make([]string, 0, len(todo.Hashtags))
	for _, tag := range todo.Hashtags {
		hashtags = append(hashtags, tag.Name)
	}
	return TodoResponse{
		ID:         todo.ID.String(),
		Input:      todo.Input,
		Done:       todo.Done,
		Priority:   todo.Priority,
		Hashtags:   hashtags,
		CreatedAt:  todo.CreatedAt,
		FinishedAt: todo.FinishedAt,
	}
}

// getOrCreateHashtags resolves hashtag names to rows, creating missing ones.
// Names are matched exactly; hashtags are never deleted when orphaned.
func getOrCreateHashtags(names []string) ([]models.Hashtag, error) {
	tags := make([]models.Hashtag, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		tag := models.Hashtag{}
		if err := db.Conn.Where("name = ?", name).
			FirstOrCreate(&tag, models.Hashtag{Name: name}).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// GetTodosHandler godoc
// @Summary      List todos
// @Description  Returns every todo owned by the authenticated user.
// @Tags         todos
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key token"
// @Success      200 {array}  TodoResponse	 "Todos retrieved successfully"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /todos/ [get]
func GetTodosHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Unauthorized",
		}
	}

	var todos []models.Todo
	if err := db.Conn.Preload("Hashtags").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&todos).Error; err != nil {
		logger.Errorf("Failed to fetch todos: %v", err)
		return echo.ErrInternalServerError
	}

	response := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		response = append(response, todoResponse(&todos[i]))
	}
	return c.JSON(http.StatusOK, response)
}

// SearchTodosHandler godoc
// @Summary      Search todos
// @Description  Searches the authenticated user's todos by text and hashtags.
// @Description  With neither parameter the result is empty.
// @Tags         todos
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key token"
// @Param        q         query   string  false  "Case-insensitive substring of the todo text"
// @Param        hashtags  query   string  false  "Comma-separated hashtag names; any match qualifies"
// @Success      200 {array}  TodoResponse	 "Matching todos"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /todos/search [get]
func SearchTodosHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Unauthorized",
		}
	}

	q := c.QueryParam("q")
	hashtags := c.QueryParam("hashtags")
	if q == "" && hashtags == "" {
		return c.JSON(http.StatusOK, []TodoResponse{})
	}

	query := db.Conn.Preload("Hashtags").Where("todos.user_id = ?", user.ID)
	if q != "" {
		query = query.Where("LOWER(input) LIKE LOWER(?)", "%"+q+"%")
	}
	if hashtags != "" {
		names := strings.Split(hashtags, ",")
		query = query.
			Joins("JOIN todo_hashtags ON todo_hashtags.todo_id = todos.id").
			Joins("JOIN hashtags ON hashtags.id = todo_hashtags.hashtag_id").
			Where("hashtags.name IN ?", names).
			Distinct("todos.*")
	}

	var todos []models.Todo
	if err := query.Find(&todos).Error; err != nil {
		logger.Errorf("Failed to search todos: %v", err)
		return echo.ErrInternalServerError
	}

	response := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		response = append(response, todoResponse(&todos[i]))
	}
	return c.JSON(http.StatusOK, response)
}

// CreateTodoHandler godoc
// @Summary      Create a todo
// @Description  Creates a todo owned by the authenticated user.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key token"
// @Param        createTodoRequest  body  CreateTodoRequest  true  "Todo to create"
// @Success      200 {object} TodoResponse	 "Todo created successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing or oversized input"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /todos/ [post]
func CreateTodoHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Unauthorized",
		}
	}

	var req CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create todo request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Input == "" {
		logger.Error("Input is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "input field is required",
		}
	}
	if len([]rune(req.Input)) > maxTodoInputLength {
		logger.Error("Input exceeds maximum length.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "input must be at most 100 characters",
		}
	}

	priority := req.Priority
	if priority < 1 {
		priority = 1
	}

	todo := models.Todo{
		Input:    req.Input,
		Done:     req.Done,
		Priority: priority,
		UserID:   user.ID,
	}
	if todo.Done {
		now := time.Now()
		todo.FinishedAt = &now
	}

	if err := db.Conn.Create(&todo).Error; err != nil {
		logger.Errorf("Failed to create todo: %v", err)
		return echo.ErrInternalServerError
	}

	if len(req.Hashtags) > 0 {
		tags, err := getOrCreateHashtags(req.Hashtags)
		if err != nil {
			logger.Errorf("Failed to resolve hashtags: %v", err)
			return echo.ErrInternalServerError
		}
		if err := db.Conn.Model(&todo).Association("Hashtags").Replace(tags); err != nil {
			logger.Errorf("Failed to attach hashtags: %v", err)
			return echo.ErrInternalServerError
		}
		todo.Hashtags = tags
	}

	logger.Info("Todo created successfully.")
	return c.JSON(http.StatusOK, todoResponse(&todo))
}

// UpdateTodoHandler godoc
// @Summary      Edit a todo
// @Description  Applies a partial update to one of the authenticated user's
// @Description  todos. Only fields present in the payload are changed; a
// @Description  present hashtag list replaces the todo's hashtag set.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key token"
// @Param        todo_id    path    string  true  "Todo identifier"
// @Param        updateTodoRequest  body  UpdateTodoRequest  true  "Fields to update"
// @Success      200 {object} TodoResponse	 "Todo updated successfully"
// @Failure      400 {object} echo.HTTPError     "Bad request, invalid field values"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      404 {object} echo.HTTPError     "Todo not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /todos/{todo_id} [patch]
func UpdateTodoHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Unauthorized",
		}
	}

	todoID, err := uuid.Parse(c.Param("todo_id"))
	if err != nil {
		logger.Error("Invalid todo ID:", err)
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Todo not found",
		}
	}

	var req UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update todo request payload:", err)
		return echo.ErrBadRequest
	}

	todo := models.Todo{}
	if err := db.Conn.Preload("Hashtags").
		Where("id = ? AND user_id = ?", todoID, user.ID).
		First(&todo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Todo not found.")
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Todo not found",
			}
		}
		logger.Errorf("Failed to fetch todo: %v", err)
		return echo.ErrInternalServerError
	}

	if req.Input != nil {
		if *req.Input == "" {
			logger.Error("Input must not be empty.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "input must not be empty",
			}
		}
		if len([]rune(*req.Input)) > maxTodoInputLength {
			logger.Error("Input exceeds maximum length.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "input must be at most 100 characters",
			}
		}
		todo.Input = *req.Input
	}
	if req.Done != nil && *req.Done != todo.Done {
		todo.Done = *req.Done
		if todo.Done {
			now := time.Now()
			todo.FinishedAt = &now
		} else {
			todo.FinishedAt = nil
		}
	}
	if req.Priority != nil {
		if *req.Priority < 1 {
			logger.Error("Priority must be positive.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "priority must be at least 1",
			}
		}
		todo.Priority = *req.Priority
	}

	if err := db.Conn.Save(&todo).Error; err != nil {
		logger.Errorf("Failed to update todo: %v", err)
		return echo.ErrInternalServerError
	}

	if req.Hashtags != nil {
		tags, err := getOrCreateHashtags(*req.Hashtags)
		if err != nil {
			logger.Errorf("Failed to resolve hashtags: %v", err)
			return echo.ErrInternalServerError
		}
		if err := db.Conn.Model(&todo).Association("Hashtags").Replace(tags); err != nil {
			logger.Errorf("Failed to replace hashtags: %v", err)
			return echo.ErrInternalServerError
		}
		todo.Hashtags = tags
	}

	logger.Info("Todo updated successfully.")
	return c.JSON(http.StatusOK, todoResponse(&todo))
}

// DeleteTodoHandler godoc
// @Summary      Delete a todo
// @Description  Deletes one of the authenticated user's todos.
// @Tags         todos
// @Produce      json
// @Param        X-API-Key  header  string  true  "API key token"
// @Param        todo_id    path    string  true  "Todo identifier"
// @Success      200 {object} GenericResponse	 "Todo deleted"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      404 {object} echo.HTTPError     "Todo not found"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /todos/{todo_id} [delete]
func DeleteTodoHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Unauthorized",
		}
	}

	todoID, err := uuid.Parse(c.Param("todo_id"))
	if err != nil {
		logger.Error("Invalid todo ID:", err)
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Todo not found",
		}
	}

	todo := models.Todo{}
	if err := db.Conn.Where("id = ? AND user_id = ?", todoID, user.ID).
		First(&todo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Todo not found.")
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "Todo not found",
			}
		}
		logger.Errorf("Failed to fetch todo: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Delete(&todo).Error; err != nil {
		logger.Errorf("Failed to delete todo: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Info("Todo deleted successfully.")
	return c.JSON(http.StatusOK, GenericResponse{Message: "deleted"})
}
