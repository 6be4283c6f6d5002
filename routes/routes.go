// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"todoapp-server/commons"
	"todoapp-server/handlers"
	"todoapp-server/middlewares"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering routes")
	users := e.Group("/users")
	users.POST("/", handlers.SignupHandler)
	users.POST("/login", handlers.LoginHandler)
	users.POST("/logout", handlers.LogoutHandler, middlewares.VerifyAPIKeyMiddleware)
	users.PATCH("/", handlers.UpdateUserHandler, middlewares.VerifyAPIKeyMiddleware)

	todos := e.Group("/todos", middlewares.VerifyAPIKeyMiddleware)
	todos.GET("/", handlers.GetTodosHandler)
	todos.GET("/search", handlers.SearchTodosHandler)
	todos.POST("/", handlers.CreateTodoHandler)
	todos.PATCH("/:todo_id", handlers.UpdateTodoHandler)
	todos.DELETE("/:todo_id", handlers.DeleteTodoHandler)
	commons.Logger.Info("Routes registered successfully")
}
