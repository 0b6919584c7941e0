package http

import (
	"github.com/gin-gonic/gin"

	"github.com/sherwinbularon/todolist-server/internal/adapter/http/handlers"
	"github.com/sherwinbularon/todolist-server/internal/adapter/http/middleware"
)

func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler) {
	root := r.Group("")
	root.Use(middleware.LanguageMiddleware())
	{
		root.GET("/health", healthHandler.CheckHealth)
		root.GET("/health/report", healthHandler.CheckHealthReport)
		root.GET("/tasks", taskHandler.ListTasks)
		root.POST("/tasks", taskHandler.CreateTask)
		root.PUT("/tasks/:id", taskHandler.UpdateTask)
		root.PATCH("/tasks/:id/toggle", taskHandler.ToggleTask)
		root.DELETE("/tasks/:id", taskHandler.DeleteTask)
	}
}
