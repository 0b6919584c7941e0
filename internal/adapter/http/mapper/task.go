package mapper

import (
	"github.com/sherwinbularon/todolist-server/internal/adapter/http/dto"
	"github.com/sherwinbularon/todolist-server/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	return dto.TaskItem{
		ID:        task.ID,
		Title:     task.Title,
		Completed: task.Completed,
	}
}
