package service

import (
	"context"
	"strings"

	"github.com/sherwinbularon/todolist-server/internal/core/domain"
	"github.com/sherwinbularon/todolist-server/internal/core/ports"
)

// TaskService validates incoming titles against the configured policy and
// delegates storage to the repository. Uniqueness and existence checks belong
// to the repository, which enforces them atomically.
type TaskService struct {
	taskRepository ports.TaskRepository
	titlePolicy    domain.TitlePolicy
}

func NewTaskService(taskRepository ports.TaskRepository, titlePolicy domain.TitlePolicy) *TaskService {
	return &TaskService{taskRepository: taskRepository, titlePolicy: titlePolicy}
}

func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.taskRepository.List(ctx)
}

func (s *TaskService) Create(ctx context.Context, title string) (domain.Task, error) {
	title = strings.TrimSpace(title)
	if err := s.titlePolicy.ValidateTitle(title); err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.Create(ctx, title)
}

func (s *TaskService) Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := s.titlePolicy.ValidateTitle(title); err != nil {
			return domain.Task{}, err
		}
		patch.Title = &title
	}
	return s.taskRepository.Update(ctx, id, patch)
}

func (s *TaskService) Toggle(ctx context.Context, id string) (domain.Task, error) {
	return s.taskRepository.Toggle(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.taskRepository.Delete(ctx, id)
}

var _ ports.TaskService = (*TaskService)(nil)
