package ports

import (
	"context"

	"github.com/sherwinbularon/todolist-server/internal/core/domain"
)

// TaskRepository owns the authoritative task collection. Implementations must
// enforce case-insensitive title uniqueness and id existence atomically with
// respect to concurrent operations, and List must return a stable snapshot in
// insertion order.
type TaskRepository interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, title string) (domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	Toggle(ctx context.Context, id string) (domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type TaskService interface {
	List(ctx context.Context) ([]domain.Task, error)
	Create(ctx context.Context, title string) (domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	Toggle(ctx context.Context, id string) (domain.Task, error)
	Delete(ctx context.Context, id string) error
}
