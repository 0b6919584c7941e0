package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/sherwinbularon/todolist-server/internal/core/domain"
	"github.com/sherwinbularon/todolist-server/internal/core/ports"
)

// TaskRepository keeps the task collection in process memory behind a single
// exclusive lock. Every operation runs its whole critical section under the
// lock and never does I/O while holding it, so readers observe either the
// fully-pre-mutation or fully-post-mutation state.
type TaskRepository struct {
	mu    sync.Mutex
	tasks []domain.Task
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// List returns a snapshot in insertion order. The returned slice is a copy;
// concurrent mutations never show through it.
func (r *TaskRepository) List(_ context.Context) ([]domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]domain.Task, len(r.tasks))
	copy(snapshot, r.tasks)
	return snapshot, nil
}

func (r *TaskRepository) Create(_ context.Context, title string) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.titleTaken(title, "") {
		return domain.Task{}, domain.ErrDuplicateTitle
	}

	task := domain.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Completed: false,
	}
	r.tasks = append(r.tasks, task)
	return task, nil
}

func (r *TaskRepository) Update(_ context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	if patch.Title != nil {
		if r.titleTaken(*patch.Title, id) {
			return domain.Task{}, domain.ErrDuplicateTitle
		}
		r.tasks[i].Title = *patch.Title
	}
	if patch.Completed != nil {
		r.tasks[i].Completed = *patch.Completed
	}
	return r.tasks[i], nil
}

func (r *TaskRepository) Toggle(_ context.Context, id string) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.Task{}, domain.ErrTaskNotFound
	}

	r.tasks[i].Completed = !r.tasks[i].Completed
	return r.tasks[i], nil
}

func (r *TaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return domain.ErrTaskNotFound
	}

	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return nil
}

// titleTaken reports whether another task already uses the title,
// case-insensitively. excludeID skips the task being updated. Callers must
// hold the lock.
func (r *TaskRepository) titleTaken(title, excludeID string) bool {
	for _, t := range r.tasks {
		if t.ID != excludeID && strings.EqualFold(t.Title, title) {
			return true
		}
	}
	return false
}

func (r *TaskRepository) indexOf(id string) int {
	for i, t := range r.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
