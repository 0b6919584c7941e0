package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sherwinbularon/todolist-server/internal/core/domain"
	"github.com/sherwinbularon/todolist-server/internal/core/ports"
)

// operationTimeout bounds every repository call so a stalled database
// surfaces as an error instead of a hung request.
const operationTimeout = 3 * time.Second

// mysqlDuplicateEntry is the server error code for a unique key violation.
const mysqlDuplicateEntry = 1062

const (
	listTasksQuery  = `SELECT id, title, completed FROM tasks ORDER BY seq`
	insertTaskQuery = `INSERT INTO tasks (id, title, completed) VALUES (?, ?, FALSE)`
	selectForUpdate = `SELECT id, title, completed FROM tasks WHERE id = ? FOR UPDATE`
	updateTaskQuery = `UPDATE tasks SET title = ?, completed = ? WHERE id = ?`
	deleteTaskQuery = `DELETE FROM tasks WHERE id = ?`
)

// TaskRepository persists tasks in MySQL. Title uniqueness rests on a
// case-insensitive unique key rather than application-level locking, so two
// concurrent creates racing past a read-side check can never both commit.
// Update and Toggle run inside a transaction with a row lock to keep the
// lookup-then-overwrite sequence atomic.
type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	Completed bool   `db:"completed"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) List(ctx context.Context) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, listTasksQuery); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.toDomainTask())
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, title string) (domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	task := domain.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Completed: false,
	}
	if _, err := r.db.ExecContext(ctx, insertTaskQuery, task.ID, task.Title); err != nil {
		if isDuplicateEntry(err) {
			return domain.Task{}, domain.ErrDuplicateTitle
		}
		return domain.Task{}, err
	}
	return task, nil
}

func (r *TaskRepository) Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	return r.overwrite(ctx, id, func(task *domain.Task) {
		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Completed != nil {
			task.Completed = *patch.Completed
		}
	})
}

func (r *TaskRepository) Toggle(ctx context.Context, id string) (domain.Task, error) {
	return r.overwrite(ctx, id, func(task *domain.Task) {
		task.Completed = !task.Completed
	})
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, deleteTaskQuery, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// overwrite locks the row, applies the mutation and writes it back in one
// transaction. The unique title key still guards against a concurrent create
// or update taking the same title while the row is held.
func (r *TaskRepository) overwrite(ctx context.Context, id string, apply func(*domain.Task)) (domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, operationTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var row taskRow
	if err := tx.GetContext(ctx, &row, selectForUpdate, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	task := row.toDomainTask()
	apply(&task)

	if _, err := tx.ExecContext(ctx, updateTaskQuery, task.Title, task.Completed, task.ID); err != nil {
		if isDuplicateEntry(err) {
			return domain.Task{}, domain.ErrDuplicateTitle
		}
		return domain.Task{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (row taskRow) toDomainTask() domain.Task {
	return domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Completed: row.Completed,
	}
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
