package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sherwinbularon/todolist-server/internal/adapter/http/dto"
	"github.com/sherwinbularon/todolist-server/internal/adapter/http/handlers"
	"github.com/sherwinbularon/todolist-server/internal/adapter/http/middleware"
	"github.com/sherwinbularon/todolist-server/internal/core/domain"
	"github.com/sherwinbularon/todolist-server/pkg/apierrors"
	"github.com/sherwinbularon/todolist-server/pkg/translator"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) List(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) Create(ctx context.Context, title string) (domain.Task, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) Toggle(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTaskRouter(serviceMock *taskServiceMock) *gin.Engine {
	handler := handlers.NewTaskHandler(serviceMock)

	router := gin.New()
	group := router.Group("", middleware.LanguageMiddleware())
	group.GET("/tasks", handler.ListTasks)
	group.POST("/tasks", handler.CreateTask)
	group.PUT("/tasks/:id", handler.UpdateTask)
	group.PATCH("/tasks/:id/toggle", handler.ToggleTask)
	group.DELETE("/tasks/:id", handler.DeleteTask)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeErr(t *testing.T, rec *httptest.ResponseRecorder) apierrors.JsonErr {
	t.Helper()

	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestTaskHandler_ListTasks_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("List", mock.Anything).Return(
		[]domain.Task{
			{ID: "a4c0a5a6-0c55-44b6-9fd7-5e94275236b1", Title: "Buy milk", Completed: false},
			{ID: "5f8c0e0e-6f1f-4f62-b4a6-92d0c8b7d2aa", Title: "Walk the dog", Completed: true},
		},
		nil,
	).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodGet, "/tasks", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "a4c0a5a6-0c55-44b6-9fd7-5e94275236b1", got[0].ID)
	require.Equal(t, "Buy milk", got[0].Title)
	require.False(t, got[0].Completed)
	require.Equal(t, "Walk the dog", got[1].Title)
	require.True(t, got[1].Completed)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_Error(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("List", mock.Anything).Return(nil, errors.New("db is down")).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodGet, "/tasks", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	got := decodeErr(t, rec)
	require.Equal(t, http.StatusInternalServerError, got.ErrDetails.Code)
	require.Equal(t, "Failed to list tasks", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Create", mock.Anything, "Buy milk").
		Return(domain.Task{ID: "id-1", Title: "Buy milk", Completed: false}, nil).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodPost, "/tasks", `{"title":"Buy milk"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "id-1", got.ID)
	require.Equal(t, "Buy milk", got.Title)
	require.False(t, got.Completed)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_CoercesNumericTitle(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Create", mock.Anything, "42").
		Return(domain.Task{ID: "id-1", Title: "42", Completed: false}, nil).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodPost, "/tasks", `{"title":42}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_DuplicateTitle(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Create", mock.Anything, "buy milk").
		Return(domain.Task{}, domain.ErrDuplicateTitle).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodPost, "/tasks", `{"title":"buy milk"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	got := decodeErr(t, rec)
	require.Equal(t, http.StatusBadRequest, got.ErrDetails.Code)
	require.Equal(t, "A task with this title already exists", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_ValidationFailure(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Create", mock.Anything, "mail@example").
		Return(domain.Task{}, &domain.ValidationError{Reason: domain.ReasonInvalidCharacters}).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodPost, "/tasks", `{"title":"mail@example"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	got := decodeErr(t, rec)
	require.Equal(t, "Title contains invalid characters", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_InvalidPayload(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newTaskRouter(serviceMock)

	for _, body := range []string{``, `not json`, `{}`, `{"title":null}`, `{"title":["x"]}`} {
		rec := doJSON(t, router, http.MethodPost, "/tasks", body)

		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)

		got := decodeErr(t, rec)
		require.Equal(t, "Invalid task payload", got.ErrDetails.Message)
	}
	serviceMock.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTaskHandler_CreateTask_TranslatesErrors(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Create", mock.Anything, "buy milk").
		Return(domain.Task{}, domain.ErrDuplicateTitle).Once()
	router := newTaskRouter(serviceMock)

	req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"title":"buy milk"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageFr)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	got := decodeErr(t, rec)
	require.Equal(t, "Une tâche avec ce titre existe déjà", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_Success(t *testing.T) {
	title := "Buy oat milk"
	serviceMock := new(taskServiceMock)
	serviceMock.On("Update", mock.Anything, "id-1", domain.TaskPatch{Title: &title}).
		Return(domain.Task{ID: "id-1", Title: title, Completed: false}, nil).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodPut, "/tasks/id-1", `{"title":"Buy oat milk"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "id-1", got.ID)
	require.Equal(t, title, got.Title)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_CompletedOnly(t *testing.T) {
	completed := true
	serviceMock := new(taskServiceMock)
	serviceMock.On("Update", mock.Anything, "id-1", domain.TaskPatch{Completed: &completed}).
		Return(domain.Task{ID: "id-1", Title: "Buy milk", Completed: true}, nil).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodPut, "/tasks/id-1", `{"completed":true}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Buy milk", got.Title)
	require.True(t, got.Completed)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_InvalidPayload(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newTaskRouter(serviceMock)

	for _, body := range []string{``, `{}`, `{"title":null}`, `{"completed":null}`, `{"completed":"yes"}`} {
		rec := doJSON(t, router, http.MethodPut, "/tasks/id-1", body)

		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)

		got := decodeErr(t, rec)
		require.Equal(t, "Invalid task payload", got.ErrDetails.Message)
	}
	serviceMock.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskHandler_UpdateTask_NotFound(t *testing.T) {
	title := "x"
	serviceMock := new(taskServiceMock)
	serviceMock.On("Update", mock.Anything, "missing", domain.TaskPatch{Title: &title}).
		Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodPut, "/tasks/missing", `{"title":"x"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)

	got := decodeErr(t, rec)
	require.Equal(t, http.StatusNotFound, got.ErrDetails.Code)
	require.Equal(t, "Task not found", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ToggleTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Toggle", mock.Anything, "id-1").
		Return(domain.Task{ID: "id-1", Title: "Buy milk", Completed: true}, nil).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodPatch, "/tasks/id-1/toggle", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.Completed)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ToggleTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Toggle", mock.Anything, "missing").
		Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodPatch, "/tasks/missing/toggle", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Delete", mock.Anything, "id-1").Return(nil).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodDelete, "/tasks/id-1", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var got dto.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Task deleted", got.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Delete", mock.Anything, "missing").Return(domain.ErrTaskNotFound).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodDelete, "/tasks/missing", "")

	require.Equal(t, http.StatusNotFound, rec.Code)

	got := decodeErr(t, rec)
	require.Equal(t, "Task not found", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask_StorageFailure(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("Delete", mock.Anything, "id-1").Return(errors.New("connection reset")).Once()
	router := newTaskRouter(serviceMock)

	rec := doJSON(t, router, http.MethodDelete, "/tasks/id-1", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// Backend detail stays in the logs, not the response.
	got := decodeErr(t, rec)
	require.Equal(t, "Failed to delete task", got.ErrDetails.Message)
	require.NotContains(t, rec.Body.String(), "connection reset")
	serviceMock.AssertExpectations(t)
}
