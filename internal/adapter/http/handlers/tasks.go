package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sherwinbularon/todolist-server/internal/adapter/http/dto"
	"github.com/sherwinbularon/todolist-server/internal/adapter/http/mapper"
	"github.com/sherwinbularon/todolist-server/internal/adapter/http/middleware"
	"github.com/sherwinbularon/todolist-server/internal/adapter/http/validation"
	"github.com/sherwinbularon/todolist-server/internal/core/domain"
	"github.com/sherwinbularon/todolist-server/internal/core/ports"
	"github.com/sherwinbularon/todolist-server/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)

	tasks, err := h.taskService.List(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTasks, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.CreateTaskRequest
	raw, ok := decodeTaskBody(c, &req)
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	title, err := validation.BuildCreateTaskTitle(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), title)
	if err != nil {
		h.writeTaskError(c, lang, err, apierrors.MsgFailCreateTask, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID := c.Param("id")

	var req dto.UpdateTaskRequest
	raw, ok := decodeTaskBody(c, &req)
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	patch, err := validation.BuildUpdateTaskPatch(req, raw)
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), taskID, patch)
	if err != nil {
		h.writeTaskError(c, lang, err, apierrors.MsgFailUpdateTask, "failed to update task")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ToggleTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID := c.Param("id")

	task, err := h.taskService.Toggle(c.Request.Context(), taskID)
	if err != nil {
		h.writeTaskError(c, lang, err, apierrors.MsgFailToggleTask, "failed to toggle task")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID := c.Param("id")

	if err := h.taskService.Delete(c.Request.Context(), taskID); err != nil {
		h.writeTaskError(c, lang, err, apierrors.MsgFailDeleteTask, "failed to delete task")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: apierrors.GetTransErrorMsg(apierrors.MsgTaskDeleted, lang),
	})
}

// writeTaskError maps a service error to an outward response. Validation and
// uniqueness failures are the caller's to fix; anything else is logged with
// its detail and surfaced as a generic server error.
func (h *TaskHandler) writeTaskError(c *gin.Context, lang string, err error, fallbackKey, logMsg string) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, validationMessageKey(validationErr.Reason), lang),
		)
	case errors.Is(err, domain.ErrDuplicateTitle):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgDuplicateTitle, lang),
		)
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
	default:
		zap.L().Error(logMsg, zap.String("task_id", c.Param("id")), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, fallbackKey, lang),
		)
	}
}

func validationMessageKey(reason domain.ValidationReason) string {
	switch reason {
	case domain.ReasonEmptyTitle:
		return apierrors.MsgEmptyTitle
	case domain.ReasonTitleTooLong:
		return apierrors.MsgTitleTooLong
	default:
		return apierrors.MsgTitleInvalidChars
	}
}

// decodeTaskBody reads the request body once and decodes it both into the
// typed request and a raw field map, so handlers can tell an absent field
// from an explicit null.
func decodeTaskBody(c *gin.Context, req any) (map[string]json.RawMessage, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, false
	}
	if err := json.Unmarshal(body, req); err != nil {
		return nil, false
	}
	return raw, true
}
