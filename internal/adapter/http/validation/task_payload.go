package validation

import (
	"encoding/json"
	"errors"

	"github.com/sherwinbularon/todolist-server/internal/adapter/http/dto"
	"github.com/sherwinbularon/todolist-server/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildCreateTaskTitle extracts the candidate title from a create payload.
// The title field must be present and non-null; character and length rules
// are enforced later by the service.
func BuildCreateTaskTitle(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (string, error) {
	if !hasJSONField(raw, "title") || req.Title == nil {
		return "", ErrInvalidTaskPayload
	}
	return string(*req.Title), nil
}

// BuildUpdateTaskPatch turns an update payload into a partial patch. At least
// one of title/completed must be present; a field set to JSON null is
// rejected rather than silently ignored.
func BuildUpdateTaskPatch(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.TaskPatch, error) {
	if !hasJSONField(raw, "title") && !hasJSONField(raw, "completed") {
		return domain.TaskPatch{}, ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "title") && req.Title == nil {
		return domain.TaskPatch{}, ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "completed") && req.Completed == nil {
		return domain.TaskPatch{}, ErrInvalidTaskPayload
	}

	var patch domain.TaskPatch
	if req.Title != nil {
		title := string(*req.Title)
		patch.Title = &title
	}
	patch.Completed = req.Completed
	return patch, nil
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}
