package dto

import (
	"encoding/json"
	"errors"
	"strconv"
)

type TaskItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type CreateTaskRequest struct {
	Title *FlexString `json:"title"`
}

type UpdateTaskRequest struct {
	Title     *FlexString `json:"title"`
	Completed *bool       `json:"completed"`
}

// FlexString tolerates clients that send a bare number or boolean where a
// string is expected: scalars are coerced to their canonical string form
// before validation ever sees them.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = FlexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = FlexString(num.String())
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*s = FlexString(strconv.FormatBool(b))
		return nil
	}

	return errors.New("value must be a string, number or boolean")
}
