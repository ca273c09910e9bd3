package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeProcessBookings  = "booking:process"
	TypeConfirmNotify    = "booking:confirm-notify"
	TypeCancelBookings   = "booking:cancel-past"
	TypeSurveys          = "attention:survey"
	TypeCancelAttentions = "attention:cancel-all"
)

// JobPayload parameterizes a scheduled job. An empty Date means today in
// the jobs timezone.
type JobPayload struct {
	Date       string `json:"date,omitempty"`
	DaysBefore int    `json:"daysBefore,omitempty"`
}

// NewJobTask builds a task of the given type.
func NewJobTask(taskType string, payload JobPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, b), nil
}

// ParsePayload decodes a job payload. An empty payload is the zero value.
func ParsePayload(t *asynq.Task) (JobPayload, error) {
	var p JobPayload
	if len(t.Payload()) == 0 {
		return p, nil
	}
	err := json.Unmarshal(t.Payload(), &p)
	return p, err
}
