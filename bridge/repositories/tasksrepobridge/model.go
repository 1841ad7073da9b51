package tasksrepobridge

import (
	"encoding/json"
	"fmt"
)

// Task is the wire representation of a task. Dates travel as day/month/year
// text; the repository holds the real date.
type Task struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Cost      float64 `json:"cost"`
	LimitDate string  `json:"limit_date"`
	Position  int64   `json:"position"`
}

// TaskInput is the request body for create and update. The original client
// always sends all three fields, so all are required on the wire.
type TaskInput struct {
	Name      string   `json:"name"`
	Cost      *float64 `json:"cost"`
	LimitDate string   `json:"limit_date"`
}

// Validate implements the web validator interface.
func (in TaskInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("name is required")
	}
	if in.Cost == nil {
		return fmt.Errorf("cost is required")
	}
	if in.LimitDate == "" {
		return fmt.Errorf("limit_date is required")
	}
	return nil
}

// RepositionInput pairs a task id with its new rank.
type RepositionInput struct {
	ID       string `json:"id"`
	Position int64  `json:"position"`
}

// ReorderInput is the request body for the bulk reposition endpoint.
type ReorderInput struct {
	Tasks []RepositionInput `json:"tasks"`
}

// Validate implements the web validator interface.
func (in ReorderInput) Validate() error {
	if len(in.Tasks) == 0 {
		return fmt.Errorf("tasks must be a non-empty list")
	}
	return nil
}

// MessageResponse is the confirmation body for delete and reorder.
type MessageResponse struct {
	Message string `json:"message"`
}

func (m MessageResponse) Encode() ([]byte, string, error) {
	data, err := json.Marshal(m)
	return data, "application/json", err
}
