package tasksrepo

import "time"

// Task represents a single entry in the ordered task list. Position is the
// 1-based rank that defines display order; positions stay unique across the
// table but may become non-contiguous after deletes.
type Task struct {
	TaskID    string
	Name      string
	Cost      float64
	LimitDate time.Time
	Position  int64
}

// NewTask contains the fields required to create a task. The store assigns
// the id and the position.
type NewTask struct {
	Name      string
	Cost      float64
	LimitDate time.Time
}

// UpdateTask contains the fields that may change on an existing task.
// All fields are optional (pointers) to support partial updates. Position is
// deliberately absent: it only changes through Reorder.
type UpdateTask struct {
	Name      *string
	Cost      *float64
	LimitDate *time.Time
}

// Reposition pairs a task id with its new 1-based position.
type Reposition struct {
	TaskID   string
	Position int64
}
