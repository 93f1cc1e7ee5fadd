package model

import "time"

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

// Project lifecycle states.
const (
	ProjectOpen   ProjectStatus = "open"
	ProjectClosed ProjectStatus = "closed"
)

// Project groups tasks. Closed projects stay visible in historical views but
// are excluded from pickers for new time entries.
type Project struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Description string
	Status      ProjectStatus
}

// Task belongs to exactly one project. Deleting the project does not cascade
// to its tasks.
type Task struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Description string
	ProjectID   string
}
