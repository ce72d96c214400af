package service

import "github.com/google/uuid"

// ProgressChangedMQ is published to the progress topic exchange whenever a
// phase or task mutation moves a completion percentage. Dashboard and
// notification consumers live in other services.
type ProgressChangedMQ struct {
	ProjectID     uuid.UUID `json:"project_id"`
	PhaseID       uuid.UUID `json:"phase_id,omitempty"`
	PhaseProgress int       `json:"phase_progress"`
	Source        string    `json:"source"`
}

// Event sources.
const (
	SourceTaskCreate    = "task.create"
	SourceTaskToggle    = "task.toggle"
	SourceTaskDelete    = "task.delete"
	SourcePhaseStatus   = "phase.status"
	SourcePhaseProgress = "phase.progress"
	SourcePhaseDelete   = "phase.delete"
)
