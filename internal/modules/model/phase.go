package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	PhaseStatusPending    = "pending"
	PhaseStatusInProgress = "in-progress"
	PhaseStatusCompleted  = "completed"
	PhaseStatusDelayed    = "delayed"
)

const (
	PhasePriorityLow    = "low"
	PhasePriorityMedium = "medium"
	PhasePriorityHigh   = "high"
)

// Phase is one stage of a production project ("Recording", "Mixing", ...).
// Progress is kept in lockstep with Status by the repo layer: completed
// always means 100, and a progress write below 100 demotes a completed
// phase back to in-progress. Raw partial patches of either field are not
// exposed anywhere.
type Phase struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:ix_phase_project_id" json:"project_id"`

	Name           string     `gorm:"type:text;not null" json:"name"`
	Status         string     `gorm:"type:text;not null;default:'pending';check:status IN ('pending','in-progress','completed','delayed')" json:"status"`
	Progress       int        `gorm:"not null;default:0;check:progress >= 0 AND progress <= 100" json:"progress"`
	ETA            *string    `gorm:"type:text" json:"eta,omitempty"`
	Priority       string     `gorm:"type:text;not null;default:'medium';check:priority IN ('low','medium','high')" json:"priority"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Phase <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Phase <-> Task
	Tasks []Task `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Phase <-> Note
	Notes []Note `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Phase) TableName() string { return "phases" }
