package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project statuses. Status is a human judgement set by the owner, not a
// value derived from phase progress.
const (
	ProjectStatusOnTrack   = "on-track"
	ProjectStatusAtRisk    = "at-risk"
	ProjectStatusDelayed   = "delayed"
	ProjectStatusCompleted = "completed"
)

type Project struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerID string    `gorm:"type:text;not null;index:ix_project_owner_id" json:"owner_id"`

	Name                 string     `gorm:"type:text;not null" json:"name"`
	Description          string     `gorm:"type:text" json:"description,omitempty"`
	Status               string     `gorm:"type:text;not null;default:'on-track';check:status IN ('on-track','at-risk','delayed','completed')" json:"status"`
	StartDate            time.Time  `gorm:"not null" json:"start_date"`
	TargetCompletionDate *time.Time `json:"target_completion_date,omitempty"`

	// Free-form dashboard metadata (genre, cover art reference, ...).
	Metadata datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Project <-> Phase
	Phases []Phase `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// Project <-> Collaborator
	Collaborators []Collaborator `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Project) TableName() string { return "projects" }
