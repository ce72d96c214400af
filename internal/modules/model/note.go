package model

import (
	"time"

	"github.com/google/uuid"
)

// Note is an append-only comment on a phase. Notes can be deleted but
// never edited.
type Note struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PhaseID   uuid.UUID `gorm:"type:uuid;not null;index:ix_note_phase_id" json:"phase_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:ix_note_project_id" json:"project_id"`

	Content       string `gorm:"type:text;not null" json:"content"`
	CreatedBy     string `gorm:"type:text;not null" json:"created_by"`
	CreatedByName string `gorm:"type:text" json:"created_by_name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Note <-> Phase
	Phase *Phase `gorm:"foreignKey:PhaseID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Note) TableName() string { return "notes" }
