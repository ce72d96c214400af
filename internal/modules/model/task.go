package model

import (
	"time"

	"github.com/google/uuid"
)

// Task is an atomic checklist item. The phase's progress is derived from
// its tasks' Completed flags, recomputed in the same transaction as any
// task write.
type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	PhaseID   uuid.UUID `gorm:"type:uuid;not null;index:ix_task_phase_id" json:"phase_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:ix_task_project_id" json:"project_id"`

	Name      string `gorm:"type:text;not null" json:"name"`
	Completed bool   `gorm:"not null;default:false" json:"completed"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Task <-> Phase
	Phase *Phase `gorm:"foreignKey:PhaseID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Task) TableName() string { return "tasks" }
