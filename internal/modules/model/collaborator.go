package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Collaborator links an account to a project. Rows are written by the
// invitation flow in the account service; this service only lists them.
type Collaborator struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index:ix_collaborator_project_id" json:"project_id"`

	UserID string `gorm:"type:text;not null" json:"user_id"`
	Name   string `gorm:"type:text" json:"name"`
	Email  string `gorm:"type:text" json:"email"`
	Role   string `gorm:"type:text;not null;default:'member'" json:"role"`

	// Per-collaborator dashboard permissions, written by the inviter.
	Permissions datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"permissions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Collaborator <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Collaborator) TableName() string { return "collaborators" }
