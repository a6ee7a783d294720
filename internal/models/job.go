package models

import (
	"time"

	"gorm.io/datatypes"
)

type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
)

type Job struct {
	ID          string    `gorm:"column:id;type:text;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;type:text" json:"title"`
	Department  string    `gorm:"column:department;type:text" json:"department,omitempty"`
	Location    string    `gorm:"column:location;type:text" json:"location,omitempty"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Status      JobStatus `gorm:"column:status;type:text;index" json:"status"`

	// Declarative extra application-form fields (see internal/forms).
	FormSchema datatypes.JSON `gorm:"column:form_schema;type:jsonb" json:"form_schema,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Job) TableName() string { return "jobs" }
