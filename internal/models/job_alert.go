package models

import "time"

// JobAlert is a public subscription: the email gets notified when a new
// posting matching the keyword (or any posting, if empty) opens.
type JobAlert struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"column:email;type:text;index" json:"email"`
	Keyword   string    `gorm:"column:keyword;type:text" json:"keyword,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (JobAlert) TableName() string { return "job_alerts" }
