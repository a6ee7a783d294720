package models

import "time"

// TagPalette is the fixed swatch set the tag UI offers. Colors outside
// this set are rejected at create/update time.
var TagPalette = []string{
	"#ef4444", "#f97316", "#f59e0b", "#eab308", "#84cc16",
	"#22c55e", "#10b981", "#14b8a6", "#06b6d4", "#0ea5e9",
	"#3b82f6", "#6366f1", "#8b5cf6", "#a855f7", "#d946ef",
	"#ec4899", "#f43f5e", "#64748b", "#78716c", "#171717",
}

func ValidTagColor(color string) bool {
	for _, c := range TagPalette {
		if c == color {
			return true
		}
	}
	return false
}

type CandidateTag struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:text;uniqueIndex" json:"name"`
	Color       string    `gorm:"column:color;type:text" json:"color"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (CandidateTag) TableName() string { return "candidate_tags" }

// ApplicationTag links a tag to an application. The composite unique
// index is the authority for the one-row-per-pair invariant.
type ApplicationTag struct {
	ID            string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ApplicationID string    `gorm:"column:application_id;type:uuid;uniqueIndex:idx_application_tag" json:"application_id"`
	TagID         string    `gorm:"column:tag_id;type:uuid;uniqueIndex:idx_application_tag;index" json:"tag_id"`
	CreatedAt     time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (ApplicationTag) TableName() string { return "application_tags" }
