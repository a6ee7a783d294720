package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "applied"
	StatusScreened    ApplicationStatus = "screened"
	StatusInterviewed ApplicationStatus = "interviewed"
	StatusOffer       ApplicationStatus = "offer"
	StatusHired       ApplicationStatus = "hired"
	StatusRejected    ApplicationStatus = "rejected"
)

// PipelineStatuses is every stage in canonical board order.
// The board renders one lane per entry, in this order.
var PipelineStatuses = []ApplicationStatus{
	StatusApplied,
	StatusScreened,
	StatusInterviewed,
	StatusOffer,
	StatusHired,
	StatusRejected,
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusApplied, StatusScreened, StatusInterviewed, StatusOffer, StatusHired, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s is absorbing: once hired or rejected,
// an application leaves the pipeline.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusHired || s == StatusRejected
}

// GeneralJobID is the sentinel job id used for applications submitted
// to the general talent pool rather than a specific posting.
const GeneralJobID = "general"

type Application struct {
	ID    string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	JobID string `gorm:"column:job_id;type:text;index" json:"job_id"`

	CandidateName  string `gorm:"column:candidate_name;type:text" json:"candidate_name"`
	CandidateEmail string `gorm:"column:candidate_email;type:text;index" json:"candidate_email"`
	CandidatePhone string `gorm:"column:candidate_phone;type:text" json:"candidate_phone,omitempty"`

	ResumeURL   string `gorm:"column:resume_url;type:text" json:"resume_url,omitempty"`
	ResumeText  string `gorm:"column:resume_text;type:text" json:"-"`
	CoverLetter string `gorm:"column:cover_letter;type:text" json:"cover_letter,omitempty"`

	Status ApplicationStatus `gorm:"column:status;type:text;index" json:"status"`

	// Job-specific form answers, validated against the job's form schema.
	Answers datatypes.JSON `gorm:"column:answers;type:jsonb" json:"answers,omitempty"`

	// Filled by the screening service from the LLM analysis.
	AIScore    *int           `gorm:"column:ai_score" json:"ai_score,omitempty"`
	AISummary  string         `gorm:"column:ai_summary;type:text" json:"ai_summary,omitempty"`
	Skills     pq.StringArray `gorm:"column:skills;type:text[]" json:"skills,omitempty"`
	Experience datatypes.JSON `gorm:"column:experience;type:jsonb" json:"experience,omitempty"`
	Education  datatypes.JSON `gorm:"column:education;type:jsonb" json:"education,omitempty"`

	ResumeEmbedding pgvector.Vector `gorm:"column:resume_embedding;type:vector(768)" json:"-"`

	AppliedAt time.Time `gorm:"column:applied_at;type:timestamptz" json:"applied_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (Application) TableName() string { return "applications" }
