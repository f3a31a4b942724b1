package dto

import (
	"time"

	"jobboard/model"
)

type SalaryDTO struct {
	Min      int    `json:"min"      validate:"min=0"`
	Max      int    `json:"max"      validate:"gtefield=Min"`
	Currency string `json:"currency" validate:"required"`
}

// ===== Requests =====

type CreateJobDTO struct {
	Title        string    `json:"title"        validate:"required"`
	Company      string    `json:"company"      validate:"required"`
	Location     string    `json:"location"     validate:"required"`
	Description  string    `json:"description"  validate:"required"`
	Requirements []string  `json:"requirements"`
	Type         string    `json:"type"         validate:"required,oneof=full-time part-time contract internship"`
	Remote       bool      `json:"remote"`
	Salary       SalaryDTO `json:"salary"`
}

// UpdateJobDTO carries partial changes; nil fields are left untouched.
// Ownership and timestamps are deliberately absent.
type UpdateJobDTO struct {
	Title        *string    `json:"title"        validate:"omitempty,min=1"`
	Company      *string    `json:"company"      validate:"omitempty,min=1"`
	Location     *string    `json:"location"     validate:"omitempty,min=1"`
	Description  *string    `json:"description"  validate:"omitempty,min=1"`
	Requirements *[]string  `json:"requirements"`
	Type         *string    `json:"type"         validate:"omitempty,oneof=full-time part-time contract internship"`
	Remote       *bool      `json:"remote"`
	Salary       *SalaryDTO `json:"salary"`
	IsActive     *bool      `json:"isActive"`
}

// ===== Responses =====

// PostedByDTO is the poster info attached to job responses.
// Email is only populated on single-job detail views.
type PostedByDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
}

type ApplicantDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ApplicationDTO is an expanded application entry for the employer's
// own-postings view.
type ApplicationDTO struct {
	User      ApplicantDTO `json:"user"`
	AppliedAt time.Time    `json:"appliedAt"`
}

type JobResponse struct {
	ID           string              `json:"id"`
	Title        string              `json:"title"`
	Company      string              `json:"company"`
	Location     string              `json:"location"`
	Description  string              `json:"description"`
	Requirements []string            `json:"requirements"`
	Type         string              `json:"type"`
	Remote       bool                `json:"remote"`
	Salary       SalaryDTO           `json:"salary"`
	PostedBy     PostedByDTO         `json:"postedBy"`
	IsActive     bool                `json:"isActive"`
	Applications []model.Application `json:"applications"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// PostedJobResponse is JobResponse with the application list expanded
// to include applicant names and emails.
type PostedJobResponse struct {
	JobResponse
	Applications []ApplicationDTO `json:"applications"`
}

type JobListResponse struct {
	Jobs        []JobResponse `json:"jobs"`
	TotalPages  int64         `json:"totalPages"`
	CurrentPage int64         `json:"currentPage"`
	Total       int64         `json:"total"`
}

type ApplyResponse struct {
	Message        string `json:"message"`
	AlreadyApplied bool   `json:"alreadyApplied"`
}
