package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Employment types accepted on a job posting.
const (
	TypeFullTime   = "full-time"
	TypePartTime   = "part-time"
	TypeContract   = "contract"
	TypeInternship = "internship"
)

func ValidJobType(t string) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeInternship:
		return true
	}
	return false
}

type Salary struct {
	Min      int    `json:"min"      bson:"min"`
	Max      int    `json:"max"      bson:"max"`
	Currency string `json:"currency" bson:"currency"`
}

// Application is one entry in a job's embedded application list.
// At most one entry exists per applicant; the conditional append in
// the repository enforces that.
type Application struct {
	UserID    bson.ObjectID `json:"user"      bson:"user_id"`
	AppliedAt time.Time     `json:"appliedAt" bson:"applied_at"`
}

type Job struct {
	ID           bson.ObjectID `json:"id"           bson:"_id,omitempty"`
	Title        string        `json:"title"        bson:"title"`
	Company      string        `json:"company"      bson:"company"`
	Location     string        `json:"location"     bson:"location"`
	Description  string        `json:"description"  bson:"description"`
	Requirements []string      `json:"requirements" bson:"requirements"`
	Type         string        `json:"type"         bson:"type"`
	Remote       bool          `json:"remote"       bson:"remote"`
	Salary       Salary        `json:"salary"       bson:"salary"`
	PostedBy     bson.ObjectID `json:"postedBy"     bson:"posted_by"`
	IsActive     bool          `json:"isActive"     bson:"is_active"`
	Applications []Application `json:"applications" bson:"applications"`
	CreatedAt    time.Time     `json:"createdAt"    bson:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt"    bson:"updated_at"`
}

// HasApplied reports whether userID already has an application entry.
func (j *Job) HasApplied(userID bson.ObjectID) bool {
	for _, a := range j.Applications {
		if a.UserID == userID {
			return true
		}
	}
	return false
}
