package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	RoleEmployer  = "employer"
	RoleJobseeker = "jobseeker"
)

func ValidRole(r string) bool {
	return r == RoleEmployer || r == RoleJobseeker
}

type User struct {
	ID           bson.ObjectID `json:"id"                bson:"_id,omitempty"`
	Name         string        `json:"name"              bson:"name"`
	Email        string        `json:"email"             bson:"email"`
	PasswordHash string        `json:"-"                 bson:"password_hash"`
	Role         string        `json:"role"              bson:"role"`
	Company      string        `json:"company,omitempty" bson:"company,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"         bson:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt"         bson:"updated_at"`
}
