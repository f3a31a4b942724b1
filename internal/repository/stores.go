package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"jobboard/internal/query"
	"jobboard/model"
)

var (
	ErrNotFound       = errors.New("document not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// JobStore is the persistence collaborator for job postings.
type JobStore interface {
	Insert(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Job, error)
	// FindPage returns one page of matches plus the total match count.
	FindPage(ctx context.Context, q query.JobQuery) ([]model.Job, int64, error)
	// UpdateFields applies a $set-style document and returns the job
	// as stored afterwards.
	UpdateFields(ctx context.Context, id bson.ObjectID, set bson.M) (*model.Job, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	// AppendApplication appends app to the job's application list only
	// if no entry for the same applicant exists. The check and the
	// append are a single conditional write; two concurrent calls for
	// the same applicant cannot both append. Returns false when the
	// entry was already present (or the job vanished meanwhile).
	AppendApplication(ctx context.Context, id bson.ObjectID, app model.Application) (bool, error)
	FindByOwner(ctx context.Context, owner bson.ObjectID) ([]model.Job, error)
	FindByApplicant(ctx context.Context, applicant bson.ObjectID) ([]model.Job, error)
}

type UserStore interface {
	Insert(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	FindByIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
