// Package memstore provides in-memory implementations of the
// repository stores. It mirrors the store contracts closely enough to
// back the service and route tests without a running MongoDB: the same
// filter documents the query translator emits are interpreted here,
// and the conditional application append is atomic under the store
// mutex.
package memstore

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"jobboard/internal/query"
	"jobboard/internal/repository"
	"jobboard/model"
)

type JobStore struct {
	mu   sync.Mutex
	jobs map[bson.ObjectID]model.Job
}

func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[bson.ObjectID]model.Job)}
}

func (s *JobStore) Insert(_ context.Context, job *model.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job.ID.IsZero() {
		job.ID = bson.NewObjectID()
	}
	s.jobs[job.ID] = *job
	return nil
}

func (s *JobStore) FindByID(_ context.Context, id bson.ObjectID) (*model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &job, nil
}

func (s *JobStore) FindPage(_ context.Context, q query.JobQuery) ([]model.Job, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []model.Job
	for _, job := range s.jobs {
		if matchFilter(job, q.Filter) {
			matched = append(matched, job)
		}
	}
	sortNewestFirst(matched)

	total := int64(len(matched))
	start := q.Skip()
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (s *JobStore) UpdateFields(_ context.Context, id bson.ObjectID, set bson.M) (*model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	applySet(&job, set)
	s.jobs[id] = job
	return &job, nil
}

func (s *JobStore) Delete(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.jobs, id)
	return nil
}

func (s *JobStore) AppendApplication(_ context.Context, id bson.ObjectID, app model.Application) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok || job.HasApplied(app.UserID) {
		return false, nil
	}
	job.Applications = append(job.Applications, app)
	job.UpdatedAt = app.AppliedAt
	s.jobs[id] = job
	return true, nil
}

func (s *JobStore) FindByOwner(_ context.Context, owner bson.ObjectID) ([]model.Job, error) {
	return s.collect(func(j model.Job) bool { return j.PostedBy == owner })
}

func (s *JobStore) FindByApplicant(_ context.Context, applicant bson.ObjectID) ([]model.Job, error) {
	return s.collect(func(j model.Job) bool { return j.HasApplied(applicant) })
}

func (s *JobStore) collect(keep func(model.Job) bool) ([]model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Job
	for _, job := range s.jobs {
		if keep(job) {
			out = append(out, job)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(jobs []model.Job) {
	sort.Slice(jobs, func(i, k int) bool {
		if !jobs[i].CreatedAt.Equal(jobs[k].CreatedAt) {
			return jobs[i].CreatedAt.After(jobs[k].CreatedAt)
		}
		return jobs[i].ID.Hex() > jobs[k].ID.Hex()
	})
}

// matchFilter interprets the filter keys the query translator emits.
func matchFilter(job model.Job, filter bson.M) bool {
	for key, want := range filter {
		switch key {
		case "is_active":
			if job.IsActive != want.(bool) {
				return false
			}
		case "type":
			if job.Type != want.(string) {
				return false
			}
		case "remote":
			if job.Remote != want.(bool) {
				return false
			}
		case "location":
			pattern := want.(bson.M)["$regex"].(string)
			re := regexp.MustCompile("(?i)" + pattern)
			if !re.MatchString(job.Location) {
				return false
			}
		case "$text":
			term := strings.ToLower(want.(bson.M)["$search"].(string))
			haystack := strings.ToLower(job.Title + " " + job.Description + " " + job.Company)
			if !strings.Contains(haystack, term) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func applySet(job *model.Job, set bson.M) {
	for key, val := range set {
		switch key {
		case "title":
			job.Title = val.(string)
		case "company":
			job.Company = val.(string)
		case "location":
			job.Location = val.(string)
		case "description":
			job.Description = val.(string)
		case "requirements":
			job.Requirements = val.([]string)
		case "type":
			job.Type = val.(string)
		case "remote":
			job.Remote = val.(bool)
		case "salary":
			job.Salary = val.(model.Salary)
		case "is_active":
			job.IsActive = val.(bool)
		case "updated_at":
			job.UpdatedAt = val.(time.Time)
		}
	}
}
