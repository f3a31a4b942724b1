package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"jobboard/dto"
	"jobboard/internal/authz"
	"jobboard/internal/query"
	"jobboard/internal/repository"
	"jobboard/model"
)

// JobService orchestrates the listing operations: it consults the
// authorization gate before any mutation, translates filters for
// reads, and delegates application appends to the store's conditional
// write.
type JobService struct {
	jobs  repository.JobStore
	users repository.UserStore
}

func NewJobService(jobs repository.JobStore, users repository.UserStore) *JobService {
	return &JobService{jobs: jobs, users: users}
}

// Search translates raw filters, pages through matching active jobs
// and attaches poster display info (name, company — no email on list
// results).
func (s *JobService) Search(ctx context.Context, f query.Filters) (*dto.JobListResponse, error) {
	q := query.Translate(f)

	jobs, total, err := s.jobs.FindPage(ctx, q)
	if err != nil {
		return nil, err
	}

	posters, err := s.postersFor(ctx, jobs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, jobResponse(&jobs[i], posters[jobs[i].PostedBy], false))
	}

	return &dto.JobListResponse{
		Jobs:        items,
		TotalPages:  query.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
		Total:       total,
	}, nil
}

// Get returns a single job with full poster contact info.
func (s *JobService) Get(ctx context.Context, id bson.ObjectID) (*dto.JobResponse, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}

	poster, err := s.users.FindByID(ctx, job.PostedBy)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	resp := jobResponse(job, deref(poster), true)
	return &resp, nil
}

// Create validates and persists a new posting owned by the actor.
func (s *JobService) Create(ctx context.Context, actor *model.User, body dto.CreateJobDTO) (*dto.JobResponse, error) {
	if err := authz.Decide(actor, authz.ActionCreate, nil); err != nil {
		return nil, err
	}
	if err := validateBody(body); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := model.Job{
		Title:        body.Title,
		Company:      body.Company,
		Location:     body.Location,
		Description:  body.Description,
		Requirements: body.Requirements,
		Type:         body.Type,
		Remote:       body.Remote,
		Salary:       model.Salary(body.Salary),
		PostedBy:     actor.ID,
		IsActive:     true,
		Applications: []model.Application{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if job.Requirements == nil {
		job.Requirements = []string{}
	}

	if err := s.jobs.Insert(ctx, &job); err != nil {
		return nil, err
	}

	resp := jobResponse(&job, *actor, false)
	return &resp, nil
}

// Update applies caller-supplied field changes to an owned posting.
// The $set document is built from an explicit whitelist, so posted_by,
// timestamps and the application list can never be touched through
// this path. Existence is checked before ownership.
func (s *JobService) Update(ctx context.Context, actor *model.User, id bson.ObjectID, body dto.UpdateJobDTO) (*dto.JobResponse, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := authz.Decide(actor, authz.ActionUpdate, job); err != nil {
		return nil, err
	}
	if err := validateBody(body); err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if body.Title != nil {
		set["title"] = *body.Title
	}
	if body.Company != nil {
		set["company"] = *body.Company
	}
	if body.Location != nil {
		set["location"] = *body.Location
	}
	if body.Description != nil {
		set["description"] = *body.Description
	}
	if body.Requirements != nil {
		set["requirements"] = *body.Requirements
	}
	if body.Type != nil {
		set["type"] = *body.Type
	}
	if body.Remote != nil {
		set["remote"] = *body.Remote
	}
	if body.Salary != nil {
		set["salary"] = model.Salary(*body.Salary)
	}
	if body.IsActive != nil {
		set["is_active"] = *body.IsActive
	}

	updated, err := s.jobs.UpdateFields(ctx, id, set)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}

	resp := jobResponse(updated, *actor, false)
	return &resp, nil
}

// Delete hard-removes an owned posting, applications with it.
func (s *JobService) Delete(ctx context.Context, actor *model.User, id bson.ObjectID) error {
	job, err := s.jobs.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrJobNotFound
	}
	if err != nil {
		return err
	}
	if err := authz.Decide(actor, authz.ActionDelete, job); err != nil {
		return err
	}

	err = s.jobs.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrJobNotFound
	}
	return err
}

// Apply records the actor's application. The append is conditional on
// no existing entry for the same applicant, so a second call — or a
// concurrent duplicate — reports alreadyApplied instead of adding an
// entry.
func (s *JobService) Apply(ctx context.Context, actor *model.User, id bson.ObjectID) (alreadyApplied bool, err error) {
	job, err := s.jobs.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, ErrJobNotFound
	}
	if err != nil {
		return false, err
	}
	if err := authz.Decide(actor, authz.ActionApply, job); err != nil {
		return false, err
	}

	appended, err := s.jobs.AppendApplication(ctx, id, model.Application{
		UserID:    actor.ID,
		AppliedAt: time.Now().UTC(),
	})
	if err != nil {
		return false, err
	}
	return !appended, nil
}

// MyPosted returns the employer's own postings, newest first, with the
// application list expanded to applicant names and emails.
func (s *JobService) MyPosted(ctx context.Context, actor *model.User) ([]dto.PostedJobResponse, error) {
	if err := authz.Decide(actor, authz.ActionListPosted, nil); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.FindByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	var applicantIDs []bson.ObjectID
	seen := make(map[bson.ObjectID]struct{})
	for i := range jobs {
		for _, a := range jobs[i].Applications {
			if _, ok := seen[a.UserID]; !ok {
				seen[a.UserID] = struct{}{}
				applicantIDs = append(applicantIDs, a.UserID)
			}
		}
	}
	applicants, err := s.users.FindByIDs(ctx, applicantIDs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PostedJobResponse, 0, len(jobs))
	for i := range jobs {
		job := &jobs[i]
		apps := make([]dto.ApplicationDTO, 0, len(job.Applications))
		for _, a := range job.Applications {
			u := applicants[a.UserID]
			apps = append(apps, dto.ApplicationDTO{
				User: dto.ApplicantDTO{
					ID:    a.UserID.Hex(),
					Name:  u.Name,
					Email: u.Email,
				},
				AppliedAt: a.AppliedAt,
			})
		}
		out = append(out, dto.PostedJobResponse{
			JobResponse:  jobResponse(job, *actor, false),
			Applications: apps,
		})
	}
	return out, nil
}

// MyApplications returns every posting holding an application entry
// for the actor, poster display info attached, no pagination.
func (s *JobService) MyApplications(ctx context.Context, actor *model.User) ([]dto.JobResponse, error) {
	if err := authz.Decide(actor, authz.ActionListApplied, nil); err != nil {
		return nil, err
	}

	jobs, err := s.jobs.FindByApplicant(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	posters, err := s.postersFor(ctx, jobs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, jobResponse(&jobs[i], posters[jobs[i].PostedBy], false))
	}
	return out, nil
}

func (s *JobService) postersFor(ctx context.Context, jobs []model.Job) (map[bson.ObjectID]model.User, error) {
	var ids []bson.ObjectID
	seen := make(map[bson.ObjectID]struct{})
	for i := range jobs {
		if _, ok := seen[jobs[i].PostedBy]; !ok {
			seen[jobs[i].PostedBy] = struct{}{}
			ids = append(ids, jobs[i].PostedBy)
		}
	}
	return s.users.FindByIDs(ctx, ids)
}

func jobResponse(job *model.Job, poster model.User, withEmail bool) dto.JobResponse {
	posted := dto.PostedByDTO{
		ID:      job.PostedBy.Hex(),
		Name:    poster.Name,
		Company: poster.Company,
	}
	if withEmail {
		posted.Email = poster.Email
	}

	apps := job.Applications
	if apps == nil {
		apps = []model.Application{}
	}

	return dto.JobResponse{
		ID:           job.ID.Hex(),
		Title:        job.Title,
		Company:      job.Company,
		Location:     job.Location,
		Description:  job.Description,
		Requirements: job.Requirements,
		Type:         job.Type,
		Remote:       job.Remote,
		Salary:       dto.SalaryDTO(job.Salary),
		PostedBy:     posted,
		IsActive:     job.IsActive,
		Applications: apps,
		CreatedAt:    job.CreatedAt,
		UpdatedAt:    job.UpdatedAt,
	}
}

func deref(u *model.User) model.User {
	if u == nil {
		return model.User{}
	}
	return *u
}
