package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"jobboard/dto"
	"jobboard/internal/authz"
	"jobboard/internal/query"
	"jobboard/internal/repository/memstore"
	"jobboard/model"
)

func newJobServiceForTest() (*JobService, *memstore.JobStore, *memstore.UserStore) {
	jobs := memstore.NewJobStore()
	users := memstore.NewUserStore()
	return NewJobService(jobs, users), jobs, users
}

func seedUser(t *testing.T, users *memstore.UserStore, name, role, company string) *model.User {
	t.Helper()
	u := &model.User{
		Name:    name,
		Email:   name + "@example.com",
		Role:    role,
		Company: company,
	}
	require.NoError(t, users.Insert(context.Background(), u))
	return u
}

func validCreateBody() dto.CreateJobDTO {
	return dto.CreateJobDTO{
		Title:        "Backend Engineer",
		Company:      "Acme",
		Location:     "Berlin",
		Description:  "Build the backend.",
		Requirements: []string{"Go"},
		Type:         model.TypeFullTime,
		Remote:       true,
		Salary:       dto.SalaryDTO{Min: 50000, Max: 80000, Currency: "USD"},
	}
}

func TestCreateJob(t *testing.T) {
	svc, _, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")

	resp, err := svc.Create(context.Background(), employer, validCreateBody())
	require.NoError(t, err)

	assert.Equal(t, employer.ID.Hex(), resp.PostedBy.ID)
	assert.Equal(t, "eva", resp.PostedBy.Name)
	assert.Empty(t, resp.PostedBy.Email)
	assert.True(t, resp.IsActive)
	assert.Empty(t, resp.Applications)
	assert.Equal(t, 50000, resp.Salary.Min)
}

func TestCreateJobForbidden(t *testing.T) {
	svc, _, users := newJobServiceForTest()
	seeker := seedUser(t, users, "finn", model.RoleJobseeker, "")

	_, err := svc.Create(context.Background(), seeker, validCreateBody())
	assert.ErrorIs(t, err, authz.ErrForbiddenRole)

	_, err = svc.Create(context.Background(), nil, validCreateBody())
	assert.ErrorIs(t, err, authz.ErrForbiddenRole)
}

func TestCreateJobValidation(t *testing.T) {
	svc, _, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")

	t.Run("missing required fields", func(t *testing.T) {
		body := validCreateBody()
		body.Title = ""
		body.Location = ""

		_, err := svc.Create(context.Background(), employer, body)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "title")
		assert.Contains(t, ve.Fields, "location")
	})

	t.Run("salary min above max", func(t *testing.T) {
		body := validCreateBody()
		body.Salary = dto.SalaryDTO{Min: 90000, Max: 80000, Currency: "USD"}

		_, err := svc.Create(context.Background(), employer, body)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "salary.max")
	})

	t.Run("invalid type", func(t *testing.T) {
		body := validCreateBody()
		body.Type = "weekend-only"

		_, err := svc.Create(context.Background(), employer, body)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "type")
	})
}

func TestGetJob(t *testing.T) {
	svc, _, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")

	created, err := svc.Create(context.Background(), employer, validCreateBody())
	require.NoError(t, err)

	id, err := bson.ObjectIDFromHex(created.ID)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "eva", got.PostedBy.Name)
	// detail view includes the poster's contact email
	assert.Equal(t, "eva@example.com", got.PostedBy.Email)

	_, err = svc.Get(context.Background(), bson.NewObjectID())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestUpdateJob(t *testing.T) {
	svc, _, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")

	created, err := svc.Create(context.Background(), employer, validCreateBody())
	require.NoError(t, err)
	id, _ := bson.ObjectIDFromHex(created.ID)

	title := "Senior Backend Engineer"
	remote := false
	updated, err := svc.Update(context.Background(), employer, id, dto.UpdateJobDTO{
		Title:  &title,
		Remote: &remote,
	})
	require.NoError(t, err)

	assert.Equal(t, title, updated.Title)
	assert.False(t, updated.Remote)
	// untouched fields survive
	assert.Equal(t, "Berlin", updated.Location)
	assert.True(t, !updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateJobOwnershipImmutable(t *testing.T) {
	svc, jobs, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")

	created, err := svc.Create(context.Background(), employer, validCreateBody())
	require.NoError(t, err)
	id, _ := bson.ObjectIDFromHex(created.ID)

	title := "Changed"
	_, err = svc.Update(context.Background(), employer, id, dto.UpdateJobDTO{Title: &title})
	require.NoError(t, err)

	stored, err := jobs.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, employer.ID, stored.PostedBy)
	assert.Equal(t, created.CreatedAt, stored.CreatedAt)
}

func TestUpdateJobAuthorization(t *testing.T) {
	svc, _, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")
	rival := seedUser(t, users, "rick", model.RoleEmployer, "Rival")
	seeker := seedUser(t, users, "finn", model.RoleJobseeker, "")

	created, err := svc.Create(context.Background(), employer, validCreateBody())
	require.NoError(t, err)
	id, _ := bson.ObjectIDFromHex(created.ID)

	title := "Hijacked"
	_, err = svc.Update(context.Background(), rival, id, dto.UpdateJobDTO{Title: &title})
	assert.ErrorIs(t, err, authz.ErrNotOwner)

	_, err = svc.Update(context.Background(), seeker, id, dto.UpdateJobDTO{Title: &title})
	assert.ErrorIs(t, err, authz.ErrForbiddenRole)

	// existence is reported before ownership
	_, err = svc.Update(context.Background(), rival, bson.NewObjectID(), dto.UpdateJobDTO{Title: &title})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestDeleteJob(t *testing.T) {
	svc, _, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")
	rival := seedUser(t, users, "rick", model.RoleEmployer, "Rival")

	created, err := svc.Create(context.Background(), employer, validCreateBody())
	require.NoError(t, err)
	id, _ := bson.ObjectIDFromHex(created.ID)

	assert.ErrorIs(t, svc.Delete(context.Background(), rival, id), authz.ErrNotOwner)

	require.NoError(t, svc.Delete(context.Background(), employer, id))

	_, err = svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestApplyIdempotent(t *testing.T) {
	svc, jobs, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")
	j1 := seedUser(t, users, "finn", model.RoleJobseeker, "")
	j2 := seedUser(t, users, "gwen", model.RoleJobseeker, "")

	created, err := svc.Create(context.Background(), employer, validCreateBody())
	require.NoError(t, err)
	id, _ := bson.ObjectIDFromHex(created.ID)

	already, err := svc.Apply(context.Background(), j1, id)
	require.NoError(t, err)
	assert.False(t, already)

	already, err = svc.Apply(context.Background(), j1, id)
	require.NoError(t, err)
	assert.True(t, already)

	stored, err := jobs.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, stored.Applications, 1)

	already, err = svc.Apply(context.Background(), j2, id)
	require.NoError(t, err)
	assert.False(t, already)

	stored, err = jobs.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, stored.Applications, 2)
}

func TestApplyAuthorization(t *testing.T) {
	svc, _, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")
	seeker := seedUser(t, users, "finn", model.RoleJobseeker, "")

	created, err := svc.Create(context.Background(), employer, validCreateBody())
	require.NoError(t, err)
	id, _ := bson.ObjectIDFromHex(created.ID)

	_, err = svc.Apply(context.Background(), employer, id)
	assert.ErrorIs(t, err, authz.ErrForbiddenRole)

	_, err = svc.Apply(context.Background(), seeker, bson.NewObjectID())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestApplyConcurrentSameApplicant(t *testing.T) {
	svc, jobs, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")
	seeker := seedUser(t, users, "finn", model.RoleJobseeker, "")

	created, err := svc.Create(context.Background(), employer, validCreateBody())
	require.NoError(t, err)
	id, _ := bson.ObjectIDFromHex(created.ID)

	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Apply(context.Background(), seeker, id)
		}()
	}
	wg.Wait()

	stored, err := jobs.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, stored.Applications, 1)
}

func seedJobDirect(t *testing.T, jobs *memstore.JobStore, owner bson.ObjectID, i int, active bool, jobType, location string, remote bool) {
	t.Helper()
	err := jobs.Insert(context.Background(), &model.Job{
		Title:       fmt.Sprintf("Job %02d", i),
		Company:     "Acme",
		Location:    location,
		Description: "desc",
		Type:        jobType,
		Remote:      remote,
		Salary:      model.Salary{Min: 1, Max: 2, Currency: "USD"},
		PostedBy:    owner,
		IsActive:    active,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour),
		UpdatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Hour),
	})
	require.NoError(t, err)
}

func TestSearchFiltersAndOrder(t *testing.T) {
	svc, jobs, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")

	seedJobDirect(t, jobs, employer.ID, 0, true, model.TypeFullTime, "Berlin", true)
	seedJobDirect(t, jobs, employer.ID, 1, true, model.TypeContract, "Munich", false)
	seedJobDirect(t, jobs, employer.ID, 2, false, model.TypeFullTime, "Berlin", true)
	seedJobDirect(t, jobs, employer.ID, 3, true, model.TypeFullTime, "berlin-mitte", false)

	t.Run("base predicate", func(t *testing.T) {
		resp, err := svc.Search(context.Background(), query.Filters{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Total)
		for _, j := range resp.Jobs {
			assert.True(t, j.IsActive)
		}
		// newest first
		assert.Equal(t, "Job 03", resp.Jobs[0].Title)
		assert.Equal(t, "Job 00", resp.Jobs[2].Title)
	})

	t.Run("type and remote", func(t *testing.T) {
		resp, err := svc.Search(context.Background(), query.Filters{
			Type:   model.TypeFullTime,
			Remote: "true",
		})
		require.NoError(t, err)
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, "Job 00", resp.Jobs[0].Title)
	})

	t.Run("location partial case-insensitive", func(t *testing.T) {
		resp, err := svc.Search(context.Background(), query.Filters{Location: "BERLIN"})
		require.NoError(t, err)
		assert.Len(t, resp.Jobs, 2)
	})

	t.Run("poster info attached without email", func(t *testing.T) {
		resp, err := svc.Search(context.Background(), query.Filters{})
		require.NoError(t, err)
		for _, j := range resp.Jobs {
			assert.Equal(t, "eva", j.PostedBy.Name)
			assert.Equal(t, "Acme", j.PostedBy.Company)
			assert.Empty(t, j.PostedBy.Email)
		}
	})
}

func TestSearchPagination(t *testing.T) {
	svc, jobs, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")

	for i := 0; i < 25; i++ {
		seedJobDirect(t, jobs, employer.ID, i, true, model.TypeFullTime, "Berlin", false)
	}

	seen := make(map[string]bool)
	var pages int64
	for page := int64(1); ; page++ {
		resp, err := svc.Search(context.Background(), query.Filters{Page: page, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(25), resp.Total)
		assert.Equal(t, int64(3), resp.TotalPages)
		assert.Equal(t, page, resp.CurrentPage)

		for _, j := range resp.Jobs {
			assert.False(t, seen[j.ID], "job %s duplicated across pages", j.ID)
			seen[j.ID] = true
		}
		pages = page
		if page >= resp.TotalPages {
			break
		}
	}

	assert.Equal(t, int64(3), pages)
	assert.Len(t, seen, 25)
}

func TestMyPosted(t *testing.T) {
	svc, _, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")
	rival := seedUser(t, users, "rick", model.RoleEmployer, "Rival")
	j1 := seedUser(t, users, "finn", model.RoleJobseeker, "")
	j2 := seedUser(t, users, "gwen", model.RoleJobseeker, "")

	created, err := svc.Create(context.Background(), employer, validCreateBody())
	require.NoError(t, err)
	id, _ := bson.ObjectIDFromHex(created.ID)

	_, err = svc.Create(context.Background(), rival, validCreateBody())
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), j1, id)
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), j2, id)
	require.NoError(t, err)

	posted, err := svc.MyPosted(context.Background(), employer)
	require.NoError(t, err)
	require.Len(t, posted, 1)
	require.Len(t, posted[0].Applications, 2)

	names := []string{
		posted[0].Applications[0].User.Name,
		posted[0].Applications[1].User.Name,
	}
	assert.ElementsMatch(t, []string{"finn", "gwen"}, names)
	assert.NotEmpty(t, posted[0].Applications[0].User.Email)

	_, err = svc.MyPosted(context.Background(), j1)
	assert.ErrorIs(t, err, authz.ErrForbiddenRole)
}

func TestMyApplications(t *testing.T) {
	svc, _, users := newJobServiceForTest()
	employer := seedUser(t, users, "eva", model.RoleEmployer, "Acme")
	seeker := seedUser(t, users, "finn", model.RoleJobseeker, "")

	created, err := svc.Create(context.Background(), employer, validCreateBody())
	require.NoError(t, err)
	id, _ := bson.ObjectIDFromHex(created.ID)

	_, err = svc.Create(context.Background(), employer, validCreateBody())
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), seeker, id)
	require.NoError(t, err)

	applied, err := svc.MyApplications(context.Background(), seeker)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, created.ID, applied[0].ID)
	assert.Equal(t, "eva", applied[0].PostedBy.Name)

	_, err = svc.MyApplications(context.Background(), employer)
	assert.ErrorIs(t, err, authz.ErrForbiddenRole)
}
