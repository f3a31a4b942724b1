package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"jobboard/internal/repository"
	"jobboard/model"
)

type UserStore struct {
	mu    sync.Mutex
	users map[bson.ObjectID]model.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[bson.ObjectID]model.User)}
}

func (s *UserStore) Insert(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if u.ID.IsZero() {
		u.ID = bson.NewObjectID()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id bson.ObjectID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) FindByIDs(_ context.Context, ids []bson.ObjectID) (map[bson.ObjectID]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[bson.ObjectID]model.User, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}
