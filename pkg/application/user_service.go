package application

import (
	"context"
	"fmt"

	"github.com/darylhandley/15five-utils/pkg/domain"
	"github.com/darylhandley/15five-utils/pkg/domain/user"
)

// UserService caches the company directory for the life of the process.
// The cache is loaded lazily on first use and replaced wholesale on
// Refresh; commands run one at a time, so there is no finer-grained
// synchronization.
type UserService struct {
	gateway domain.Gateway

	users []user.User
	byID  map[int]user.User
}

func NewUserService(gateway domain.Gateway) *UserService {
	return &UserService{gateway: gateway}
}

func (s *UserService) ensureLoaded(ctx context.Context) error {
	if s.users != nil {
		return nil
	}
	users, err := s.gateway.Users(ctx)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	s.replace(users)
	return nil
}

func (s *UserService) replace(users []user.User) {
	byID := make(map[int]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	s.users = users
	s.byID = byID
}

// IsLoaded reports whether the directory cache has been populated.
func (s *UserService) IsLoaded() bool {
	return s.users != nil
}

// List returns all users, loading the cache on first call.
func (s *UserService) List(ctx context.Context) ([]user.User, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.users, nil
}

// ByID looks up a user in the cache. The second return is false when the
// ID is unknown; an unknown user is an ordinary outcome, not an error.
func (s *UserService) ByID(ctx context.Context, id int) (user.User, bool, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return user.User{}, false, err
	}
	u, ok := s.byID[id]
	return u, ok, nil
}

// DisplayName returns the user's full name, or a placeholder when the
// ID is not in the directory.
func (s *UserService) DisplayName(ctx context.Context, id int) string {
	if u, ok, err := s.ByID(ctx, id); err == nil && ok {
		return u.FullName
	}
	return fmt.Sprintf("User ID %d", id)
}

// Search returns users whose name or title contains the term.
func (s *UserService) Search(ctx context.Context, term string) ([]user.User, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	var matched []user.User
	for _, u := range s.users {
		if u.Matches(term) {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// Refresh reloads the directory from the API and swaps the cache. On
// failure the existing cache is kept.
func (s *UserService) Refresh(ctx context.Context) (int, error) {
	users, err := s.gateway.Users(ctx)
	if err != nil {
		return 0, fmt.Errorf("refresh users: %w", err)
	}
	s.replace(users)
	return len(users), nil
}
