package application

import (
	"fmt"
	"strings"

	"github.com/darylhandley/15five-utils/pkg/domain"
	"github.com/darylhandley/15five-utils/pkg/domain/alias"
)

// AliasService manages the local alias book. It consults the team
// service before deleting an alias so that teams never hold dangling
// members; the dependency runs strictly alias -> team.
type AliasService struct {
	repo  domain.LocalRepository
	teams *TeamService
}

func NewAliasService(repo domain.LocalRepository, teams *TeamService) *AliasService {
	return &AliasService{repo: repo, teams: teams}
}

// List returns the alias book.
func (s *AliasService) List() (*alias.Book, error) {
	return s.repo.LoadAliases()
}

// Create registers an alias for a user ID.
func (s *AliasService) Create(name string, userID int) error {
	book, err := s.repo.LoadAliases()
	if err != nil {
		return fmt.Errorf("load aliases: %w", err)
	}

	if err := book.Add(name, userID); err != nil {
		return err
	}

	if err := s.repo.SaveAliases(book); err != nil {
		return fmt.Errorf("save aliases: %w", err)
	}
	return nil
}

// Remove deletes an alias unless a team still uses it.
func (s *AliasService) Remove(name string) error {
	inUse, err := s.teams.TeamsContaining(name)
	if err != nil {
		return err
	}
	if len(inUse) > 0 {
		return fmt.Errorf("cannot remove alias %q: used by team(s) %s; remove it from the team(s) first",
			name, strings.Join(inUse, ", "))
	}

	book, err := s.repo.LoadAliases()
	if err != nil {
		return fmt.Errorf("load aliases: %w", err)
	}

	if err := book.Remove(name); err != nil {
		return err
	}

	if err := s.repo.SaveAliases(book); err != nil {
		return fmt.Errorf("save aliases: %w", err)
	}
	return nil
}

// Resolve maps a user identifier (numeric ID or alias) to a user ID.
// The second return is false for an unknown alias; callers treat that
// as an ordinary absent result.
func (s *AliasService) Resolve(identifier string) (int, bool, error) {
	book, err := s.repo.LoadAliases()
	if err != nil {
		return 0, false, fmt.Errorf("load aliases: %w", err)
	}
	id, ok := book.Resolve(identifier)
	return id, ok, nil
}

// IsAlias reports whether the name is a registered alias.
func (s *AliasService) IsAlias(name string) (bool, error) {
	book, err := s.repo.LoadAliases()
	if err != nil {
		return false, fmt.Errorf("load aliases: %w", err)
	}
	return book.Contains(name), nil
}
