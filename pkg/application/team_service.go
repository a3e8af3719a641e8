package application

import (
	"fmt"

	"github.com/darylhandley/15five-utils/pkg/domain"
	"github.com/darylhandley/15five-utils/pkg/domain/team"
)

// TeamService manages named groups of aliases used as batch clone
// targets. It owns all alias-usage queries; the alias service calls in,
// never the other way around.
type TeamService struct {
	repo domain.LocalRepository
}

func NewTeamService(repo domain.LocalRepository) *TeamService {
	return &TeamService{repo: repo}
}

// List returns the team configuration.
func (s *TeamService) List() (*team.Teams, error) {
	return s.repo.LoadTeams()
}

// Members returns a team's member aliases. The second return is false
// when the team does not exist.
func (s *TeamService) Members(name string) ([]string, bool, error) {
	teams, err := s.repo.LoadTeams()
	if err != nil {
		return nil, false, fmt.Errorf("load teams: %w", err)
	}
	members, ok := teams.Members(name)
	return members, ok, nil
}

// Create adds an empty team.
func (s *TeamService) Create(name string) error {
	return s.mutate(func(t *team.Teams) error { return t.Create(name) })
}

// Delete removes a team. Aliases remain intact.
func (s *TeamService) Delete(name string) error {
	return s.mutate(func(t *team.Teams) error { return t.Delete(name) })
}

// AddMember adds a registered alias to a team. The alias must exist.
func (s *TeamService) AddMember(name, aliasName string, aliases *AliasService) error {
	known, err := aliases.IsAlias(aliasName)
	if err != nil {
		return err
	}
	if !known {
		return fmt.Errorf("alias %q not found: create the alias before adding it to a team", aliasName)
	}
	return s.mutate(func(t *team.Teams) error { return t.AddMember(name, aliasName) })
}

// RemoveMember removes an alias from a team.
func (s *TeamService) RemoveMember(name, aliasName string) error {
	return s.mutate(func(t *team.Teams) error { return t.RemoveMember(name, aliasName) })
}

// TeamsContaining returns the teams that include the alias.
func (s *TeamService) TeamsContaining(aliasName string) ([]string, error) {
	teams, err := s.repo.LoadTeams()
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	return teams.TeamsContaining(aliasName), nil
}

func (s *TeamService) mutate(apply func(*team.Teams) error) error {
	teams, err := s.repo.LoadTeams()
	if err != nil {
		return fmt.Errorf("load teams: %w", err)
	}

	if err := apply(teams); err != nil {
		return err
	}

	if err := s.repo.SaveTeams(teams); err != nil {
		return fmt.Errorf("save teams: %w", err)
	}
	return nil
}
