// Package team groups user aliases into named teams for batch clone
// targets.
package team

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// IsValidName checks whether a string is usable as a team name.
func IsValidName(name string) bool {
	return name != "" && namePattern.MatchString(name)
}

// Teams holds the team configuration stored in teams.json: team name to
// member alias list.
type Teams struct {
	Teams map[string][]string `json:"teams"`
}

// Names returns all team names sorted.
func (t *Teams) Names() []string {
	names := make([]string, 0, len(t.Teams))
	for name := range t.Teams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Members returns a team's member aliases, or nil and false if the team
// does not exist. An existing empty team returns an empty, non-nil
// slice.
func (t *Teams) Members(name string) ([]string, bool) {
	members, ok := t.Teams[name]
	if !ok {
		return nil, false
	}
	if members == nil {
		members = []string{}
	}
	return members, true
}

// Create adds an empty team.
func (t *Teams) Create(name string) error {
	if !IsValidName(name) {
		return fmt.Errorf("invalid team name %q: team names must be alphanumeric", name)
	}
	if _, ok := t.Teams[name]; ok {
		return fmt.Errorf("team %q already exists", name)
	}
	if t.Teams == nil {
		t.Teams = make(map[string][]string)
	}
	t.Teams[name] = []string{}
	return nil
}

// Delete removes a team. Member aliases themselves are untouched.
func (t *Teams) Delete(name string) error {
	if _, ok := t.Teams[name]; !ok {
		return fmt.Errorf("team not found: %s", name)
	}
	delete(t.Teams, name)
	return nil
}

// AddMember adds an alias to a team.
func (t *Teams) AddMember(name, alias string) error {
	members, ok := t.Teams[name]
	if !ok {
		return fmt.Errorf("team not found: %s", name)
	}
	key := strings.ToLower(alias)
	for _, m := range members {
		if m == key {
			return fmt.Errorf("alias %q is already in team %q", alias, name)
		}
	}
	t.Teams[name] = append(members, key)
	return nil
}

// RemoveMember removes an alias from a team.
func (t *Teams) RemoveMember(name, alias string) error {
	members, ok := t.Teams[name]
	if !ok {
		return fmt.Errorf("team not found: %s", name)
	}
	key := strings.ToLower(alias)
	for i, m := range members {
		if m == key {
			t.Teams[name] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("alias %q not found in team %q", alias, name)
}

// TeamsContaining returns the sorted names of teams that include the
// alias. The alias service consults this before deleting an alias; the
// dependency runs one way, from aliases to teams.
func (t *Teams) TeamsContaining(alias string) []string {
	key := strings.ToLower(alias)
	var names []string
	for name, members := range t.Teams {
		for _, m := range members {
			if m == key {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}
