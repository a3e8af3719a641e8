// Package alias maps human-friendly names to 15Five user identifiers.
package alias

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// namePattern restricts aliases to plain alphanumeric names so they stay
// unambiguous as shell tokens.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// IsValidName checks whether a string is usable as an alias.
func IsValidName(name string) bool {
	return name != "" && namePattern.MatchString(name)
}

// Book is the alias table stored in aliases.yaml. Keys are lowercase
// alias names, values are user IDs.
type Book struct {
	Aliases map[string]int `yaml:"aliases"`
}

// Names returns all alias names sorted.
func (b *Book) Names() []string {
	names := make([]string, 0, len(b.Aliases))
	for name := range b.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Add registers an alias for a user ID. Existing aliases are not
// overwritten.
func (b *Book) Add(name string, userID int) error {
	if !IsValidName(name) {
		return fmt.Errorf("invalid alias %q: aliases must be alphanumeric", name)
	}
	key := strings.ToLower(name)
	if existing, ok := b.Aliases[key]; ok {
		return fmt.Errorf("alias %q already exists for user %d", name, existing)
	}
	if b.Aliases == nil {
		b.Aliases = make(map[string]int)
	}
	b.Aliases[key] = userID
	return nil
}

// Remove deletes an alias. Returns an error if it does not exist.
func (b *Book) Remove(name string) error {
	key := strings.ToLower(name)
	if _, ok := b.Aliases[key]; !ok {
		return fmt.Errorf("alias not found: %s", name)
	}
	delete(b.Aliases, key)
	return nil
}

// Contains reports whether the alias exists.
func (b *Book) Contains(name string) bool {
	_, ok := b.Aliases[strings.ToLower(name)]
	return ok
}

// Resolve maps an identifier to a user ID. Numeric input passes through
// unchanged; anything else is looked up as an alias. The second return
// is false when the identifier is neither numeric nor a known alias.
func (b *Book) Resolve(identifier string) (int, bool) {
	if id, err := strconv.Atoi(identifier); err == nil {
		return id, true
	}
	id, ok := b.Aliases[strings.ToLower(identifier)]
	return id, ok
}
