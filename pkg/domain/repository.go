package domain

import (
	"github.com/darylhandley/15five-utils/pkg/domain/alias"
	"github.com/darylhandley/15five-utils/pkg/domain/team"
)

// LocalRepository handles the persistence of 15five-utils artifacts in
// the ~/.15fiveutils directory.
type LocalRepository interface {
	Initialize() error
	LoadAliases() (*alias.Book, error)
	SaveAliases(book *alias.Book) error
	LoadTeams() (*team.Teams, error)
	SaveTeams(teams *team.Teams) error
	RecordEvent(event Event) error
	LoadEvents() ([]Event, error)
}
