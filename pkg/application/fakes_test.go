package application

import (
	"context"
	"net/url"

	"github.com/darylhandley/15five-utils/pkg/domain"
	"github.com/darylhandley/15five-utils/pkg/domain/alias"
	"github.com/darylhandley/15five-utils/pkg/domain/objective"
	"github.com/darylhandley/15five-utils/pkg/domain/team"
	"github.com/darylhandley/15five-utils/pkg/domain/user"
)

// fakeGateway is an in-memory Gateway. Each function field overrides
// one call; unset reads return empty results and unset writes succeed.
type fakeGateway struct {
	users           []user.User
	usersErr        error
	usersCalls      int
	objectiveFn     func(id int) (*objective.Objective, error)
	byUserFn        func(userID int) ([]objective.Objective, error)
	byParentFn      func(parentID int) ([]objective.Objective, error)
	createFn        func(form url.Values) (int, error)
	createdForms    []url.Values
	updateFn        func(keyResultID, value int) error
	updatedValues   map[int]int
	updateCallOrder []int
}

var _ domain.Gateway = (*fakeGateway)(nil)

func (f *fakeGateway) Users(ctx context.Context) ([]user.User, error) {
	f.usersCalls++
	return f.users, f.usersErr
}

func (f *fakeGateway) Objectives(ctx context.Context, limit int) ([]objective.Objective, error) {
	return nil, nil
}

func (f *fakeGateway) ObjectivesByUser(ctx context.Context, userID int) ([]objective.Objective, error) {
	if f.byUserFn != nil {
		return f.byUserFn(userID)
	}
	return nil, nil
}

func (f *fakeGateway) ObjectivesByParent(ctx context.Context, parentID int) ([]objective.Objective, error) {
	if f.byParentFn != nil {
		return f.byParentFn(parentID)
	}
	return nil, nil
}

func (f *fakeGateway) Objective(ctx context.Context, id int) (*objective.Objective, error) {
	if f.objectiveFn != nil {
		return f.objectiveFn(id)
	}
	return &objective.Objective{ID: id}, nil
}

func (f *fakeGateway) CreateObjective(ctx context.Context, form url.Values) (int, error) {
	f.createdForms = append(f.createdForms, form)
	if f.createFn != nil {
		return f.createFn(form)
	}
	return 9000 + len(f.createdForms), nil
}

func (f *fakeGateway) UpdateKeyResult(ctx context.Context, keyResultID, value int) error {
	if f.updatedValues == nil {
		f.updatedValues = make(map[int]int)
	}
	f.updateCallOrder = append(f.updateCallOrder, keyResultID)
	if f.updateFn != nil {
		if err := f.updateFn(keyResultID, value); err != nil {
			return err
		}
	}
	f.updatedValues[keyResultID] = value
	return nil
}

// memoryRepo is an in-memory LocalRepository.
type memoryRepo struct {
	aliases *alias.Book
	teams   *team.Teams
	events  []domain.Event
}

var _ domain.LocalRepository = (*memoryRepo)(nil)

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{aliases: &alias.Book{}, teams: &team.Teams{}}
}

func (m *memoryRepo) Initialize() error { return nil }

func (m *memoryRepo) LoadAliases() (*alias.Book, error)   { return m.aliases, nil }
func (m *memoryRepo) SaveAliases(b *alias.Book) error     { m.aliases = b; return nil }
func (m *memoryRepo) LoadTeams() (*team.Teams, error)     { return m.teams, nil }
func (m *memoryRepo) SaveTeams(t *team.Teams) error       { m.teams = t; return nil }
func (m *memoryRepo) RecordEvent(e domain.Event) error    { m.events = append(m.events, e); return nil }
func (m *memoryRepo) LoadEvents() ([]domain.Event, error) { return m.events, nil }

// noopAudit satisfies AuditLogger for tests that do not inspect events.
type noopAudit struct{}

func (noopAudit) Log(action, actor string, metadata map[string]interface{}) error { return nil }
