// Package domain holds cross-cutting domain contracts: the remote
// gateway surface, local persistence, and the audit event trail.
package domain

import (
	"context"
	"net/url"

	"github.com/darylhandley/15five-utils/pkg/domain/objective"
	"github.com/darylhandley/15five-utils/pkg/domain/user"
)

// Gateway is the slice of the 15Five HTTP surface the application
// services depend on. Read calls paginate to exhaustion where the
// endpoint pages. CreateObjective submits a browser-shaped form and
// returns the new objective's identifier recovered from the creation
// redirect.
type Gateway interface {
	Users(ctx context.Context) ([]user.User, error)
	Objectives(ctx context.Context, limit int) ([]objective.Objective, error)
	ObjectivesByUser(ctx context.Context, userID int) ([]objective.Objective, error)
	ObjectivesByParent(ctx context.Context, parentID int) ([]objective.Objective, error)
	Objective(ctx context.Context, id int) (*objective.Objective, error)
	CreateObjective(ctx context.Context, form url.Values) (int, error)
	UpdateKeyResult(ctx context.Context, keyResultID, value int) error
}
