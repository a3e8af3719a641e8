// Package wiring constructs the application services and their
// infrastructure dependencies in one place.
package wiring

import (
	"fmt"
	"os"

	"github.com/darylhandley/15five-utils/internal/infrastructure/config"
	"github.com/darylhandley/15five-utils/internal/infrastructure/fifteenfive"
	"github.com/darylhandley/15five-utils/pkg/application"
)

// AppServices exposes the application layer services wired together
// with a workspace and the 15Five gateway.
type AppServices struct {
	Workspace *Workspace
	Config    *config.Config
	Gateway   *fifteenfive.Client
	Users     *application.UserService
	Aliases   *application.AliasService
	Teams     *application.TeamService
	Clone     *application.CloneService
	Sync      *application.SyncService
	Audit     *application.AuditService
}

// BuildAppServices loads the session config and constructs every
// service. A missing or incomplete session is a hard error: nothing in
// this tool works without credentials.
func BuildAppServices() (*AppServices, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("locate home directory: %w", err)
	}

	return buildWith(cfg, home)
}

// BuildAppServicesAt is the test seam: same wiring, explicit config and
// data root.
func BuildAppServicesAt(cfg *config.Config, root string) (*AppServices, error) {
	return buildWith(cfg, root)
}

func buildWith(cfg *config.Config, root string) (*AppServices, error) {
	workspace := NewWorkspace(root)
	if err := workspace.Repo.Initialize(); err != nil {
		return nil, err
	}

	gateway := fifteenfive.NewClient(fifteenfive.Session{
		BaseURL:   cfg.BaseURL,
		SessionID: cfg.SessionID,
		CSRFToken: cfg.CSRFToken,
	})

	teamSvc := application.NewTeamService(workspace.Repo)

	return &AppServices{
		Workspace: workspace,
		Config:    cfg,
		Gateway:   gateway,
		Users:     application.NewUserService(gateway),
		Aliases:   application.NewAliasService(workspace.Repo, teamSvc),
		Teams:     teamSvc,
		Clone:     application.NewCloneService(gateway, workspace.Audit),
		Sync:      application.NewSyncService(gateway, workspace.Audit),
		Audit:     workspace.Audit,
	}, nil
}
