package wiring

import (
	"github.com/darylhandley/15five-utils/pkg/application"
	"github.com/darylhandley/15five-utils/pkg/storage"
)

// Workspace bundles the local infrastructure: the filesystem store
// under ~/.15fiveutils and the audit trail written to it.
type Workspace struct {
	Repo  *storage.FilesystemRepository
	Audit *application.AuditService
}

func NewWorkspace(root string) *Workspace {
	repo := storage.NewFilesystemRepository(root)
	return &Workspace{
		Repo:  repo,
		Audit: application.NewAuditService(repo),
	}
}
