// Package storage persists local 15five-utils artifacts (aliases,
// teams, the audit trail) under the operator's home directory.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"gopkg.in/yaml.v3"

	"github.com/darylhandley/15five-utils/pkg/domain/alias"
)

const UtilsDir = ".15fiveutils"
const AliasFile = "aliases.yaml"
const TeamsFile = "teams.json"
const EventsFile = "events.jsonl"

type FilesystemRepository struct {
	root        string
	retryConfig retry.Config
}

// NewFilesystemRepository creates a repository rooted at the given
// directory (normally the user's home).
func NewFilesystemRepository(root string) *FilesystemRepository {
	return &FilesystemRepository{
		root: root,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
}

// Root returns the repository root directory.
func (r *FilesystemRepository) Root() string {
	return r.root
}

// ResolvePath ensures the path is within the .15fiveutils directory and
// prevents traversal.
func (r *FilesystemRepository) ResolvePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	baseDir := filepath.Join(r.root, UtilsDir)
	fullPath := filepath.Join(baseDir, filename)
	cleanPath := filepath.Clean(fullPath)

	if !strings.HasPrefix(cleanPath, baseDir) || filepath.Dir(cleanPath) != baseDir {
		return "", fmt.Errorf("invalid file path: %s", filename)
	}

	return cleanPath, nil
}

func (r *FilesystemRepository) Initialize() error {
	path := filepath.Join(r.root, UtilsDir)
	if err := os.MkdirAll(path, 0700); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", UtilsDir, err)
	}
	return nil
}

func (r *FilesystemRepository) IsInitialized() bool {
	_, err := os.Stat(filepath.Join(r.root, UtilsDir))
	return err == nil
}

func (r *FilesystemRepository) SaveAliases(book *alias.Book) error {
	path, err := r.ResolvePath(AliasFile)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(book)
	if err != nil {
		return fmt.Errorf("failed to marshal aliases: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadAliases() (*alias.Book, error) {
	retryer := retry.New[*alias.Book](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*alias.Book, error) {
		path, err := r.ResolvePath(AliasFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return &alias.Book{}, nil
			}
			return nil, fmt.Errorf("failed to read alias file: %w", err)
		}

		var book alias.Book
		if err := yaml.Unmarshal(data, &book); err != nil {
			return nil, fmt.Errorf("failed to unmarshal aliases: %w", err)
		}

		return &book, nil
	})
}
