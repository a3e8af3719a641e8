package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/darylhandley/15five-utils/pkg/domain/team"
	"github.com/felixgeelhaar/fortify/retry"
)

func (r *FilesystemRepository) SaveTeams(teams *team.Teams) error {
	path, err := r.ResolvePath(TeamsFile)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(teams, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal teams: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

func (r *FilesystemRepository) LoadTeams() (*team.Teams, error) {
	retryer := retry.New[*team.Teams](r.retryConfig)

	return retryer.Do(context.Background(), func(ctx context.Context) (*team.Teams, error) {
		path, err := r.ResolvePath(TeamsFile)
		if err != nil {
			return nil, err
		}

		// #nosec G304 -- Path is resolved and validated via ResolvePath
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return &team.Teams{}, nil
			}
			return nil, fmt.Errorf("failed to read teams file: %w", err)
		}

		var teams team.Teams
		if err := json.Unmarshal(data, &teams); err != nil {
			return nil, fmt.Errorf("failed to unmarshal teams: %w", err)
		}

		return &teams, nil
	})
}
