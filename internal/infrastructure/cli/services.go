package cli

import (
	"fmt"

	"github.com/darylhandley/15five-utils/internal/infrastructure/config"
	"github.com/darylhandley/15five-utils/internal/infrastructure/fifteenfive"
	"github.com/darylhandley/15five-utils/internal/infrastructure/wiring"
)

func sessionFrom(cfg *config.Config) fifteenfive.Session {
	return fifteenfive.Session{
		BaseURL:   cfg.BaseURL,
		SessionID: cfg.SessionID,
		CSRFToken: cfg.CSRFToken,
	}
}

// sharedServices is built once per process so the user cache survives
// across shell commands.
var sharedServices *wiring.AppServices

func loadServices() (*wiring.AppServices, error) {
	if sharedServices != nil {
		return sharedServices, nil
	}
	services, err := wiring.BuildAppServices()
	if err != nil {
		return nil, NewCLIError(
			fmt.Sprintf("failed to load session: %v", err),
			"Run '15five setup' to configure your 15Five session credentials",
			err,
		)
	}
	sharedServices = services
	return services, nil
}
