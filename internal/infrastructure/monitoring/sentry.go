package monitoring

import (
	"fmt"

	"hospital-management-api/config"

	"github.com/getsentry/sentry-go"
)

// InitSentry enables error reporting when a DSN is configured. It reports
// whether Sentry is active so the caller knows to flush on shutdown.
func InitSentry(cfg *config.Config) (bool, error) {
	if cfg.Sentry.DSN == "" {
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.App.Env,
		AttachStacktrace: true,
	})
	if err != nil {
		return false, fmt.Errorf("failed to initialize sentry: %w", err)
	}
	return true, nil
}
