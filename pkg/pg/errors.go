package pg

import "errors"

var (
	ErrFailedToParseConfig  = errors.New("failed to parse postgres connection config")
	ErrFailedToConnect      = errors.New("failed to connect to postgres")
	ErrHealthcheckFailed    = errors.New("postgres healthcheck failed")
	ErrFailedToMigrate      = errors.New("failed to apply migrations")
	ErrMigrationsPathNotSet = errors.New("migrations path is not set")
)
