package redis

import "errors"

var (
	ErrFailedToParseURL  = errors.New("failed to parse redis connection URL")
	ErrNotReady          = errors.New("redis is not ready")
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
