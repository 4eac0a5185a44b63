package redis

import "errors"

var (
	ErrEmptyURL    = errors.New("redis: empty URL")
	ErrInvalidURL  = errors.New("redis: invalid connection URL")
	ErrUnreachable = errors.New("redis: server unreachable")
	ErrPingFailed  = errors.New("redis: ping failed")
)
