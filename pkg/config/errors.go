package config

import "errors"

var (
	ErrNilPointer    = errors.New("config target is nil")
	ErrParsingConfig = errors.New("failed to parse environment variables")
)
