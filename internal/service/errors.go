package service

import "github.com/pkg/errors"

// ErrInvalidInput marks request data the service refuses to process
var ErrInvalidInput = errors.New("invalid input")
