package models

import "github.com/pkg/errors"

var ErrRunNotFound = errors.New("run not found")
