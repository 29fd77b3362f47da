package tui

import "errors"

// ErrMissingAskService is returned when the ask service is not provided.
var ErrMissingAskService = errors.New("tui: ask service is required")

// ErrMissingUserID is returned when no user is given.
var ErrMissingUserID = errors.New("tui: user id is required")
