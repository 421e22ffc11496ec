package domain

import "errors"

// ErrMissingCommand is returned when a required command is absent from the registry.
var ErrMissingCommand = errors.New("required command missing")

// ErrDuplicateCommand is returned when two definitions share a name.
var ErrDuplicateCommand = errors.New("duplicate command")

// ErrEmptyDescription is returned when a command has no description.
var ErrEmptyDescription = errors.New("command description is empty")

// ErrInvalidCommandName is returned when a command name is blank or contains whitespace.
var ErrInvalidCommandName = errors.New("invalid command name")

// ErrSessionClosed is returned when a closed session is asked to mutate.
var ErrSessionClosed = errors.New("session closed")
