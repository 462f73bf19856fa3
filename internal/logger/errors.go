package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAppNameIsEmpty is returned if Log.AppName was not defined.
	ErrAppNameIsEmpty = errors.New("config Log.AppName can not be empty")

	// ErrServiceNameIsEmpty is returned if Log.ServiceName was not defined.
	ErrServiceNameIsEmpty = errors.New("config Log.ServiceName can not be empty")

	// ErrUnsupportedLevel is returned if Log.LogLevel is no zerolog level.
	ErrUnsupportedLevel = errors.New("config Log.LogLevel is not supported")

	// ErrLogDirectory is returned if Log.File.Path can not be created.
	ErrLogDirectory = errors.New("config Log.File.Path can not be created")
)

// ErrorHandler reports events zerolog failed to write. Init installs it as zerolog.ErrorHandler.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "logger: could not write event: %v\n", err)
}
