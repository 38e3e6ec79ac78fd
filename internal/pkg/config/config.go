// Package config reads service settings from a file with environment overrides.
package config

import (
	"io"
	"time"
)

// Config defines a set of methods for retrieving configuration values of various types.
// Missing keys yield the zero value; use IsSet to tell the two apart.
type Config interface {
	io.Closer

	// IsSet reports whether key has a value in the file or the environment.
	IsSet(key string) bool

	GetInt(key string) int
	GetBool(key string) bool
	GetFloat64(key string) float64
	GetString(key string) string

	// GetSecond reads an integer number of seconds.
	GetSecond(key string) time.Duration

	// GetBinary decodes a base64 encoded value. Invalid input yields nil.
	GetBinary(key string) []byte

	// GetArray reads a value stored as <element1>,<element2>,...
	// Elements are trimmed and empty ones are dropped.
	GetArray(key string) []string
}
