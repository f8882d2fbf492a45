package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIOError(t *testing.T) {
	err := &IOError{Path: "data/manuals/a.txt", Err: fs.ErrPermission}

	assert.Equal(t, "read data/manuals/a.txt: permission denied", err.Error())
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.NotErrorIs(t, err, ErrConfiguration)

	wrapped := fmt.Errorf("load documents: %w", err)
	var ioErr *IOError
	assert.True(t, errors.As(wrapped, &ioErr))
	assert.Equal(t, "data/manuals/a.txt", ioErr.Path)
}

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("chunk size", "must be positive, got %d", 0)

	assert.Equal(t, "invalid chunk size: must be positive, got 0", err.Error())
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.NotErrorIs(t, err, ErrIO)
}
