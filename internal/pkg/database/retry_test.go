package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithRetrySucceedsAfterTransientFailure(t *testing.T) {
	calls := 0
	err := WithRetry(func() error {
		calls++
		if calls < 2 {
			return errors.New("database is locked")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetryDoesNotRetryBusinessErrors(t *testing.T) {
	wantErr := errors.New("user has already rated this article")
	calls := 0
	err := WithRetry(func() error {
		calls++
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 1, calls)
}

func TestWithRetryGivesUpEventually(t *testing.T) {
	calls := 0
	err := WithRetry(func() error {
		calls++
		return errors.New("Deadlock found when trying to get lock")
	})
	assert.Error(t, err)
	assert.Equal(t, writeRetries, calls)
}
