package database

import (
	"strings"
	"time"
)

const writeRetries = 3
const writeRetryDelay = 100 * time.Millisecond

// isTransient reports whether an error looks like storage contention that a
// short retry can resolve. Business-rule failures never match.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range []string{
		"Lock wait timeout",     // MySQL 1205
		"Deadlock found",        // MySQL 1213
		"database is locked",    // SQLite busy
		"database table is locked",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// WithRetry runs fn and retries it a bounded number of times with linear
// backoff, but only when the failure is transient storage contention.
func WithRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < writeRetries; attempt++ {
		err = fn()
		if err == nil || !isTransient(err) {
			return err
		}
		time.Sleep(time.Duration(attempt+1) * writeRetryDelay)
	}
	return err
}
