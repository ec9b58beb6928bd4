// utils/cron.go
package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Cron validation errors. The messages are returned verbatim to API callers.
var (
	ErrInvalidCron        = errors.New("Invalid cron")
	ErrSecondsNotAllowed  = errors.New("Seconds option should not be specified.")
	ErrMinuteHourRequired = errors.New("Cron expression must specify at least a minute or an hour.")
)

// ValidateCron checks that expr is a syntactically valid 5-field cron
// expression (minute, hour, day-of-month, month, day-of-week).
// A 6-field expression is reported as ErrSecondsNotAllowed so callers can
// tell a seconds field apart from a generally malformed expression.
func ValidateCron(expr string) error {
	fields := strings.Fields(expr)
	if len(fields) == 6 {
		return ErrSecondsNotAllowed
	}
	if len(fields) != 5 {
		return fmt.Errorf("%w: expected 5 fields, got %d", ErrInvalidCron, len(fields))
	}
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCron, err)
	}
	return nil
}

// RequireMinuteOrHour rejects expressions whose minute and hour fields are
// both wildcards, i.e. reminders that would fire every minute. expr must
// already have passed ValidateCron.
func RequireMinuteOrHour(expr string) error {
	fields := strings.Fields(expr)
	if len(fields) == 5 && fields[0] == "*" && fields[1] == "*" {
		return ErrMinuteHourRequired
	}
	return nil
}

// NextOccurrence returns the soonest instant strictly after `after` that
// satisfies expr. Standard cron semantics apply, including the day-of-month/
// day-of-week OR rule when both fields are restricted.
func NextOccurrence(expr string, after time.Time) (time.Time, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidCron, err)
	}
	return sched.Next(after), nil
}
