package proto

import (
	"fmt"
	"github.com/1xyz/beanbag/beanstalkd/core"
	"github.com/pkg/errors"
)

var (
	// ErrAlreadyResolved - returned when a completion handle is resolved a second time
	ErrAlreadyResolved = errors.New("future is already resolved")

	// ErrQueueDesync - a reply arrived with no pending command to match it with
	ErrQueueDesync = errors.New("reply received with no pending command")
)

// CommandFailedError is returned when the server replies with a status
// the command recognizes as a failure, ex: NOT_FOUND for a delete.
type CommandFailedError struct {
	// Wire name of the command, ex: "delete"
	Op string

	// Status token of the reply
	Status string

	// Remaining fields of the reply header
	Fields []string
}

func (e *CommandFailedError) Error() string {
	return fmt.Sprintf("%s: command failed: %s %v", e.Op, e.Status, e.Fields)
}

// UnexpectedResponseError is returned when the reply's status is neither a
// success nor a recognized failure for the command. Usually indicative of a
// protocol version mismatch.
type UnexpectedResponseError struct {
	Op     string
	Status string
	Fields []string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("%s: unexpected response: %s %v", e.Op, e.Status, e.Fields)
}

func hasFailedStatus(err error, status string) bool {
	var cf *CommandFailedError
	if errors.As(err, &cf) {
		return cf.Status == status
	}
	return false
}

// IsNotFound reports if err is a NOT_FOUND reply
func IsNotFound(err error) bool {
	return hasFailedStatus(err, core.StatusNotFound)
}

// IsTimedOut reports if err is a TIMED_OUT reply to a reserve-with-timeout
func IsTimedOut(err error) bool {
	return hasFailedStatus(err, core.StatusTimedOut)
}

// IsDeadlineSoon reports if err is a DEADLINE_SOON reply to a reserve
func IsDeadlineSoon(err error) bool {
	return hasFailedStatus(err, core.StatusDeadlineSoon)
}

// IsConnectionClosed reports if the command was drained because the
// connection went away
func IsConnectionClosed(err error) bool {
	return errors.Is(err, core.ErrConnectionClosed)
}

// fatal reports if err leaves the reply stream out of sync, so no further
// reply on this connection can be trusted.
func fatal(err error) bool {
	return errors.Is(err, core.ErrMalformedHeader) ||
		errors.Is(err, core.ErrConnectionClosed) ||
		errors.Is(err, core.ErrDelimiterMissing) ||
		errors.Is(err, ErrQueueDesync)
}
