package core

import (
	"errors"
	"time"
)

const (
	// DefaultPriority is the mid-range priority used when a caller does not specify one
	DefaultPriority uint32 = 1 << 31

	// DefaultDelay is the delay used when a caller does not specify one
	DefaultDelay = 0 * time.Second

	// DefaultTTR is the time-to-run used when a caller does not specify one
	DefaultTTR = 1200 * time.Second

	// Max. size of a response header line in bytes (exclusive of the 2 byte delimiter)
	MaxHeaderSizeBytes = 224

	// Max. size of a command line in bytes (inclusive of the 2 byte delimiter)
	MaxCmdSizeBytes = 226

	// Max. job body the client accepts in a reply. The server's own hard cap
	// on max-job-size is 1GiB.
	MaxBodySizeBytes = 1 << 30

	// Max. length of a tube name
	MaxTubeNameLength = 200

	// Default tube name
	DefaultTubeName = "default"
)

// Status tokens, the first word of every reply header line.
const (
	StatusInserted     = "INSERTED"
	StatusBuried       = "BURIED"
	StatusExpectedCRLF = "EXPECTED_CRLF"
	StatusJobTooBig    = "JOB_TOO_BIG"
	StatusDraining     = "DRAINING"
	StatusUsing        = "USING"
	StatusReserved     = "RESERVED"
	StatusDeleted      = "DELETED"
	StatusReleased     = "RELEASED"
	StatusTouched      = "TOUCHED"
	StatusWatching     = "WATCHING"
	StatusFound        = "FOUND"
	StatusKicked       = "KICKED"
	StatusPaused       = "PAUSED"
	StatusOK           = "OK"

	// Error message to indicate if a reservation request timed out
	StatusTimedOut = "TIMED_OUT"

	// Error message to indicate if a reservation request is in DeadlineSoon
	StatusDeadlineSoon = "DEADLINE_SOON"

	// Error message to indicate if the entity (job etc) cannot be found
	StatusNotFound = "NOT_FOUND"

	// Error message if the client attempts to ignore the only tube in its watch list.
	StatusNotIgnored = "NOT_IGNORED"

	// The server cannot allocate enough memory for the job.
	StatusOutOfMemory = "OUT_OF_MEMORY"

	// Indicates an internal server error. Typically, indicative
	// of a bug in the server implementation.
	StatusInternalError = "INTERNAL_ERROR"

	// The client sent a command line that was not well-formed.
	StatusBadFormat = "BAD_FORMAT"

	// The client sent a command that the server does not know.
	StatusUnknownCommand = "UNKNOWN_COMMAND"
)

var (
	// ErrMalformedHeader - the stream produced a reply header that cannot be parsed
	ErrMalformedHeader = errors.New("malformed response header")

	// ErrConnectionClosed - the transport ended or was closed while the command was pending
	ErrConnectionClosed = errors.New("connection closed")

	// ErrDelimiterMissing - when the input stream has no newlines (\r\n)
	ErrDelimiterMissing = errors.New("delimiter (\\r\\n) missing")

	// ErrBadTubeName - the tube name is empty, too long or has characters
	// the protocol does not allow
	ErrBadTubeName = errors.New("bad tube name")

	// ErrBadFormat The command line was not well-formed.
	ErrBadFormat = errors.New("bad format command")

	// ErrCmdTokensMissing - when the provided command has no tokens
	ErrCmdTokensMissing = errors.New("bad command, cannot find atleast one token")

	// ErrCmdNotFound - the provided command is not found or supported
	ErrCmdNotFound = errors.New("command not found")
)

// Seconds converts a duration into the whole seconds the protocol expects.
// Negative durations are sent as zero.
func Seconds(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}
