package proto

// ConnState is the state of a connection's response dispatcher

//go:generate stringer -type=ConnState --output conn_state_string.go
type ConnState int32

const (
	// The dispatcher has not been started yet, commands may be queued
	NotStarted ConnState = iota

	// The dispatcher is waiting for the next reply header line
	AwaitingHeader

	// The dispatcher is reading a length framed body that follows a header
	FramingBody

	// The transport ended; pending commands were drained with ErrConnectionClosed
	Closed
)
