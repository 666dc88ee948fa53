package proto

import (
	"fmt"
	"github.com/1xyz/beanbag/beanstalkd/core"
	"time"
)

// outcomeKind classifies a reply against the command it answers
type outcomeKind int

const (
	// status is in the command's success set
	outcomeSuccess outcomeKind = iota

	// status is in the command's recognized-failure set
	outcomeFailed

	// status is in neither set
	outcomeUnexpected

	// no reply: the command was rejected locally or drained on close
	outcomeError
)

func (k outcomeKind) String() string {
	switch k {
	case outcomeSuccess:
		return "success"
	case outcomeFailed:
		return "failed"
	case outcomeUnexpected:
		return "unexpected"
	default:
		return "error"
	}
}

type tokenSet map[string]struct{}

func newTokenSet(tokens ...string) tokenSet {
	ts := make(tokenSet, len(tokens))
	for _, t := range tokens {
		ts[t] = struct{}{}
	}
	return ts
}

func (ts tokenSet) Contains(token string) bool {
	_, ok := ts[token]
	return ok
}

// decoder turns the fields of a success reply into the command's result.
// Decoders for replies that carry a body read it through conn.
type decoder func(conn *Conn, h *core.Header) (interface{}, error)

// cmdSpec describes how the replies of a command type are interpreted
type cmdSpec struct {
	ok     tokenSet
	failed tokenSet
	decode decoder
}

// command is one issued operation: its request bytes, how to classify and
// decode its reply, and the Future the caller waits on.
type command struct {
	cmdType  core.CmdType
	request  []byte
	spec     cmdSpec
	future   *Future
	issuedAt time.Time
}

func newCommand(cmdType core.CmdType, request []byte) *command {
	spec, ok := cmdSpecs[cmdType]
	if !ok {
		panic(fmt.Sprintf("newCommand: %v has no entry in the reply table", cmdType))
	}

	return &command{
		cmdType:  cmdType,
		request:  request,
		spec:     spec,
		future:   newFuture(cmdType),
		issuedAt: time.Now(),
	}
}

func (c *command) String() string {
	return fmt.Sprintf("command: %v issuedAt: %v", c.cmdType.Name(), c.issuedAt)
}

// classify maps a reply header to exactly one outcome kind
func (c *command) classify(h *core.Header) outcomeKind {
	if c.spec.ok.Contains(h.Status) {
		return outcomeSuccess
	} else if c.spec.failed.Contains(h.Status) {
		return outcomeFailed
	}
	return outcomeUnexpected
}

// outcome is the decoded reply to a command
type outcome struct {
	kind   outcomeKind
	value  interface{}
	status string
	fields []string
}

// result maps an outcome to the value or error its Future resolves with
func (o outcome) result(op core.CmdType) (interface{}, error) {
	switch o.kind {
	case outcomeSuccess:
		return o.value, nil
	case outcomeFailed:
		return nil, &CommandFailedError{Op: op.Name(), Status: o.status, Fields: o.fields}
	default:
		return nil, &UnexpectedResponseError{Op: op.Name(), Status: o.status, Fields: o.fields}
	}
}

var (
	notFound     = newTokenSet(core.StatusNotFound)
	noFailures   = newTokenSet()
	reservedJob  = newTokenSet(core.StatusReserved)
	foundJob     = newTokenSet(core.StatusFound)
	okBody       = newTokenSet(core.StatusOK)
	usingTube    = newTokenSet(core.StatusUsing)
	watchingTube = newTokenSet(core.StatusWatching)
)

// cmdSpecs is the reply table of every command that expects a reply
var cmdSpecs = map[core.CmdType]cmdSpec{
	core.Put: {
		ok:     newTokenSet(core.StatusInserted),
		failed: newTokenSet(core.StatusJobTooBig, core.StatusBuried, core.StatusDraining),
		decode: decodeJobID,
	},
	core.Reserve: {
		ok:     reservedJob,
		failed: newTokenSet(core.StatusDeadlineSoon, core.StatusTimedOut),
		decode: decodeReservedJob,
	},
	core.ReserveWithTimeout: {
		ok:     reservedJob,
		failed: newTokenSet(core.StatusDeadlineSoon, core.StatusTimedOut),
		decode: decodeReservedJob,
	},
	core.ReserveJob: {
		ok:     reservedJob,
		failed: notFound,
		decode: decodeReservedJob,
	},
	core.Delete: {
		ok:     newTokenSet(core.StatusDeleted),
		failed: notFound,
		decode: decodeUnit,
	},
	core.Release: {
		ok:     newTokenSet(core.StatusReleased),
		failed: newTokenSet(core.StatusBuried, core.StatusNotFound),
		decode: decodeUnit,
	},
	core.Bury: {
		ok:     newTokenSet(core.StatusBuried),
		failed: notFound,
		decode: decodeUnit,
	},
	core.Touch: {
		ok:     newTokenSet(core.StatusTouched),
		failed: notFound,
		decode: decodeUnit,
	},
	core.Peek:        {ok: foundJob, failed: notFound, decode: decodePeekedJob},
	core.PeekReady:   {ok: foundJob, failed: notFound, decode: decodePeekedJob},
	core.PeekDelayed: {ok: foundJob, failed: notFound, decode: decodePeekedJob},
	core.PeekBuried:  {ok: foundJob, failed: notFound, decode: decodePeekedJob},
	core.Kick: {
		ok:     newTokenSet(core.StatusKicked),
		failed: noFailures,
		decode: decodeCount,
	},
	core.KickJob: {
		ok:     newTokenSet(core.StatusKicked),
		failed: notFound,
		decode: decodeUnit,
	},
	core.Use:          {ok: usingTube, failed: noFailures, decode: decodeTube},
	core.ListTubeUsed: {ok: usingTube, failed: noFailures, decode: decodeTube},
	core.Watch:        {ok: watchingTube, failed: noFailures, decode: decodeCount},
	core.Ignore: {
		ok:     watchingTube,
		failed: newTokenSet(core.StatusNotIgnored),
		decode: decodeCount,
	},
	core.PauseTube: {
		ok:     newTokenSet(core.StatusPaused),
		failed: notFound,
		decode: decodeUnit,
	},
	core.Stats:            {ok: okBody, failed: noFailures, decode: decodeStats},
	core.StatsTube:        {ok: okBody, failed: notFound, decode: decodeStats},
	core.StatsJob:         {ok: okBody, failed: notFound, decode: decodeStats},
	core.ListTubes:        {ok: okBody, failed: noFailures, decode: decodeTubes},
	core.ListTubesWatched: {ok: okBody, failed: noFailures, decode: decodeTubes},
}
