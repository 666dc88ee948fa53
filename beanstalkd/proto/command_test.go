package proto

import (
	"github.com/1xyz/beanbag/beanstalkd/core"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCmdSpecs_EveryCommandHasAReplyEntry(t *testing.T) {
	for c := core.Unknown + 1; c < core.Max; c++ {
		if c == core.Quit {
			continue
		}
		_, ok := cmdSpecs[c]
		assert.Truef(t, ok, "%v has no entry in the reply table", c)
	}
	_, ok := cmdSpecs[core.Quit]
	assert.False(t, ok, "quit expects no reply")
}

func TestCmdSpecs_SuccessAndFailureAreDisjoint(t *testing.T) {
	for c, spec := range cmdSpecs {
		assert.NotEmptyf(t, spec.ok, "%v has no success status", c)
		assert.NotNilf(t, spec.decode, "%v has no decoder", c)
		for s := range spec.ok {
			assert.Falsef(t, spec.failed.Contains(s), "%v: %s is both success and failure", c, s)
		}
	}
}

func TestCommand_Classify(t *testing.T) {
	entries := []struct {
		cmdType core.CmdType
		status  string
		kind    outcomeKind
	}{
		{core.Put, core.StatusInserted, outcomeSuccess},
		{core.Put, core.StatusBuried, outcomeFailed},
		{core.Put, core.StatusJobTooBig, outcomeFailed},
		{core.Put, core.StatusDraining, outcomeFailed},
		{core.Put, core.StatusExpectedCRLF, outcomeUnexpected},
		{core.Reserve, core.StatusReserved, outcomeSuccess},
		{core.Reserve, core.StatusDeadlineSoon, outcomeFailed},
		{core.ReserveWithTimeout, core.StatusTimedOut, outcomeFailed},
		{core.ReserveJob, core.StatusNotFound, outcomeFailed},
		{core.Delete, core.StatusDeleted, outcomeSuccess},
		{core.Delete, core.StatusNotFound, outcomeFailed},
		{core.Delete, core.StatusOK, outcomeUnexpected},
		{core.Release, core.StatusReleased, outcomeSuccess},
		{core.Release, core.StatusBuried, outcomeFailed},
		{core.Bury, core.StatusBuried, outcomeSuccess},
		{core.Touch, core.StatusTouched, outcomeSuccess},
		{core.Peek, core.StatusFound, outcomeSuccess},
		{core.PeekReady, core.StatusNotFound, outcomeFailed},
		{core.Kick, core.StatusKicked, outcomeSuccess},
		{core.Kick, core.StatusNotFound, outcomeUnexpected},
		{core.KickJob, core.StatusKicked, outcomeSuccess},
		{core.Use, core.StatusUsing, outcomeSuccess},
		{core.Watch, core.StatusWatching, outcomeSuccess},
		{core.Ignore, core.StatusNotIgnored, outcomeFailed},
		{core.PauseTube, core.StatusPaused, outcomeSuccess},
		{core.Stats, core.StatusOK, outcomeSuccess},
		{core.StatsJob, core.StatusNotFound, outcomeFailed},
		{core.ListTubes, core.StatusOK, outcomeSuccess},
		{core.ListTubes, core.StatusOutOfMemory, outcomeUnexpected},
		{core.ListTubeUsed, core.StatusUsing, outcomeSuccess},
		{core.StatsTube, core.StatusInternalError, outcomeUnexpected},
	}

	for _, e := range entries {
		cmd := newCommand(e.cmdType, nil)
		kind := cmd.classify(&core.Header{Status: e.status})
		assert.Equalf(t, e.kind, kind, "%v %s", e.cmdType, e.status)
	}
}

func TestNewCommand_PanicsWithoutAReplyEntry(t *testing.T) {
	assert.Panics(t, func() { newCommand(core.Quit, nil) })
}

func TestOutcome_Result(t *testing.T) {
	v, err := outcome{kind: outcomeSuccess, value: JobID(42)}.result(core.Put)
	assert.Nil(t, err)
	assert.Equal(t, JobID(42), v)

	_, err = outcome{kind: outcomeFailed, status: core.StatusNotFound, fields: []string{}}.result(core.Delete)
	assert.Equal(t, &CommandFailedError{Op: "delete", Status: core.StatusNotFound, Fields: []string{}}, err)
	assert.True(t, IsNotFound(err))

	_, err = outcome{kind: outcomeUnexpected, status: "BOGUS", fields: []string{"1"}}.result(core.Touch)
	assert.Equal(t, &UnexpectedResponseError{Op: "touch", Status: "BOGUS", Fields: []string{"1"}}, err)
	assert.False(t, IsNotFound(err))
}

func TestFatal(t *testing.T) {
	assert.True(t, fatal(core.ErrMalformedHeader))
	assert.True(t, fatal(core.ErrConnectionClosed))
	assert.True(t, fatal(core.ErrDelimiterMissing))
	assert.True(t, fatal(ErrQueueDesync))
	assert.False(t, fatal(&CommandFailedError{Op: "delete", Status: core.StatusNotFound}))
	assert.False(t, fatal(core.ErrBadTubeName))
}

func TestBodySizeField(t *testing.T) {
	i, ok := bodySizeField(core.StatusReserved)
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = bodySizeField(core.StatusOK)
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	_, ok = bodySizeField(core.StatusDeleted)
	assert.False(t, ok)
}
