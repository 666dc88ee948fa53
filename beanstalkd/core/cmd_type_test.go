package core

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCmdType_Name(t *testing.T) {
	var entries = []struct {
		cmd  CmdType
		name string
	}{
		{Put, "put"},
		{Reserve, "reserve"},
		{ReserveWithTimeout, "reserve-with-timeout"},
		{ReserveJob, "reserve-job"},
		{KickJob, "kick-job"},
		{ListTubeUsed, "list-tube-used"},
		{ListTubesWatched, "list-tubes-watched"},
		{PeekBuried, "peek-buried"},
		{PauseTube, "pause-tube"},
		{StatsJob, "stats-job"},
	}

	for _, e := range entries {
		assert.Equalf(t, e.name, e.cmd.Name(), "expect wire name of %v", e.cmd)
		c, ok := LookupCmdType(e.name)
		assert.Truef(t, ok, "expect %v to be found", e.name)
		assert.Equalf(t, e.cmd, c, "expect %v to map back", e.name)
	}

	_, ok := LookupCmdType("max")
	assert.Falsef(t, ok, "expect the sentinel to not be a command")
}
