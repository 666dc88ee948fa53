package proto

import (
	"github.com/1xyz/beanbag/beanstalkd/core"
	"time"
)

// Put enqueues a job with body into the currently used tube.
// The Future resolves with the JobID assigned by the server.
func (c *Conn) Put(body []byte, pri uint32, delay, ttr time.Duration) *Future {
	req := core.EncodePut(pri, core.Seconds(delay), core.Seconds(ttr), body)
	return c.issue(newCommand(core.Put, req))
}

// PutDefault enqueues a job with the default priority, delay and ttr
func (c *Conn) PutDefault(body []byte) *Future {
	return c.Put(body, core.DefaultPriority, core.DefaultDelay, core.DefaultTTR)
}

// Reserve waits (server side) for a job from the watched tubes.
// The Future resolves with a reserved *Job.
func (c *Conn) Reserve() *Future {
	return c.issue(newCommand(core.Reserve, core.Encode(core.Reserve)))
}

// ReserveWithTimeout is Reserve with a server enforced timeout, after which
// the Future fails with TIMED_OUT.
func (c *Conn) ReserveWithTimeout(timeout time.Duration) *Future {
	req := core.Encode(core.ReserveWithTimeout, core.Seconds(timeout))
	return c.issue(newCommand(core.ReserveWithTimeout, req))
}

// ReserveJob reserves a specific job by id
func (c *Conn) ReserveJob(id JobID) *Future {
	return c.issue(newCommand(core.ReserveJob, core.Encode(core.ReserveJob, uint64(id))))
}

// Delete removes a job from the server
func (c *Conn) Delete(id JobID) *Future {
	return c.issue(newCommand(core.Delete, core.Encode(core.Delete, uint64(id))))
}

// Release puts a reserved job back into the ready (or delayed) queue
func (c *Conn) Release(id JobID, pri uint32, delay time.Duration) *Future {
	req := core.Encode(core.Release, uint64(id), pri, core.Seconds(delay))
	return c.issue(newCommand(core.Release, req))
}

// Bury puts a reserved job into the buried state
func (c *Conn) Bury(id JobID, pri uint32) *Future {
	return c.issue(newCommand(core.Bury, core.Encode(core.Bury, uint64(id), pri)))
}

// Touch extends the time-to-run of a reserved job
func (c *Conn) Touch(id JobID) *Future {
	return c.issue(newCommand(core.Touch, core.Encode(core.Touch, uint64(id))))
}

// Peek returns a job by id without reserving it
func (c *Conn) Peek(id JobID) *Future {
	return c.issue(newCommand(core.Peek, core.Encode(core.Peek, uint64(id))))
}

// PeekReady returns the next ready job in the used tube
func (c *Conn) PeekReady() *Future {
	return c.issue(newCommand(core.PeekReady, core.Encode(core.PeekReady)))
}

// PeekDelayed returns the delayed job with the shortest delay left in the used tube
func (c *Conn) PeekDelayed() *Future {
	return c.issue(newCommand(core.PeekDelayed, core.Encode(core.PeekDelayed)))
}

// PeekBuried returns the next buried job in the used tube
func (c *Conn) PeekBuried() *Future {
	return c.issue(newCommand(core.PeekBuried, core.Encode(core.PeekBuried)))
}

// Kick moves up to bound buried (or delayed) jobs in the used tube into
// the ready queue. The Future resolves with the number kicked.
// A negative bound fails with ErrBadFormat and is never written.
func (c *Conn) Kick(bound int) *Future {
	if bound < 0 {
		return c.reject(core.Kick, core.ErrBadFormat)
	}

	return c.issue(newCommand(core.Kick, core.Encode(core.Kick, bound)))
}

// KickJob kicks a single buried or delayed job
func (c *Conn) KickJob(id JobID) *Future {
	return c.issue(newCommand(core.KickJob, core.Encode(core.KickJob, uint64(id))))
}

// Use selects the tube that subsequent puts and peeks go to
func (c *Conn) Use(tube string) *Future {
	return c.tubeCommand(core.Use, tube)
}

// Watch adds tube to the watch list. The Future resolves with the number
// of tubes now watched.
func (c *Conn) Watch(tube string) *Future {
	return c.tubeCommand(core.Watch, tube)
}

// Ignore removes tube from the watch list. Fails with NOT_IGNORED if it is
// the last watched tube.
func (c *Conn) Ignore(tube string) *Future {
	return c.tubeCommand(core.Ignore, tube)
}

// PauseTube delays new reservations from tube for delay
func (c *Conn) PauseTube(tube string, delay time.Duration) *Future {
	return c.tubeCommand(core.PauseTube, tube, core.Seconds(delay))
}

// Stats returns server wide statistics
func (c *Conn) Stats() *Future {
	return c.issue(newCommand(core.Stats, core.Encode(core.Stats)))
}

// StatsTube returns statistics of one tube
func (c *Conn) StatsTube(tube string) *Future {
	return c.tubeCommand(core.StatsTube, tube)
}

// StatsJob returns statistics of one job
func (c *Conn) StatsJob(id JobID) *Future {
	return c.issue(newCommand(core.StatsJob, core.Encode(core.StatsJob, uint64(id))))
}

// ListTubes returns the names of all existing tubes
func (c *Conn) ListTubes() *Future {
	return c.issue(newCommand(core.ListTubes, core.Encode(core.ListTubes)))
}

// ListTubesWatched returns the names of the watched tubes
func (c *Conn) ListTubesWatched() *Future {
	return c.issue(newCommand(core.ListTubesWatched, core.Encode(core.ListTubesWatched)))
}

// ListTubeUsed returns the name of the used tube
func (c *Conn) ListTubeUsed() *Future {
	return c.issue(newCommand(core.ListTubeUsed, core.Encode(core.ListTubeUsed)))
}

func (c *Conn) tubeCommand(cmdType core.CmdType, tube string, args ...interface{}) *Future {
	if !core.ValidTubeName(tube) {
		return c.reject(cmdType, core.ErrBadTubeName)
	}

	return c.issue(newCommand(cmdType, core.Encode(cmdType, append([]interface{}{tube}, args...)...)))
}
