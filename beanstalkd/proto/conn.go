package proto

import (
	"bufio"
	"fmt"
	"github.com/1xyz/beanbag/beanstalkd/core"
	"github.com/1xyz/beanbag/tools"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Conn is a pipelined client connection to a beanstalkd server.
//
// Any number of go-routines may issue commands concurrently. Each command
// is queued and written in one step, and a single dispatcher go-routine
// matches replies to queued commands in the order they were written.
type Conn struct {
	// unique identifier of this connection, used in logs
	id string

	// represents the underlying network stream
	rwc io.ReadWriteCloser

	// buffered reader over rwc, only used by the dispatcher
	rdr *bufio.Reader

	// serializes the push to pending and the write of a command
	writeMu sync.Mutex

	// commands written and waiting for a reply
	pending *pendingQueue

	// current ConnState
	state int32

	startOnce sync.Once

	// set once Close was called; the read error that follows is expected
	closing *tools.AtomicBool

	// closed when the dispatcher exits
	doneCh chan struct{}
}

// Dial connects to the beanstalkd server at addr and starts the dispatcher
func Dial(addr string, timeout time.Duration) (*Conn, error) {
	nc, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", addr)
	}

	c := NewConn(nc)
	c.Start()
	return c, nil
}

// NewConn wraps an established transport. Commands can be issued right
// away; their replies are processed once Start is called.
func NewConn(rwc io.ReadWriteCloser) *Conn {
	return &Conn{
		id:      uuid.New().URN(),
		rwc:     rwc,
		rdr:     bufio.NewReader(rwc),
		pending: newPendingQueue(),
		state:   int32(NotStarted),
		closing: tools.NewAtomicBool(false),
		doneCh:  make(chan struct{}),
	}
}

// Start launches the dispatcher go-routine. Calling Start more than once
// has no effect.
func (c *Conn) Start() {
	c.startOnce.Do(func() {
		c.setState(AwaitingHeader)
		go c.dispatch()
	})
}

// ID returns the unique identifier of this connection
func (c *Conn) ID() string {
	return c.id
}

// State returns the dispatcher's current state
func (c *Conn) State() ConnState {
	return ConnState(atomic.LoadInt32(&c.state))
}

func (c *Conn) setState(s ConnState) {
	atomic.StoreInt32(&c.state, int32(s))
}

// Pending returns the number of commands waiting for a reply
func (c *Conn) Pending() int {
	return c.pending.Len()
}

// Wait returns a channel that's closed once the dispatcher has exited
// and every pending command is resolved.
func (c *Conn) Wait() <-chan struct{} {
	return c.doneCh
}

// Close closes the transport and waits until every pending command has
// been resolved with ErrConnectionClosed.
func (c *Conn) Close() error {
	c.closing.SetIfFalse()
	err := c.rwc.Close()
	// a dispatcher is needed to drain, even if the conn was never started
	c.Start()
	<-c.doneCh
	return err
}

// Quit sends the quit command and half-closes the transport. No reply is
// expected; commands already pending still receive theirs, new commands
// fail with ErrConnectionClosed. The dispatcher exits once the server
// closes its side.
func (c *Conn) Quit() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if !c.pending.Seal() {
		return core.ErrConnectionClosed
	}

	if _, err := c.rwc.Write(core.Encode(core.Quit)); err != nil {
		return errors.Wrapf(core.ErrConnectionClosed, "write quit: %v", err)
	}

	if cw, ok := c.rwc.(interface{ CloseWrite() error }); ok {
		if err := cw.CloseWrite(); err != nil {
			log.WithFields(log.Fields{"method": "conn.Quit", "connID": c.id}).
				Debugf("CloseWrite err=%v", err)
		}
	}

	return nil
}

// issue queues cmd and writes its request as one step relative to other
// issuers, so the write order always matches the queue order.
func (c *Conn) issue(cmd *command) *Future {
	measureIssue(cmd.cmdType)

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.pending.Push(cmd); err != nil {
		c.complete(cmd, outcomeError, nil, err)
		return cmd.future
	}

	if _, err := c.rwc.Write(cmd.request); err != nil {
		// the command is already queued; closing the transport makes the
		// dispatcher drain it along with everything else
		log.WithFields(log.Fields{"method": "conn.issue", "connID": c.id}).
			Errorf("write %v err=%v", cmd.cmdType.Name(), err)
		if err := c.rwc.Close(); err != nil {
			log.Debugf("conn.issue: close err=%v", err)
		}
	}

	return cmd.future
}

// reject resolves a command that is never written, ex: a bad tube name
func (c *Conn) reject(cmdType core.CmdType, err error) *Future {
	cmd := newCommand(cmdType, nil)
	c.complete(cmd, outcomeError, nil, err)
	return cmd.future
}

// complete resolves the future of cmd
func (c *Conn) complete(cmd *command, kind outcomeKind, v interface{}, err error) {
	measureReply(cmd.cmdType, kind, cmd.issuedAt)
	if rerr := cmd.future.resolve(v, err); rerr != nil {
		log.WithFields(log.Fields{"method": "conn.complete", "connID": c.id}).
			Errorf("%v: %v", cmd, rerr)
	}
}

// readBody reads a length framed body following the current header
func (c *Conn) readBody(size int) ([]byte, error) {
	c.setState(FramingBody)
	defer c.setState(AwaitingHeader)
	return core.ReadBody(c.rdr, size)
}

// dispatch reads reply headers until the stream ends or can no longer be
// trusted, resolving the oldest pending command with each reply.
func (c *Conn) dispatch() {
	ctxLog := log.WithFields(log.Fields{"method": "conn.dispatch", "connID": c.id})
	defer close(c.doneCh)

	var cause error
	for {
		line, err := core.ReadLine(c.rdr, core.MaxHeaderSizeBytes)
		if err != nil {
			cause = err
			break
		}

		cmd, ok := c.pending.Pop()
		if !ok {
			cause = errors.Wrapf(ErrQueueDesync, "reply %q", line)
			break
		}

		ctxLog.Debugf("reply %q for %v", line, cmd)
		if err := c.handleReply(cmd, line); err != nil {
			cause = err
			break
		}
	}

	if cause == io.EOF {
		ctxLog.Debugf("server closed the connection")
	} else if c.closing.Value() || errors.Is(cause, io.ErrClosedPipe) {
		ctxLog.Debugf("connection closed by client err=%v", cause)
	} else {
		ctxLog.Warnf("closing connection err=%v", cause)
	}

	c.closeOut()
}

// handleReply decodes one reply and resolves cmd with it. A returned error
// means the stream is out of sync and the connection has to close.
func (c *Conn) handleReply(cmd *command, line []byte) error {
	h, err := core.ParseHeader(line)
	if err != nil {
		c.complete(cmd, outcomeError, nil, err)
		return err
	}

	o, err := c.evaluate(cmd, h)
	if err != nil {
		c.complete(cmd, outcomeError, nil, err)
		if fatal(err) {
			return err
		}
		return nil
	}

	v, err := o.result(cmd.cmdType)
	c.complete(cmd, o.kind, v, err)
	return nil
}

// evaluate classifies h for cmd and decodes a successful reply
func (c *Conn) evaluate(cmd *command, h *core.Header) (outcome, error) {
	o := outcome{
		kind:   cmd.classify(h),
		status: h.Status,
		fields: h.Fields,
	}

	switch o.kind {
	case outcomeSuccess:
		v, err := cmd.spec.decode(c, h)
		if err != nil {
			return o, err
		}
		o.value = v

	case outcomeUnexpected:
		log.WithFields(log.Fields{"method": "conn.evaluate", "connID": c.id}).
			Warnf("%v: unexpected reply %v", cmd.cmdType.Name(), h)
		// a reply that announces a body is followed by one, whichever
		// command it answers; consume it to stay in sync
		if i, ok := bodySizeField(h.Status); ok {
			size, err := h.Size(i)
			if err != nil {
				return o, err
			}
			if _, err := c.readBody(size); err != nil {
				return o, err
			}
		}
	}

	return o, nil
}

// closeOut marks the connection closed and resolves every pending command,
// oldest first, with ErrConnectionClosed.
func (c *Conn) closeOut() {
	c.setState(Closed)
	if err := c.rwc.Close(); err != nil {
		log.WithFields(log.Fields{"method": "conn.closeOut", "connID": c.id}).
			Debugf("close err=%v", err)
	}

	for _, cmd := range c.pending.Close() {
		c.complete(cmd, outcomeError, nil, core.ErrConnectionClosed)
	}
}

func (c *Conn) String() string {
	return fmt.Sprintf("Conn: %v State: %v Pending: %v", c.id, c.State(), c.Pending())
}
