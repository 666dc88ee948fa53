package proto

import (
	"fmt"
	"github.com/1xyz/beanbag/beanstalkd/core"
	"github.com/1xyz/beanbag/tools"
	"golang.org/x/net/context"
)

// Future is the completion handle of an issued command. It is resolved
// exactly once, with either a value or an error, by the connection's
// dispatcher.
//
// Giving up on a Future (ex: a cancelled context passed to Wait) does not
// withdraw the command from the server; the Future is still resolved once
// its reply arrives or the connection closes.
type Future struct {
	op       core.CmdType
	done     chan struct{}
	resolved *tools.AtomicBool
	value    interface{}
	err      error
}

func newFuture(op core.CmdType) *Future {
	return &Future{
		op:       op,
		done:     make(chan struct{}),
		resolved: tools.NewAtomicBool(false),
	}
}

// resolve sets the result of the future. Only the first call has any
// effect; later calls return ErrAlreadyResolved.
func (f *Future) resolve(v interface{}, err error) error {
	if !f.resolved.SetIfFalse() {
		return ErrAlreadyResolved
	}

	f.value = v
	f.err = err
	close(f.done)
	return nil
}

// Op returns the command this future belongs to
func (f *Future) Op() core.CmdType {
	return f.op
}

// Done returns a channel that's closed once the future is resolved
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the future is resolved or ctx is done
func (f *Future) Wait(ctx context.Context) (interface{}, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Err waits for the future and returns only its error. Used for commands
// with no result value, ex: delete.
func (f *Future) Err(ctx context.Context) error {
	_, err := f.Wait(ctx)
	return err
}

// JobID waits for the id of an inserted job
func (f *Future) JobID(ctx context.Context) (JobID, error) {
	v, err := f.Wait(ctx)
	if err != nil {
		return 0, err
	}

	id, ok := v.(JobID)
	if !ok {
		return 0, f.typeErr(v, "JobID")
	}
	return id, nil
}

// Job waits for a reserved or peeked job
func (f *Future) Job(ctx context.Context) (*Job, error) {
	v, err := f.Wait(ctx)
	if err != nil {
		return nil, err
	}

	job, ok := v.(*Job)
	if !ok {
		return nil, f.typeErr(v, "*Job")
	}
	return job, nil
}

// Count waits for a numeric result such as the watch list size or the
// number of kicked jobs
func (f *Future) Count(ctx context.Context) (uint64, error) {
	v, err := f.Wait(ctx)
	if err != nil {
		return 0, err
	}

	n, ok := v.(uint64)
	if !ok {
		return 0, f.typeErr(v, "uint64")
	}
	return n, nil
}

// Tube waits for a tube name (use, list-tube-used)
func (f *Future) Tube(ctx context.Context) (string, error) {
	v, err := f.Wait(ctx)
	if err != nil {
		return "", err
	}

	name, ok := v.(string)
	if !ok {
		return "", f.typeErr(v, "string")
	}
	return name, nil
}

// Stats waits for a stats, stats-tube or stats-job dictionary
func (f *Future) Stats(ctx context.Context) (Stats, error) {
	v, err := f.Wait(ctx)
	if err != nil {
		return nil, err
	}

	s, ok := v.(Stats)
	if !ok {
		return nil, f.typeErr(v, "Stats")
	}
	return s, nil
}

// Tubes waits for a list of tube names (list-tubes, list-tubes-watched)
func (f *Future) Tubes(ctx context.Context) ([]string, error) {
	v, err := f.Wait(ctx)
	if err != nil {
		return nil, err
	}

	tubes, ok := v.([]string)
	if !ok {
		return nil, f.typeErr(v, "[]string")
	}
	return tubes, nil
}

func (f *Future) typeErr(v interface{}, want string) error {
	return fmt.Errorf("%s: result is %T, not %s", f.op.Name(), v, want)
}
