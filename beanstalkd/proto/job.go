package proto

import (
	"fmt"
	"github.com/1xyz/beanbag/tools"
	"golang.org/x/net/context"
	"time"
)

// Job is a job returned by a reserve or a peek
type Job struct {
	// Server assigned job identifier
	ID JobID

	// Body of the job, exactly as put
	Body []byte

	// connection the job was received on; follow up commands use it
	conn *Conn

	// true while this client holds the reservation
	reserved *tools.AtomicBool
}

func newJob(id JobID, body []byte, conn *Conn, reserved bool) *Job {
	return &Job{
		ID:       id,
		Body:     body,
		conn:     conn,
		reserved: tools.NewAtomicBool(reserved),
	}
}

// Reserved reports if this client still holds the job's reservation
func (j *Job) Reserved() bool {
	return j.reserved.Value()
}

// Conn returns the connection the job was received on
func (j *Job) Conn() *Conn {
	return j.conn
}

// Delete deletes the job and gives up its reservation
func (j *Job) Delete(ctx context.Context) error {
	if err := j.conn.Delete(j.ID).Err(ctx); err != nil {
		return err
	}

	j.reserved.ResetIfTrue()
	return nil
}

// Release puts the reserved job back in the ready queue after delay
func (j *Job) Release(ctx context.Context, pri uint32, delay time.Duration) error {
	if err := j.conn.Release(j.ID, pri, delay).Err(ctx); err != nil {
		return err
	}

	j.reserved.ResetIfTrue()
	return nil
}

// Bury buries the reserved job
func (j *Job) Bury(ctx context.Context, pri uint32) error {
	if err := j.conn.Bury(j.ID, pri).Err(ctx); err != nil {
		return err
	}

	j.reserved.ResetIfTrue()
	return nil
}

// Touch requests more time to work on the reserved job
func (j *Job) Touch(ctx context.Context) error {
	return j.conn.Touch(j.ID).Err(ctx)
}

// Stats returns the server's statistics for this job
func (j *Job) Stats(ctx context.Context) (Stats, error) {
	return j.conn.StatsJob(j.ID).Stats(ctx)
}

func (j *Job) String() string {
	return fmt.Sprintf("Job: id=%v size=%v reserved=%v", j.ID, len(j.Body), j.Reserved())
}
