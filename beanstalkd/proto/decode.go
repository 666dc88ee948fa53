package proto

import (
	"github.com/1xyz/beanbag/beanstalkd/core"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// JobID is a server assigned job identifier
type JobID uint64

// Stats is the YAML dictionary returned by stats, stats-tube and stats-job.
// Values are ints, floats or strings as the server formats them.
type Stats map[string]interface{}

func decodeUnit(_ *Conn, _ *core.Header) (interface{}, error) {
	return nil, nil
}

// INSERTED <id>
func decodeJobID(_ *Conn, h *core.Header) (interface{}, error) {
	id, err := h.Uint64(0)
	if err != nil {
		return nil, err
	}
	return JobID(id), nil
}

// KICKED <count> | WATCHING <count>
func decodeCount(_ *Conn, h *core.Header) (interface{}, error) {
	return h.Uint64(0)
}

// USING <tube>
func decodeTube(_ *Conn, h *core.Header) (interface{}, error) {
	return h.Field(0)
}

// RESERVED <id> <bytes>\r\n<data>\r\n
func decodeReservedJob(conn *Conn, h *core.Header) (interface{}, error) {
	return decodeJob(conn, h, true)
}

// FOUND <id> <bytes>\r\n<data>\r\n
func decodePeekedJob(conn *Conn, h *core.Header) (interface{}, error) {
	return decodeJob(conn, h, false)
}

func decodeJob(conn *Conn, h *core.Header, reserved bool) (interface{}, error) {
	id, err := h.Uint64(0)
	if err != nil {
		return nil, err
	}

	size, err := h.Size(1)
	if err != nil {
		return nil, err
	}

	body, err := conn.readBody(size)
	if err != nil {
		return nil, err
	}

	return newJob(JobID(id), body, conn, reserved), nil
}

// OK <bytes>\r\n<yaml dictionary>\r\n
func decodeStats(conn *Conn, h *core.Header) (interface{}, error) {
	body, err := readSizedBody(conn, h)
	if err != nil {
		return nil, err
	}

	var s Stats
	if err := yaml.Unmarshal(body, &s); err != nil {
		return nil, errors.Wrap(err, "decode stats yaml")
	}
	if s == nil {
		s = make(Stats)
	}
	return s, nil
}

// OK <bytes>\r\n<yaml list>\r\n
func decodeTubes(conn *Conn, h *core.Header) (interface{}, error) {
	body, err := readSizedBody(conn, h)
	if err != nil {
		return nil, err
	}

	var tubes []string
	if err := yaml.Unmarshal(body, &tubes); err != nil {
		return nil, errors.Wrap(err, "decode tube list yaml")
	}
	if tubes == nil {
		tubes = make([]string, 0)
	}
	return tubes, nil
}

func readSizedBody(conn *Conn, h *core.Header) ([]byte, error) {
	size, err := h.Size(0)
	if err != nil {
		return nil, err
	}
	return conn.readBody(size)
}

// bodySizeField returns the position of the body length field for reply
// statuses that are always followed by a body, whatever command they answer.
func bodySizeField(status string) (int, bool) {
	switch status {
	case core.StatusReserved, core.StatusFound:
		return 1, true
	case core.StatusOK:
		return 0, true
	default:
		return 0, false
	}
}
