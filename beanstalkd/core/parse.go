package core

import (
	"bufio"
	"bytes"
	"github.com/pkg/errors"
	"io"
)

// ReadLine reads one \r\n terminated line from rdr and returns it without
// the delimiter. A bare \n is accepted as a delimiter as well.
//
// Returns ErrDelimiterMissing if no delimiter is found within limitBytes,
// io.EOF if the stream ended cleanly before the line started and
// io.ErrUnexpectedEOF if it ended in the middle of a line.
func ReadLine(rdr *bufio.Reader, limitBytes int) ([]byte, error) {
	buf := make([]byte, 0, 64)
	for {
		b, err := rdr.ReadSlice('\n')
		buf = append(buf, b...)
		if len(buf) > limitBytes+len(crlf) {
			return nil, ErrDelimiterMissing
		}

		if err == nil {
			break
		} else if err == bufio.ErrBufferFull {
			continue
		} else if err == io.EOF && len(buf) > 0 {
			return nil, io.ErrUnexpectedEOF
		}

		return nil, err
	}

	// drop the \n and an optional \r before it
	buf = buf[:len(buf)-1]
	if n := len(buf); n > 0 && buf[n-1] == '\r' {
		buf = buf[:n-1]
	}

	return buf, nil
}

// ReadBody reads a job body of exactly size bytes followed by the 2 byte
// \r\n delimiter and returns the body.
//
// The body is framed by its announced length only; it can hold any byte
// value including \r, \n or text that looks like a reply header. A stream
// that ends before size+2 bytes arrive returns ErrConnectionClosed, never a
// partial body.
func ReadBody(rdr io.Reader, size int) ([]byte, error) {
	if size < 0 || size > MaxBodySizeBytes {
		return nil, errors.Wrapf(ErrMalformedHeader, "body size %d out of range", size)
	}

	buf := make([]byte, size+len(crlf))
	if _, err := io.ReadFull(rdr, buf); err != nil {
		return nil, errors.Wrapf(ErrConnectionClosed, "reading body of %d bytes: %v", size, err)
	}

	if !bytes.Equal(buf[size:], crlf) {
		return nil, ErrDelimiterMissing
	}

	return buf[:size:size], nil
}
