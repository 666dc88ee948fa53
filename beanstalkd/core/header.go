package core

import (
	"fmt"
	"github.com/pkg/errors"
	"strconv"
	"strings"
)

// Header is a decoded reply header line: the status token followed by
// positional fields, ex: "RESERVED 42 2" -> {RESERVED, [42, 2]}
type Header struct {
	Status string
	Fields []string
}

func (h Header) String() string {
	return fmt.Sprintf("Status: %v Fields:%v", h.Status, h.Fields)
}

// ParseHeader splits a reply line (without its \r\n delimiter) on whitespace.
// Returns ErrMalformedHeader if the line carries no status token.
func ParseHeader(line []byte) (*Header, error) {
	tokens := strings.Fields(string(line))
	if len(tokens) == 0 {
		return nil, ErrMalformedHeader
	}

	return &Header{
		Status: tokens[0],
		Fields: tokens[1:],
	}, nil
}

// Uint64 parses the field at index i as an unsigned decimal
func (h *Header) Uint64(i int) (uint64, error) {
	if i >= len(h.Fields) {
		return 0, errors.Wrapf(ErrMalformedHeader, "%s: missing field %d", h.Status, i)
	}

	v, err := strconv.ParseUint(h.Fields[i], 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedHeader, "%s: field %d=%q is not numeric", h.Status, i, h.Fields[i])
	}

	return v, nil
}

// Size parses the field at index i as a body length
func (h *Header) Size(i int) (int, error) {
	v, err := h.Uint64(i)
	if err != nil {
		return 0, err
	}

	if v > uint64(MaxBodySizeBytes) {
		return 0, errors.Wrapf(ErrMalformedHeader, "%s: field %d=%d exceeds max. body size %d",
			h.Status, i, v, MaxBodySizeBytes)
	}

	return int(v), nil
}

// Field returns the field at index i
func (h *Header) Field(i int) (string, error) {
	if i >= len(h.Fields) {
		return "", errors.Wrapf(ErrMalformedHeader, "%s: missing field %d", h.Status, i)
	}

	return h.Fields[i], nil
}
