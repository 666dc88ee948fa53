package core

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParseHeader(t *testing.T) {
	var entries = []struct {
		inLine string
		header *Header
		err    error
		msg    string
	}{
		{"INSERTED 42", &Header{StatusInserted, []string{"42"}}, nil,
			"expect status and one field"},
		{"RESERVED 42 2", &Header{StatusReserved, []string{"42", "2"}}, nil,
			"expect status and two fields"},
		{"NOT_FOUND", &Header{StatusNotFound, []string{}}, nil,
			"expect status with an empty field list"},
		{"  DELETED  ", &Header{StatusDeleted, []string{}}, nil,
			"expect surrounding whitespace to be ignored"},
		{"", nil, ErrMalformedHeader,
			"expect an empty line to be malformed"},
		{" \t ", nil, ErrMalformedHeader,
			"expect a blank line to be malformed"},
	}

	for _, e := range entries {
		h, err := ParseHeader([]byte(e.inLine))
		assert.Equalf(t, e.err, err, e.msg)
		assert.Equalf(t, e.header, h, e.msg)
	}
}

func TestHeader_Fields(t *testing.T) {
	h, err := ParseHeader([]byte("RESERVED 42 2"))
	if err != nil {
		t.Fatalf("test error %v", err)
	}

	id, err := h.Uint64(0)
	assert.Nilf(t, err, "expect id to parse")
	assert.Equalf(t, uint64(42), id, "expect id to be 42")

	size, err := h.Size(1)
	assert.Nilf(t, err, "expect size to parse")
	assert.Equalf(t, 2, size, "expect size to be 2")

	_, err = h.Uint64(2)
	assert.Truef(t, errors.Is(err, ErrMalformedHeader), "expect a missing field to be malformed")

	h, _ = ParseHeader([]byte("INSERTED abc"))
	_, err = h.Uint64(0)
	assert.Truef(t, errors.Is(err, ErrMalformedHeader), "expect a non-numeric field to be malformed")

	h, _ = ParseHeader([]byte("FOUND 1 99999999999"))
	_, err = h.Size(1)
	assert.Truef(t, errors.Is(err, ErrMalformedHeader), "expect an oversized body length to be malformed")

	h, _ = ParseHeader([]byte("USING foo"))
	name, err := h.Field(0)
	assert.Nilf(t, err, "expect field to be present")
	assert.Equalf(t, "foo", name, "expect tube name")
}
