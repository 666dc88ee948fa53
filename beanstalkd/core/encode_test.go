package core

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestEncode(t *testing.T) {
	var entries = []struct {
		in  []byte
		out string
		msg string
	}{
		{Encode(Reserve), "reserve\r\n",
			"expect a bare command line"},
		{Encode(ReserveWithTimeout, Seconds(5*time.Second)), "reserve-with-timeout 5\r\n",
			"expect kebab case names and decimal args"},
		{Encode(Delete, uint64(42)), "delete 42\r\n",
			"expect job ids as decimals"},
		{Encode(Release, uint64(7), DefaultPriority, int64(0)), "release 7 2147483648 0\r\n",
			"expect multiple args separated by a single space"},
		{Encode(Use, "foo"), "use foo\r\n",
			"expect tube names as-is"},
		{Encode(ListTubesWatched), "list-tubes-watched\r\n",
			"expect multi word command names"},
		{Encode(PauseTube, "foo", 10), "pause-tube foo 10\r\n",
			"expect mixed args"},
		{EncodePut(10, 0, 60, []byte("hi")), "put 10 0 60 2\r\nhi\r\n",
			"expect put with the body and trailing delimiter"},
		{EncodePut(DefaultPriority, Seconds(DefaultDelay), Seconds(DefaultTTR), []byte{}), "put 2147483648 0 1200 0\r\n\r\n",
			"expect put with default values and an empty body"},
	}

	for _, e := range entries {
		assert.Equalf(t, e.out, string(e.in), e.msg)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	body := []byte("a\r\nb")
	b := EncodePut(1, 2, 3, body)
	line := b[:len(b)-len(body)-2*len(crlf)]

	cmdData, err := ParseCommandLine(string(line))
	assert.Nilf(t, err, "expect encoded put to parse")
	assert.Equalf(t, Put, cmdData.CmdType, "expect put command type")

	pa, err := NewPutArg(cmdData)
	assert.Nilf(t, err, "expect put args to parse")
	assert.Equalf(t, &PutArg{Pri: 1, Delay: 2, TTR: 3, Size: len(body)}, pa,
		"expect put args to match the encoded values")
}

func TestSeconds(t *testing.T) {
	assert.Equalf(t, int64(0), Seconds(-time.Second), "expect negative durations to be zero")
	assert.Equalf(t, int64(1), Seconds(1999*time.Millisecond), "expect truncation to whole seconds")
	assert.Equalf(t, int64(1200), Seconds(DefaultTTR), "expect default ttr of 1200 seconds")
}
