package core

import (
	"bytes"
	"fmt"
	"strconv"
)

var crlf = []byte("\r\n")

// Encode builds the command line for cmd: the command's wire name followed by
// space separated arguments and a \r\n delimiter.
//
// Integer arguments are written as decimal ASCII, strings (tube names) as-is.
// The protocol forbids \r\n inside arguments, so nothing is escaped; callers
// validate tube names with ValidTubeName.
func Encode(cmd CmdType, args ...interface{}) []byte {
	var b bytes.Buffer
	writeCmdLine(&b, cmd, args)
	return b.Bytes()
}

// EncodeWithBody builds the command line for cmd followed by body and a
// trailing \r\n. This is the request form of a put.
func EncodeWithBody(cmd CmdType, body []byte, args ...interface{}) []byte {
	var b bytes.Buffer
	b.Grow(MaxCmdSizeBytes + len(body) + len(crlf))
	writeCmdLine(&b, cmd, args)
	b.Write(body)
	b.Write(crlf)
	return b.Bytes()
}

// EncodePut builds put <pri> <delay> <ttr> <bytes>\r\n<body>\r\n
func EncodePut(pri uint32, delaySecs, ttrSecs int64, body []byte) []byte {
	return EncodeWithBody(Put, body, pri, delaySecs, ttrSecs, len(body))
}

func writeCmdLine(b *bytes.Buffer, cmd CmdType, args []interface{}) {
	b.WriteString(cmd.Name())
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(formatArg(a))
	}
	b.Write(crlf)
}

func formatArg(a interface{}) string {
	switch v := a.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
