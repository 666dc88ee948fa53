package core

import (
	"unicode"
	"unicode/utf8"
)

// CmdType refers to the type of command in beanstalkd context

//go:generate stringer -type=CmdType --output cmd_type_string.go
type CmdType int

const (
	Unknown CmdType = iota
	Bury
	Delete
	Ignore
	Kick
	KickJob
	ListTubeUsed
	ListTubes
	ListTubesWatched
	PauseTube
	Peek
	PeekBuried
	PeekDelayed
	PeekReady
	Put
	Quit
	Release
	Reserve
	ReserveJob
	ReserveWithTimeout
	Stats
	StatsJob
	StatsTube
	Touch
	Use
	Watch
	Max
)

var (
	commandTypeStrings map[string]CmdType
	commandNames       map[CmdType]string
)

func init() {
	commandTypeStrings = make(map[string]CmdType)
	commandNames = make(map[CmdType]string)
	for c := Unknown + 1; c < Max; c++ {
		name := kebabCase(c.String())
		commandTypeStrings[name] = c
		commandNames[c] = name
	}
}

// Name returns the wire name of the command, ex: "reserve-with-timeout"
func (c CmdType) Name() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return kebabCase(c.String())
}

// LookupCmdType returns the CmdType for a wire name
func LookupCmdType(name string) (CmdType, bool) {
	c, ok := commandTypeStrings[name]
	return c, ok
}

func kebabCase(s string) string {
	result := make([]byte, 0, len(s))
	for i, ch := range s {
		if unicode.IsUpper(ch) && i > 0 {
			result = append(result, '-')
		}

		ch = unicode.ToLower(ch)
		eLen := utf8.RuneLen(ch)
		b := make([]byte, eLen, eLen)
		n := utf8.EncodeRune(b, ch)
		for j := 0; j < n; j++ {
			result = append(result, b[j])
		}
	}

	return string(result)
}
