package core

import (
	"fmt"
	log "github.com/sirupsen/logrus"
	"regexp"
	"strconv"
)

// CmdData is a command line as it appears on the wire, split into its
// command type and raw argument string. Data holds the body of a put.
type CmdData struct {
	CmdType  CmdType
	Args     string
	Data     []byte
	NeedData bool
}

func (c CmdData) String() string {
	return fmt.Sprintf("CmdType: %v Args:[%v] NeedData:[%v]",
		c.CmdType, c.Args, c.NeedData)
}

var (
	spaceRe = regexp.MustCompile(`(\s{2,}|\s+(^|$))`)
	splitRe = regexp.MustCompile(`\s`)
)

// ParseCommandLine parses a command line (without its \r\n delimiter) into a
// valid CmdData struct. It is the inverse of Encode.
func ParseCommandLine(cmdLine string) (*CmdData, error) {
	s := spaceRe.ReplaceAllLiteralString(cmdLine, "")
	tokens := splitRe.Split(s, 2)
	if len(tokens) == 0 || (len(tokens) == 1 && tokens[0] == "") {
		return nil, ErrCmdTokensMissing
	}

	if c, ok := LookupCmdType(tokens[0]); !ok {
		return nil, ErrCmdNotFound
	} else {
		var args string
		if len(tokens) == 2 {
			args = tokens[1]
		}

		var data []byte = nil
		if c == Put {
			if len(args) == 0 {
				return nil, ErrBadFormat
			}
			data = make([]byte, 0)
		}

		return &CmdData{
			CmdType:  c,
			Args:     args,
			Data:     data,
			NeedData: data != nil,
		}, nil
	}
}

type tokenMap map[string]string

func matchNamedGroups(args string, re *regexp.Regexp) (tokenMap, bool) {
	if !re.MatchString(args) {
		return nil, false
	}

	names := re.SubexpNames()
	matches := re.FindAllStringSubmatch(args, -1)
	res := make(map[string]string)
	for _, e := range matches {
		for i, f := range e {
			if names[i] == "" {
				continue
			}

			res[names[i]] = f
		}
	}

	return res, true
}

var (
	// put command regex -- put <pri> <delay> <ttr> <bytes>
	putRe = regexp.MustCompile(`^(?P<pri>\d+) (?P<delay>\d+) (?P<ttr>\d+) (?P<bytes>\d+)$`)

	// tube arg regex -- watch <tube> | ignore <tube> | use <tube>
	tubeArgRe = regexp.MustCompile(`(?P<tube>^[A-Za-z0-9+/;.$_()][A-Za-z0-9\-+/;.$_()]{0,199}$)`)

	// id arg regex -- delete <id>
	idArgRe = regexp.MustCompile(`(?P<id>^\d+$)`)

	// reserve-with-timeout regex -- reserve-with-timeout <seconds>
	reserveWithTimeoutRe = regexp.MustCompile(`(?P<seconds>^\d+$)`)
)

// ValidTubeName reports if name can be sent as a tube argument. Names are
// 1-200 bytes of letters, digits and -+/;.$_() and may not start with a hyphen.
func ValidTubeName(name string) bool {
	return tubeArgRe.MatchString(name)
}

// PutArg is the parsed argument list of a put command line
type PutArg struct {
	Pri   uint32
	Delay int64
	TTR   int
	Size  int
}

func NewPutArg(data *CmdData) (*PutArg, error) {
	ctxLog := log.WithFields(log.Fields{"method": "NewPutArg"})
	tm, ok := matchNamedGroups(data.Args, putRe)
	if !ok {
		ctxLog.Debugf("matchNamedGroups ok=false")
		return nil, ErrBadFormat
	}

	pri, err := strconv.ParseUint(tm["pri"], 10, 32)
	if err != nil {
		ctxLog.Debugf("ParseUint(pri) err=%v", err)
		return nil, ErrBadFormat
	}

	delay, err := strconv.ParseInt(tm["delay"], 10, 64)
	if err != nil {
		ctxLog.Debugf("strconv.ParseInt(delay) err=%v", err)
		return nil, ErrBadFormat
	}

	ttr, err := strconv.Atoi(tm["ttr"])
	if err != nil {
		ctxLog.Debugf("atoi(ttr) %v", err)
		return nil, ErrBadFormat
	}

	bytes, err := strconv.Atoi(tm["bytes"])
	if err != nil {
		ctxLog.Debugf("atoi(bytes) %v", err)
		return nil, ErrBadFormat
	}

	return &PutArg{
		Pri:   uint32(pri),
		Delay: delay,
		TTR:   ttr,
		Size:  bytes,
	}, nil
}

type TubeArg struct {
	Name string
}

func NewTubeArg(data *CmdData) (*TubeArg, error) {
	tm, ok := matchNamedGroups(data.Args, tubeArgRe)
	if !ok {
		log.WithField("method", "NewTubeArg").Debugf("matchNamedGroups ok=false")
		return nil, ErrBadFormat
	}

	return &TubeArg{Name: tm["tube"]}, nil
}

type IDArg struct {
	ID uint64
}

func NewIDArg(data *CmdData) (*IDArg, error) {
	ctxLog := log.WithFields(log.Fields{"method": "NewIDArg"})
	tm, ok := matchNamedGroups(data.Args, idArgRe)
	if !ok {
		ctxLog.Debugf("matchNamedGroups ok=false")
		return nil, ErrBadFormat
	}

	id, err := strconv.ParseUint(tm["id"], 10, 64)
	if err != nil {
		ctxLog.Debugf("ParseUint(id) err=%v", err)
		return nil, ErrBadFormat
	}
	return &IDArg{ID: id}, nil
}

type ReserveWithTimeoutArg struct {
	TimeoutSeconds int
}

func NewReserveWithTimeoutArg(data *CmdData) (*ReserveWithTimeoutArg, error) {
	ctxLog := log.WithFields(log.Fields{"method": "NewReserveWithTimeoutArg"})
	tm, ok := matchNamedGroups(data.Args, reserveWithTimeoutRe)
	if !ok {
		ctxLog.Debugf("matchNamedGroups ok=false")
		return nil, ErrBadFormat
	}

	timeoutSeconds, err := strconv.Atoi(tm["seconds"])
	if err != nil {
		ctxLog.Debugf("atoi(seconds) %v", err)
		return nil, ErrBadFormat
	}

	return &ReserveWithTimeoutArg{TimeoutSeconds: timeoutSeconds}, nil
}

// ParseArgs parses the argument string of data according to its command
// type into a *PutArg, *TubeArg, *IDArg or *ReserveWithTimeoutArg.
// Returns nil for commands with no argument or with a list of numbers
// (ex: release) that has no dedicated type.
func ParseArgs(data *CmdData) (interface{}, error) {
	var arg interface{}
	var err error
	switch data.CmdType {
	case Put:
		arg, err = NewPutArg(data)
	case Use, Watch, Ignore, StatsTube:
		arg, err = NewTubeArg(data)
	case Delete, Touch, Peek, KickJob, ReserveJob, StatsJob:
		arg, err = NewIDArg(data)
	case ReserveWithTimeout:
		arg, err = NewReserveWithTimeoutArg(data)
	default:
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return arg, nil
}
