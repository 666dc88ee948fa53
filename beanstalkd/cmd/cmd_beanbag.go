package cmd

import (
	"fmt"
	"github.com/1xyz/beanbag/beanstalkd/core"
	"github.com/1xyz/beanbag/beanstalkd/proto"
	"github.com/1xyz/beanbag/tools"
	"github.com/docopt/docopt-go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"gopkg.in/yaml.v2"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

type putOpts struct {
	Body  string `docopt:"--body"`
	Pri   int    `docopt:"--pri"`
	TTR   int    `docopt:"--ttr"`
	Delay int    `docopt:"--delay"`
	Tube  string `docopt:"--tube"`
}

func cmdPut(ctx context.Context, conn *proto.Conn, argv []string, w io.Writer) error {
	usage := `usage: put [--body=<body>] [--pri=<pri>] [--ttr=<ttr>] [--delay=<delay>] [--tube=<tube>]
options:
	-h, --help
	--body=<body>     body [default: hello]
	--pri=<pri>       job priority [default: 1]
	--ttr=<ttr>       ttr in seconds [default: 10]
	--delay=<delay>   job delay in seconds [default: 0]
	--tube=<tube>     tube (topic) to put the job [default: default]

example:
	put --body "hello world"
	put --body "hello world" --tube foo`

	var o putOpts
	if err := parseInto(usage, argv, &o); err != nil {
		return err
	}
	if err := o.validate(); err != nil {
		return err
	}

	log.Debugf("cmdPut: opts=%+v", o)
	useF := conn.Use(o.Tube)
	putF := conn.Put([]byte(o.Body), uint32(o.Pri),
		time.Duration(o.Delay)*time.Second, time.Duration(o.TTR)*time.Second)
	if err := useF.Err(ctx); err != nil {
		return errors.Wrapf(err, "use %s", o.Tube)
	}

	id, err := putF.JobID(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "inserted job id=%v tube=%v\n", id, o.Tube)
	return nil
}

// validate rejects options that cannot be sent as is
func (o *putOpts) validate() error {
	if err := validTube(o.Tube); err != nil {
		return err
	}
	if o.Pri < 0 || int64(o.Pri) > math.MaxUint32 {
		return fmt.Errorf("put: --pri must be within 0..%d, got %d", uint32(math.MaxUint32), o.Pri)
	}
	if o.Delay < 0 || o.TTR < 0 {
		return fmt.Errorf("put: --delay and --ttr cannot be negative, got %d and %d", o.Delay, o.TTR)
	}
	return nil
}

type reserveOpts struct {
	Timeout  int    `docopt:"--timeout"`
	Tubes    string `docopt:"--tubes"`
	NoDelete bool   `docopt:"--no-delete"`
}

func cmdReserve(ctx context.Context, conn *proto.Conn, argv []string, w io.Writer) error {
	usage := `usage: reserve [--timeout=<timeout>] [--tubes=<tubes>] [--no-delete]
options:
	-h, --help
	--timeout=<timeout>   reservation timeout in seconds, negative waits forever [default: 0]
	--tubes=<tubes>       csv of tubes [default: default]
	--no-delete           do not delete (aka. ACK) the job once reserved

example:
	watch for reservations on default tube (topic)
	reserve

	watch for reservations on tubes foo & bar with timeout of 10 seconds
	reserve --timeout 10 --tubes=foo,bar`

	var o reserveOpts
	if err := parseInto(usage, argv, &o); err != nil {
		return err
	}

	tubeNames := strings.Split(o.Tubes, ",")
	for _, t := range tubeNames {
		if err := validTube(t); err != nil {
			return err
		}
	}
	log.Infof("cmdReserve: timeout=%v sec tubes=%v no-delete=%v", o.Timeout, tubeNames, o.NoDelete)
	if err := watchOnly(ctx, conn, tubeNames); err != nil {
		return err
	}

	var resF *proto.Future
	if o.Timeout < 0 {
		resF = conn.Reserve()
	} else {
		resF = conn.ReserveWithTimeout(time.Duration(o.Timeout) * time.Second)
	}

	job, err := resF.Job(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "reserved job id=%v body=%s\n", job.ID, job.Body)
	if o.NoDelete {
		return nil
	}

	if err := job.Delete(ctx); err != nil {
		return err
	}

	fmt.Fprintf(w, "deleted job id=%v\n", job.ID)
	return nil
}

// watchOnly makes tubes the connection's watch list
func watchOnly(ctx context.Context, conn *proto.Conn, tubes []string) error {
	futures := make([]*proto.Future, 0, len(tubes)+1)
	watchesDefault := false
	for _, t := range tubes {
		futures = append(futures, conn.Watch(t))
		watchesDefault = watchesDefault || t == core.DefaultTubeName
	}
	if !watchesDefault {
		futures = append(futures, conn.Ignore(core.DefaultTubeName))
	}

	for _, f := range futures {
		if err := f.Err(ctx); err != nil {
			return errors.Wrapf(err, "%s", f.Op().Name())
		}
	}
	return nil
}

func cmdDelete(ctx context.Context, conn *proto.Conn, argv []string, w io.Writer) error {
	usage := `usage: delete <id>...
options:
	-h, --help

example:
	delete 1 2 3`

	opts, err := docopt.ParseArgs(usage, argv[1:], "")
	if err != nil {
		return err
	}

	ids, err := parseJobIDs(tools.OptsStrs(opts, "<id>"))
	if err != nil {
		return err
	}

	// every delete is written before the first reply is awaited
	futures := make([]*proto.Future, len(ids))
	for i, id := range ids {
		futures[i] = conn.Delete(id)
	}

	var failed int
	for i, f := range futures {
		if err := f.Err(ctx); err != nil {
			fmt.Fprintf(w, "delete job id=%v err=%v\n", ids[i], err)
			failed++
			continue
		}
		fmt.Fprintf(w, "deleted job id=%v\n", ids[i])
	}

	if failed > 0 {
		return fmt.Errorf("delete: %d of %d deletes failed", failed, len(ids))
	}
	return nil
}

func cmdPeek(ctx context.Context, conn *proto.Conn, argv []string, w io.Writer) error {
	usage := `usage: peek [--tube=<tube>] (<id> | --ready | --delayed | --buried)
options:
	-h, --help
	--tube=<tube>     tube (topic) to peek into [default: default]
	--ready           peek the next ready job
	--delayed         peek the delayed job with the shortest delay left
	--buried          peek the next buried job

example:
	peek 42
	peek --ready --tube foo`

	opts, err := docopt.ParseArgs(usage, argv[1:], "")
	if err != nil {
		return err
	}

	var f *proto.Future
	if s, ok := tools.OptsOptionalStr(opts, "<id>"); ok {
		ids, err := parseJobIDs([]string{s})
		if err != nil {
			return err
		}
		f = conn.Peek(ids[0])
	} else {
		tube := tools.OptsStr(opts, "--tube")
		if err := validTube(tube); err != nil {
			return err
		}
		if err := conn.Use(tube).Err(ctx); err != nil {
			return errors.Wrapf(err, "use %s", tube)
		}

		switch {
		case tools.OptsBool(opts, "--ready"):
			f = conn.PeekReady()
		case tools.OptsBool(opts, "--delayed"):
			f = conn.PeekDelayed()
		default:
			f = conn.PeekBuried()
		}
	}

	job, err := f.Job(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "found job id=%v body=%s\n", job.ID, job.Body)
	return nil
}

type kickOpts struct {
	Bound int    `docopt:"--bound"`
	Tube  string `docopt:"--tube"`
}

func cmdKick(ctx context.Context, conn *proto.Conn, argv []string, w io.Writer) error {
	usage := `usage: kick [--bound=<bound>] [--tube=<tube>]
options:
	-h, --help
	--bound=<bound>   maximum number of jobs to kick [default: 1]
	--tube=<tube>     tube (topic) to kick jobs in [default: default]`

	var o kickOpts
	if err := parseInto(usage, argv, &o); err != nil {
		return err
	}
	if err := validTube(o.Tube); err != nil {
		return err
	}
	if o.Bound < 0 {
		return fmt.Errorf("kick: --bound cannot be negative, got %d", o.Bound)
	}

	useF := conn.Use(o.Tube)
	kickF := conn.Kick(o.Bound)
	if err := useF.Err(ctx); err != nil {
		return errors.Wrapf(err, "use %s", o.Tube)
	}

	n, err := kickF.Count(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "kicked %v job(s) in tube=%v\n", n, o.Tube)
	return nil
}

func cmdStats(ctx context.Context, conn *proto.Conn, argv []string, w io.Writer) error {
	usage := `usage: stats [--tube=<tube> | --job=<id>]
options:
	-h, --help
	--tube=<tube>     statistics of a tube
	--job=<id>        statistics of a job

example:
	stats
	stats --tube foo`

	opts, err := docopt.ParseArgs(usage, argv[1:], "")
	if err != nil {
		return err
	}

	var f *proto.Future
	if tube, ok := tools.OptsOptionalStr(opts, "--tube"); ok {
		f = conn.StatsTube(tube)
	} else if s, ok := tools.OptsOptionalStr(opts, "--job"); ok {
		ids, err := parseJobIDs([]string{s})
		if err != nil {
			return err
		}
		f = conn.StatsJob(ids[0])
	} else {
		f = conn.Stats()
	}

	stats, err := f.Stats(ctx)
	if err != nil {
		return err
	}

	return writeYAML(w, stats)
}

func cmdListTubes(ctx context.Context, conn *proto.Conn, argv []string, w io.Writer) error {
	usage := `usage: list-tubes [--watched]
options:
	-h, --help
	--watched         list only the tubes watched by this connection`

	opts, err := docopt.ParseArgs(usage, argv[1:], "")
	if err != nil {
		return err
	}

	f := conn.ListTubes()
	if tools.OptsBool(opts, "--watched") {
		f = conn.ListTubesWatched()
	}

	tubes, err := f.Tubes(ctx)
	if err != nil {
		return err
	}

	return writeYAML(w, tubes)
}

type pipelineOpts struct {
	Count int    `docopt:"--count"`
	Tube  string `docopt:"--tube"`
	Body  string `docopt:"--body"`
}

func cmdPipeline(ctx context.Context, conn *proto.Conn, argv []string, w io.Writer) error {
	usage := `usage: pipeline [--count=<count>] [--tube=<tube>] [--body=<body>]
options:
	-h, --help
	--count=<count>   number of jobs to put and then delete [default: 1000]
	--tube=<tube>     tube (topic) to use [default: default]
	--body=<body>     body of every job [default: hello]`

	var o pipelineOpts
	if err := parseInto(usage, argv, &o); err != nil {
		return err
	}
	if o.Count <= 0 {
		return fmt.Errorf("pipeline: count must be positive, got %d", o.Count)
	}
	if err := validTube(o.Tube); err != nil {
		return err
	}

	if err := conn.Use(o.Tube).Err(ctx); err != nil {
		return errors.Wrapf(err, "use %s", o.Tube)
	}

	start := time.Now()
	puts := make([]*proto.Future, o.Count)
	for i := range puts {
		puts[i] = conn.PutDefault([]byte(o.Body))
	}

	deletes := make([]*proto.Future, 0, o.Count)
	for _, f := range puts {
		id, err := f.JobID(ctx)
		if err != nil {
			return errors.Wrapf(err, "put")
		}
		deletes = append(deletes, conn.Delete(id))
	}

	for _, f := range deletes {
		if err := f.Err(ctx); err != nil {
			return errors.Wrapf(err, "delete")
		}
	}

	elapsed := time.Since(start)
	fmt.Fprintf(w, "pipelined %d puts and %d deletes in %v (%.0f cmds/sec)\n",
		o.Count, o.Count, elapsed, float64(2*o.Count)/elapsed.Seconds())
	return nil
}

// parseInto parses argv against usage and binds the options into v
func parseInto(usage string, argv []string, v interface{}) error {
	opts, err := docopt.ParseArgs(usage, argv[1:], "")
	if err != nil {
		return err
	}

	if err := opts.Bind(v); err != nil {
		return errors.Wrapf(err, "%s: opts.Bind", argv[0])
	}
	return nil
}

func validTube(name string) error {
	if !core.ValidTubeName(name) {
		return errors.Wrapf(core.ErrBadTubeName, "%q", name)
	}
	return nil
}

func parseJobIDs(args []string) ([]proto.JobID, error) {
	ids := make([]proto.JobID, 0, len(args))
	for _, s := range args {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid job id", s)
		}
		ids = append(ids, proto.JobID(id))
	}
	return ids, nil
}

func writeYAML(w io.Writer, v interface{}) error {
	b, err := yaml.Marshal(v)
	if err != nil {
		return err
	}

	_, err = w.Write(b)
	return err
}
