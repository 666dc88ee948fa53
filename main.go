package main

import (
	cmd_beanbag "github.com/1xyz/beanbag/beanstalkd/cmd"
	"github.com/1xyz/beanbag/tools"
	"github.com/docopt/docopt-go"
	log "github.com/sirupsen/logrus"
	"os"
)

const version = "0.1.alpha"

func init() {
	log.SetFormatter(&log.TextFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
}

func main() {
	usage := `usage: beanbag [--version] [--addr=<addr>] [--connect-timeout=<secs>] [--prometheus-addr=<addr>]
               [(--verbose|--quiet)] [--help] <command> [<args>...]
options:
   -h, --help
   --addr=<addr>               Beanstalkd address [default: 127.0.0.1:11300].
   --connect-timeout=<secs>    Connection timeout in seconds [default: 10].
   --prometheus-addr=<addr>    Start a prometheus server to expose metrics at this address. By default no server
                               is started [default: ].
   --verbose                   Change the logging level verbosity
   --quiet                     Only log warnings and errors
The commands are:
   put          Put a job into a tube.
   reserve      Reserve a job from one or more tubes.
   delete       Delete one or more jobs.
   peek         Inspect a job without reserving it.
   kick         Kick buried or delayed jobs into the ready queue.
   stats        Show server, tube or job statistics.
   list-tubes   List the existing tubes.
   pipeline     Pipeline puts and deletes on one connection and report throughput.
See 'beanbag <command> --help' for more information on a specific command.
`
	parser := &docopt.Parser{OptionsFirst: true}
	args, err := parser.ParseArgs(usage, nil, version)
	if err != nil {
		log.Errorf("error = %v", err)
		os.Exit(1)
	}

	cmd := args["<command>"].(string)
	cmdArgs := args["<args>"].([]string)

	log.Debugf("global arguments: %v", args)
	log.Debugf("command arguments: %v %v", cmd, cmdArgs)

	verbose := tools.OptsBool(args, "--verbose")
	quiet := tools.OptsBool(args, "--quiet")
	if verbose == true {
		log.SetLevel(log.DebugLevel)
	} else if quiet == true {
		log.SetLevel(log.WarnLevel)
	}

	cfg := &cmd_beanbag.Config{
		Addr:           tools.OptsStr(args, "--addr"),
		ConnectTimeout: tools.OptsInt(args, "--connect-timeout"),
		PrometheusAddr: tools.OptsStr(args, "--prometheus-addr"),
	}

	if err := cmd_beanbag.RunCommand(cfg, cmd, cmdArgs); err != nil {
		log.Errorf("%s: %v", cmd, err)
		os.Exit(1)
	}
	log.Debugf("done")
}
