package cmd

import (
	"fmt"
	"github.com/1xyz/beanbag/beanstalkd/proto"
	"github.com/armon/go-metrics"
	"github.com/armon/go-metrics/prometheus"
	"github.com/davecgh/go-spew/spew"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const serviceName = "beanbag"

// Config holds the global options shared by every sub-command
type Config struct {
	Addr           string
	ConnectTimeout int
	PrometheusAddr string
}

func (c Config) String() string {
	return fmt.Sprintf("Addr=%v ConnectTimeout=%vs PrometheusAddr=%v",
		c.Addr, c.ConnectTimeout, c.PrometheusAddr)
}

func (c *Config) dial() (*proto.Conn, error) {
	return proto.Dial(c.Addr, time.Duration(c.ConnectTimeout)*time.Second)
}

// subCmd runs one sub-command on an established connection, writing
// its results to w.
type subCmd func(ctx context.Context, conn *proto.Conn, argv []string, w io.Writer) error

var subCmds = map[string]subCmd{
	"put":        cmdPut,
	"reserve":    cmdReserve,
	"delete":     cmdDelete,
	"peek":       cmdPeek,
	"kick":       cmdKick,
	"stats":      cmdStats,
	"list-tubes": cmdListTubes,
	"pipeline":   cmdPipeline,
}

// RunCommand connects to the configured server and runs the sub-command c
// with args.
func RunCommand(cfg *Config, c string, args []string) error {
	run, ok := subCmds[c]
	if !ok {
		return fmt.Errorf("%s is not a supported command. See 'beanbag --help'", c)
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		spew.Dump(cfg)
	}

	if err := InitializeMetrics(serviceName, cfg.PrometheusAddr); err != nil {
		return err
	}

	conn, err := cfg.dial()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cancelOnShutdown(ctx, cancel)

	argv := append([]string{c}, args...)
	return run(ctx, conn, argv, os.Stdout)
}

// cancelOnShutdown waits for a terminate or interrupt signal and cancels
// the running command once one is received.
func cancelOnShutdown(ctx context.Context, cancel context.CancelFunc) {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		log.Infof("cancelOnShutdown: Shutdown signal received")
		cancel()
	case <-ctx.Done():
	}
}

// InitializeMetrics installs the global metrics sink. A prometheus sink and
// its /metrics endpoint are set up when metricsAddr is given, otherwise
// metrics are discarded.
func InitializeMetrics(serviceName, metricsAddr string) error {
	var sink metrics.MetricSink = nil
	var err error = nil
	if metricsAddr != "" {
		sink, err = prometheus.NewPrometheusSink()
		if err != nil {
			return err
		}
	} else {
		sink = &metrics.BlackholeSink{}
	}

	m, err := metrics.NewGlobal(metrics.DefaultConfig(serviceName), sink)
	if err != nil {
		return err
	}
	m.EnableHostname = false

	if metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(metricsAddr, nil); err != nil {
				log.Fatalf("Unable to start prometheus server err = %v", err)
			}
		}()
	}
	return nil
}
