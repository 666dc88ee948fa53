package proto

import (
	"github.com/1xyz/beanbag/beanstalkd/core"
	"github.com/armon/go-metrics"
	"time"
)

// Metric keys are emitted through the go-metrics global sink; the CLI
// decides whether that is prometheus or a blackhole.
var (
	keyPending = []string{"beanbag", "pending"}
	keyReply   = []string{"beanbag", "reply"}
)

func measureIssue(op core.CmdType) {
	metrics.IncrCounter([]string{"beanbag", "cmd", op.Name()}, 1)
}

func measureReply(op core.CmdType, kind outcomeKind, issuedAt time.Time) {
	metrics.IncrCounterWithLabels(keyReply, 1, []metrics.Label{
		{Name: "op", Value: op.Name()},
		{Name: "outcome", Value: kind.String()},
	})
	metrics.MeasureSince([]string{"beanbag", "cmd", op.Name(), "latency"}, issuedAt)
}

func measurePending(n int) {
	metrics.SetGauge(keyPending, float32(n))
}
