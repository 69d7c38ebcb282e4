package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "devnet_session"

var (
	// Actions counts session actions by outcome ("ok", "rejected", "error")
	Actions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_total",
		Help:      "Session actions by action and outcome.",
	}, []string{"action", "outcome"})

	// RPCDuration tracks Solana RPC latency
	RPCDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "Solana RPC call latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "outcome"})
)

// MustRegister registers all collectors with reg
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(Actions, RPCDuration)
}

// ObserveRPC records one RPC call started at start
func ObserveRPC(method string, start time.Time, err error) {
	RPCDuration.WithLabelValues(method, outcome(err)).Observe(time.Since(start).Seconds())
}

// CountAction records one session action
func CountAction(action, result string) {
	Actions.WithLabelValues(action, result).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
