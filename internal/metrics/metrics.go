package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LinesRead counts raw lines pulled from the log source
	LinesRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logsight_lines_read_total",
		Help: "Raw lines read from the access log source",
	})

	// RecordsParsed counts lines that matched the access log structure
	RecordsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logsight_records_parsed_total",
		Help: "Lines successfully parsed into records",
	})

	// LinesSkipped counts unparseable lines dropped by the parser
	LinesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logsight_lines_skipped_total",
		Help: "Lines that did not match the access log structure",
	})

	// QueriesServed counts stats API hits per endpoint
	QueriesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logsight_queries_served_total",
		Help: "Stats API requests served, by endpoint",
	}, []string{"endpoint"})
)

// StartServer exposes /metrics on the given address. Blocks.
func StartServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
