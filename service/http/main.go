package main

import (
	_ "expvar"
	"fmt"
	"io/ioutil"
	"log"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"

	httplib "quarteto/lib/http"
	"quarteto/service/common"
	"quarteto/stage"

	"github.com/alexflint/go-arg"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

type ServerArgs struct {
	Port            uint          `arg:"--port,env:PORT" default:"2425"`
	RequestTimeout  time.Duration `arg:"--request-timeout,env:REQUEST_TIMEOUT" default:"2s"`
	MaxConcurrent   int           `arg:"--max-concurrent,env:MAX_CONCURRENT_REQUESTS" default:"1000"`
	TraceSampleRate float64       `arg:"--trace-sample-rate,env:TRACE_SAMPLE_RATE" default:"0"`
}

// ------------------------ START metric definitions ----------------------------

var totalRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of incoming HTTP requests.",
	},
	[]string{"path"},
)

var totalRequestsProcessed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_processed_total",
		Help: "Number of HTTP requests processed.",
	},
	[]string{"path"},
)

var responseStatus = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "response_status",
		Help: "Status of HTTP response",
	},
	[]string{"path", "status"},
)

var httpDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
	Name: "http_response_time_seconds",
	Help: "Duration of HTTP requests.",
	// Track quantiles within small error
	Objectives: map[float64]float64{
		0.25: 0.05,
		0.50: 0.05,
		0.75: 0.05,
		0.90: 0.05,
		0.95: 0.02,
		0.99: 0.01,
	},
}, []string{"path"})

// ------------------------ END metric definitions ------------------------------

// response writer to capture status code from header.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func NewResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

// middleware to "log" response codes, latency histogram and count total number
// of requests.
func prometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := mux.CurrentRoute(r)
		path, _ := route.GetPathTemplate()
		totalRequests.WithLabelValues(path).Inc()
		timer := prometheus.NewTimer(httpDuration.WithLabelValues(path))
		rw := NewResponseWriter(w)
		next.ServeHTTP(rw, r)
		statusCode := rw.statusCode
		timer.ObserveDuration()
		responseStatus.WithLabelValues(path, strconv.Itoa(statusCode)).Inc()
		totalRequestsProcessed.WithLabelValues(path).Inc()
	})
}

// newRouter wires the handlers and the middleware shared by every route.
func newRouter(st stage.Stage, args ServerArgs) *mux.Router {
	router := mux.NewRouter()
	router.Use(prometheusMiddleware)
	if args.RequestTimeout > 0 {
		router.Use(httplib.TimeoutMiddleware(args.RequestTimeout))
	}
	if args.MaxConcurrent > 0 {
		router.Use(httplib.RateLimitingMiddleware(args.MaxConcurrent))
	}
	router.Use(httplib.Tracer(st.Logger, time.Millisecond*500, args.TraceSampleRate))

	controller := server{st}
	controller.setHandlers(router)
	return router
}

func main() {
	// seed random number generator so that trace sampling is not the same
	// across restarts
	rand.Seed(time.Now().UnixNano())
	// Parse flags / environment variables.
	var flags struct {
		ServerArgs
		stage.StageArgs
		common.PrometheusArgs
		common.PprofArgs
		common.HealthCheckArgs
	}
	arg.MustParse(&flags)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(ioutil.Discard)
	st, err := stage.CreateFromArgs(&flags.StageArgs)
	if err != nil {
		panic(fmt.Sprintf("Failed to setup stage: %v", err))
	}
	defer st.Close()

	// Start a prometheus server and add a middleware to the main router to capture
	// standard metrics.
	common.StartPromMetricsServer(flags.MetricsPort)
	// Start a pprof server to export the standard pprof endpoints.
	common.StartPprofServer(flags.PprofPort)
	common.StartHealthCheckServer(flags.HealthPort, st.DB)

	router := newRouter(st, flags.ServerArgs)

	addr := fmt.Sprintf(":%d", flags.Port)
	st.Logger.Info("starting http service", zap.String("addr", addr))
	l, err := net.Listen("tcp", addr)
	if err != nil {
		st.Logger.Fatal("Listen()", zap.Error(err))
	}

	// Signal that server is open for business.
	st.Logger.Info("server is ready...")

	if err = http.Serve(l, router); err != http.ErrServerClosed {
		st.Logger.Fatal("Serve()", zap.Error(err))
	}
}
