package metrics

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Generation outcomes used as the "outcome" label.
const (
	OutcomeGenerated = "generated"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Exporter collects generator metrics on its own registry.
type Exporter struct {
	Namespace string
	Username  string
	Password  string
	Realm     string

	registry       *prometheus.Registry
	generations    *prometheus.CounterVec
	generatedScore *prometheus.CounterVec
	strengthChecks *prometheus.CounterVec
	lengths        prometheus.Histogram
}

// New fills in defaults for any unset field of e and registers its collectors.
func New(e *Exporter) *Exporter {
	if e == nil {
		e = &Exporter{}
	}
	if e.Namespace == "" {
		e.Namespace = "passgen"
	}
	if e.Username == "" {
		e.Username = "prometheus"
	}
	if e.Password == "" {
		e.Password = "passgen"
	}
	if e.Realm == "" {
		e.Realm = "passgen metrics"
	}

	e.generations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: e.Namespace,
		Name:      "generations_total",
		Help:      "Password generation requests by outcome.",
	}, []string{"outcome"})

	e.generatedScore = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: e.Namespace,
		Name:      "generated_strength_total",
		Help:      "Generated passwords by strength score.",
	}, []string{"score"})

	e.strengthChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: e.Namespace,
		Name:      "strength_checks_total",
		Help:      "Strength checks of caller-supplied passwords by score.",
	}, []string{"score"})

	e.lengths = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: e.Namespace,
		Name:      "generated_length",
		Help:      "Length of generated passwords.",
		Buckets:   []float64{4, 8, 12, 16, 24, 32, 64, 128},
	})

	e.registry = prometheus.NewRegistry()
	e.registry.MustRegister(
		e.generations,
		e.generatedScore,
		e.strengthChecks,
		e.lengths,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return e
}

// Generated records a successful generation.
func (e *Exporter) Generated(length, score int) {
	e.generations.WithLabelValues(OutcomeGenerated).Inc()
	e.generatedScore.WithLabelValues(strconv.Itoa(score)).Inc()
	e.lengths.Observe(float64(length))
}

// Rejected records a generation refused for invalid input.
func (e *Exporter) Rejected() {
	e.generations.WithLabelValues(OutcomeRejected).Inc()
}

// Failed records a generation that could not complete.
func (e *Exporter) Failed() {
	e.generations.WithLabelValues(OutcomeFailed).Inc()
}

// Checked records a strength check.
func (e *Exporter) Checked(score int) {
	e.strengthChecks.WithLabelValues(strconv.Itoa(score)).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Handler serves the exposition format behind HTTP basic auth.
func (e *Exporter) Handler() http.Handler {
	return BasicAuthenticator{
		username: e.Username,
		password: e.Password,
		realm:    e.Realm,
		handler:  promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}),
	}
}

type BasicAuthenticator struct {
	username string
	password string
	realm    string

	handler http.Handler
}

func (b BasicAuthenticator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, pass, ok := r.BasicAuth()
	if !ok ||
		subtle.ConstantTimeCompare([]byte(user), []byte(b.username)) != 1 ||
		subtle.ConstantTimeCompare([]byte(pass), []byte(b.password)) != 1 {
		w.Header().Set("WWW-Authenticate", `Basic realm="`+b.realm+`"`)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("# unauthorised\n"))
		return
	}
	b.handler.ServeHTTP(w, r)
}
