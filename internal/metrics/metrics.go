// Package metrics exposes Prometheus counters for directory and log activity.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder records domain events. A nil *Recorder discards everything.
type Recorder struct {
	usersCreated prometheus.Counter
	entriesAdded prometheus.Counter
	logsServed   prometheus.Histogram
	userNotFound *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "exercise_tracker",
			Name:      "users_created_total",
			Help:      "Users added to the directory.",
		}),
		entriesAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "exercise_tracker",
			Name:      "exercise_entries_added_total",
			Help:      "Exercise entries appended to user logs.",
		}),
		logsServed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "exercise_tracker",
			Name:      "log_entries_returned",
			Help:      "Entries returned per log query.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 500},
		}),
		userNotFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "exercise_tracker",
			Name:      "user_not_found_total",
			Help:      "Operations that referenced a missing user.",
		}, []string{"operation"}),
	}
	reg.MustRegister(r.usersCreated, r.entriesAdded, r.logsServed, r.userNotFound)
	return r
}

// UserCreated counts a new user.
func (r *Recorder) UserCreated() {
	if r == nil {
		return
	}
	r.usersCreated.Inc()
}

// EntriesAdded counts n appended entries.
func (r *Recorder) EntriesAdded(n int) {
	if r == nil {
		return
	}
	r.entriesAdded.Add(float64(n))
}

// LogServed observes the size of a returned log.
func (r *Recorder) LogServed(count int) {
	if r == nil {
		return
	}
	r.logsServed.Observe(float64(count))
}

// UserNotFound counts a lookup miss for operation.
func (r *Recorder) UserNotFound(operation string) {
	if r == nil {
		return
	}
	r.userNotFound.WithLabelValues(operation).Inc()
}
