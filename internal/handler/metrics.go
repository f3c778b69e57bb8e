package handler

import (
	"fmt"
	"net/http"

	"github.com/hormonya/hormonya/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "hormonya_logins_total{outcome=\"new\"} %d\n", snap.LoginsNew)
	writeMetric(w, "hormonya_logins_total{outcome=\"existing\"} %d\n", snap.LoginsExisting)
	writeMetric(w, "hormonya_profiles_saved_total %d\n", snap.ProfilesSaved)

	writeMetric(w, "hormonya_user_cache_hits_total %d\n", snap.UserCacheHits)
	writeMetric(w, "hormonya_user_cache_misses_total %d\n", snap.UserCacheMisses)

	writeMetric(w, "hormonya_cycles_saved_total %d\n", snap.CyclesSaved)

	writeMetric(w, "hormonya_chat_replies_total{mode=\"ai\"} %d\n", snap.ChatRepliesAI)
	writeMetric(w, "hormonya_chat_replies_total{mode=\"demo\"} %d\n", snap.ChatRepliesDemo)
	writeMetric(w, "hormonya_chat_replies_total{mode=\"error\"} %d\n", snap.ChatRepliesError)
	writeMetric(w, "hormonya_chat_rate_limited_total %d\n", snap.ChatRateLimited)
	writeMetric(w, "hormonya_chat_duration_seconds_count %d\n", snap.ChatDurationCount)
	writeMetric(w, "hormonya_chat_duration_seconds_sum %.6f\n", float64(snap.ChatDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
