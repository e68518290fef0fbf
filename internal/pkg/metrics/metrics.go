// Package metrics defines the custom Prometheus collectors of the CMS
// backend. It is the single source of truth for metric names, labels and help
// strings.
//
// Collectors are created unregistered; call Register once per registry (the
// router does this for the registry it exposes on /metrics).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cms"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "rejected" or "throttled"
var LoginAttemptsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectionsTotal counts requests turned away by the auth middleware or
// the role gate.
// Label:
//   - reason: "missing_token", "invalid_token", "inactive_user", "insufficient_role"
var AuthRejectionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// ── Content metrics ───────────────────────────────────────────────────────────

// ImageUploadsTotal counts uploads to the image host.
// Labels:
//   - provider: "cloudinary" or "s3"
//   - result: "ok" or "error"
var ImageUploadsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Total number of image uploads, by provider and result.",
	},
	[]string{"provider", "result"},
)

// ImageUploadDuration measures how long an upload to the image host takes.
var ImageUploadDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "image_upload_duration_seconds",
		Help:      "Duration of image uploads to the hosting provider.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"provider"},
)

// BlogViewsDroppedTotal counts view hits discarded because a worker queue was full.
var BlogViewsDroppedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blog_views_dropped_total",
		Help:      "Total number of blog view hits dropped on a full queue.",
	},
)

// ViewQueueDepth tracks pending view hits per worker.
// Label:
//   - worker_id: numeric worker index
var ViewQueueDepth = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "view_queue_depth",
		Help:      "Current number of view hits pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// Collectors returns every collector defined in this package.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		LoginAttemptsTotal,
		AuthRejectionsTotal,
		ImageUploadsTotal,
		ImageUploadDuration,
		BlogViewsDroppedTotal,
		ViewQueueDepth,
	}
}

// Register adds all collectors to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
