// Package storage holds the image hosting adapters behind ports.ImageUploader.
package storage

import (
	"time"

	"github.com/cipco/cms-backend/internal/pkg/metrics"
)

const uploadTimeout = 30 * time.Second

func observe(provider string, start time.Time, err error) {
	metrics.ImageUploadDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.ImageUploadsTotal.WithLabelValues(provider, result).Inc()
}
