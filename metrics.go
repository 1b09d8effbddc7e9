package filesig

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/gobeaver/filesig/signature"
)

const meterName = "github.com/gobeaver/filesig"

// metrics holds the detector's instruments. Without a configured meter
// provider the otel global is a no-op, so recording is always safe.
type metrics struct {
	detections      metric.Int64Counter
	containerErrors metric.Int64Counter
	cacheHits       metric.Int64Counter
	reloads         metric.Int64Counter
	duration        metric.Float64Histogram
	catalogSize     metric.Int64Gauge
}

func newMetrics(mp metric.MeterProvider) *metrics {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	detections, _ := meter.Int64Counter("filesig_detections_total",
		metric.WithDescription("Lookups by outcome and extension"))
	containerErrors, _ := meter.Int64Counter("filesig_container_errors_total",
		metric.WithDescription("ZIP disambiguations that fell back to plain ZIP"))
	cacheHits, _ := meter.Int64Counter("filesig_cache_hits_total")
	reloads, _ := meter.Int64Counter("filesig_catalog_reloads_total")
	duration, _ := meter.Float64Histogram("filesig_detect_duration_seconds",
		metric.WithUnit("s"))
	catalogSize, _ := meter.Int64Gauge("filesig_catalog_records")

	return &metrics{
		detections:      detections,
		containerErrors: containerErrors,
		cacheHits:       cacheHits,
		reloads:         reloads,
		duration:        duration,
		catalogSize:     catalogSize,
	}
}

func (m *metrics) recordDetection(ctx context.Context, res signature.Result, containerErr error, start time.Time) {
	m.detections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", res.Kind.String()),
		attribute.String("extension", res.Extension()),
	))
	if containerErr != nil {
		m.containerErrors.Add(ctx, 1)
	}
	m.duration.Record(ctx, time.Since(start).Seconds())
}

func (m *metrics) recordCacheHit(ctx context.Context) {
	m.cacheHits.Add(ctx, 1)
}

func (m *metrics) recordReload(ctx context.Context, c *signature.Catalog, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.reloads.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	if c != nil {
		m.catalogSize.Record(ctx, int64(c.Len()))
	}
}
