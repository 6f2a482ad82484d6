package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMetrics initializes an OpenTelemetry meter provider backed by the
// Prometheus exporter. It returns a Meter scoped to the service and the
// HTTP handler to mount at /metrics.
func InitMetrics(service string) (metric.Meter, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return provider.Meter(service), promhttp.Handler(), nil
}
