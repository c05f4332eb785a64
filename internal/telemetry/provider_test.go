package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/fyrsmithlabs/luna/internal/config"
)

func TestNewResource(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.ServiceVersion = "1.2.3"

	res := newResource(cfg)
	require.NotNil(t, res)

	attrs := map[string]string{}
	for _, attr := range res.Attributes() {
		attrs[string(attr.Key)] = attr.Value.AsString()
	}
	assert.Equal(t, "luna", attrs["service.name"])
	assert.Equal(t, "1.2.3", attrs["service.version"])
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Metrics.Enabled = false

	mp, err := newMeterProvider(context.Background(), cfg, newResource(cfg))
	require.NoError(t, err)
	assert.Nil(t, mp)
}

func TestNewExporters(t *testing.T) {
	ctx := context.Background()

	for _, protocol := range []string{config.ProtocolGRPC, config.ProtocolHTTP} {
		t.Run(protocol, func(t *testing.T) {
			cfg := NewDefaultConfig()
			cfg.Protocol = protocol
			cfg.Insecure = false
			cfg.TLSSkipVerify = true

			spans, err := newSpanExporter(ctx, cfg)
			require.NoError(t, err)
			require.NotNil(t, spans)
			assert.NoError(t, spans.Shutdown(ctx))

			metrics, err := newMetricExporter(ctx, cfg)
			require.NoError(t, err)
			require.NotNil(t, metrics)
			assert.NoError(t, metrics.Shutdown(ctx))
		})
	}
}

func TestCumulativeTemporality(t *testing.T) {
	for _, kind := range []sdkmetric.InstrumentKind{
		sdkmetric.InstrumentKindCounter,
		sdkmetric.InstrumentKindHistogram,
		sdkmetric.InstrumentKindUpDownCounter,
	} {
		assert.Equal(t, metricdata.CumulativeTemporality, cumulative(kind))
	}
}
