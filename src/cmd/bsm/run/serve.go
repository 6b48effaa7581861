package run

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/jiaming2012/bsm-heatmap/src/eventconsumers"
	"github.com/jiaming2012/bsm-heatmap/src/eventmodels"
	"github.com/jiaming2012/bsm-heatmap/src/eventproducers/pricerapi"
	"github.com/jiaming2012/bsm-heatmap/src/heatmap"
	"github.com/jiaming2012/bsm-heatmap/src/telemetry"
)

const shutdownTimeout = 10 * time.Second

func NewServer(ctx context.Context, config *eventmodels.PricerConfigYAML) *http.Server {
	svc := pricerapi.NewService(config.Defaults, config.Resolution, heatmap.NewEChartsRenderer("Black-Scholes Heatmaps"))

	return &http.Server{
		Addr:         config.Server.Addr,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
		ReadTimeout:  time.Duration(config.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(config.Server.WriteTimeoutSec) * time.Second,
		Handler:      pricerapi.NewRouter(svc),
	}
}

// Serve runs the HTTP service until ctx is cancelled, then drains open requests.
func Serve(ctx context.Context, config *eventmodels.PricerConfigYAML) (err error) {
	otelShutdown, err := telemetry.SetupOTelSDK(ctx, config.Telemetry.ServiceName, config.Telemetry.Enabled)
	if err != nil {
		return fmt.Errorf("run.Serve: %w", err)
	}
	// Handle shutdown properly so nothing leaks.
	defer func() {
		err = errors.Join(err, otelShutdown(context.Background()))
	}()

	metrics, err := eventconsumers.NewPricingMetrics(otel.Meter("bsm-heatmap"))
	if err != nil {
		return fmt.Errorf("run.Serve: %w", err)
	}

	if err := metrics.Start(); err != nil {
		return fmt.Errorf("run.Serve: %w", err)
	}

	srv := NewServer(ctx, config)
	srvErr := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", srv.Addr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case err = <-srvErr:
		return fmt.Errorf("run.Serve: %w", err)
	case <-ctx.Done():
		log.Info("shutting down http server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// When Shutdown is called, ListenAndServe immediately returns ErrServerClosed.
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("run.Serve: shutdown: %w", err)
	}

	return nil
}
