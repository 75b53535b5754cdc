package menu

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mchmarny/navd/pkg/metric"
	"github.com/mchmarny/navd/pkg/nav"
	"github.com/mchmarny/navd/pkg/server"
)

// Run serves the menu and blocks until the context is canceled or an error occurs.
// It registers the menu routes, /healthz and /metrics ahead of any caller options.
func (m *Menu) Run(ctx context.Context, unmatched nav.Unmatched, opt ...server.Option) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := NewHandlers(m, unmatched, metric.NewResolutionCounter(reg))

	opts := []server.Option{
		server.WithSimpleHealth(),
		server.WithMetrics(reg),
	}
	h.Register(func(pattern string, handler http.Handler) {
		opts = append(opts, server.WithHandler(pattern, handler))
	})

	return server.New(append(opts, opt...)...).Serve(ctx)
}
