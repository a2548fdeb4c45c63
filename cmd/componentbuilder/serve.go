package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/foomo/componentbuilder"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type serveFlags struct {
	addr        string
	metricsPath string
}

type server struct {
	metricsPath    string
	metricsHandler http.Handler
	service        http.Handler
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.metricsPath != "" && strings.HasPrefix(r.URL.Path, s.metricsPath) {
		s.metricsHandler.ServeHTTP(w, r)
		return
	}
	s.service.ServeHTTP(w, r)
}

func newServeCmd(gf *globalFlags) *cobra.Command {
	sf := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve conversions over http, POST markup to " + componentbuilder.PathConvert,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, errLogger := gf.logger()
			if errLogger != nil {
				return errLogger
			}
			defer func() {
				_ = l.Sync()
			}()
			handler, errHandler := newServer(gf, sf, l, prometheus.DefaultRegisterer, promhttp.Handler())
			if errHandler != nil {
				return errHandler
			}
			l.Info("starting server", zap.String("addr", sf.addr), zap.String("metrics", sf.metricsPath))
			srv := &http.Server{
				Addr:              sf.addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().StringVar(&sf.addr, "addr", ":8080", "address to listen on")
	cmd.Flags().StringVar(&sf.metricsPath, "metrics", "/metrics", "path of the prometheus metrics, empty to disable")
	return cmd
}

func newServer(gf *globalFlags, sf *serveFlags, l *zap.Logger, reg prometheus.Registerer, metricsHandler http.Handler) (http.Handler, error) {
	opts := []componentbuilder.Option{}
	if sf.metricsPath != "" {
		m, errMetrics := componentbuilder.NewMetrics(reg)
		if errMetrics != nil {
			return nil, errMetrics
		}
		opts = append(opts, componentbuilder.WithMetrics(m))
	}
	b, errBuilder := gf.builder(l, opts...)
	if errBuilder != nil {
		return nil, errBuilder
	}
	return &server{
		metricsPath:    sf.metricsPath,
		metricsHandler: metricsHandler,
		service:        componentbuilder.NewService(b, l),
	}, nil
}
