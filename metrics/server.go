// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Configuration - a block of configuration data
// this is read from the Lua configuration file
type Configuration struct {
	Listen string `gluamapper:"listen" json:"listen"`
}

// Server - HTTP listener for scrapes
type Server struct {
	log    *logger.L
	server *http.Server
}

// NewServer - register the collector and prepare the listener
func NewServer(configuration *Configuration, collector prometheus.Collector) (*Server, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(collector); nil != err {
		return nil, err
	}

	return &Server{
		log: logger.New("metrics"),
		server: &http.Server{
			Addr:    configuration.Listen,
			Handler: Handler(registry),
		},
	}, nil
}

// Handler - the scrape endpoint for a registry
func Handler(registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return mux
}

// Run - serve until shutdown
func (s *Server) Run(args interface{}, shutdown <-chan struct{}) {
	s.log.Infof("listen: %s", s.server.Addr)

	done := make(chan struct{})
	go func() {
		err := s.server.ListenAndServe()
		if nil != err && http.ErrServerClosed != err {
			s.log.Errorf("listen error: %s", err)
		}
		close(done)
	}()

	select {
	case <-shutdown:
	case <-done:
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); nil != err {
		s.log.Errorf("shutdown error: %s", err)
	}
	<-done
	s.log.Info("stopped")
}
