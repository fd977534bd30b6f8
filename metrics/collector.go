// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metrics - Prometheus exposition of the note pipeline counters
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/notesync/session"
)

const namespace = "notesync"

// StatusSource - anything that can report pipeline counters
type StatusSource interface {
	Status() session.Status
}

type gauge struct {
	desc  *prometheus.Desc
	kind  prometheus.ValueType
	value func(s *session.Status) float64
}

// Collector - reads the counters on every scrape
type Collector struct {
	source StatusSource
	gauges []gauge
}

// NewCollector - collector for one session
func NewCollector(source StatusSource) *Collector {
	owner := []string{"owner"}
	desc := func(subsystem string, name string, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystem, name), help, owner, nil)
	}

	return &Collector{
		source: source,
		gauges: []gauge{
			{
				desc:  desc("cache", "notes", "Note values resident in the cache."),
				kind:  prometheus.GaugeValue,
				value: func(s *session.Status) float64 { return float64(s.CachedNotes) },
			},
			{
				desc:  desc("cache", "assets", "Assets resident in the cache."),
				kind:  prometheus.GaugeValue,
				value: func(s *session.Status) float64 { return float64(s.CachedAssets) },
			},
			{
				desc:  desc("assets", "known", "Assets known to the manager."),
				kind:  prometheus.GaugeValue,
				value: func(s *session.Status) float64 { return float64(s.Assets) },
			},
			{
				desc:  desc("assets", "active", "Assets currently syncing."),
				kind:  prometheus.GaugeValue,
				value: func(s *session.Status) float64 { return float64(s.Active) },
			},
			{
				desc:  desc("assets", "pending", "Assets waiting to sync."),
				kind:  prometheus.GaugeValue,
				value: func(s *session.Status) float64 { return float64(s.Pending) },
			},
			{
				desc:  desc("rawnotes", "head", "Raw notes buffered in the head window."),
				kind:  prometheus.GaugeValue,
				value: func(s *session.Status) float64 { return float64(s.HeadNotes) },
			},
			{
				desc:  desc("rawnotes", "tail", "Raw notes buffered in the tail window."),
				kind:  prometheus.GaugeValue,
				value: func(s *session.Status) float64 { return float64(s.TailNotes) },
			},
			{
				desc:  desc("rawnotes", "head_block", "First block of the head window."),
				kind:  prometheus.GaugeValue,
				value: func(s *session.Status) float64 { return float64(s.HeadBlock) },
			},
			{
				desc:  desc("notes", "decrypted_total", "Notes decrypted since start."),
				kind:  prometheus.CounterValue,
				value: func(s *session.Status) float64 { return float64(s.Decrypted) },
			},
			{
				desc:  desc("notes", "failed_total", "Notes that could not be decrypted since start."),
				kind:  prometheus.CounterValue,
				value: func(s *session.Status) float64 { return float64(s.Failed) },
			},
		},
	}
}

// Describe - implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, g := range c.gauges {
		ch <- g.desc
	}
}

// Collect - implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	status := c.source.Status()
	for _, g := range c.gauges {
		ch <- prometheus.MustNewConstMetric(g.desc, g.kind, g.value(&status), string(status.Owner))
	}
}
