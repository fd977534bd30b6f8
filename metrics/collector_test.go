// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/notesync/metrics"
	"github.com/bitmark-inc/notesync/session"
)

type fixedStatus session.Status

func (f fixedStatus) Status() session.Status {
	return session.Status(f)
}

var status = fixedStatus{
	Owner:        "owner-one",
	Assets:       3,
	Active:       1,
	Pending:      2,
	CachedAssets: 2,
	CachedNotes:  40,
	HeadBlock:    17,
	Decrypted:    55,
	Failed:       1,
}

func TestCollect(t *testing.T) {
	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(metrics.NewCollector(status)), "register")

	families, err := registry.Gather()
	require.NoError(t, err, "gather")

	values := make(map[string]float64)
	for _, f := range families {
		m := f.GetMetric()[0]
		assert.Equal(t, "owner", m.GetLabel()[0].GetName(), "label")
		assert.Equal(t, "owner-one", m.GetLabel()[0].GetValue(), "owner")
		if nil != m.GetCounter() {
			values[f.GetName()] = m.GetCounter().GetValue()
		} else {
			values[f.GetName()] = m.GetGauge().GetValue()
		}
	}

	assert.Equal(t, 10, len(values), "metric count")
	assert.Equal(t, float64(40), values["notesync_cache_notes"], "cached notes")
	assert.Equal(t, float64(2), values["notesync_assets_pending"], "pending")
	assert.Equal(t, float64(17), values["notesync_rawnotes_head_block"], "head block")
	assert.Equal(t, float64(55), values["notesync_notes_decrypted_total"], "decrypted")
}

func TestHandler(t *testing.T) {
	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(metrics.NewCollector(status)), "register")

	server := httptest.NewServer(metrics.Handler(registry))
	defer server.Close()

	response, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err, "get")
	defer response.Body.Close()

	assert.Equal(t, http.StatusOK, response.StatusCode, "status")

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(response.Body)
	require.NoError(t, err, "parse exposition")

	failed, ok := families["notesync_notes_failed_total"]
	require.True(t, ok, "failed counter exposed")
	assert.Equal(t, float64(1), failed.GetMetric()[0].GetCounter().GetValue(), "failed value")
	assert.Equal(t, "owner-one", failed.GetMetric()[0].GetLabel()[0].GetValue(), "owner label")
	assert.Contains(t, families, "notesync_cache_assets", "cache gauge exposed")
}
