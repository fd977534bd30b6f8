// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/notesync/configuration"
	"github.com/bitmark-inc/notesync/fault"
)

type syncType struct {
	MaximumActiveAssets int `gluamapper:"maximum_active_assets"`
	NotesPerBatch       int `gluamapper:"notes_per_batch"`
}

type testConfiguration struct {
	Network string            `gluamapper:"network"`
	Owner   string            `gluamapper:"owner"`
	Sync    syncType          `gluamapper:"sync"`
	Listen  []string          `gluamapper:"listen"`
	Levels  map[string]string `gluamapper:"levels"`
}

const luaFile = `
local M = {}

M.network = "testing"
M.owner = os.getenv("NOTESYNC_TEST_OWNER") or "nobody"

M.sync = {
    maximum_active_assets = 3,
    notes_per_batch = 250,
}

M.listen = { "127.0.0.1:2150", "[::1]:2150" }

M.levels = {
    main = "info",
    DEFAULT = "critical",
}

return M
`

func writeFile(t *testing.T, content string) (string, func()) {
	dir, err := ioutil.TempDir("", "configuration")
	require.NoError(t, err, "temp dir")

	fileName := filepath.Join(dir, "notesyncd.conf")
	err = ioutil.WriteFile(fileName, []byte(content), 0600)
	require.NoError(t, err, "write configuration")

	return fileName, func() { _ = os.RemoveAll(dir) }
}

func TestParseConfigurationFile(t *testing.T) {
	fileName, cleanup := writeFile(t, luaFile)
	defer cleanup()

	_ = os.Setenv("NOTESYNC_TEST_OWNER", "owner-one")
	defer os.Unsetenv("NOTESYNC_TEST_OWNER")

	conf := testConfiguration{}
	err := configuration.ParseConfigurationFile(fileName, &conf)
	require.NoError(t, err, "parse")

	assert.Equal(t, "testing", conf.Network, "network")
	assert.Equal(t, "owner-one", conf.Owner, "owner from environment")
	assert.Equal(t, 3, conf.Sync.MaximumActiveAssets, "active assets")
	assert.Equal(t, 250, conf.Sync.NotesPerBatch, "notes per batch")
	assert.Equal(t, []string{"127.0.0.1:2150", "[::1]:2150"}, conf.Listen, "listen")
	assert.Equal(t, "info", conf.Levels["main"], "levels")
}

func TestParseConfigurationFileKeepsDefaults(t *testing.T) {
	fileName, cleanup := writeFile(t, `return { network = "local" }`)
	defer cleanup()

	conf := testConfiguration{
		Owner: "default-owner",
		Sync:  syncType{NotesPerBatch: 100},
	}
	err := configuration.ParseConfigurationFile(fileName, &conf)
	require.NoError(t, err, "parse")

	assert.Equal(t, "local", conf.Network, "network")
	assert.Equal(t, "default-owner", conf.Owner, "owner default")
	assert.Equal(t, 100, conf.Sync.NotesPerBatch, "batch default")
}

func TestParseConfigurationFileErrors(t *testing.T) {
	fileName, cleanup := writeFile(t, `return 42`)
	defer cleanup()

	conf := testConfiguration{}
	err := configuration.ParseConfigurationFile(fileName, &conf)
	assert.Error(t, err, "not a table")

	err = configuration.ParseConfigurationFile(fileName, conf)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "not a pointer")

	err = configuration.ParseConfigurationFile(filepath.Join(os.TempDir(), "does-not-exist.conf"), &conf)
	assert.Error(t, err, "missing file")

	broken, cleanupBroken := writeFile(t, `return {`)
	defer cleanupBroken()
	err = configuration.ParseConfigurationFile(broken, &conf)
	assert.Error(t, err, "syntax error")
}
