// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/notesync/asset"
	"github.com/bitmark-inc/notesync/configuration"
	"github.com/bitmark-inc/notesync/manager"
	"github.com/bitmark-inc/notesync/metrics"
	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/publish"
	"github.com/bitmark-inc/notesync/rawnotes"
	"github.com/bitmark-inc/notesync/rpc/listeners"
	"github.com/bitmark-inc/notesync/session"
	"github.com/bitmark-inc/notesync/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultNetwork = "testing"

	defaultViewingPublicKeyFile  = "viewing.public"
	defaultViewingPrivateKeyFile = "viewing.private"
	defaultPublishPublicKeyFile  = "publish.public"
	defaultPublishPrivateKeyFile = "publish.private"
	defaultKeyFile               = "rpc.key"
	defaultCertificateFile       = "rpc.crt"

	defaultLevelDBDirectory = "data"
	defaultDatabaseSuffix   = ".leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "notesyncd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients = 10
	defaultRPCTimeout = 30 // seconds

	defaultMaximumNotes            = 100000
	defaultMaximumAssets           = 100
	defaultMaximumActiveAssets     = 2
	defaultMaximumProcesses        = 4
	defaultNotesPerBatch           = 500
	defaultNotesPerDecryptionBatch = 50
	defaultSyncInterval            = 10 // seconds
	defaultSaveDelay               = 2  // seconds
	defaultFetchRate               = 20 // store fetches per second
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		"main":            "info",
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the leveldb
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// ViewingKeyType - the owner's viewing key pair files
type ViewingKeyType struct {
	PublicKey  string `gluamapper:"public_key" json:"public_key"`
	PrivateKey string `gluamapper:"private_key" json:"private_key"`
}

// CacheType - limits of the decrypted note cache
type CacheType struct {
	MaximumNotes  int `gluamapper:"maximum_notes" json:"maximum_notes"`
	MaximumAssets int `gluamapper:"maximum_assets" json:"maximum_assets"`
}

// SyncType - scheduling and batching of the sync pipeline
//
// intervals are in seconds
type SyncType struct {
	MaximumActiveAssets     int     `gluamapper:"maximum_active_assets" json:"maximum_active_assets"`
	MaximumProcesses        int     `gluamapper:"maximum_processes" json:"maximum_processes"`
	NotesPerBatch           int     `gluamapper:"notes_per_batch" json:"notes_per_batch"`
	NotesPerDecryptionBatch int     `gluamapper:"notes_per_decryption_batch" json:"notes_per_decryption_batch"`
	SyncInterval            int     `gluamapper:"sync_interval" json:"sync_interval"`
	SaveDelay               int     `gluamapper:"save_delay" json:"save_delay"`
	FetchRate               float64 `gluamapper:"fetch_rate" json:"fetch_rate"`
}

// Configuration - everything read from the configuration file
type Configuration struct {
	DataDirectory string         `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string         `gluamapper:"pidfile" json:"pidfile"`
	Network       string         `gluamapper:"network" json:"network"`
	Owner         string         `gluamapper:"owner" json:"owner"`
	ViewingKey    ViewingKeyType `gluamapper:"viewing_key" json:"viewing_key"`
	Database      DatabaseType   `gluamapper:"database" json:"database"`
	Cache         CacheType      `gluamapper:"cache" json:"cache"`
	Sync          SyncType       `gluamapper:"sync" json:"sync"`
	RPCTimeout    int            `gluamapper:"rpc_timeout" json:"rpc_timeout"`
	Priority      []string       `gluamapper:"priority" json:"priority"`

	ClientRPC  listeners.RPCConfiguration `gluamapper:"client_rpc" json:"client_rpc"`
	Publishing publish.Configuration      `gluamapper:"publishing" json:"publishing"`
	Metrics    metrics.Configuration      `gluamapper:"metrics" json:"metrics"`
	Logging    logger.Configuration       `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Network:       defaultNetwork,
		RPCTimeout:    defaultRPCTimeout,

		ViewingKey: ViewingKeyType{
			PublicKey:  defaultViewingPublicKeyFile,
			PrivateKey: defaultViewingPrivateKeyFile,
		},

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      "", // network name by default
		},

		Cache: CacheType{
			MaximumNotes:  defaultMaximumNotes,
			MaximumAssets: defaultMaximumAssets,
		},

		Sync: SyncType{
			MaximumActiveAssets:     defaultMaximumActiveAssets,
			MaximumProcesses:        defaultMaximumProcesses,
			NotesPerBatch:           defaultNotesPerBatch,
			NotesPerDecryptionBatch: defaultNotesPerDecryptionBatch,
			SyncInterval:            defaultSyncInterval,
			SaveDelay:               defaultSaveDelay,
			FetchRate:               defaultFetchRate,
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultKeyFile,
		},

		Publishing: publish.Configuration{
			PublicKey:  defaultPublishPublicKeyFile,
			PrivateKey: defaultPublishPrivateKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	options.Network = strings.ToLower(strings.TrimSpace(options.Network))
	if "" == options.Network || strings.ContainsRune(options.Network, os.PathSeparator) {
		return nil, fmt.Errorf("Network: %q is not valid", options.Network)
	}

	if "" == options.Owner {
		return nil, fmt.Errorf("Owner: must be specified")
	}

	if "" == options.Database.Name {
		options.Database.Name = options.Network + defaultDatabaseSuffix
	}

	if options.Cache.MaximumNotes < 1 || options.Cache.MaximumAssets < 1 {
		return nil, fmt.Errorf("Cache: maximum_notes: %d and maximum_assets: %d must be positive", options.Cache.MaximumNotes, options.Cache.MaximumAssets)
	}

	if options.Sync.NotesPerBatch < 1 || options.Sync.NotesPerDecryptionBatch < 1 {
		return nil, fmt.Errorf("Sync: notes_per_batch: %d and notes_per_decryption_batch: %d must be positive", options.Sync.NotesPerBatch, options.Sync.NotesPerDecryptionBatch)
	}

	if "" != options.Metrics.Listen {
		listen, err := util.CanonicalIPandPort(options.Metrics.Listen)
		if nil != err {
			return nil, fmt.Errorf("Metrics: listen: %q error: %s", options.Metrics.Listen, err)
		}
		options.Metrics.Listen = listen
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.ViewingKey.PublicKey,
		&options.ViewingKey.PrivateKey,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
		&options.Publishing.PublicKey,
		&options.Publishing.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// session settings derived from the file
func (c *Configuration) sessionConfiguration() session.Configuration {
	return session.Configuration{
		Network:       c.Network,
		Owner:         note.Address(c.Owner),
		MaximumNotes:  c.Cache.MaximumNotes,
		MaximumAssets: c.Cache.MaximumAssets,
		RawNotes: rawnotes.Configuration{
			NotesPerBatch: c.Sync.NotesPerBatch,
			SyncInterval:  time.Duration(c.Sync.SyncInterval) * time.Second,
			FetchRate:     c.Sync.FetchRate,
		},
		Manager: manager.Configuration{
			MaxActiveAssets: c.Sync.MaximumActiveAssets,
			Asset: asset.Configuration{
				MaxProcesses:            c.Sync.MaximumProcesses,
				NotesPerBatch:           c.Sync.NotesPerBatch,
				NotesPerDecryptionBatch: c.Sync.NotesPerDecryptionBatch,
				SaveDelay:               time.Duration(c.Sync.SaveDelay) * time.Second,
			},
		},
	}
}

func (c *Configuration) rpcTimeout() time.Duration {
	return time.Duration(c.RPCTimeout) * time.Second
}
