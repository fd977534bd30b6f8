// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/notesync/asset"
	"github.com/bitmark-inc/notesync/background"
	"github.com/bitmark-inc/notesync/messagebus"
	"github.com/bitmark-inc/notesync/metrics"
	"github.com/bitmark-inc/notesync/notify"
	"github.com/bitmark-inc/notesync/publish"
	"github.com/bitmark-inc/notesync/rpc"
	"github.com/bitmark-inc/notesync/rpc/listeners"
	"github.com/bitmark-inc/notesync/session"
	"github.com/bitmark-inc/notesync/storage"
	"github.com/bitmark-inc/notesync/viewingkey"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	log.Infof("network: %s", theConfiguration.Network)
	log.Infof("owner: %s", theConfiguration.Owner)
	log.Infof("database: %q", theConfiguration.Database.Name)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)
	log.Debugf("%s = %#v", "Metrics", theConfiguration.Metrics)

	// start the data storage
	log.Info("initialise storage")
	database, err := storage.Open(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer database.Close()

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(log, arguments, theConfiguration, database) {
		return
	}

	keyPair, err := viewingkey.ReadKeyPair(theConfiguration.ViewingKey.PublicKey, theConfiguration.ViewingKey.PrivateKey)
	if nil != err {
		log.Criticalf("viewing key read error: %s", err)
		exitwithstatus.Message("viewing key read error: %s", err)
	}

	// events from every asset go to the bus, the broadcast queue
	// keeps the latest balance per asset for new listeners
	bus := notify.New()
	queue := messagebus.NewBroadcast(asset.EventBalance)
	defer bus.Wait()

	log.Info("initialise session")
	s, err := session.New(database, viewingkey.NewDecrypter(keyPair), bus, theConfiguration.sessionConfiguration())
	if nil != err {
		log.Criticalf("session create error: %s", err)
		exitwithstatus.Message("session create error: %s", err)
	}
	if err := s.Start(context.Background()); nil != err {
		log.Criticalf("session start error: %s", err)
		exitwithstatus.Message("session start error: %s", err)
	}
	defer s.Stop()

	if 0 != len(theConfiguration.Priority) {
		s.SetPriority(toAssetIds(theConfiguration.Priority))
	}

	// saving the configuration file re-applies its priority list
	watcher, err := newConfigWatcher(configurationFile, s, theConfiguration.Priority)
	if nil != err {
		log.Criticalf("configuration watcher error: %s", err)
		exitwithstatus.Message("configuration watcher error: %s", err)
	}
	processes := background.Processes{watcher}

	// start up the publishing background processes
	if 0 != len(theConfiguration.Publishing.Broadcast) {
		broadcaster, err := publish.New(&theConfiguration.Publishing, queue)
		if nil != err {
			log.Criticalf("publish initialise error: %s", err)
			exitwithstatus.Message("publish initialise error: %s", err)
		}
		if err := bus.Forward(queue, asset.EventBalance, asset.EventSynced); nil != err {
			log.Criticalf("publish forward error: %s", err)
			exitwithstatus.Message("publish forward error: %s", err)
		}
		processes = append(processes, broadcaster)
	} else {
		log.Info("publishing disabled")
	}

	// metrics scrape endpoint
	if "" != theConfiguration.Metrics.Listen {
		server, err := metrics.NewServer(&theConfiguration.Metrics, metrics.NewCollector(s))
		if nil != err {
			log.Criticalf("metrics initialise error: %s", err)
			exitwithstatus.Message("metrics initialise error: %s", err)
		}
		processes = append(processes, server)
	} else {
		log.Info("metrics disabled")
	}

	running := background.Start(processes, nil)
	defer running.Stop()

	// start up the rpc background processes
	rpcConfiguration, err := loadCertificate(theConfiguration)
	if nil != err {
		log.Criticalf("rpc certificate error: %s", err)
		exitwithstatus.Message("rpc certificate error: %s", err)
	}
	err = rpc.Initialise(rpcConfiguration, s, version, theConfiguration.Network, theConfiguration.rpcTimeout())
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		go memstats()
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}

// the listener takes PEM text, the configuration holds file names
func loadCertificate(c *Configuration) (*listeners.RPCConfiguration, error) {
	r := c.ClientRPC
	if 0 == len(r.Listen) {
		return &r, nil
	}

	certificate, err := ioutil.ReadFile(r.Certificate)
	if nil != err {
		return nil, err
	}
	key, err := ioutil.ReadFile(r.PrivateKey)
	if nil != err {
		return nil, err
	}
	r.Certificate = string(certificate)
	r.PrivateKey = string(key)
	return &r, nil
}
