// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/cubenet/cubed/account"
	"github.com/cubenet/cubed/annotate"
	"github.com/cubenet/cubed/background"
	"github.com/cubenet/cubed/configuration"
	"github.com/cubenet/cubed/difficulty"
	"github.com/cubenet/cubed/mode"
	"github.com/cubenet/cubed/muc"
	"github.com/cubenet/cubed/relation"
	"github.com/cubenet/cubed/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
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

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
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

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise()
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// required proof of work for frozen records
	difficulty.Current.SetBits(theConfiguration.DifficultyBits)
	log.Infof("difficulty: %s", difficulty.Current)

	// general info
	log.Infof("database: %q", theConfiguration.Database)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name, uint64(theConfiguration.UpdateDelay))
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// annotation engine over a fresh reverse relationship index
	engine := annotate.New(
		relation.NewIndex(),
		storage.Get,
		postRules{},
		annotate.Options{
			AllowAnonymous: theConfiguration.AllowAnonymous,
		},
		logger.New("annotate"),
	)

	// rebuild derived state from the stored records
	log.Info("replaying stored records")
	infos, err := storage.GetAll()
	if nil != err {
		log.Criticalf("storage replay error: %s", err)
		exitwithstatus.Message("storage replay error: %s", err)
	}
	for _, info := range infos {
		engine.Ingest(info)
	drain:
		for {
			select {
			case key := <-engine.Events():
				log.Debugf("displayable: %s", key)
			default:
				break drain
			}
		}
	}
	log.Infof("replayed: %d records", len(infos))

	mode.Set(mode.Normal)

	// start the ingest background process
	processes := background.Processes{
		&ingester{
			log:    logger.New("ingest"),
			engine: engine,
		},
	}

	// identity publishing: needs the generated key file and a name
	var identityUpdater *muc.Updater
	var identityPrivateKey *account.PrivateKey
	if "" != theConfiguration.IdentityName {
		identityPrivateKey, err = loadPrivateKey(theConfiguration.PrivateKeyFile)
		if nil != err {
			log.Criticalf("private key: %q error: %s", theConfiguration.PrivateKeyFile, err)
			exitwithstatus.Message("%s: private key: %q error: %s", program, theConfiguration.PrivateKeyFile, err)
		}
		identityUpdater = muc.NewUpdater(uint64(theConfiguration.UpdateDelay), logger.New("identity"))
		processes = append(processes,
			identityUpdater,
			&publisher{
				log:     logger.New("publish"),
				updater: identityUpdater,
			},
		)
	}

	bg := background.Start(processes, nil)
	defer bg.Stop()

	// publish the identity as configured right now
	if nil != identityUpdater {
		identityUpdater.Request(identityBuilder(identityPrivateKey, theConfiguration.IdentityName))
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
	mode.Set(mode.Stopped)
}
