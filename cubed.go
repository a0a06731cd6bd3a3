// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/cubenet/cubed/annotate"
	"github.com/cubenet/cubed/storage"
)

// ingester - feed newly stored records into the annotation engine
type ingester struct {
	log    *logger.L
	engine *annotate.Engine
}

func (i *ingester) Run(args interface{}, shutdown <-chan struct{}) {
	log := i.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case info := <-storage.Added():
			log.Debugf("stored: %s", info.Key)
			i.engine.Ingest(info)

		case key := <-i.engine.Events():
			log.Infof("displayable: %s", key)
		}
	}

	log.Info("stopped")
}
