// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"io/ioutil"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/cubenet/cubed/account"
	"github.com/cubenet/cubed/cube"
	"github.com/cubenet/cubed/field"
	"github.com/cubenet/cubed/muc"
	"github.com/cubenet/cubed/storage"
)

// read a private key file written by the gen-identity command
func loadPrivateKey(fileName string) (*account.PrivateKey, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	keyBytes, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if nil != err {
		return nil, err
	}
	return account.PrivateKeyFromBytes(keyBytes)
}

// build and sign one version of the daemon's own identity record
func identityBuilder(privateKey *account.PrivateKey, name string) muc.BuildFunc {
	return func(timestamp uint64) (*cube.Cube, error) {
		c, err := cube.NewMutable(privateKey.Account(), []field.Field{
			field.New(field.ContentType, []byte{contentIdentity}),
			field.New(field.Payload, []byte(name)),
		}, timestamp)
		if nil != err {
			return nil, err
		}
		err = muc.Sign(c, privateKey, timestamp)
		if nil != err {
			return nil, err
		}
		return c, nil
	}
}

// publisher - store each accepted identity version from the updater
type publisher struct {
	log     *logger.L
	updater *muc.Updater
}

func (p *publisher) Run(args interface{}, shutdown <-chan struct{}) {
	log := p.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case c, ok := <-p.updater.Updates():
			if !ok {
				break loop
			}
			err := storage.Add(c)
			if nil != err {
				log.Errorf("store identity error: %s", err)
				continue loop
			}
			key, err := c.Key()
			if nil != err {
				continue loop
			}
			log.Infof("published identity: %s  timestamp: %d", key, c.Timestamp())
		}
	}

	log.Info("stopped")
}
