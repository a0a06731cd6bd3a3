// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/cubenet/cubed/account"
)

const defaultPrivateKeyFilename = "cubed.private"

// setup command handler
//
// commands that run before the configuration file is read; these
// cannot access the database or any initialised subsystem
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-identity", "id":
		fileName := defaultPrivateKeyFilename
		if len(arguments) >= 1 && "" != arguments[0] {
			fileName = arguments[0]
		}

		if _, err := os.Stat(fileName); nil == err {
			fmt.Printf("generate private key: %q error: file already exists\n", fileName)
			exitwithstatus.Exit(1)
		}

		privateKey, owner, err := account.NewKeypair()
		if nil != err {
			fmt.Printf("generate private key error: %s\n", err)
			exitwithstatus.Exit(1)
		}

		data := hex.EncodeToString(privateKey.Bytes()) + "\n"
		if err := ioutil.WriteFile(fileName, []byte(data), 0600); nil != err {
			os.Remove(fileName)
			fmt.Printf("generate private key: %q error: %s\n", fileName, err)
			exitwithstatus.Exit(1)
		}

		fmt.Printf("generated private key: %q\n", fileName)
		fmt.Printf("account: %s\n", owner)

	case "version", "v":
		fmt.Printf("%s\n", version)

	case "help", "h", "?":
		printUsage(program)

	default:
		fmt.Printf("error: no such command: %s\n", command)
		printUsage(program)
		exitwithstatus.Exit(1)
	}

	return true
}

func printUsage(program string) {
	fmt.Printf("usage: %s [--help] [--quiet] [--version] --config-file=FILE [command]\n", program)
	fmt.Printf("supported commands:\n\n")
	fmt.Printf("  help               (h)  - display this message\n\n")
	fmt.Printf("  version            (v)  - display version\n\n")
	fmt.Printf("  gen-identity FILE  (id) - generate a private key file and print the account\n\n")
}
