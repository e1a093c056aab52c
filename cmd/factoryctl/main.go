// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// factoryctl drives a factoryvm node over JSON-RPC.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "factoryctl",
		Usage: "provision sub-accounts through a generic factory",
		Flags: []cli.Flag{
			&uriFlag,
		},
		Commands: []*cli.Command{
			&SetCode,
			&Create,
			&CodeHash,
			&Account,
			&Outcome,
			&Receipts,
			&Step,
			&History,
			&Call,
			&View,
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
