// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Command strfsim runs shortest-remaining-time-first scheduling simulations.
package main

import (
	"fmt"
	"os"

	"github.com/petenewcomb/strf-go/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
