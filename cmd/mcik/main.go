// SPDX-License-Identifier: MIT

// Command mcik derives and propagates micro-cause influence kernels.
package main

import (
	"os"

	"github.com/katalvlaran/mcik/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
