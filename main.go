// Command varwidth encodes, inspects and benchmarks variable-width integer columns.
package main

import (
	"os"

	"github.com/xmh1011/go-varwidth/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
