// Command modelcatalog browses the model marketplace catalog and computes
// prices from the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
