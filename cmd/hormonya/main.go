// Command hormonya is the terminal client for the Hormonya API.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(defaultOptions()).Execute(); err != nil {
		os.Exit(1)
	}
}
