// Command shopctl runs maintenance tasks against the shop database.
package main

import (
	"fmt"
	"os"
)

func main() {
	s := newSession(openFromConfig)
	err := newRootCmd(s).Execute()
	s.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
