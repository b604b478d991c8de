// Command ls-rigel is a terminal planetarium: the Sun, the Moon, the planets
// and the brighter stars as seen from a place on Earth.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
