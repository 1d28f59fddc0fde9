//go:build !linux

package main

import (
	"fmt"
	"os"
)

func runPresent(args []string) int {
	fmt.Fprintln(os.Stderr, "present requires X11 and is only built on linux")
	return 1
}
