// ABOUTME: Main entry point for the syndicate command line tool
// ABOUTME: Inspects, rewrites, archives and discovers syndication documents

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
