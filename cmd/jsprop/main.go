// Package main provides the jsprop CLI, a small inspection tool for the
// property descriptor engine in pkg/vm.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
