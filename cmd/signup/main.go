// Command signup serves the signup form over HTTP or runs it in the terminal.
//
//	signup serve --addr :8080 --api-base-url https://api.example.com
//	signup tui --api-base-url https://api.example.com
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
