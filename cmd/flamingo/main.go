// Command flamingo exposes the audio-understanding model as a CLI: single
// and batch description, corpus evaluation, and an HTTP server.
package main

import "os"

// Injected at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
