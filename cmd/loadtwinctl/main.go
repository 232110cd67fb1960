// loadtwinctl - headless LoadTwin placement, verification and exports.
//
// Build:
//   go build -o loadtwinctl ./cmd/loadtwinctl
package main

import (
	"os"

	"github.com/piwi3910/LoadTwin/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
