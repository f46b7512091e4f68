// CargoLoad — Container Load Planner
//
// A command line tool and HTTP API that plans how a cargo list is loaded
// into a fleet of shipping containers and exports loading plans, unit
// labels and manifests.
//
// Build:
//   go build -o cargoload ./cmd/cargoload
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o cargoload.exe ./cmd/cargoload
//   GOOS=darwin  GOARCH=arm64 go build -o cargoload-darwin ./cmd/cargoload

package main

import "github.com/piwi3910/CargoLoad/internal/cli"

func main() {
	cli.Execute()
}
