package loadtest

import "os"

// ShowHelp prints usage information for the load test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Lure Spread Request Test Tool
=============================

Fires generated fishing conditions at a running service and replays each
request to check that the recommended spread does not change.

Usage:
  go run ./cmd/test-requests [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -requests int
        Number of condition sets to generate (default 2000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Write the generated requests to this JSON file
  -verbose
        Log every failed request
  -help
        Show this help message
`)
}
