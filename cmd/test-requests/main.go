package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/lurespread/internal/loadtest"
	"github.com/okian/lurespread/pkg/logger"
)

const (
	defaultNumRequests = 2000
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numRequests = flag.Int("requests", defaultNumRequests, "Number of condition sets to generate")
		workers     = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile  = flag.String("output", "", "Write the generated requests to this JSON file")
		verbose     = flag.Bool("verbose", false, "Log every failed request")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadtest.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	cfg := &loadtest.Config{
		BaseURL:     *baseURL,
		NumRequests: *numRequests,
		Workers:     max(*workers, 1),
		Timeout:     *timeout,
		OutputFile:  *outputFile,
		Verbose:     *verbose,
	}
	if _, err := loadtest.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
