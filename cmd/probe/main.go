package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rkuiper/encore/internal/probe"
)

// Default configuration constants.
const (
	defaultMaxCount  = 5
	defaultTimeout   = 10 * time.Second
	defaultRunBudget = 2 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:3000", "Base URL of the service")
		maxCount = flag.Int("max-count", defaultMaxCount, "Largest sample size the service allows")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose  = flag.Bool("verbose", false, "Print passing checks as well as failures")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunBudget)
	defer cancel()

	cfg := &probe.Config{
		BaseURL:  *baseURL,
		MaxCount: *maxCount,
		Timeout:  *timeout,
		Verbose:  *verbose,
	}

	res, err := probe.Run(ctx, cfg)
	if err != nil {
		os.Stderr.WriteString("probe failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	for _, report := range res.Reports {
		if *verbose || strings.HasPrefix(report, "FAIL") {
			os.Stdout.WriteString(report + "\n")
		}
	}
	os.Stdout.WriteString(
		"checks: " + strconv.Itoa(res.Checks) + ", failed: " + strconv.Itoa(res.Failed) + "\n")

	if res.Failed > 0 {
		os.Exit(1)
	}
}
