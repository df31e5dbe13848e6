package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
	"travel/cfg"
	"travel/internal/flight"
	"travel/pkg/flightclient"
	"travel/pkg/idgen"
	"travel/pkg/logger"
	"travel/pkg/telemetry"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	q, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		fmt.Fprintln(stderr, errCfg)
		return exitUsage
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewWithWriter(config.AppEnv, stderr)

	// ============
	// Otel
	// ============
	shutdownOtel, err := telemetry.Init(context.Background(), &config.Observability, zlogger)
	if err != nil {
		zlogger.Warn("continuing without tracing/metrics", logger.Field{Key: "err", Value: err})
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOtel(ctx); err != nil {
				zlogger.Error("failed to shutdown otel", logger.Field{Key: "err", Value: err})
			}
		}()
	}

	// ============
	// External Service
	// ============
	httpClient := &http.Client{
		Timeout: config.SerpApiConfig.Timeout,
	}
	serpApiClient := flightclient.NewSerpApiClient(httpClient, config.SerpApiConfig.BaseURL,
		config.SerpApiConfig.APIKey, config.SerpApiConfig.Engine, zlogger)

	// ============
	// Internal Service
	// ============
	gen, err := idgen.NewSnowflakeGenerator(config.SnowflakeNodeID)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	flightSvc := flight.NewService(serpApiClient, gen, zlogger)

	result := flightSvc.Search(context.Background(), q)
	if err := printResult(stdout, result); err != nil {
		zlogger.Error("failed to write result", logger.Field{Key: "err", Value: err})
		return exitFailed
	}

	if !result.OK() {
		return exitFailed
	}
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (flight.FlightQuery, error) {
	fs := flag.NewFlagSet("flightsearch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	departureID := fs.String("departure_id", "", "departure airport code, e.g. FRA (required)")
	arrivalID := fs.String("arrival_id", "", "arrival airport code, e.g. AUS (required)")
	outboundDate := fs.String("outbound_date", "", "outbound date, YYYY-MM-DD (required)")
	returnDate := fs.String("return_date", "", "return date, YYYY-MM-DD (required)")

	if err := fs.Parse(args); err != nil {
		return flight.FlightQuery{}, err
	}
	if fs.NArg() > 0 {
		return flight.FlightQuery{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return flight.NewFlightQuery(*departureID, *arrivalID, *outboundDate, *returnDate)
}

func printResult(w io.Writer, result flight.SearchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}
