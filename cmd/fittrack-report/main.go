package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"fittrack-go/internal/report"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fittrack-report:", err)
		os.Exit(1)
	}
}

func run() error {
	baseURL := flag.String("url", envOr("FITTRACK_URL", "http://localhost:8080"), "API base URL")
	token := flag.String("token", os.Getenv("FITTRACK_TOKEN"), "bearer token")
	period := flag.String("period", "weekly", "weekly or monthly")
	days := flag.Int("days", 30, "days of history to chart")
	weightUnit := flag.String("weight-unit", "", "kg or lbs (default: profile preference)")
	heightUnit := flag.String("height-unit", "", "cm or ft (default: profile preference)")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := report.NewClient(*baseURL, *token, *timeout)

	summary, err := client.Summary(ctx, *period, *weightUnit, *heightUnit)
	if err != nil {
		return fmt.Errorf("fetching summary: %w", err)
	}
	history, err := client.History(ctx, *days)
	if err != nil {
		return fmt.Errorf("fetching history: %w", err)
	}

	fmt.Println(report.RenderSummary(summary))
	fmt.Println(report.RenderHistory(history, *days, time.Now().UTC()))
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
