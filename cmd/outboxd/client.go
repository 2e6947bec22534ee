package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"outbox/internal/config"
	"outbox/internal/delivery"
)

// buildClient constructs the HTTP delivery client, or nil when no endpoint
// is configured (the daemon then runs spool-only).
func buildClient(cfg *config.Config) delivery.Client {
	if cfg.Delivery.Endpoint == "" {
		return nil
	}
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Delivery.RequestTimeout) * time.Second,
	}
	endpoint := cfg.Delivery.Endpoint
	apiKey := cfg.Delivery.APIKey

	return delivery.ClientFunc(func(ctx context.Context, name string, body io.Reader) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
		if err != nil {
			return fmt.Errorf("build request for %s: %w", name, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if apiKey != "" {
			req.Header.Set("Outbox-Api-Key", apiKey)
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("deliver %s: %w", name, err)
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		return fmt.Errorf("deliver %s: unexpected status %s", name, resp.Status)
	})
}
