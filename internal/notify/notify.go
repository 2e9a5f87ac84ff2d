// Package notify posts the end-of-run report to an optional webhook.
// A notification failure is logged by the caller and never fails the run.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"codecsweep/pkg/models"
)

// Reporter sends run reports over HTTP with retries.
type Reporter struct {
	url        string
	httpClient *http.Client
}

// NewReporter creates a robust HTTP client with retries. An empty URL
// yields a disabled reporter whose Send is a no-op.
func NewReporter(url string) *Reporter {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil // Silence default debug logger

	return &Reporter{
		url:        url,
		httpClient: retryClient.StandardClient(),
	}
}

// Enabled reports whether a webhook URL was configured.
func (r *Reporter) Enabled() bool {
	return r.url != ""
}

// Send POSTs the run report as JSON to the configured webhook.
func (r *Reporter) Send(ctx context.Context, report models.RunReport) error {
	if !r.Enabled() {
		return nil
	}

	jsonBytes, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewBuffer(jsonBytes))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Run-ID", report.RunID)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("report endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
