package rpitop

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	logger "github.com/multiversx/mx-chain-logger-go"
)

var sourceLog = logger.GetOrCreate("rpitop/source")

// DetectBaseURL tries URL variants of base until one answers the snapshot
// endpoint with a parseable snapshot, and returns that variant
func DetectBaseURL(ctx context.Context, base *url.URL, snapshotEndpoint string, fetcher Fetcher) (*url.URL, error) {
	ref, err := url.Parse(snapshotEndpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot endpoint: %w", err)
	}

	for _, variant := range generateURLVariants(base) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		probe := variant.ResolveReference(ref).String()
		sourceLog.Debug("trying collaborator", "url", probe)
		body, err := fetcher.Fetch(ctx, probe)
		if err != nil {
			sourceLog.Debug("collaborator check failed", "url", probe, "error", err)
			continue
		}
		if _, err := ParseSnapshot(body); err != nil {
			sourceLog.Debug("collaborator answered with an unexpected body", "url", probe, "error", err)
			continue
		}

		sourceLog.Info("found collaborator", "url", variant.String())
		return variant, nil
	}

	return nil, errors.New("no reachable collaborator for " + base.Hostname())
}

// generateURLVariants creates different URL combinations to try
func generateURLVariants(base *url.URL) []*url.URL {
	var variants []*url.URL
	hostname := base.Hostname()
	port := base.Port()
	path := base.Path

	// Schemes to try: prefer the given one
	schemes := []string{"http", "https"}
	if base.Scheme == "https" {
		schemes = []string{"https", "http"}
	}

	// Ports to try: 5000 is the Flask default
	ports := []string{"5000", "80", "443", "8080"}
	if port != "" {
		ports = append([]string{port}, ports...)
	}

	seen := make(map[string]bool)
	uniquePorts := []string{}
	for _, p := range ports {
		if !seen[p] {
			seen[p] = true
			uniquePorts = append(uniquePorts, p)
		}
	}

	for _, scheme := range schemes {
		for _, p := range uniquePorts {
			variants = append(variants, &url.URL{
				Scheme: scheme,
				Host:   hostname + ":" + p,
				Path:   path,
			})
		}
	}

	return variants
}

// ParseBaseURL accepts a bare host ("raspberrypi.lan") as well as a full URL
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" && u.Host != "" {
		return u, nil
	}

	u, err = url.Parse("http://" + raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: no host", raw)
	}
	return u, nil
}
