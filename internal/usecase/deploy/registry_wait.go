// Where: cli/internal/usecase/deploy/registry_wait.go
// What: npm registry readiness probe.
// Why: Local registries (e.g. verdaccio in CI) may still be booting when publish starts.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/poruru/npm-deploy/cli/internal/infra/env"
)

var errRegistryNotResponding = errors.New("registry not responding")

const registryPollInterval = time.Second

// RegistryWaiter blocks until the registry answers or the timeout elapses.
type RegistryWaiter func(ctx context.Context, registry string, timeout time.Duration) error

func defaultRegistryWaiter(ctx context.Context, registry string, timeout time.Duration) error {
	probeURL, err := resolveRegistryPingURL(registry)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := registryWaitHTTPClient(probeURL)
	ticker := time.NewTicker(registryPollInterval)
	defer ticker.Stop()
	for {
		if registryAnswers(ctx, client, probeURL) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w at %s", errRegistryNotResponding, probeURL)
		case <-ticker.C:
		}
	}
}

func registryAnswers(ctx context.Context, client *http.Client, probeURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	// 2xx-4xx means the endpoint is reachable; auth may still be required.
	return resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusInternalServerError
}

// resolveRegistryPingURL maps a registry URL to its "/-/ping" endpoint,
// keeping any path prefix (scoped registries are often mounted under one).
func resolveRegistryPingURL(registry string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(registry))
	if err != nil || parsed.Host == "" {
		return "", fmt.Errorf("invalid registry address: %s", registry)
	}
	parsed.Path = strings.TrimSuffix(parsed.Path, "/") + "/-/ping"
	parsed.RawPath = ""
	parsed.RawQuery = ""
	parsed.Fragment = ""
	return parsed.String(), nil
}

func registryWaitHTTPClient(probeURL string) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	parsed, err := url.Parse(probeURL)
	if err == nil && env.IsLocalRegistryHost(parsed.Hostname()) {
		transport.Proxy = nil
	} else {
		transport.Proxy = http.ProxyFromEnvironment
	}
	return &http.Client{
		Timeout:   2 * time.Second,
		Transport: transport,
	}
}
