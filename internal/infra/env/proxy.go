// Where: cli/internal/infra/env/proxy.go
// What: Proxy environment normalization for package manager subprocesses.
// Why: npm honors HTTP(S)_PROXY, so a local registry must be listed in NO_PROXY.
package env

import (
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/poruru/npm-deploy/cli/internal/infra/envutil"
)

const hostSuffixNoProxyExtra = "NO_PROXY_EXTRA"

var proxyKeys = []string{"HTTP_PROXY", "http_proxy", "HTTPS_PROXY", "https_proxy"}

var defaultNoProxyTargets = []string{
	"localhost",
	"127.0.0.1",
	"::1",
	"host.docker.internal",
}

// IsLocalRegistryHost reports whether host is reached without a proxy:
// loopback, the docker host alias, or a compose service name.
func IsLocalRegistryHost(host string) bool {
	normalized := strings.ToLower(strings.TrimSpace(host))
	switch normalized {
	case "":
		return false
	case "localhost", "verdaccio", "host.docker.internal":
		return true
	}
	ip := net.ParseIP(normalized)
	return ip != nil && ip.IsLoopback()
}

// ApplyProxyDefaults extends NO_PROXY/no_proxy with loopback targets, the
// registry host when it is local, and NPM_DEPLOY_NO_PROXY_EXTRA. Nothing
// changes when no proxy and no NO_PROXY are configured. Upper and lower case
// proxy variables are synced for subprocesses.
func ApplyProxyDefaults(registry string) error {
	hasProxy := false
	for _, key := range proxyKeys {
		if strings.TrimSpace(os.Getenv(key)) != "" {
			hasProxy = true
			break
		}
	}
	existing := os.Getenv("NO_PROXY")
	if existing == "" {
		existing = os.Getenv("no_proxy")
	}
	extra := envutil.GetHostEnv(hostSuffixNoProxyExtra)
	if !hasProxy && existing == "" && extra == "" {
		return nil
	}

	targets := append([]string(nil), defaultNoProxyTargets...)
	if host := registryHost(registry); IsLocalRegistryHost(host) {
		targets = append(targets, host)
	}
	merged := mergeNoProxy(splitNoProxy(existing), targets, splitNoProxy(extra))
	value := strings.Join(merged, ",")
	for _, key := range []string{"NO_PROXY", "no_proxy"} {
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	if err := syncCase("HTTP_PROXY", "http_proxy"); err != nil {
		return err
	}
	return syncCase("HTTPS_PROXY", "https_proxy")
}

func registryHost(registry string) string {
	parsed, err := url.Parse(strings.TrimSpace(registry))
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

func splitNoProxy(value string) []string {
	value = strings.ReplaceAll(value, ";", ",")
	var cleaned []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

func mergeNoProxy(groups ...[]string) []string {
	var merged []string
	seen := map[string]bool{}
	for _, group := range groups {
		for _, item := range group {
			if !seen[item] {
				seen[item] = true
				merged = append(merged, item)
			}
		}
	}
	return merged
}

func syncCase(upper, lower string) error {
	u, l := os.Getenv(upper), os.Getenv(lower)
	switch {
	case u != "" && l == "":
		return os.Setenv(lower, u)
	case l != "" && u == "":
		return os.Setenv(upper, l)
	}
	return nil
}
