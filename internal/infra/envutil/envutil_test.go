package envutil

import "testing"

func TestGetHostEnv(t *testing.T) {
	t.Setenv("NPM_DEPLOY_WORKSPACE_ROOT", "  /repo ")
	if got := HostEnvKey("WORKSPACE_ROOT"); got != "NPM_DEPLOY_WORKSPACE_ROOT" {
		t.Fatalf("HostEnvKey() = %q", got)
	}
	if got := GetHostEnv("WORKSPACE_ROOT"); got != "/repo" {
		t.Fatalf("GetHostEnv() = %q", got)
	}
}
