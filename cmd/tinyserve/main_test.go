package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func buildTinyserve(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "tinyserve")
	cmd := exec.Command("go", "build", "-o", binPath, "./")
	cmd.Dir = filepath.Join(findModuleRoot(t), "cmd", "tinyserve")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build tinyserve: %v\n%s", err, out)
	}
	return binPath
}

// findModuleRoot walks up from the test file's directory to find go.mod.
func findModuleRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find module root (go.mod)")
		}
		dir = parent
	}
}

// runTinyserve runs the binary with TINYSERVE_* variables cleared plus extraEnv.
func runTinyserve(t *testing.T, bin string, extraEnv []string, args ...string) (string, string, error) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	var env []string
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "TINYSERVE_") {
			env = append(env, kv)
		}
	}
	cmd.Env = append(env, extraEnv...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func writeAliasesFixture(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
}

func defaultAliasesPath(home string) string {
	return filepath.Join(home, ".tinyserve", "configs", "aliases.json")
}
