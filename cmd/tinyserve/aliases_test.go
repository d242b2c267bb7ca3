package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/keys-i/tinyserve/internal/logging"
)

func TestAliasesResolve(t *testing.T) {
	bin := buildTinyserve(t)
	home := t.TempDir()
	writeAliasesFixture(t, defaultAliasesPath(home), `{"showDir": ["show-dir", "show_dir"], "weakEtags": ["weak-etags"]}`)

	stdout, stderr, err := runTinyserve(t, bin, nil, "aliases", "resolve", "--home", home, "SHOW_DIR", "show-dir", "WeakEtags")
	if err != nil {
		t.Fatalf("tinyserve aliases resolve failed: %v\n%s", err, stderr)
	}

	gotLines := strings.Split(strings.TrimSpace(stdout), "\n")
	wantLines := []string{
		"SHOW_DIR -> showDir",
		"show-dir -> showDir",
		"WeakEtags -> weakEtags",
	}
	if len(gotLines) != len(wantLines) {
		t.Fatalf("line count = %d, want %d\noutput:\n%s", len(gotLines), len(wantLines), stdout)
	}
	for i := range wantLines {
		if gotLines[i] != wantLines[i] {
			t.Fatalf("line %d = %q, want %q", i+1, gotLines[i], wantLines[i])
		}
	}
}

func TestAliasesResolve_Unknown(t *testing.T) {
	bin := buildTinyserve(t)
	home := t.TempDir()
	writeAliasesFixture(t, defaultAliasesPath(home), `{"showDir": ["show-dir"]}`)

	stdout, stderr, err := runTinyserve(t, bin, nil, "aliases", "resolve", "--home", home, "show-dir", "unknown")
	if err == nil {
		t.Fatal("expected non-zero exit code for unknown key")
	}
	if strings.TrimSpace(stdout) != "show-dir -> showDir" {
		t.Fatalf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "unknown: unknown key") {
		t.Fatalf("expected unknown key report, got:\n%s", stderr)
	}
	if !strings.Contains(stderr, "1 of 2 keys not recognized") {
		t.Fatalf("expected summary error, got:\n%s", stderr)
	}
}

func TestAliasesResolve_ExplicitFile(t *testing.T) {
	bin := buildTinyserve(t)
	file := filepath.Join(t.TempDir(), "custom.json")
	writeAliasesFixture(t, file, `{"si": ["index"]}`)

	stdout, stderr, err := runTinyserve(t, bin, []string{"TINYSERVE_ALIASES=" + file}, "aliases", "resolve", "INDEX")
	if err != nil {
		t.Fatalf("tinyserve aliases resolve failed: %v\n%s", err, stderr)
	}
	if strings.TrimSpace(stdout) != "INDEX -> si" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestAliasesResolve_MissingFileCreatesDir(t *testing.T) {
	bin := buildTinyserve(t)
	home := t.TempDir()

	_, stderr, err := runTinyserve(t, bin, nil, "aliases", "resolve", "--home", home, "showDir")
	if err == nil {
		t.Fatal("expected non-zero exit code for missing aliases file")
	}
	if !strings.Contains(stderr, "failed to read aliases file") || !strings.Contains(stderr, defaultAliasesPath(home)) {
		t.Fatalf("expected read error naming the file, got:\n%s", stderr)
	}
	if info, err := os.Stat(filepath.Dir(defaultAliasesPath(home))); err != nil || !info.IsDir() {
		t.Fatalf("settings directory was not created: %v", err)
	}
}

func TestAliasesResolve_Malformed(t *testing.T) {
	bin := buildTinyserve(t)
	home := t.TempDir()
	writeAliasesFixture(t, defaultAliasesPath(home), `{not-json}`)

	_, stderr, err := runTinyserve(t, bin, nil, "aliases", "resolve", "--home", home, "showDir")
	if err == nil {
		t.Fatal("expected non-zero exit code for malformed aliases file")
	}
	if !strings.Contains(stderr, "failed to parse aliases") {
		t.Fatalf("expected parse error message, got:\n%s", stderr)
	}
}

func TestAliasesList(t *testing.T) {
	bin := buildTinyserve(t)
	home := t.TempDir()
	writeAliasesFixture(t, defaultAliasesPath(home), `{"showDir": ["show-dir", "show_dir"], "weakEtags": []}`)

	stdout, stderr, err := runTinyserve(t, bin, nil, "aliases", "list", "--home", home)
	if err != nil {
		t.Fatalf("tinyserve aliases list failed: %v\n%s", err, stderr)
	}
	for _, want := range []string{"CANONICAL", "showDir", "show-dir, show_dir", "weakEtags"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output:\n%s", want, stdout)
		}
	}
	if strings.Index(stdout, "showDir") > strings.Index(stdout, "weakEtags") {
		t.Fatalf("expected canonical keys in sorted order:\n%s", stdout)
	}
}

func TestAliasesCheck(t *testing.T) {
	bin := buildTinyserve(t)
	home := t.TempDir()
	writeAliasesFixture(t, defaultAliasesPath(home), `{"showDir": ["show-dir", "showDir"]}`)

	stdout, stderr, err := runTinyserve(t, bin, nil, "aliases", "check", "--home", home)
	if err != nil {
		t.Fatalf("tinyserve aliases check failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "no conflicts") {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestAliasesCheck_Conflict(t *testing.T) {
	bin := buildTinyserve(t)
	home := t.TempDir()
	writeAliasesFixture(t, defaultAliasesPath(home), `{"firstKey": ["f-o-o"], "secondKey": ["foo"]}`)

	stdout, stderr, err := runTinyserve(t, bin, nil, "aliases", "check", "--home", home)
	if err == nil {
		t.Fatal("expected non-zero exit code for conflicting aliases")
	}
	if !strings.Contains(stdout, `conflict: "foo" claimed by firstKey, secondKey`) {
		t.Fatalf("expected conflict report, got:\n%s", stdout)
	}
	if !strings.Contains(stderr, "found 1 alias conflict(s)") {
		t.Fatalf("expected conflict error, got:\n%s", stderr)
	}
	if !strings.Contains(stderr, "alias claimed by more than one key") {
		t.Fatalf("expected conflict warning in logs, got:\n%s", stderr)
	}
}

func TestAliasesPath(t *testing.T) {
	bin := buildTinyserve(t)
	home := t.TempDir()

	stdout, stderr, err := runTinyserve(t, bin, nil, "aliases", "path", "--home", home)
	if err != nil {
		t.Fatalf("tinyserve aliases path failed: %v\n%s", err, stderr)
	}
	if got := strings.TrimSpace(stdout); got != defaultAliasesPath(home) {
		t.Fatalf("aliases path = %q, want %q", got, defaultAliasesPath(home))
	}
	if _, err := os.Stat(filepath.Dir(defaultAliasesPath(home))); !os.IsNotExist(err) {
		t.Fatalf("aliases path must not create the settings directory, stat err = %v", err)
	}
}

func TestAliasesPath_ExplicitFile(t *testing.T) {
	bin := buildTinyserve(t)
	file := filepath.Join(t.TempDir(), "custom.json")

	stdout, stderr, err := runTinyserve(t, bin, nil, "aliases", "path", "--aliases", file)
	if err != nil {
		t.Fatalf("tinyserve aliases path failed: %v\n%s", err, stderr)
	}
	if got := strings.TrimSpace(stdout); got != file {
		t.Fatalf("aliases path = %q, want %q", got, file)
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"canonical", "aliases"}, [][]string{{"showDir", "show-dir"}, {"short"}})

	for _, want := range []string{"CANONICAL", "ALIASES", "showDir", "show-dir", "short"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
	if renderTable(nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	l, err := logging.New(io.Discard, "info")
	if err != nil {
		t.Fatalf("logging.New error: %v", err)
	}
	logger = l

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, "127.0.0.1:0", http.NotFoundHandler())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("serve did not stop after cancel")
	}
}

func TestServe_ListenError(t *testing.T) {
	l, err := logging.New(io.Discard, "info")
	if err != nil {
		t.Fatalf("logging.New error: %v", err)
	}
	logger = l

	err = serve(context.Background(), "not-an-address", http.NotFoundHandler())
	if err == nil || !strings.Contains(err.Error(), "alias server failed") {
		t.Fatalf("serve error = %v, want listen failure", err)
	}
}
