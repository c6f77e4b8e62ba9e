package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig writes a config file whose paths live under a temp dir and
// returns its path.
func writeTestConfig(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
notifications_dir = %q

[logging]
format = "json"
level = "error"
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "notifications"),
	)
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--config", configPath, "--actor", "tester"}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestCLIItemLifecycle(t *testing.T) {
	configPath := writeTestConfig(t)

	out, _, err := runCLI(t, configPath, "item", "create", "Fix crash", "--type", "bug")
	if err != nil {
		t.Fatalf("item create: %v", err)
	}
	requireContains(t, out, "Created bug")
	requireContains(t, out, "(found)")

	fields := strings.Fields(out)
	if len(fields) < 3 {
		t.Fatalf("unexpected create output: %q", out)
	}
	id := fields[2]

	out, _, err = runCLI(t, configPath, "item", "move", id, "triaged")
	if err != nil {
		t.Fatalf("item move: %v", err)
	}
	requireContains(t, out, "triaged")
	requireContains(t, out, "version 1")

	out, _, err = runCLI(t, configPath, "item", "show", id)
	if err != nil {
		t.Fatalf("item show: %v", err)
	}
	requireContains(t, out, "Fix crash")
	requireContains(t, out, "triaged")

	out, _, err = runCLI(t, configPath, "item", "list", "--status", "triaged")
	if err != nil {
		t.Fatalf("item list: %v", err)
	}
	requireContains(t, out, id[:8])
}

func TestCLIRejectsIllegalTransition(t *testing.T) {
	configPath := writeTestConfig(t)

	out, _, err := runCLI(t, configPath, "item", "create", "Task", "--type", "task")
	if err != nil {
		t.Fatalf("item create: %v", err)
	}
	id := strings.Fields(out)[2]

	_, _, err = runCLI(t, configPath, "item", "move", id, "done")
	if err == nil {
		t.Fatal("expected illegal transition to fail")
	}
	if exitCodeFor(err) != 2 {
		t.Fatalf("expected validation exit code 2, got %d", exitCodeFor(err))
	}

	_, _, err = runCLI(t, configPath, "item", "move", "missing-id", "done")
	if err == nil {
		t.Fatal("expected missing item to fail")
	}
	if exitCodeFor(err) != 3 {
		t.Fatalf("expected not-found exit code 3, got %d", exitCodeFor(err))
	}
}

func TestCLIAssignAndNotify(t *testing.T) {
	configPath := writeTestConfig(t)

	out, _, err := runCLI(t, configPath, "item", "create", "Reviewed", "--type", "task")
	if err != nil {
		t.Fatalf("item create: %v", err)
	}
	id := strings.Fields(out)[2]

	out, _, err = runCLI(t, configPath, "item", "assign", id, "alice")
	if err != nil {
		t.Fatalf("item assign: %v", err)
	}
	requireContains(t, out, "Assigned")

	if _, _, err := runCLI(t, configPath, "item", "move", id, "in_progress"); err != nil {
		t.Fatalf("item move: %v", err)
	}

	out, _, err = runCLI(t, configPath, "notify", "list", "--user", "alice", "--unread")
	if err != nil {
		t.Fatalf("notify list: %v", err)
	}
	requireContains(t, out, "assignment")

	out, _, err = runCLI(t, configPath, "notify", "read-all", "--user", "alice")
	if err != nil {
		t.Fatalf("notify read-all: %v", err)
	}
	requireContains(t, out, "Marked")

	out, _, err = runCLI(t, configPath, "notify", "summary", "--user", "alice")
	if err != nil {
		t.Fatalf("notify summary: %v", err)
	}
	requireContains(t, out, "No unread notifications")
}

func TestCLIReleaseCommands(t *testing.T) {
	configPath := writeTestConfig(t)

	out, _, err := runCLI(t, configPath, "release", "create", "1.0.0")
	if err != nil {
		t.Fatalf("release create: %v", err)
	}
	requireContains(t, out, "Created release 1.0.0")

	out, _, err = runCLI(t, configPath, "item", "create", "Shipped", "--type", "feature")
	if err != nil {
		t.Fatalf("item create: %v", err)
	}
	id := strings.Fields(out)[2]

	out, _, err = runCLI(t, configPath, "release", "add", "1.0.0", id)
	if err != nil {
		t.Fatalf("release add: %v", err)
	}
	requireContains(t, out, "1 item(s)")

	out, _, err = runCLI(t, configPath, "release", "show", "1.0.0")
	if err != nil {
		t.Fatalf("release show: %v", err)
	}
	requireContains(t, out, id)

	_, _, err = runCLI(t, configPath, "release", "create", "1.0.0")
	if err == nil {
		t.Fatal("expected duplicate release version to fail")
	}
}

func TestCLIConfigInit(t *testing.T) {
	configPath := writeTestConfig(t)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err := runCLI(t, configPath, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestCLIStats(t *testing.T) {
	configPath := writeTestConfig(t)

	if _, _, err := runCLI(t, configPath, "item", "create", "A", "--type", "bug"); err != nil {
		t.Fatalf("item create: %v", err)
	}
	if _, _, err := runCLI(t, configPath, "item", "create", "B", "--type", "task"); err != nil {
		t.Fatalf("item create: %v", err)
	}

	out, _, err := runCLI(t, configPath, "stats")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	requireContains(t, out, "found")
	requireContains(t, out, "to_do")
}
