package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	libraryDir string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	libraryDir := filepath.Join(base, "library")
	if err := os.MkdirAll(libraryDir, 0o755); err != nil {
		t.Fatalf("create library dir: %v", err)
	}

	configPath := filepath.Join(base, "config.toml")
	contents := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[library]
roots = [%q]

[matching]
workers = 2
`, filepath.Join(base, "data"), filepath.Join(base, "logs"), libraryDir)
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}

	return &cliTestEnv{
		baseDir:    base,
		configPath: configPath,
		libraryDir: libraryDir,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestCLICatalogAddListRemove(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"catalog", "add", "/library/Inception (2010)", "--external-id", "tt1375666"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog add: %v", err)
	}
	requireContains(t, out, "Added entry 1: Inception")

	out, _, err = runCLI(t, []string{"catalog", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "Inception")
	requireContains(t, out, "2010")
	requireContains(t, out, "tt1375666")

	out, _, err = runCLI(t, []string{"catalog", "remove", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog remove: %v", err)
	}
	requireContains(t, out, "Removed entry 1")

	out, _, err = runCLI(t, []string{"catalog", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog list after remove: %v", err)
	}
	requireContains(t, out, "Catalog is empty")

	if _, _, err := runCLI(t, []string{"catalog", "remove", "99"}, env.configPath); err == nil {
		t.Fatal("expected error removing a missing entry")
	}
}

func TestCLICatalogScan(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, name := range []string{"Inception (2010)", "Heat (1995)", "Alien"} {
		if err := os.MkdirAll(filepath.Join(env.libraryDir, name), 0o755); err != nil {
			t.Fatalf("create library folder: %v", err)
		}
	}

	out, _, err := runCLI(t, []string{"catalog", "scan"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog scan: %v", err)
	}
	requireContains(t, out, "3 added")

	out, _, err = runCLI(t, []string{"catalog", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "Inception")
	requireContains(t, out, "Heat")
	requireContains(t, out, "Alien")
}

func TestCLIMatchJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"catalog", "add", "/library/Inception (2010)"}, env.configPath); err != nil {
		t.Fatalf("catalog add: %v", err)
	}

	out, _, err := runCLI(t, []string{"match", "Inception", "--year", "2010", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, `"method": "titleYear"`)
	requireContains(t, out, `"confidence": 0.9`)
}

func TestCLIBatchRunAndResults(t *testing.T) {
	env := setupCLITestEnv(t)

	for _, folder := range []string{"/library/Inception (2010)", "/library/Heat (1995)"} {
		if _, _, err := runCLI(t, []string{"catalog", "add", folder}, env.configPath); err != nil {
			t.Fatalf("catalog add %s: %v", folder, err)
		}
	}

	requestsPath := filepath.Join(env.baseDir, "requests.json")
	requests := `[
  {"id": "r1", "title": "Inception", "year": 2010},
  {"id": "r2", "title": "Heat", "year": 1995},
  {"id": "r3", "title": "Unknown Film", "year": 1950}
]`
	if err := os.WriteFile(requestsPath, []byte(requests), 0o644); err != nil {
		t.Fatalf("write requests file: %v", err)
	}

	out, _, err := runCLI(t, []string{"batch", "run", requestsPath, "--batch-id", "batch-test"}, env.configPath)
	if err != nil {
		t.Fatalf("batch run: %v", err)
	}
	requireContains(t, out, "batch-test")
	requireContains(t, out, "batch batch-test complete: 3 results")

	out, _, err = runCLI(t, []string{"results"}, env.configPath)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	requireContains(t, out, "batch-test")

	out, _, err = runCLI(t, []string{"results", "batch-test"}, env.configPath)
	if err != nil {
		t.Fatalf("results batch-test: %v", err)
	}
	requireContains(t, out, "r1")
	requireContains(t, out, "titleYear")
	requireContains(t, out, "none")
}

func TestCLIBatchRunRejectsEmptyFile(t *testing.T) {
	env := setupCLITestEnv(t)

	requestsPath := filepath.Join(env.baseDir, "empty.json")
	if err := os.WriteFile(requestsPath, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write requests file: %v", err)
	}

	if _, _, err := runCLI(t, []string{"batch", "run", requestsPath}, env.configPath); err == nil {
		t.Fatal("expected error for empty requests file")
	}
}

func TestCLIConfigCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected error when config already exists")
	}

	if err := os.WriteFile(target, []byte("# stale\n"), 0o644); err != nil {
		t.Fatalf("seed stale config: %v", err)
	}
	out, _, err = runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "")
	if err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read overwritten config: %v", err)
	}
	if strings.Contains(string(data), "# stale") {
		t.Fatal("expected --overwrite to replace the existing file")
	}

	out, _, err = runCLI(t, []string{"config", "path"}, env.configPath)
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	requireContains(t, out, env.configPath)

	out, _, err = runCLI(t, []string{"config", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, env.libraryDir)
}
