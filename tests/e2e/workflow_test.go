package e2e

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// binary locates the waketrack CLI. Set WAKETRACK_BIN_DIR or build into ../../bin.
func binary(t *testing.T) string {
	t.Helper()
	binDir := os.Getenv("WAKETRACK_BIN_DIR")
	if binDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("Failed to get cwd: %v", err)
		}
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	path, _ := filepath.Abs(filepath.Join(binDir, "waketrack"))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s; build it first", path)
	}
	return path
}

type harness struct {
	t    *testing.T
	bin  string
	env  []string
	conf string
}

func newHarness(t *testing.T) *harness {
	tempDir := t.TempDir()
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "WAKETRACK_") {
			continue
		}
		env = append(env, e)
	}
	env = append(env,
		"HOME="+tempDir,
		"WAKETRACK_STORE=json",
		"WAKETRACK_STORE_PATH="+filepath.Join(tempDir, "data.json"),
		"WAKETRACK_TIMEZONE=UTC",
	)
	return &harness{t: t, bin: binary(t), env: env, conf: filepath.Join(tempDir, "config.yaml")}
}

func (h *harness) run(args ...string) string {
	h.t.Helper()
	full := append([]string{"--config", h.conf, "--user", "e2e"}, args...)
	cmd := exec.Command(h.bin, full...)
	cmd.Env = h.env
	out, err := cmd.CombinedOutput()
	if err != nil {
		h.t.Fatalf("waketrack %v failed: %v\nOutput: %s", args, err, out)
	}
	return string(out)
}

func TestEndToEndWorkflow(t *testing.T) {
	h := newHarness(t)
	today := time.Now().UTC().Format("2006-01-02")

	h.run("init")
	if _, err := os.Stat(h.conf); err != nil {
		t.Fatalf("init did not write config: %v", err)
	}

	out := h.run("log", "9", "coding", "the", "project")
	if !strings.Contains(out, "productive") {
		t.Errorf("log output missing category: %s", out)
	}
	h.run("log", "10", "scrolling", "instagram")
	h.run("log", "12", "lunch", "-c", "neutral")

	out = h.run("day")
	for _, want := range []string{"coding the project", "scrolling instagram", "lunch"} {
		if !strings.Contains(out, want) {
			t.Errorf("day output missing %q:\n%s", want, out)
		}
	}

	out = h.run("stats", "-n", "1")
	if !strings.Contains(out, "Productive hours:   1") {
		t.Errorf("unexpected stats:\n%s", out)
	}

	h.run("points")

	exportPath := filepath.Join(t.TempDir(), "export.json")
	h.run("export", "-o", exportPath)
	raw, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var doc struct {
		Activities map[string]map[string]struct {
			Text     string `json:"text"`
			Category string `json:"category"`
		} `json:"activities"`
		Version string `json:"version"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if got := doc.Activities[today]["09:00"].Text; got != "coding the project" {
		t.Errorf("exported 09:00 = %q", got)
	}

	h.run("clear", "--all", "-y")
	out = h.run("search", "coding")
	if !strings.Contains(out, "0 of 0 entries") {
		t.Errorf("data not cleared:\n%s", out)
	}

	h.run("import", exportPath, "-y")
	out = h.run("search", "coding")
	if !strings.Contains(out, fmt.Sprintf("%s 09:00", today)) {
		t.Errorf("import did not restore 09:00:\n%s", out)
	}
}
