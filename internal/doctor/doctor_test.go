package doctor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/config"
)

func TestCheckResult_JSON(t *testing.T) {
	data, err := json.Marshal(CheckResult{Name: "x", Status: StatusWarn, Message: "m", category: CategoryLogs})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != `{"name":"x","status":"warn","message":"m"}` {
		t.Errorf("got %s", got)
	}
}

// mockCheck is a test implementation of Check.
type mockCheck struct {
	name     string
	category string
	status   Status
}

func (m *mockCheck) Name() string     { return m.name }
func (m *mockCheck) Category() string { return m.category }
func (m *mockCheck) Run(context.Context) CheckResult {
	return CheckResult{Status: m.status, Message: m.name + " ran"}
}

func mockChecks() []Check {
	return []Check{
		&mockCheck{name: "a", category: CategoryLogs, status: StatusPass},
		&mockCheck{name: "b", category: CategoryBackend, status: StatusFail},
		&mockCheck{name: "c", category: CategoryConfig, status: StatusWarn},
		&mockCheck{name: "d", category: CategoryConfig, status: StatusPass},
	}
}

func TestRun_KeepsOrderAndFillsNames(t *testing.T) {
	report := Run(context.Background(), mockChecks())
	if len(report.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(report.Results))
	}
	for i, want := range []string{"a", "b", "c", "d"} {
		if report.Results[i].Name != want {
			t.Errorf("result %d: got %q, want %q", i, report.Results[i].Name, want)
		}
	}
}

func TestReport_Sections(t *testing.T) {
	sections := Run(context.Background(), mockChecks()).Sections()

	var got []string
	for _, s := range sections {
		var names []string
		for _, r := range s.Results {
			names = append(names, r.Name)
		}
		got = append(got, s.Category+":"+strings.Join(names, ","))
	}
	want := "CONFIG:c,d BACKEND:b LOGS:a"
	if strings.Join(got, " ") != want {
		t.Errorf("got %q, want %q", strings.Join(got, " "), want)
	}

	if empty := (Report{}).Sections(); empty == nil || len(empty) != 0 {
		t.Errorf("empty report should give an empty, non-nil slice, got %#v", empty)
	}
}

func TestReport_SummaryAndFailed(t *testing.T) {
	report := Run(context.Background(), mockChecks())
	if got := report.Summary(); got != (Summary{Pass: 2, Warn: 1, Fail: 1}) {
		t.Errorf("unexpected summary: %+v", got)
	}
	if got := report.Summary().Issues(); got != 2 {
		t.Errorf("issues: got %d, want 2", got)
	}
	if !report.Failed() {
		t.Error("expected failure")
	}

	warnOnly := Report{Results: []CheckResult{{Status: StatusWarn}}}
	if warnOnly.Failed() {
		t.Error("warnings are not failures")
	}
	if warnOnly.Summary().Issues() != 1 {
		t.Error("warnings are issues")
	}
}

// isolate runs the test in an empty HOME and working directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("LOGHOI_BACKEND_URL", "")
	t.Chdir(t.TempDir())
	return home
}

func TestConfigFileCheck(t *testing.T) {
	ctx := context.Background()
	isolate(t)

	c := &ConfigFileCheck{}
	if r := c.Run(ctx); r.Status != StatusWarn {
		t.Errorf("no config: got %s, want warn", r.Status)
	}

	if err := os.WriteFile(config.ConfigFileName, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	r := c.Run(ctx)
	if r.Status != StatusPass {
		t.Errorf("with config: got %s, want pass", r.Status)
	}
	if !strings.Contains(r.Message, config.ConfigFileName) {
		t.Errorf("message %q should name the file", r.Message)
	}

	missing := &ConfigFileCheck{ConfigPath: "nope.yaml"}
	if r := missing.Run(ctx); r.Status != StatusFail {
		t.Errorf("explicit missing: got %s, want fail", r.Status)
	}
}

func TestConfigSchemaCheck(t *testing.T) {
	ctx := context.Background()
	isolate(t)

	c := &ConfigSchemaCheck{}
	if r := c.Run(ctx); r.Status != StatusPass {
		t.Errorf("defaults: got %s (%s), want pass", r.Status, r.Message)
	}

	if err := os.WriteFile(config.ConfigFileName, []byte("backend:\n  url: localhost\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if r := c.Run(ctx); r.Status != StatusFail {
		t.Errorf("bad url: got %s, want fail", r.Status)
	}

	if err := os.WriteFile(config.ConfigFileName, []byte("backend: [\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if r := c.Run(ctx); r.Status != StatusFail {
		t.Errorf("bad yaml: got %s, want fail", r.Status)
	}
}

type stubLister struct {
	devices []backend.Device
	err     error
}

func (s stubLister) ListDevices(ctx context.Context) ([]backend.Device, error) {
	return s.devices, s.err
}

func TestBackendCheck(t *testing.T) {
	ctx := context.Background()
	ok := &BackendCheck{
		Origin: "http://localhost:7776",
		Lister: stubLister{devices: []backend.Device{{Address: "10.0.0.10"}}},
	}
	r := ok.Run(ctx)
	if r.Status != StatusPass {
		t.Fatalf("got %s, want pass", r.Status)
	}
	if !strings.Contains(r.Message, "1 device registered") {
		t.Errorf("message %q", r.Message)
	}

	down := &BackendCheck{
		Origin: "http://localhost:7776",
		Lister: stubLister{err: fmt.Errorf("connection refused")},
	}
	r = down.Run(ctx)
	if r.Status != StatusFail {
		t.Fatalf("got %s, want fail", r.Status)
	}
	if !strings.Contains(r.Message, "connection refused") || r.Suggestion == "" {
		t.Errorf("unexpected result %+v", r)
	}
}

func TestSSHConfigCheck(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	missing := &SSHConfigCheck{Path: filepath.Join(dir, "missing")}
	if r := missing.Run(ctx); r.Status != StatusWarn {
		t.Errorf("missing: got %s, want warn", r.Status)
	}

	good := filepath.Join(dir, "config")
	if err := os.WriteFile(good, []byte("Host prism-tokyo\n  HostName 10.0.0.10\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if r := (&SSHConfigCheck{Path: good}).Run(ctx); r.Status != StatusPass {
		t.Errorf("good: got %s (%s), want pass", r.Status, r.Message)
	}

	if r := (&SSHConfigCheck{}).Run(ctx); r.Status != StatusPass {
		t.Errorf("disabled: got %s, want pass", r.Status)
	}
}

func TestLogFileCheck(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	ok := &LogFileCheck{Path: filepath.Join(dir, "loghoi.log")}
	if r := ok.Run(ctx); r.Status != StatusPass {
		t.Errorf("writable: got %s, want pass", r.Status)
	}

	bad := &LogFileCheck{Path: filepath.Join(dir, "no", "such", "dir", "loghoi.log")}
	if r := bad.Run(ctx); r.Status != StatusWarn {
		t.Errorf("unwritable: got %s, want warn", r.Status)
	}
}

func TestConfigSchemaCheck_BackendOverride(t *testing.T) {
	ctx := context.Background()
	isolate(t)

	c := &ConfigSchemaCheck{BackendURL: "ftp://nope"}
	if r := c.Run(ctx); r.Status != StatusFail {
		t.Errorf("got %s, want fail", r.Status)
	}
}
