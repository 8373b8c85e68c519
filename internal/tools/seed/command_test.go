package seed

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestDryRunListsDemoCatalog(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"dry-run", "--env-file", ""})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("dry-run: %v", err)
	}
	for _, want := range []string{"would migrate the products table", `"Widget" at 9.99`, `"Gadget" at 24.50`} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("dry-run output missing %q:\n%s", want, out.String())
		}
	}
}

func TestDryRunCIEmitsJSON(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"dry-run", "--ci", "--env-file", ""})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("dry-run --ci: %v", err)
	}
	var rep ciReport
	if err := json.Unmarshal(out.Bytes(), &rep); err != nil {
		t.Fatalf("--ci output is not JSON: %v\n%s", err, out.String())
	}
	if !rep.OK || rep.Title != "seed dry-run" || len(rep.Details) == 0 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

// apply must hand failures back as errors so the entrypoint owns the exit
// code and deferred cleanup still runs.
func TestApplyReturnsErrorWithoutDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"apply", "--env-file", ""})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("expected DATABASE_URL error returned, got %v", err)
	}
}

func TestApplyRefusesProduction(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://:memory:")
	t.Setenv("APP_ENV", "production")

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"apply", "--ci", "--env-file", ""})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "production") {
		t.Fatalf("expected production refusal, got %v", err)
	}
	var rep ciReport
	if jsonErr := json.Unmarshal(out.Bytes(), &rep); jsonErr != nil {
		t.Fatalf("--ci output is not JSON: %v\n%s", jsonErr, out.String())
	}
	if rep.OK || rep.Error == "" {
		t.Fatalf("report must carry the failure: %+v", rep)
	}
}
