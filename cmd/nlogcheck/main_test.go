package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipp01105/nlogconf/factory"
)

const validConfig = `
channels:
  default:
    handlers: [quiet]
  audit:
    extends: default
    processors: [host]
handlers:
  quiet:
    class: nlog.NullHandler
processors:
  host:
    class: nlog.HostnameProcessor
`

const brokenConfig = `
channels:
  default:
    handlers: [quiet]
  broken:
    handlers: [missing]
handlers:
  quiet:
    class: nlog.NullHandler
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nlog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate_AllChannels(t *testing.T) {
	path := writeConfig(t, validConfig)

	out, err := runCLI(t, "validate", "--config", path, "--fallback", "")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	for _, want := range []string{"ok   audit", "ok   default"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidate_ReportsFailures(t *testing.T) {
	path := writeConfig(t, brokenConfig)

	out, err := runCLI(t, "validate", "--config", path, "--fallback", "")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("err = %v, want errInvalid", err)
	}
	if !strings.Contains(out, "FAIL broken: handlers - missing was referred to") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "config:") {
		t.Errorf("output should not include the document dump:\n%s", out)
	}
}

func TestValidate_NamedChannels(t *testing.T) {
	path := writeConfig(t, brokenConfig)

	out, err := runCLI(t, "validate", "--config", path, "--fallback", "", "default", "undeclared")
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok   undeclared") {
		t.Errorf("undeclared channel should validate through default:\n%s", out)
	}
}

func TestValidate_Fallback(t *testing.T) {
	fallback := writeConfig(t, validConfig)
	missing := filepath.Join(t.TempDir(), "nlog.yaml")

	if out, err := runCLI(t, "validate", "--config", missing, "--fallback", fallback); err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}

	_, err := runCLI(t, "validate", "--config", missing, "--fallback", "")
	if !errors.Is(err, factory.ErrConfigLoad) {
		t.Errorf("err = %v, want ErrConfigLoad", err)
	}
}

func TestChannels(t *testing.T) {
	path := writeConfig(t, validConfig)

	out, err := runCLI(t, "channels", "--config", path)
	if err != nil {
		t.Fatalf("channels: %v", err)
	}
	if !strings.Contains(out, "audit -> default") {
		t.Errorf("missing inheritance chain:\n%s", out)
	}
}

func TestTargets(t *testing.T) {
	out, err := runCLI(t, "targets")
	if err != nil {
		t.Fatalf("targets: %v", err)
	}
	for _, want := range []string{"nlog.StreamHandler", "nlog.UidProcessor", "file, level=DEBUG"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
