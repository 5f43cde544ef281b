package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	Version = "v1.2.3"
	root := newRootCMD()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "v1.2.3" {
		t.Fatalf("version output = %q", got)
	}
}

func TestServeRejectsMissingConfigFile(t *testing.T) {
	root := newRootCMD()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"serve", "--config", t.TempDir() + "/missing.yml"})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestServeFlags(t *testing.T) {
	serve := serveCMD()
	for _, name := range []string{"config", "port"} {
		if serve.Flags().Lookup(name) == nil {
			t.Errorf("missing --%s flag", name)
		}
	}
}
