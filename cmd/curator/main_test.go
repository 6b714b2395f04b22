package main

import (
	"errors"
	"strings"
	"testing"

	"curator/internal/migrate"
)

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"assets", "images", "credits", "config"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRenderOutcomes(t *testing.T) {
	out := renderOutcomes([]migrate.Outcome{
		{Subject: "abc123", Status: migrate.StatusPublished, Detail: "deadbeef"},
		{Subject: "def456", Status: migrate.StatusExists},
		{Subject: "ghi789", Status: migrate.StatusFailed, Detail: "create asset", Err: errors.New("503")},
	})
	for _, want := range []string{"abc123", "published", "exists", "failed", "total 3", "1 failed", "1 published"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary table missing %q:\n%s", want, out)
		}
	}
}

func TestPrintFailures(t *testing.T) {
	var sb strings.Builder
	printFailures(&sb, []migrate.Outcome{
		{Subject: "ok", Status: migrate.StatusPublished},
		{Subject: "bad", Status: migrate.StatusFailed, Err: errors.New("boom")},
	})
	out := sb.String()
	if !strings.Contains(out, "bad") || !strings.Contains(out, "boom") {
		t.Errorf("failure report incomplete: %q", out)
	}
	if strings.Contains(out, "ok:") {
		t.Errorf("successful item listed as failure: %q", out)
	}

	sb.Reset()
	printFailures(&sb, []migrate.Outcome{{Subject: "ok", Status: migrate.StatusPublished}})
	if sb.Len() != 0 {
		t.Errorf("expected no output without failures, got %q", sb.String())
	}
}
