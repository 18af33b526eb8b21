package cli

import (
	"io"
	"strings"
	"testing"
)

func TestRootCommandStructure(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"render", "view", "serve", "cache", "config", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
	for _, cmdName := range []string{"render", "view"} {
		cmd, _, _ := root.Find([]string{cmdName})
		for _, flag := range []string{"hflip", "vflip", "reverse", "ascii", "labels", "color", "color-mode", "no-cache"} {
			if cmd.Flags().Lookup(flag) == nil {
				t.Errorf("%s: missing --%s", cmdName, flag)
			}
		}
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, _, err := runCLI(t, "", "completion", shell)
		if err != nil {
			t.Errorf("completion %s: %v", shell, err)
			continue
		}
		if !strings.Contains(out, "gitlanes") {
			t.Errorf("completion %s output does not mention gitlanes", shell)
		}
	}

	if _, _, err := runCLI(t, "", "completion", "tcsh"); err == nil {
		t.Error("completion tcsh should fail")
	}
}

func TestFlagValueCompletion(t *testing.T) {
	isolate(t)

	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"render", "--color", ""}, []string{"auto", "always", "never"}},
		{[]string{"view", "--color-mode", ""}, []string{"lane", "lineage", "none"}},
		{[]string{"render", "--format", ""}, []string{"text", "json", "dot", "svg"}},
	}

	for _, tt := range tests {
		out, _, err := runCLI(t, "", append([]string{"__complete"}, tt.args...)...)
		if err != nil {
			t.Errorf("complete %v: %v", tt.args, err)
			continue
		}
		for _, w := range tt.want {
			if !strings.Contains(out, w+"\n") {
				t.Errorf("complete %v: missing %q in %q", tt.args, w, out)
			}
		}
	}
}

func TestVersion(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "", "--version")
	if err != nil {
		t.Fatalf("--version: %v", err)
	}
	if !strings.Contains(out, "gitlanes") {
		t.Errorf("--version output = %q", out)
	}
}
