package cmd

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lifespan/internal/config"
	"github.com/Iron-Ham/lifespan/internal/logging"
	"github.com/Iron-Ham/lifespan/internal/remote"
	"github.com/Iron-Ham/lifespan/internal/testutil"
)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// useHarness points every command at a fresh in-memory summary service.
func useHarness(t *testing.T) *testutil.Harness {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LIFESPAN_LOGGING_ENABLED", "false")

	h := testutil.StartServer(t)
	prev := newService
	newService = func(_ *config.Config, logger *logging.Logger) remote.Service {
		return h.Client(remote.WithLogger(logger))
	}
	t.Cleanup(func() { newService = prev })
	return h
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "lifespan" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "lifespan")
	}

	cmdMap := make(map[string]*cobra.Command)
	for _, c := range rootCmd.Commands() {
		cmdMap[c.Name()] = c
	}

	tests := []struct {
		name string
		subs []string
	}{
		{"wizard", nil},
		{"serve", nil},
		{"profile", []string{"create"}},
		{"survival", []string{"set"}},
		{"maintenance", []string{"add", "list", "deactivate"}},
		{"leakage", []string{"add", "list"}},
		{"total", nil},
		{"config", []string{"show", "set", "init", "path", "theme"}},
	}
	for _, tt := range tests {
		c, ok := cmdMap[tt.name]
		if !ok {
			t.Errorf("expected subcommand %q not found", tt.name)
			continue
		}
		for _, sub := range tt.subs {
			if found, _, err := c.Find([]string{sub}); err != nil || found.Name() != sub {
				t.Errorf("%s has no %q subcommand", tt.name, sub)
			}
		}
	}
}

func TestWizardRequiresTerminal(t *testing.T) {
	useHarness(t)
	_, err := executeCommand(rootCmd, "wizard")
	if err == nil || !strings.Contains(err.Error(), "needs a terminal") {
		t.Errorf("wizard without a terminal: error = %v", err)
	}
}

func TestCLI_Walkthrough(t *testing.T) {
	useHarness(t)

	out, err := executeCommand(rootCmd, "profile", "create", "--age", "30", "--life-expectancy", "80")
	if err != nil {
		t.Fatalf("profile create: %v\n%s", err, out)
	}
	var id int64
	if _, err := fmt.Sscanf(out, "Created profile %d:", &id); err != nil {
		t.Fatalf("no user id in %q", out)
	}
	if !strings.Contains(out, "50.0y remaining") {
		t.Errorf("profile output = %q", out)
	}
	user := strconv.FormatInt(id, 10)

	steps := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "summary before survival",
			args: []string{"total", "--user", user},
		},
		{
			name: "survival",
			args: []string{"survival", "set", "--user", user, "--sleep", "8", "--work", "8", "--work-days", "5"},
			want: []string{"Sleep", "16.7y", "Free"},
		},
		{
			name: "maintenance add",
			args: []string{"maintenance", "add", "--user", user, "--label", "Exercising", "--hours", "5"},
			want: []string{"Saved Exercising: 5 h/week.", "Exercising", "Total"},
		},
		{
			name: "leakage add",
			args: []string{"leakage", "add", "--user", user, "--label", "Waiting in line", "--hours", "2"},
			want: []string{"Saved Waiting in line", "Leakage"},
		},
		{
			name: "maintenance list",
			args: []string{"maintenance", "list", "--user", user},
			want: []string{"Maintenance", "Exercising"},
		},
		{
			name: "total",
			args: []string{"total", "--user", user},
			want: []string{"Level 1: Survival", "Exercising", "Waiting in line", "Remaining free life"},
		},
		{
			name: "deactivate",
			args: []string{"maintenance", "deactivate", "--user", user, "--label", "Exercising"},
			want: []string{"Deactivated Exercising."},
		},
	}

	for i, step := range steps {
		out, err := executeCommand(rootCmd, step.args...)
		if i == 0 {
			// The summary is refused until survival exists.
			if err == nil {
				t.Errorf("%s: expected an error, got\n%s", step.name, out)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v\n%s", step.name, err, out)
		}
		for _, want := range step.want {
			if !strings.Contains(out, want) {
				t.Errorf("%s: output missing %q:\n%s", step.name, want, out)
			}
		}
	}
}

func TestProfileCreate_Invalid(t *testing.T) {
	useHarness(t)
	_, err := executeCommand(rootCmd, "profile", "create", "--age", "90", "--life-expectancy", "80")
	if err == nil {
		t.Error("age above life expectancy accepted")
	}
}
