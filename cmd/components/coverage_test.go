// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// TestCommandTxtarCoverage verifies that every runnable leaf command has at
// least one testscript in tests/cli/testdata exercising it.
func TestCommandTxtarCoverage(t *testing.T) {
	t.Parallel()

	exemptions := map[string]string{
		"watch": "blocks until interrupted; unit-tested in internal/watch",
	}

	app, err := NewApp(Dependencies{})
	if err != nil {
		t.Fatalf("NewApp() failed: %v", err)
	}
	commands := make(map[string]bool)
	collectLeafCommands(NewRootCommand(app), "", commands)

	for exempt, reason := range exemptions {
		if !commands[exempt] {
			t.Errorf("stale exemption: %q does not exist (reason was: %s)", exempt, reason)
		}
	}

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("unable to determine test file path via runtime.Caller")
	}
	// cmd/components/coverage_test.go → project root
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	testdataDir := filepath.Join(projectRoot, "tests", "cli", "testdata")

	covered := scanTxtarCoverage(t, testdataDir, commands)

	var uncovered []string
	for path := range commands {
		if _, exempt := exemptions[path]; exempt {
			if covered[path] {
				t.Errorf("unnecessary exemption: %q is covered by txtar tests", path)
			}
			continue
		}
		if !covered[path] {
			uncovered = append(uncovered, path)
		}
	}
	slices.Sort(uncovered)
	for _, path := range uncovered {
		t.Errorf("uncovered command: %q has no txtar test in %s", path, testdataDir)
	}
}

// collectLeafCommands records non-hidden runnable commands without visible
// children, keyed by their space-separated path.
func collectLeafCommands(cmd *cobra.Command, prefix string, commands map[string]bool) {
	for _, child := range cmd.Commands() {
		if child.Hidden {
			continue
		}
		path := strings.TrimSpace(prefix + " " + child.Name())

		visible := 0
		for _, grandchild := range child.Commands() {
			if !grandchild.Hidden {
				visible++
			}
		}
		if visible == 0 && (child.RunE != nil || child.Run != nil) {
			commands[path] = true
		}
		collectLeafCommands(child, path, commands)
	}
}

func scanTxtarCoverage(t *testing.T, dir string, known map[string]bool) map[string]bool {
	t.Helper()

	execRe := regexp.MustCompile(`(?m)^!?\s*exec\s+components\s+(.+)$`)
	covered := make(map[string]bool)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read testdata directory %s: %v", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txtar") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			t.Errorf("failed to read %s: %v", entry.Name(), err)
			continue
		}
		for _, m := range execRe.FindAllStringSubmatch(string(data), -1) {
			if path := longestCommand(strings.Fields(m[1]), known); path != "" {
				covered[path] = true
			}
		}
	}
	return covered
}

// longestCommand returns the longest token prefix naming a known command.
func longestCommand(tokens []string, known map[string]bool) string {
	var best string
	for i := 1; i <= len(tokens); i++ {
		if candidate := strings.Join(tokens[:i], " "); known[candidate] {
			best = candidate
		}
	}
	return best
}

func TestLongestCommand(t *testing.T) {
	t.Parallel()

	known := map[string]bool{"list": true, "config init": true, "config show": true}
	tests := []struct {
		tokens []string
		want   string
	}{
		{[]string{"list", "--enabled"}, "list"},
		{[]string{"config", "init", "--force"}, "config init"},
		{[]string{"config"}, ""},
		{[]string{"unknown"}, ""},
	}
	for _, tt := range tests {
		if got := longestCommand(tt.tokens, known); got != tt.want {
			t.Errorf("longestCommand(%v) = %q, want %q", tt.tokens, got, tt.want)
		}
	}
}
