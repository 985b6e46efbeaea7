package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-c", "conf.json", "-f", "tasks.db"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--config=alt.json", "-f", "tasks.db"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "both spellings present, order preserved",
			args:         []string{"--config=first.json", "-c", "second.json", "-x", "1"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"--config=first.json", "-c", "second.json"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "add"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-c"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c"},
		},
		{
			name:         "flag followed by another flag keeps no value",
			args:         []string{"-c", "-f"},
			allowedFlags: []string{"-c", "--config"},
			want:         []string{"-c"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, tc.allowedFlags)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCmd  string
		wantRest []string
	}{
		{
			name:     "plain command with args",
			args:     []string{"add", "-priority", "high", "Ship report"},
			wantCmd:  "add",
			wantRest: []string{"-priority", "high", "Ship report"},
		},
		{
			name:     "global flags before command",
			args:     []string{"-f", "tasks.db", "list", "-overdue"},
			wantCmd:  "list",
			wantRest: []string{"-overdue"},
		},
		{
			name:     "equals-style global flag before command",
			args:     []string{"--config=conf.json", "workload", "alice"},
			wantCmd:  "workload",
			wantRest: []string{"alice"},
		},
		{
			name:    "flags only, no command",
			args:    []string{"-f", "tasks.db"},
			wantCmd: "",
		},
		{
			name:    "empty args",
			args:    nil,
			wantCmd: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, rest := SplitCommand(tc.args)
			assert.Equal(t, tc.wantCmd, cmd)
			assert.Equal(t, tc.wantRest, rest)
		})
	}
}
