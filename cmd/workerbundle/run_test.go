package main

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestSplitCommand - Command detection
// ---------------------------------------------------------------------------

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCmd  string
		wantRest []string
	}{
		{"no args builds", nil, "build", nil},
		{"leading flag builds", []string{"-q", "--output", "x"}, "build", []string{"-q", "--output", "x"}},
		{"explicit build", []string{"build", "-v"}, "build", []string{"-v"}},
		{"init with path", []string{"init", "cfg.yaml"}, "init", []string{"cfg.yaml"}},
		{"version flag", []string{"--version"}, "--version", []string{}},
		{"help flag", []string{"--help", "build"}, "help", []string{"build"}},
		{"unknown", []string{"deploy"}, "deploy", []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd, rest := splitCommand(tt.args)
			if cmd != tt.wantCmd {
				t.Errorf("command = %q, want %q", cmd, tt.wantCmd)
			}
			if len(rest) != 0 || len(tt.wantRest) != 0 {
				if !reflect.DeepEqual(rest, tt.wantRest) {
					t.Errorf("rest = %v, want %v", rest, tt.wantRest)
				}
			}
		})
	}
}

func TestWantsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"build", "-v"}, true},
		{[]string{"--verbose"}, true},
		{[]string{"--", "-v"}, false},
		{[]string{"-q"}, false},
	}
	for _, tt := range tests {
		tt := tt
		if got := wantsVerbose(tt.args); got != tt.want {
			t.Errorf("wantsVerbose(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRun - Dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"version", []string{"workerbundle", "version"}, ExitSuccess, "workerbundle dev", ""},
		{"help", []string{"workerbundle", "help"}, ExitSuccess, "Commands:", ""},
		{"short help", []string{"workerbundle", "-h"}, ExitSuccess, "Commands:", ""},
		{"unknown command", []string{"workerbundle", "deploy"}, ExitUsage, "", "Unknown command: deploy"},
		{"unknown flag", []string{"workerbundle", "build", "--bogus"}, ExitUsage, "", "bogus"},
		{"build help", []string{"workerbundle", "build", "--help"}, ExitSuccess, "", "Usage: workerbundle build"},
		{"stray argument", []string{"workerbundle", "build", "extra"}, ExitUsage, "", "unexpected argument"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := run(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}
