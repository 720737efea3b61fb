package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestRootCmdVersion(t *testing.T) {
	resetConf(t)
	cmd := newRootCmd()
	if cmd.Version != Version {
		t.Errorf("cmd.Version = %q, want %q", cmd.Version, Version)
	}

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Errorf("--version printed %q, want it to contain %q", out.String(), Version)
	}
}

func TestRootCmdFlagsBindConfig(t *testing.T) {
	resetConf(t)
	cmd := newRootCmd()
	if err := cmd.Flags().Parse([]string{"--tile-size", "128", "--strategy", "tile"}); err != nil {
		t.Fatal(err)
	}
	if got := viper.GetInt("pyramid.tileSize"); got != 128 {
		t.Errorf("pyramid.tileSize = %d, want 128", got)
	}
	if got := viper.GetString("pyramid.strategy"); got != "tile" {
		t.Errorf("pyramid.strategy = %q, want tile", got)
	}
}
