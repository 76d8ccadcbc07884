package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/dynstep/internal/config"
)

func newProblemCmd(t *testing.T) *cobra.Command {
	t.Helper()
	preset, configFile, params = "", "", nil
	cmd := &cobra.Command{Use: "test"}
	addProblemFlags(cmd)
	return cmd
}

func TestBuildConfigDefaults(t *testing.T) {
	cmd := newProblemCmd(t)
	cfg, err := buildConfig(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "decay" || cfg.Grid.Points != config.DefaultPoints {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestBuildConfigPrecedence(t *testing.T) {
	cmd := newProblemCmd(t)
	for name, value := range map[string]string{
		"preset": "small",
		"points": "11",
		"set":    "length=2",
		"init":   "0.1,0",
	} {
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}

	cfg, err := buildConfig(cmd, []string{"pendulum"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Model != "pendulum" {
		t.Errorf("expected pendulum, got %s", cfg.Model)
	}
	if cfg.Grid.Points != 11 {
		t.Errorf("flag should override preset points, got %d", cfg.Grid.Points)
	}
	if cfg.Grid.Stop != 20 {
		t.Errorf("preset stop should survive, got %v", cfg.Grid.Stop)
	}
	if cfg.Params["length"] != 2 {
		t.Errorf("expected length=2, got %v", cfg.Params)
	}
	if len(cfg.InitState) != 2 || cfg.InitState[0] != 0.1 {
		t.Errorf("expected init state from flag, got %v", cfg.InitState)
	}

	if config.GetPreset("pendulum", "small").Grid.Points == 11 {
		t.Error("flags leaked into the shared preset")
	}
}

func TestBuildConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("model: lorenz\ngrid:\n  start: 0\n  stop: 5\n  points: 501\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newProblemCmd(t)
	if err := cmd.Flags().Set("config", path); err != nil {
		t.Fatal(err)
	}
	cfg, err := buildConfig(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != "lorenz" || cfg.Grid.Points != 501 {
		t.Errorf("config file not applied: %+v", cfg)
	}
}

func TestBuildConfigRejects(t *testing.T) {
	cmd := newProblemCmd(t)
	if err := cmd.Flags().Set("set", "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := buildConfig(cmd, nil); err == nil {
		t.Error("expected error for a parameter without a value")
	}

	cmd = newProblemCmd(t)
	if err := cmd.Flags().Set("preset", "nope"); err != nil {
		t.Fatal(err)
	}
	if _, err := buildConfig(cmd, []string{"decay"}); err == nil {
		t.Error("expected error for an unknown preset")
	}
}
