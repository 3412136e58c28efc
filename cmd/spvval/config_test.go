package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/spvval/validate"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "spvval.yaml", "env: vulkan1.2\nrelax-struct-store: true\nallow-localsizeid: true\n")
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	opts, err := cfg.options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Env != validate.EnvVulkan1_2 || !opts.RelaxStructStore || !opts.AllowLocalSizeID || opts.RelaxLogicalPointer {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		substr  string
	}{
		{"UnknownKey", "environment: vulkan1.0\n", "field environment not found"},
		{"BadType", "relax-struct-store: maybe\n", "cannot unmarshal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeFile(t, "spvval.yaml", tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.substr) {
				t.Fatalf("error = %v, want one containing %q", err, tt.substr)
			}
		})
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestEmptyConfigKeepsDefaults(t *testing.T) {
	cfg, err := loadConfig(writeFile(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestUnknownEnv(t *testing.T) {
	cfg := defaultConfig()
	cfg.Env = "vulkan9.9"
	if _, err := cfg.options(); err == nil {
		t.Error("expected error for an unknown environment")
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := writeFile(t, "spvval.yaml", "env: vulkan1.2\nrelax-struct-store: true\n")

	tests := []struct {
		name        string
		args        []string
		env         validate.TargetEnv
		structStore bool
	}{
		{"ConfigOnly", []string{"-config", path, "in.spv"}, validate.EnvVulkan1_2, true},
		{"EnvFlag", []string{"-config", path, "-env", "webgpu0", "in.spv"}, validate.EnvWebGPU0, true},
		{"BoolFlag", []string{"-config", path, "-relax-struct-store=false", "in.spv"}, validate.EnvVulkan1_2, false},
		{"NoConfig", []string{"in.spv"}, validate.EnvUniversal1_6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, opts, inputs, err := parseArgs(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("parseArgs: %v", err)
			}
			if opts.Env != tt.env || opts.RelaxStructStore != tt.structStore {
				t.Errorf("env=%s relax=%v, want env=%s relax=%v", opts.Env, opts.RelaxStructStore, tt.env, tt.structStore)
			}
			if len(inputs) != 1 || inputs[0] != "in.spv" {
				t.Errorf("inputs = %v", inputs)
			}
		})
	}
}
