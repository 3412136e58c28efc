package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/spvval/spirv"
)

func TestRun(t *testing.T) {
	b := spirv.NewModuleBuilder(spirv.Version1_3)
	b.AddCapability(spirv.CapabilityShader)
	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.spv")
	bad := filepath.Join(dir, "bad.spv")
	if err := os.WriteFile(good, b.Build(), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte{1, 2, 3}, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		args   []string
		status int
		stdout string
		stderr string
	}{
		{"Valid", []string{good}, 0, "OpMemoryModel Logical GLSL450", ""},
		{"Truncated", []string{bad}, 1, "", "Error:"},
		{"NoArgs", nil, 2, "", "Usage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.status {
				t.Errorf("status = %d, want %d", got, tt.status)
			}
			if !strings.Contains(stdout.String(), tt.stdout) {
				t.Errorf("stdout %q does not contain %q", stdout.String(), tt.stdout)
			}
			if !strings.Contains(stderr.String(), tt.stderr) {
				t.Errorf("stderr %q does not contain %q", stderr.String(), tt.stderr)
			}
		})
	}
}
