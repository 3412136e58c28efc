package main

import (
	"bytes"
	"strings"
	"testing"
)

const vertexShader = `OpCapability Shader
OpMemoryModel Logical GLSL450
OpEntryPoint Vertex %main "main" %pos
OpDecorate %pos BuiltIn Position
%void = OpTypeVoid
%fnty = OpTypeFunction %void
%f32 = OpTypeFloat 32
%v4 = OpTypeVector %f32 4
%ptr = OpTypePointer Output %v4
%pos = OpVariable %ptr Output
%main = OpFunction %void None %fnty
%entry = OpLabel
OpReturn
OpFunctionEnd
`

func TestRun(t *testing.T) {
	valid := writeFile(t, "valid.spvasm", vertexShader)
	invalid := writeFile(t, "invalid.spvasm", strings.Replace(vertexShader, "%v4 = OpTypeVector %f32 4", "%v4 = OpTypeVector %f32 3", 1))

	tests := []struct {
		name   string
		args   []string
		status int
		stdout string
		stderr string
	}{
		{"Valid", []string{"-env", "vulkan1.0", valid}, 0, "valid (vulkan1.0)", ""},
		{"Invalid", []string{"-env", "vulkan1.0", invalid}, 1, "", "needs to be a 4-component 32-bit float vector"},
		{"Mixed", []string{"-env", "vulkan1.0", valid, invalid}, 1, "valid.spvasm: valid", "invalid.spvasm"},
		{"Missing", []string{"missing.spv"}, 1, "", "reading input"},
		{"NoInput", nil, 2, "", "no input file specified"},
		{"BadEnv", []string{"-env", "vulkan9", valid}, 2, "", "unknown target environment"},
		{"Version", []string{"-version"}, 0, "spvval version", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.status {
				t.Errorf("status = %d, want %d\nstderr: %s", got, tt.status, stderr.String())
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
