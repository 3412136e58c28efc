package spvval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gogpu/spvval/spirv"
	"github.com/gogpu/spvval/validate"
)

const vertexShader = `
OpCapability Shader
OpMemoryModel Logical GLSL450
OpEntryPoint Vertex %main "main" %pos
OpName %main "main"
OpName %pos "gl_Position"
OpDecorate %pos BuiltIn Position
%void = OpTypeVoid
%fnty = OpTypeFunction %void
%f32 = OpTypeFloat 32
%v4 = OpTypeVector %f32 4
%ptr = OpTypePointer Output %v4
%pos = OpVariable %ptr Output
%zero = OpConstant %f32 0
%one = OpConstant %f32 1
%origin = OpConstantComposite %v4 %zero %zero %zero %one
%main = OpFunction %void None %fnty
%entry = OpLabel
OpStore %pos %origin
OpReturn
OpFunctionEnd
`

func vulkanOptions() validate.Options {
	opts := DefaultOptions()
	opts.Env = validate.EnvVulkan1_0
	return opts
}

// TestValidateTextVertexShader validates a minimal vertex shader.
func TestValidateTextVertexShader(t *testing.T) {
	if err := ValidateText(vertexShader, vulkanOptions()); err != nil {
		t.Fatalf("ValidateText failed: %v", err)
	}
}

// TestValidateTextUnlistedInterface drops the output from the interface list.
func TestValidateTextUnlistedInterface(t *testing.T) {
	source := strings.Replace(vertexShader, `"main" %pos`, `"main"`, 1)
	err := ValidateText(source, vulkanOptions())

	var verr *validate.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validate.Error, got %v", err)
	}
	if verr.Kind != validate.ErrInterface {
		t.Errorf("kind = %s, want %s", verr.Kind, validate.ErrInterface)
	}
	for _, want := range []string{"validation failed", "gl_Position", "main"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not contain %q", err, want)
		}
	}
}

// TestValidateBinary round-trips the shader through its binary encoding.
func TestValidateBinary(t *testing.T) {
	m, err := spirv.Assemble(vertexShader)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	data := encode(m.Words())
	if err := ValidateBinary(data, vulkanOptions()); err != nil {
		t.Fatalf("ValidateBinary failed: %v", err)
	}

	text, err := Disassemble(data)
	if err != nil {
		t.Fatalf("Disassemble failed: %v", err)
	}
	if !strings.Contains(text, "OpDecorate %gl_Position BuiltIn Position") {
		t.Errorf("unexpected disassembly:\n%s", text)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		run    func() error
		prefix string
	}{
		{"Decode", func() error { return ValidateBinary([]byte{1, 2, 3}, DefaultOptions()) }, "decode error"},
		{"Assemble", func() error { return ValidateText("OpBogus\n", DefaultOptions()) }, "assemble error"},
		{"Canceled", func() error {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			m, _ := spirv.Assemble(vertexShader)
			return ValidateBinaryContext(ctx, encode(m.Words()), DefaultOptions())
		}, "validation failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), tt.prefix) {
				t.Errorf("error %q does not start with %q", err, tt.prefix)
			}
		})
	}
}

func encode(words []uint32) []byte {
	data := make([]byte, 0, len(words)*4)
	for _, w := range words {
		data = append(data, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	return data
}
