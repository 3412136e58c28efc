package validate

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/gogpu/spvval/spirv"
)

// shader assembles a single-function shader module. header holds the entry
// point, execution modes, names and decorations; globals the types,
// constants and variables; body the instructions of %main after its label.
func shader(header, globals, body string) string {
	return "OpCapability Shader\n" +
		"OpMemoryModel Logical GLSL450\n" +
		header +
		"%void = OpTypeVoid\n" +
		"%fnty = OpTypeFunction %void\n" +
		globals +
		"%main = OpFunction %void None %fnty\n" +
		"%entry = OpLabel\n" +
		body +
		"OpReturn\n" +
		"OpFunctionEnd\n"
}

// computeShader is shader with a GLCompute entry point named "main".
func computeShader(globals, body string) string {
	return shader(
		"OpEntryPoint GLCompute %main \"main\"\n"+
			"OpExecutionMode %main LocalSize 1 1 1\n"+
			"OpName %main \"main\"\n",
		globals, body)
}

func mustAssemble(t *testing.T, src string) *spirv.Module {
	t.Helper()
	m, err := spirv.Assemble(src)
	if err != nil {
		t.Fatalf("assemble: %v\n%s", err, src)
	}
	return m
}

func universalOptions() Options {
	return DefaultOptions()
}

func vulkanOptions() Options {
	opts := DefaultOptions()
	opts.Env = EnvVulkan1_0
	return opts
}

func expectValid(t *testing.T, src string, opts Options) {
	t.Helper()
	if err := Validate(mustAssemble(t, src), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func expectError(t *testing.T, src string, opts Options, kind ErrorKind, substr string) *Error {
	t.Helper()
	err := Validate(mustAssemble(t, src), opts)
	if err == nil {
		t.Fatalf("expected %s error containing %q, got none", kind, substr)
	}
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if verr.Kind != kind {
		t.Fatalf("kind = %s, want %s: %v", verr.Kind, kind, verr)
	}
	if !strings.Contains(verr.Message, substr) {
		t.Fatalf("message %q does not contain %q", verr.Message, substr)
	}
	return verr
}

// mustRegistry builds the registry of src for the universal environment.
func mustRegistry(t *testing.T, src string) (*registry, map[string]uint32) {
	t.Helper()
	m := mustAssemble(t, src)
	v := &validator{
		opts:   universalOptions(),
		env:    EnvUniversal1_6,
		module: m,
		names:  m.Names(),
		log:    zap.NewNop(),
	}
	r, err := buildRegistry(v, m)
	if err != nil {
		t.Fatalf("buildRegistry: %v", err)
	}
	ids := make(map[string]uint32)
	for id, name := range m.Names() {
		ids[name] = id
	}
	return r, ids
}
