package validate

import (
	"context"
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestValidateNilModule(t *testing.T) {
	err := Validate(nil, DefaultOptions())
	var verr *Error
	if !errors.As(err, &verr) || verr.Kind != ErrInvalidModule {
		t.Fatalf("expected invalid module error, got %v", err)
	}
}

func TestValidateDeterministic(t *testing.T) {
	src := vertexShader("", "OpName %pos \"gl_Position\"\nOpDecorate %pos BuiltIn Position\n",
		vec4Globals+"%p = OpTypePointer Output %v4\n%pos = OpVariable %p Output\n",
		"OpStore %pos %c\n")
	m := mustAssemble(t, src)
	before := m.Words()

	first := Validate(m, vulkanOptions())
	second := Validate(m, vulkanOptions())
	if first == nil || second == nil {
		t.Fatal("expected both runs to fail")
	}
	if first.Error() != second.Error() {
		t.Errorf("runs disagree:\n%v\n%v", first, second)
	}
	if !slices.Equal(before, m.Words()) {
		t.Error("validation modified the module")
	}
}

func TestValidateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := ValidateContext(ctx, mustAssemble(t, computeShader("", "")), DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestValidateLogsPasses(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	opts := DefaultOptions()
	opts.Logger = zap.New(core)

	if err := Validate(mustAssemble(t, computeShader("", "")), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	passes := logs.FilterMessage("pass finished")
	if passes.Len() != 5 {
		t.Fatalf("logged %d passes, want 5", passes.Len())
	}
	var names []string
	for _, entry := range passes.All() {
		names = append(names, entry.ContextMap()["pass"].(string))
	}
	want := []string{"memory", "atomics", "builtins", "interfaces", "modes"}
	if !slices.Equal(names, want) {
		t.Errorf("passes = %v, want %v", names, want)
	}
	if logs.FilterMessage("registry built").Len() != 1 {
		t.Error("registry build was not logged")
	}
}

func TestValidateStopsAtFirstFailingPass(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	opts := vulkanOptions()
	opts.Logger = zap.New(core)

	// Fails in builtins; interfaces and modes never run.
	src := vertexShader("%pos", "OpDecorate %pos BuiltIn Position\n",
		vec4Globals+"%v3 = OpTypeVector %f32 3\n%p = OpTypePointer Output %v3\n%pos = OpVariable %p Output\n", "")
	if err := Validate(mustAssemble(t, src), opts); err == nil {
		t.Fatal("expected error")
	}
	if n := logs.FilterMessage("pass finished").Len(); n != 3 {
		t.Errorf("logged %d passes, want 3", n)
	}
}
