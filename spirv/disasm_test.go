package spirv

import (
	"slices"
	"strings"
	"testing"
)

const fragmentSource = `; Version: 1.3
OpCapability Shader
OpMemoryModel Logical GLSL450
OpEntryPoint Fragment %main "main"
OpExecutionMode %main OriginUpperLeft
OpName %main "main"
%void = OpTypeVoid
%fn = OpTypeFunction %void
%f32 = OpTypeFloat 32
%half = OpConstant %f32 0.5
%main = OpFunction %void None %fn
%entry = OpLabel
OpReturn
OpFunctionEnd
`

func TestDisassemble(t *testing.T) {
	out := Disassemble(mustAssemble(t, fragmentSource))
	for _, want := range []string{
		"; Version: 1.3",
		"; Bound: 7",
		"OpEntryPoint Fragment %main \"main\"",
		"OpExecutionMode %main OriginUpperLeft",
		"%5 = OpConstant %4 0.5",
		"%main = OpFunction %2 None %3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestDisassembleRoundTrip(t *testing.T) {
	m := mustAssemble(t, fragmentSource)
	again := mustAssemble(t, Disassemble(m))
	if !slices.Equal(m.Words(), again.Words()) {
		t.Errorf("round trip changed the module:\n%s\n%s", Disassemble(m), Disassemble(again))
	}
}

func TestDisassembleNames(t *testing.T) {
	m := mustAssemble(t, `
OpName %a "dup"
OpName %b "dup"
OpName %c "not an identifier"
OpName %d "ok_1"
%a = OpTypeVoid
%b = OpTypeBool
%c = OpTypeInt 32 0
%d = OpTypeFloat 32
`)
	out := Disassemble(m)
	for _, want := range []string{"%1 = OpTypeVoid", "%2 = OpTypeBool", "%3 = OpTypeInt 32 0", "%ok_1 = OpTypeFloat 32"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestFormatInstruction(t *testing.T) {
	m := mustAssemble(t, `
%u32 = OpTypeInt 32 0
%p = OpTypePointer Function %u32
%v = OpVariable %p Function
%x = OpLoad %u32 %v Volatile|Aligned 16
OpDecorate %v BuiltIn VertexIndex
`)
	names := map[uint32]string{3: "counter"}
	tests := []struct {
		name string
		inst int
		want string
	}{
		{"Variable", 2, "%counter = OpVariable %2 Function"},
		{"MemoryAccess", 3, "%4 = OpLoad %1 %counter Volatile|Aligned 16"},
		{"BuiltIn", 4, "OpDecorate %counter BuiltIn VertexIndex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatInstruction(m.Instructions[tt.inst], names); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaskNames(t *testing.T) {
	tests := []struct {
		mask MemoryAccess
		want string
	}{
		{0, "None"},
		{MemoryAccessVolatile | MemoryAccessAligned, "Volatile|Aligned"},
		{MemoryAccessNontemporal | 0x8000, "Nontemporal|0x8000"},
	}
	for _, tt := range tests {
		if got := tt.mask.String(); got != tt.want {
			t.Errorf("MemoryAccess(%#x) = %q, want %q", uint32(tt.mask), got, tt.want)
		}
	}
}
