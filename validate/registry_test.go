package validate

import (
	"testing"

	"github.com/gogpu/spvval/spirv"
)

func TestRegistryIDRules(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		kind   ErrorKind
		substr string
	}{
		{
			name: "DuplicateDefinition",
			src: "OpCapability Shader\n" +
				"OpMemoryModel Logical GLSL450\n" +
				"%7 = OpTypeVoid\n" +
				"%7 = OpTypeBool\n",
			kind:   ErrDuplicateDefinition,
			substr: "has already been defined",
		},
		{
			name: "NeverDefined",
			src: "OpCapability Shader\n" +
				"OpMemoryModel Logical GLSL450\n" +
				"OpName %ghost \"ghost\"\n" +
				"%void = OpTypeVoid\n",
			kind:   ErrUnresolvedForwardReference,
			substr: "[%ghost]' has not been defined",
		},
		{
			name: "UseBeforeDefinition",
			src: computeShader(
				"%u32 = OpTypeInt 32 0\n"+
					"%c1 = OpConstant %u32 1\n",
				"%a = OpIAdd %u32 %b %c1\n"+
					"%b = OpIAdd %u32 %c1 %c1\n"),
			kind:   ErrStructural,
			substr: "is used by OpIAdd before its definition",
		},
		{
			name: "ResultTypeNotAType",
			src: computeShader(
				"%u32 = OpTypeInt 32 0\n"+
					"%c1 = OpConstant %u32 1\n",
				"%a = OpIAdd %c1 %c1 %c1\n"),
			kind:   ErrType,
			substr: "is not a type",
		},
		{
			name: "MemberDecorateOutOfRange",
			src: "OpCapability Shader\n" +
				"OpMemoryModel Logical GLSL450\n" +
				"OpMemberDecorate %S 2 Offset 0\n" +
				"%f32 = OpTypeFloat 32\n" +
				"%S = OpTypeStruct %f32 %f32\n",
			kind:   ErrStructural,
			substr: "Index 2 provided in OpMemberDecorate",
		},
		{
			name: "MemberDecorateNonStruct",
			src: "OpCapability Shader\n" +
				"OpMemoryModel Logical GLSL450\n" +
				"OpMemberDecorate %f32 0 Offset 0\n" +
				"%f32 = OpTypeFloat 32\n",
			kind:   ErrStructural,
			substr: "is not a struct type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.src, universalOptions(), tt.kind, tt.substr)
		})
	}
}

func TestRegistryBound(t *testing.T) {
	m := mustAssemble(t, computeShader("", ""))
	m.Header.Bound = 3
	err := Validate(m, universalOptions())
	verr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %v", err)
	}
	if verr.Kind != ErrStructural {
		t.Errorf("kind = %s, want Structural", verr.Kind)
	}
}

func TestRegistryForwardReferencesAllowed(t *testing.T) {
	// Entry points, names, decorations, calls and pointer types may all
	// name ids defined later.
	src := "OpCapability Shader\n" +
		"OpMemoryModel Logical GLSL450\n" +
		"OpEntryPoint GLCompute %main \"main\"\n" +
		"OpExecutionMode %main LocalSize 1 1 1\n" +
		"OpName %helper \"helper\"\n" +
		"OpDecorate %S Block\n" +
		"%void = OpTypeVoid\n" +
		"%fnty = OpTypeFunction %void\n" +
		"%f32 = OpTypeFloat 32\n" +
		"%S = OpTypeStruct %f32\n" +
		"%main = OpFunction %void None %fnty\n" +
		"%entry = OpLabel\n" +
		"%r = OpFunctionCall %void %helper\n" +
		"OpBranch %next\n" +
		"%next = OpLabel\n" +
		"OpReturn\n" +
		"OpFunctionEnd\n" +
		"%helper = OpFunction %void None %fnty\n" +
		"%hentry = OpLabel\n" +
		"OpReturn\n" +
		"OpFunctionEnd\n"
	expectValid(t, src, universalOptions())
}

func TestRegistryTables(t *testing.T) {
	src := "OpCapability Shader\n" +
		"OpCapability Int64Atomics\n" +
		"OpExtension \"SPV_KHR_vulkan_memory_model\"\n" +
		"OpMemoryModel Logical GLSL450\n" +
		"OpEntryPoint Fragment %main \"main\" %color\n" +
		"OpExecutionMode %main OriginUpperLeft\n" +
		"OpName %main \"main\"\n" +
		"OpName %color \"color\"\n" +
		"OpName %helper \"helper\"\n" +
		"OpDecorate %color Location 0\n" +
		"%void = OpTypeVoid\n" +
		"%fnty = OpTypeFunction %void\n" +
		"%f32 = OpTypeFloat 32\n" +
		"%v4f = OpTypeVector %f32 4\n" +
		"%out = OpTypePointer Output %v4f\n" +
		"%color = OpVariable %out Output\n" +
		"%main = OpFunction %void None %fnty\n" +
		"%entry = OpLabel\n" +
		"%r1 = OpFunctionCall %void %helper\n" +
		"%r2 = OpFunctionCall %void %helper\n" +
		"OpReturn\n" +
		"OpFunctionEnd\n" +
		"%helper = OpFunction %void None %fnty\n" +
		"%hentry = OpLabel\n" +
		"OpReturn\n" +
		"OpFunctionEnd\n"
	r, ids := mustRegistry(t, src)

	if !r.capabilities.has(spirv.CapabilityShader) || !r.capabilities.has(spirv.CapabilityMatrix) {
		t.Error("Shader should declare itself and imply Matrix")
	}
	if len(r.extensions) != 1 || r.extensions[0] != "SPV_KHR_vulkan_memory_model" {
		t.Errorf("extensions = %v", r.extensions)
	}
	if r.memoryModel != spirv.MemoryModelGLSL450 || r.addressing != spirv.AddressingModelLogical {
		t.Errorf("memory model = %s %s", r.addressing, r.memoryModel)
	}
	if len(r.entryPoints) != 1 {
		t.Fatalf("entryPoints = %d, want 1", len(r.entryPoints))
	}
	ep := r.entryPoints[0]
	if ep.name != "main" || ep.model != spirv.ExecutionModelFragment || ep.function != ids["main"] {
		t.Errorf("entry point = %+v", ep)
	}
	if len(ep.interfaces) != 1 || ep.interfaces[0] != ids["color"] {
		t.Errorf("interfaces = %v", ep.interfaces)
	}
	if !r.hasExecutionMode(ids["main"], spirv.ExecutionModeOriginUpperLeft) {
		t.Error("OriginUpperLeft not recorded")
	}
	if len(r.functionOrder) != 2 {
		t.Fatalf("functionOrder = %v", r.functionOrder)
	}
	mainFn := r.functions[ids["main"]]
	if len(mainFn.callees) != 1 || mainFn.callees[0] != ids["helper"] {
		t.Errorf("callees = %v, want [helper] once", mainFn.callees)
	}
	if len(mainFn.blocks) != 1 {
		t.Errorf("blocks = %v", mainFn.blocks)
	}
	if got := len(r.uses[ids["helper"]]); got != 3 {
		t.Errorf("uses of helper = %d, want 3 (OpName and two calls)", got)
	}
	for _, e := range r.entries {
		if e.inst.Opcode == spirv.OpFunctionCall && e.function != ids["main"] {
			t.Errorf("call recorded in function %d", e.function)
		}
	}
	if r.opcode(ids["color"]) != spirv.OpVariable {
		t.Errorf("opcode(color) = %s", r.opcode(ids["color"]))
	}
	if r.opcode(9999) != spirv.OpNop {
		t.Error("unknown ids should report OpNop")
	}
}
