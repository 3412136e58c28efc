package validate

import (
	"slices"
	"testing"

	"github.com/gogpu/spvval/spirv"
)

const callGraphModule = "OpCapability Shader\n" +
	"OpMemoryModel Logical GLSL450\n" +
	"OpEntryPoint Fragment %frag \"frag\"\n" +
	"OpEntryPoint Vertex %vert \"vert\"\n" +
	"OpExecutionMode %frag OriginUpperLeft\n" +
	"OpName %frag \"frag\"\n" +
	"OpName %vert \"vert\"\n" +
	"OpName %shared \"shared\"\n" +
	"OpName %leaf \"leaf\"\n" +
	"OpName %ping \"ping\"\n" +
	"OpName %pong \"pong\"\n" +
	"OpName %orphan \"orphan\"\n" +
	"%void = OpTypeVoid\n" +
	"%fnty = OpTypeFunction %void\n" +
	"%frag = OpFunction %void None %fnty\n" +
	"%l1 = OpLabel\n" +
	"%c1 = OpFunctionCall %void %shared\n" +
	"OpReturn\n" +
	"OpFunctionEnd\n" +
	"%vert = OpFunction %void None %fnty\n" +
	"%l2 = OpLabel\n" +
	"%c2 = OpFunctionCall %void %shared\n" +
	"%c3 = OpFunctionCall %void %ping\n" +
	"OpReturn\n" +
	"OpFunctionEnd\n" +
	"%shared = OpFunction %void None %fnty\n" +
	"%l3 = OpLabel\n" +
	"%c4 = OpFunctionCall %void %leaf\n" +
	"OpReturn\n" +
	"OpFunctionEnd\n" +
	"%leaf = OpFunction %void None %fnty\n" +
	"%l4 = OpLabel\n" +
	"OpReturn\n" +
	"OpFunctionEnd\n" +
	"%ping = OpFunction %void None %fnty\n" +
	"%l5 = OpLabel\n" +
	"%c5 = OpFunctionCall %void %pong\n" +
	"OpReturn\n" +
	"OpFunctionEnd\n" +
	"%pong = OpFunction %void None %fnty\n" +
	"%l6 = OpLabel\n" +
	"%c6 = OpFunctionCall %void %ping\n" +
	"OpReturn\n" +
	"OpFunctionEnd\n" +
	"%orphan = OpFunction %void None %fnty\n" +
	"%l7 = OpLabel\n" +
	"OpReturn\n" +
	"OpFunctionEnd\n"

func TestReachability(t *testing.T) {
	r, ids := mustRegistry(t, callGraphModule)
	both := []spirv.ExecutionModel{spirv.ExecutionModelVertex, spirv.ExecutionModelFragment}
	vertex := []spirv.ExecutionModel{spirv.ExecutionModelVertex}
	fragment := []spirv.ExecutionModel{spirv.ExecutionModelFragment}

	tests := []struct {
		fn     string
		models []spirv.ExecutionModel
		eps    int
	}{
		{"frag", fragment, 1},
		{"vert", vertex, 1},
		{"shared", both, 2},
		{"leaf", both, 2},
		{"ping", vertex, 1},
		{"pong", vertex, 1},
		{"orphan", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			id := ids[tt.fn]
			if got := r.reachingModels(id); !slices.Equal(got, tt.models) {
				t.Errorf("reachingModels = %v, want %v", got, tt.models)
			}
			if got := len(r.reachingEntryPoints(id)); got != tt.eps {
				t.Errorf("reachingEntryPoints = %d, want %d", got, tt.eps)
			}
		})
	}
}

func TestReachabilityIsCached(t *testing.T) {
	r, _ := mustRegistry(t, callGraphModule)
	first := r.reachability()
	if r.reachability() != first {
		t.Error("reachability should be computed once")
	}
}
