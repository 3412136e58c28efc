package validate

import "testing"

func TestEntryPointFunction(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		kind   ErrorKind
		substr string
	}{
		{
			name: "NonVoidReturn",
			src: "OpCapability Shader\n" +
				"OpMemoryModel Logical GLSL450\n" +
				"OpEntryPoint GLCompute %main \"main\"\n" +
				"OpExecutionMode %main LocalSize 1 1 1\n" +
				"%f32 = OpTypeFloat 32\n" +
				"%fnty = OpTypeFunction %f32\n" +
				"%zero = OpConstant %f32 0\n" +
				"%main = OpFunction %f32 None %fnty\n" +
				"%entry = OpLabel\n" +
				"OpReturnValue %zero\n" +
				"OpFunctionEnd\n",
			kind:   ErrType,
			substr: "function return type is not void",
		},
		{
			name: "Parameters",
			src: "OpCapability Shader\n" +
				"OpMemoryModel Logical GLSL450\n" +
				"OpEntryPoint GLCompute %main \"main\"\n" +
				"OpExecutionMode %main LocalSize 1 1 1\n" +
				"%void = OpTypeVoid\n" +
				"%f32 = OpTypeFloat 32\n" +
				"%fnty = OpTypeFunction %void %f32\n" +
				"%main = OpFunction %void None %fnty\n" +
				"%arg = OpFunctionParameter %f32\n" +
				"%entry = OpLabel\n" +
				"OpReturn\n" +
				"OpFunctionEnd\n",
			kind:   ErrType,
			substr: "function parameter count is not zero",
		},
		{
			name:   "NotAFunction",
			src:    shader("OpEntryPoint GLCompute %fnty \"main\"\n", "", ""),
			kind:   ErrType,
			substr: "is not a function",
		},
		{
			name: "DuplicateNameAndModel",
			src: shader("OpEntryPoint GLCompute %main \"main\"\n"+
				"OpEntryPoint GLCompute %main \"main\"\n"+
				"OpExecutionMode %main LocalSize 1 1 1\n", "", ""),
			kind:   ErrInvalidModule,
			substr: "2 Entry points cannot share the same name and ExecutionMode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, tt.src, universalOptions(), tt.kind, tt.substr)
		})
	}
}

func TestEntryPointSameNameDifferentModels(t *testing.T) {
	src := shader("OpEntryPoint Vertex %main \"main\"\n"+
		"OpEntryPoint Fragment %frag \"main\"\n"+
		"OpExecutionMode %frag OriginUpperLeft\n", "", "") +
		"%frag = OpFunction %void None %fnty\n" +
		"%fentry = OpLabel\n" +
		"OpReturn\n" +
		"OpFunctionEnd\n"
	expectValid(t, src, universalOptions())
	expectValid(t, src, vulkanOptions())
}

func TestExecutionModes(t *testing.T) {
	tests := []struct {
		name   string
		header string
		opts   Options
		kind   ErrorKind
		substr string
	}{
		{
			name: "NotAnEntryPoint",
			header: "OpEntryPoint GLCompute %main \"main\"\n" +
				"OpExecutionMode %main LocalSize 1 1 1\n" +
				"OpExecutionMode %helper LocalSize 1 1 1\n",
			opts:   universalOptions(),
			kind:   ErrExecutionModel,
			substr: "is not the Entry Point operand of an OpEntryPoint",
		},
		{
			name: "FragmentModeOnVertex",
			header: "OpEntryPoint Vertex %main \"main\"\n" +
				"OpExecutionMode %main OriginUpperLeft\n",
			opts:   universalOptions(),
			kind:   ErrExecutionModel,
			substr: "Execution mode OriginUpperLeft can only be used with the Fragment execution models",
		},
		{
			name:   "FragmentWithoutOrigin",
			header: "OpEntryPoint Fragment %main \"main\"\n",
			opts:   universalOptions(),
			kind:   ErrExecutionModel,
			substr: "require exactly one of OriginUpperLeft or OriginLowerLeft",
		},
		{
			name: "FragmentWithBothOrigins",
			header: "OpEntryPoint Fragment %main \"main\"\n" +
				"OpExecutionMode %main OriginUpperLeft\n" +
				"OpExecutionMode %main OriginLowerLeft\n",
			opts:   universalOptions(),
			kind:   ErrExecutionModel,
			substr: "require exactly one of OriginUpperLeft or OriginLowerLeft",
		},
		{
			name: "TwoDepthModes",
			header: "OpEntryPoint Fragment %main \"main\"\n" +
				"OpExecutionMode %main OriginUpperLeft\n" +
				"OpExecutionMode %main DepthGreater\n" +
				"OpExecutionMode %main DepthLess\n",
			opts:   universalOptions(),
			kind:   ErrExecutionModel,
			substr: "at most one of DepthGreater, DepthLess or DepthUnchanged",
		},
		{
			name: "VulkanOriginLowerLeft",
			header: "OpEntryPoint Fragment %main \"main\"\n" +
				"OpExecutionMode %main OriginLowerLeft\n",
			opts:   vulkanOptions(),
			kind:   ErrExecutionModel,
			substr: "OriginLowerLeft execution mode must not be used",
		},
		{
			name: "VulkanPixelCenterInteger",
			header: "OpEntryPoint Fragment %main \"main\"\n" +
				"OpExecutionMode %main OriginUpperLeft\n" +
				"OpExecutionMode %main PixelCenterInteger\n",
			opts:   vulkanOptions(),
			kind:   ErrExecutionModel,
			substr: "PixelCenterInteger execution mode must not be used",
		},
		{
			name: "LocalSizeIDWithoutID",
			header: "OpEntryPoint GLCompute %main \"main\"\n" +
				"OpExecutionMode %main LocalSizeId 1 1 1\n",
			opts:   universalOptions(),
			kind:   ErrInvalidModule,
			substr: "LocalSizeId Execution Mode must be used with OpExecutionModeId",
		},
		{
			name: "ExecutionModeIDBefore12",
			header: "OpEntryPoint GLCompute %main \"main\"\n" +
				"OpExecutionModeId %main LocalSizeId %one %one %one\n",
			opts:   universalOptions(),
			kind:   ErrInvalidModule,
			substr: "OpExecutionModeId requires SPIR-V 1.2 or later",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := shader(tt.header, "%u32 = OpTypeInt 32 0\n%one = OpConstant %u32 1\n", "") +
				"%helper = OpFunction %void None %fnty\n" +
				"%hentry = OpLabel\n" +
				"OpReturn\n" +
				"OpFunctionEnd\n"
			expectError(t, src, tt.opts, tt.kind, tt.substr)
		})
	}
}

func TestLocalSizeID(t *testing.T) {
	modeID := func(mode string) string {
		return "; Version: 1.2\n" + shader("OpEntryPoint GLCompute %main \"main\"\n"+
			"OpExecutionModeId %main "+mode+"\n",
			"%u32 = OpTypeInt 32 0\n%one = OpConstant %u32 1\n", "")
	}
	src := modeID("LocalSizeId %one %one %one")

	vulkan11 := DefaultOptions()
	vulkan11.Env = EnvVulkan1_1
	expectError(t, src, vulkan11, ErrExecutionModel, "LocalSizeId execution mode is not allowed by the current environment")

	vulkan11.AllowLocalSizeID = true
	expectValid(t, src, vulkan11)

	vulkan13 := DefaultOptions()
	vulkan13.Env = EnvVulkan1_3
	expectValid(t, src, vulkan13)
	expectValid(t, src, universalOptions())

	expectError(t, modeID("LocalSize %one %one %one"), universalOptions(), ErrInvalidModule,
		"OpExecutionModeId is only valid when the Mode operand is an execution mode that takes Extra Operands that are id operands")
}

func TestVersionAgainstEnvironment(t *testing.T) {
	src := "; Version: 1.3\n" + computeShader("", "")
	expectError(t, src, vulkanOptions(), ErrInvalidModule, "Invalid SPIR-V binary version 1.3 for target environment vulkan1.0")

	vulkan11 := DefaultOptions()
	vulkan11.Env = EnvVulkan1_1
	expectValid(t, src, vulkan11)
}

func TestMemoryModel(t *testing.T) {
	module := func(caps, model, header string) string {
		return caps +
			"OpMemoryModel " + model + "\n" +
			header +
			"%void = OpTypeVoid\n" +
			"%fnty = OpTypeFunction %void\n" +
			"%main = OpFunction %void None %fnty\n" +
			"%entry = OpLabel\n" +
			"OpReturn\n" +
			"OpFunctionEnd\n"
	}
	compute := "OpEntryPoint GLCompute %main \"main\"\nOpExecutionMode %main LocalSize 1 1 1\n"
	vulkanCaps := "OpCapability Shader\nOpCapability VulkanMemoryModel\n"

	webgpu := DefaultOptions()
	webgpu.Env = EnvWebGPU0

	t.Run("VulkanModelWithoutCapability", func(t *testing.T) {
		src := module("OpCapability Shader\n", "Logical Vulkan", compute)
		expectError(t, src, universalOptions(), ErrCapability, "requires the VulkanMemoryModel capability")
	})
	t.Run("VulkanModel", func(t *testing.T) {
		expectValid(t, module(vulkanCaps, "Logical Vulkan", compute), vulkanOptions())
	})
	t.Run("VulkanSimpleModel", func(t *testing.T) {
		src := module("OpCapability Shader\n", "Logical Simple", compute)
		expectError(t, src, vulkanOptions(), ErrInvalidModule, "Memory model must be GLSL450 or VulkanKHR")
	})
	t.Run("WebGPUGLSL450", func(t *testing.T) {
		src := module("OpCapability Shader\n", "Logical GLSL450", compute)
		expectError(t, src, webgpu, ErrInvalidModule, "Memory model must be VulkanKHR for WebGPU environment")
	})
	t.Run("WebGPUValid", func(t *testing.T) {
		expectValid(t, module(vulkanCaps, "Logical Vulkan", compute), webgpu)
	})
	t.Run("WebGPUUndef", func(t *testing.T) {
		src := module(vulkanCaps, "Logical Vulkan", compute+"%u32 = OpTypeInt 32 0\n%u = OpUndef %u32\n")
		expectError(t, src, webgpu, ErrInvalidModule, "OpUndef is disallowed")
	})
	t.Run("WebGPUMode", func(t *testing.T) {
		src := module(vulkanCaps, "Logical Vulkan", "OpEntryPoint Fragment %main \"main\"\n"+
			"OpExecutionMode %main OriginUpperLeft\nOpExecutionMode %main PixelCenterInteger\n")
		expectError(t, src, webgpu, ErrExecutionModel, "Execution mode PixelCenterInteger is not allowed in the WebGPU environment")
	})
}
