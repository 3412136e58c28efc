package validate

import (
	"strings"
	"testing"
)

const vec4Globals = "%f32 = OpTypeFloat 32\n" +
	"%v4 = OpTypeVector %f32 4\n" +
	"%zero = OpConstant %f32 0\n" +
	"%c = OpConstantComposite %v4 %zero %zero %zero %zero\n"

// vertexShader is shader with a Vertex entry point listing ifaces.
func vertexShader(ifaces, decorations, globals, body string) string {
	return shader("OpEntryPoint Vertex %main \"main\" "+ifaces+"\n"+
		"OpName %main \"main\"\n"+decorations, globals, body)
}

// fragmentShader is shader with an OriginUpperLeft Fragment entry point.
func fragmentShader(ifaces, modes, decorations, globals, body string) string {
	return shader("OpEntryPoint Fragment %main \"main\" "+ifaces+"\n"+
		"OpExecutionMode %main OriginUpperLeft\n"+modes+
		"OpName %main \"main\"\n"+decorations, globals, body)
}

func TestBuiltInPosition(t *testing.T) {
	tests := []struct {
		name    string
		globals string
		body    string
		kind    ErrorKind
		substr  string
	}{
		{
			name:    "InputInVertex",
			globals: "%p = OpTypePointer Input %v4\n%pos = OpVariable %p Input\n",
			body:    "%x = OpLoad %v4 %pos\n",
			kind:    ErrExecutionModel,
			substr:  "doesn't allow BuiltIn Position to be used for variables with Input storage class if execution model is Vertex",
		},
		{
			name:    "WrongShape",
			globals: "%v3 = OpTypeVector %f32 3\n%p = OpTypePointer Output %v3\n%pos = OpVariable %p Output\n",
			kind:    ErrType,
			substr:  "BuiltIn Position variable needs to be a 4-component 32-bit float vector",
		},
		{
			name:    "PrivateStorage",
			globals: "%p = OpTypePointer Private %v4\n%pos = OpVariable %p Private\n",
			kind:    ErrStorageClass,
			substr:  "allows BuiltIn Position to be only used for variables with Input or Output storage class",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := vertexShader("%pos", "OpDecorate %pos BuiltIn Position\n", vec4Globals+tt.globals, tt.body)
			expectError(t, src, vulkanOptions(), tt.kind, tt.substr)
		})
	}
}

func TestBuiltInPositionValid(t *testing.T) {
	src := vertexShader("%pos", "OpDecorate %pos BuiltIn Position\n",
		vec4Globals+"%p = OpTypePointer Output %v4\n%pos = OpVariable %p Output\n",
		"OpStore %pos %c\n")
	expectValid(t, src, vulkanOptions())
}

func TestBuiltInSkippedOutsideVulkan(t *testing.T) {
	src := vertexShader("%pos", "OpDecorate %pos BuiltIn Position\n",
		vec4Globals+"%p = OpTypePointer Input %v4\n%pos = OpVariable %p Input\n",
		"%x = OpLoad %v4 %pos\n")
	expectValid(t, src, universalOptions())
}

func TestBuiltInChainNamesOrigin(t *testing.T) {
	src := vertexShader("%pos", "OpName %pos \"gl_Position\"\nOpDecorate %pos BuiltIn Position\n",
		vec4Globals+"%p = OpTypePointer Input %v4\n%pos = OpVariable %p Input\n",
		"%x = OpLoad %v4 %pos\n")
	err := expectError(t, src, vulkanOptions(), ErrExecutionModel, "is decorated with BuiltIn Position")
	for _, want := range []string{"[%gl_Position]", "referenced by OpLoad", "in function", "[%main]"} {
		if !strings.Contains(err.Message, want) {
			t.Errorf("message %q does not contain %q", err.Message, want)
		}
	}
}

func TestBuiltInPerVertexBlock(t *testing.T) {
	decorations := "OpMemberDecorate %pv 0 BuiltIn Position\n" +
		"OpMemberDecorate %pv 1 BuiltIn PointSize\n" +
		"OpDecorate %pv Block\n"
	globals := func(sc string) string {
		return vec4Globals +
			"%i32 = OpTypeInt 32 1\n" +
			"%i0 = OpConstant %i32 0\n" +
			"%pv = OpTypeStruct %v4 %f32\n" +
			"%ppv = OpTypePointer " + sc + " %pv\n" +
			"%pov4 = OpTypePointer " + sc + " %v4\n" +
			"%out = OpVariable %ppv " + sc + "\n"
	}

	t.Run("Output", func(t *testing.T) {
		src := vertexShader("%out", decorations, globals("Output"),
			"%ptr = OpAccessChain %pov4 %out %i0\nOpStore %ptr %c\n")
		expectValid(t, src, vulkanOptions())
	})
	t.Run("InputInVertex", func(t *testing.T) {
		src := vertexShader("%out", decorations, globals("Input"),
			"%ptr = OpAccessChain %pov4 %out %i0\n%x = OpLoad %v4 %ptr\n")
		err := expectError(t, src, vulkanOptions(), ErrExecutionModel,
			"doesn't allow BuiltIn Position to be used for variables with Input storage class if execution model is Vertex")
		if !strings.Contains(err.Message, "on member 0") {
			t.Errorf("message %q does not name the member", err.Message)
		}
	})
}

func TestBuiltInStructMembers(t *testing.T) {
	decorations := "OpMemberDecorate %pv 0 BuiltIn Position\n"
	globals := vec4Globals + "%pv = OpTypeStruct %v4 %f32\n"
	src := vertexShader("", decorations, globals, "")

	for _, opts := range []Options{universalOptions(), vulkanOptions()} {
		t.Run(opts.Env.String(), func(t *testing.T) {
			expectError(t, src, opts, ErrInvalidModule,
				"all members of that structure type must also be decorated with BuiltIn")
		})
	}

	whole := vertexShader("", "OpDecorate %pv BuiltIn Position\n", globals, "")
	expectError(t, whole, universalOptions(), ErrInvalidModule, "must be applied to its members")
}

func TestBuiltInFragDepth(t *testing.T) {
	globals := "%f32 = OpTypeFloat 32\n" +
		"%p = OpTypePointer Output %f32\n" +
		"%depth = OpVariable %p Output\n" +
		"%zero = OpConstant %f32 0\n"
	decorations := "OpDecorate %depth BuiltIn FragDepth\n"

	src := fragmentShader("%depth", "", decorations, globals, "OpStore %depth %zero\n")
	expectError(t, src, vulkanOptions(), ErrExecutionModel, "requires DepthReplacing execution mode")

	src = fragmentShader("%depth", "OpExecutionMode %main DepthReplacing\n", decorations, globals, "OpStore %depth %zero\n")
	expectValid(t, src, vulkanOptions())
}

func TestBuiltInFragCoordFromVertexHelper(t *testing.T) {
	globals := vec4Globals +
		"%p = OpTypePointer Input %v4\n" +
		"%coord = OpVariable %p Input\n"
	src := vertexShader("%coord", "OpDecorate %coord BuiltIn FragCoord\n", globals,
		"%r = OpFunctionCall %void %helper\n") +
		"%helper = OpFunction %void None %fnty\n" +
		"%hentry = OpLabel\n" +
		"%x = OpLoad %v4 %coord\n" +
		"OpReturn\n" +
		"OpFunctionEnd\n"
	expectError(t, src, vulkanOptions(), ErrExecutionModel,
		"allows BuiltIn FragCoord to be used only with Fragment execution models")
}

func TestBuiltInClipCullDistance(t *testing.T) {
	globals := func(sc string) string {
		return vec4Globals +
			"%u32 = OpTypeInt 32 0\n" +
			"%two = OpConstant %u32 2\n" +
			"%arr = OpTypeArray %f32 %two\n" +
			"%parr = OpTypePointer " + sc + " %arr\n" +
			"%clip = OpVariable %parr " + sc + "\n"
	}
	tests := []struct {
		builtIn  string
		fragment bool
		storage  string
		substr   string // empty when valid
	}{
		{"ClipDistance", false, "Input", "doesn't allow BuiltIn ClipDistance to be used for variables with Input storage class if execution model is Vertex"},
		{"CullDistance", false, "Input", "doesn't allow BuiltIn CullDistance to be used for variables with Input storage class if execution model is Vertex"},
		{"ClipDistance", true, "Output", "doesn't allow BuiltIn ClipDistance to be used for variables with Output storage class if execution model is Fragment"},
		{"CullDistance", true, "Output", "doesn't allow BuiltIn CullDistance to be used for variables with Output storage class if execution model is Fragment"},
		{"ClipDistance", false, "Output", ""},
		{"CullDistance", true, "Input", ""},
	}
	for _, tt := range tests {
		stage := "Vertex"
		if tt.fragment {
			stage = "Fragment"
		}
		t.Run(tt.builtIn+"/"+stage+"/"+tt.storage, func(t *testing.T) {
			decorations := "OpDecorate %clip BuiltIn " + tt.builtIn + "\n"
			body := "%x = OpLoad %arr %clip\n"
			src := vertexShader("%clip", decorations, globals(tt.storage), body)
			if tt.fragment {
				src = fragmentShader("%clip", "", decorations, globals(tt.storage), body)
			}
			if tt.substr == "" {
				expectValid(t, src, vulkanOptions())
				return
			}
			expectError(t, src, vulkanOptions(), ErrExecutionModel, tt.substr)
		})
	}
}

func TestBuiltInSpecConstantChain(t *testing.T) {
	globals := vec4Globals +
		"%u32 = OpTypeInt 32 0\n" +
		"%v3 = OpTypeVector %u32 3\n" +
		"%one = OpSpecConstant %u32 1\n" +
		"%ws = OpSpecConstantComposite %v3 %one %one %one\n" +
		"%x = OpSpecConstantOp %u32 CompositeExtract %ws 0\n"
	decorations := "OpDecorate %ws BuiltIn WorkgroupSize\n"
	body := "%y = OpIAdd %u32 %x %x\n"

	src := vertexShader("", decorations, globals, body)
	err := expectError(t, src, vulkanOptions(), ErrExecutionModel,
		"allows BuiltIn WorkgroupSize to be used only with")
	for _, want := range []string{"found execution model Vertex. ID", "reached through ID", "(OpSpecConstantOp)", "referenced by OpIAdd"} {
		if !strings.Contains(err.Message, want) {
			t.Errorf("message %q does not contain %q", err.Message, want)
		}
	}

	src = shader("OpEntryPoint GLCompute %main \"main\"\n"+
		"OpExecutionMode %main LocalSize 1 1 1\n"+decorations, globals, body)
	expectValid(t, src, vulkanOptions())
}

func TestBuiltInOpenCLOnly(t *testing.T) {
	globals := "%u32 = OpTypeInt 32 0\n" +
		"%v3 = OpTypeVector %u32 3\n" +
		"%p = OpTypePointer Input %v3\n" +
		"%gs = OpVariable %p Input\n"
	src := shader("OpEntryPoint GLCompute %main \"main\" %gs\n"+
		"OpExecutionMode %main LocalSize 1 1 1\n"+
		"OpDecorate %gs BuiltIn GlobalSize\n", globals, "")
	expectError(t, src, vulkanOptions(), ErrInvalidModule, "doesn't allow BuiltIn GlobalSize to be used")
}
