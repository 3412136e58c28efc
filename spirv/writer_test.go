package spirv

import (
	"encoding/binary"
	"testing"
)

func TestModuleBuilder_Header(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)
	builder.AddCapability(CapabilityShader)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	builder.AddTypeVoid()

	data := builder.Build()
	if len(data) < HeaderWords*4 {
		t.Fatalf("Module too small: got %d bytes", len(data))
	}

	tests := []struct {
		name string
		word int
		want uint32
	}{
		{"Magic", 0, MagicNumber},
		{"Version", 1, 1<<16 | 3<<8},
		{"Generator", 2, GeneratorID},
		{"Bound", 3, 2},
		{"Schema", 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := binary.LittleEndian.Uint32(data[tt.word*4:])
			if got != tt.want {
				t.Errorf("got 0x%08X, want 0x%08X", got, tt.want)
			}
		})
	}
}

func TestModuleBuilder_LayoutOrder(t *testing.T) {
	builder := NewModuleBuilder(Version1_0)

	// Added out of order on purpose.
	voidType := builder.AddTypeVoid()
	funcType := builder.AddTypeFunction(voidType)
	funcID := builder.AddFunction(funcType, voidType, 0)
	builder.AddLabel()
	builder.AddReturn()
	builder.AddFunctionEnd()
	builder.AddEntryPoint(ExecutionModelFragment, funcID, "main")
	builder.AddExecutionMode(funcID, ExecutionModeOriginUpperLeft)
	builder.AddName(funcID, "main")
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	builder.AddCapability(CapabilityShader)

	m, err := builder.Module()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []OpCode{
		OpCapability, OpMemoryModel, OpEntryPoint, OpExecutionMode, OpName,
		OpTypeVoid, OpTypeFunction, OpFunction, OpLabel, OpReturn, OpFunctionEnd,
	}
	if len(m.Instructions) != len(want) {
		t.Fatalf("got %d instructions, want %d", len(m.Instructions), len(want))
	}
	for i, in := range m.Instructions {
		if in.Opcode != want[i] {
			t.Errorf("instruction %d: got %s, want %s", i, in.Opcode, want[i])
		}
	}
	if got := m.Names()[funcID]; got != "main" {
		t.Errorf("name of %d = %q, want main", funcID, got)
	}
	if ep := m.Instructions[2]; ep.Word(1) != funcID || ep.StringOperand(2) != "main" {
		t.Errorf("entry point = %s", ep)
	}
}

func TestModuleBuilder_Float32(t *testing.T) {
	builder := NewModuleBuilder(Version1_0)
	floatType := builder.AddTypeFloat(32)
	constID := builder.AddConstantFloat32(floatType, 1.5)

	m, err := builder.Module()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	c := m.Instructions[1]
	if c.Opcode != OpConstant || c.ResultID != constID || c.TypeID != floatType {
		t.Fatalf("unexpected constant %s", c)
	}
	if c.Word(2) != 0x3FC00000 {
		t.Errorf("bits = 0x%08X, want 0x3FC00000", c.Word(2))
	}
}

func TestModuleBuilder_IDAllocation(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)

	id1 := builder.AllocID()
	id2 := builder.AllocID()
	id3 := builder.AllocID()

	if id1 >= id2 || id2 >= id3 {
		t.Error("IDs should be strictly increasing")
	}
	if id1 == 0 {
		t.Error("IDs should never be 0")
	}
}
