package spirv

import (
	"strings"
	"testing"
)

func TestOpcodeClassification(t *testing.T) {
	tests := []struct {
		op         OpCode
		result     bool
		resultType bool
		constant   bool
		atomic     bool
	}{
		{OpCapability, false, false, false, false},
		{OpTypeInt, true, false, false, false},
		{OpConstant, true, true, true, false},
		{OpSpecConstantOp, true, true, true, false},
		{OpStore, false, false, false, false},
		{OpAtomicIAdd, true, true, false, true},
		{OpAtomicStore, false, false, false, true},
		{OpAtomicFlagClear, false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			if !tt.op.Known() {
				t.Fatal("opcode has no grammar entry")
			}
			if got := tt.op.HasResult(); got != tt.result {
				t.Errorf("HasResult = %v, want %v", got, tt.result)
			}
			if got := tt.op.HasResultType(); got != tt.resultType {
				t.Errorf("HasResultType = %v, want %v", got, tt.resultType)
			}
			if got := tt.op.IsConstant(); got != tt.constant {
				t.Errorf("IsConstant = %v, want %v", got, tt.constant)
			}
			if got := tt.op.IsAtomic(); got != tt.atomic {
				t.Errorf("IsAtomic = %v, want %v", got, tt.atomic)
			}
		})
	}
}

func TestGrammarNamesRoundTrip(t *testing.T) {
	for op, info := range grammar {
		if !strings.HasPrefix(info.name, "Op") {
			t.Errorf("opcode %d has name %q", uint16(op), info.name)
		}
		if opcodesByName[info.name] != op {
			t.Errorf("%s does not map back to %d", info.name, uint16(op))
		}
	}
}

func TestUnknownOpcode(t *testing.T) {
	op := OpCode(0xFFF0)
	if op.Known() {
		t.Fatal("0xFFF0 should not be known")
	}
	if got := op.String(); got != "Op65520" {
		t.Errorf("String = %q", got)
	}
	if _, err := ParseInstruction(op, nil); err == nil {
		t.Error("ParseInstruction accepted an unknown opcode")
	}
}

func TestForEachID(t *testing.T) {
	m := mustAssemble(t, `
%u32 = OpTypeInt 32 0
%p = OpTypePointer Function %u32
%v = OpVariable %p Function
%x = OpLoad %u32 %v Aligned 4
OpStore %v %x MakePointerAvailable %u32
`)
	tests := []struct {
		name string
		inst int
		want []uint32
	}{
		{"Load", 3, []uint32{1, 3}},
		{"StoreWithScope", 4, []uint32{3, 4, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []uint32
			m.Instructions[tt.inst].ForEachID(func(_ int, id uint32) { got = append(got, id) })
			if len(got) != len(tt.want) {
				t.Fatalf("ids = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ids = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestEnumFallback(t *testing.T) {
	if got := Capability(99999).String(); got != "99999" {
		t.Errorf("unknown capability = %q", got)
	}
	if got := ExecutionModelFragment.String(); got != "Fragment" {
		t.Errorf("Fragment = %q", got)
	}
	if got := Version1_4.String(); got != "1.4" {
		t.Errorf("version = %q", got)
	}
	if VersionFromWord(Version1_5.Word()) != Version1_5 {
		t.Error("version word does not round trip")
	}
}
