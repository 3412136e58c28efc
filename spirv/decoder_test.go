package spirv

import (
	"encoding/binary"
	"errors"
	"slices"
	"strings"
	"testing"
)

func minimalModule(t *testing.T) *ModuleBuilder {
	t.Helper()
	b := NewModuleBuilder(Version1_3)
	b.AddCapability(CapabilityShader)
	b.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	void := b.AddTypeVoid()
	fnType := b.AddTypeFunction(void)
	fn := b.AddFunction(fnType, void, 0)
	b.AddLabel()
	b.AddReturn()
	b.AddFunctionEnd()
	b.AddEntryPoint(ExecutionModelGLCompute, fn, "main")
	b.AddExecutionMode(fn, ExecutionModeLocalSize, 8, 8, 1)
	return b
}

func TestDecodeByteOrder(t *testing.T) {
	le := minimalModule(t).Build()
	be := make([]byte, len(le))
	for i := 0; i < len(le); i += 4 {
		binary.BigEndian.PutUint32(be[i:], binary.LittleEndian.Uint32(le[i:]))
	}

	for name, data := range map[string][]byte{"LittleEndian": le, "BigEndian": be} {
		t.Run(name, func(t *testing.T) {
			m, err := Decode(data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if m.Header.Version != Version1_3 {
				t.Errorf("version = %s", m.Header.Version)
			}
			if len(m.Instructions) != 10 {
				t.Fatalf("got %d instructions, want 10", len(m.Instructions))
			}
			mode := m.Instructions[3]
			if mode.Opcode != OpExecutionMode || mode.NumOperands() != 5 || mode.Word(2) != 8 {
				t.Errorf("execution mode = %s", mode)
			}
			if got := m.Instructions[1].WordOffset; got != HeaderWords+2 {
				t.Errorf("word offset = %d, want %d", got, HeaderWords+2)
			}
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	data := minimalModule(t).Build()
	m, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	if !slices.Equal(m.Words(), words) {
		t.Error("re-encoded words differ from the input")
	}
}

func TestDecodeErrors(t *testing.T) {
	valid := minimalModule(t).Build()
	header := valid[:HeaderWords*4]
	word := func(w uint32) []byte { return binary.LittleEndian.AppendUint32(nil, w) }

	tests := []struct {
		name   string
		data   []byte
		offset int
		substr string
	}{
		{"Unaligned", valid[:len(valid)-1], -1, "not a multiple of 4"},
		{"TooSmall", valid[:8], 0, "too small"},
		{"BadMagic", append(word(0xDEADBEEF), valid[4:]...), 0, "invalid magic number"},
		{"ZeroWordCount", append(slices.Clone(header), word(0)...), HeaderWords, "word count is zero"},
		{"PastEnd", append(slices.Clone(header), word(3<<16|uint32(OpCapability))...), HeaderWords, "runs past the end"},
		{"UnknownOpcode", append(slices.Clone(header), word(1<<16|0xFFF0)...), HeaderWords, "unknown opcode"},
		{"TrailingWords", append(slices.Clone(header), append(append(word(3<<16|uint32(OpCapability)), word(1)...), word(2)...)...),
			HeaderWords, "unexpected trailing words"},
		{"MissingOperand", append(slices.Clone(header), word(1<<16|uint32(OpCapability))...), HeaderWords, "missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			var serr *Error
			if !errors.As(err, &serr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if serr.WordOffset != tt.offset {
				t.Errorf("offset = %d, want %d", serr.WordOffset, tt.offset)
			}
			if !strings.Contains(serr.Error(), tt.substr) {
				t.Errorf("error %q does not contain %q", serr.Error(), tt.substr)
			}
		})
	}
}
