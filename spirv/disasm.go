// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Disassemble renders a module as .spvasm text. Ids carry their OpName debug
// names where those are unique and usable as identifiers.
func Disassemble(m *Module) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "; SPIR-V\n; Version: %s\n; Generator: 0x%08x\n; Bound: %d\n; Schema: %d\n",
		m.Header.Version, m.Header.Generator, m.Header.Bound, m.Header.Schema)

	f := formatter{names: friendlyNames(m.Names()), widths: newWidthTracker()}
	for _, in := range m.Instructions {
		f.widths.observe(in)
		sb.WriteString(f.line(in))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatInstruction renders a single instruction. names may be nil.
func FormatInstruction(in *Instruction, names map[uint32]string) string {
	f := formatter{names: friendlyNames(names)}
	return strings.TrimSpace(f.line(in))
}

type formatter struct {
	names  map[uint32]string
	widths *widthTracker
}

func (f *formatter) id(n uint32) string {
	if name, ok := f.names[n]; ok {
		return "%" + name
	}
	return "%" + strconv.FormatUint(uint64(n), 10)
}

// line pads the result column the way spirv-dis does.
func (f *formatter) line(in *Instruction) string {
	var lhs string
	if in.ResultID != 0 {
		lhs = f.id(in.ResultID) + " = "
	}
	const column = 15
	if len(lhs) < column {
		lhs = strings.Repeat(" ", column-len(lhs)) + lhs
	}

	var sb strings.Builder
	sb.WriteString(lhs)
	sb.WriteString(in.Opcode.String())
	for i, o := range in.Operands {
		if o.Kind == OperandResultID {
			continue
		}
		sb.WriteByte(' ')
		sb.WriteString(f.operand(in, i))
	}
	return sb.String()
}

func (f *formatter) operand(in *Instruction, i int) string {
	o := in.Operands[i]
	w := in.Words[o.Offset]
	switch o.Kind {
	case OperandResultType, OperandID, OperandResultID:
		return f.id(w)
	case OperandLiteralString:
		return strconv.Quote(in.StringOperand(i))
	case OperandLiteralContext:
		return f.number(in, i)
	case OperandSpecConstantOpNumber:
		return strings.TrimPrefix(OpCode(w).String(), "Op")
	case OperandLiteralInteger, OperandExtInstNumber:
		return strconv.FormatUint(uint64(w), 10)
	}
	names, mask := enumTable(o.Kind)
	if mask {
		return maskName(names, w)
	}
	if names != nil {
		return enumName(names, w)
	}
	return strconv.FormatUint(uint64(w), 10)
}

// number formats a context-dependent literal using the type of the
// instruction when it is known.
func (f *formatter) number(in *Instruction, i int) string {
	v := in.Literal(i)
	if f.widths == nil {
		return strconv.FormatUint(v, 10)
	}
	typeID := in.TypeID
	if in.Opcode == OpSwitch {
		typeID = f.widths.values[in.Word(0)]
	}
	nt, ok := f.widths.types[typeID]
	switch {
	case !ok:
		return strconv.FormatUint(v, 10)
	case nt.float && nt.width == 64:
		return strconv.FormatFloat(math.Float64frombits(v), 'g', -1, 64)
	case nt.float && nt.width == 32:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(v))), 'g', -1, 32)
	case nt.signed && nt.width == 64:
		return strconv.FormatInt(int64(v), 10)
	case nt.signed:
		return strconv.FormatInt(int64(int32(uint32(v))), 10)
	}
	return strconv.FormatUint(v, 10)
}

// friendlyNames keeps debug names that are identifiers and unique.
func friendlyNames(names map[uint32]string) map[uint32]string {
	seen := make(map[string]int, len(names))
	for _, n := range names {
		seen[n]++
	}
	out := make(map[uint32]string, len(names))
	for id, n := range names {
		if seen[n] == 1 && isIdentifier(n) {
			out[id] = n
		}
	}
	return out
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '_' && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
