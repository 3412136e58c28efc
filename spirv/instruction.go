// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"fmt"
	"strings"
)

// Operand locates one logical operand inside Instruction.Words.
type Operand struct {
	Kind   OperandKind
	Offset int // index of the first word in Instruction.Words
	Count  int // number of words
}

// Instruction represents a decoded SPIR-V instruction.
type Instruction struct {
	Opcode OpCode
	Words  []uint32 // operand words, the opcode/word-count word excluded

	// Filled in by ParseInstruction.
	TypeID   uint32
	ResultID uint32
	Operands []Operand

	// WordOffset is the position of the instruction's first word in the
	// module binary, or -1 for instructions built in memory.
	WordOffset int
}

// ParseInstruction splits words into operands according to the opcode grammar.
// Context-dependent literals of OpSwitch are assumed to be one word wide.
func ParseInstruction(op OpCode, words []uint32) (*Instruction, error) {
	return parseInstruction(op, words, nil)
}

func parseInstruction(op OpCode, words []uint32, widths *widthTracker) (*Instruction, error) {
	info, ok := grammar[op]
	if !ok {
		return nil, fmt.Errorf("unknown opcode %d", uint16(op))
	}
	inst := &Instruction{Opcode: op, Words: words, WordOffset: -1}
	c := operandCursor{inst: inst, widths: widths}
	for _, spec := range info.operands {
		switch spec.quant {
		case quantOne:
			if c.done() {
				return nil, fmt.Errorf("%s: missing %s operand", info.name, spec.kind)
			}
			if err := c.parse(spec.kind); err != nil {
				return nil, fmt.Errorf("%s: %w", info.name, err)
			}
		case quantOptional:
			if c.done() {
				continue
			}
			if err := c.parse(spec.kind); err != nil {
				return nil, fmt.Errorf("%s: %w", info.name, err)
			}
		case quantVariadic:
			for !c.done() {
				if err := c.parse(spec.kind); err != nil {
					return nil, fmt.Errorf("%s: %w", info.name, err)
				}
			}
		}
	}
	if !c.done() {
		return nil, fmt.Errorf("%s: %d unexpected trailing words", info.name, len(words)-c.pos)
	}
	return inst, nil
}

type operandCursor struct {
	inst   *Instruction
	widths *widthTracker
	pos    int

	specOpIDs int // id operands left for the OpSpecConstantOp payload
}

func (c *operandCursor) done() bool { return c.pos >= len(c.inst.Words) }

func (c *operandCursor) take(kind OperandKind, n int) error {
	if c.pos+n > len(c.inst.Words) {
		return fmt.Errorf("%s operand needs %d words, %d left", kind, n, len(c.inst.Words)-c.pos)
	}
	c.inst.Operands = append(c.inst.Operands, Operand{Kind: kind, Offset: c.pos, Count: n})
	c.pos += n
	return nil
}

func (c *operandCursor) word() uint32 { return c.inst.Words[c.pos] }

//nolint:gocyclo,cyclop // one case per operand kind
func (c *operandCursor) parse(kind OperandKind) error {
	switch kind {
	case OperandResultType:
		c.inst.TypeID = c.word()
		return c.take(kind, 1)
	case OperandResultID:
		c.inst.ResultID = c.word()
		return c.take(kind, 1)
	case OperandLiteralString:
		n, ok := stringWords(c.inst.Words[c.pos:])
		if !ok {
			return fmt.Errorf("unterminated string")
		}
		return c.take(kind, n)
	case OperandLiteralContext:
		// OpConstant and OpSpecConstant take the rest of the instruction.
		return c.take(kind, len(c.inst.Words)-c.pos)
	case OperandSpecConstantOpNumber:
		c.specOpIDs = specConstantOpIDs(OpCode(c.word()))
		return c.take(kind, 1)
	case operandSpecConstantArg:
		if c.specOpIDs != 0 {
			c.specOpIDs--
			return c.take(OperandID, 1)
		}
		return c.take(OperandLiteralInteger, 1)
	case OperandDecoration:
		return c.parseDecoration()
	case OperandExecutionMode:
		if err := c.take(kind, 1); err != nil {
			return err
		}
		param := OperandLiteralInteger
		if c.inst.Opcode == OpExecutionModeID {
			param = OperandID
		}
		for !c.done() {
			if err := c.take(param, 1); err != nil {
				return err
			}
		}
		return nil
	case OperandMemoryAccess:
		return c.parseMask(kind, memoryAccessParams)
	case OperandImageOperands:
		return c.parseMask(kind, imageOperandParams)
	case OperandLoopControl:
		return c.parseMask(kind, loopControlParams)
	case operandPairIDID:
		if err := c.take(OperandID, 1); err != nil {
			return err
		}
		return c.take(OperandID, 1)
	case operandPairIDLiteral:
		if err := c.take(OperandID, 1); err != nil {
			return err
		}
		return c.take(OperandLiteralInteger, 1)
	case operandPairLiteralID:
		n := 1
		if c.widths != nil && len(c.inst.Words) > 0 {
			n = c.widths.literalWords(c.inst.Words[0])
		}
		if err := c.take(OperandLiteralContext, n); err != nil {
			return err
		}
		return c.take(OperandID, 1)
	default:
		return c.take(kind, 1)
	}
}

func (c *operandCursor) parseDecoration() error {
	dec := Decoration(c.word())
	if err := c.take(OperandDecoration, 1); err != nil {
		return err
	}
	switch {
	case c.inst.Opcode == OpDecorateID:
		for !c.done() {
			if err := c.take(OperandID, 1); err != nil {
				return err
			}
		}
	case dec == DecorationBuiltIn:
		return c.take(OperandBuiltIn, 1)
	case dec == DecorationLinkageAttributes:
		if err := c.parse(OperandLiteralString); err != nil {
			return err
		}
		return c.take(OperandLiteralInteger, 1)
	default:
		for !c.done() {
			if err := c.take(OperandLiteralInteger, 1); err != nil {
				return err
			}
		}
	}
	return nil
}

// maskParam lists the operands that follow a set mask bit.
type maskParam struct {
	bit   uint32
	kinds []OperandKind
}

var (
	memoryAccessParams = []maskParam{
		{uint32(MemoryAccessAligned), []OperandKind{OperandLiteralInteger}},
		{uint32(MemoryAccessMakePointerAvailable), []OperandKind{OperandID}},
		{uint32(MemoryAccessMakePointerVisible), []OperandKind{OperandID}},
	}
	imageOperandParams = []maskParam{
		{0x1, []OperandKind{OperandID}},
		{0x2, []OperandKind{OperandID}},
		{0x4, []OperandKind{OperandID, OperandID}},
		{0x8, []OperandKind{OperandID}},
		{0x10, []OperandKind{OperandID}},
		{0x20, []OperandKind{OperandID}},
		{0x40, []OperandKind{OperandID}},
		{0x80, []OperandKind{OperandID}},
		{0x100, []OperandKind{OperandID}},
		{0x200, []OperandKind{OperandID}},
		{0x10000, []OperandKind{OperandID}},
	}
	loopControlParams = []maskParam{
		{0x8, []OperandKind{OperandLiteralInteger}},
		{0x10, []OperandKind{OperandLiteralInteger}},
		{0x20, []OperandKind{OperandLiteralInteger}},
		{0x40, []OperandKind{OperandLiteralInteger}},
		{0x80, []OperandKind{OperandLiteralInteger}},
		{0x100, []OperandKind{OperandLiteralInteger}},
	}
)

func (c *operandCursor) parseMask(kind OperandKind, params []maskParam) error {
	mask := c.word()
	if err := c.take(kind, 1); err != nil {
		return err
	}
	for _, p := range params {
		if mask&p.bit == 0 {
			continue
		}
		for _, k := range p.kinds {
			if err := c.take(k, 1); err != nil {
				return err
			}
		}
	}
	return nil
}

// specConstantOpIDs returns how many leading operands of an OpSpecConstantOp
// payload are ids; the remainder are literals. -1 means all are ids.
func specConstantOpIDs(op OpCode) int {
	switch op {
	case OpCompositeExtract:
		return 1
	case OpVectorShuffle, OpCompositeInsert:
		return 2
	}
	return -1
}

// NumOperands returns the number of logical operands.
func (in *Instruction) NumOperands() int { return len(in.Operands) }

// Word returns the first word of operand i, or 0 when absent.
func (in *Instruction) Word(i int) uint32 {
	if i < 0 || i >= len(in.Operands) {
		return 0
	}
	return in.Words[in.Operands[i].Offset]
}

// OperandWords returns all words of operand i.
func (in *Instruction) OperandWords(i int) []uint32 {
	if i < 0 || i >= len(in.Operands) {
		return nil
	}
	o := in.Operands[i]
	return in.Words[o.Offset : o.Offset+o.Count]
}

// Literal returns operand i as an integer, low word first.
func (in *Instruction) Literal(i int) uint64 {
	var v uint64
	for n, w := range in.OperandWords(i) {
		if n > 1 {
			break
		}
		v |= uint64(w) << (32 * n)
	}
	return v
}

// StringOperand decodes the literal string at operand i.
func (in *Instruction) StringOperand(i int) string {
	s, _ := decodeString(in.OperandWords(i))
	return s
}

// ForEachID calls fn for every id-reference operand, result type included.
func (in *Instruction) ForEachID(fn func(operand int, id uint32)) {
	for i, o := range in.Operands {
		if o.Kind.IsIDRef() {
			fn(i, in.Words[o.Offset])
		}
	}
}

// Encode encodes the instruction to binary words.
func (in *Instruction) Encode() []uint32 {
	wordCount := uint32(len(in.Words) + 1) // +1 for opcode word
	result := make([]uint32, 0, wordCount)
	result = append(result, (wordCount<<16)|uint32(in.Opcode))
	result = append(result, in.Words...)
	return result
}

func (in *Instruction) String() string {
	return FormatInstruction(in, nil)
}

// stringWords returns the number of words holding a nul-terminated string.
func stringWords(words []uint32) (int, bool) {
	for i, w := range words {
		if w&0xff == 0 || w&0xff00 == 0 || w&0xff0000 == 0 || w&0xff000000 == 0 {
			return i + 1, true
		}
	}
	return 0, false
}

func decodeString(words []uint32) (string, bool) {
	var sb strings.Builder
	for _, w := range words {
		for shift := 0; shift < 32; shift += 8 {
			b := byte(w >> shift)
			if b == 0 {
				return sb.String(), true
			}
			sb.WriteByte(b)
		}
	}
	return sb.String(), false
}

// encodeString packs a nul-terminated UTF-8 string into little-endian words.
func encodeString(s string) []uint32 {
	bytes := append([]byte(s), 0)
	for len(bytes)%4 != 0 {
		bytes = append(bytes, 0)
	}
	words := make([]uint32, 0, len(bytes)/4)
	for i := 0; i < len(bytes); i += 4 {
		words = append(words, uint32(bytes[i])|
			uint32(bytes[i+1])<<8|
			uint32(bytes[i+2])<<16|
			uint32(bytes[i+3])<<24)
	}
	return words
}

// numericType is what the decoder and assembler remember about int and
// float types to size context-dependent literals.
type numericType struct {
	width  uint32
	float  bool
	signed bool
}

// widthTracker follows type and value ids through a module.
type widthTracker struct {
	types  map[uint32]numericType
	values map[uint32]uint32 // value id -> type id
}

func newWidthTracker() *widthTracker {
	return &widthTracker{
		types:  make(map[uint32]numericType),
		values: make(map[uint32]uint32),
	}
}

func (t *widthTracker) observe(in *Instruction) {
	switch in.Opcode {
	case OpTypeInt:
		t.types[in.ResultID] = numericType{width: in.Word(1), signed: in.Word(2) != 0}
	case OpTypeFloat:
		t.types[in.ResultID] = numericType{width: in.Word(1), float: true}
	default:
		if in.TypeID != 0 && in.ResultID != 0 {
			t.values[in.ResultID] = in.TypeID
		}
	}
}

// literalWords returns the literal width in words for values of the given id.
func (t *widthTracker) literalWords(valueID uint32) int {
	nt, ok := t.types[t.values[valueID]]
	if ok && nt.width > 32 {
		return 2
	}
	return 1
}
