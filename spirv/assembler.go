// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Assemble parses SPIR-V assembly text in the spirv-as dialect.
//
// Ids are written %name. Names made only of digits keep their number; the
// others are numbered in order of first appearance. Header fields may be set
// with the comment lines Disassemble emits (for example "; Version: 1.3");
// the version defaults to 1.0 and the bound is computed.
func Assemble(src string) (*Module, error) {
	a := &assembler{
		ids:      make(map[string]uint32),
		reserved: make(map[uint32]bool),
		next:     1,
		widths:   newWidthTracker(),
	}
	m := &Module{Header: Header{Version: Version1_0, Generator: GeneratorID}}

	var lines []asmLine
	for n, raw := range strings.Split(src, "\n") {
		lineNo := n + 1
		if err := a.directive(raw, &m.Header); err != nil {
			return nil, &Error{WordOffset: -1, Line: lineNo, Message: err.Error()}
		}
		toks, err := tokenize(raw)
		if err != nil {
			return nil, &Error{WordOffset: -1, Line: lineNo, Message: err.Error()}
		}
		if len(toks) == 0 {
			continue
		}
		l := asmLine{line: lineNo}
		if len(toks) >= 3 && !toks[1].quoted && toks[1].text == "=" {
			l.result = toks[0]
			toks = toks[2:]
		}
		l.op = toks[0].text
		l.args = toks[1:]
		lines = append(lines, l)
	}

	// Numeric names keep their value, so reserve them before anything else
	// takes a number.
	for _, l := range lines {
		for _, t := range append([]token{l.result}, l.args...) {
			if n, ok := numericID(t); ok {
				a.reserved[n] = true
			}
		}
	}

	for _, l := range lines {
		inst, err := a.instruction(l)
		if err != nil {
			return nil, &Error{WordOffset: -1, Line: l.line, Message: err.Error()}
		}
		m.Instructions = append(m.Instructions, inst)
	}

	m.Header.Bound = a.bound()
	return m, nil
}

type token struct {
	text   string
	quoted bool
}

type asmLine struct {
	line   int
	result token
	op     string
	args   []token
}

type assembler struct {
	ids      map[string]uint32
	reserved map[uint32]bool
	next     uint32
	widths   *widthTracker
}

func (a *assembler) directive(raw string, h *Header) error {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, ";") {
		return nil
	}
	key, value, ok := strings.Cut(strings.TrimSpace(s[1:]), ":")
	if !ok {
		return nil
	}
	value = strings.TrimSpace(value)
	switch strings.TrimSpace(key) {
	case "Version":
		major, minor, ok := strings.Cut(value, ".")
		if !ok {
			return fmt.Errorf("malformed version %q", value)
		}
		ma, err1 := strconv.ParseUint(major, 10, 8)
		mi, err2 := strconv.ParseUint(minor, 10, 8)
		if err1 != nil || err2 != nil {
			return fmt.Errorf("malformed version %q", value)
		}
		h.Version = Version{uint8(ma), uint8(mi)}
	case "Generator":
		g, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return fmt.Errorf("malformed generator %q", value)
		}
		h.Generator = uint32(g)
	case "Schema":
		sc, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return fmt.Errorf("malformed schema %q", value)
		}
		h.Schema = uint32(sc)
	}
	return nil
}

// tokenize splits a line into words and quoted strings, dropping comments.
func tokenize(line string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ';':
			return toks, nil
		case unicode.IsSpace(rune(c)):
			i++
		case c == '"':
			var sb strings.Builder
			i++
			closed := false
			for i < len(line) {
				if line[i] == '\\' && i+1 < len(line) {
					sb.WriteByte(line[i+1])
					i += 2
					continue
				}
				if line[i] == '"' {
					closed = true
					i++
					break
				}
				sb.WriteByte(line[i])
				i++
			}
			if !closed {
				return nil, fmt.Errorf("unterminated string")
			}
			toks = append(toks, token{text: sb.String(), quoted: true})
		default:
			start := i
			for i < len(line) && !unicode.IsSpace(rune(line[i])) && line[i] != ';' {
				i++
			}
			toks = append(toks, token{text: line[start:i]})
		}
	}
	return toks, nil
}

func numericID(t token) (uint32, bool) {
	if t.quoted || len(t.text) < 2 || t.text[0] != '%' {
		return 0, false
	}
	n, err := strconv.ParseUint(t.text[1:], 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint32(n), true
}

func (a *assembler) id(t token) (uint32, error) {
	if t.quoted || len(t.text) < 2 || t.text[0] != '%' {
		return 0, fmt.Errorf("expected an id, found %q", t.text)
	}
	if n, ok := numericID(t); ok {
		return n, nil
	}
	if n, ok := a.ids[t.text]; ok {
		return n, nil
	}
	for a.reserved[a.next] {
		a.next++
	}
	n := a.next
	a.next++
	a.ids[t.text] = n
	return n, nil
}

func (a *assembler) bound() uint32 {
	var hi uint32
	for _, n := range a.ids {
		hi = max(hi, n)
	}
	for n := range a.reserved {
		hi = max(hi, n)
	}
	return hi + 1
}

func (a *assembler) instruction(l asmLine) (*Instruction, error) {
	op, ok := opcodesByName[l.op]
	if !ok {
		return nil, fmt.Errorf("unknown opcode %q", l.op)
	}
	hasResult := l.result.text != ""
	if hasResult != op.HasResult() {
		if hasResult {
			return nil, fmt.Errorf("%s does not produce a result", l.op)
		}
		return nil, fmt.Errorf("%s requires a result id", l.op)
	}

	e := &encoder{a: a, op: op, args: l.args}
	for _, spec := range grammar[op].operands {
		if spec.kind == OperandResultID {
			n, err := a.id(l.result)
			if err != nil {
				return nil, err
			}
			e.words = append(e.words, n)
			continue
		}
		switch spec.quant {
		case quantOne:
			if e.done() {
				return nil, fmt.Errorf("%s: missing %s operand", l.op, spec.kind)
			}
			if err := e.encode(spec.kind); err != nil {
				return nil, fmt.Errorf("%s: %w", l.op, err)
			}
		case quantOptional:
			if !e.done() {
				if err := e.encode(spec.kind); err != nil {
					return nil, fmt.Errorf("%s: %w", l.op, err)
				}
			}
		case quantVariadic:
			for !e.done() {
				if err := e.encode(spec.kind); err != nil {
					return nil, fmt.Errorf("%s: %w", l.op, err)
				}
			}
		}
	}
	if !e.done() {
		return nil, fmt.Errorf("%s: unexpected operand %q", l.op, e.args[e.pos].text)
	}

	inst, err := parseInstruction(op, e.words, a.widths)
	if err != nil {
		return nil, err
	}
	a.widths.observe(inst)
	return inst, nil
}

type encoder struct {
	a     *assembler
	op    OpCode
	args  []token
	pos   int
	words []uint32

	specOpIDs int
}

func (e *encoder) done() bool { return e.pos >= len(e.args) }

func (e *encoder) next() (token, error) {
	if e.done() {
		return token{}, fmt.Errorf("missing operand")
	}
	t := e.args[e.pos]
	e.pos++
	return t, nil
}

func (e *encoder) emitID() error {
	t, err := e.next()
	if err != nil {
		return err
	}
	n, err := e.a.id(t)
	if err != nil {
		return err
	}
	e.words = append(e.words, n)
	return nil
}

func (e *encoder) emitLiteral() error {
	t, err := e.next()
	if err != nil {
		return err
	}
	v, err := parseLiteral(t)
	if err != nil {
		return err
	}
	e.words = append(e.words, v)
	return nil
}

func (e *encoder) emitEnum(kind OperandKind) (uint32, error) {
	t, err := e.next()
	if err != nil {
		return 0, err
	}
	v, err := parseEnum(kind, t)
	if err != nil {
		return 0, err
	}
	e.words = append(e.words, v)
	return v, nil
}

//nolint:gocyclo,cyclop // one case per operand kind
func (e *encoder) encode(kind OperandKind) error {
	switch kind {
	case OperandResultType, OperandID:
		return e.emitID()
	case OperandLiteralInteger, OperandExtInstNumber:
		return e.emitLiteral()
	case OperandLiteralString:
		t, err := e.next()
		if err != nil {
			return err
		}
		if !t.quoted {
			return fmt.Errorf("expected a string, found %q", t.text)
		}
		e.words = append(e.words, encodeString(t.text)...)
		return nil
	case OperandLiteralContext:
		return e.emitNumber(e.a.widths.types[e.words[0]])
	case OperandSpecConstantOpNumber:
		t, err := e.next()
		if err != nil {
			return err
		}
		op, ok := opcodesByName["Op"+t.text]
		if !ok {
			v, err := parseLiteral(t)
			if err != nil {
				return fmt.Errorf("unknown specialization opcode %q", t.text)
			}
			op = OpCode(v)
		}
		e.specOpIDs = specConstantOpIDs(op)
		e.words = append(e.words, uint32(op))
		return nil
	case operandSpecConstantArg:
		if e.specOpIDs != 0 {
			e.specOpIDs--
			return e.emitID()
		}
		return e.emitLiteral()
	case OperandDecoration:
		return e.encodeDecoration()
	case OperandExecutionMode:
		if _, err := e.emitEnum(kind); err != nil {
			return err
		}
		for !e.done() {
			var err error
			if e.op == OpExecutionModeID {
				err = e.emitID()
			} else {
				err = e.emitLiteral()
			}
			if err != nil {
				return err
			}
		}
		return nil
	case OperandMemoryAccess:
		return e.encodeMask(kind, memoryAccessParams)
	case OperandImageOperands:
		return e.encodeMask(kind, imageOperandParams)
	case OperandLoopControl:
		return e.encodeMask(kind, loopControlParams)
	case operandPairIDID:
		if err := e.emitID(); err != nil {
			return err
		}
		return e.emitID()
	case operandPairIDLiteral:
		if err := e.emitID(); err != nil {
			return err
		}
		return e.emitLiteral()
	case operandPairLiteralID:
		nt := e.a.widths.types[e.a.widths.values[e.words[0]]]
		if err := e.emitNumber(nt); err != nil {
			return err
		}
		return e.emitID()
	default:
		_, err := e.emitEnum(kind)
		return err
	}
}

func (e *encoder) encodeDecoration() error {
	dec, err := e.emitEnum(OperandDecoration)
	if err != nil {
		return err
	}
	switch {
	case e.op == OpDecorateID:
		for !e.done() {
			if err := e.emitID(); err != nil {
				return err
			}
		}
	case Decoration(dec) == DecorationBuiltIn:
		_, err := e.emitEnum(OperandBuiltIn)
		return err
	case Decoration(dec) == DecorationLinkageAttributes:
		if err := e.encode(OperandLiteralString); err != nil {
			return err
		}
		t, err := e.next()
		if err != nil {
			return err
		}
		switch t.text {
		case "Export":
			e.words = append(e.words, 0)
		case "Import":
			e.words = append(e.words, 1)
		default:
			v, err := parseLiteral(t)
			if err != nil {
				return err
			}
			e.words = append(e.words, v)
		}
	default:
		for !e.done() {
			if err := e.emitLiteral(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) encodeMask(kind OperandKind, params []maskParam) error {
	mask, err := e.emitEnum(kind)
	if err != nil {
		return err
	}
	for _, p := range params {
		if mask&p.bit == 0 {
			continue
		}
		for _, k := range p.kinds {
			if k == OperandID {
				err = e.emitID()
			} else {
				err = e.emitLiteral()
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// emitNumber encodes a literal sized and typed by nt. A zero nt means the
// type is unknown and a single 32-bit word is written.
func (e *encoder) emitNumber(nt numericType) error {
	t, err := e.next()
	if err != nil {
		return err
	}
	words, err := encodeNumber(t.text, nt)
	if err != nil {
		return err
	}
	e.words = append(e.words, words...)
	return nil
}

func encodeNumber(text string, nt numericType) ([]uint32, error) {
	if nt.float {
		switch nt.width {
		case 64:
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid float literal %q", text)
			}
			bits := math.Float64bits(f)
			return []uint32{uint32(bits), uint32(bits >> 32)}, nil
		case 16:
			f, err := strconv.ParseFloat(text, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid float literal %q", text)
			}
			return []uint32{float16Bits(float32(f))}, nil
		default:
			f, err := strconv.ParseFloat(text, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid float literal %q", text)
			}
			return []uint32{math.Float32bits(float32(f))}, nil
		}
	}

	var bits uint64
	if strings.HasPrefix(text, "-") {
		v, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer literal %q", text)
		}
		if nt.width != 0 && !nt.signed {
			return nil, fmt.Errorf("negative literal %q for an unsigned type", text)
		}
		bits = uint64(v)
	} else {
		v, err := strconv.ParseUint(text, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer literal %q", text)
		}
		bits = v
	}
	if nt.width > 32 {
		return []uint32{uint32(bits), uint32(bits >> 32)}, nil
	}
	if nt.width != 0 && nt.width < 32 {
		mask := uint64(1)<<nt.width - 1
		bits &= mask
		if nt.signed && bits&(uint64(1)<<(nt.width-1)) != 0 {
			bits |= ^mask
		}
	}
	return []uint32{uint32(bits)}, nil
}

func float16Bits(f float32) uint32 {
	b := math.Float32bits(f)
	sign := (b >> 16) & 0x8000
	rawExp := (b >> 23) & 0xff
	mant := b & 0x7fffff
	if rawExp == 0xff {
		if mant != 0 {
			return sign | 0x7e00
		}
		return sign | 0x7c00
	}
	exp := int(rawExp) - 127 + 15
	switch {
	case exp >= 0x1f:
		return sign | 0x7c00
	case exp <= 0:
		if exp < -10 {
			return sign
		}
		mant |= 0x800000
		return sign | mant>>uint(14-exp)
	}
	return sign | uint32(exp)<<10 | mant>>13
}

func parseLiteral(t token) (uint32, error) {
	if t.quoted {
		return 0, fmt.Errorf("expected a number, found string %q", t.text)
	}
	if strings.HasPrefix(t.text, "-") {
		v, err := strconv.ParseInt(t.text, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid literal %q", t.text)
		}
		return uint32(int32(v)), nil
	}
	v, err := strconv.ParseUint(t.text, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid literal %q", t.text)
	}
	return uint32(v), nil
}

var enumsByName = func() map[OperandKind]map[string]uint32 {
	out := make(map[OperandKind]map[string]uint32)
	for k := OperandCapability; k <= OperandSourceLanguage; k++ {
		if names, _ := enumTable(k); names != nil {
			out[k] = reverse(names)
		}
	}
	return out
}()

func parseEnum(kind OperandKind, t token) (uint32, error) {
	if t.quoted {
		return 0, fmt.Errorf("expected %s, found string %q", kind, t.text)
	}
	byName := enumsByName[kind]
	_, mask := enumTable(kind)
	if mask {
		if t.text == "None" {
			return 0, nil
		}
		var v uint32
		for _, part := range strings.Split(t.text, "|") {
			bit, ok := byName[part]
			if !ok {
				n, err := parseLiteral(token{text: part})
				if err != nil {
					return 0, fmt.Errorf("unknown %s %q", kind, part)
				}
				bit = n
			}
			v |= bit
		}
		return v, nil
	}
	if v, ok := byName[t.text]; ok {
		return v, nil
	}
	v, err := parseLiteral(t)
	if err != nil {
		return 0, fmt.Errorf("unknown %s %q", kind, t.text)
	}
	return v, nil
}
