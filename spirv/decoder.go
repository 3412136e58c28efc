// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"encoding/binary"
	"fmt"
)

// Decode parses a SPIR-V binary. Both byte orders are accepted; the magic
// number decides which one is used.
func Decode(data []byte) (*Module, error) {
	if len(data)%4 != 0 {
		return nil, &Error{WordOffset: -1, Message: fmt.Sprintf("size %d is not a multiple of 4", len(data))}
	}
	if len(data) < HeaderWords*4 {
		return nil, &Error{WordOffset: 0, Message: "too small for a SPIR-V header"}
	}

	var order binary.ByteOrder = binary.LittleEndian
	switch {
	case binary.LittleEndian.Uint32(data) == MagicNumber:
	case binary.BigEndian.Uint32(data) == MagicNumber:
		order = binary.BigEndian
	default:
		return nil, &Error{WordOffset: 0, Message: fmt.Sprintf("invalid magic number 0x%08x", binary.LittleEndian.Uint32(data))}
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = order.Uint32(data[i*4:])
	}
	return DecodeWords(words)
}

// DecodeWords parses a module already split into host-order words.
func DecodeWords(words []uint32) (*Module, error) {
	if len(words) < HeaderWords {
		return nil, &Error{WordOffset: 0, Message: "too small for a SPIR-V header"}
	}
	if words[0] != MagicNumber {
		return nil, &Error{WordOffset: 0, Message: fmt.Sprintf("invalid magic number 0x%08x", words[0])}
	}

	m := &Module{Header: Header{
		Version:   VersionFromWord(words[1]),
		Generator: words[2],
		Bound:     words[3],
		Schema:    words[4],
	}}

	widths := newWidthTracker()
	offset := HeaderWords
	for offset < len(words) {
		wordCount := int(words[offset] >> 16)
		opcode := OpCode(words[offset] & 0xFFFF)

		if wordCount == 0 {
			return nil, &Error{WordOffset: offset, Message: "instruction word count is zero"}
		}
		if offset+wordCount > len(words) {
			return nil, &Error{WordOffset: offset, Message: fmt.Sprintf("%s: word count %d runs past the end of the module", opcode, wordCount)}
		}

		inst, err := parseInstruction(opcode, words[offset+1:offset+wordCount], widths)
		if err != nil {
			return nil, &Error{WordOffset: offset, Message: err.Error()}
		}
		inst.WordOffset = offset
		widths.observe(inst)
		m.Instructions = append(m.Instructions, inst)

		offset += wordCount
	}
	return m, nil
}
