// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import "fmt"

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// SPIR-V versions.
var (
	Version1_0 = Version{1, 0}
	Version1_1 = Version{1, 1}
	Version1_2 = Version{1, 2}
	Version1_3 = Version{1, 3}
	Version1_4 = Version{1, 4}
	Version1_5 = Version{1, 5}
	Version1_6 = Version{1, 6}
)

// Less reports whether v precedes o.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	return v.Minor < o.Minor
}

// AtLeast reports whether v is o or newer.
func (v Version) AtLeast(o Version) bool { return !v.Less(o) }

func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// Word returns the header encoding of the version.
func (v Version) Word() uint32 {
	return uint32(v.Major)<<16 | uint32(v.Minor)<<8
}

// VersionFromWord decodes a header version word.
func VersionFromWord(w uint32) Version {
	return Version{Major: uint8(w >> 16), Minor: uint8(w >> 8)}
}

// SPIR-V header constants.
const (
	MagicNumber = 0x07230203
	GeneratorID = 0x00000000 // Unregistered generator
	HeaderWords = 5
)

// Header is the five-word module header.
type Header struct {
	Version   Version
	Generator uint32
	Bound     uint32 // every id is below Bound
	Schema    uint32
}

// Module is a decoded SPIR-V module: a header and the instruction stream in
// binary order.
type Module struct {
	Header       Header
	Instructions []*Instruction
}

// Words encodes the module back into words.
func (m *Module) Words() []uint32 {
	out := []uint32{MagicNumber, m.Header.Version.Word(), m.Header.Generator, m.Header.Bound, m.Header.Schema}
	for _, in := range m.Instructions {
		out = append(out, in.Encode()...)
	}
	return out
}

// Names collects OpName debug names by id.
func (m *Module) Names() map[uint32]string {
	names := make(map[uint32]string)
	for _, in := range m.Instructions {
		if in.Opcode == OpName {
			names[in.Word(0)] = in.StringOperand(1)
		}
	}
	return names
}

// Error reports a decode or assembly failure.
type Error struct {
	WordOffset int // position in the binary, -1 for text input
	Line       int // 1-based source line, 0 for binary input
	Message    string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("spirv: line %d: %s", e.Line, e.Message)
	}
	if e.WordOffset >= 0 {
		return fmt.Sprintf("spirv: word %d: %s", e.WordOffset, e.Message)
	}
	return "spirv: " + e.Message
}
