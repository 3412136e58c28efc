// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import "github.com/gogpu/spvval/spirv"

// NoMember marks a decoration that applies to a whole id rather than a struct member.
const NoMember = -1

// Decoration is one decoration applied to an id, after group expansion.
type Decoration struct {
	Target uint32
	Kind   spirv.Decoration
	Member int // NoMember for whole-id decorations
	Params []uint32

	inst *entry // declaring OpDecorate, OpMemberDecorate or group instruction
}

// decorationIndex maps ids to the decorations they carry.
type decorationIndex struct {
	byID   map[uint32][]Decoration
	groups map[uint32][]Decoration // decorations held by OpDecorationGroup ids
}

func newDecorationIndex() *decorationIndex {
	return &decorationIndex{
		byID:   make(map[uint32][]Decoration),
		groups: make(map[uint32][]Decoration),
	}
}

// record adds the decorations declared by an annotation instruction.
func (d *decorationIndex) record(e *entry) {
	in := e.inst
	switch in.Opcode {
	case spirv.OpDecorate, spirv.OpDecorateID:
		d.add(Decoration{
			Target: in.Word(0),
			Kind:   spirv.Decoration(in.Word(1)),
			Member: NoMember,
			Params: paramWords(in, 2),
			inst:   e,
		})
	case spirv.OpMemberDecorate:
		d.add(Decoration{
			Target: in.Word(0),
			Member: int(in.Word(1)),
			Kind:   spirv.Decoration(in.Word(2)),
			Params: paramWords(in, 3),
			inst:   e,
		})
	case spirv.OpDecorationGroup:
		// Decorations on a group precede the group itself; move them aside
		// so they are only seen through the ids the group is applied to.
		if decs, ok := d.byID[in.ResultID]; ok {
			d.groups[in.ResultID] = decs
			delete(d.byID, in.ResultID)
		}
	case spirv.OpGroupDecorate:
		group := d.groups[in.Word(0)]
		for i := 1; i < in.NumOperands(); i++ {
			target := in.Word(i)
			for _, dec := range group {
				dec.Target = target
				dec.inst = e
				d.add(dec)
			}
		}
	case spirv.OpGroupMemberDecorate:
		group := d.groups[in.Word(0)]
		for i := 1; i+1 < in.NumOperands(); i += 2 {
			target, member := in.Word(i), int(in.Word(i+1))
			for _, dec := range group {
				dec.Target = target
				dec.Member = member
				dec.inst = e
				d.add(dec)
			}
		}
	}
}

func (d *decorationIndex) add(dec Decoration) {
	d.byID[dec.Target] = append(d.byID[dec.Target], dec)
}

// paramWords flattens the operands from index first onward.
func paramWords(in *spirv.Instruction, first int) []uint32 {
	var params []uint32
	for i := first; i < in.NumOperands(); i++ {
		params = append(params, in.OperandWords(i)...)
	}
	return params
}

// all returns every decoration on id, member decorations included.
func (d *decorationIndex) all(id uint32) []Decoration {
	return d.byID[id]
}

// find returns the first whole-id decoration of the given kind.
func (d *decorationIndex) find(id uint32, kind spirv.Decoration) (Decoration, bool) {
	return d.findMember(id, NoMember, kind)
}

// findMember returns the first decoration of kind on the given member.
func (d *decorationIndex) findMember(id uint32, member int, kind spirv.Decoration) (Decoration, bool) {
	for _, dec := range d.byID[id] {
		if dec.Member == member && dec.Kind == kind {
			return dec, true
		}
	}
	return Decoration{}, false
}

func (d *decorationIndex) has(id uint32, kind spirv.Decoration) bool {
	_, ok := d.find(id, kind)
	return ok
}

// builtIn returns the whole-id BuiltIn decoration of id.
func (d *decorationIndex) builtIn(id uint32) (spirv.BuiltIn, bool) {
	dec, ok := d.find(id, spirv.DecorationBuiltIn)
	if !ok || len(dec.Params) == 0 {
		return 0, false
	}
	return spirv.BuiltIn(dec.Params[0]), true
}

// hasMemberBuiltIn reports whether any member of struct id is a built-in.
func (d *decorationIndex) hasMemberBuiltIn(id uint32) bool {
	for _, dec := range d.byID[id] {
		if dec.Member != NoMember && dec.Kind == spirv.DecorationBuiltIn {
			return true
		}
	}
	return false
}
