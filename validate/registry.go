// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import (
	"github.com/gogpu/spvval/spirv"
)

// entry is the registry's view of one instruction.
type entry struct {
	inst     *spirv.Instruction
	pos      int    // index in the module
	function uint32 // enclosing OpFunction result id, 0 at module scope
}

// function records one OpFunction ... OpFunctionEnd range.
type function struct {
	id      uint32
	def     *entry
	typeID  uint32
	params  []uint32
	blocks  []uint32
	callees []uint32 // direct callees in first-call order

	calleeSet map[uint32]bool
}

// entryPoint records one OpEntryPoint.
type entryPoint struct {
	model      spirv.ExecutionModel
	function   uint32
	name       string
	interfaces []uint32
	def        *entry
}

// executionMode records one OpExecutionMode or OpExecutionModeId.
type executionMode struct {
	mode   spirv.ExecutionMode
	params []uint32
	def    *entry
}

// registry is the read-only index the validation passes consult.
type registry struct {
	version spirv.Version
	bound   uint32

	entries []*entry
	defs    map[uint32]*entry
	uses    map[uint32][]*entry // referencing instructions, each at most once

	decorations  *decorationIndex
	capabilities capabilitySet
	extensions   []string
	addressing   spirv.AddressingModel
	memoryModel  spirv.MemoryModel

	functions      map[uint32]*function
	functionOrder  []uint32
	entryPoints    []*entryPoint
	executionModes map[uint32][]executionMode // keyed by entry point function

	reach *reachability // computed on first use
}

// forwardRef tracks an id referenced before its definition.
type forwardRef struct {
	user    *entry // first referencing instruction
	illegal *entry // first reference that may not precede the definition
}

// registryBuilder consumes instructions in module order.
type registryBuilder struct {
	v       *validator
	r       *registry
	layout  layoutState
	current *function

	forward      map[uint32]*forwardRef
	forwardOrder []uint32
}

func newRegistryBuilder(v *validator, m *spirv.Module) *registryBuilder {
	return &registryBuilder{
		v: v,
		r: &registry{
			version:        m.Header.Version,
			bound:          m.Header.Bound,
			entries:        make([]*entry, 0, len(m.Instructions)),
			defs:           make(map[uint32]*entry),
			uses:           make(map[uint32][]*entry),
			decorations:    newDecorationIndex(),
			capabilities:   make(capabilitySet),
			functions:      make(map[uint32]*function),
			executionModes: make(map[uint32][]executionMode),
		},
		forward: make(map[uint32]*forwardRef),
	}
}

// buildRegistry runs the builder over the whole module.
func buildRegistry(v *validator, m *spirv.Module) (*registry, error) {
	b := newRegistryBuilder(v, m)
	for pos, in := range m.Instructions {
		if err := b.add(pos, in); err != nil {
			return nil, err
		}
	}
	return b.finish()
}

// add consumes the next instruction.
func (b *registryBuilder) add(pos int, in *spirv.Instruction) error {
	e := &entry{inst: in, pos: pos}
	if violation := b.layout.advance(in.Opcode); violation != nil {
		return b.v.fail(violation.kind, e, 0, "%s", violation.message)
	}
	switch {
	case in.Opcode == spirv.OpFunction:
		e.function = in.ResultID
	case b.current != nil:
		e.function = b.current.id
	}
	b.r.entries = append(b.r.entries, e)

	var err error
	in.ForEachID(func(operand int, id uint32) {
		if err == nil {
			err = b.reference(e, operand, id)
		}
	})
	if err != nil {
		return err
	}
	if in.ResultID != 0 || in.Opcode.HasResult() {
		if err := b.define(e); err != nil {
			return err
		}
	}
	if in.TypeID != 0 {
		if def, ok := b.r.defs[in.TypeID]; ok && !def.inst.Opcode.IsType() {
			return b.v.fail(ErrType, e, in.TypeID, "Result Type %s is not a type", b.v.describe(in.TypeID))
		}
	}
	b.record(e)
	return nil
}

// reference registers a use of id by operand of e.
func (b *registryBuilder) reference(e *entry, operand int, id uint32) error {
	if id == 0 {
		return b.v.fail(ErrStructural, e, 0, "Operand %d of %s is the invalid id 0", operand, e.inst.Opcode)
	}
	users := b.r.uses[id]
	if len(users) == 0 || users[len(users)-1] != e {
		b.r.uses[id] = append(users, e)
	}
	if _, ok := b.r.defs[id]; ok {
		return nil
	}
	ref, ok := b.forward[id]
	if !ok {
		ref = &forwardRef{user: e}
		b.forward[id] = ref
		b.forwardOrder = append(b.forwardOrder, id)
	}
	if ref.illegal == nil && !mayForwardReference(e.inst.Opcode, operand) {
		ref.illegal = e
	}
	return nil
}

// define registers the result id of e.
func (b *registryBuilder) define(e *entry) error {
	id := e.inst.ResultID
	if id == 0 {
		return b.v.fail(ErrStructural, e, 0, "Result <id> of %s is 0", e.inst.Opcode)
	}
	if id >= b.r.bound {
		return b.v.fail(ErrStructural, e, id, "Result <id> %s exceeds the module bound %d", b.v.describe(id), b.r.bound)
	}
	if _, ok := b.r.defs[id]; ok {
		return b.v.fail(ErrDuplicateDefinition, e, id, "ID %s has already been defined", b.v.describe(id))
	}
	b.r.defs[id] = e
	if ref, ok := b.forward[id]; ok {
		delete(b.forward, id)
		if ref.illegal != nil {
			return b.v.fail(ErrStructural, ref.illegal, id, "ID %s is used by %s before its definition",
				b.v.describe(id), ref.illegal.inst.Opcode)
		}
	}
	return nil
}

// record updates the module-level tables for e.
//
//nolint:gocyclo,cyclop // one case per bookkeeping instruction
func (b *registryBuilder) record(e *entry) {
	in := e.inst
	r := b.r
	switch in.Opcode {
	case spirv.OpCapability:
		r.capabilities.declare(spirv.Capability(in.Word(0)))
	case spirv.OpExtension:
		r.extensions = append(r.extensions, in.StringOperand(0))
	case spirv.OpMemoryModel:
		r.addressing = spirv.AddressingModel(in.Word(0))
		r.memoryModel = spirv.MemoryModel(in.Word(1))
	case spirv.OpEntryPoint:
		ep := &entryPoint{
			model:    spirv.ExecutionModel(in.Word(0)),
			function: in.Word(1),
			name:     in.StringOperand(2),
			def:      e,
		}
		for i := 3; i < in.NumOperands(); i++ {
			ep.interfaces = append(ep.interfaces, in.Word(i))
		}
		r.entryPoints = append(r.entryPoints, ep)
	case spirv.OpExecutionMode, spirv.OpExecutionModeID:
		fn := in.Word(0)
		r.executionModes[fn] = append(r.executionModes[fn], executionMode{
			mode:   spirv.ExecutionMode(in.Word(1)),
			params: paramWords(in, 2),
			def:    e,
		})
	case spirv.OpDecorate, spirv.OpDecorateID, spirv.OpMemberDecorate, spirv.OpDecorationGroup,
		spirv.OpGroupDecorate, spirv.OpGroupMemberDecorate:
		r.decorations.record(e)
	case spirv.OpFunction:
		f := &function{
			id:        in.ResultID,
			def:       e,
			typeID:    in.Word(3),
			calleeSet: make(map[uint32]bool),
		}
		r.functions[f.id] = f
		r.functionOrder = append(r.functionOrder, f.id)
		b.current = f
	case spirv.OpFunctionParameter:
		b.current.params = append(b.current.params, in.ResultID)
	case spirv.OpLabel:
		b.current.blocks = append(b.current.blocks, in.ResultID)
	case spirv.OpFunctionCall:
		callee := in.Word(2)
		if !b.current.calleeSet[callee] {
			b.current.calleeSet[callee] = true
			b.current.callees = append(b.current.callees, callee)
		}
	case spirv.OpFunctionEnd:
		b.current = nil
	}
}

// finish resolves the remaining forward references and freezes the registry.
func (b *registryBuilder) finish() (*registry, error) {
	if violation := b.layout.finish(); violation != nil {
		return nil, b.v.fail(violation.kind, nil, 0, "%s", violation.message)
	}
	for _, id := range b.forwardOrder {
		if ref, ok := b.forward[id]; ok {
			return nil, b.v.fail(ErrUnresolvedForwardReference, ref.user, id, "ID %s has not been defined", b.v.describe(id))
		}
	}
	if err := b.checkMemberDecorations(); err != nil {
		return nil, err
	}
	return b.r, nil
}

// checkMemberDecorations verifies member decorations target structs with an
// in-range member index.
func (b *registryBuilder) checkMemberDecorations() error {
	for _, e := range b.r.entries {
		in := e.inst
		switch in.Opcode {
		case spirv.OpMemberDecorate:
			if err := b.checkMember(e, in.Word(0), in.Word(1)); err != nil {
				return err
			}
		case spirv.OpGroupMemberDecorate:
			for i := 1; i+1 < in.NumOperands(); i += 2 {
				if err := b.checkMember(e, in.Word(i), in.Word(i+1)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (b *registryBuilder) checkMember(e *entry, target, member uint32) error {
	def := b.r.defs[target]
	if def.inst.Opcode != spirv.OpTypeStruct {
		return b.v.fail(ErrStructural, e, target, "%s Structure type %s is not a struct type",
			e.inst.Opcode, b.v.describe(target))
	}
	count := uint32(def.inst.NumOperands() - 1)
	if member >= count {
		return b.v.fail(ErrStructural, e, target,
			"Index %d provided in %s for struct %s is out of bounds. The structure has %d members. Largest valid index is %d.",
			member, e.inst.Opcode, b.v.describe(target), count, int(count)-1)
	}
	return nil
}

// mayForwardReference reports whether operand of op may name an id that is
// defined later in the module.
//
//nolint:gocyclo,cyclop // one case per opcode family
func mayForwardReference(op spirv.OpCode, operand int) bool {
	switch op {
	case spirv.OpEntryPoint, spirv.OpExecutionModeID,
		spirv.OpName, spirv.OpMemberName,
		spirv.OpDecorate, spirv.OpMemberDecorate, spirv.OpDecorateID,
		spirv.OpGroupDecorate, spirv.OpGroupMemberDecorate,
		spirv.OpTypeStruct, spirv.OpTypeForwardPointer, spirv.OpPhi:
		return true
	case spirv.OpExecutionMode:
		return operand == 0
	case spirv.OpTypePointer:
		return operand == 2
	case spirv.OpFunctionCall:
		return operand == 2
	case spirv.OpBranch, spirv.OpSelectionMerge:
		return operand == 0
	case spirv.OpLoopMerge:
		return operand <= 1
	case spirv.OpBranchConditional:
		return operand == 1 || operand == 2
	case spirv.OpSwitch:
		return operand >= 1
	case spirv.OpExtInst:
		return operand >= 4
	}
	return false
}

// def returns the defining entry of id, or nil.
func (r *registry) def(id uint32) *entry {
	return r.defs[id]
}

// inst returns the defining instruction of id, or nil.
func (r *registry) inst(id uint32) *spirv.Instruction {
	if e := r.defs[id]; e != nil {
		return e.inst
	}
	return nil
}

// opcode returns the defining opcode of id, or OpNop for unknown ids.
func (r *registry) opcode(id uint32) spirv.OpCode {
	if e := r.defs[id]; e != nil {
		return e.inst.Opcode
	}
	return spirv.OpNop
}

// executionModeOf returns the first declaration of mode on entry point fn.
func (r *registry) executionModeOf(fn uint32, mode spirv.ExecutionMode) (executionMode, bool) {
	for _, em := range r.executionModes[fn] {
		if em.mode == mode {
			return em, true
		}
	}
	return executionMode{}, false
}
