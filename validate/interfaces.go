// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import (
	"slices"

	"github.com/gogpu/spvval/spirv"
)

// validateInterfaces checks entry point interface lists and, for Vulkan,
// the location assignments of user-defined stage I/O.
func (v *validator) validateInterfaces() error {
	for _, ep := range v.reg.entryPoints {
		if err := v.checkInterfaceList(ep); err != nil {
			return err
		}
	}
	if err := v.checkInterfaceUses(); err != nil {
		return err
	}
	if !v.vulkan() {
		return nil
	}
	for _, ep := range v.reg.entryPoints {
		if err := v.checkLocations(ep); err != nil {
			return err
		}
	}
	return nil
}

// interfaceEligible reports whether a global variable of class sc must be
// listed by the entry points that use it.
func (v *validator) interfaceEligible(sc spirv.StorageClass) bool {
	if v.reg.version.AtLeast(spirv.Version1_4) {
		return sc != spirv.StorageClassFunction
	}
	return sc == spirv.StorageClassInput || sc == spirv.StorageClassOutput
}

func (v *validator) checkInterfaceList(ep *entryPoint) error {
	r := v.reg
	for i, id := range ep.interfaces {
		def := r.def(id)
		if def == nil || !isVariable(def.inst.Opcode) {
			return v.fail(ErrInterface, ep.def, id,
				"Interfaces passed to OpEntryPoint must be of type OpTypeVariable. Found %s.", r.opcode(id))
		}
		sc := storageClassOf(def.inst)
		if !v.interfaceEligible(sc) {
			if r.version.AtLeast(spirv.Version1_4) {
				return v.fail(ErrInterface, ep.def, id,
					"OpEntryPoint interfaces should only list global variables, %s has Function storage class", v.describe(id))
			}
			return v.fail(ErrInterface, ep.def, id,
				"OpEntryPoint interfaces must be OpVariables with Storage Class of Input(1) or Output(3). Found Storage Class %d for Entry Point id %s.",
				uint32(sc), v.describe(ep.function))
		}
		if r.version.AtLeast(spirv.Version1_4) && slices.Contains(ep.interfaces[:i], id) {
			return v.fail(ErrInterface, ep.def, id,
				"Non-unique OpEntryPoint interface %s is disallowed", v.describe(id))
		}
	}
	return nil
}

// checkInterfaceUses requires every eligible global variable to be listed
// by each entry point that reaches a function using it.
func (v *validator) checkInterfaceUses() error {
	r := v.reg
	for _, e := range r.entries {
		in := e.inst
		if e.function != 0 || !isVariable(in.Opcode) {
			continue
		}
		if !v.interfaceEligible(storageClassOf(in)) {
			continue
		}
		for _, fn := range r.functionsUsing(in.ResultID) {
			for _, ep := range r.reachingEntryPoints(fn) {
				if slices.Contains(ep.interfaces, in.ResultID) {
					continue
				}
				return v.fail(ErrInterface, ep.def, in.ResultID,
					"Interface variable id %s is used by entry point '%s' id %s, but is not listed as an interface",
					v.describe(in.ResultID), ep.name, v.describe(ep.function))
			}
		}
	}
	return nil
}

// functionsUsing returns, in definition order, the functions that reference
// id directly or through module-scope instructions derived from it.
func (r *registry) functionsUsing(id uint32) []uint32 {
	used := make(map[uint32]bool)
	visited := map[uint32]bool{id: true}
	queue := []uint32{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, user := range r.uses[cur] {
			if user.function != 0 {
				used[user.function] = true
				continue
			}
			if res := user.inst.ResultID; res != 0 && !visited[res] {
				visited[res] = true
				queue = append(queue, res)
			}
		}
	}
	var fns []uint32
	for _, fn := range r.functionOrder {
		if used[fn] {
			fns = append(fns, fn)
		}
	}
	return fns
}

// locationSet tracks the consumed slots, location*4 + component, of one
// storage class of one entry point.
type locationSet map[uint64]bool

// locationLimit bounds the locations a single interface variable may span.
const locationLimit = 1 << 16

type locationChecker struct {
	v       *validator
	ep      *entryPoint
	inputs  locationSet
	outputs locationSet
	index1  locationSet // Fragment outputs decorated Index 1
}

// checkLocations rejects overlapping Location/Component assignments among
// the user-defined interface variables of ep.
func (v *validator) checkLocations(ep *entryPoint) error {
	switch ep.model {
	case spirv.ExecutionModelVertex, spirv.ExecutionModelTessellationControl,
		spirv.ExecutionModelTessellationEvaluation, spirv.ExecutionModelGeometry,
		spirv.ExecutionModelFragment:
	default:
		return nil
	}
	c := &locationChecker{
		v:       v,
		ep:      ep,
		inputs:  make(locationSet),
		outputs: make(locationSet),
		index1:  make(locationSet),
	}
	var seen []uint32
	for _, id := range ep.interfaces {
		if slices.Contains(seen, id) {
			continue
		}
		seen = append(seen, id)
		if err := c.variable(id); err != nil {
			return err
		}
	}
	return nil
}

// arrayedIO reports whether sc variables of model carry a per-vertex array level.
func arrayedIO(model spirv.ExecutionModel, sc spirv.StorageClass) bool {
	switch model {
	case spirv.ExecutionModelTessellationControl:
		return true
	case spirv.ExecutionModelTessellationEvaluation, spirv.ExecutionModelGeometry:
		return sc == spirv.StorageClassInput
	}
	return false
}

func (c *locationChecker) variable(id uint32) error {
	r := c.v.reg
	def := r.def(id)
	if def == nil || !isVariable(def.inst.Opcode) {
		return nil
	}
	sc := storageClassOf(def.inst)
	if sc != spirv.StorageClassInput && sc != spirv.StorageClassOutput {
		return nil
	}
	t := r.variableDataType(def.inst)
	if t == 0 {
		return nil
	}
	if _, ok := r.decorations.builtIn(id); ok {
		return nil
	}
	if arrayedIO(c.ep.model, sc) && !r.decorations.has(id, spirv.DecorationPatch) && r.isArray(t) {
		t = r.elementType(t)
	}
	if r.decorations.hasMemberBuiltIn(r.stripArrays(t)) {
		return nil
	}

	set := c.inputs
	if sc == spirv.StorageClassOutput {
		set = c.outputs
		if dec, ok := r.decorations.find(id, spirv.DecorationIndex); ok && c.ep.model == spirv.ExecutionModelFragment &&
			len(dec.Params) > 0 && dec.Params[0] == 1 {
			set = c.index1
		}
	}

	if loc, ok := r.decorations.find(id, spirv.DecorationLocation); ok && len(loc.Params) > 0 {
		component := uint32(0)
		if comp, ok := r.decorations.find(id, spirv.DecorationComponent); ok && len(comp.Params) > 0 {
			component = comp.Params[0]
		}
		if err := c.checkSpan(id, t, uint64(loc.Params[0]), component); err != nil {
			return err
		}
		return c.consume(set, sc, id, t, uint64(loc.Params[0]), component)
	}

	if !r.isBlockStruct(t) {
		return c.v.fail(ErrInterface, c.ep.def, id,
			"[VUID-StandaloneSpirv-Location-04916] Variable %s must be decorated with a location", c.v.describe(id))
	}
	for i, m := range r.members(t) {
		loc, ok := r.decorations.findMember(t, i, spirv.DecorationLocation)
		if !ok || len(loc.Params) == 0 {
			return c.v.fail(ErrInterface, c.ep.def, id,
				"[VUID-StandaloneSpirv-Location-04919] Member index %d of %s is missing a location assignment", i, c.v.describe(t))
		}
		component := uint32(0)
		if comp, ok := r.decorations.findMember(t, i, spirv.DecorationComponent); ok && len(comp.Params) > 0 {
			component = comp.Params[0]
		}
		if err := c.checkSpan(id, m, uint64(loc.Params[0]), component); err != nil {
			return err
		}
		if err := c.consume(set, sc, id, m, uint64(loc.Params[0]), component); err != nil {
			return err
		}
	}
	return nil
}

// checkSpan rejects assignments whose locations run past locationLimit and
// component indices outside a location.
func (c *locationChecker) checkSpan(id, t uint32, location uint64, component uint32) error {
	if component > 3 {
		return c.v.fail(ErrInterface, c.ep.def, id,
			"[VUID-StandaloneSpirv-Component-04920] Component index %d for %s interferes with the next location", component, c.v.describe(id))
	}
	if end := location + c.locations(t); end > locationLimit {
		return c.v.fail(ErrInterface, c.ep.def, id,
			"Variable %s spans locations %d to %d, beyond the limit of %d locations", c.v.describe(id), location, end-1, locationLimit)
	}
	return nil
}

// consume marks the slots t occupies starting at location/component.
func (c *locationChecker) consume(set locationSet, sc spirv.StorageClass, id, t uint32, location uint64, component uint32) error {
	r := c.v.reg
	switch r.opcode(t) {
	case spirv.OpTypeArray, spirv.OpTypeMatrix:
		elem := r.elementType(t)
		step := c.locations(elem)
		if step == 0 {
			return nil
		}
		n := c.count(t)
		for i := uint64(0); i < n; i++ {
			if err := c.consume(set, sc, id, elem, location+i*step, component); err != nil {
				return err
			}
		}
		return nil
	case spirv.OpTypeStruct:
		for _, m := range r.members(t) {
			if err := c.consume(set, sc, id, m, location, 0); err != nil {
				return err
			}
			location += c.locations(m)
		}
		return nil
	}

	components := c.components(t)
	if components <= 4 && component+components > 4 {
		return c.v.fail(ErrInterface, c.ep.def, id,
			"[VUID-StandaloneSpirv-Component-04920] Component index %d for %s interferes with the next location", component, c.v.describe(id))
	}
	for i := uint64(0); i < uint64(components); i++ {
		slot := location*4 + uint64(component) + i
		if set[slot] {
			direction := "input"
			if sc == spirv.StorageClassOutput {
				direction = "output"
			}
			return c.v.fail(ErrInterface, c.ep.def, id,
				"[VUID-StandaloneSpirv-OpEntryPoint-08722] Entry-point has conflicting %s location assignment at location %d, component %d",
				direction, slot/4, slot%4)
		}
		set[slot] = true
	}
	return nil
}

// count returns the element count of an array or matrix. Arrays whose
// length is not a literal constant count as one element.
func (c *locationChecker) count(t uint32) uint64 {
	r := c.v.reg
	in := r.inst(t)
	if in.Opcode == spirv.OpTypeMatrix {
		return uint64(in.Word(2))
	}
	if n, ok := r.arrayLength(t); ok && n > 0 {
		return n
	}
	return 1
}

// components returns the 32-bit components a scalar or vector occupies.
func (c *locationChecker) components(t uint32) uint32 {
	r := c.v.reg
	n := uint32(1)
	scalar := t
	if comp, count, ok := r.vectorInfo(t); ok {
		n = count
		scalar = comp
	}
	if r.scalarWidth(scalar) == 64 {
		n *= 2
	}
	return n
}

// locations returns the number of locations t occupies, saturated just
// above locationLimit.
func (c *locationChecker) locations(t uint32) uint64 {
	r := c.v.reg
	var n uint64
	switch r.opcode(t) {
	case spirv.OpTypeArray, spirv.OpTypeMatrix:
		n = min(c.count(t), locationLimit+1) * c.locations(r.elementType(t))
	case spirv.OpTypeStruct:
		for _, m := range r.members(t) {
			n += c.locations(m)
		}
	default:
		n = uint64((c.components(t) + 3) / 4)
	}
	return min(n, locationLimit+1)
}
