// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/spvval/spirv"
)

type refCheckKind uint8

const (
	checkUse            refCheckKind = iota // storage class and execution model of a use
	checkForbiddenModel                     // a storage class the built-in may not have under one model
)

// refCheck is a deferred built-in obligation. It is keyed by the id whose
// references must satisfy it and re-keyed as module-scope instructions
// derive new ids from that id.
type refCheck struct {
	kind       refCheckKind
	builtIn    spirv.BuiltIn
	rule       *builtInRule
	decoration Decoration
	origin     uint32 // decorated id
	via        uint32 // id the obligation reached the current reference through

	storage spirv.StorageClass   // checkForbiddenModel only
	model   spirv.ExecutionModel // checkForbiddenModel only
}

// refKey deduplicates registrations of the same obligation on the same id.
type refKey struct {
	id      uint32
	kind    refCheckKind
	builtIn spirv.BuiltIn
	origin  uint32
	member  int
	storage spirv.StorageClass
	model   spirv.ExecutionModel
}

// builtInChecker runs the two built-in phases: shape checks where the
// decoration is defined, then a scan of every instruction that evaluates the
// obligations pending on the ids it references.
type builtInChecker struct {
	v          *validator
	pending    map[uint32][]refCheck
	registered map[refKey]bool
}

// validateBuiltIns checks built-in decorations.
func (v *validator) validateBuiltIns() error {
	if err := v.checkBuiltInStructs(); err != nil {
		return err
	}
	if !v.vulkan() {
		return nil
	}
	c := &builtInChecker{
		v:          v,
		pending:    make(map[uint32][]refCheck),
		registered: make(map[refKey]bool),
	}
	for _, e := range v.reg.entries {
		id := e.inst.ResultID
		if id == 0 {
			continue
		}
		for _, dec := range v.reg.decorations.all(id) {
			if dec.Kind != spirv.DecorationBuiltIn || len(dec.Params) == 0 {
				continue
			}
			if err := c.atDefinition(e, dec); err != nil {
				return err
			}
		}
	}
	for _, e := range v.reg.entries {
		if err := c.atReference(e); err != nil {
			return err
		}
	}
	return nil
}

// checkBuiltInStructs enforces that structs carry BuiltIn only as member
// decorations, and on all members or none.
func (v *validator) checkBuiltInStructs() error {
	r := v.reg
	for _, e := range r.entries {
		if e.inst.Opcode != spirv.OpTypeStruct {
			continue
		}
		id := e.inst.ResultID
		if _, ok := r.decorations.builtIn(id); ok {
			return v.fail(ErrInvalidModule, e, 0,
				"BuiltIn decoration on struct %s must be applied to its members with OpMemberDecorate", v.describe(id))
		}
		var members []int
		for _, dec := range r.decorations.all(id) {
			if dec.Member != NoMember && dec.Kind == spirv.DecorationBuiltIn && !slices.Contains(members, dec.Member) {
				members = append(members, dec.Member)
			}
		}
		if len(members) > 0 && len(members) != e.inst.NumOperands()-1 {
			return v.fail(ErrInvalidModule, e, 0,
				"When BuiltIn decoration is applied to a structure-type member, all members of that structure type must also be decorated with BuiltIn (struct %s)",
				v.describe(id))
		}
	}
	return nil
}

// atDefinition checks the decorated id itself and seeds its reference obligations.
func (c *builtInChecker) atDefinition(e *entry, dec Decoration) error {
	v := c.v
	b := spirv.BuiltIn(dec.Params[0])
	if openCLOnlyBuiltIns[b] {
		return v.fail(ErrInvalidModule, e, 0, "%s spec doesn't allow BuiltIn %s to be used", v.env, b)
	}
	rule, ok := builtInRules[b]
	if !ok {
		return nil
	}
	dataType, err := c.underlyingType(e, dec, b, rule)
	if err != nil {
		return err
	}
	if !c.matches(c.peelArrayed(dataType, rule.shape), rule.shape) {
		return v.fail(ErrType, e, 0, "%sAccording to the %s spec BuiltIn %s variable needs to be a %s. %s",
			vuid(b, vuidType), v.env, b, rule.shape, c.describeType(dataType))
	}
	seed := refCheck{
		kind:       checkUse,
		builtIn:    b,
		rule:       rule,
		decoration: dec,
		origin:     e.inst.ResultID,
		via:        e.inst.ResultID,
	}
	return c.evaluate(seed, e)
}

// underlyingType returns the type the built-in decoration constrains.
func (c *builtInChecker) underlyingType(e *entry, dec Decoration, b spirv.BuiltIn, rule *builtInRule) (uint32, error) {
	v := c.v
	r := v.reg
	in := e.inst
	if dec.Member != NoMember {
		members := r.members(in.ResultID)
		if dec.Member >= len(members) {
			return 0, v.fail(ErrStructural, e, 0, "BuiltIn member %d of %s is out of range", dec.Member, v.describe(in.ResultID))
		}
		return members[dec.Member], nil
	}
	switch {
	case in.Opcode == spirv.OpVariable:
		_, pointee, _ := r.pointerInfo(in.TypeID)
		return pointee, nil
	case in.Opcode == spirv.OpUntypedVariableKHR:
		return in.Word(3), nil
	case in.Opcode.IsConstant():
		if !rule.constant {
			return 0, v.fail(ErrType, e, 0, "BuiltIn %s cannot decorate the constant %s", b, v.describe(in.ResultID))
		}
		return in.TypeID, nil
	}
	return 0, v.fail(ErrType, e, 0, "BuiltIns can only target variables, structure members or constants, found %s", in.Opcode)
}

// peelArrayed strips the per-vertex array level of arrayed interfaces.
func (c *builtInChecker) peelArrayed(t uint32, s builtInShape) uint32 {
	r := c.v.reg
	if !s.arrayed || !r.isArray(t) {
		return t
	}
	inner := r.elementType(t)
	if s.kind == shapeArray && !r.isArray(inner) {
		return t
	}
	return inner
}

func (c *builtInChecker) matches(t uint32, s builtInShape) bool {
	r := c.v.reg
	switch s.kind {
	case shapeVector:
		comp, count, ok := r.vectorInfo(t)
		return ok && count == s.count && c.scalarMatches(comp, s)
	case shapeArray:
		if r.opcode(t) != spirv.OpTypeArray {
			return false
		}
		if s.count != 0 {
			if n, ok := r.arrayLength(t); !ok || n != uint64(s.count) {
				return false
			}
		}
		return c.scalarMatches(r.elementType(t), s)
	}
	return c.scalarMatches(t, s)
}

func (c *builtInChecker) scalarMatches(t uint32, s builtInShape) bool {
	r := c.v.reg
	switch s.component {
	case componentFloat:
		return r.isFloatScalar(t) && r.scalarWidth(t) == s.width
	case componentInt:
		return r.isIntScalar(t) && r.scalarWidth(t) == s.width
	}
	return r.isBoolScalar(t)
}

// describeType renders the defining instruction of a type for diagnostics.
func (c *builtInChecker) describeType(t uint32) string {
	in := c.v.reg.inst(t)
	if in == nil {
		return fmt.Sprintf("Type %s is not defined", c.v.describe(t))
	}
	return "Found " + spirv.FormatInstruction(in, c.v.names)
}

// atReference evaluates the obligations on every id e references. Each id
// is considered once per instruction.
func (c *builtInChecker) atReference(e *entry) error {
	in := e.inst
	var seen []uint32
	var err error
	in.ForEachID(func(_ int, id uint32) {
		if err != nil || id == in.ResultID || slices.Contains(seen, id) {
			return
		}
		seen = append(seen, id)
		for _, chk := range c.pending[id] {
			if err = c.evaluate(chk, e); err != nil {
				return
			}
		}
	})
	return err
}

func (c *builtInChecker) evaluate(chk refCheck, ref *entry) error {
	if chk.kind == checkForbiddenModel {
		return c.evaluateForbidden(chk, ref)
	}
	return c.evaluateUse(chk, ref)
}

// evaluateUse checks the storage class named by ref, registers the negative
// obligations it implies, and checks the execution models ref runs under.
func (c *builtInChecker) evaluateUse(chk refCheck, ref *entry) error {
	v := c.v
	rule := chk.rule
	b := chk.builtIn

	if sc := storageClassOf(ref.inst); sc != spirv.StorageClassNone {
		legal := (sc == spirv.StorageClassInput && rule.input != nil) ||
			(sc == spirv.StorageClassOutput && rule.output != nil)
		if !legal {
			return v.fail(ErrStorageClass, ref, 0,
				"%s%s spec allows BuiltIn %s to be only used for variables with %s storage class. %s",
				vuid(b, vuidStorage), v.env, b, rule.storageNames(), c.chain(chk, ref))
		}
		for _, m := range rule.forbiddenUnder(sc) {
			neg := chk
			neg.kind = checkForbiddenModel
			neg.storage = sc
			neg.model = m
			if err := c.evaluateForbidden(neg, ref); err != nil {
				return err
			}
		}
	}

	if ref.function == 0 {
		c.propagate(chk, ref)
		return nil
	}
	for _, m := range v.reg.reachingModels(ref.function) {
		if !rule.allows(m) {
			return v.fail(ErrExecutionModel, ref, 0,
				"%s%s spec allows BuiltIn %s to be used only with %s execution models, found execution model %s. %s",
				vuid(b, vuidModel), v.env, b, rule.modelNames(), m, c.chain(chk, ref))
		}
	}
	if rule.depthReplacing {
		for _, ep := range v.reg.reachingEntryPoints(ref.function) {
			if ep.model != spirv.ExecutionModelFragment {
				continue
			}
			if _, ok := v.reg.executionModeOf(ep.function, spirv.ExecutionModeDepthReplacing); !ok {
				return v.fail(ErrExecutionModel, ref, 0,
					"%s%s spec requires DepthReplacing execution mode to be declared when using BuiltIn %s, entry point %s has none. %s",
					vuid(b, vuidExtra), v.env, b, v.describe(ep.function), c.chain(chk, ref))
			}
		}
	}
	return nil
}

// evaluateForbidden fails when ref runs under the forbidden model.
func (c *builtInChecker) evaluateForbidden(chk refCheck, ref *entry) error {
	v := c.v
	if ref.function == 0 {
		c.propagate(chk, ref)
		return nil
	}
	if slices.Contains(v.reg.reachingModels(ref.function), chk.model) {
		return v.fail(ErrExecutionModel, ref, 0,
			"%s%s spec doesn't allow BuiltIn %s to be used for variables with %s storage class if execution model is %s. %s",
			vuid(chk.builtIn, vuidForbidden), v.env, chk.builtIn, chk.storage, chk.model, c.chain(chk, ref))
	}
	return nil
}

// propagate re-keys chk on the id ref defines. Instructions without a
// result end the chain.
func (c *builtInChecker) propagate(chk refCheck, ref *entry) {
	id := ref.inst.ResultID
	if id == 0 {
		return
	}
	key := refKey{
		id:      id,
		kind:    chk.kind,
		builtIn: chk.builtIn,
		origin:  chk.origin,
		member:  chk.decoration.Member,
		storage: chk.storage,
		model:   chk.model,
	}
	if c.registered[key] {
		return
	}
	c.registered[key] = true
	chk.via = id
	c.pending[id] = append(c.pending[id], chk)
}

// chain explains how the built-in reached the reporting instruction.
func (c *builtInChecker) chain(chk refCheck, ref *entry) string {
	v := c.v
	var sb strings.Builder
	fmt.Fprintf(&sb, "ID %s (%s) is decorated with BuiltIn %s", v.describe(chk.origin), v.reg.opcode(chk.origin), chk.builtIn)
	if chk.decoration.Member != NoMember {
		fmt.Fprintf(&sb, " on member %d", chk.decoration.Member)
	}
	if chk.via != chk.origin && chk.via != ref.inst.ResultID {
		fmt.Fprintf(&sb, ", reached through ID %s (%s)", v.describe(chk.via), v.reg.opcode(chk.via))
	}
	if ref.inst.ResultID != chk.origin {
		fmt.Fprintf(&sb, ", referenced by %s", ref.inst.Opcode)
		if ref.inst.ResultID != 0 {
			fmt.Fprintf(&sb, " %s", v.describe(ref.inst.ResultID))
		}
	}
	if ref.function != 0 {
		fmt.Fprintf(&sb, " in function %s", v.describe(ref.function))
	}
	sb.WriteString(".")
	return sb.String()
}
