// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import "github.com/gogpu/spvval/spirv"

// typeOf returns the result type of the value id, or 0.
func (r *registry) typeOf(id uint32) uint32 {
	if in := r.inst(id); in != nil {
		return in.TypeID
	}
	return 0
}

func (r *registry) isPointerType(t uint32) bool {
	op := r.opcode(t)
	return op == spirv.OpTypePointer || op == spirv.OpTypeUntypedPointerKHR
}

func (r *registry) isUntypedPointerType(t uint32) bool {
	return r.opcode(t) == spirv.OpTypeUntypedPointerKHR
}

// pointerInfo returns the storage class and pointee of a pointer type.
// Untyped pointers report a zero pointee.
func (r *registry) pointerInfo(t uint32) (spirv.StorageClass, uint32, bool) {
	in := r.inst(t)
	if in == nil {
		return 0, 0, false
	}
	switch in.Opcode {
	case spirv.OpTypePointer:
		return spirv.StorageClass(in.Word(1)), in.Word(2), true
	case spirv.OpTypeUntypedPointerKHR:
		return spirv.StorageClass(in.Word(1)), 0, true
	}
	return 0, 0, false
}

// storageClassOf returns the storage class a variable or pointer type
// instruction names, or StorageClassNone for every other instruction.
func storageClassOf(in *spirv.Instruction) spirv.StorageClass {
	switch in.Opcode {
	case spirv.OpVariable, spirv.OpUntypedVariableKHR:
		return spirv.StorageClass(in.Word(2))
	case spirv.OpTypePointer, spirv.OpTypeUntypedPointerKHR, spirv.OpTypeForwardPointer:
		return spirv.StorageClass(in.Word(1))
	}
	return spirv.StorageClassNone
}

func isVariable(op spirv.OpCode) bool {
	return op == spirv.OpVariable || op == spirv.OpUntypedVariableKHR
}

// variableDataType returns the type a variable instruction allocates, or 0
// for an untyped variable declared without a data type.
func (r *registry) variableDataType(in *spirv.Instruction) uint32 {
	if in.Opcode == spirv.OpUntypedVariableKHR {
		return in.Word(3)
	}
	_, t, _ := r.pointerInfo(in.TypeID)
	return t
}

func (r *registry) isIntScalar(t uint32) bool   { return r.opcode(t) == spirv.OpTypeInt }
func (r *registry) isFloatScalar(t uint32) bool { return r.opcode(t) == spirv.OpTypeFloat }
func (r *registry) isBoolScalar(t uint32) bool  { return r.opcode(t) == spirv.OpTypeBool }

// scalarWidth returns the bit width of an int or float type, or 0.
func (r *registry) scalarWidth(t uint32) uint32 {
	switch in := r.inst(t); {
	case in == nil:
		return 0
	case in.Opcode == spirv.OpTypeInt || in.Opcode == spirv.OpTypeFloat:
		return in.Word(1)
	}
	return 0
}

func (r *registry) isInt32Scalar(t uint32) bool {
	return r.isIntScalar(t) && r.scalarWidth(t) == 32
}

// vectorInfo returns the component type and count of a vector type.
func (r *registry) vectorInfo(t uint32) (uint32, uint32, bool) {
	in := r.inst(t)
	if in == nil || in.Opcode != spirv.OpTypeVector {
		return 0, 0, false
	}
	return in.Word(1), in.Word(2), true
}

// scalarOrComponent returns t, or its component type when t is a vector.
func (r *registry) scalarOrComponent(t uint32) uint32 {
	if comp, _, ok := r.vectorInfo(t); ok {
		return comp
	}
	return t
}

func (r *registry) isScalarVectorOrMatrix(t uint32) bool {
	switch r.opcode(t) {
	case spirv.OpTypeInt, spirv.OpTypeFloat, spirv.OpTypeBool, spirv.OpTypeVector, spirv.OpTypeMatrix:
		return true
	}
	return false
}

// isArray reports whether t is a sized or runtime array.
func (r *registry) isArray(t uint32) bool {
	op := r.opcode(t)
	return op == spirv.OpTypeArray || op == spirv.OpTypeRuntimeArray
}

// elementType returns the element type of an array, the component type of
// a vector or the column type of a matrix.
func (r *registry) elementType(t uint32) uint32 {
	in := r.inst(t)
	if in == nil {
		return 0
	}
	switch in.Opcode {
	case spirv.OpTypeArray, spirv.OpTypeRuntimeArray, spirv.OpTypeVector, spirv.OpTypeMatrix:
		return in.Word(1)
	}
	return 0
}

// arrayLength returns the statically known length of a sized array.
func (r *registry) arrayLength(t uint32) (uint64, bool) {
	in := r.inst(t)
	if in == nil || in.Opcode != spirv.OpTypeArray {
		return 0, false
	}
	return r.constantValue(in.Word(2))
}

// members returns the member types of a struct type.
func (r *registry) members(t uint32) []uint32 {
	in := r.inst(t)
	if in == nil || in.Opcode != spirv.OpTypeStruct {
		return nil
	}
	members := make([]uint32, 0, in.NumOperands()-1)
	for i := 1; i < in.NumOperands(); i++ {
		members = append(members, in.Word(i))
	}
	return members
}

// constantValue evaluates an OpConstant of integer type. Specialization
// constants are not evaluable.
func (r *registry) constantValue(id uint32) (uint64, bool) {
	in := r.inst(id)
	if in == nil {
		return 0, false
	}
	switch in.Opcode {
	case spirv.OpConstant:
		if !r.isIntScalar(in.TypeID) {
			return 0, false
		}
		return in.Literal(2), true
	case spirv.OpConstantNull:
		if !r.isIntScalar(in.TypeID) {
			return 0, false
		}
		return 0, true
	}
	return 0, false
}

// containsType reports whether t or any type nested in it by value
// satisfies pred. Pointers are not followed.
func (r *registry) containsType(t uint32, pred func(in *spirv.Instruction) bool) bool {
	in := r.inst(t)
	if in == nil {
		return false
	}
	if pred(in) {
		return true
	}
	switch in.Opcode {
	case spirv.OpTypeArray, spirv.OpTypeRuntimeArray, spirv.OpTypeVector, spirv.OpTypeMatrix:
		return r.containsType(in.Word(1), pred)
	case spirv.OpTypeStruct:
		for _, m := range r.members(t) {
			if r.containsType(m, pred) {
				return true
			}
		}
	}
	return false
}

func isWidth(op spirv.OpCode, width uint32) func(*spirv.Instruction) bool {
	return func(in *spirv.Instruction) bool {
		return in.Opcode == op && in.Word(1) == width
	}
}

// containsLimitedUseType reports whether t holds 8- or 16-bit scalars whose
// arithmetic capability is not declared.
func (r *registry) containsLimitedUseType(t uint32) bool {
	caps := r.capabilities
	if !caps.has(spirv.CapabilityInt16) && r.containsType(t, isWidth(spirv.OpTypeInt, 16)) {
		return true
	}
	if !caps.has(spirv.CapabilityFloat16) && r.containsType(t, isWidth(spirv.OpTypeFloat, 16)) {
		return true
	}
	return !caps.has(spirv.CapabilityInt8) && r.containsType(t, isWidth(spirv.OpTypeInt, 8))
}

// isBlockStruct reports whether t is a struct decorated Block or BufferBlock.
func (r *registry) isBlockStruct(t uint32) bool {
	if r.opcode(t) != spirv.OpTypeStruct {
		return false
	}
	return r.decorations.has(t, spirv.DecorationBlock) || r.decorations.has(t, spirv.DecorationBufferBlock)
}

// isResourceType reports whether t is an image, sampler or sampled image.
func (r *registry) isResourceType(t uint32) bool {
	switch r.opcode(t) {
	case spirv.OpTypeImage, spirv.OpTypeSampler, spirv.OpTypeSampledImage:
		return true
	}
	return false
}

// stripArrays removes any number of array levels from t.
func (r *registry) stripArrays(t uint32) uint32 {
	for r.isArray(t) {
		t = r.elementType(t)
	}
	return t
}
