// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import (
	"github.com/gogpu/spvval/spirv"
)

// atomicOperands locates the operands of one atomic instruction.
type atomicOperands struct {
	pointer    int
	scope      int
	semantics  int
	unequal    int // CompareExchange unequal semantics, -1 otherwise
	value      int // -1 when absent
	comparator int // -1 when absent
}

func atomicLayout(op spirv.OpCode) atomicOperands {
	switch op {
	case spirv.OpAtomicStore:
		return atomicOperands{pointer: 0, scope: 1, semantics: 2, unequal: -1, value: 3, comparator: -1}
	case spirv.OpAtomicFlagClear:
		return atomicOperands{pointer: 0, scope: 1, semantics: 2, unequal: -1, value: -1, comparator: -1}
	case spirv.OpAtomicLoad, spirv.OpAtomicIIncrement, spirv.OpAtomicIDecrement, spirv.OpAtomicFlagTestAndSet:
		return atomicOperands{pointer: 2, scope: 3, semantics: 4, unequal: -1, value: -1, comparator: -1}
	case spirv.OpAtomicCompareExchange, spirv.OpAtomicCompareExchangeWeak:
		return atomicOperands{pointer: 2, scope: 3, semantics: 4, unequal: 5, value: 6, comparator: 7}
	}
	return atomicOperands{pointer: 2, scope: 3, semantics: 4, unequal: -1, value: 5, comparator: -1}
}

func isFloatAtomic(op spirv.OpCode) bool {
	return op == spirv.OpAtomicFAddEXT || op == spirv.OpAtomicFMinEXT || op == spirv.OpAtomicFMaxEXT
}

// validateAtomics checks every atomic instruction.
func (v *validator) validateAtomics() error {
	for _, e := range v.reg.entries {
		if !e.inst.Opcode.IsAtomic() {
			continue
		}
		if err := v.checkAtomic(e); err != nil {
			return err
		}
	}
	return nil
}

//nolint:gocyclo,cyclop // atomic rules are a flat list
func (v *validator) checkAtomic(e *entry) error {
	in := e.inst
	r := v.reg
	op := in.Opcode
	layout := atomicLayout(op)

	// dataType is the type the atomic operates on: the result type, or the
	// stored value's type for OpAtomicStore.
	dataType := in.TypeID
	switch op {
	case spirv.OpAtomicStore:
		dataType = r.typeOf(in.Word(layout.value))
	case spirv.OpAtomicFlagTestAndSet:
		if !r.isBoolScalar(in.TypeID) {
			return v.fail(ErrType, e, 0, "%s: expected Result Type to be bool scalar type", op)
		}
	}

	if op != spirv.OpAtomicFlagTestAndSet && op != spirv.OpAtomicFlagClear {
		if err := v.checkAtomicDataType(e, dataType); err != nil {
			return err
		}
	}

	ptr := in.Word(layout.pointer)
	ptrType := r.typeOf(ptr)
	sc, pointee, ok := r.pointerInfo(ptrType)
	if !ok {
		return v.fail(ErrType, e, 0, "%s: expected Pointer to be a pointer type", op)
	}
	if !r.isUntypedPointerType(ptrType) {
		switch op {
		case spirv.OpAtomicFlagTestAndSet, spirv.OpAtomicFlagClear:
			if !r.isInt32Scalar(pointee) {
				return v.fail(ErrType, e, 0, "%s: expected Pointer to point to a value of 32-bit integer type", op)
			}
		default:
			if pointee != dataType {
				return v.fail(ErrType, e, 0, "%s: expected Pointer to point to a value of type Result Type", op)
			}
		}
	}
	if err := v.checkAtomicStorageClass(e, sc); err != nil {
		return err
	}

	if err := v.checkScope(e, in.Word(layout.scope)); err != nil {
		return err
	}
	if err := v.checkSemantics(e, in.Word(layout.semantics), "Memory Semantics"); err != nil {
		return err
	}
	if layout.unequal >= 0 {
		if err := v.checkSemantics(e, in.Word(layout.unequal), "Memory Semantics Unequal"); err != nil {
			return err
		}
		equal, eqOK := r.constantValue(in.Word(layout.semantics))
		unequal, unOK := r.constantValue(in.Word(layout.unequal))
		volatile := uint64(spirv.MemorySemanticsVolatile)
		if eqOK && unOK && equal&volatile != unequal&volatile {
			return v.fail(ErrMemoryAccess, e, 0, "%s: Volatile mask setting must match for Equal and Unequal memory semantics", op)
		}
	}

	if layout.value >= 0 && op != spirv.OpAtomicStore && r.typeOf(in.Word(layout.value)) != in.TypeID {
		return v.fail(ErrType, e, 0, "%s: expected Value to be of same type as Result Type", op)
	}
	if layout.comparator >= 0 && r.typeOf(in.Word(layout.comparator)) != in.TypeID {
		return v.fail(ErrType, e, 0, "%s: expected Comparator to be of same type as Result Type", op)
	}
	return nil
}

// checkAtomicDataType checks the scalar kind, width and capability of the
// value an atomic operates on.
//
//nolint:gocyclo,cyclop // one rule per opcode family
func (v *validator) checkAtomicDataType(e *entry, t uint32) error {
	r := v.reg
	op := e.inst.Opcode
	caps := r.capabilities
	width := r.scalarWidth(t)

	switch op {
	case spirv.OpAtomicFAddEXT, spirv.OpAtomicFMinEXT, spirv.OpAtomicFMaxEXT:
		if !r.isFloatScalar(t) {
			return v.fail(ErrType, e, 0, "%s: expected Result Type to be float scalar type", op)
		}
		var need spirv.Capability
		switch {
		case op == spirv.OpAtomicFAddEXT && width == 16:
			need = spirv.CapabilityAtomicFloat16AddEXT
		case op == spirv.OpAtomicFAddEXT && width == 32:
			need = spirv.CapabilityAtomicFloat32AddEXT
		case op == spirv.OpAtomicFAddEXT && width == 64:
			need = spirv.CapabilityAtomicFloat64AddEXT
		case width == 16:
			need = spirv.CapabilityAtomicFloat16MinMaxEXT
		case width == 32:
			need = spirv.CapabilityAtomicFloat32MinMaxEXT
		case width == 64:
			need = spirv.CapabilityAtomicFloat64MinMaxEXT
		default:
			return v.fail(ErrType, e, 0, "%s: unsupported float width %d", op, width)
		}
		if !caps.has(need) {
			return v.fail(ErrCapability, e, 0, "%s: %d-bit float atomics require the %s capability", op, width, need)
		}
		return nil
	case spirv.OpAtomicLoad, spirv.OpAtomicStore, spirv.OpAtomicExchange:
		if !r.isIntScalar(t) && !r.isFloatScalar(t) {
			return v.fail(ErrType, e, 0, "%s: expected Result Type to be integer or float scalar type", op)
		}
	default:
		if !r.isIntScalar(t) {
			return v.fail(ErrType, e, 0, "%s: expected Result Type to be integer scalar type", op)
		}
	}

	if r.isIntScalar(t) {
		if width == 64 && !caps.has(spirv.CapabilityInt64Atomics) {
			return v.fail(ErrCapability, e, 0, "%s: 64-bit atomics require the Int64Atomics capability", op)
		}
		if v.vulkan() && width != 32 && width != 64 {
			return v.fail(ErrType, e, 0,
				"%s: according to the Vulkan spec atomic Result Type needs to be a 32-bit int scalar type", op)
		}
	}
	if r.isFloatScalar(t) && v.vulkan() && width != 32 {
		return v.fail(ErrType, e, 0,
			"%s: according to the Vulkan spec atomic Result Type needs to be a 32-bit float scalar type", op)
	}
	return nil
}

func (v *validator) checkAtomicStorageClass(e *entry, sc spirv.StorageClass) error {
	op := e.inst.Opcode
	switch sc {
	case spirv.StorageClassUniform, spirv.StorageClassWorkgroup, spirv.StorageClassCrossWorkgroup,
		spirv.StorageClassGeneric, spirv.StorageClassAtomicCounter, spirv.StorageClassImage,
		spirv.StorageClassFunction, spirv.StorageClassPhysicalStorageBuffer, spirv.StorageClassStorageBuffer,
		spirv.StorageClassTaskPayloadWorkgroupEXT:
	default:
		return v.fail(ErrStorageClass, e, 0,
			"%s: Pointer Storage Class must be Uniform, Workgroup, CrossWorkgroup, Generic, AtomicCounter, Image, "+
				"Function, PhysicalStorageBuffer, StorageBuffer or TaskPayloadWorkgroupEXT", op)
	}
	if sc == spirv.StorageClassFunction && v.reg.capabilities.has(spirv.CapabilityShader) {
		return v.fail(ErrStorageClass, e, 0, "%s: Function storage class forbidden when the Shader capability is declared", op)
	}
	if v.env.IsOpenCL() {
		switch sc {
		case spirv.StorageClassFunction, spirv.StorageClassWorkgroup, spirv.StorageClassCrossWorkgroup,
			spirv.StorageClassGeneric:
		default:
			return v.fail(ErrStorageClass, e, 0,
				"%s: in the OpenCL environment, Pointer Storage Class must be Function, Workgroup, CrossWorkgroup or Generic", op)
		}
	}
	return nil
}

// checkScope verifies a memory scope operand.
func (v *validator) checkScope(e *entry, id uint32) error {
	r := v.reg
	op := e.inst.Opcode
	if !r.isInt32Scalar(r.typeOf(id)) {
		return v.fail(ErrType, e, 0, "%s: expected Memory Scope to be a 32-bit int", op)
	}
	value, ok := r.constantValue(id)
	if !ok {
		return nil
	}
	scope := spirv.Scope(value)
	if v.vulkan() && scope == spirv.ScopeCrossDevice {
		return v.fail(ErrMemoryAccess, e, 0, "%s: in Vulkan environment, Memory Scope cannot be CrossDevice", op)
	}
	if v.vulkan() && scope == spirv.ScopeQueueFamily && r.memoryModel != spirv.MemoryModelVulkan {
		return v.fail(ErrMemoryAccess, e, 0, "%s: Memory Scope QueueFamily requires the VulkanKHR memory model", op)
	}
	return nil
}

// checkSemantics verifies a memory semantics operand. Only OpConstant
// values are inspected.
//
//nolint:gocyclo,cyclop // one rule per semantics bit
func (v *validator) checkSemantics(e *entry, id uint32, role string) error {
	r := v.reg
	op := e.inst.Opcode
	if !r.isInt32Scalar(r.typeOf(id)) {
		return v.fail(ErrType, e, 0, "%s: expected %s to be a 32-bit int", op, role)
	}
	value, ok := r.constantValue(id)
	if !ok {
		return nil
	}
	sem := spirv.MemorySemantics(value)
	ordering := sem & (spirv.MemorySemanticsAcquire | spirv.MemorySemanticsRelease |
		spirv.MemorySemanticsAcquireRelease | spirv.MemorySemanticsSequentiallyConsistent)
	if ordering&(ordering-1) != 0 {
		return v.fail(ErrMemoryAccess, e, 0,
			"%s: %s can have at most one of the following bits set: Acquire, Release, AcquireRelease or SequentiallyConsistent", op, role)
	}
	if v.vulkan() && ordering == spirv.MemorySemanticsSequentiallyConsistent {
		return v.fail(ErrMemoryAccess, e, 0, "%s: Vulkan spec disallows SequentiallyConsistent memory semantics", op)
	}
	releasing := ordering == spirv.MemorySemanticsRelease || ordering == spirv.MemorySemanticsAcquireRelease
	acquiring := ordering == spirv.MemorySemanticsAcquire || ordering == spirv.MemorySemanticsAcquireRelease
	switch {
	case op == spirv.OpAtomicLoad && releasing:
		return v.fail(ErrMemoryAccess, e, 0, "OpAtomicLoad must not be used with Release or AcquireRelease semantics")
	case op == spirv.OpAtomicStore && acquiring:
		return v.fail(ErrMemoryAccess, e, 0, "OpAtomicStore must not be used with Acquire or AcquireRelease semantics")
	case role == "Memory Semantics Unequal" && releasing:
		return v.fail(ErrMemoryAccess, e, 0, "%s: Memory Semantics Unequal must not be Release or AcquireRelease", op)
	}
	if sem&(spirv.MemorySemanticsMakeAvailable|spirv.MemorySemanticsMakeVisible) != 0 &&
		r.memoryModel != spirv.MemoryModelVulkan {
		return v.fail(ErrMemoryAccess, e, 0, "%s: %s %s requires the VulkanKHR memory model", op, role,
			sem&(spirv.MemorySemanticsMakeAvailable|spirv.MemorySemanticsMakeVisible))
	}
	return nil
}
