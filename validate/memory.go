// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import (
	"slices"

	"github.com/gogpu/spvval/spirv"
)

// maxAccessChainIndices is the universal limit on access chain indexes.
const maxAccessChainIndices = 255

// accessDirection says which side of a memory operation a memory operand
// mask applies to.
type accessDirection uint8

const (
	accessLoad accessDirection = iota
	accessStore
	accessCopyTarget
	accessCopySource
	accessCopyBoth // single mask on a copy
)

// validateMemory checks variables, loads, stores, copies and access chains.
func (v *validator) validateMemory() error {
	for _, e := range v.reg.entries {
		var err error
		switch op := e.inst.Opcode; {
		case op == spirv.OpVariable || op == spirv.OpUntypedVariableKHR:
			err = v.checkVariable(e)
		case op == spirv.OpLoad:
			err = v.checkLoad(e)
		case op == spirv.OpStore:
			err = v.checkStore(e)
		case op == spirv.OpCopyMemory || op == spirv.OpCopyMemorySized:
			err = v.checkCopyMemory(e)
		case op.IsAccessChain():
			err = v.checkAccessChain(e)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

//nolint:gocyclo,cyclop // variable rules are a flat list
func (v *validator) checkVariable(e *entry) error {
	in := e.inst
	r := v.reg
	untyped := in.Opcode == spirv.OpUntypedVariableKHR
	sc := spirv.StorageClass(in.Word(2))

	ptrSC, dataType, ok := r.pointerInfo(in.TypeID)
	if !ok || r.isUntypedPointerType(in.TypeID) != untyped {
		want := "OpTypePointer"
		if untyped {
			want = "OpTypeUntypedPointerKHR"
		}
		return v.fail(ErrType, e, 0, "%s Result Type %s is not a %s type", in.Opcode, v.describe(in.TypeID), want)
	}
	if ptrSC != sc {
		return v.fail(ErrStorageClass, e, 0, "Storage class must match result type storage class")
	}
	initOperand := 3
	if untyped {
		initOperand = 4
		dataType = in.Word(3)
		if dataType != 0 && !r.opcode(dataType).IsType() {
			return v.fail(ErrType, e, 0, "Data Type %s is not a type", v.describe(dataType))
		}
	}

	switch {
	case e.function != 0 && sc != spirv.StorageClassFunction:
		return v.fail(ErrStorageClass, e, 0, "Variables must have a function[7] storage class inside of a function")
	case e.function == 0 && sc == spirv.StorageClassFunction:
		return v.fail(ErrStorageClass, e, 0, "Variables can not have a function[7] storage class outside of a function")
	case sc == spirv.StorageClassGeneric:
		return v.fail(ErrStorageClass, e, 0, "OpVariable storage class cannot be Generic")
	}
	if err := v.checkVariableEnvironment(e, sc); err != nil {
		return err
	}
	if err := v.checkInitializer(e, sc, dataType, initOperand); err != nil {
		return err
	}
	if dataType == 0 {
		return nil
	}

	if r.capabilities.has(spirv.CapabilityShader) && r.containsType(dataType, isOpcode(spirv.OpTypeBool)) {
		switch sc {
		case spirv.StorageClassWorkgroup, spirv.StorageClassCrossWorkgroup, spirv.StorageClassPrivate,
			spirv.StorageClassFunction:
		case spirv.StorageClassInput, spirv.StorageClassOutput:
			if !v.isBuiltInVariable(in.ResultID, dataType) {
				return v.fail(ErrStorageClass, e, 0,
					"If OpTypeBool is stored in conjunction with OpVariable using Input or Output Storage Classes it requires a BuiltIn decoration")
			}
		default:
			return v.fail(ErrStorageClass, e, 0,
				"If OpTypeBool is stored in conjunction with OpVariable, it can only be used with non-externally visible shader Storage Classes: Workgroup, CrossWorkgroup, Private, Function, Input or Output")
		}
	}
	if v.vulkan() {
		if err := v.checkVulkanVariable(e, sc, dataType); err != nil {
			return err
		}
	}
	if r.capabilities.has(spirv.CapabilityShader) {
		return v.checkNarrowStorage(e, sc, dataType)
	}
	return nil
}

func isOpcode(op spirv.OpCode) func(*spirv.Instruction) bool {
	return func(in *spirv.Instruction) bool { return in.Opcode == op }
}

// isBuiltInVariable reports whether the variable or its block members are built-ins.
func (v *validator) isBuiltInVariable(id, dataType uint32) bool {
	if _, ok := v.reg.decorations.builtIn(id); ok {
		return true
	}
	return v.reg.decorations.hasMemberBuiltIn(v.reg.stripArrays(dataType))
}

func (v *validator) checkVariableEnvironment(e *entry, sc spirv.StorageClass) error {
	switch {
	case v.vulkan():
		switch sc {
		case spirv.StorageClassCrossWorkgroup, spirv.StorageClassGeneric, spirv.StorageClassAtomicCounter,
			spirv.StorageClassImage:
			return v.fail(ErrStorageClass, e, 0, "OpVariable storage class %s is not allowed in the %s environment", sc, v.env)
		}
	case v.env.IsOpenCL():
		switch sc {
		case spirv.StorageClassFunction, spirv.StorageClassWorkgroup, spirv.StorageClassCrossWorkgroup,
			spirv.StorageClassUniformConstant:
		default:
			return v.fail(ErrStorageClass, e, 0, "OpVariable storage class %s is not allowed in the %s environment", sc, v.env)
		}
	}
	return nil
}

func (v *validator) checkInitializer(e *entry, sc spirv.StorageClass, dataType uint32, operand int) error {
	in := e.inst
	if in.NumOperands() <= operand {
		return nil
	}
	initID := in.Word(operand)
	init := v.reg.def(initID)
	op := init.inst.Opcode
	isGlobalVariable := isVariable(op) && init.function == 0
	if !op.IsConstant() && !isGlobalVariable {
		return v.fail(ErrType, e, 0, "Variable Initializer %s is not a constant or module-scope variable", v.describe(initID))
	}
	initType := init.inst.TypeID
	if isGlobalVariable {
		initType = v.reg.variableDataType(init.inst)
	}
	if dataType != 0 && initType != dataType {
		return v.fail(ErrType, e, 0, "Initializer type must match the data type")
	}
	if v.vulkan() {
		switch sc {
		case spirv.StorageClassOutput, spirv.StorageClassPrivate, spirv.StorageClassFunction, spirv.StorageClassWorkgroup:
		default:
			return v.fail(ErrStorageClass, e, 0,
				"OpVariable, <id> %s, has a disallowed initializer & storage class combination. "+
					"From %s spec: Variable declarations that include initializers must have one of the following storage classes: Output, Private, Function or Workgroup",
				v.describe(in.ResultID), v.env)
		}
	}
	return nil
}

//nolint:gocyclo,cyclop // one case per storage class
func (v *validator) checkVulkanVariable(e *entry, sc spirv.StorageClass, dataType uint32) error {
	r := v.reg
	id := v.describe(e.inst.ResultID)
	base := r.stripArrays(dataType)
	switch sc {
	case spirv.StorageClassPushConstant:
		if r.opcode(dataType) != spirv.OpTypeStruct || !r.decorations.has(dataType, spirv.DecorationBlock) {
			return v.fail(ErrType, e, 0,
				"[VUID-StandaloneSpirv-PushConstant-06808] PushConstant OpVariable %s has illegal type. "+
					"Such variables must be typed as OpTypeStruct decorated with Block", id)
		}
	case spirv.StorageClassUniformConstant:
		if !r.isResourceType(base) {
			return v.fail(ErrStorageClass, e, 0,
				"[VUID-StandaloneSpirv-UniformConstant-04655] UniformConstant OpVariable %s has illegal type. "+
					"Such variables must be typed as OpTypeImage, OpTypeSampler, OpTypeSampledImage, or an array of one of these types", id)
		}
	case spirv.StorageClassUniform:
		if !r.isBlockStruct(base) {
			return v.fail(ErrStorageClass, e, 0,
				"Uniform OpVariable %s has illegal type. Such variables must be typed as OpTypeStruct, "+
					"or an array of this type, decorated with Block or BufferBlock", id)
		}
	case spirv.StorageClassStorageBuffer:
		if r.opcode(base) != spirv.OpTypeStruct || !r.decorations.has(base, spirv.DecorationBlock) {
			return v.fail(ErrStorageClass, e, 0,
				"StorageBuffer OpVariable %s has illegal type. Such variables must be typed as OpTypeStruct, "+
					"or an array of this type, decorated with Block", id)
		}
	}

	if r.opcode(dataType) == spirv.OpTypeRuntimeArray {
		switch sc {
		case spirv.StorageClassStorageBuffer, spirv.StorageClassUniform, spirv.StorageClassUniformConstant:
		default:
			return v.fail(ErrStorageClass, e, 0,
				"For %s, OpTypeRuntimeArray must only be used for the last member of an OpTypeStruct "+
					"or as the type of a variable in the StorageBuffer, Uniform or UniformConstant storage class", v.env)
		}
	}
	if r.endsWithRuntimeArray(base) {
		switch {
		case sc == spirv.StorageClassStorageBuffer, sc == spirv.StorageClassPhysicalStorageBuffer:
		case sc == spirv.StorageClassUniform && r.decorations.has(base, spirv.DecorationBufferBlock):
		default:
			return v.fail(ErrStorageClass, e, 0,
				"For %s, a struct ending in OpTypeRuntimeArray is only allowed in the StorageBuffer storage class "+
					"or a Uniform BufferBlock, found %s", v.env, sc)
		}
	}
	return nil
}

// endsWithRuntimeArray reports whether struct t has a runtime array as its last member.
func (r *registry) endsWithRuntimeArray(t uint32) bool {
	members := r.members(t)
	return len(members) > 0 && r.opcode(members[len(members)-1]) == spirv.OpTypeRuntimeArray
}

// checkNarrowStorage gates 8- and 16-bit data on the storage capabilities.
func (v *validator) checkNarrowStorage(e *entry, sc spirv.StorageClass, dataType uint32) error {
	r := v.reg
	caps := r.capabilities
	bufferBlock := r.decorations.has(r.stripArrays(dataType), spirv.DecorationBufferBlock)

	if (!caps.has(spirv.CapabilityInt16) && r.containsType(dataType, isWidth(spirv.OpTypeInt, 16))) ||
		(!caps.has(spirv.CapabilityFloat16) && r.containsType(dataType, isWidth(spirv.OpTypeFloat, 16))) {
		var ok bool
		switch sc {
		case spirv.StorageClassStorageBuffer, spirv.StorageClassPhysicalStorageBuffer:
			ok = caps.has(spirv.CapabilityStorageBuffer16BitAccess)
		case spirv.StorageClassUniform:
			ok = caps.has(spirv.CapabilityUniformAndStorageBuffer16BitAccess) ||
				(bufferBlock && caps.has(spirv.CapabilityStorageBuffer16BitAccess))
		case spirv.StorageClassPushConstant:
			ok = caps.has(spirv.CapabilityStoragePushConstant16)
		case spirv.StorageClassInput, spirv.StorageClassOutput:
			ok = caps.has(spirv.CapabilityStorageInputOutput16)
		}
		if !ok {
			return v.fail(ErrCapability, e, 0,
				"Allocating a variable containing a 16-bit element in %s storage class requires an additional capability", sc)
		}
	}
	if !caps.has(spirv.CapabilityInt8) && r.containsType(dataType, isWidth(spirv.OpTypeInt, 8)) {
		var ok bool
		switch sc {
		case spirv.StorageClassStorageBuffer, spirv.StorageClassPhysicalStorageBuffer:
			ok = caps.has(spirv.CapabilityStorageBuffer8BitAccess)
		case spirv.StorageClassUniform:
			ok = caps.has(spirv.CapabilityUniformAndStorageBuffer8BitAccess) ||
				(bufferBlock && caps.has(spirv.CapabilityStorageBuffer8BitAccess))
		case spirv.StorageClassPushConstant:
			ok = caps.has(spirv.CapabilityStoragePushConstant8)
		}
		if !ok {
			return v.fail(ErrCapability, e, 0,
				"Allocating a variable containing an 8-bit element in %s storage class requires an additional capability", sc)
		}
	}
	return nil
}

// checkPointerOperand verifies operand id is a pointer, and a logical one
// under the Logical addressing model.
func (v *validator) checkPointerOperand(e *entry, id uint32, role string) error {
	r := v.reg
	if t := r.typeOf(id); t == 0 || !r.isPointerType(t) {
		return v.fail(ErrType, e, 0, "%s %s %s is not a pointer", e.inst.Opcode, role, v.describe(id))
	}
	if r.addressing == spirv.AddressingModelLogical && !v.opts.RelaxLogicalPointer && !v.isLogicalPointer(id) {
		return v.fail(ErrType, e, 0, "%s %s %s is not a logical pointer", e.inst.Opcode, role, v.describe(id))
	}
	return nil
}

// isLogicalPointer reports whether the instruction defining id may produce
// a pointer under the Logical addressing model.
func (v *validator) isLogicalPointer(id uint32) bool {
	op := v.reg.opcode(id)
	switch op {
	case spirv.OpVariable, spirv.OpUntypedVariableKHR, spirv.OpFunctionParameter,
		spirv.OpImageTexelPointer, spirv.OpCopyObject:
		return true
	case spirv.OpSelect, spirv.OpPhi, spirv.OpFunctionCall, spirv.OpLoad, spirv.OpConstantNull:
		return v.reg.capabilities.any(spirv.CapabilityVariablePointers, spirv.CapabilityVariablePointersStorageBuffer)
	}
	return op.IsAccessChain()
}

func (v *validator) checkLoad(e *entry) error {
	in := e.inst
	r := v.reg
	ptr := in.Word(2)
	if err := v.checkPointerOperand(e, ptr, "Pointer"); err != nil {
		return err
	}
	ptrType := r.typeOf(ptr)
	sc, pointee, _ := r.pointerInfo(ptrType)
	if !r.isUntypedPointerType(ptrType) && in.TypeID != pointee {
		return v.fail(ErrType, e, 0, "OpLoad Result Type %s does not match Pointer %s's type",
			v.describe(in.TypeID), v.describe(ptr))
	}
	if r.opcode(in.TypeID) == spirv.OpTypeRuntimeArray {
		return v.fail(ErrType, e, 0, "Cannot load a runtime-sized array")
	}
	if r.capabilities.has(spirv.CapabilityShader) && r.containsLimitedUseType(in.TypeID) &&
		!r.isScalarVectorOrMatrix(in.TypeID) {
		return v.fail(ErrType, e, 0, "8- or 16-bit loads must be a scalar, vector or matrix type")
	}
	return v.checkMemoryAccess(e, 3, accessLoad, sc)
}

func (v *validator) checkStore(e *entry) error {
	in := e.inst
	r := v.reg
	ptr := in.Word(0)
	if err := v.checkPointerOperand(e, ptr, "Pointer"); err != nil {
		return err
	}
	ptrType := r.typeOf(ptr)
	sc, pointee, _ := r.pointerInfo(ptrType)
	readOnly := sc == spirv.StorageClassUniformConstant
	if v.vulkan() {
		switch sc {
		case spirv.StorageClassInput, spirv.StorageClassPushConstant, spirv.StorageClassShaderRecordBufferKHR:
			readOnly = true
		}
	}
	if readOnly {
		return v.fail(ErrStorageClass, e, 0, "OpStore Pointer %s storage class %s is read-only", v.describe(ptr), sc)
	}

	obj := in.Word(1)
	objType := r.typeOf(obj)
	switch {
	case objType == 0:
		return v.fail(ErrType, e, 0, "OpStore Object %s does not have a type", v.describe(obj))
	case r.opcode(objType) == spirv.OpTypeVoid:
		return v.fail(ErrType, e, 0, "OpStore Object %s's type is void", v.describe(obj))
	}
	if !r.isUntypedPointerType(ptrType) && objType != pointee {
		relaxed := v.opts.RelaxStructStore &&
			r.opcode(pointee) == spirv.OpTypeStruct && r.opcode(objType) == spirv.OpTypeStruct &&
			r.layoutCompatible(pointee, objType)
		if !relaxed {
			return v.fail(ErrType, e, 0, "OpStore Pointer %s's type does not match Object %s's type",
				v.describe(ptr), v.describe(obj))
		}
	}
	return v.checkMemoryAccess(e, 2, accessStore, sc)
}

//nolint:gocyclo,cyclop // copy rules are a flat list
func (v *validator) checkCopyMemory(e *entry) error {
	in := e.inst
	r := v.reg
	target, source := in.Word(0), in.Word(1)
	if err := v.checkPointerOperand(e, target, "Target"); err != nil {
		return err
	}
	if err := v.checkPointerOperand(e, source, "Source"); err != nil {
		return err
	}
	targetType, sourceType := r.typeOf(target), r.typeOf(source)
	targetSC, targetPointee, _ := r.pointerInfo(targetType)
	sourceSC, sourcePointee, _ := r.pointerInfo(sourceType)
	targetUntyped, sourceUntyped := r.isUntypedPointerType(targetType), r.isUntypedPointerType(sourceType)

	maskOperand := 2
	if in.Opcode == spirv.OpCopyMemory {
		switch {
		case targetUntyped && sourceUntyped:
			return v.fail(ErrType, e, 0, "One of Source or Target must be a typed pointer")
		case !targetUntyped && !sourceUntyped && targetPointee != sourcePointee:
			return v.fail(ErrType, e, 0, "Target %s's type does not match Source %s's type",
				v.describe(target), v.describe(source))
		}
	} else {
		maskOperand = 3
		if err := v.checkCopySize(e, in.Word(2)); err != nil {
			return err
		}
	}

	if in.NumOperands() <= maskOperand {
		return nil
	}
	second := maskOperand + 1 + memoryAccessParams(spirv.MemoryAccess(in.Word(maskOperand)))
	if in.NumOperands() <= second {
		return v.checkMemoryAccess(e, maskOperand, accessCopyBoth, targetSC, sourceSC)
	}
	if r.version.Less(spirv.Version1_4) {
		return v.fail(ErrMemoryAccess, e, 0, "%s with two memory access operands requires SPIR-V 1.4 or later", in.Opcode)
	}
	if err := v.checkMemoryAccess(e, maskOperand, accessCopyTarget, targetSC); err != nil {
		return err
	}
	return v.checkMemoryAccess(e, second, accessCopySource, sourceSC)
}

func (v *validator) checkCopySize(e *entry, size uint32) error {
	r := v.reg
	caps := r.capabilities
	sizeType := r.typeOf(size)
	if !r.isIntScalar(sizeType) {
		return v.fail(ErrType, e, 0, "Size operand %s must be a scalar integer type", v.describe(size))
	}
	if caps.has(spirv.CapabilityShader) && !caps.any(spirv.CapabilityAddresses, spirv.CapabilityUntypedPointersKHR) {
		return v.fail(ErrCapability, e, 0, "OpCopyMemorySized in shaders requires the Addresses or UntypedPointersKHR capability")
	}
	def := r.inst(size)
	switch def.Opcode {
	case spirv.OpConstantNull:
		return v.fail(ErrInvalidModule, e, 0, "Size operand %s cannot be a constant zero", v.describe(size))
	case spirv.OpConstant:
		value := def.Literal(2)
		width := r.scalarWidth(sizeType)
		signed := r.inst(sizeType).Word(2) == 1
		switch {
		case value == 0:
			return v.fail(ErrInvalidModule, e, 0, "Size operand %s cannot be a constant zero", v.describe(size))
		case signed && width > 0 && value>>(width-1)&1 == 1:
			return v.fail(ErrInvalidModule, e, 0, "Size operand %s cannot have the sign bit set to 1", v.describe(size))
		}
		if caps.has(spirv.CapabilityShader) {
			multiple := uint64(4)
			switch {
			case caps.any(spirv.CapabilityStorageBuffer8BitAccess, spirv.CapabilityUniformAndStorageBuffer8BitAccess,
				spirv.CapabilityStoragePushConstant8):
				multiple = 1
			case caps.any(spirv.CapabilityStorageBuffer16BitAccess, spirv.CapabilityUniformAndStorageBuffer16BitAccess,
				spirv.CapabilityStoragePushConstant16, spirv.CapabilityStorageInputOutput16):
				multiple = 2
			}
			if value%multiple != 0 {
				return v.fail(ErrInvalidModule, e, 0, "Size operand %s must be a multiple of %d", v.describe(size), multiple)
			}
		}
	}
	return nil
}

// memoryAccessParams returns the number of operands following a mask.
func memoryAccessParams(mask spirv.MemoryAccess) int {
	n := 0
	for _, bit := range []spirv.MemoryAccess{
		spirv.MemoryAccessAligned, spirv.MemoryAccessMakePointerAvailable, spirv.MemoryAccessMakePointerVisible,
	} {
		if mask&bit != 0 {
			n++
		}
	}
	return n
}

// checkMemoryAccess validates the mask at operand and its parameters.
// classes are the storage classes of the pointers the mask applies to.
//
//nolint:gocyclo,cyclop // one rule per mask bit
func (v *validator) checkMemoryAccess(e *entry, operand int, dir accessDirection, classes ...spirv.StorageClass) error {
	in := e.inst
	if operand >= in.NumOperands() {
		return nil
	}
	mask := spirv.MemoryAccess(in.Word(operand))
	const vulkanBits = spirv.MemoryAccessMakePointerAvailable | spirv.MemoryAccessMakePointerVisible |
		spirv.MemoryAccessNonPrivatePointer

	if mask&spirv.MemoryAccessMakePointerAvailable != 0 {
		if dir == accessLoad || dir == accessCopySource {
			return v.fail(ErrMemoryAccess, e, 0, "MakePointerAvailableKHR cannot be used with a load or the source of a copy")
		}
		if mask&spirv.MemoryAccessNonPrivatePointer == 0 {
			return v.fail(ErrMemoryAccess, e, 0, "NonPrivatePointerKHR must be specified if MakePointerAvailableKHR is specified")
		}
	}
	if mask&spirv.MemoryAccessMakePointerVisible != 0 {
		if dir == accessStore || dir == accessCopyTarget {
			return v.fail(ErrMemoryAccess, e, 0, "MakePointerVisibleKHR cannot be used with a store or the target of a copy")
		}
		if mask&spirv.MemoryAccessNonPrivatePointer == 0 {
			return v.fail(ErrMemoryAccess, e, 0, "NonPrivatePointerKHR must be specified if MakePointerVisibleKHR is specified")
		}
	}
	if mask&vulkanBits != 0 && v.reg.memoryModel != spirv.MemoryModelVulkan {
		return v.fail(ErrMemoryAccess, e, 0, "Memory access %s requires the VulkanKHR memory model", mask&vulkanBits)
	}
	if mask&spirv.MemoryAccessNonPrivatePointer != 0 {
		for _, sc := range classes {
			switch sc {
			case spirv.StorageClassUniform, spirv.StorageClassWorkgroup, spirv.StorageClassCrossWorkgroup,
				spirv.StorageClassGeneric, spirv.StorageClassImage, spirv.StorageClassStorageBuffer,
				spirv.StorageClassPhysicalStorageBuffer:
			default:
				return v.fail(ErrMemoryAccess, e, 0,
					"NonPrivatePointerKHR requires a pointer in Uniform, Workgroup, CrossWorkgroup, Generic, Image or StorageBuffer storage classes")
			}
		}
	}
	if mask&spirv.MemoryAccessAligned != 0 {
		align := in.Word(operand + 1)
		if align == 0 || align&(align-1) != 0 {
			return v.fail(ErrMemoryAccess, e, 0, "Memory accesses Aligned operand value %d is not a power of two", align)
		}
	}
	return nil
}

//nolint:gocyclo,cyclop // access chain rules are a flat list
func (v *validator) checkAccessChain(e *entry) error {
	in := e.inst
	r := v.reg
	op := in.Opcode
	var untyped, ptrForm bool
	switch op {
	case spirv.OpUntypedAccessChainKHR, spirv.OpUntypedInBoundsAccessChainKHR:
		untyped = true
	case spirv.OpUntypedPtrAccessChainKHR, spirv.OpUntypedInBoundsPtrAccessChainKHR:
		untyped, ptrForm = true, true
	case spirv.OpPtrAccessChain, spirv.OpInBoundsPtrAccessChain:
		ptrForm = true
	}

	resultSC, resultPointee, ok := r.pointerInfo(in.TypeID)
	if !ok || r.isUntypedPointerType(in.TypeID) != untyped {
		want := "OpTypePointer"
		if untyped {
			want = "OpTypeUntypedPointerKHR"
		}
		return v.fail(ErrType, e, 0, "The Result Type of %s %s must be %s", op, v.describe(in.ResultID), want)
	}

	baseOperand := 2
	if untyped {
		baseOperand = 3
	}
	base := in.Word(baseOperand)
	baseType := r.typeOf(base)
	baseSC, current, ok := r.pointerInfo(baseType)
	if !ok || (!untyped && r.isUntypedPointerType(baseType)) {
		return v.fail(ErrType, e, 0, "The Base %s in %s instruction must be a pointer", v.describe(base), op)
	}
	if baseSC != resultSC {
		return v.fail(ErrStorageClass, e, 0, "The result pointer storage class and base pointer storage class in %s do not match", op)
	}
	if untyped {
		current = in.Word(2)
		if !r.opcode(current).IsType() {
			return v.fail(ErrType, e, 0, "The Base Type %s of %s is not a type", v.describe(current), op)
		}
	}

	first := baseOperand + 1
	if ptrForm {
		elem := in.Word(first)
		if !r.isIntScalar(r.typeOf(elem)) {
			return v.fail(ErrType, e, 0, "The Element operand %s of %s must be an integer scalar", v.describe(elem), op)
		}
		first++
	}
	if n := in.NumOperands() - first; n > maxAccessChainIndices {
		return v.fail(ErrInvalidModule, e, 0, "The number of indexes in %s may not exceed %d. Found %d indexes.",
			op, maxAccessChainIndices, n)
	}

	for i := first; i < in.NumOperands(); i++ {
		index := in.Word(i)
		ct := r.inst(current)
		if ct == nil {
			return v.fail(ErrType, e, 0, "%s reached non-composite type while indexes still remain to be traversed", op)
		}
		if !r.isIntScalar(r.typeOf(index)) {
			return v.fail(ErrType, e, 0, "Indexes passed to %s must be of type integer", op)
		}
		switch ct.Opcode {
		case spirv.OpTypeArray, spirv.OpTypeRuntimeArray, spirv.OpTypeVector, spirv.OpTypeMatrix:
			current = ct.Word(1)
		case spirv.OpTypeStruct:
			idx := r.inst(index)
			if idx.Opcode != spirv.OpConstant || !r.isInt32Scalar(idx.TypeID) {
				return v.fail(ErrType, e, 0, "The <id> passed to %s to index into a structure must be an OpConstant", op)
			}
			value := idx.Literal(2)
			count := uint64(ct.NumOperands() - 1)
			if value >= count {
				return v.fail(ErrType, e, 0,
					"Index is out of bounds: %s cannot find index %d into the structure %s. This structure has %d members. Largest valid index is %d.",
					op, value, v.describe(current), count, int64(count)-1)
			}
			current = ct.Word(int(value) + 1)
		default:
			return v.fail(ErrType, e, 0, "%s reached non-composite type while indexes still remain to be traversed", op)
		}
	}
	if !untyped && resultPointee != current {
		return v.fail(ErrType, e, 0,
			"%s result type %s does not match the type that results from indexing into the base %s (%s)",
			op, v.describe(resultPointee), v.describe(base), v.describe(current))
	}
	return nil
}

// layoutCompatible reports whether structs a and b have the same member
// types (recursively for nested structs) and no conflicting Offset
// decorations. The relation is symmetric. Array and matrix strides are not
// compared.
func (r *registry) layoutCompatible(a, b uint32) bool {
	if a == b {
		return true
	}
	if r.opcode(a) != spirv.OpTypeStruct || r.opcode(b) != spirv.OpTypeStruct {
		return false
	}
	ma, mb := r.members(a), r.members(b)
	if len(ma) != len(mb) {
		return false
	}
	for i := range ma {
		if ma[i] != mb[i] && !r.layoutCompatible(ma[i], mb[i]) {
			return false
		}
		da, okA := r.decorations.findMember(a, i, spirv.DecorationOffset)
		db, okB := r.decorations.findMember(b, i, spirv.DecorationOffset)
		if okA && okB && !slices.Equal(da.Params, db.Params) {
			return false
		}
	}
	return true
}
