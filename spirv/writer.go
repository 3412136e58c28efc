// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"encoding/binary"
	"math"
)

// section indexes the logical layout sections ModuleBuilder keeps apart.
type section int

const (
	sectionCapabilities section = iota
	sectionExtensions
	sectionExtInstImports
	sectionMemoryModel
	sectionEntryPoints
	sectionExecutionModes
	sectionDebugStrings
	sectionDebugNames
	sectionAnnotations
	sectionTypes // types, constants and global variables
	sectionFunctions
	sectionCount
)

// ModuleBuilder builds SPIR-V modules programmatically. Instructions may be
// added in any order; Build emits them in layout order.
type ModuleBuilder struct {
	version   Version
	generator uint32
	schema    uint32

	sections [sectionCount][]Instruction

	nextID uint32
}

// NewModuleBuilder creates a new SPIR-V module builder.
func NewModuleBuilder(version Version) *ModuleBuilder {
	return &ModuleBuilder{
		version:   version,
		generator: GeneratorID,
		nextID:    1,
	}
}

// AllocID allocates a new SPIR-V ID.
func (b *ModuleBuilder) AllocID() uint32 {
	id := b.nextID
	b.nextID++
	return id
}

func (b *ModuleBuilder) emit(s section, op OpCode, words ...uint32) {
	b.sections[s] = append(b.sections[s], Instruction{Opcode: op, Words: words})
}

// result allocates an id and emits an instruction defining it. When
// resultType is non-zero it precedes the result id.
func (b *ModuleBuilder) result(s section, op OpCode, resultType uint32, operands ...uint32) uint32 {
	id := b.AllocID()
	words := make([]uint32, 0, len(operands)+2)
	if resultType != 0 {
		words = append(words, resultType)
	}
	words = append(words, id)
	words = append(words, operands...)
	b.emit(s, op, words...)
	return id
}

// AddCapability adds a capability.
func (b *ModuleBuilder) AddCapability(capability Capability) {
	b.emit(sectionCapabilities, OpCapability, uint32(capability))
}

// AddExtension adds an extension.
func (b *ModuleBuilder) AddExtension(name string) {
	b.emit(sectionExtensions, OpExtension, encodeString(name)...)
}

// AddExtInstImport imports an extended instruction set.
func (b *ModuleBuilder) AddExtInstImport(name string) uint32 {
	return b.result(sectionExtInstImports, OpExtInstImport, 0, encodeString(name)...)
}

// SetMemoryModel sets the memory model.
func (b *ModuleBuilder) SetMemoryModel(addressing AddressingModel, memory MemoryModel) {
	b.sections[sectionMemoryModel] = nil
	b.emit(sectionMemoryModel, OpMemoryModel, uint32(addressing), uint32(memory))
}

// AddEntryPoint adds an entry point.
func (b *ModuleBuilder) AddEntryPoint(execModel ExecutionModel, funcID uint32, name string, interfaces ...uint32) {
	words := append([]uint32{uint32(execModel), funcID}, encodeString(name)...)
	b.emit(sectionEntryPoints, OpEntryPoint, append(words, interfaces...)...)
}

// AddExecutionMode adds an execution mode.
func (b *ModuleBuilder) AddExecutionMode(entryPoint uint32, mode ExecutionMode, params ...uint32) {
	b.emit(sectionExecutionModes, OpExecutionMode, append([]uint32{entryPoint, uint32(mode)}, params...)...)
}

// AddString adds a debug string.
func (b *ModuleBuilder) AddString(text string) uint32 {
	return b.result(sectionDebugStrings, OpString, 0, encodeString(text)...)
}

// AddName adds a debug name.
func (b *ModuleBuilder) AddName(id uint32, name string) {
	b.emit(sectionDebugNames, OpName, append([]uint32{id}, encodeString(name)...)...)
}

// AddDecorate adds a decoration.
func (b *ModuleBuilder) AddDecorate(id uint32, decoration Decoration, params ...uint32) {
	b.emit(sectionAnnotations, OpDecorate, append([]uint32{id, uint32(decoration)}, params...)...)
}

// AddMemberDecorate adds a member decoration.
func (b *ModuleBuilder) AddMemberDecorate(structID, member uint32, decoration Decoration, params ...uint32) {
	b.emit(sectionAnnotations, OpMemberDecorate, append([]uint32{structID, member, uint32(decoration)}, params...)...)
}

// AddTypeVoid adds OpTypeVoid.
func (b *ModuleBuilder) AddTypeVoid() uint32 { return b.result(sectionTypes, OpTypeVoid, 0) }

// AddTypeBool adds OpTypeBool.
func (b *ModuleBuilder) AddTypeBool() uint32 { return b.result(sectionTypes, OpTypeBool, 0) }

// AddTypeFloat adds OpTypeFloat.
func (b *ModuleBuilder) AddTypeFloat(width uint32) uint32 {
	return b.result(sectionTypes, OpTypeFloat, 0, width)
}

// AddTypeInt adds OpTypeInt.
func (b *ModuleBuilder) AddTypeInt(width uint32, signed bool) uint32 {
	var s uint32
	if signed {
		s = 1
	}
	return b.result(sectionTypes, OpTypeInt, 0, width, s)
}

// AddTypeVector adds OpTypeVector.
func (b *ModuleBuilder) AddTypeVector(componentType, count uint32) uint32 {
	return b.result(sectionTypes, OpTypeVector, 0, componentType, count)
}

// AddTypeArray adds OpTypeArray. length is the id of a constant.
func (b *ModuleBuilder) AddTypeArray(elementType, length uint32) uint32 {
	return b.result(sectionTypes, OpTypeArray, 0, elementType, length)
}

// AddTypeStruct adds OpTypeStruct.
func (b *ModuleBuilder) AddTypeStruct(memberTypes ...uint32) uint32 {
	return b.result(sectionTypes, OpTypeStruct, 0, memberTypes...)
}

// AddTypePointer adds OpTypePointer.
func (b *ModuleBuilder) AddTypePointer(storageClass StorageClass, baseType uint32) uint32 {
	return b.result(sectionTypes, OpTypePointer, 0, uint32(storageClass), baseType)
}

// AddTypeFunction adds OpTypeFunction.
func (b *ModuleBuilder) AddTypeFunction(returnType uint32, paramTypes ...uint32) uint32 {
	return b.result(sectionTypes, OpTypeFunction, 0, append([]uint32{returnType}, paramTypes...)...)
}

// AddConstant adds OpConstant with raw literal words.
func (b *ModuleBuilder) AddConstant(typeID uint32, values ...uint32) uint32 {
	return b.result(sectionTypes, OpConstant, typeID, values...)
}

// AddConstantFloat32 adds a 32-bit float constant.
func (b *ModuleBuilder) AddConstantFloat32(typeID uint32, value float32) uint32 {
	return b.AddConstant(typeID, math.Float32bits(value))
}

// AddConstantComposite adds OpConstantComposite.
func (b *ModuleBuilder) AddConstantComposite(typeID uint32, constituents ...uint32) uint32 {
	return b.result(sectionTypes, OpConstantComposite, typeID, constituents...)
}

// AddVariable adds a module-scope OpVariable. Function-local variables are
// added with AddLocalVariable.
func (b *ModuleBuilder) AddVariable(pointerType uint32, storageClass StorageClass) uint32 {
	return b.result(sectionTypes, OpVariable, pointerType, uint32(storageClass))
}

// AddLocalVariable adds a Function storage class OpVariable to the current function.
func (b *ModuleBuilder) AddLocalVariable(pointerType uint32) uint32 {
	return b.result(sectionFunctions, OpVariable, pointerType, uint32(StorageClassFunction))
}

// AddFunction opens a function definition.
func (b *ModuleBuilder) AddFunction(funcType, returnType uint32, control uint32) uint32 {
	return b.result(sectionFunctions, OpFunction, returnType, control, funcType)
}

// AddLabel adds a label.
func (b *ModuleBuilder) AddLabel() uint32 { return b.result(sectionFunctions, OpLabel, 0) }

// AddFunctionCall adds OpFunctionCall.
func (b *ModuleBuilder) AddFunctionCall(resultType, function uint32, args ...uint32) uint32 {
	return b.result(sectionFunctions, OpFunctionCall, resultType, append([]uint32{function}, args...)...)
}

// AddLoad adds OpLoad.
func (b *ModuleBuilder) AddLoad(resultType, pointer uint32) uint32 {
	return b.result(sectionFunctions, OpLoad, resultType, pointer)
}

// AddStore adds OpStore.
func (b *ModuleBuilder) AddStore(pointer, value uint32) {
	b.emit(sectionFunctions, OpStore, pointer, value)
}

// AddAccessChain adds OpAccessChain.
func (b *ModuleBuilder) AddAccessChain(resultType, base uint32, indices ...uint32) uint32 {
	return b.result(sectionFunctions, OpAccessChain, resultType, append([]uint32{base}, indices...)...)
}

// AddReturn adds OpReturn.
func (b *ModuleBuilder) AddReturn() { b.emit(sectionFunctions, OpReturn) }

// AddFunctionEnd adds OpFunctionEnd.
func (b *ModuleBuilder) AddFunctionEnd() { b.emit(sectionFunctions, OpFunctionEnd) }

// Build generates the final SPIR-V binary.
func (b *ModuleBuilder) Build() []byte {
	totalWords := HeaderWords
	for _, s := range b.sections {
		for i := range s {
			totalWords += len(s[i].Words) + 1
		}
	}

	buffer := make([]byte, totalWords*4)
	header := []uint32{MagicNumber, b.version.Word(), b.generator, b.nextID, b.schema}
	offset := 0
	for _, w := range header {
		binary.LittleEndian.PutUint32(buffer[offset:], w)
		offset += 4
	}
	for _, s := range b.sections {
		for i := range s {
			for _, word := range s[i].Encode() {
				binary.LittleEndian.PutUint32(buffer[offset:], word)
				offset += 4
			}
		}
	}
	return buffer
}

// Module builds the binary and decodes it back into a Module.
func (b *ModuleBuilder) Module() (*Module, error) {
	return Decode(b.Build())
}
