// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import "strconv"

// OperandKind classifies a decoded operand.
type OperandKind uint8

// Operand kinds.
const (
	OperandResultType OperandKind = iota
	OperandResultID
	OperandID
	OperandLiteralInteger
	OperandLiteralString
	OperandLiteralContext // width follows a type: OpConstant values, OpSwitch cases
	OperandExtInstNumber
	OperandSpecConstantOpNumber
	OperandCapability
	OperandStorageClass
	OperandExecutionModel
	OperandExecutionMode
	OperandAddressingModel
	OperandMemoryModel
	OperandDecoration
	OperandBuiltIn
	OperandMemoryAccess
	OperandFunctionControl
	OperandSelectionControl
	OperandLoopControl
	OperandImageOperands
	OperandDim
	OperandImageFormat
	OperandAccessQualifier
	OperandSourceLanguage

	// Grammar-only kinds. They never appear in Instruction.Operands.
	operandPairIDID
	operandPairIDLiteral
	operandPairLiteralID
	operandSpecConstantArg
)

// IsIDRef reports whether the operand refers to another id (result type included).
func (k OperandKind) IsIDRef() bool {
	return k == OperandID || k == OperandResultType
}

var operandKindNames = [...]string{
	OperandResultType:           "ResultType",
	OperandResultID:             "Result",
	OperandID:                   "Id",
	OperandLiteralInteger:       "LiteralInteger",
	OperandLiteralString:        "LiteralString",
	OperandLiteralContext:       "LiteralContextDependentNumber",
	OperandExtInstNumber:        "LiteralExtInstInteger",
	OperandSpecConstantOpNumber: "LiteralSpecConstantOpInteger",
	OperandCapability:           "Capability",
	OperandStorageClass:         "StorageClass",
	OperandExecutionModel:       "ExecutionModel",
	OperandExecutionMode:        "ExecutionMode",
	OperandAddressingModel:      "AddressingModel",
	OperandMemoryModel:          "MemoryModel",
	OperandDecoration:           "Decoration",
	OperandBuiltIn:              "BuiltIn",
	OperandMemoryAccess:         "MemoryAccess",
	OperandFunctionControl:      "FunctionControl",
	OperandSelectionControl:     "SelectionControl",
	OperandLoopControl:          "LoopControl",
	OperandImageOperands:        "ImageOperands",
	OperandDim:                  "Dim",
	OperandImageFormat:          "ImageFormat",
	OperandAccessQualifier:      "AccessQualifier",
	OperandSourceLanguage:       "SourceLanguage",
}

func (k OperandKind) String() string {
	if int(k) < len(operandKindNames) && operandKindNames[k] != "" {
		return operandKindNames[k]
	}
	return "Operand(" + strconv.Itoa(int(k)) + ")"
}

// enumTable returns the name table for enum and mask operand kinds.
func enumTable(k OperandKind) (names map[uint32]string, mask bool) {
	switch k {
	case OperandCapability:
		return capabilityNames, false
	case OperandStorageClass:
		return storageClassNames, false
	case OperandExecutionModel:
		return executionModelNames, false
	case OperandExecutionMode:
		return executionModeNames, false
	case OperandAddressingModel:
		return addressingModelNames, false
	case OperandMemoryModel:
		return memoryModelNames, false
	case OperandDecoration:
		return decorationNames, false
	case OperandBuiltIn:
		return builtInNames, false
	case OperandDim:
		return dimNames, false
	case OperandImageFormat:
		return imageFormatNames, false
	case OperandAccessQualifier:
		return accessQualifierNames, false
	case OperandSourceLanguage:
		return sourceLanguageNames, false
	case OperandMemoryAccess:
		return memoryAccessNames, true
	case OperandFunctionControl:
		return functionControlNames, true
	case OperandSelectionControl:
		return selectionControlNames, true
	case OperandLoopControl:
		return loopControlNames, true
	case OperandImageOperands:
		return imageOperandNames, true
	}
	return nil, false
}

type quantifier uint8

const (
	quantOne quantifier = iota
	quantOptional
	quantVariadic
)

type operandSpec struct {
	kind  OperandKind
	quant quantifier
}

type opInfo struct {
	name     string
	operands []operandSpec
}

// grammar is the operand layout of every opcode the decoder accepts.
var grammar = buildGrammar()

// opcodesByName is the reverse of grammar for the assembler.
var opcodesByName = func() map[string]OpCode {
	out := make(map[string]OpCode, len(grammar))
	for op, info := range grammar {
		out[info.name] = op
	}
	return out
}()

// Known reports whether the opcode has a grammar entry.
func (op OpCode) Known() bool {
	_, ok := grammar[op]
	return ok
}

// HasResult reports whether instructions with this opcode define a result id.
func (op OpCode) HasResult() bool {
	for _, s := range grammar[op].operands {
		if s.kind == OperandResultID {
			return true
		}
	}
	return false
}

// HasResultType reports whether instructions with this opcode carry a result type.
func (op OpCode) HasResultType() bool {
	specs := grammar[op].operands
	return len(specs) > 0 && specs[0].kind == OperandResultType
}

//nolint:funlen,maintidx // one line per opcode
func buildGrammar() map[OpCode]opInfo {
	one := func(k OperandKind) operandSpec { return operandSpec{kind: k} }
	opt := func(k OperandKind) operandSpec { return operandSpec{kind: k, quant: quantOptional} }
	many := func(k OperandKind) operandSpec { return operandSpec{kind: k, quant: quantVariadic} }
	def := func(name string, operands ...operandSpec) opInfo {
		return opInfo{name: name, operands: operands}
	}

	var (
		rt      = one(OperandResultType)
		res     = one(OperandResultID)
		id      = one(OperandID)
		optID   = opt(OperandID)
		ids     = many(OperandID)
		lit     = one(OperandLiteralInteger)
		lits    = many(OperandLiteralInteger)
		str     = one(OperandLiteralString)
		optStr  = opt(OperandLiteralString)
		mem     = opt(OperandMemoryAccess)
		imgOps  = opt(OperandImageOperands)
		storage = one(OperandStorageClass)
	)

	unary := func(name string) opInfo { return def(name, rt, res, id) }
	binary := func(name string) opInfo { return def(name, rt, res, id, id) }
	bare := func(name string) opInfo { return def(name) }
	typ := func(name string) opInfo { return def(name, res) }
	atomic := func(name string) opInfo { return def(name, rt, res, id, id, id, id) }

	return map[OpCode]opInfo{
		OpNop:             bare("OpNop"),
		OpUndef:           def("OpUndef", rt, res),
		OpSourceContinued: def("OpSourceContinued", str),
		OpSource:          def("OpSource", one(OperandSourceLanguage), lit, optID, optStr),
		OpSourceExtension: def("OpSourceExtension", str),
		OpName:            def("OpName", id, str),
		OpMemberName:      def("OpMemberName", id, lit, str),
		OpString:          def("OpString", res, str),
		OpLine:            def("OpLine", id, lit, lit),
		OpNoLine:          bare("OpNoLine"),
		OpModuleProcessed: def("OpModuleProcessed", str),

		OpExtension:     def("OpExtension", str),
		OpExtInstImport: def("OpExtInstImport", res, str),
		OpExtInst:       def("OpExtInst", rt, res, id, one(OperandExtInstNumber), ids),
		OpMemoryModel:   def("OpMemoryModel", one(OperandAddressingModel), one(OperandMemoryModel)),
		OpEntryPoint:    def("OpEntryPoint", one(OperandExecutionModel), id, str, ids),
		OpExecutionMode: def("OpExecutionMode", id, one(OperandExecutionMode)),
		OpCapability:    def("OpCapability", one(OperandCapability)),

		OpExecutionModeID: def("OpExecutionModeId", id, one(OperandExecutionMode)),

		OpTypeVoid:              typ("OpTypeVoid"),
		OpTypeBool:              typ("OpTypeBool"),
		OpTypeInt:               def("OpTypeInt", res, lit, lit),
		OpTypeFloat:             def("OpTypeFloat", res, lit),
		OpTypeVector:            def("OpTypeVector", res, id, lit),
		OpTypeMatrix:            def("OpTypeMatrix", res, id, lit),
		OpTypeImage:             def("OpTypeImage", res, id, one(OperandDim), lit, lit, lit, lit, one(OperandImageFormat), opt(OperandAccessQualifier)),
		OpTypeSampler:           typ("OpTypeSampler"),
		OpTypeSampledImage:      def("OpTypeSampledImage", res, id),
		OpTypeArray:             def("OpTypeArray", res, id, id),
		OpTypeRuntimeArray:      def("OpTypeRuntimeArray", res, id),
		OpTypeStruct:            def("OpTypeStruct", res, ids),
		OpTypeOpaque:            def("OpTypeOpaque", res, str),
		OpTypePointer:           def("OpTypePointer", res, storage, id),
		OpTypeFunction:          def("OpTypeFunction", res, id, ids),
		OpTypeEvent:             typ("OpTypeEvent"),
		OpTypeDeviceEvent:       typ("OpTypeDeviceEvent"),
		OpTypeReserveID:         typ("OpTypeReserveId"),
		OpTypeQueue:             typ("OpTypeQueue"),
		OpTypePipe:              def("OpTypePipe", res, one(OperandAccessQualifier)),
		OpTypeForwardPointer:    def("OpTypeForwardPointer", id, storage),
		OpTypeUntypedPointerKHR: def("OpTypeUntypedPointerKHR", res, storage),

		OpConstantTrue:          def("OpConstantTrue", rt, res),
		OpConstantFalse:         def("OpConstantFalse", rt, res),
		OpConstant:              def("OpConstant", rt, res, one(OperandLiteralContext)),
		OpConstantComposite:     def("OpConstantComposite", rt, res, ids),
		OpConstantSampler:       def("OpConstantSampler", rt, res, lit, lit, lit),
		OpConstantNull:          def("OpConstantNull", rt, res),
		OpSpecConstantTrue:      def("OpSpecConstantTrue", rt, res),
		OpSpecConstantFalse:     def("OpSpecConstantFalse", rt, res),
		OpSpecConstant:          def("OpSpecConstant", rt, res, one(OperandLiteralContext)),
		OpSpecConstantComposite: def("OpSpecConstantComposite", rt, res, ids),
		OpSpecConstantOp:        def("OpSpecConstantOp", rt, res, one(OperandSpecConstantOpNumber), many(operandSpecConstantArg)),

		OpFunction:          def("OpFunction", rt, res, one(OperandFunctionControl), id),
		OpFunctionParameter: def("OpFunctionParameter", rt, res),
		OpFunctionEnd:       bare("OpFunctionEnd"),
		OpFunctionCall:      def("OpFunctionCall", rt, res, id, ids),

		OpVariable:                         def("OpVariable", rt, res, storage, optID),
		OpUntypedVariableKHR:               def("OpUntypedVariableKHR", rt, res, storage, optID, optID),
		OpImageTexelPointer:                def("OpImageTexelPointer", rt, res, id, id, id),
		OpLoad:                             def("OpLoad", rt, res, id, mem),
		OpStore:                            def("OpStore", id, id, mem),
		OpCopyMemory:                       def("OpCopyMemory", id, id, mem, mem),
		OpCopyMemorySized:                  def("OpCopyMemorySized", id, id, id, mem, mem),
		OpAccessChain:                      def("OpAccessChain", rt, res, id, ids),
		OpInBoundsAccessChain:              def("OpInBoundsAccessChain", rt, res, id, ids),
		OpPtrAccessChain:                   def("OpPtrAccessChain", rt, res, id, id, ids),
		OpInBoundsPtrAccessChain:           def("OpInBoundsPtrAccessChain", rt, res, id, id, ids),
		OpUntypedAccessChainKHR:            def("OpUntypedAccessChainKHR", rt, res, id, id, ids),
		OpUntypedInBoundsAccessChainKHR:    def("OpUntypedInBoundsAccessChainKHR", rt, res, id, id, ids),
		OpUntypedPtrAccessChainKHR:         def("OpUntypedPtrAccessChainKHR", rt, res, id, id, id, ids),
		OpUntypedInBoundsPtrAccessChainKHR: def("OpUntypedInBoundsPtrAccessChainKHR", rt, res, id, id, id, ids),
		OpArrayLength:                      def("OpArrayLength", rt, res, id, lit),
		OpUntypedArrayLengthKHR:            def("OpUntypedArrayLengthKHR", rt, res, id, id, lit),
		OpGenericPtrMemSemantics:           unary("OpGenericPtrMemSemantics"),
		OpCopyLogical:                      unary("OpCopyLogical"),
		OpPtrEqual:                         binary("OpPtrEqual"),
		OpPtrNotEqual:                      binary("OpPtrNotEqual"),

		OpDecorate:            def("OpDecorate", id, one(OperandDecoration)),
		OpMemberDecorate:      def("OpMemberDecorate", id, lit, one(OperandDecoration)),
		OpDecorationGroup:     def("OpDecorationGroup", res),
		OpGroupDecorate:       def("OpGroupDecorate", id, ids),
		OpGroupMemberDecorate: def("OpGroupMemberDecorate", id, many(operandPairIDLiteral)),
		OpDecorateID:          def("OpDecorateId", id, one(OperandDecoration)),

		OpVectorExtractDynamic: binary("OpVectorExtractDynamic"),
		OpVectorInsertDynamic:  def("OpVectorInsertDynamic", rt, res, id, id, id),
		OpVectorShuffle:        def("OpVectorShuffle", rt, res, id, id, lits),
		OpCompositeConstruct:   def("OpCompositeConstruct", rt, res, ids),
		OpCompositeExtract:     def("OpCompositeExtract", rt, res, id, lits),
		OpCompositeInsert:      def("OpCompositeInsert", rt, res, id, id, lits),
		OpCopyObject:           unary("OpCopyObject"),
		OpTranspose:            unary("OpTranspose"),

		OpSampledImage:               binary("OpSampledImage"),
		OpImageSampleImplicitLod:     def("OpImageSampleImplicitLod", rt, res, id, id, imgOps),
		OpImageSampleExplicitLod:     def("OpImageSampleExplicitLod", rt, res, id, id, one(OperandImageOperands)),
		OpImageSampleDrefImplicitLod: def("OpImageSampleDrefImplicitLod", rt, res, id, id, id, imgOps),
		OpImageSampleDrefExplicitLod: def("OpImageSampleDrefExplicitLod", rt, res, id, id, id, one(OperandImageOperands)),
		OpImageFetch:                 def("OpImageFetch", rt, res, id, id, imgOps),
		OpImageGather:                def("OpImageGather", rt, res, id, id, id, imgOps),
		OpImageDrefGather:            def("OpImageDrefGather", rt, res, id, id, id, imgOps),
		OpImageRead:                  def("OpImageRead", rt, res, id, id, imgOps),
		OpImageWrite:                 def("OpImageWrite", id, id, id, imgOps),
		OpImage:                      unary("OpImage"),
		OpImageQuerySizeLod:          binary("OpImageQuerySizeLod"),
		OpImageQuerySize:             unary("OpImageQuerySize"),
		OpImageQueryLod:              binary("OpImageQueryLod"),
		OpImageQueryLevels:           unary("OpImageQueryLevels"),
		OpImageQuerySamples:          unary("OpImageQuerySamples"),

		OpConvertFToU:              unary("OpConvertFToU"),
		OpConvertFToS:              unary("OpConvertFToS"),
		OpConvertSToF:              unary("OpConvertSToF"),
		OpConvertUToF:              unary("OpConvertUToF"),
		OpUConvert:                 unary("OpUConvert"),
		OpSConvert:                 unary("OpSConvert"),
		OpFConvert:                 unary("OpFConvert"),
		OpQuantizeToF16:            unary("OpQuantizeToF16"),
		OpConvertPtrToU:            unary("OpConvertPtrToU"),
		OpSatConvertSToU:           unary("OpSatConvertSToU"),
		OpSatConvertUToS:           unary("OpSatConvertUToS"),
		OpConvertUToPtr:            unary("OpConvertUToPtr"),
		OpPtrCastToGeneric:         unary("OpPtrCastToGeneric"),
		OpGenericCastToPtr:         unary("OpGenericCastToPtr"),
		OpGenericCastToPtrExplicit: def("OpGenericCastToPtrExplicit", rt, res, id, storage),
		OpBitcast:                  unary("OpBitcast"),

		OpSNegate:           unary("OpSNegate"),
		OpFNegate:           unary("OpFNegate"),
		OpIAdd:              binary("OpIAdd"),
		OpFAdd:              binary("OpFAdd"),
		OpISub:              binary("OpISub"),
		OpFSub:              binary("OpFSub"),
		OpIMul:              binary("OpIMul"),
		OpFMul:              binary("OpFMul"),
		OpUDiv:              binary("OpUDiv"),
		OpSDiv:              binary("OpSDiv"),
		OpFDiv:              binary("OpFDiv"),
		OpUMod:              binary("OpUMod"),
		OpSRem:              binary("OpSRem"),
		OpSMod:              binary("OpSMod"),
		OpFRem:              binary("OpFRem"),
		OpFMod:              binary("OpFMod"),
		OpVectorTimesScalar: binary("OpVectorTimesScalar"),
		OpMatrixTimesScalar: binary("OpMatrixTimesScalar"),
		OpVectorTimesMatrix: binary("OpVectorTimesMatrix"),
		OpMatrixTimesVector: binary("OpMatrixTimesVector"),
		OpMatrixTimesMatrix: binary("OpMatrixTimesMatrix"),
		OpOuterProduct:      binary("OpOuterProduct"),
		OpDot:               binary("OpDot"),
		OpIAddCarry:         binary("OpIAddCarry"),
		OpISubBorrow:        binary("OpISubBorrow"),
		OpUMulExtended:      binary("OpUMulExtended"),
		OpSMulExtended:      binary("OpSMulExtended"),

		OpAny:                    unary("OpAny"),
		OpAll:                    unary("OpAll"),
		OpIsNan:                  unary("OpIsNan"),
		OpIsInf:                  unary("OpIsInf"),
		OpLogicalEqual:           binary("OpLogicalEqual"),
		OpLogicalNotEqual:        binary("OpLogicalNotEqual"),
		OpLogicalOr:              binary("OpLogicalOr"),
		OpLogicalAnd:             binary("OpLogicalAnd"),
		OpLogicalNot:             unary("OpLogicalNot"),
		OpSelect:                 def("OpSelect", rt, res, id, id, id),
		OpIEqual:                 binary("OpIEqual"),
		OpINotEqual:              binary("OpINotEqual"),
		OpUGreaterThan:           binary("OpUGreaterThan"),
		OpSGreaterThan:           binary("OpSGreaterThan"),
		OpUGreaterThanEqual:      binary("OpUGreaterThanEqual"),
		OpSGreaterThanEqual:      binary("OpSGreaterThanEqual"),
		OpULessThan:              binary("OpULessThan"),
		OpSLessThan:              binary("OpSLessThan"),
		OpULessThanEqual:         binary("OpULessThanEqual"),
		OpSLessThanEqual:         binary("OpSLessThanEqual"),
		OpFOrdEqual:              binary("OpFOrdEqual"),
		OpFUnordEqual:            binary("OpFUnordEqual"),
		OpFOrdNotEqual:           binary("OpFOrdNotEqual"),
		OpFUnordNotEqual:         binary("OpFUnordNotEqual"),
		OpFOrdLessThan:           binary("OpFOrdLessThan"),
		OpFUnordLessThan:         binary("OpFUnordLessThan"),
		OpFOrdGreaterThan:        binary("OpFOrdGreaterThan"),
		OpFUnordGreaterThan:      binary("OpFUnordGreaterThan"),
		OpFOrdLessThanEqual:      binary("OpFOrdLessThanEqual"),
		OpFUnordLessThanEqual:    binary("OpFUnordLessThanEqual"),
		OpFOrdGreaterThanEqual:   binary("OpFOrdGreaterThanEqual"),
		OpFUnordGreaterThanEqual: binary("OpFUnordGreaterThanEqual"),

		OpShiftRightLogical:    binary("OpShiftRightLogical"),
		OpShiftRightArithmetic: binary("OpShiftRightArithmetic"),
		OpShiftLeftLogical:     binary("OpShiftLeftLogical"),
		OpBitwiseOr:            binary("OpBitwiseOr"),
		OpBitwiseXor:           binary("OpBitwiseXor"),
		OpBitwiseAnd:           binary("OpBitwiseAnd"),
		OpNot:                  unary("OpNot"),
		OpBitFieldInsert:       def("OpBitFieldInsert", rt, res, id, id, id, id),
		OpBitFieldSExtract:     def("OpBitFieldSExtract", rt, res, id, id, id),
		OpBitFieldUExtract:     def("OpBitFieldUExtract", rt, res, id, id, id),
		OpBitReverse:           unary("OpBitReverse"),
		OpBitCount:             unary("OpBitCount"),
		OpDPdx:                 unary("OpDPdx"),
		OpDPdy:                 unary("OpDPdy"),
		OpFwidth:               unary("OpFwidth"),

		OpEmitVertex:     bare("OpEmitVertex"),
		OpEndPrimitive:   bare("OpEndPrimitive"),
		OpControlBarrier: def("OpControlBarrier", id, id, id),
		OpMemoryBarrier:  def("OpMemoryBarrier", id, id),

		OpAtomicLoad:                def("OpAtomicLoad", rt, res, id, id, id),
		OpAtomicStore:               def("OpAtomicStore", id, id, id, id),
		OpAtomicExchange:            atomic("OpAtomicExchange"),
		OpAtomicCompareExchange:     def("OpAtomicCompareExchange", rt, res, id, id, id, id, id, id),
		OpAtomicCompareExchangeWeak: def("OpAtomicCompareExchangeWeak", rt, res, id, id, id, id, id, id),
		OpAtomicIIncrement:          def("OpAtomicIIncrement", rt, res, id, id, id),
		OpAtomicIDecrement:          def("OpAtomicIDecrement", rt, res, id, id, id),
		OpAtomicIAdd:                atomic("OpAtomicIAdd"),
		OpAtomicISub:                atomic("OpAtomicISub"),
		OpAtomicSMin:                atomic("OpAtomicSMin"),
		OpAtomicUMin:                atomic("OpAtomicUMin"),
		OpAtomicSMax:                atomic("OpAtomicSMax"),
		OpAtomicUMax:                atomic("OpAtomicUMax"),
		OpAtomicAnd:                 atomic("OpAtomicAnd"),
		OpAtomicOr:                  atomic("OpAtomicOr"),
		OpAtomicXor:                 atomic("OpAtomicXor"),
		OpAtomicFlagTestAndSet:      def("OpAtomicFlagTestAndSet", rt, res, id, id, id),
		OpAtomicFlagClear:           def("OpAtomicFlagClear", id, id, id),
		OpAtomicFMinEXT:             atomic("OpAtomicFMinEXT"),
		OpAtomicFMaxEXT:             atomic("OpAtomicFMaxEXT"),
		OpAtomicFAddEXT:             atomic("OpAtomicFAddEXT"),

		OpPhi:                      def("OpPhi", rt, res, many(operandPairIDID)),
		OpLoopMerge:                def("OpLoopMerge", id, id, one(OperandLoopControl)),
		OpSelectionMerge:           def("OpSelectionMerge", id, one(OperandSelectionControl)),
		OpLabel:                    def("OpLabel", res),
		OpBranch:                   def("OpBranch", id),
		OpBranchConditional:        def("OpBranchConditional", id, id, id, lits),
		OpSwitch:                   def("OpSwitch", id, id, many(operandPairLiteralID)),
		OpKill:                     bare("OpKill"),
		OpReturn:                   bare("OpReturn"),
		OpReturnValue:              def("OpReturnValue", id),
		OpUnreachable:              bare("OpUnreachable"),
		OpLifetimeStart:            def("OpLifetimeStart", id, lit),
		OpLifetimeStop:             def("OpLifetimeStop", id, lit),
		OpTerminateInvocation:      bare("OpTerminateInvocation"),
		OpDemoteToHelperInvocation: bare("OpDemoteToHelperInvocation"),
	}
}
