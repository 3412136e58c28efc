// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import "strconv"

// OpCode represents a SPIR-V opcode.
type OpCode uint16

// Opcodes understood by the decoder, assembler and validator.
const (
	OpNop                              OpCode = 0
	OpUndef                            OpCode = 1
	OpSourceContinued                  OpCode = 2
	OpSource                           OpCode = 3
	OpSourceExtension                  OpCode = 4
	OpName                             OpCode = 5
	OpMemberName                       OpCode = 6
	OpString                           OpCode = 7
	OpLine                             OpCode = 8
	OpExtension                        OpCode = 10
	OpExtInstImport                    OpCode = 11
	OpExtInst                          OpCode = 12
	OpMemoryModel                      OpCode = 14
	OpEntryPoint                       OpCode = 15
	OpExecutionMode                    OpCode = 16
	OpCapability                       OpCode = 17
	OpTypeVoid                         OpCode = 19
	OpTypeBool                         OpCode = 20
	OpTypeInt                          OpCode = 21
	OpTypeFloat                        OpCode = 22
	OpTypeVector                       OpCode = 23
	OpTypeMatrix                       OpCode = 24
	OpTypeImage                        OpCode = 25
	OpTypeSampler                      OpCode = 26
	OpTypeSampledImage                 OpCode = 27
	OpTypeArray                        OpCode = 28
	OpTypeRuntimeArray                 OpCode = 29
	OpTypeStruct                       OpCode = 30
	OpTypeOpaque                       OpCode = 31
	OpTypePointer                      OpCode = 32
	OpTypeFunction                     OpCode = 33
	OpTypeEvent                        OpCode = 34
	OpTypeDeviceEvent                  OpCode = 35
	OpTypeReserveID                    OpCode = 36
	OpTypeQueue                        OpCode = 37
	OpTypePipe                         OpCode = 38
	OpTypeForwardPointer               OpCode = 39
	OpConstantTrue                     OpCode = 41
	OpConstantFalse                    OpCode = 42
	OpConstant                         OpCode = 43
	OpConstantComposite                OpCode = 44
	OpConstantSampler                  OpCode = 45
	OpConstantNull                     OpCode = 46
	OpSpecConstantTrue                 OpCode = 48
	OpSpecConstantFalse                OpCode = 49
	OpSpecConstant                     OpCode = 50
	OpSpecConstantComposite            OpCode = 51
	OpSpecConstantOp                   OpCode = 52
	OpFunction                         OpCode = 54
	OpFunctionParameter                OpCode = 55
	OpFunctionEnd                      OpCode = 56
	OpFunctionCall                     OpCode = 57
	OpVariable                         OpCode = 59
	OpImageTexelPointer                OpCode = 60
	OpLoad                             OpCode = 61
	OpStore                            OpCode = 62
	OpCopyMemory                       OpCode = 63
	OpCopyMemorySized                  OpCode = 64
	OpAccessChain                      OpCode = 65
	OpInBoundsAccessChain              OpCode = 66
	OpPtrAccessChain                   OpCode = 67
	OpArrayLength                      OpCode = 68
	OpGenericPtrMemSemantics           OpCode = 69
	OpInBoundsPtrAccessChain           OpCode = 70
	OpDecorate                         OpCode = 71
	OpMemberDecorate                   OpCode = 72
	OpDecorationGroup                  OpCode = 73
	OpGroupDecorate                    OpCode = 74
	OpGroupMemberDecorate              OpCode = 75
	OpVectorExtractDynamic             OpCode = 77
	OpVectorInsertDynamic              OpCode = 78
	OpVectorShuffle                    OpCode = 79
	OpCompositeConstruct               OpCode = 80
	OpCompositeExtract                 OpCode = 81
	OpCompositeInsert                  OpCode = 82
	OpCopyObject                       OpCode = 83
	OpTranspose                        OpCode = 84
	OpSampledImage                     OpCode = 86
	OpImageSampleImplicitLod           OpCode = 87
	OpImageSampleExplicitLod           OpCode = 88
	OpImageSampleDrefImplicitLod       OpCode = 89
	OpImageSampleDrefExplicitLod       OpCode = 90
	OpImageFetch                       OpCode = 95
	OpImageGather                      OpCode = 96
	OpImageDrefGather                  OpCode = 97
	OpImageRead                        OpCode = 98
	OpImageWrite                       OpCode = 99
	OpImage                            OpCode = 100
	OpImageQuerySizeLod                OpCode = 103
	OpImageQuerySize                   OpCode = 104
	OpImageQueryLod                    OpCode = 105
	OpImageQueryLevels                 OpCode = 106
	OpImageQuerySamples                OpCode = 107
	OpConvertFToU                      OpCode = 109
	OpConvertFToS                      OpCode = 110
	OpConvertSToF                      OpCode = 111
	OpConvertUToF                      OpCode = 112
	OpUConvert                         OpCode = 113
	OpSConvert                         OpCode = 114
	OpFConvert                         OpCode = 115
	OpQuantizeToF16                    OpCode = 116
	OpConvertPtrToU                    OpCode = 117
	OpSatConvertSToU                   OpCode = 118
	OpSatConvertUToS                   OpCode = 119
	OpConvertUToPtr                    OpCode = 120
	OpPtrCastToGeneric                 OpCode = 121
	OpGenericCastToPtr                 OpCode = 122
	OpGenericCastToPtrExplicit         OpCode = 123
	OpBitcast                          OpCode = 124
	OpSNegate                          OpCode = 126
	OpFNegate                          OpCode = 127
	OpIAdd                             OpCode = 128
	OpFAdd                             OpCode = 129
	OpISub                             OpCode = 130
	OpFSub                             OpCode = 131
	OpIMul                             OpCode = 132
	OpFMul                             OpCode = 133
	OpUDiv                             OpCode = 134
	OpSDiv                             OpCode = 135
	OpFDiv                             OpCode = 136
	OpUMod                             OpCode = 137
	OpSRem                             OpCode = 138
	OpSMod                             OpCode = 139
	OpFRem                             OpCode = 140
	OpFMod                             OpCode = 141
	OpVectorTimesScalar                OpCode = 142
	OpMatrixTimesScalar                OpCode = 143
	OpVectorTimesMatrix                OpCode = 144
	OpMatrixTimesVector                OpCode = 145
	OpMatrixTimesMatrix                OpCode = 146
	OpOuterProduct                     OpCode = 147
	OpDot                              OpCode = 148
	OpIAddCarry                        OpCode = 149
	OpISubBorrow                       OpCode = 150
	OpUMulExtended                     OpCode = 151
	OpSMulExtended                     OpCode = 152
	OpAny                              OpCode = 154
	OpAll                              OpCode = 155
	OpIsNan                            OpCode = 156
	OpIsInf                            OpCode = 157
	OpLogicalEqual                     OpCode = 164
	OpLogicalNotEqual                  OpCode = 165
	OpLogicalOr                        OpCode = 166
	OpLogicalAnd                       OpCode = 167
	OpLogicalNot                       OpCode = 168
	OpSelect                           OpCode = 169
	OpIEqual                           OpCode = 170
	OpINotEqual                        OpCode = 171
	OpUGreaterThan                     OpCode = 172
	OpSGreaterThan                     OpCode = 173
	OpUGreaterThanEqual                OpCode = 174
	OpSGreaterThanEqual                OpCode = 175
	OpULessThan                        OpCode = 176
	OpSLessThan                        OpCode = 177
	OpULessThanEqual                   OpCode = 178
	OpSLessThanEqual                   OpCode = 179
	OpFOrdEqual                        OpCode = 180
	OpFUnordEqual                      OpCode = 181
	OpFOrdNotEqual                     OpCode = 182
	OpFUnordNotEqual                   OpCode = 183
	OpFOrdLessThan                     OpCode = 184
	OpFUnordLessThan                   OpCode = 185
	OpFOrdGreaterThan                  OpCode = 186
	OpFUnordGreaterThan                OpCode = 187
	OpFOrdLessThanEqual                OpCode = 188
	OpFUnordLessThanEqual              OpCode = 189
	OpFOrdGreaterThanEqual             OpCode = 190
	OpFUnordGreaterThanEqual           OpCode = 191
	OpShiftRightLogical                OpCode = 194
	OpShiftRightArithmetic             OpCode = 195
	OpShiftLeftLogical                 OpCode = 196
	OpBitwiseOr                        OpCode = 197
	OpBitwiseXor                       OpCode = 198
	OpBitwiseAnd                       OpCode = 199
	OpNot                              OpCode = 200
	OpBitFieldInsert                   OpCode = 201
	OpBitFieldSExtract                 OpCode = 202
	OpBitFieldUExtract                 OpCode = 203
	OpBitReverse                       OpCode = 204
	OpBitCount                         OpCode = 205
	OpDPdx                             OpCode = 207
	OpDPdy                             OpCode = 208
	OpFwidth                           OpCode = 209
	OpEmitVertex                       OpCode = 218
	OpEndPrimitive                     OpCode = 219
	OpControlBarrier                   OpCode = 224
	OpMemoryBarrier                    OpCode = 225
	OpAtomicLoad                       OpCode = 227
	OpAtomicStore                      OpCode = 228
	OpAtomicExchange                   OpCode = 229
	OpAtomicCompareExchange            OpCode = 230
	OpAtomicCompareExchangeWeak        OpCode = 231
	OpAtomicIIncrement                 OpCode = 232
	OpAtomicIDecrement                 OpCode = 233
	OpAtomicIAdd                       OpCode = 234
	OpAtomicISub                       OpCode = 235
	OpAtomicSMin                       OpCode = 236
	OpAtomicUMin                       OpCode = 237
	OpAtomicSMax                       OpCode = 238
	OpAtomicUMax                       OpCode = 239
	OpAtomicAnd                        OpCode = 240
	OpAtomicOr                         OpCode = 241
	OpAtomicXor                        OpCode = 242
	OpPhi                              OpCode = 245
	OpLoopMerge                        OpCode = 246
	OpSelectionMerge                   OpCode = 247
	OpLabel                            OpCode = 248
	OpBranch                           OpCode = 249
	OpBranchConditional                OpCode = 250
	OpSwitch                           OpCode = 251
	OpKill                             OpCode = 252
	OpReturn                           OpCode = 253
	OpReturnValue                      OpCode = 254
	OpUnreachable                      OpCode = 255
	OpLifetimeStart                    OpCode = 256
	OpLifetimeStop                     OpCode = 257
	OpNoLine                           OpCode = 317
	OpAtomicFlagTestAndSet             OpCode = 318
	OpAtomicFlagClear                  OpCode = 319
	OpModuleProcessed                  OpCode = 330
	OpExecutionModeID                  OpCode = 331
	OpDecorateID                       OpCode = 332
	OpCopyLogical                      OpCode = 400
	OpPtrEqual                         OpCode = 401
	OpPtrNotEqual                      OpCode = 402
	OpTerminateInvocation              OpCode = 4416
	OpTypeUntypedPointerKHR            OpCode = 4417
	OpUntypedVariableKHR               OpCode = 4418
	OpUntypedAccessChainKHR            OpCode = 4419
	OpUntypedInBoundsAccessChainKHR    OpCode = 4420
	OpUntypedPtrAccessChainKHR         OpCode = 4423
	OpUntypedInBoundsPtrAccessChainKHR OpCode = 4424
	OpUntypedArrayLengthKHR            OpCode = 4425
	OpDemoteToHelperInvocation         OpCode = 5380
	OpAtomicFMinEXT                    OpCode = 5614
	OpAtomicFMaxEXT                    OpCode = 5615
	OpAtomicFAddEXT                    OpCode = 6035
)

// String returns the assembly mnemonic of the opcode.
func (op OpCode) String() string {
	if info, ok := grammar[op]; ok {
		return info.name
	}
	return "Op" + strconv.Itoa(int(op))
}

// IsType reports whether the opcode declares a type.
func (op OpCode) IsType() bool {
	switch op {
	case OpTypeVoid, OpTypeBool, OpTypeInt, OpTypeFloat, OpTypeVector, OpTypeMatrix,
		OpTypeImage, OpTypeSampler, OpTypeSampledImage, OpTypeArray, OpTypeRuntimeArray,
		OpTypeStruct, OpTypeOpaque, OpTypePointer, OpTypeFunction, OpTypeEvent,
		OpTypeDeviceEvent, OpTypeReserveID, OpTypeQueue, OpTypePipe, OpTypeUntypedPointerKHR:
		return true
	}
	return false
}

// IsConstant reports whether the opcode declares a constant or specialization constant.
func (op OpCode) IsConstant() bool {
	switch op {
	case OpConstantTrue, OpConstantFalse, OpConstant, OpConstantComposite,
		OpConstantSampler, OpConstantNull, OpSpecConstantTrue, OpSpecConstantFalse,
		OpSpecConstant, OpSpecConstantComposite, OpSpecConstantOp:
		return true
	}
	return false
}

// IsSpecConstant reports whether the opcode declares a specialization constant.
func (op OpCode) IsSpecConstant() bool {
	switch op {
	case OpSpecConstantTrue, OpSpecConstantFalse, OpSpecConstant,
		OpSpecConstantComposite, OpSpecConstantOp:
		return true
	}
	return false
}

// IsAccessChain reports whether the opcode computes a pointer into a composite.
func (op OpCode) IsAccessChain() bool {
	switch op {
	case OpAccessChain, OpInBoundsAccessChain, OpPtrAccessChain, OpInBoundsPtrAccessChain,
		OpUntypedAccessChainKHR, OpUntypedInBoundsAccessChainKHR, OpUntypedPtrAccessChainKHR,
		OpUntypedInBoundsPtrAccessChainKHR:
		return true
	}
	return false
}

// IsAtomic reports whether the opcode is one of the atomic instructions.
func (op OpCode) IsAtomic() bool {
	switch op {
	case OpAtomicLoad, OpAtomicStore, OpAtomicExchange, OpAtomicCompareExchange,
		OpAtomicCompareExchangeWeak, OpAtomicIIncrement, OpAtomicIDecrement, OpAtomicIAdd,
		OpAtomicISub, OpAtomicSMin, OpAtomicUMin, OpAtomicSMax, OpAtomicUMax, OpAtomicAnd,
		OpAtomicOr, OpAtomicXor, OpAtomicFlagTestAndSet, OpAtomicFlagClear,
		OpAtomicFMinEXT, OpAtomicFMaxEXT, OpAtomicFAddEXT:
		return true
	}
	return false
}
