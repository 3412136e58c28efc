// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package spirv

import (
	"strconv"
	"strings"
)

// Capability represents a SPIR-V capability.
type Capability uint32

// Capabilities.
const (
	CapabilityMatrix                             Capability = 0
	CapabilityShader                             Capability = 1
	CapabilityGeometry                           Capability = 2
	CapabilityTessellation                       Capability = 3
	CapabilityAddresses                          Capability = 4
	CapabilityLinkage                            Capability = 5
	CapabilityKernel                             Capability = 6
	CapabilityVector16                           Capability = 7
	CapabilityFloat16Buffer                      Capability = 8
	CapabilityFloat16                            Capability = 9
	CapabilityFloat64                            Capability = 10
	CapabilityInt64                              Capability = 11
	CapabilityInt64Atomics                       Capability = 12
	CapabilityImageBasic                         Capability = 13
	CapabilityImageReadWrite                     Capability = 14
	CapabilityImageMipmap                        Capability = 15
	CapabilityPipes                              Capability = 17
	CapabilityGroups                             Capability = 18
	CapabilityDeviceEnqueue                      Capability = 19
	CapabilityLiteralSampler                     Capability = 20
	CapabilityAtomicStorage                      Capability = 21
	CapabilityInt16                              Capability = 22
	CapabilityTessellationPointSize              Capability = 23
	CapabilityGeometryPointSize                  Capability = 24
	CapabilityImageGatherExtended                Capability = 25
	CapabilityStorageImageMultisample            Capability = 27
	CapabilityUniformBufferArrayDynamicIndexing  Capability = 28
	CapabilitySampledImageArrayDynamicIndexing   Capability = 29
	CapabilityStorageBufferArrayDynamicIndexing  Capability = 30
	CapabilityStorageImageArrayDynamicIndexing   Capability = 31
	CapabilityClipDistance                       Capability = 32
	CapabilityCullDistance                       Capability = 33
	CapabilityImageCubeArray                     Capability = 34
	CapabilitySampleRateShading                  Capability = 35
	CapabilityImageRect                          Capability = 36
	CapabilitySampledRect                        Capability = 37
	CapabilityGenericPointer                     Capability = 38
	CapabilityInt8                               Capability = 39
	CapabilityInputAttachment                    Capability = 40
	CapabilitySparseResidency                    Capability = 41
	CapabilityMinLod                             Capability = 42
	CapabilitySampled1D                          Capability = 43
	CapabilityImage1D                            Capability = 44
	CapabilitySampledCubeArray                   Capability = 45
	CapabilitySampledBuffer                      Capability = 46
	CapabilityImageBuffer                        Capability = 47
	CapabilityImageMSArray                       Capability = 48
	CapabilityStorageImageExtendedFormats        Capability = 49
	CapabilityImageQuery                         Capability = 50
	CapabilityDerivativeControl                  Capability = 51
	CapabilityInterpolationFunction              Capability = 52
	CapabilityTransformFeedback                  Capability = 53
	CapabilityGeometryStreams                    Capability = 54
	CapabilityStorageImageReadWithoutFormat      Capability = 55
	CapabilityStorageImageWriteWithoutFormat     Capability = 56
	CapabilityMultiViewport                      Capability = 57
	CapabilityGroupNonUniform                    Capability = 61
	CapabilityGroupNonUniformVote                Capability = 62
	CapabilityGroupNonUniformArithmetic          Capability = 63
	CapabilityGroupNonUniformBallot              Capability = 64
	CapabilityGroupNonUniformShuffle             Capability = 65
	CapabilityGroupNonUniformShuffleRelative     Capability = 66
	CapabilityGroupNonUniformClustered           Capability = 67
	CapabilityGroupNonUniformQuad                Capability = 68
	CapabilityShaderLayer                        Capability = 69
	CapabilityShaderViewportIndex                Capability = 70
	CapabilitySubgroupBallotKHR                  Capability = 4423
	CapabilityDrawParameters                     Capability = 4427
	CapabilityStorageBuffer16BitAccess           Capability = 4433
	CapabilityUniformAndStorageBuffer16BitAccess Capability = 4434
	CapabilityStoragePushConstant16              Capability = 4435
	CapabilityStorageInputOutput16               Capability = 4436
	CapabilityDeviceGroup                        Capability = 4437
	CapabilityMultiView                          Capability = 4439
	CapabilityVariablePointersStorageBuffer      Capability = 4441
	CapabilityVariablePointers                   Capability = 4442
	CapabilityStorageBuffer8BitAccess            Capability = 4448
	CapabilityUniformAndStorageBuffer8BitAccess  Capability = 4449
	CapabilityStoragePushConstant8               Capability = 4450
	CapabilityUntypedPointersKHR                 Capability = 4473
	CapabilityStencilExportEXT                   Capability = 5013
	CapabilityShaderViewportIndexLayerEXT        Capability = 5254
	CapabilityShaderNonUniform                   Capability = 5301
	CapabilityRuntimeDescriptorArray             Capability = 5302
	CapabilityVulkanMemoryModel                  Capability = 5345
	CapabilityVulkanMemoryModelDeviceScope       Capability = 5346
	CapabilityPhysicalStorageBufferAddresses     Capability = 5347
	CapabilityAtomicFloat32MinMaxEXT             Capability = 5612
	CapabilityAtomicFloat64MinMaxEXT             Capability = 5613
	CapabilityAtomicFloat16MinMaxEXT             Capability = 5616
	CapabilityAtomicFloat32AddEXT                Capability = 6033
	CapabilityAtomicFloat64AddEXT                Capability = 6034
	CapabilityAtomicFloat16AddEXT                Capability = 6095
)

var capabilityNames = map[uint32]string{
	0: "Matrix", 1: "Shader", 2: "Geometry", 3: "Tessellation",
	4: "Addresses", 5: "Linkage", 6: "Kernel", 7: "Vector16",
	8: "Float16Buffer", 9: "Float16", 10: "Float64", 11: "Int64",
	12: "Int64Atomics", 13: "ImageBasic", 14: "ImageReadWrite", 15: "ImageMipmap",
	17: "Pipes", 18: "Groups", 19: "DeviceEnqueue", 20: "LiteralSampler",
	21: "AtomicStorage", 22: "Int16", 23: "TessellationPointSize",
	24: "GeometryPointSize", 25: "ImageGatherExtended", 27: "StorageImageMultisample",
	28: "UniformBufferArrayDynamicIndexing", 29: "SampledImageArrayDynamicIndexing",
	30: "StorageBufferArrayDynamicIndexing", 31: "StorageImageArrayDynamicIndexing",
	32: "ClipDistance", 33: "CullDistance", 34: "ImageCubeArray",
	35: "SampleRateShading", 36: "ImageRect", 37: "SampledRect",
	38: "GenericPointer", 39: "Int8", 40: "InputAttachment",
	41: "SparseResidency", 42: "MinLod", 43: "Sampled1D", 44: "Image1D",
	45: "SampledCubeArray", 46: "SampledBuffer", 47: "ImageBuffer",
	48: "ImageMSArray", 49: "StorageImageExtendedFormats",
	50: "ImageQuery", 51: "DerivativeControl", 52: "InterpolationFunction",
	53: "TransformFeedback", 54: "GeometryStreams", 55: "StorageImageReadWithoutFormat",
	56: "StorageImageWriteWithoutFormat", 57: "MultiViewport",
	61: "GroupNonUniform", 62: "GroupNonUniformVote", 63: "GroupNonUniformArithmetic",
	64: "GroupNonUniformBallot", 65: "GroupNonUniformShuffle",
	66: "GroupNonUniformShuffleRelative", 67: "GroupNonUniformClustered",
	68: "GroupNonUniformQuad", 69: "ShaderLayer", 70: "ShaderViewportIndex",
	4423: "SubgroupBallotKHR", 4427: "DrawParameters",
	4433: "StorageBuffer16BitAccess", 4434: "UniformAndStorageBuffer16BitAccess",
	4435: "StoragePushConstant16", 4436: "StorageInputOutput16",
	4437: "DeviceGroup", 4439: "MultiView", 4441: "VariablePointersStorageBuffer",
	4442: "VariablePointers", 4448: "StorageBuffer8BitAccess",
	4449: "UniformAndStorageBuffer8BitAccess", 4450: "StoragePushConstant8",
	4473: "UntypedPointersKHR", 5013: "StencilExportEXT",
	5254: "ShaderViewportIndexLayerEXT", 5301: "ShaderNonUniform",
	5302: "RuntimeDescriptorArray", 5345: "VulkanMemoryModel",
	5346: "VulkanMemoryModelDeviceScope", 5347: "PhysicalStorageBufferAddresses",
	5612: "AtomicFloat32MinMaxEXT", 5613: "AtomicFloat64MinMaxEXT",
	5616: "AtomicFloat16MinMaxEXT", 6033: "AtomicFloat32AddEXT",
	6034: "AtomicFloat64AddEXT", 6095: "AtomicFloat16AddEXT",
}

func (c Capability) String() string { return enumName(capabilityNames, uint32(c)) }

// StorageClass represents a SPIR-V storage class.
type StorageClass uint32

// Storage classes.
const (
	StorageClassUniformConstant         StorageClass = 0
	StorageClassInput                   StorageClass = 1
	StorageClassUniform                 StorageClass = 2
	StorageClassOutput                  StorageClass = 3
	StorageClassWorkgroup               StorageClass = 4
	StorageClassCrossWorkgroup          StorageClass = 5
	StorageClassPrivate                 StorageClass = 6
	StorageClassFunction                StorageClass = 7
	StorageClassGeneric                 StorageClass = 8
	StorageClassPushConstant            StorageClass = 9
	StorageClassAtomicCounter           StorageClass = 10
	StorageClassImage                   StorageClass = 11
	StorageClassStorageBuffer           StorageClass = 12
	StorageClassTileImageEXT            StorageClass = 4172
	StorageClassCallableDataKHR         StorageClass = 5328
	StorageClassIncomingCallableDataKHR StorageClass = 5329
	StorageClassRayPayloadKHR           StorageClass = 5338
	StorageClassHitAttributeKHR         StorageClass = 5339
	StorageClassIncomingRayPayloadKHR   StorageClass = 5342
	StorageClassShaderRecordBufferKHR   StorageClass = 5343
	StorageClassPhysicalStorageBuffer   StorageClass = 5349
	StorageClassTaskPayloadWorkgroupEXT StorageClass = 5402
)

// StorageClassNone is a sentinel for "no storage class" returned by lookups
// on instructions that do not carry one.
const StorageClassNone StorageClass = 0x7fffffff

var storageClassNames = map[uint32]string{
	0: "UniformConstant", 1: "Input", 2: "Uniform", 3: "Output",
	4: "Workgroup", 5: "CrossWorkgroup", 6: "Private", 7: "Function",
	8: "Generic", 9: "PushConstant", 10: "AtomicCounter", 11: "Image",
	12: "StorageBuffer", 4172: "TileImageEXT", 5328: "CallableDataKHR",
	5329: "IncomingCallableDataKHR", 5338: "RayPayloadKHR", 5339: "HitAttributeKHR",
	5342: "IncomingRayPayloadKHR", 5343: "ShaderRecordBufferKHR",
	5349: "PhysicalStorageBuffer", 5402: "TaskPayloadWorkgroupEXT",
}

func (s StorageClass) String() string { return enumName(storageClassNames, uint32(s)) }

// ExecutionModel represents a SPIR-V execution model (shader stage).
type ExecutionModel uint32

// Execution models.
const (
	ExecutionModelVertex                 ExecutionModel = 0
	ExecutionModelTessellationControl    ExecutionModel = 1
	ExecutionModelTessellationEvaluation ExecutionModel = 2
	ExecutionModelGeometry               ExecutionModel = 3
	ExecutionModelFragment               ExecutionModel = 4
	ExecutionModelGLCompute              ExecutionModel = 5
	ExecutionModelKernel                 ExecutionModel = 6
	ExecutionModelTaskNV                 ExecutionModel = 5267
	ExecutionModelMeshNV                 ExecutionModel = 5268
	ExecutionModelRayGenerationKHR       ExecutionModel = 5313
	ExecutionModelIntersectionKHR        ExecutionModel = 5314
	ExecutionModelAnyHitKHR              ExecutionModel = 5315
	ExecutionModelClosestHitKHR          ExecutionModel = 5316
	ExecutionModelMissKHR                ExecutionModel = 5317
	ExecutionModelCallableKHR            ExecutionModel = 5318
	ExecutionModelTaskEXT                ExecutionModel = 5364
	ExecutionModelMeshEXT                ExecutionModel = 5365
)

var executionModelNames = map[uint32]string{
	0: "Vertex", 1: "TessellationControl", 2: "TessellationEvaluation",
	3: "Geometry", 4: "Fragment", 5: "GLCompute", 6: "Kernel",
	5267: "TaskNV", 5268: "MeshNV", 5313: "RayGenerationKHR", 5314: "IntersectionKHR",
	5315: "AnyHitKHR", 5316: "ClosestHitKHR", 5317: "MissKHR", 5318: "CallableKHR",
	5364: "TaskEXT", 5365: "MeshEXT",
}

func (m ExecutionModel) String() string { return enumName(executionModelNames, uint32(m)) }

// ExecutionMode represents a SPIR-V execution mode.
type ExecutionMode uint32

// Execution modes.
const (
	ExecutionModeInvocations           ExecutionMode = 0
	ExecutionModeSpacingEqual          ExecutionMode = 1
	ExecutionModePixelCenterInteger    ExecutionMode = 6
	ExecutionModeOriginUpperLeft       ExecutionMode = 7
	ExecutionModeOriginLowerLeft       ExecutionMode = 8
	ExecutionModeEarlyFragmentTests    ExecutionMode = 9
	ExecutionModeDepthReplacing        ExecutionMode = 12
	ExecutionModeDepthGreater          ExecutionMode = 14
	ExecutionModeDepthLess             ExecutionMode = 15
	ExecutionModeDepthUnchanged        ExecutionMode = 16
	ExecutionModeLocalSize             ExecutionMode = 17
	ExecutionModeLocalSizeHint         ExecutionMode = 18
	ExecutionModeTriangles             ExecutionMode = 22
	ExecutionModeOutputVertices        ExecutionMode = 26
	ExecutionModeOutputTriangleStrip   ExecutionMode = 29
	ExecutionModeSubgroupsPerWorkgroup ExecutionMode = 36
	ExecutionModeLocalSizeID           ExecutionMode = 38
	ExecutionModeLocalSizeHintID       ExecutionMode = 39
)

var executionModeNames = map[uint32]string{
	0: "Invocations", 1: "SpacingEqual", 2: "SpacingFractionalEven",
	3: "SpacingFractionalOdd", 4: "VertexOrderCw", 5: "VertexOrderCcw",
	6: "PixelCenterInteger", 7: "OriginUpperLeft", 8: "OriginLowerLeft",
	9: "EarlyFragmentTests", 10: "PointMode", 11: "Xfb", 12: "DepthReplacing",
	14: "DepthGreater", 15: "DepthLess", 16: "DepthUnchanged",
	17: "LocalSize", 18: "LocalSizeHint", 19: "InputPoints", 20: "InputLines",
	21: "InputLinesAdjacency", 22: "Triangles", 23: "InputTrianglesAdjacency",
	24: "Quads", 25: "Isolines", 26: "OutputVertices", 27: "OutputPoints",
	28: "OutputLineStrip", 29: "OutputTriangleStrip", 30: "VecTypeHint",
	31: "ContractionOff", 33: "Initializer", 34: "Finalizer",
	35: "SubgroupSize", 36: "SubgroupsPerWorkgroup", 37: "SubgroupsPerWorkgroupId",
	38: "LocalSizeId", 39: "LocalSizeHintId",
}

func (m ExecutionMode) String() string { return enumName(executionModeNames, uint32(m)) }

// AddressingModel represents a SPIR-V addressing model.
type AddressingModel uint32

// Addressing models.
const (
	AddressingModelLogical                 AddressingModel = 0
	AddressingModelPhysical32              AddressingModel = 1
	AddressingModelPhysical64              AddressingModel = 2
	AddressingModelPhysicalStorageBuffer64 AddressingModel = 5348
)

var addressingModelNames = map[uint32]string{
	0: "Logical", 1: "Physical32", 2: "Physical64", 5348: "PhysicalStorageBuffer64",
}

func (m AddressingModel) String() string { return enumName(addressingModelNames, uint32(m)) }

// MemoryModel represents a SPIR-V memory model.
type MemoryModel uint32

// Memory models.
const (
	MemoryModelSimple  MemoryModel = 0
	MemoryModelGLSL450 MemoryModel = 1
	MemoryModelOpenCL  MemoryModel = 2
	MemoryModelVulkan  MemoryModel = 3
)

var memoryModelNames = map[uint32]string{
	0: "Simple", 1: "GLSL450", 2: "OpenCL", 3: "Vulkan",
}

func (m MemoryModel) String() string { return enumName(memoryModelNames, uint32(m)) }

// Decoration represents a SPIR-V decoration.
type Decoration uint32

// Decorations.
const (
	DecorationRelaxedPrecision     Decoration = 0
	DecorationSpecID               Decoration = 1
	DecorationBlock                Decoration = 2
	DecorationBufferBlock          Decoration = 3
	DecorationRowMajor             Decoration = 4
	DecorationColMajor             Decoration = 5
	DecorationArrayStride          Decoration = 6
	DecorationMatrixStride         Decoration = 7
	DecorationBuiltIn              Decoration = 11
	DecorationNoPerspective        Decoration = 13
	DecorationFlat                 Decoration = 14
	DecorationPatch                Decoration = 15
	DecorationCentroid             Decoration = 16
	DecorationSample               Decoration = 17
	DecorationInvariant            Decoration = 18
	DecorationRestrict             Decoration = 19
	DecorationAliased              Decoration = 20
	DecorationVolatile             Decoration = 21
	DecorationConstant             Decoration = 22
	DecorationCoherent             Decoration = 23
	DecorationNonWritable          Decoration = 24
	DecorationNonReadable          Decoration = 25
	DecorationUniform              Decoration = 26
	DecorationLocation             Decoration = 30
	DecorationComponent            Decoration = 31
	DecorationIndex                Decoration = 32
	DecorationBinding              Decoration = 33
	DecorationDescriptorSet        Decoration = 34
	DecorationOffset               Decoration = 35
	DecorationLinkageAttributes    Decoration = 41
	DecorationInputAttachmentIndex Decoration = 43
	DecorationAlignment            Decoration = 44
	DecorationPerPrimitiveEXT      Decoration = 5271
	DecorationPerTaskNV            Decoration = 5273
	DecorationPerVertexKHR         Decoration = 5285
)

var decorationNames = map[uint32]string{
	0: "RelaxedPrecision", 1: "SpecId", 2: "Block", 3: "BufferBlock",
	4: "RowMajor", 5: "ColMajor", 6: "ArrayStride", 7: "MatrixStride",
	8: "GLSLShared", 9: "GLSLPacked", 10: "CPacked", 11: "BuiltIn",
	13: "NoPerspective", 14: "Flat", 15: "Patch", 16: "Centroid",
	17: "Sample", 18: "Invariant", 19: "Restrict", 20: "Aliased",
	21: "Volatile", 22: "Constant", 23: "Coherent", 24: "NonWritable",
	25: "NonReadable", 26: "Uniform", 27: "UniformId", 28: "SaturatedConversion",
	29: "Stream", 30: "Location", 31: "Component", 32: "Index",
	33: "Binding", 34: "DescriptorSet", 35: "Offset", 36: "XfbBuffer",
	37: "XfbStride", 38: "FuncParamAttr", 39: "FPRoundingMode",
	40: "FPFastMathMode", 41: "LinkageAttributes", 42: "NoContraction",
	43: "InputAttachmentIndex", 44: "Alignment", 45: "MaxByteOffset",
	46: "AlignmentId", 47: "MaxByteOffsetId", 5271: "PerPrimitiveEXT",
	5273: "PerTaskNV", 5285: "PerVertexKHR", 5300: "NonUniform",
	5355: "RestrictPointer", 5356: "AliasedPointer",
}

func (d Decoration) String() string { return enumName(decorationNames, uint32(d)) }

// BuiltIn represents the operand of a BuiltIn decoration.
type BuiltIn uint32

// Built-in variables.
const (
	BuiltInPosition                  BuiltIn = 0
	BuiltInPointSize                 BuiltIn = 1
	BuiltInClipDistance              BuiltIn = 3
	BuiltInCullDistance              BuiltIn = 4
	BuiltInVertexID                  BuiltIn = 5
	BuiltInInstanceID                BuiltIn = 6
	BuiltInPrimitiveID               BuiltIn = 7
	BuiltInInvocationID              BuiltIn = 8
	BuiltInLayer                     BuiltIn = 9
	BuiltInViewportIndex             BuiltIn = 10
	BuiltInTessLevelOuter            BuiltIn = 11
	BuiltInTessLevelInner            BuiltIn = 12
	BuiltInTessCoord                 BuiltIn = 13
	BuiltInPatchVertices             BuiltIn = 14
	BuiltInFragCoord                 BuiltIn = 15
	BuiltInPointCoord                BuiltIn = 16
	BuiltInFrontFacing               BuiltIn = 17
	BuiltInSampleID                  BuiltIn = 18
	BuiltInSamplePosition            BuiltIn = 19
	BuiltInSampleMask                BuiltIn = 20
	BuiltInFragDepth                 BuiltIn = 22
	BuiltInHelperInvocation          BuiltIn = 23
	BuiltInNumWorkgroups             BuiltIn = 24
	BuiltInWorkgroupSize             BuiltIn = 25
	BuiltInWorkgroupID               BuiltIn = 26
	BuiltInLocalInvocationID         BuiltIn = 27
	BuiltInGlobalInvocationID        BuiltIn = 28
	BuiltInLocalInvocationIndex      BuiltIn = 29
	BuiltInWorkDim                   BuiltIn = 30
	BuiltInGlobalSize                BuiltIn = 31
	BuiltInEnqueuedWorkgroupSize     BuiltIn = 32
	BuiltInGlobalOffset              BuiltIn = 33
	BuiltInGlobalLinearID            BuiltIn = 34
	BuiltInSubgroupSize              BuiltIn = 36
	BuiltInSubgroupMaxSize           BuiltIn = 37
	BuiltInNumSubgroups              BuiltIn = 38
	BuiltInNumEnqueuedSubgroups      BuiltIn = 39
	BuiltInSubgroupID                BuiltIn = 40
	BuiltInSubgroupLocalInvocationID BuiltIn = 41
	BuiltInVertexIndex               BuiltIn = 42
	BuiltInInstanceIndex             BuiltIn = 43
	BuiltInSubgroupEqMask            BuiltIn = 4416
	BuiltInSubgroupGeMask            BuiltIn = 4417
	BuiltInSubgroupGtMask            BuiltIn = 4418
	BuiltInSubgroupLeMask            BuiltIn = 4419
	BuiltInSubgroupLtMask            BuiltIn = 4420
	BuiltInBaseVertex                BuiltIn = 4424
	BuiltInBaseInstance              BuiltIn = 4425
	BuiltInDrawIndex                 BuiltIn = 4426
	BuiltInPrimitiveShadingRateKHR   BuiltIn = 4432
	BuiltInDeviceIndex               BuiltIn = 4438
	BuiltInViewIndex                 BuiltIn = 4440
	BuiltInShadingRateKHR            BuiltIn = 4444
	BuiltInFragStencilRefEXT         BuiltIn = 5014
)

var builtInNames = map[uint32]string{
	0: "Position", 1: "PointSize", 3: "ClipDistance", 4: "CullDistance",
	5: "VertexId", 6: "InstanceId", 7: "PrimitiveId", 8: "InvocationId",
	9: "Layer", 10: "ViewportIndex", 11: "TessLevelOuter", 12: "TessLevelInner",
	13: "TessCoord", 14: "PatchVertices", 15: "FragCoord", 16: "PointCoord",
	17: "FrontFacing", 18: "SampleId", 19: "SamplePosition", 20: "SampleMask",
	22: "FragDepth", 23: "HelperInvocation", 24: "NumWorkgroups",
	25: "WorkgroupSize", 26: "WorkgroupId", 27: "LocalInvocationId",
	28: "GlobalInvocationId", 29: "LocalInvocationIndex",
	30: "WorkDim", 31: "GlobalSize", 32: "EnqueuedWorkgroupSize",
	33: "GlobalOffset", 34: "GlobalLinearId", 36: "SubgroupSize",
	37: "SubgroupMaxSize", 38: "NumSubgroups", 39: "NumEnqueuedSubgroups",
	40: "SubgroupId", 41: "SubgroupLocalInvocationId",
	42: "VertexIndex", 43: "InstanceIndex",
	4416: "SubgroupEqMask", 4417: "SubgroupGeMask", 4418: "SubgroupGtMask",
	4419: "SubgroupLeMask", 4420: "SubgroupLtMask", 4424: "BaseVertex",
	4425: "BaseInstance", 4426: "DrawIndex", 4432: "PrimitiveShadingRateKHR",
	4438: "DeviceIndex", 4440: "ViewIndex", 4444: "ShadingRateKHR",
	5014: "FragStencilRefEXT",
}

func (b BuiltIn) String() string { return enumName(builtInNames, uint32(b)) }

// Scope represents a SPIR-V memory or execution scope.
type Scope uint32

// Scopes.
const (
	ScopeCrossDevice Scope = 0
	ScopeDevice      Scope = 1
	ScopeWorkgroup   Scope = 2
	ScopeSubgroup    Scope = 3
	ScopeInvocation  Scope = 4
	ScopeQueueFamily Scope = 5
	ScopeShaderCall  Scope = 6
)

var scopeNames = map[uint32]string{
	0: "CrossDevice", 1: "Device", 2: "Workgroup", 3: "Subgroup",
	4: "Invocation", 5: "QueueFamily", 6: "ShaderCallKHR",
}

func (s Scope) String() string { return enumName(scopeNames, uint32(s)) }

// MemorySemantics is the memory semantics bit mask.
type MemorySemantics uint32

// Memory semantics bits.
const (
	MemorySemanticsAcquire                MemorySemantics = 0x2
	MemorySemanticsRelease                MemorySemantics = 0x4
	MemorySemanticsAcquireRelease         MemorySemantics = 0x8
	MemorySemanticsSequentiallyConsistent MemorySemantics = 0x10
	MemorySemanticsUniformMemory          MemorySemantics = 0x40
	MemorySemanticsSubgroupMemory         MemorySemantics = 0x80
	MemorySemanticsWorkgroupMemory        MemorySemantics = 0x100
	MemorySemanticsCrossWorkgroupMemory   MemorySemantics = 0x200
	MemorySemanticsAtomicCounterMemory    MemorySemantics = 0x400
	MemorySemanticsImageMemory            MemorySemantics = 0x800
	MemorySemanticsOutputMemory           MemorySemantics = 0x1000
	MemorySemanticsMakeAvailable          MemorySemantics = 0x2000
	MemorySemanticsMakeVisible            MemorySemantics = 0x4000
	MemorySemanticsVolatile               MemorySemantics = 0x8000
)

var memorySemanticsNames = map[uint32]string{
	0x2: "Acquire", 0x4: "Release", 0x8: "AcquireRelease", 0x10: "SequentiallyConsistent",
	0x40: "UniformMemory", 0x80: "SubgroupMemory", 0x100: "WorkgroupMemory",
	0x200: "CrossWorkgroupMemory", 0x400: "AtomicCounterMemory", 0x800: "ImageMemory",
	0x1000: "OutputMemory", 0x2000: "MakeAvailable", 0x4000: "MakeVisible", 0x8000: "Volatile",
}

func (m MemorySemantics) String() string { return maskName(memorySemanticsNames, uint32(m)) }

// MemoryAccess is the memory operand bit mask of loads, stores and copies.
type MemoryAccess uint32

// Memory access bits.
const (
	MemoryAccessNone                 MemoryAccess = 0
	MemoryAccessVolatile             MemoryAccess = 0x1
	MemoryAccessAligned              MemoryAccess = 0x2
	MemoryAccessNontemporal          MemoryAccess = 0x4
	MemoryAccessMakePointerAvailable MemoryAccess = 0x8
	MemoryAccessMakePointerVisible   MemoryAccess = 0x10
	MemoryAccessNonPrivatePointer    MemoryAccess = 0x20
)

var memoryAccessNames = map[uint32]string{
	0x1: "Volatile", 0x2: "Aligned", 0x4: "Nontemporal",
	0x8: "MakePointerAvailable", 0x10: "MakePointerVisible", 0x20: "NonPrivatePointer",
}

func (m MemoryAccess) String() string { return maskName(memoryAccessNames, uint32(m)) }

var functionControlNames = map[uint32]string{
	0x1: "Inline", 0x2: "DontInline", 0x4: "Pure", 0x8: "Const",
}

var selectionControlNames = map[uint32]string{
	0x1: "Flatten", 0x2: "DontFlatten",
}

var loopControlNames = map[uint32]string{
	0x1: "Unroll", 0x2: "DontUnroll", 0x4: "DependencyInfinite", 0x8: "DependencyLength",
	0x10: "MinIterations", 0x20: "MaxIterations", 0x40: "IterationMultiple",
	0x80: "PeelCount", 0x100: "PartialCount",
}

var imageOperandNames = map[uint32]string{
	0x1: "Bias", 0x2: "Lod", 0x4: "Grad", 0x8: "ConstOffset", 0x10: "Offset",
	0x20: "ConstOffsets", 0x40: "Sample", 0x80: "MinLod", 0x100: "MakeTexelAvailable",
	0x200: "MakeTexelVisible", 0x400: "NonPrivateTexel", 0x800: "VolatileTexel",
	0x1000: "SignExtend", 0x2000: "ZeroExtend", 0x4000: "Nontemporal",
}

var dimNames = map[uint32]string{
	0: "1D", 1: "2D", 2: "3D", 3: "Cube", 4: "Rect", 5: "Buffer", 6: "SubpassData",
}

var imageFormatNames = map[uint32]string{
	0: "Unknown", 1: "Rgba32f", 2: "Rgba16f", 3: "R32f", 4: "Rgba8",
	5: "Rgba8Snorm", 21: "Rgba32i", 24: "R32i", 30: "Rgba32ui", 33: "R32ui",
}

var accessQualifierNames = map[uint32]string{
	0: "ReadOnly", 1: "WriteOnly", 2: "ReadWrite",
}

var sourceLanguageNames = map[uint32]string{
	0: "Unknown", 1: "ESSL", 2: "GLSL", 3: "OpenCL_C", 4: "OpenCL_CPP", 5: "HLSL",
	10: "WGSL",
}

// enumName returns the table name for value or its decimal form.
func enumName(names map[uint32]string, value uint32) string {
	if s, ok := names[value]; ok {
		return s
	}
	return strconv.FormatUint(uint64(value), 10)
}

// maskName renders a bit mask as "A|B", "None" for zero.
func maskName(names map[uint32]string, value uint32) string {
	if value == 0 {
		return "None"
	}
	var parts []string
	for bit := uint32(1); bit != 0; bit <<= 1 {
		if value&bit == 0 {
			continue
		}
		if s, ok := names[bit]; ok {
			parts = append(parts, s)
		} else {
			parts = append(parts, "0x"+strconv.FormatUint(uint64(bit), 16))
		}
	}
	return strings.Join(parts, "|")
}

// reverse builds a name -> value index for the assembler.
func reverse(names map[uint32]string) map[string]uint32 {
	out := make(map[string]uint32, len(names))
	for v, s := range names {
		out[s] = v
	}
	return out
}
