// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/spvval/spirv"
)

type shapeKind uint8

const (
	shapeScalar shapeKind = iota
	shapeVector
	shapeArray
)

type componentKind uint8

const (
	componentFloat componentKind = iota
	componentInt
	componentBool
)

// builtInShape is the data type a built-in variable must have.
type builtInShape struct {
	kind      shapeKind
	component componentKind
	width     uint32 // 0 for bool
	count     uint32 // vector size or exact array length; 0 means any length
	arrayed   bool   // one extra per-vertex array level is allowed
}

func (s builtInShape) String() string {
	var elem string
	switch s.component {
	case componentFloat:
		elem = fmt.Sprintf("%d-bit float", s.width)
	case componentInt:
		elem = fmt.Sprintf("%d-bit int", s.width)
	default:
		elem = "bool"
	}
	switch s.kind {
	case shapeVector:
		return fmt.Sprintf("%d-component %s vector", s.count, elem)
	case shapeArray:
		if s.count != 0 {
			return fmt.Sprintf("%d-element array of %s", s.count, elem)
		}
		return "array of " + elem
	}
	return elem + " scalar"
}

var (
	f32     = builtInShape{kind: shapeScalar, component: componentFloat, width: 32}
	i32     = builtInShape{kind: shapeScalar, component: componentInt, width: 32}
	boolean = builtInShape{kind: shapeScalar, component: componentBool}
	f32vec2 = builtInShape{kind: shapeVector, component: componentFloat, width: 32, count: 2}
	f32vec3 = builtInShape{kind: shapeVector, component: componentFloat, width: 32, count: 3}
	f32vec4 = builtInShape{kind: shapeVector, component: componentFloat, width: 32, count: 4}
	i32vec3 = builtInShape{kind: shapeVector, component: componentInt, width: 32, count: 3}
	i32vec4 = builtInShape{kind: shapeVector, component: componentInt, width: 32, count: 4}
	f32arr  = builtInShape{kind: shapeArray, component: componentFloat, width: 32}
	i32arr  = builtInShape{kind: shapeArray, component: componentInt, width: 32}
)

func arrayed(s builtInShape) builtInShape {
	s.arrayed = true
	return s
}

func fixedArray(s builtInShape, n uint32) builtInShape {
	s.count = n
	return s
}

// builtInRule describes where a built-in may be used in Vulkan.
type builtInRule struct {
	shape  builtInShape
	input  []spirv.ExecutionModel // models allowed to read it as Input; nil if Input is illegal
	output []spirv.ExecutionModel // models allowed to write it as Output; nil if Output is illegal

	constant       bool // may decorate a constant
	depthReplacing bool // fragment entry points need the DepthReplacing mode
}

// allows reports whether the built-in can be used at all under model.
func (r *builtInRule) allows(model spirv.ExecutionModel) bool {
	return slices.Contains(r.input, model) || slices.Contains(r.output, model)
}

// forbiddenUnder returns the models that may use the built-in, but not with
// storage class sc.
func (r *builtInRule) forbiddenUnder(sc spirv.StorageClass) []spirv.ExecutionModel {
	allowed, other := r.input, r.output
	if sc == spirv.StorageClassOutput {
		allowed, other = r.output, r.input
	}
	var forbidden []spirv.ExecutionModel
	for _, m := range other {
		if !slices.Contains(allowed, m) && !slices.Contains(forbidden, m) {
			forbidden = append(forbidden, m)
		}
	}
	return forbidden
}

// storageNames renders the storage classes the rule accepts.
func (r *builtInRule) storageNames() string {
	switch {
	case r.input != nil && r.output != nil:
		return "Input or Output"
	case r.output != nil:
		return "Output"
	}
	return "Input"
}

// modelNames renders the models the rule accepts.
func (r *builtInRule) modelNames() string {
	var models []spirv.ExecutionModel
	for _, m := range append(slices.Clone(r.input), r.output...) {
		if !slices.Contains(models, m) {
			models = append(models, m)
		}
	}
	return joinModels(models)
}

func joinModels(models []spirv.ExecutionModel) string {
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.String()
	}
	return strings.Join(names, ", ")
}

var (
	allModels = []spirv.ExecutionModel{
		spirv.ExecutionModelVertex, spirv.ExecutionModelTessellationControl,
		spirv.ExecutionModelTessellationEvaluation, spirv.ExecutionModelGeometry,
		spirv.ExecutionModelFragment, spirv.ExecutionModelGLCompute,
		spirv.ExecutionModelTaskNV, spirv.ExecutionModelMeshNV,
		spirv.ExecutionModelRayGenerationKHR, spirv.ExecutionModelIntersectionKHR,
		spirv.ExecutionModelAnyHitKHR, spirv.ExecutionModelClosestHitKHR,
		spirv.ExecutionModelMissKHR, spirv.ExecutionModelCallableKHR,
		spirv.ExecutionModelTaskEXT, spirv.ExecutionModelMeshEXT,
	}
	computeModels = []spirv.ExecutionModel{
		spirv.ExecutionModelGLCompute, spirv.ExecutionModelTaskNV, spirv.ExecutionModelMeshNV,
		spirv.ExecutionModelTaskEXT, spirv.ExecutionModelMeshEXT,
	}
	preRasterOutput = []spirv.ExecutionModel{
		spirv.ExecutionModelVertex, spirv.ExecutionModelTessellationControl,
		spirv.ExecutionModelTessellationEvaluation, spirv.ExecutionModelGeometry,
		spirv.ExecutionModelMeshNV, spirv.ExecutionModelMeshEXT,
	}
	preRasterInput = []spirv.ExecutionModel{
		spirv.ExecutionModelTessellationControl, spirv.ExecutionModelTessellationEvaluation,
		spirv.ExecutionModelGeometry,
	}
	fragmentOnly = []spirv.ExecutionModel{spirv.ExecutionModelFragment}
	vertexOnly   = []spirv.ExecutionModel{spirv.ExecutionModelVertex}
)

func modelList(m ...spirv.ExecutionModel) []spirv.ExecutionModel { return m }

// builtInRules holds the Vulkan rules of every validated built-in.
var builtInRules = map[spirv.BuiltIn]*builtInRule{
	spirv.BuiltInPosition:     {shape: arrayed(f32vec4), input: preRasterInput, output: preRasterOutput},
	spirv.BuiltInPointSize:    {shape: arrayed(f32), input: preRasterInput, output: preRasterOutput},
	spirv.BuiltInClipDistance: {shape: arrayed(f32arr), input: append(modelList(spirv.ExecutionModelFragment), preRasterInput...), output: preRasterOutput},
	spirv.BuiltInCullDistance: {shape: arrayed(f32arr), input: append(modelList(spirv.ExecutionModelFragment), preRasterInput...), output: preRasterOutput},

	spirv.BuiltInFragCoord:        {shape: f32vec4, input: fragmentOnly},
	spirv.BuiltInFragDepth:        {shape: f32, output: fragmentOnly, depthReplacing: true},
	spirv.BuiltInFrontFacing:      {shape: boolean, input: fragmentOnly},
	spirv.BuiltInHelperInvocation: {shape: boolean, input: fragmentOnly},
	spirv.BuiltInPointCoord:       {shape: f32vec2, input: fragmentOnly},
	spirv.BuiltInSampleID:         {shape: i32, input: fragmentOnly},
	spirv.BuiltInSamplePosition:   {shape: f32vec2, input: fragmentOnly},
	spirv.BuiltInSampleMask:       {shape: i32arr, input: fragmentOnly, output: fragmentOnly},
	spirv.BuiltInFragStencilRefEXT: {shape: i32, output: fragmentOnly},
	spirv.BuiltInShadingRateKHR:    {shape: i32, input: fragmentOnly},
	spirv.BuiltInPrimitiveShadingRateKHR: {shape: i32, output: modelList(spirv.ExecutionModelVertex,
		spirv.ExecutionModelGeometry, spirv.ExecutionModelMeshNV, spirv.ExecutionModelMeshEXT)},

	spirv.BuiltInVertexIndex:   {shape: i32, input: vertexOnly},
	spirv.BuiltInInstanceIndex: {shape: i32, input: vertexOnly},
	spirv.BuiltInBaseVertex:    {shape: i32, input: vertexOnly},
	spirv.BuiltInBaseInstance:  {shape: i32, input: vertexOnly},
	spirv.BuiltInDrawIndex: {shape: i32, input: modelList(spirv.ExecutionModelVertex, spirv.ExecutionModelMeshNV,
		spirv.ExecutionModelTaskNV, spirv.ExecutionModelMeshEXT, spirv.ExecutionModelTaskEXT)},

	spirv.BuiltInGlobalInvocationID:   {shape: i32vec3, input: computeModels},
	spirv.BuiltInLocalInvocationID:    {shape: i32vec3, input: computeModels},
	spirv.BuiltInWorkgroupID:          {shape: i32vec3, input: computeModels},
	spirv.BuiltInNumWorkgroups:        {shape: i32vec3, input: computeModels},
	spirv.BuiltInWorkgroupSize:        {shape: i32vec3, input: computeModels, constant: true},
	spirv.BuiltInLocalInvocationIndex: {shape: i32, input: computeModels},
	spirv.BuiltInNumSubgroups:         {shape: i32, input: computeModels},
	spirv.BuiltInSubgroupID:           {shape: i32, input: computeModels},

	spirv.BuiltInSubgroupSize:              {shape: i32, input: allModels},
	spirv.BuiltInSubgroupLocalInvocationID: {shape: i32, input: allModels},
	spirv.BuiltInSubgroupEqMask:            {shape: i32vec4, input: allModels},
	spirv.BuiltInSubgroupGeMask:            {shape: i32vec4, input: allModels},
	spirv.BuiltInSubgroupGtMask:            {shape: i32vec4, input: allModels},
	spirv.BuiltInSubgroupLeMask:            {shape: i32vec4, input: allModels},
	spirv.BuiltInSubgroupLtMask:            {shape: i32vec4, input: allModels},
	spirv.BuiltInDeviceIndex:               {shape: i32, input: allModels},

	spirv.BuiltInInvocationID: {shape: i32, input: modelList(spirv.ExecutionModelTessellationControl, spirv.ExecutionModelGeometry)},
	spirv.BuiltInPrimitiveID: {shape: i32,
		input: modelList(spirv.ExecutionModelFragment, spirv.ExecutionModelTessellationControl,
			spirv.ExecutionModelTessellationEvaluation, spirv.ExecutionModelGeometry,
			spirv.ExecutionModelIntersectionKHR, spirv.ExecutionModelAnyHitKHR, spirv.ExecutionModelClosestHitKHR),
		output: modelList(spirv.ExecutionModelGeometry, spirv.ExecutionModelMeshNV, spirv.ExecutionModelMeshEXT)},
	spirv.BuiltInLayer: {shape: i32, input: fragmentOnly, output: modelList(spirv.ExecutionModelVertex,
		spirv.ExecutionModelTessellationEvaluation, spirv.ExecutionModelGeometry,
		spirv.ExecutionModelMeshNV, spirv.ExecutionModelMeshEXT)},
	spirv.BuiltInViewportIndex: {shape: i32, input: fragmentOnly, output: modelList(spirv.ExecutionModelVertex,
		spirv.ExecutionModelTessellationEvaluation, spirv.ExecutionModelGeometry,
		spirv.ExecutionModelMeshNV, spirv.ExecutionModelMeshEXT)},
	spirv.BuiltInPatchVertices: {shape: i32, input: modelList(spirv.ExecutionModelTessellationControl,
		spirv.ExecutionModelTessellationEvaluation)},
	spirv.BuiltInTessCoord: {shape: f32vec3, input: modelList(spirv.ExecutionModelTessellationEvaluation)},
	spirv.BuiltInTessLevelOuter: {shape: fixedArray(f32arr, 4),
		input:  modelList(spirv.ExecutionModelTessellationEvaluation),
		output: modelList(spirv.ExecutionModelTessellationControl)},
	spirv.BuiltInTessLevelInner: {shape: fixedArray(f32arr, 2),
		input:  modelList(spirv.ExecutionModelTessellationEvaluation),
		output: modelList(spirv.ExecutionModelTessellationControl)},
	spirv.BuiltInViewIndex: {shape: i32, input: modelList(spirv.ExecutionModelVertex,
		spirv.ExecutionModelTessellationControl, spirv.ExecutionModelTessellationEvaluation,
		spirv.ExecutionModelGeometry, spirv.ExecutionModelFragment, spirv.ExecutionModelTaskNV,
		spirv.ExecutionModelMeshNV, spirv.ExecutionModelTaskEXT, spirv.ExecutionModelMeshEXT)},
}

// openCLOnlyBuiltIns are rejected in the Vulkan environments.
var openCLOnlyBuiltIns = map[spirv.BuiltIn]bool{
	spirv.BuiltInVertexID:              true,
	spirv.BuiltInInstanceID:            true,
	spirv.BuiltInWorkDim:               true,
	spirv.BuiltInGlobalSize:            true,
	spirv.BuiltInEnqueuedWorkgroupSize: true,
	spirv.BuiltInGlobalOffset:          true,
	spirv.BuiltInGlobalLinearID:        true,
	spirv.BuiltInSubgroupMaxSize:       true,
	spirv.BuiltInNumEnqueuedSubgroups:  true,
}

// vuidCategory selects one of the Vulkan valid-usage ids of a built-in.
type vuidCategory uint8

const (
	vuidModel vuidCategory = iota
	vuidStorage
	vuidType
	vuidForbidden // storage class forbidden under an otherwise allowed model
	vuidExtra     // DepthReplacing for FragDepth
	vuidCount
)

// builtInVUIDs maps built-ins to their valid-usage ids. Zero means none.
var builtInVUIDs = map[spirv.BuiltIn][vuidCount]uint32{
	spirv.BuiltInPosition:                {4318, 4320, 4321, 4319},
	spirv.BuiltInPointSize:               {4314, 4316, 4317, 4315},
	spirv.BuiltInClipDistance:            {4187, 4190, 4191, 4188},
	spirv.BuiltInCullDistance:            {4196, 4199, 4200, 4197},
	spirv.BuiltInFragCoord:               {4210, 4211, 4212},
	spirv.BuiltInFragDepth:               {4213, 4214, 4215, 0, 4216},
	spirv.BuiltInFrontFacing:             {4229, 4230, 4231},
	spirv.BuiltInHelperInvocation:        {4239, 4240, 4241},
	spirv.BuiltInPointCoord:              {4311, 4312, 4313},
	spirv.BuiltInSampleID:                {4354, 4355, 4356},
	spirv.BuiltInSamplePosition:          {4360, 4361, 4362},
	spirv.BuiltInSampleMask:              {4357, 4358, 4359},
	spirv.BuiltInFragStencilRefEXT:       {4223, 4224, 4225},
	spirv.BuiltInShadingRateKHR:          {4490, 4491, 4492},
	spirv.BuiltInPrimitiveShadingRateKHR: {4484, 4485, 4486},
	spirv.BuiltInVertexIndex:             {4398, 4399, 4400},
	spirv.BuiltInInstanceIndex:           {4263, 4264, 4265},
	spirv.BuiltInBaseVertex:              {4184, 4185, 4186},
	spirv.BuiltInBaseInstance:            {4181, 4182, 4183},
	spirv.BuiltInDrawIndex:               {4207, 4208, 4209},
	spirv.BuiltInGlobalInvocationID:      {4236, 4237, 4238},
	spirv.BuiltInLocalInvocationID:       {4281, 4282, 4283},
	spirv.BuiltInWorkgroupID:             {4422, 4423, 4424},
	spirv.BuiltInNumWorkgroups:           {4296, 4297, 4298},
	spirv.BuiltInWorkgroupSize:           {4425, 4426, 4427},
	spirv.BuiltInLocalInvocationIndex:    {4284, 4285, 4286},
	spirv.BuiltInNumSubgroups:            {4293, 4294, 4295},
	spirv.BuiltInSubgroupID:              {4367, 4368, 4369},
	spirv.BuiltInInvocationID:            {4257, 4258, 4259},
	spirv.BuiltInPrimitiveID:             {4330, 4334, 4337, 4333},
	spirv.BuiltInLayer:                   {4272, 4275, 4276, 4274},
	spirv.BuiltInViewportIndex:           {4404, 4407, 4408, 4406},
	spirv.BuiltInPatchVertices:           {4308, 4309, 4310},
	spirv.BuiltInTessCoord:               {4387, 4388, 4389},
	spirv.BuiltInTessLevelOuter:          {4390, 4392, 4393, 4391},
	spirv.BuiltInTessLevelInner:          {4394, 4396, 4397, 4395},
	spirv.BuiltInViewIndex:               {4401, 4402, 4403},
	spirv.BuiltInDeviceIndex:             {0, 4205, 4206},
}

// vuid renders the valid-usage tag for a diagnostic, or "" when none exists.
func vuid(b spirv.BuiltIn, cat vuidCategory) string {
	ids, ok := builtInVUIDs[b]
	if !ok || ids[cat] == 0 {
		return ""
	}
	return fmt.Sprintf("[VUID-%s-%s-%05d] ", b, b, ids[cat])
}
