// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import "github.com/gogpu/spvval/spirv"

// impliedCapabilities lists the capabilities each capability implicitly declares.
var impliedCapabilities = map[spirv.Capability][]spirv.Capability{
	spirv.CapabilityShader:                             {spirv.CapabilityMatrix},
	spirv.CapabilityGeometry:                           {spirv.CapabilityShader},
	spirv.CapabilityTessellation:                       {spirv.CapabilityShader},
	spirv.CapabilityVector16:                           {spirv.CapabilityKernel},
	spirv.CapabilityFloat16Buffer:                      {spirv.CapabilityKernel},
	spirv.CapabilityInt64Atomics:                       {spirv.CapabilityInt64},
	spirv.CapabilityImageBasic:                         {spirv.CapabilityKernel},
	spirv.CapabilityImageReadWrite:                     {spirv.CapabilityImageBasic},
	spirv.CapabilityImageMipmap:                        {spirv.CapabilityImageBasic},
	spirv.CapabilityPipes:                              {spirv.CapabilityKernel},
	spirv.CapabilityDeviceEnqueue:                      {spirv.CapabilityKernel},
	spirv.CapabilityLiteralSampler:                     {spirv.CapabilityKernel},
	spirv.CapabilityAtomicStorage:                      {spirv.CapabilityShader},
	spirv.CapabilityTessellationPointSize:              {spirv.CapabilityTessellation},
	spirv.CapabilityGeometryPointSize:                  {spirv.CapabilityGeometry},
	spirv.CapabilityImageGatherExtended:                {spirv.CapabilityShader},
	spirv.CapabilityStorageImageMultisample:            {spirv.CapabilityShader},
	spirv.CapabilityUniformBufferArrayDynamicIndexing:  {spirv.CapabilityShader},
	spirv.CapabilitySampledImageArrayDynamicIndexing:   {spirv.CapabilityShader},
	spirv.CapabilityStorageBufferArrayDynamicIndexing:  {spirv.CapabilityShader},
	spirv.CapabilityStorageImageArrayDynamicIndexing:   {spirv.CapabilityShader},
	spirv.CapabilityClipDistance:                       {spirv.CapabilityShader},
	spirv.CapabilityCullDistance:                       {spirv.CapabilityShader},
	spirv.CapabilityImageCubeArray:                     {spirv.CapabilitySampledCubeArray},
	spirv.CapabilitySampleRateShading:                  {spirv.CapabilityShader},
	spirv.CapabilityImageRect:                          {spirv.CapabilitySampledRect},
	spirv.CapabilitySampledRect:                        {spirv.CapabilityShader},
	spirv.CapabilityGenericPointer:                     {spirv.CapabilityAddresses},
	spirv.CapabilityInputAttachment:                    {spirv.CapabilityShader},
	spirv.CapabilitySparseResidency:                    {spirv.CapabilityShader},
	spirv.CapabilityMinLod:                             {spirv.CapabilityShader},
	spirv.CapabilityImage1D:                            {spirv.CapabilitySampled1D},
	spirv.CapabilitySampledCubeArray:                   {spirv.CapabilityShader},
	spirv.CapabilityImageBuffer:                        {spirv.CapabilitySampledBuffer},
	spirv.CapabilityImageMSArray:                       {spirv.CapabilityShader},
	spirv.CapabilityStorageImageExtendedFormats:        {spirv.CapabilityShader},
	spirv.CapabilityImageQuery:                         {spirv.CapabilityShader},
	spirv.CapabilityDerivativeControl:                  {spirv.CapabilityShader},
	spirv.CapabilityInterpolationFunction:              {spirv.CapabilityShader},
	spirv.CapabilityTransformFeedback:                  {spirv.CapabilityShader},
	spirv.CapabilityGeometryStreams:                    {spirv.CapabilityGeometry},
	spirv.CapabilityStorageImageReadWithoutFormat:      {spirv.CapabilityShader},
	spirv.CapabilityStorageImageWriteWithoutFormat:     {spirv.CapabilityShader},
	spirv.CapabilityMultiViewport:                      {spirv.CapabilityGeometry},
	spirv.CapabilityGroupNonUniformVote:                {spirv.CapabilityGroupNonUniform},
	spirv.CapabilityGroupNonUniformArithmetic:          {spirv.CapabilityGroupNonUniform},
	spirv.CapabilityGroupNonUniformBallot:              {spirv.CapabilityGroupNonUniform},
	spirv.CapabilityGroupNonUniformShuffle:             {spirv.CapabilityGroupNonUniform},
	spirv.CapabilityGroupNonUniformShuffleRelative:     {spirv.CapabilityGroupNonUniform},
	spirv.CapabilityGroupNonUniformClustered:           {spirv.CapabilityGroupNonUniform},
	spirv.CapabilityGroupNonUniformQuad:                {spirv.CapabilityGroupNonUniform},
	spirv.CapabilityDrawParameters:                     {spirv.CapabilityShader},
	spirv.CapabilityUniformAndStorageBuffer16BitAccess: {spirv.CapabilityStorageBuffer16BitAccess},
	spirv.CapabilityMultiView:                          {spirv.CapabilityShader},
	spirv.CapabilityVariablePointersStorageBuffer:      {spirv.CapabilityShader},
	spirv.CapabilityVariablePointers:                   {spirv.CapabilityVariablePointersStorageBuffer},
	spirv.CapabilityUniformAndStorageBuffer8BitAccess:  {spirv.CapabilityStorageBuffer8BitAccess},
	spirv.CapabilityStencilExportEXT:                   {spirv.CapabilityShader},
	spirv.CapabilityShaderViewportIndexLayerEXT:        {spirv.CapabilityMultiViewport},
	spirv.CapabilityShaderNonUniform:                   {spirv.CapabilityShader},
	spirv.CapabilityRuntimeDescriptorArray:             {spirv.CapabilityShader},
	spirv.CapabilityPhysicalStorageBufferAddresses:     {spirv.CapabilityShader},
}

// capabilitySet is the transitive closure of the declared capabilities.
type capabilitySet map[spirv.Capability]bool

// declare adds c and everything it implies.
func (s capabilitySet) declare(c spirv.Capability) {
	if s[c] {
		return
	}
	s[c] = true
	for _, implied := range impliedCapabilities[c] {
		s.declare(implied)
	}
}

func (s capabilitySet) has(c spirv.Capability) bool { return s[c] }

// any reports whether at least one of caps is enabled.
func (s capabilitySet) any(caps ...spirv.Capability) bool {
	for _, c := range caps {
		if s[c] {
			return true
		}
	}
	return false
}
