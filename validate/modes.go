// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import (
	"slices"

	"github.com/gogpu/spvval/spirv"
)

// validateVersion rejects headers newer than the environment consumes.
func (v *validator) validateVersion() error {
	version := v.module.Header.Version
	if v.env.MaxVersion().Less(version) {
		return v.fail(ErrInvalidModule, nil, 0, "Invalid SPIR-V binary version %s for target environment %s.", version, v.env)
	}
	return nil
}

// modeModels lists the execution models each mode may be declared on.
var modeModels = map[spirv.ExecutionMode][]spirv.ExecutionModel{
	spirv.ExecutionModeInvocations:           modelList(spirv.ExecutionModelGeometry),
	spirv.ExecutionModeSpacingEqual:          modelList(spirv.ExecutionModelTessellationControl, spirv.ExecutionModelTessellationEvaluation),
	spirv.ExecutionModePixelCenterInteger:    fragmentOnly,
	spirv.ExecutionModeOriginUpperLeft:       fragmentOnly,
	spirv.ExecutionModeOriginLowerLeft:       fragmentOnly,
	spirv.ExecutionModeEarlyFragmentTests:    fragmentOnly,
	spirv.ExecutionModeDepthReplacing:        fragmentOnly,
	spirv.ExecutionModeDepthGreater:          fragmentOnly,
	spirv.ExecutionModeDepthLess:             fragmentOnly,
	spirv.ExecutionModeDepthUnchanged:        fragmentOnly,
	spirv.ExecutionModeLocalSize:             workgroupModels,
	spirv.ExecutionModeLocalSizeHint:         modelList(spirv.ExecutionModelKernel),
	spirv.ExecutionModeLocalSizeID:           workgroupModels,
	spirv.ExecutionModeLocalSizeHintID:       modelList(spirv.ExecutionModelKernel),
	spirv.ExecutionModeSubgroupsPerWorkgroup: modelList(spirv.ExecutionModelKernel),
	spirv.ExecutionModeTriangles: modelList(spirv.ExecutionModelGeometry,
		spirv.ExecutionModelTessellationControl, spirv.ExecutionModelTessellationEvaluation),
	spirv.ExecutionModeOutputVertices: modelList(spirv.ExecutionModelGeometry, spirv.ExecutionModelTessellationControl,
		spirv.ExecutionModelMeshNV, spirv.ExecutionModelMeshEXT),
	spirv.ExecutionModeOutputTriangleStrip: modelList(spirv.ExecutionModelGeometry, spirv.ExecutionModelMeshNV),
}

var workgroupModels = modelList(spirv.ExecutionModelGLCompute, spirv.ExecutionModelKernel,
	spirv.ExecutionModelTaskNV, spirv.ExecutionModelMeshNV, spirv.ExecutionModelTaskEXT, spirv.ExecutionModelMeshEXT)

// webGPUModes is the execution mode allow-list of the WebGPU environment.
var webGPUModes = []spirv.ExecutionMode{
	spirv.ExecutionModeLocalSize,
	spirv.ExecutionModeOriginUpperLeft,
	spirv.ExecutionModeDepthReplacing,
	spirv.ExecutionModeDepthGreater,
	spirv.ExecutionModeDepthLess,
	spirv.ExecutionModeDepthUnchanged,
	spirv.ExecutionModeEarlyFragmentTests,
}

// idMode reports whether m takes id operands and is declared with OpExecutionModeId.
func idMode(m spirv.ExecutionMode) bool {
	return m == spirv.ExecutionModeLocalSizeID || m == spirv.ExecutionModeLocalSizeHintID
}

// validateModes checks the memory model, entry point functions and
// execution mode declarations.
func (v *validator) validateModes() error {
	if err := v.checkMemoryModel(); err != nil {
		return err
	}
	for i, ep := range v.reg.entryPoints {
		if err := v.checkEntryPoint(i, ep); err != nil {
			return err
		}
	}
	for _, e := range v.reg.entries {
		switch e.inst.Opcode {
		case spirv.OpExecutionMode, spirv.OpExecutionModeID:
			if err := v.checkExecutionMode(e); err != nil {
				return err
			}
		case spirv.OpUndef:
			if v.env.IsWebGPU() {
				return v.fail(ErrInvalidModule, e, 0, "OpUndef is disallowed")
			}
		}
	}
	for _, ep := range v.reg.entryPoints {
		if err := v.checkFragmentModes(ep); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) checkMemoryModel() error {
	r := v.reg
	var def *entry
	for _, e := range r.entries {
		if e.inst.Opcode == spirv.OpMemoryModel {
			def = e
			break
		}
	}
	if r.memoryModel == spirv.MemoryModelVulkan && !r.capabilities.has(spirv.CapabilityVulkanMemoryModel) {
		return v.fail(ErrCapability, def, 0, "Vulkan memory model requires the VulkanMemoryModel capability")
	}
	if r.addressing == spirv.AddressingModelPhysicalStorageBuffer64 &&
		!r.capabilities.has(spirv.CapabilityPhysicalStorageBufferAddresses) {
		return v.fail(ErrCapability, def, 0,
			"Addressing model PhysicalStorageBuffer64 requires the PhysicalStorageBufferAddresses capability")
	}
	if v.env.IsWebGPU() && r.memoryModel != spirv.MemoryModelVulkan {
		return v.fail(ErrInvalidModule, def, 0, "Memory model must be VulkanKHR for WebGPU environment.")
	}
	if v.env.IsVulkan() {
		if r.memoryModel != spirv.MemoryModelGLSL450 && r.memoryModel != spirv.MemoryModelVulkan {
			return v.fail(ErrInvalidModule, def, 0,
				"[VUID-StandaloneSpirv-MemoryModel-04635] Memory model must be GLSL450 or VulkanKHR in the Vulkan environment, found %s",
				r.memoryModel)
		}
		if r.addressing != spirv.AddressingModelLogical && r.addressing != spirv.AddressingModelPhysicalStorageBuffer64 {
			return v.fail(ErrInvalidModule, def, 0,
				"[VUID-StandaloneSpirv-None-04633] Addressing model must be Logical or PhysicalStorageBuffer64 in the Vulkan environment, found %s",
				r.addressing)
		}
	}
	return nil
}

// checkEntryPoint checks the function an entry point names and rejects a
// second entry point with the same name and model.
func (v *validator) checkEntryPoint(i int, ep *entryPoint) error {
	r := v.reg
	if r.opcode(ep.function) != spirv.OpFunction {
		return v.fail(ErrType, ep.def, ep.function,
			"OpEntryPoint Entry Point %s is not a function.", v.describe(ep.function))
	}
	for _, prev := range r.entryPoints[:i] {
		if prev.name == ep.name && prev.model == ep.model {
			return v.fail(ErrInvalidModule, ep.def, ep.function,
				"2 Entry points cannot share the same name and ExecutionMode.")
		}
	}
	fnType := r.inst(r.functions[ep.function].typeID)
	if fnType == nil || fnType.Opcode != spirv.OpTypeFunction {
		return v.fail(ErrType, ep.def, ep.function, "Function type of %s is not OpTypeFunction", v.describe(ep.function))
	}
	if r.opcode(fnType.Word(1)) != spirv.OpTypeVoid {
		return v.fail(ErrType, ep.def, ep.function,
			"OpEntryPoint Entry Point %s's function return type is not void.", v.describe(ep.function))
	}
	if fnType.NumOperands() > 2 {
		return v.fail(ErrType, ep.def, ep.function,
			"OpEntryPoint Entry Point %s's function parameter count is not zero.", v.describe(ep.function))
	}
	return nil
}

// modelsOf returns the execution models of the entry points on fn.
func (r *registry) modelsOf(fn uint32) []spirv.ExecutionModel {
	var models []spirv.ExecutionModel
	for _, ep := range r.entryPoints {
		if ep.function == fn && !slices.Contains(models, ep.model) {
			models = append(models, ep.model)
		}
	}
	return models
}

//nolint:gocyclo,cyclop // one rule per mode family
func (v *validator) checkExecutionMode(e *entry) error {
	r := v.reg
	in := e.inst
	fn := in.Word(0)
	mode := spirv.ExecutionMode(in.Word(1))

	models := r.modelsOf(fn)
	if len(models) == 0 {
		return v.fail(ErrExecutionModel, e, fn,
			"%s Entry Point %s is not the Entry Point operand of an OpEntryPoint.", in.Opcode, v.describe(fn))
	}

	if in.Opcode == spirv.OpExecutionModeID {
		if r.version.Less(spirv.Version1_2) {
			return v.fail(ErrInvalidModule, e, 0, "OpExecutionModeId requires SPIR-V 1.2 or later, module is %s", r.version)
		}
		if !idMode(mode) {
			return v.fail(ErrInvalidModule, e, 0,
				"OpExecutionModeId is only valid when the Mode operand is an execution mode that takes Extra Operands that are id operands.")
		}
	} else if idMode(mode) {
		return v.fail(ErrInvalidModule, e, 0, "%s Execution Mode must be used with OpExecutionModeId", mode)
	}

	if allowed, ok := modeModels[mode]; ok {
		for _, m := range models {
			if !slices.Contains(allowed, m) {
				return v.fail(ErrExecutionModel, e, fn,
					"Execution mode %s can only be used with the %s execution models, entry point %s is %s",
					mode, joinModels(allowed), v.describe(fn), m)
			}
		}
	}

	if mode == spirv.ExecutionModeLocalSizeID && v.env.IsVulkan() && !v.opts.AllowLocalSizeID && !v.env.allowsLocalSizeID() {
		return v.fail(ErrExecutionModel, e, fn,
			"LocalSizeId execution mode is not allowed by the current environment.")
	}
	if v.env.IsWebGPU() && !slices.Contains(webGPUModes, mode) {
		return v.fail(ErrExecutionModel, e, fn,
			"Execution mode %s is not allowed in the WebGPU environment.", mode)
	}
	return nil
}

// checkFragmentModes checks the origin and depth modes of a Fragment entry point.
func (v *validator) checkFragmentModes(ep *entryPoint) error {
	if ep.model != spirv.ExecutionModelFragment {
		return nil
	}
	r := v.reg
	upper := r.hasExecutionMode(ep.function, spirv.ExecutionModeOriginUpperLeft)
	lower := r.hasExecutionMode(ep.function, spirv.ExecutionModeOriginLowerLeft)
	if upper == lower {
		return v.fail(ErrExecutionModel, ep.def, ep.function,
			"Fragment execution model entry points require exactly one of OriginUpperLeft or OriginLowerLeft execution modes.")
	}
	depth := 0
	for _, m := range []spirv.ExecutionMode{
		spirv.ExecutionModeDepthGreater, spirv.ExecutionModeDepthLess, spirv.ExecutionModeDepthUnchanged,
	} {
		if r.hasExecutionMode(ep.function, m) {
			depth++
		}
	}
	if depth > 1 {
		return v.fail(ErrExecutionModel, ep.def, ep.function,
			"Fragment execution model entry points can specify at most one of DepthGreater, DepthLess or DepthUnchanged execution modes.")
	}
	if !v.vulkan() {
		return nil
	}
	if lower {
		return v.fail(ErrExecutionModel, ep.def, ep.function,
			"[VUID-StandaloneSpirv-OriginLowerLeft-04653] In the Vulkan environment, the OriginLowerLeft execution mode must not be used.")
	}
	if r.hasExecutionMode(ep.function, spirv.ExecutionModePixelCenterInteger) {
		return v.fail(ErrExecutionModel, ep.def, ep.function,
			"[VUID-StandaloneSpirv-PixelCenterInteger-04654] In the Vulkan environment, the PixelCenterInteger execution mode must not be used.")
	}
	return nil
}

func (r *registry) hasExecutionMode(fn uint32, mode spirv.ExecutionMode) bool {
	_, ok := r.executionModeOf(fn, mode)
	return ok
}
