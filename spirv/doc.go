// Package spirv models SPIR-V modules: opcode and enumerant tables, the
// per-opcode operand grammar, decoding from the binary word stream,
// assembling from text, disassembling for diagnostics and building modules
// programmatically.
//
// # Decoding
//
// Decode turns a binary into a Module. Every instruction is split into
// typed operands according to the grammar, so consumers never index raw
// words by hand:
//
//	m, err := spirv.Decode(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, in := range m.Instructions {
//		in.ForEachID(func(_ int, id uint32) { ... })
//	}
//
// # Assembly text
//
// Assemble accepts the spirv-as dialect with %name ids, enumerant names,
// A|B masks and typed numeric literals. Disassemble produces the same
// dialect, so the two round-trip.
//
//	m, err := spirv.Assemble(`
//	               OpCapability Shader
//	               OpMemoryModel Logical GLSL450
//	       %void = OpTypeVoid
//	`)
//
// # Binary writer
//
// ModuleBuilder constructs modules programmatically and keeps instructions
// in layout order:
//
//	builder := spirv.NewModuleBuilder(spirv.Version1_3)
//	builder.AddCapability(spirv.CapabilityShader)
//	builder.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
//	floatType := builder.AddTypeFloat(32)
//	binary := builder.Build()
//
// # References
//
// SPIR-V Specification: https://registry.khronos.org/SPIR-V/specs/unified1/SPIRV.html
package spirv
