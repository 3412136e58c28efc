// Package spvval provides a Pure Go SPIR-V validator.
//
// spvval checks SPIR-V modules against the semantic rules of a target
// environment (universal SPIR-V, Vulkan, OpenCL, OpenGL or WebGPU):
//   - Memory and pointer rules (variables, loads, stores, access chains)
//   - Atomic instruction rules
//   - Built-in variable rules
//   - Entry point interface and location rules
//   - Execution mode and memory model rules
//
// The package provides a simple, high-level API over binaries and assembly
// text as well as lower-level access through the spirv and validate packages.
//
// Example usage:
//
//	data, _ := os.ReadFile("shader.spv")
//	opts := spvval.DefaultOptions()
//	opts.Env = validate.EnvVulkan1_1
//	if err := spvval.ValidateBinary(data, opts); err != nil {
//	    log.Fatal(err)
//	}
//
// The first violation is returned as a *validate.Error and can be inspected
// with errors.As:
//
//	var verr *validate.Error
//	if errors.As(err, &verr) {
//	    fmt.Println(verr.Kind, verr.Instruction)
//	}
package spvval

import (
	"context"
	"fmt"

	"github.com/gogpu/spvval/spirv"
	"github.com/gogpu/spvval/validate"
)

// DefaultOptions returns options for the newest universal environment.
func DefaultOptions() validate.Options {
	return validate.DefaultOptions()
}

// ValidateBinary decodes a SPIR-V binary and validates it.
func ValidateBinary(data []byte, opts validate.Options) error {
	return ValidateBinaryContext(context.Background(), data, opts)
}

// ValidateBinaryContext is ValidateBinary with cancellation between passes.
func ValidateBinaryContext(ctx context.Context, data []byte, opts validate.Options) error {
	module, err := spirv.Decode(data)
	if err != nil {
		return fmt.Errorf("decode error: %w", err)
	}
	return check(ctx, module, opts)
}

// ValidateText assembles SPIR-V assembly text and validates it.
//
// The text uses the spirv-as dialect; see spirv.Assemble.
func ValidateText(source string, opts validate.Options) error {
	module, err := spirv.Assemble(source)
	if err != nil {
		return fmt.Errorf("assemble error: %w", err)
	}
	return check(context.Background(), module, opts)
}

// Disassemble decodes a SPIR-V binary and renders it as assembly text.
func Disassemble(data []byte) (string, error) {
	module, err := spirv.Decode(data)
	if err != nil {
		return "", fmt.Errorf("decode error: %w", err)
	}
	return spirv.Disassemble(module), nil
}

func check(ctx context.Context, module *spirv.Module, opts validate.Options) error {
	if err := validate.ValidateContext(ctx, module, opts); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
