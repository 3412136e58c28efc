// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gogpu/spvval/spirv"
)

// validator holds the state of one validation run.
type validator struct {
	opts   Options
	env    TargetEnv
	module *spirv.Module
	names  map[uint32]string
	reg    *registry
	log    *zap.Logger
}

// pass is one rule family run over the frozen registry.
type pass struct {
	name string
	run  func() error
}

// Validate checks m against the rules of opts.Env and returns the first
// violation as an *Error, or nil for a valid module.
func Validate(m *spirv.Module, opts Options) error {
	return ValidateContext(context.Background(), m, opts)
}

// ValidateContext is Validate with cancellation between passes.
func ValidateContext(ctx context.Context, m *spirv.Module, opts Options) error {
	if m == nil {
		return NewError(ErrInvalidModule, "module is nil")
	}
	v := &validator{
		opts:   opts,
		env:    opts.Env,
		module: m,
		names:  m.Names(),
		log:    opts.Logger,
	}
	if v.log == nil {
		v.log = zap.NewNop()
	}
	return v.run(ctx)
}

func (v *validator) run(ctx context.Context) error {
	start := time.Now()
	if err := v.validateVersion(); err != nil {
		return err
	}

	reg, err := buildRegistry(v, v.module)
	if err != nil {
		v.log.Debug("registry rejected module", zap.Error(err))
		return err
	}
	v.reg = reg
	v.log.Debug("registry built",
		zap.Stringer("env", v.env),
		zap.Stringer("version", reg.version),
		zap.Int("instructions", len(reg.entries)),
		zap.Int("functions", len(reg.functionOrder)),
		zap.Int("entryPoints", len(reg.entryPoints)),
		zap.Duration("elapsed", time.Since(start)))

	passes := []pass{
		{"memory", v.validateMemory},
		{"atomics", v.validateAtomics},
		{"builtins", v.validateBuiltIns},
		{"interfaces", v.validateInterfaces},
		{"modes", v.validateModes},
	}
	for _, p := range passes {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("validate: %w", err)
		}
		passStart := time.Now()
		err := p.run()
		v.log.Debug("pass finished",
			zap.String("pass", p.name),
			zap.Bool("ok", err == nil),
			zap.Duration("elapsed", time.Since(passStart)))
		if err != nil {
			return err
		}
	}
	return nil
}

// fail builds the diagnostic for e. id defaults to the result id of e.
func (v *validator) fail(kind ErrorKind, e *entry, id uint32, format string, args ...any) *Error {
	err := &Error{
		Kind:     kind,
		Position: -1,
		ID:       id,
		Message:  fmt.Sprintf(format, args...),
	}
	if e != nil {
		err.Position = e.pos
		err.Opcode = e.inst.Opcode
		err.Instruction = spirv.FormatInstruction(e.inst, v.names)
		if id == 0 {
			err.ID = e.inst.ResultID
		}
	}
	return err
}

// describe renders id with its debug name, e.g. '5[%main]'.
func (v *validator) describe(id uint32) string {
	if name, ok := v.names[id]; ok && name != "" {
		return fmt.Sprintf("'%d[%%%s]'", id, name)
	}
	return fmt.Sprintf("'%d'", id)
}

// vulkan reports whether the Vulkan-family shader rules apply.
func (v *validator) vulkan() bool { return v.env.graphicsAPI() }
