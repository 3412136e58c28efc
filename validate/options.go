// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import "go.uber.org/zap"

// Options configures a validation run.
type Options struct {
	// Env is the target environment whose rules apply.
	Env TargetEnv

	// RelaxStructStore allows OpStore between layout-compatible structs of
	// different type ids.
	RelaxStructStore bool

	// RelaxLogicalPointer allows pointers from any instruction under the
	// Logical addressing model.
	RelaxLogicalPointer bool

	// AllowLocalSizeID accepts the LocalSizeId execution mode in
	// environments that do not enable it by default.
	AllowLocalSizeID bool

	// Logger receives pass-level debug events. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns options for the newest universal environment.
func DefaultOptions() Options {
	return Options{
		Env: EnvUniversal1_6,
	}
}
