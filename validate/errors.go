// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import (
	"fmt"

	"github.com/gogpu/spvval/spirv"
)

// ErrorKind categorizes validation failures.
type ErrorKind uint8

const (
	// ErrStructural indicates a violated module-structure rule: bad ids,
	// misplaced function-scope instructions, malformed decorations.
	ErrStructural ErrorKind = iota

	// ErrDuplicateDefinition indicates an id defined by more than one instruction.
	ErrDuplicateDefinition

	// ErrUnresolvedForwardReference indicates an id referenced but never defined.
	ErrUnresolvedForwardReference

	// ErrOutOfOrder indicates an instruction outside its layout section.
	ErrOutOfOrder

	// ErrType indicates a type mismatch or an ill-shaped type.
	ErrType

	// ErrStorageClass indicates a storage class illegal for the instruction or environment.
	ErrStorageClass

	// ErrCapability indicates a construct used without its enabling capability.
	ErrCapability

	// ErrExecutionModel indicates a construct reachable from a disallowed execution model.
	ErrExecutionModel

	// ErrMemoryAccess indicates an illegal memory operand, scope or semantics combination.
	ErrMemoryAccess

	// ErrInterface indicates an entry point interface list problem.
	ErrInterface

	// ErrInvalidModule indicates a rule outside the categories above, such as
	// a literal out of range or a version unsupported by the environment.
	ErrInvalidModule
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrStructural:
		return "Structural"
	case ErrDuplicateDefinition:
		return "DuplicateDefinition"
	case ErrUnresolvedForwardReference:
		return "UnresolvedForwardReference"
	case ErrOutOfOrder:
		return "OutOfOrder"
	case ErrType:
		return "Type"
	case ErrStorageClass:
		return "StorageClass"
	case ErrCapability:
		return "Capability"
	case ErrExecutionModel:
		return "ExecutionModel"
	case ErrMemoryAccess:
		return "MemoryAccess"
	case ErrInterface:
		return "Interface"
	case ErrInvalidModule:
		return "InvalidModule"
	default:
		return "Unknown"
	}
}

// Error is the single diagnostic a failed validation returns.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Position is the index of the offending instruction in the module, or
	// -1 for module-level failures.
	Position int

	// ID is the offending id, 0 when none applies.
	ID uint32

	// Opcode of the offending instruction.
	Opcode spirv.OpCode

	// Message describes the violated rule. Ids are rendered with their
	// OpName debug names.
	Message string

	// Instruction is the disassembled offending instruction, if any.
	Instruction string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Instruction != "" {
		return fmt.Sprintf("validate %s: %s\n  %s", e.Kind, e.Message, e.Instruction)
	}
	return fmt.Sprintf("validate %s: %s", e.Kind, e.Message)
}

// NewError creates an error not tied to an instruction.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:     kind,
		Position: -1,
		Message:  message,
	}
}

// IsStructural returns true for layout and id-bookkeeping failures.
func (e *Error) IsStructural() bool {
	switch e.Kind {
	case ErrStructural, ErrDuplicateDefinition, ErrUnresolvedForwardReference, ErrOutOfOrder:
		return true
	}
	return false
}

// IsType returns true if the error is ErrType.
func (e *Error) IsType() bool {
	return e.Kind == ErrType
}

// IsExecutionModel returns true if the error is ErrExecutionModel.
func (e *Error) IsExecutionModel() bool {
	return e.Kind == ErrExecutionModel
}

// IsInterface returns true if the error is ErrInterface.
func (e *Error) IsInterface() bool {
	return e.Kind == ErrInterface
}
