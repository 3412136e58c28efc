// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import "github.com/gogpu/spvval/spirv"

// layoutSection is one of the ordered sections of a SPIR-V module.
type layoutSection uint8

const (
	sectionCapabilities layoutSection = iota
	sectionExtensions
	sectionExtInstImports
	sectionMemoryModel
	sectionEntryPoints
	sectionExecutionModes
	sectionDebugSource // OpString, OpSource*
	sectionDebugNames  // OpName, OpMemberName
	sectionDebugModuleProcessed
	sectionAnnotations
	sectionTypes // types, constants, global variables
	sectionFunctionDeclarations
	sectionFunctionDefinitions
)

var layoutSectionNames = [...]string{
	sectionCapabilities:         "Capabilities",
	sectionExtensions:           "Extensions",
	sectionExtInstImports:       "ExtInstImport",
	sectionMemoryModel:          "MemoryModel",
	sectionEntryPoints:          "EntryPoint",
	sectionExecutionModes:       "ExecutionMode",
	sectionDebugSource:          "Debug",
	sectionDebugNames:           "DebugNames",
	sectionDebugModuleProcessed: "ModuleProcessed",
	sectionAnnotations:          "Annotations",
	sectionTypes:                "Types/Constants/GlobalVariables",
	sectionFunctionDeclarations: "FunctionDeclarations",
	sectionFunctionDefinitions:  "FunctionDefinitions",
}

func (s layoutSection) String() string { return layoutSectionNames[s] }

// moduleScopeOnly reports whether op may only appear before the first function.
func moduleScopeOnly(op spirv.OpCode) bool {
	switch op {
	case spirv.OpCapability, spirv.OpExtension, spirv.OpExtInstImport, spirv.OpMemoryModel,
		spirv.OpEntryPoint, spirv.OpExecutionMode, spirv.OpExecutionModeID,
		spirv.OpString, spirv.OpSource, spirv.OpSourceContinued, spirv.OpSourceExtension,
		spirv.OpName, spirv.OpMemberName, spirv.OpModuleProcessed,
		spirv.OpDecorate, spirv.OpMemberDecorate, spirv.OpDecorationGroup, spirv.OpGroupDecorate,
		spirv.OpGroupMemberDecorate, spirv.OpDecorateID, spirv.OpTypeForwardPointer:
		return true
	}
	return op.IsType() || op.IsConstant()
}

// inSection reports whether op is legal in section s.
func inSection(op spirv.OpCode, s layoutSection) bool {
	switch s {
	case sectionCapabilities:
		return op == spirv.OpCapability
	case sectionExtensions:
		return op == spirv.OpExtension
	case sectionExtInstImports:
		return op == spirv.OpExtInstImport
	case sectionMemoryModel:
		return op == spirv.OpMemoryModel
	case sectionEntryPoints:
		return op == spirv.OpEntryPoint
	case sectionExecutionModes:
		return op == spirv.OpExecutionMode || op == spirv.OpExecutionModeID
	case sectionDebugSource:
		switch op {
		case spirv.OpString, spirv.OpSource, spirv.OpSourceContinued, spirv.OpSourceExtension:
			return true
		}
	case sectionDebugNames:
		return op == spirv.OpName || op == spirv.OpMemberName
	case sectionDebugModuleProcessed:
		return op == spirv.OpModuleProcessed
	case sectionAnnotations:
		switch op {
		case spirv.OpDecorate, spirv.OpMemberDecorate, spirv.OpDecorationGroup,
			spirv.OpGroupDecorate, spirv.OpGroupMemberDecorate, spirv.OpDecorateID:
			return true
		}
	case sectionTypes:
		switch op {
		case spirv.OpTypeForwardPointer, spirv.OpVariable, spirv.OpUntypedVariableKHR,
			spirv.OpUndef, spirv.OpLine, spirv.OpNoLine, spirv.OpExtInst:
			return true
		}
		return op.IsType() || op.IsConstant()
	case sectionFunctionDeclarations, sectionFunctionDefinitions:
		return !moduleScopeOnly(op)
	}
	return false
}

// layoutState tracks the current section and open function while
// instructions are consumed in module order.
type layoutState struct {
	section        layoutSection
	sawMemoryModel bool

	inFunction   bool
	sawLabel     bool // current function has a body
	inFirstBlock bool
	sawBody      bool // a non-variable instruction was seen in the first block
}

// layoutViolation describes why an instruction is misplaced.
type layoutViolation struct {
	kind    ErrorKind
	message string
}

// advance moves the state machine over op. A non-nil result rejects the instruction.
//
//nolint:gocyclo,cyclop // one branch per layout rule
func (s *layoutState) advance(op spirv.OpCode) *layoutViolation {
	for !inSection(op, s.section) {
		if s.section == sectionMemoryModel && !s.sawMemoryModel {
			return &layoutViolation{ErrOutOfOrder, "Missing required OpMemoryModel instruction before " + op.String()}
		}
		if s.section == sectionFunctionDefinitions {
			return &layoutViolation{ErrOutOfOrder, op.String() + " is in an invalid layout section"}
		}
		s.section++
	}

	switch op {
	case spirv.OpMemoryModel:
		s.sawMemoryModel = true
		// The section holds exactly one instruction.
		s.section = sectionEntryPoints
		return nil
	case spirv.OpFunction:
		if s.inFunction {
			return &layoutViolation{ErrStructural, "Cannot declare a function in a function body"}
		}
		s.inFunction = true
		s.sawLabel = false
		return nil
	case spirv.OpFunctionParameter:
		if !s.inFunction {
			return &layoutViolation{ErrStructural, "Function parameter instructions must be in a function body"}
		}
		if s.sawLabel {
			return &layoutViolation{ErrStructural, "Function parameters must only appear immediately after the function definition"}
		}
		return nil
	case spirv.OpFunctionEnd:
		if !s.inFunction {
			return &layoutViolation{ErrStructural, "OpFunctionEnd without a matching OpFunction"}
		}
		if !s.sawLabel && s.section == sectionFunctionDefinitions {
			return &layoutViolation{ErrOutOfOrder, "Function declarations must appear before function definitions"}
		}
		s.inFunction = false
		return nil
	case spirv.OpLabel:
		if !s.inFunction {
			return &layoutViolation{ErrStructural, "Label instructions must be in a function body"}
		}
		s.inFirstBlock = !s.sawLabel
		s.sawLabel = true
		s.sawBody = false
		s.section = sectionFunctionDefinitions
		return nil
	case spirv.OpLine, spirv.OpNoLine:
		return nil
	}

	if s.section < sectionFunctionDeclarations {
		return nil
	}
	if !s.inFunction {
		if op == spirv.OpVariable || op == spirv.OpUntypedVariableKHR {
			return &layoutViolation{ErrOutOfOrder, "Variables must be declared before functions"}
		}
		return &layoutViolation{ErrStructural, op.String() + " must appear in a block"}
	}
	if !s.sawLabel {
		return &layoutViolation{ErrStructural, op.String() + " must appear in a block"}
	}
	if op == spirv.OpVariable || op == spirv.OpUntypedVariableKHR {
		if !s.inFirstBlock || s.sawBody {
			return &layoutViolation{ErrStructural, "All OpVariable instructions in a function must be the first instructions in the first block"}
		}
		return nil
	}
	s.sawBody = true
	return nil
}

// finish checks the end-of-module layout rules.
func (s *layoutState) finish() *layoutViolation {
	if !s.sawMemoryModel {
		return &layoutViolation{ErrOutOfOrder, "Missing required OpMemoryModel instruction"}
	}
	if s.inFunction {
		return &layoutViolation{ErrStructural, "Missing OpFunctionEnd at end of module"}
	}
	return nil
}
