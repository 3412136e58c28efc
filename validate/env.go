// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package validate

import (
	"fmt"

	"github.com/gogpu/spvval/spirv"
)

// TargetEnv selects the execution environment whose rules apply.
type TargetEnv uint8

// Target environments.
const (
	EnvUniversal1_0 TargetEnv = iota
	EnvUniversal1_1
	EnvUniversal1_2
	EnvUniversal1_3
	EnvUniversal1_4
	EnvUniversal1_5
	EnvUniversal1_6
	EnvVulkan1_0
	EnvVulkan1_1
	EnvVulkan1_1SPIRV1_4
	EnvVulkan1_2
	EnvVulkan1_3
	EnvOpenCL1_2
	EnvOpenCLEmbedded1_2
	EnvOpenCL2_0
	EnvOpenCLEmbedded2_0
	EnvOpenCL2_1
	EnvOpenCLEmbedded2_1
	EnvOpenCL2_2
	EnvOpenCLEmbedded2_2
	EnvOpenGL4_0
	EnvOpenGL4_1
	EnvOpenGL4_2
	EnvOpenGL4_3
	EnvOpenGL4_5
	EnvWebGPU0
)

type envInfo struct {
	name       string
	maxVersion spirv.Version
}

var envs = [...]envInfo{
	EnvUniversal1_0:      {"universal1.0", spirv.Version1_0},
	EnvUniversal1_1:      {"universal1.1", spirv.Version1_1},
	EnvUniversal1_2:      {"universal1.2", spirv.Version1_2},
	EnvUniversal1_3:      {"universal1.3", spirv.Version1_3},
	EnvUniversal1_4:      {"universal1.4", spirv.Version1_4},
	EnvUniversal1_5:      {"universal1.5", spirv.Version1_5},
	EnvUniversal1_6:      {"universal1.6", spirv.Version1_6},
	EnvVulkan1_0:         {"vulkan1.0", spirv.Version1_0},
	EnvVulkan1_1:         {"vulkan1.1", spirv.Version1_3},
	EnvVulkan1_1SPIRV1_4: {"vulkan1.1spv1.4", spirv.Version1_4},
	EnvVulkan1_2:         {"vulkan1.2", spirv.Version1_5},
	EnvVulkan1_3:         {"vulkan1.3", spirv.Version1_6},
	EnvOpenCL1_2:         {"opencl1.2", spirv.Version1_0},
	EnvOpenCLEmbedded1_2: {"opencl1.2embedded", spirv.Version1_0},
	EnvOpenCL2_0:         {"opencl2.0", spirv.Version1_0},
	EnvOpenCLEmbedded2_0: {"opencl2.0embedded", spirv.Version1_0},
	EnvOpenCL2_1:         {"opencl2.1", spirv.Version1_0},
	EnvOpenCLEmbedded2_1: {"opencl2.1embedded", spirv.Version1_0},
	EnvOpenCL2_2:         {"opencl2.2", spirv.Version1_2},
	EnvOpenCLEmbedded2_2: {"opencl2.2embedded", spirv.Version1_2},
	EnvOpenGL4_0:         {"opengl4.0", spirv.Version1_0},
	EnvOpenGL4_1:         {"opengl4.1", spirv.Version1_0},
	EnvOpenGL4_2:         {"opengl4.2", spirv.Version1_0},
	EnvOpenGL4_3:         {"opengl4.3", spirv.Version1_0},
	EnvOpenGL4_5:         {"opengl4.5", spirv.Version1_0},
	EnvWebGPU0:           {"webgpu0", spirv.Version1_3},
}

func (e TargetEnv) String() string {
	if int(e) < len(envs) {
		return envs[e].name
	}
	return fmt.Sprintf("TargetEnv(%d)", uint8(e))
}

// ParseTargetEnv parses the spirv-val style environment name, e.g. "vulkan1.1".
func ParseTargetEnv(s string) (TargetEnv, error) {
	for i, info := range envs {
		if info.name == s {
			return TargetEnv(i), nil
		}
	}
	return 0, fmt.Errorf("unknown target environment %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler so environments can be
// read from configuration files.
func (e *TargetEnv) UnmarshalText(text []byte) error {
	parsed, err := ParseTargetEnv(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (e TargetEnv) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// MaxVersion is the newest SPIR-V version the environment consumes.
func (e TargetEnv) MaxVersion() spirv.Version {
	if int(e) < len(envs) {
		return envs[e].maxVersion
	}
	return spirv.Version1_6
}

// IsUniversal reports whether e carries no client API rules.
func (e TargetEnv) IsUniversal() bool { return e <= EnvUniversal1_6 }

// IsVulkan reports whether e is a Vulkan environment.
func (e TargetEnv) IsVulkan() bool { return e >= EnvVulkan1_0 && e <= EnvVulkan1_3 }

// IsOpenCL reports whether e is an OpenCL environment.
func (e TargetEnv) IsOpenCL() bool { return e >= EnvOpenCL1_2 && e <= EnvOpenCLEmbedded2_2 }

// IsOpenGL reports whether e is an OpenGL environment.
func (e TargetEnv) IsOpenGL() bool { return e >= EnvOpenGL4_0 && e <= EnvOpenGL4_5 }

// IsWebGPU reports whether e is the WebGPU environment.
func (e TargetEnv) IsWebGPU() bool { return e == EnvWebGPU0 }

// graphicsAPI reports whether the Vulkan-family shader rules apply.
func (e TargetEnv) graphicsAPI() bool { return e.IsVulkan() || e.IsWebGPU() }

// allowsLocalSizeID reports whether the environment accepts LocalSizeId without an option.
func (e TargetEnv) allowsLocalSizeID() bool {
	return e == EnvVulkan1_3 || e == EnvUniversal1_6
}
