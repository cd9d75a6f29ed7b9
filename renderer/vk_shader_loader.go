package renderer

import (
	"log"
	"os"
	"path/filepath"
	"shader_cube/common"

	vk "github.com/goki/vulkan"
)

//go:generate glslc ../shaders/gradient.vert -o ../shaders_spv/gradient.vert.spv
//go:generate glslc ../shaders/gradient.frag -o ../shaders_spv/gradient.frag.spv

const (
	VERT_SHADER_FILE = "gradient.vert.spv"
	FRAG_SHADER_FILE = "gradient.frag.spv"
)

// LoadVert reads a '.spv' file with the expectation of it containing a vertex shader for later use in a
// render pipeline. The shader module and the stage info binding it to a pipeline are returned.
func LoadVert(d vk.Device, path string) (vk.ShaderModule, vk.PipelineShaderStageCreateInfo) {
	return loadStage(d, path, vk.ShaderStageVertexBit)
}

// LoadFrag is the fragment stage counterpart of LoadVert.
func LoadFrag(d vk.Device, path string) (vk.ShaderModule, vk.PipelineShaderStageCreateInfo) {
	return loadStage(d, path, vk.ShaderStageFragmentBit)
}

// ShaderPaths returns the vertex and fragment SPIR-V files inside dir.
func ShaderPaths(dir string) (string, string) {
	return filepath.Join(dir, VERT_SHADER_FILE), filepath.Join(dir, FRAG_SHADER_FILE)
}

// DeleteShaderMod discards a shader module. Modules are only containers moving the code onto the device, they can be
// destroyed right after the pipeline is created.
func DeleteShaderMod(d vk.Device, mod vk.ShaderModule) {
	vk.DestroyShaderModule(d, mod, nil)
}

func loadStage(d vk.Device, path string, stage vk.ShaderStageFlagBits) (vk.ShaderModule, vk.PipelineShaderStageCreateInfo) {
	mod := readShaderCode(d, path)
	log.Printf("Created shader module from %s", filepath.Base(path))
	info := vk.PipelineShaderStageCreateInfo{
		SType:               vk.StructureTypePipelineShaderStageCreateInfo,
		PNext:               nil,
		Flags:               0,
		Stage:               stage,
		Module:              mod,
		PName:               "main\x00", // entrypoint
		PSpecializationInfo: nil,
	}
	return mod, info
}

func readShaderCode(d vk.Device, shaderFile string) vk.ShaderModule {
	code, err := os.ReadFile(shaderFile)
	if err != nil {
		log.Panicf("Failed to read shader file '%s' (run 'go generate ./renderer' to compile the shaders): %v", shaderFile, err)
	}
	if len(code) == 0 || len(code)%4 != 0 {
		log.Panicf("Shader file '%s' is not valid SPIR-V, size %d Byte", shaderFile, len(code))
	}
	log.Printf("Read shader file (%s) of size: %dByte", shaderFile, len(code))

	createInfo := &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		PNext:    nil,
		Flags:    0,
		CodeSize: uint64(len(code)),
		PCode:    common.AsUint32Arr(code),
	}
	module, err := common.VKCreateShaderModule(d, createInfo, nil)
	if err != nil {
		log.Panicf("Failed to create shader module '%s': %v", shaderFile, err)
	}
	return module
}
