package common

import "unsafe"

// Provides general helper functions for comparisons and conversions

// IsSubset reports whether every entry of a is contained in b. This is mainly used to check for
// extension and layer support during the initialization process.
func IsSubset(a []string, b []string) bool {
	have := make(map[string]bool, len(b))
	for _, s := range b {
		have[s] = true
	}
	for _, s := range a {
		if !have[s] {
			return false
		}
	}
	return true
}

// TerminatedStr ensures the given string is \x00 terminated as vulkan expects this in certain structs
func TerminatedStr(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\x00' {
		return s + "\x00"
	}
	return s
}

// TerminatedStrs returns a terminated copy of strs, the input is left untouched.
func TerminatedStrs(strs []string) []string {
	out := make([]string, len(strs))
	for i := range strs {
		out[i] = TerminatedStr(strs[i])
	}
	return out
}

// AsUint32Arr reinterprets SPIR-V byte code as the word slice vk.ShaderModuleCreateInfo expects.
// It should be equivalent to C++ 'reinterpret_cast<const uint32_t*>(code.data());'
// See: https://vulkan-tutorial.com/Drawing_a_triangle/Graphics_pipeline_basics/Shader_modules
func AsUint32Arr(data []byte) []uint32 {
	if len(data) < 4 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4)
}
