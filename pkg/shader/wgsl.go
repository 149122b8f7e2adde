package shader

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed ripple.wgsl
var rippleWGSL string

// WGSLSource 返回 WebGPU 宿主使用的 WGSL 版本
func WGSLSource() string {
	return rippleWGSL
}

// CompileWGSL 把 WGSL 源码编译为 SPIR-V
func CompileWGSL(src string) ([]byte, error) {
	spirv, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}
	if len(spirv) == 0 {
		return nil, fmt.Errorf("%w: empty SPIR-V output", ErrCompile)
	}
	return spirv, nil
}
