package shader

import (
	"errors"
	"strings"
	"testing"
)

// TestWGSLCompilation 验证 WGSL 版本能编译为 SPIR-V
func TestWGSLCompilation(t *testing.T) {
	src := WGSLSource()
	if src == "" {
		t.Fatal("WGSL source is empty")
	}

	spirv, err := CompileWGSL(src)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("failed to compile WGSL: %v", err)
	}

	// SPIR-V 魔数 0x07230203（小端）
	if len(spirv) < 4 || spirv[0] != 0x03 || spirv[1] != 0x02 || spirv[2] != 0x23 || spirv[3] != 0x07 {
		t.Errorf("output does not start with SPIR-V magic: % x", spirv[:min(4, len(spirv))])
	}
}

func TestWGSLCompilationError(t *testing.T) {
	_, err := CompileWGSL("fn broken( {")
	if !errors.Is(err, ErrCompile) {
		t.Errorf("err = %v, want ErrCompile", err)
	}
}

// TestWGSLMatchesKageUniforms 两个版本声明相同的 uniform 集合
func TestWGSLMatchesKageUniforms(t *testing.T) {
	src := WGSLSource()
	for _, field := range []string{"resolution", "mouse", "time", "click_count", "clicks: array<vec4<f32>, 16>"} {
		if !strings.Contains(src, field) {
			t.Errorf("WGSL params missing %q", field)
		}
	}
}
