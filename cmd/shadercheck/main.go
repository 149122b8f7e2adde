// Command shadercheck 离线检查背景着色器
//
// 检查内容：
//   - Kage 源码声明了渲染器上传的全部 uniform，且类型一致
//   - WGSL 移植版能被 naga 编译为 SPIR-V
//
// Usage:
//
//	go run ./cmd/shadercheck [-kage path] [-wgsl path] [-spirv out.spv]
//
// 未指定路径时检查内置源码。任一检查失败以非零状态退出。
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/gonewx/ripple/pkg/shader"
)

var (
	kageFlag  = flag.String("kage", "", "Kage source to check (default: built-in ripple.kage)")
	wgslFlag  = flag.String("wgsl", "", "WGSL source to compile (default: built-in ripple.wgsl)")
	spirvFlag = flag.String("spirv", "", "Write compiled SPIR-V to this path")
)

func main() {
	flag.Parse()

	ok := checkKage() && checkWGSL()
	if !ok {
		os.Exit(1)
	}
	fmt.Println("All shader checks passed")
}

func checkKage() bool {
	src := shader.FragmentSource()
	name := "ripple.kage (built-in)"
	if *kageFlag != "" {
		data, err := os.ReadFile(*kageFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		src, name = data, *kageFlag
	}

	resolved, err := shader.CheckLayout(src)
	names := make([]string, 0, len(resolved))
	for n := range resolved {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return resolved[names[i]].Index < resolved[names[j]].Index })
	for _, n := range names {
		fmt.Printf("  uniform %-10s %s\n", n, resolved[n].Type)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %s: %v\n", name, err)
		return false
	}
	fmt.Printf("✓ %s: %d uniforms resolved\n", name, len(resolved))
	return true
}

func checkWGSL() bool {
	src := shader.WGSLSource()
	name := "ripple.wgsl (built-in)"
	if *wgslFlag != "" {
		data, err := os.ReadFile(*wgslFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		src, name = string(data), *wgslFlag
	}

	spirv, err := shader.CompileWGSL(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %s: %v\n", name, err)
		return false
	}
	fmt.Printf("✓ %s: %d bytes of SPIR-V\n", name, len(spirv))

	if *spirvFlag != "" {
		if err := os.WriteFile(*spirvFlag, spirv, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false
		}
		fmt.Printf("  wrote %s\n", *spirvFlag)
	}
	return true
}
