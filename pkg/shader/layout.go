package shader

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
)

// 着色器 uniform 名称
const (
	UniformTime       = "Time"
	UniformResolution = "Resolution"
	UniformMouse      = "Mouse"
	UniformClicks     = "Clicks"
	UniformClickCount = "ClickCount"
)

// Location 一个已解析的 uniform
type Location struct {
	Name string
	// Index 在源码中的声明顺序
	Index int
	// Type Kage 类型表达式，如 "vec2"、"[16]vec3"
	Type string
}

// expectedUniforms 渲染器上传的 uniform 及其类型
var expectedUniforms = []struct {
	name string
	typ  string
}{
	{UniformTime, "float"},
	{UniformResolution, "vec2"},
	{UniformMouse, "vec2"},
	{UniformClicks, fmt.Sprintf("[%d]vec3", MaxClicks)},
	{UniformClickCount, "int"},
}

// ParseUniforms 列出 Kage 源码中的全部 uniform 声明
//
// Kage 使用 Go 语法，顶层 var 声明即 uniform。
func ParseUniforms(src []byte) (map[string]Location, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "ripple.kage", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayout, err)
	}

	out := make(map[string]Location)
	index := 0
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}
		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			if vs.Type == nil {
				continue
			}
			typ := types.ExprString(vs.Type)
			for _, name := range vs.Names {
				out[name.Name] = Location{Name: name.Name, Index: index, Type: typ}
				index++
			}
		}
	}
	return out, nil
}

// resolveLocations 在源码声明中查找渲染器需要的 uniform
// 缺失或类型不符的 uniform 不会出现在结果中，并各自产生一条错误
func resolveLocations(declared map[string]Location) (map[string]Location, []error) {
	resolved := make(map[string]Location, len(expectedUniforms))
	var errs []error
	for _, want := range expectedUniforms {
		loc, ok := declared[want.name]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("%w: uniform %s not declared", ErrLayout, want.name))
		case loc.Type != want.typ:
			errs = append(errs, fmt.Errorf("%w: uniform %s has type %s, want %s", ErrLayout, want.name, loc.Type, want.typ))
		default:
			resolved[want.name] = loc
		}
	}
	return resolved, errs
}

// CheckLayout 解析源码并检查渲染器需要的全部 uniform
// 返回已解析的 uniform；存在缺失或类型不符时 error 合并了所有问题
func CheckLayout(src []byte) (map[string]Location, error) {
	declared, err := ParseUniforms(src)
	if err != nil {
		return nil, err
	}
	resolved, errs := resolveLocations(declared)
	return resolved, errors.Join(errs...)
}
