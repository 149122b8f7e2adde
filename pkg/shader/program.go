// Package shader 构建背景的着色器程序
//
// 顶点阶段是固定的全屏四边形，片元阶段是嵌入的 Kage 涟漪/噪声场。
// Build 在每次挂载时只运行一次：编译片元阶段、校验四边形、解析 uniform 位置。
// 编译或解析失败只记录诊断信息，不会向页面传播错误：
// 背景静默地不再动画，页面其他部分照常可用。
package shader

import (
	_ "embed"
	"errors"
	"fmt"
	"log"

	"github.com/gonewx/ripple/pkg/platform"
)

// 诊断错误类别
var (
	ErrCompile = errors.New("shader compile failed")
	ErrVertex  = errors.New("vertex stage invalid")
	ErrLayout  = errors.New("uniform layout invalid")
)

//go:embed ripple.kage
var rippleKage []byte

// FragmentSource 返回内置的 Kage 片元着色器源码
func FragmentSource() []byte {
	return rippleKage
}

// Stage 着色器阶段
type Stage string

const (
	StageVertex   Stage = "vertex"
	StageFragment Stage = "fragment"
	StageLink     Stage = "link"
)

// Diagnostic 一条构建诊断
type Diagnostic struct {
	Stage Stage
	Err   error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %v", d.Stage, d.Err)
}

// Source 构建程序的输入
type Source struct {
	Vertices []platform.Vertex
	Fragment []byte
}

// DefaultSource 全屏四边形 + 内置涟漪场
func DefaultSource() Source {
	return Source{Vertices: Quad, Fragment: rippleKage}
}

// Program 已构建的程序，构建后不可变
type Program struct {
	shader      platform.Shader
	vertices    []platform.Vertex
	locations   map[string]Location
	diagnostics []Diagnostic
}

// Build 编译并链接程序
//
// 返回的 Program 永不为 nil；存在诊断信息时 Usable() 为 false。
func Build(dev platform.Device, src Source) *Program {
	p := &Program{locations: map[string]Location{}}

	if err := validateQuad(src.Vertices); err != nil {
		p.report(StageVertex, err)
	} else {
		p.vertices = copyQuad(src.Vertices)
	}

	sh, err := dev.CompileFragment(src.Fragment)
	switch {
	case err != nil:
		p.report(StageFragment, fmt.Errorf("%w: %v", ErrCompile, err))
	case sh == nil:
		p.report(StageFragment, fmt.Errorf("%w: device returned no shader", ErrCompile))
	default:
		p.shader = sh
	}

	declared, err := ParseUniforms(src.Fragment)
	if err != nil {
		p.report(StageLink, err)
	} else {
		resolved, errs := resolveLocations(declared)
		p.locations = resolved
		for _, e := range errs {
			p.report(StageLink, e)
		}
	}

	if p.Usable() {
		log.Printf("[Shader] Program built: %d uniforms resolved, %d vertices", len(p.locations), len(p.vertices))
	}
	return p
}

func (p *Program) report(stage Stage, err error) {
	d := Diagnostic{Stage: stage, Err: err}
	p.diagnostics = append(p.diagnostics, d)
	log.Printf("[Shader] ERROR: %s", d)
}

// Usable 报告程序能否用于绘制
func (p *Program) Usable() bool {
	return len(p.diagnostics) == 0 && p.shader != nil
}

// Diagnostics 返回构建诊断
func (p *Program) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(p.diagnostics))
	copy(out, p.diagnostics)
	return out
}

// Shader 返回设备着色器句柄
func (p *Program) Shader() platform.Shader {
	return p.shader
}

// Vertices 返回四边形顶点
func (p *Program) Vertices() []platform.Vertex {
	return p.vertices
}

// Location 返回 uniform 位置，未解析时 ok 为 false
func (p *Program) Location(name string) (Location, bool) {
	loc, ok := p.locations[name]
	return loc, ok
}

// AttributeLocation 返回顶点属性位置和分量数，未知属性返回 -1
func (p *Program) AttributeLocation(name string) (location, components int) {
	if name != PositionAttribute || p.vertices == nil {
		return -1, 0
	}
	return 0, PositionComponents
}

// Bind 把 uniform 值映射到已解析的位置
// 未解析的 uniform 被跳过
func (p *Program) Bind(u Uniforms) map[string]any {
	all := u.values()
	out := make(map[string]any, len(p.locations))
	for name := range p.locations {
		out[name] = all[name]
	}
	return out
}

// Draw 上传 uniform 并发出一次绘制调用；程序不可用时什么也不做
func (p *Program) Draw(dev platform.Device, u Uniforms) bool {
	if !p.Usable() {
		return false
	}
	dev.DrawTriangles(p.vertices, p.shader, p.Bind(u))
	return true
}
