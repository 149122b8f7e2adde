package shader

import (
	"fmt"

	"github.com/gonewx/ripple/pkg/platform"
)

// PositionAttribute 顶点属性名称
const PositionAttribute = "position"

// PositionComponents 每个顶点的分量数
const PositionComponents = 2

// QuadVertexCount 全屏四边形的顶点数（两个三角形）
const QuadVertexCount = 6

// Quad 覆盖 [-1,1]² 的两个三角形
var Quad = []platform.Vertex{
	{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1},
	{X: -1, Y: 1}, {X: 1, Y: -1}, {X: 1, Y: 1},
}

// validateQuad 检查顶点阶段输入：6 个顶点、坐标都在 [-1,1] 内、覆盖四个角
func validateQuad(vertices []platform.Vertex) error {
	if len(vertices) != QuadVertexCount {
		return fmt.Errorf("%w: %d vertices, want %d", ErrVertex, len(vertices), QuadVertexCount)
	}

	corners := map[platform.Vertex]bool{}
	for i, v := range vertices {
		if v.X < -1 || v.X > 1 || v.Y < -1 || v.Y > 1 {
			return fmt.Errorf("%w: vertex %d (%v, %v) outside clip space", ErrVertex, i, v.X, v.Y)
		}
		corners[v] = true
	}
	for _, c := range []platform.Vertex{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1}} {
		if !corners[c] {
			return fmt.Errorf("%w: corner (%v, %v) not covered", ErrVertex, c.X, c.Y)
		}
	}
	return nil
}

func copyQuad(vertices []platform.Vertex) []platform.Vertex {
	out := make([]platform.Vertex, len(vertices))
	copy(out, vertices)
	return out
}
