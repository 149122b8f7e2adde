package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gonewx/ripple/pkg/input"
)

// parseFloats 解析逗号分隔的 n 个浮点数
func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated values, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", p, err)
		}
		out[i] = v
	}
	return out, nil
}

// pointFlag -mouse x,y
type pointFlag struct {
	X, Y float64
}

func (p *pointFlag) String() string {
	return fmt.Sprintf("%g,%g", p.X, p.Y)
}

func (p *pointFlag) Set(s string) error {
	v, err := parseFloats(s, 2)
	if err != nil {
		return err
	}
	p.X, p.Y = v[0], v[1]
	return nil
}

// clickFlags 可重复的 -click x,y,t
type clickFlags []input.ClickRipple

func (c *clickFlags) String() string {
	parts := make([]string, len(*c))
	for i, r := range *c {
		parts[i] = fmt.Sprintf("%g,%g,%g", r.X, r.Y, r.T)
	}
	return strings.Join(parts, " ")
}

func (c *clickFlags) Set(s string) error {
	v, err := parseFloats(s, 3)
	if err != nil {
		return err
	}
	if v[2] < 0 {
		return fmt.Errorf("ripple time must not be negative, got %g", v[2])
	}
	*c = append(*c, input.ClickRipple{X: v[0], Y: v[1], T: v[2]})
	return nil
}
