package app

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// ParseKey 把配置中的键名解析为 ebiten.Key
//
// 键名与 ebiten.Key.String() 一致，大小写不敏感（"p"、"P"、"space"、"F11"）。
func ParseKey(name string) (ebiten.Key, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("empty key name")
	}
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err == nil {
		return k, nil
	}
	for c := ebiten.Key(0); c <= ebiten.KeyMax; c++ {
		if strings.EqualFold(c.String(), name) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}
