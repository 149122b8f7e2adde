package input

// MaxRipples 同时跟踪的涟漪数量上限，必须与着色器中 Clicks 数组长度一致
const MaxRipples = 16

// ClickRipple 一次点击产生的涟漪
type ClickRipple struct {
	// X, Y 归一化表面坐标 [0,1]，原点在左下角
	X, Y float64
	// T 点击发生时距动画纪元的秒数
	T float64
}

// RippleRing 固定容量的环形缓冲区，保留最近 MaxRipples 次点击
//
// 按插入顺序排列：索引 0 始终是仍在跟踪中最早的涟漪。
// 超出容量时淘汰最早的一条，追加为 O(1)。
type RippleRing struct {
	buf   [MaxRipples]ClickRipple
	start int
	n     int
}

// Push 追加一条涟漪，必要时淘汰最早的一条
func (r *RippleRing) Push(c ClickRipple) {
	if r.n < MaxRipples {
		r.buf[(r.start+r.n)%MaxRipples] = c
		r.n++
		return
	}
	r.buf[r.start] = c
	r.start = (r.start + 1) % MaxRipples
}

// Len 返回当前涟漪数量
func (r *RippleRing) Len() int {
	return r.n
}

// At 返回第 i 条涟漪（0 为最早）
func (r *RippleRing) At(i int) ClickRipple {
	if i < 0 || i >= r.n {
		panic("input: ripple index out of range")
	}
	return r.buf[(r.start+i)%MaxRipples]
}

// AppendTo 按从旧到新的顺序把涟漪追加到 dst
func (r *RippleRing) AppendTo(dst []ClickRipple) []ClickRipple {
	for i := 0; i < r.n; i++ {
		dst = append(dst, r.buf[(r.start+i)%MaxRipples])
	}
	return dst
}

// Clear 清空缓冲区
func (r *RippleRing) Clear() {
	r.start, r.n = 0, 0
}
