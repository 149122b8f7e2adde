package platform

// Listeners 按注册顺序保存的事件监听器集合
//
// 宿主实现和测试假实现共用它来管理 OnResize/OnPointerMove/OnClick 订阅。
// 非并发安全，只能在游戏循环 goroutine 中使用。
type Listeners[T any] struct {
	nextID  uint64
	entries []listenerEntry[T]
}

type listenerEntry[T any] struct {
	id uint64
	fn func(T)
}

// Add 注册监听器，返回的 Subscription 用于注销
func (l *Listeners[T]) Add(fn func(T)) Subscription {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listenerEntry[T]{id: id, fn: fn})
	return SubscriptionFunc(func() { l.remove(id) })
}

func (l *Listeners[T]) remove(id uint64) {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

// Emit 依次调用所有监听器
// 回调中注册或注销监听器是安全的：遍历基于快照，
// 本次派发中已被注销的监听器不再调用，新注册的监听器从下一次派发开始生效
func (l *Listeners[T]) Emit(v T) {
	if len(l.entries) == 0 {
		return
	}
	snapshot := make([]listenerEntry[T], len(l.entries))
	copy(snapshot, l.entries)
	for _, e := range snapshot {
		if !l.has(e.id) {
			continue
		}
		e.fn(v)
	}
}

func (l *Listeners[T]) has(id uint64) bool {
	for _, e := range l.entries {
		if e.id == id {
			return true
		}
	}
	return false
}

// Len 返回当前注册的监听器数量
func (l *Listeners[T]) Len() int {
	return len(l.entries)
}
