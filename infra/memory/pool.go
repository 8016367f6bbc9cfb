package memory

import "sync"

// Resetter is implemented by pooled values that can clear themselves.
type Resetter interface {
	Reset()
}

// Pool is a typed object pool. Values are reset on Put so a Get never
// observes a previous owner's state.
type Pool[T any, PT interface {
	*T
	Resetter
}] struct {
	p sync.Pool
}

func NewPool[T any, PT interface {
	*T
	Resetter
}]() *Pool[T, PT] {
	return &Pool[T, PT]{
		p: sync.Pool{
			New: func() any { return PT(new(T)) },
		},
	}
}

func (p *Pool[T, PT]) Get() PT {
	return p.p.Get().(PT)
}

func (p *Pool[T, PT]) Put(v PT) {
	if v == nil {
		return
	}
	v.Reset()
	p.p.Put(v)
}
