package model

// Pool holds the key values already materialized for one table. Relations
// share a pool by reference, never by copy, so keys added while seeding
// one table are immediately visible to every relation pointing at it.
type Pool struct {
	keys []any
}

func NewPool(keys ...any) *Pool {
	return &Pool{keys: keys}
}

func (p *Pool) Add(keys ...any) {
	p.keys = append(p.keys, keys...)
}

func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

func (p *Pool) Keys() []any {
	if p == nil {
		return nil
	}
	return p.keys
}
