package machine

import "github.com/dolthub/swiss"

// internKey identifies a cacheable Value: the nullary primitives (keyed by
// Kind alone) and the Dot/Compare combinators (keyed additionally by their
// character). Adapted from the teacher's lang/machine/map.go use of
// dolthub/swiss as a generic hash map, repurposed here as a small
// deduplicating cache for combinators that PushImmediate re-creates every
// time its instruction executes — a Dot or Compare combinator replayed
// through a forced D1 or a restored C1 continuation would otherwise
// allocate a fresh value each time despite always meaning the same thing.
type internKey struct {
	kind Kind
	ch   rune
}

type interner struct {
	m *swiss.Map[internKey, Value]
}

func newInterner() *interner {
	return &interner{m: swiss.NewMap[internKey, Value](16)}
}

// nullary returns the single shared instance of one of the seven
// zero-argument primitives for kind.
func (in *interner) nullary(kind Kind) Value {
	key := internKey{kind: kind}
	if v, ok := in.m.Get(key); ok {
		return v
	}
	v := &Prim{kind: kind}
	in.m.Put(key, v)
	return v
}

func (in *interner) dot(c rune) Value {
	key := internKey{kind: KindDot, ch: c}
	if v, ok := in.m.Get(key); ok {
		return v
	}
	v := &DotValue{Char: c}
	in.m.Put(key, v)
	return v
}

func (in *interner) compare(c rune) Value {
	key := internKey{kind: KindCompare, ch: c}
	if v, ok := in.m.Get(key); ok {
		return v
	}
	v := &CompareValue{Char: c}
	in.m.Put(key, v)
	return v
}
