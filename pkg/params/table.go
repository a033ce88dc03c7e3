package params

// table is the storage shared by parameters and results: parallel slices of names,
// defaults and live values indexed by a typed id.
type table[K ~int] struct {
	names    []string
	defaults []int64
	values   []int64
	index    map[string]K
}

func newTable[K ~int](names []string, defaults []int64) table[K] {
	t := table[K]{
		names:    names,
		defaults: defaults,
		values:   make([]int64, len(defaults)),
		index:    make(map[string]K, len(names)),
	}
	copy(t.values, defaults)
	for i, name := range names {
		t.index[name] = K(i)
	}
	return t
}

func (t *table[K]) get(id K) int64 { return t.values[id] }

func (t *table[K]) set(id K, v int64) { t.values[id] = v }

func (t *table[K]) lookup(name string) (K, bool) {
	id, ok := t.index[name]
	return id, ok
}

func (t *table[K]) reset() { copy(t.values, t.defaults) }

func (t *table[K]) each(fn func(id K, name string, value int64)) {
	for i, name := range t.names {
		fn(K(i), name, t.values[i])
	}
}

func (t *table[K]) snapshot() map[string]int64 {
	out := make(map[string]int64, len(t.names))
	for i, name := range t.names {
		out[name] = t.values[i]
	}
	return out
}
