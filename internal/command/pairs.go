package command

import (
	"fmt"
	"sort"
)

// Pairs is an insertion-ordered string mapping. Setting an existing key
// replaces its value but keeps the position of its first insertion.
//
// The zero value is ready to use.
type Pairs struct {
	keys   []string
	values map[string]string
}

// NewPairs returns an empty Pairs.
func NewPairs() *Pairs {
	return &Pairs{}
}

// PairsOf builds Pairs from alternating keys and values. It panics on an odd
// argument count.
func PairsOf(kv ...string) *Pairs {
	if len(kv)%2 != 0 {
		panic(fmt.Sprintf("command.PairsOf: odd argument count %d", len(kv)))
	}
	p := NewPairs()
	for i := 0; i < len(kv); i += 2 {
		p.Set(kv[i], kv[i+1])
	}
	return p
}

// PairsFromMap copies m with keys in sorted order.
func PairsFromMap(m map[string]string) *Pairs {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	p := NewPairs()
	for _, k := range keys {
		p.Set(k, m[k])
	}
	return p
}

func (p *Pairs) Set(key, value string) {
	if p.values == nil {
		p.values = make(map[string]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *Pairs) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	v, ok := p.values[key]
	return v, ok
}

func (p *Pairs) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// Keys returns the keys in insertion order.
func (p *Pairs) Keys() []string {
	if p == nil {
		return nil
	}
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Range calls fn for each pair in insertion order until fn returns false.
func (p *Pairs) Range(fn func(key, value string) bool) {
	if p == nil {
		return
	}
	for _, k := range p.keys {
		if !fn(k, p.values[k]) {
			return
		}
	}
}

func (p *Pairs) Clone() *Pairs {
	out := NewPairs()
	p.Range(func(k, v string) bool {
		out.Set(k, v)
		return true
	})
	return out
}

// Map returns the pairs as a plain map.
func (p *Pairs) Map() map[string]string {
	out := make(map[string]string, p.Len())
	p.Range(func(k, v string) bool {
		out[k] = v
		return true
	})
	return out
}
