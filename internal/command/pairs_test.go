package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairs_OverwriteKeepsFirstPosition(t *testing.T) {
	var p Pairs
	p.Set("b", "1")
	p.Set("a", "2")
	p.Set("b", "3")

	assert.Equal(t, []string{"b", "a"}, p.Keys())
	v, ok := p.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
	assert.Equal(t, 2, p.Len())
}

func TestPairs_RangeStops(t *testing.T) {
	p := PairsOf("a", "1", "b", "2", "c", "3")
	var seen []string
	p.Range(func(k, _ string) bool {
		seen = append(seen, k)
		return k != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestPairs_CloneIsIndependent(t *testing.T) {
	p := PairsOf("a", "1")
	c := p.Clone()
	c.Set("a", "2")
	v, _ := p.Get("a")
	assert.Equal(t, "1", v)
}

func TestPairsFromMap_Sorted(t *testing.T) {
	p := PairsFromMap(map[string]string{"z": "1", "a": "2", "m": "3"})
	assert.Equal(t, []string{"a", "m", "z"}, p.Keys())
}

func TestPairsOf_OddPanics(t *testing.T) {
	assert.Panics(t, func() { PairsOf("a") })
}

func TestPairs_NilSafe(t *testing.T) {
	var p *Pairs
	assert.Equal(t, 0, p.Len())
	assert.Nil(t, p.Keys())
	_, ok := p.Get("a")
	assert.False(t, ok)
}
