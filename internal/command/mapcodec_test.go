package command

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePairs_Simple(t *testing.T) {
	got, err := EncodePairs(PairsOf("OUT1", "hello", "EMPTY", "", "EQ", "a=b"), nil)
	require.NoError(t, err)
	assert.Equal(t, lines("OUT1=hello", "EMPTY=", "EQ=a=b"), got)
}

func TestEncodePairs_Empty(t *testing.T) {
	got, err := EncodePairs(NewPairs(), nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = EncodePairs(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestEncodePairs_Heredoc(t *testing.T) {
	got, err := EncodePairs(PairsOf("MULTI", "line1\nline2"), sequence("DELIM"))
	require.NoError(t, err)
	assert.Equal(t, lines("MULTI<<DELIM", "line1", "line2", "DELIM"), got)
}

func TestEncodePairs_RegeneratesOnCollision(t *testing.T) {
	got, err := EncodePairs(PairsOf("key", "has EOF inside\nsecond"), sequence("EOF", "key", "ZZZ"))
	require.NoError(t, err)
	assert.Equal(t, lines("key<<ZZZ", "has EOF inside", "second", "ZZZ"), got)
}

func TestEncodePairs_DelimiterNeverInKeyOrValue(t *testing.T) {
	// The generator first offers every token already present in the value.
	var pool []string
	for i := 0; i < 40; i++ {
		pool = append(pool, NewDelimiter())
	}
	key := "K" + pool[0]
	value := strings.Join(pool, "\n")

	i := 0
	gen := func() string {
		if i < len(pool) {
			i++
			return pool[i-1]
		}
		return NewDelimiter()
	}

	got, err := EncodePairs(PairsOf(key, value), gen)
	require.NoError(t, err)

	header := SplitLines(got)[0]
	delim := header[strings.LastIndex(header, "<<")+2:]
	require.NotEmpty(t, delim)
	assert.NotContains(t, key, delim)
	assert.NotContains(t, value, delim)
	assert.NotContains(t, delim, "-")
}

func TestEncodePairs_GeneratorExhausted(t *testing.T) {
	_, err := EncodePairs(PairsOf("k", "x\ny"), sequence("x"))
	assert.ErrorIs(t, err, ErrNoDelimiter)
}

func TestNewDelimiter_NoHyphens(t *testing.T) {
	d := NewDelimiter()
	assert.Len(t, d, 32)
	assert.NotContains(t, d, "-")
	assert.NotEqual(t, d, NewDelimiter())
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	in := PairsOf(
		"plain", "hello world",
		"empty", "",
		"equals", "a=b=c",
		"arrows", "x<<y",
		"multi", "line1\nline2",
		"crlf", "one\r\ntwo",
		"trailing", "end\n",
		"leading", "\nstart",
		"blank-lines", "a\n\n\nb",
		"lone-cr", "a\rb",
	)
	encoded, err := EncodePairs(in, nil)
	require.NoError(t, err)

	out, err := DecodePairs(encoded)
	require.NoError(t, err)

	want := map[string]string{}
	in.Range(func(k, v string) bool {
		want[k] = strings.ReplaceAll(v, "\r\n", "\n")
		return true
	})
	if diff := cmp.Diff(want, out.Map()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, in.Keys(), out.Keys())
}

func TestDecodePairs(t *testing.T) {
	cases := []struct {
		name    string
		content string
		keys    []string
		values  map[string]string
	}{
		{
			name:    "first equals splits",
			content: "a=b=c\n",
			keys:    []string{"a"},
			values:  map[string]string{"a": "b=c"},
		},
		{
			name:    "heredoc key before last arrows",
			content: "a<<b<<EOF\nv\nEOF\n",
			keys:    []string{"a<<b"},
			values:  map[string]string{"a<<b": "v"},
		},
		{
			name:    "equals before arrows is a direct entry",
			content: "x=1<<y\n",
			keys:    []string{"x"},
			values:  map[string]string{"x": "1<<y"},
		},
		{
			name:    "blank lines skipped",
			content: "\n  \nk=v\n\t\n",
			keys:    []string{"k"},
			values:  map[string]string{"k": "v"},
		},
		{
			name:    "repeated key keeps first position and last value",
			content: "k=1\nj=2\nk=3\n",
			keys:    []string{"k", "j"},
			values:  map[string]string{"k": "3", "j": "2"},
		},
		{
			name:    "blank lines inside a block are kept",
			content: "k<<E\n\nv\n\nE\n",
			keys:    []string{"k"},
			values:  map[string]string{"k": "\nv\n"},
		},
		{
			name:    "crlf content",
			content: "k<<E\r\na\r\nb\r\nE\r\nz=1\r\n",
			keys:    []string{"k", "z"},
			values:  map[string]string{"k": "a\nb", "z": "1"},
		},
		{
			name:    "empty block",
			content: "k<<E\nE\n",
			keys:    []string{"k"},
			values:  map[string]string{"k": ""},
		},
		{
			name:    "empty content",
			content: "",
			keys:    []string{},
			values:  map[string]string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := DecodePairs(tc.content)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.values, p.Map()); diff != "" {
				t.Fatalf("values (-want +got):\n%s", diff)
			}
			assert.Equal(t, tc.keys, p.Keys())
		})
	}
}

func TestDecodePairs_Malformed(t *testing.T) {
	cases := []struct {
		name    string
		content string
		line    int
		reason  string
	}{
		{"unterminated block", "A=1\nk<<EOF\nv\n", 2, ReasonUnterminatedBlock},
		{"unrecognized line", "junk\n", 1, ReasonUnrecognizedLine},
		{"empty direct key", "k=v\n=x\n", 2, ReasonEmptyKey},
		{"empty block key", "<<E\nv\nE\n", 1, ReasonEmptyKey},
		{"empty delimiter", "k<<\nv\n", 1, ReasonEmptyDelimiter},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePairs(tc.content)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedContent)
			var mce *MalformedContentError
			require.True(t, errors.As(err, &mce))
			assert.Equal(t, tc.line, mce.Line)
			assert.Equal(t, tc.reason, mce.Reason)
		})
	}
}
