package actions

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"actionkit/internal/command"
	"actionkit/internal/workflow"
)

func TestInput_NameMapping(t *testing.T) {
	h := newHarness(t)
	h.env["INPUT_GITHUB_TOKEN"] = "secret"

	v, err := h.tk.Input("github token", InputOptions{})
	require.NoError(t, err)
	assert.Equal(t, "secret", v)

	_, ok, err := h.tk.InputRaw("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.tk.Input("missing", InputOptions{Required: true})
	var le *workflow.LookupError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "INPUT_MISSING", le.Key)

	_, _, err = h.tk.InputRaw("two\nlines")
	assert.ErrorIs(t, err, command.ErrValidation)
}

func TestInputBool(t *testing.T) {
	h := newHarness(t)
	for value, want := range map[string]bool{
		"true": true, "True": true, "TRUE": true,
		"false": false, "False": false, "FALSE": false,
	} {
		h.env["INPUT_FLAG"] = value
		got, err := h.tk.InputBool("flag", InputOptions{})
		require.NoError(t, err, value)
		assert.Equal(t, want, got, value)
	}

	h.env["INPUT_FLAG"] = "yes"
	_, err := h.tk.InputBool("flag", InputOptions{})
	assert.ErrorIs(t, err, command.ErrValidation)

	h.env["INPUT_FLAG"] = ""
	got, err := h.tk.InputBool("flag", InputOptions{})
	require.NoError(t, err)
	assert.False(t, got)
	_, err = h.tk.InputBool("flag", InputOptions{Required: true})
	assert.ErrorIs(t, err, workflow.ErrNotDefined)
}

func TestInputInt(t *testing.T) {
	h := newHarness(t)
	h.env["INPUT_BIG"] = "123456789012345678901234567890n"
	n, err := h.tk.InputInt("big", InputOptions{})
	require.NoError(t, err)
	want, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	assert.Equal(t, 0, want.Cmp(n))

	h.env["INPUT_BIG"] = "0x1f"
	n, err = h.tk.InputInt("big", InputOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(31), n.Int64())

	h.env["INPUT_BIG"] = "1.5"
	_, err = h.tk.InputInt("big", InputOptions{})
	assert.ErrorIs(t, err, command.ErrValidation)

	n, err = h.tk.InputInt("absent", InputOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n.Int64())
}

func TestInputNumber(t *testing.T) {
	h := newHarness(t)
	h.env["INPUT_RATIO"] = " 0.25 "
	f, err := h.tk.InputNumber("ratio", InputOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0.25, f)

	h.env["INPUT_RATIO"] = "quarter"
	_, err = h.tk.InputNumber("ratio", InputOptions{})
	assert.ErrorIs(t, err, command.ErrValidation)
}

func TestInputRegexp(t *testing.T) {
	h := newHarness(t)

	h.env["INPUT_PATTERN"] = "/^v\\d+$/i"
	re, err := h.tk.InputRegexp("pattern", InputOptions{})
	require.NoError(t, err)
	assert.True(t, re.MatchString("V12"))

	h.env["INPUT_PATTERN"] = "/a/b/gu"
	re, err = h.tk.InputRegexp("pattern", InputOptions{})
	require.NoError(t, err)
	assert.Equal(t, "a/b", re.String())

	h.env["INPUT_PATTERN"] = "/x/q"
	_, err = h.tk.InputRegexp("pattern", InputOptions{})
	assert.ErrorIs(t, err, command.ErrValidation)

	h.env["INPUT_PATTERN"] = "no slashes"
	_, err = h.tk.InputRegexp("pattern", InputOptions{})
	assert.ErrorIs(t, err, command.ErrValidation)

	re, err = h.tk.InputRegexp("absent", InputOptions{})
	require.NoError(t, err)
	assert.True(t, re.MatchString("anything"))
}
