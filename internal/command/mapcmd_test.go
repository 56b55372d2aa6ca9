package command

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"actionkit/internal/trace"
)

func TestMapCommand_SimpleScenario(t *testing.T) {
	c := NewMapCommand(openTemp(t, KindOutput))
	require.NoError(t, c.Set("OUT1", "hello"))
	assert.Equal(t, "OUT1=hello"+EOL, readFile(t, c.File()))
}

func TestMapCommand_MultilineScenario(t *testing.T) {
	c := NewMapCommand(openTemp(t, KindOutput, WithDelimiter(sequence("DELIM"))))
	require.NoError(t, c.Set("MULTI", "line1\nline2"))
	assert.Equal(t, "MULTI<<DELIM"+EOL+"line1"+EOL+"line2"+EOL+"DELIM"+EOL, readFile(t, c.File()))
}

func TestMapCommand_EmptyAppendNoIO(t *testing.T) {
	c := NewMapCommand(openTemp(t, KindOutput))
	require.NoError(t, c.Append(NewPairs()))
	require.NoError(t, c.Append(nil))
	_, err := os.Stat(c.File().Path())
	assert.True(t, os.IsNotExist(err))
}

func TestMapCommand_LastWriteWins(t *testing.T) {
	c := NewMapCommand(openTemp(t, KindState))
	require.NoError(t, c.Set("k", "1"))
	require.NoError(t, c.Set("other", "x"))
	require.NoError(t, c.Set("k", "2"))

	require.NoError(t, c.Optimize())
	assert.Equal(t, lines("k=2", "other=x"), readFile(t, c.File()))
}

func TestMapCommand_OptimizeIdempotent(t *testing.T) {
	c := NewMapCommand(openTemp(t, KindOutput))
	require.NoError(t, c.Append(PairsOf("a", "1", "notes", "first\nsecond")))
	require.NoError(t, c.Append(PairsOf("notes", "third\nfourth", "a", "2")))
	require.NoError(t, c.Append(PairsOf("b", "x")))

	require.NoError(t, c.Optimize())
	first := readFile(t, c.File())
	require.NoError(t, c.Optimize())
	second := readFile(t, c.File())
	assert.Equal(t, first, second)

	p, err := DecodePairs(second)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "notes", "b"}, p.Keys())
	notes, _ := p.Get("notes")
	assert.Equal(t, "third\nfourth", notes)
}

func TestMapCommand_OptimizeRegeneratesCollidingDelimiter(t *testing.T) {
	c := NewMapCommand(openTemp(t, KindOutput, WithDelimiter(sequence("FRESH"))))
	// "EOF" terminates the block but also occurs inside the value.
	require.NoError(t, c.File().WriteAll("k<<EOF\nEOF2\nrest\nEOF\n"))

	require.NoError(t, c.Optimize())
	assert.Equal(t, lines("k<<FRESH", "EOF2", "rest", "FRESH"), readFile(t, c.File()))
}

func TestMapCommand_MalformedAbortLeavesFileUntouched(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := trace.NewRecorder()
	c := NewMapCommand(openTemp(t, KindOutput, WithLogger(zap.New(core)), WithSink(rec)))

	original := "A=1\nB<<EOF\nunterminated\n"
	require.NoError(t, c.File().WriteAll(original))

	require.NoError(t, c.Optimize())
	assert.Equal(t, original, readFile(t, c.File()))

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, int64(2), warns[0].ContextMap()["line"])

	events := rec.Snapshot()
	require.Len(t, events, 1)
	assert.Equal(t, trace.Event{
		Kind:    trace.EventCommandOptimizeAborted,
		Command: "GITHUB_OUTPUT",
		Reason:  ReasonUnterminatedBlock,
		Line:    2,
	}, events[0])
}

func TestMapCommand_OptimizeEmptyFile(t *testing.T) {
	c := NewMapCommand(openTemp(t, KindEnv))
	require.NoError(t, c.Optimize())
	_, err := os.Stat(c.File().Path())
	assert.True(t, os.IsNotExist(err), "nothing to rewrite for a missing file")

	require.NoError(t, c.File().WriteAll("\n\n"))
	require.NoError(t, c.Optimize())
	assert.Equal(t, "", readFile(t, c.File()))
}

func TestMapCommand_AppendRecordsKeys(t *testing.T) {
	rec := trace.NewRecorder()
	c := NewMapCommand(openTemp(t, KindEnv, WithSink(rec)))
	require.NoError(t, c.Append(PairsOf("B", "1", "A", "2")))
	require.NoError(t, c.Clear())

	j := rec.Journal()
	require.NoError(t, j.Validate())
	require.Len(t, j.Events, 2)
	assert.Equal(t, []string{"B", "A"}, j.Events[0].Keys)
	assert.Equal(t, trace.EventCommandCleared, j.Events[1].Kind)
}

func TestRawCommand_Append(t *testing.T) {
	c := NewRawCommand(openTemp(t, KindStepSummary))
	require.NoError(t, c.Append("# Title\r\nbody"))
	require.NoError(t, c.Append("done"+EOL))
	assert.Equal(t, "# Title"+EOL+"body"+EOL+"done"+EOL, readFile(t, c.File()))

	require.NoError(t, c.Clear())
	assert.Equal(t, "", readFile(t, c.File()))
}
