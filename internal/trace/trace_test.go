package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	level  Level
	events []Event
}

func (r *recorder) Emit(ev *Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *ev)
}
func (r *recorder) Flush() error  { return nil }
func (r *recorder) Close() error  { return nil }
func (r *recorder) Level() Level  { return r.level }
func (r *recorder) Enabled() bool { return r.level > LevelOff }

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"off":    LevelOff,
		"":       LevelOff,
		"ERROR":  LevelError,
		"phase":  LevelPhase,
		"detail": LevelDetail,
		"file":   LevelDetail,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("debug")
	assert.Error(t, err)
	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestShouldEmit(t *testing.T) {
	assert.False(t, LevelOff.ShouldEmit(ScopeDriver))
	assert.True(t, LevelPhase.ShouldEmit(ScopePass))
	assert.False(t, LevelPhase.ShouldEmit(ScopeFile))
	assert.True(t, LevelDetail.ShouldEmit(ScopeFile))
	assert.True(t, LevelError.ShouldEmit(ScopeFile))
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	span := Begin(tr, ScopePass, "parse", 0)
	span.WithExtra("files", "2").WithExtra("bytes", "10")
	span.End("ok")
	Begin(tr, ScopeFile, "file:a.go", 0).End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "pass   → parse")
	assert.True(t, strings.HasSuffix(lines[1], "← parse (ok) bytes=10 files=2"), lines[1])
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	Point(tr, ScopeFile, "cache-hit", "a.go", 0)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "point", got["kind"])
	assert.Equal(t, "file", got["scope"])
	assert.Equal(t, "cache-hit", got["name"])
	assert.Equal(t, "a.go", got["detail"])
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDetail)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeFile, name, "", 0)
	}
	events := ring.Snapshot()
	require.Len(t, events, 3)
	assert.Equal(t, "c", events[0].Name)
	assert.Equal(t, "e", events[2].Name)
}

func TestNewAndDumpOnError(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())

	tr, err = New(Config{Level: LevelError, RingSize: 8})
	require.NoError(t, err)
	Begin(tr, ScopeDriver, "run", 0).End("failed")

	var buf bytes.Buffer
	require.NoError(t, DumpOnError(tr, &buf))
	assert.Contains(t, buf.String(), "trace (last events)")
	assert.Contains(t, buf.String(), "← run (failed)")

	var out bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Output: &out})
	require.NoError(t, err)
	Begin(tr, ScopeDriver, "run", 0).End("")
	require.NoError(t, tr.Close())
	assert.Contains(t, out.String(), "→ run")

	buf.Reset()
	require.NoError(t, DumpOnError(tr, &buf))
	assert.Contains(t, buf.String(), "→ run")
}

func TestStartSpanPropagatesParent(t *testing.T) {
	rec := &recorder{level: LevelDetail}
	ctx := WithTracer(context.Background(), rec)

	ctx, outer := StartSpan(ctx, ScopeDriver, "run")
	_, inner := StartSpan(ctx, ScopePass, "parse")
	inner.End("")
	outer.End("")

	require.Len(t, rec.events, 4)
	assert.Equal(t, outer.ID(), rec.events[1].ParentID)
	assert.Equal(t, uint64(0), rec.events[0].ParentID)
	assert.Equal(t, outer.ID(), CurrentSpan(ctx))
}

func TestNopContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, Nop, FromContext(ctx))

	_, span := StartSpan(ctx, ScopeDriver, "run")
	assert.Equal(t, uint64(0), span.ID())
	assert.Zero(t, span.End(""))
}

func TestHeartbeatStop(t *testing.T) {
	assert.Nil(t, StartHeartbeat(Nop, 0))
	var h *Heartbeat
	h.Stop()

	rec := &recorder{level: LevelPhase}
	h = StartHeartbeat(rec, 1)
	h.Stop()
	h.Stop()
}
