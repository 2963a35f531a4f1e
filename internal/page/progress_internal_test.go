package page

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestTracker() (*Tracker, *clock) {
	c := &clock{t: time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)}
	tr := NewTracker(time.Minute)
	tr.now = c.now
	return tr, c
}

func TestTracker_Lifecycle(t *testing.T) {
	tr, _ := newTestTracker()

	tr.start("sid")
	tr.set("sid", 40)
	tr.set("sid", 20)
	p, ok := tr.Get("sid")
	require.True(t, ok)
	assert.Equal(t, Progress{Percent: 40}, p)

	tr.finish("sid", nil)
	p, ok = tr.Get("sid")
	require.True(t, ok)
	assert.Equal(t, Progress{Percent: 100, Done: true}, p)
}

func TestTracker_FinishWithError(t *testing.T) {
	tr, _ := newTestTracker()

	tr.start("sid")
	tr.set("sid", 30)
	tr.finish("sid", errors.New("Upload timeout"))

	p, ok := tr.Get("sid")
	require.True(t, ok)
	assert.Equal(t, Progress{Percent: 30, Done: true, Error: "Upload timeout"}, p)
}

func TestTracker_FinishedEntryExpiresOnRead(t *testing.T) {
	tr, c := newTestTracker()

	tr.start("sid")
	tr.finish("sid", nil)

	c.t = c.t.Add(time.Minute)
	_, ok := tr.Get("sid")
	assert.True(t, ok, "still readable at the retention edge")

	c.t = c.t.Add(time.Second)
	_, ok = tr.Get("sid")
	assert.False(t, ok)
	assert.Empty(t, tr.state)
}

func TestTracker_StartPrunesFinishedSessions(t *testing.T) {
	tr, c := newTestTracker()

	for i := range 10000 {
		sid := fmt.Sprintf("sid-%d", i)
		tr.start(sid)
		tr.set(sid, 50)
		tr.finish(sid, nil)
	}
	require.Len(t, tr.state, 10000)

	c.t = c.t.Add(2 * time.Minute)
	tr.start("next")
	assert.Len(t, tr.state, 1)
	_, ok := tr.Get("next")
	assert.True(t, ok)
}

func TestTracker_InFlightUploadIsKept(t *testing.T) {
	tr, c := newTestTracker()

	tr.start("slow")
	tr.set("slow", 10)

	c.t = c.t.Add(time.Hour)
	tr.start("other")
	p, ok := tr.Get("slow")
	require.True(t, ok)
	assert.Equal(t, 10.0, p.Percent)
}

func TestTracker_Forget(t *testing.T) {
	tr, _ := newTestTracker()

	tr.start("sid")
	tr.forget("sid")
	_, ok := tr.Get("sid")
	assert.False(t, ok)
}
