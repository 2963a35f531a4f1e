package activity_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/travelviz/internal/activity"
)

func newTestLog(t *testing.T) (*activity.Log, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return activity.NewLog(client), mr
}

func entry(i int) activity.Entry {
	return activity.Entry{Name: fmt.Sprintf("e%d", i), Timestamp: time.Unix(int64(i), 0).UTC()}
}

func TestAppend_CapsAndEvictsOldest(t *testing.T) {
	cases := []struct {
		kind activity.Kind
		cap  int
	}{
		{activity.Analytics, activity.AnalyticsCap},
		{activity.Events, activity.EventsCap},
	}
	for _, c := range cases {
		t.Run(string(c.kind), func(t *testing.T) {
			l, mr := newTestLog(t)
			ctx := context.Background()
			total := c.cap + 37

			for i := range total {
				require.NoError(t, l.Append(ctx, "cid", c.kind, entry(i)))
			}

			got, err := l.List(ctx, "cid", c.kind)
			require.NoError(t, err)
			require.Len(t, got, c.cap)
			assert.Equal(t, fmt.Sprintf("e%d", total-c.cap), got[0].Name)
			assert.Equal(t, fmt.Sprintf("e%d", total-1), got[len(got)-1].Name)

			lst, err := mr.List("activity:cid:" + string(c.kind))
			require.NoError(t, err)
			assert.Len(t, lst, c.cap)
		})
	}
}

func TestAppend_BelowCapKeepsEverything(t *testing.T) {
	l, _ := newTestLog(t)
	ctx := context.Background()

	for i := range 3 {
		require.NoError(t, l.Append(ctx, "cid", activity.Events, entry(i)))
	}
	got, err := l.List(ctx, "cid", activity.Events)
	require.NoError(t, err)
	assert.Equal(t, []activity.Entry{entry(0), entry(1), entry(2)}, got)
}

func TestAppend_UnknownKind(t *testing.T) {
	l, _ := newTestLog(t)
	assert.Error(t, l.Append(context.Background(), "cid", activity.Kind("clicks"), entry(0)))
}

func TestClear(t *testing.T) {
	l, mr := newTestLog(t)
	ctx := context.Background()

	require.NoError(t, l.Append(ctx, "cid", activity.Analytics, entry(1)))
	require.NoError(t, l.Append(ctx, "cid", activity.Events, entry(2)))
	require.NoError(t, l.Append(ctx, "other", activity.Events, entry(3)))

	require.NoError(t, l.Clear(ctx, "cid"))
	assert.False(t, mr.Exists("activity:cid:analytics"))
	assert.False(t, mr.Exists("activity:cid:events"))
	assert.True(t, mr.Exists("activity:other:events"))

	got, err := l.List(ctx, "cid", activity.Analytics)
	require.NoError(t, err)
	assert.Empty(t, got)
}
