package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/vocal-site/internal/storage"
)

func newMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return mr
}

func newThrottle(t *testing.T, mr *miniredis.Miniredis, max int64, window time.Duration) *Throttle {
	t.Helper()

	th, err := New(context.Background(), "redis://"+mr.Addr()+"/0", "", max, window)
	require.NoError(t, err)
	t.Cleanup(func() { _ = th.Close() })

	return th
}

func TestAllow_FixedWindow(t *testing.T) {
	t.Parallel()

	mr := newMiniredis(t)
	th := newThrottle(t, mr, 2, time.Minute)
	ctx := context.Background()

	for i, want := range []bool{true, true, false, false} {
		ok, err := th.Allow(ctx, "a@b.c")
		require.NoError(t, err)
		require.Equalf(t, want, ok, "call %d", i)
	}

	require.True(t, mr.Exists("vocal:throttle:a@b.c"))
	require.Equal(t, time.Minute, mr.TTL("vocal:throttle:a@b.c"))

	// другой ключ - своё окно
	ok, err := th.Allow(ctx, "x@y.z")
	require.NoError(t, err)
	require.True(t, ok)

	// окно истекло
	mr.FastForward(time.Minute + time.Second)
	ok, err = th.Allow(ctx, "a@b.c")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestAllow_KeyWithoutTTLGetsWindow(t *testing.T) {
	t.Parallel()

	mr := newMiniredis(t)
	th := newThrottle(t, mr, 5, 30*time.Second)

	// ключ остался без TTL
	require.NoError(t, mr.Set("vocal:throttle:k", "3"))

	ok, err := th.Allow(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 30*time.Second, mr.TTL("vocal:throttle:k"))
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), "not-a-url", "", 1, time.Second)
	require.Error(t, err)

	mr := newMiniredis(t)
	addr := mr.Addr()
	mr.Close()

	_, err = New(context.Background(), "redis://"+addr, "", 1, time.Second)
	require.ErrorIs(t, err, storage.ErrUnavailable)
}
