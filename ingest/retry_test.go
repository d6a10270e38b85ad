package ingest_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pelinbingl/emlak"
	"github.com/pelinbingl/emlak/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	delays := []time.Duration{time.Millisecond, time.Millisecond}

	t.Run("retries unreachable pages", func(t *testing.T) {
		t.Parallel()

		var calls int
		var logged []string
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", emlak.Errorf(emlak.EUNREACHABLE, "connection reset")
			}
			return "<html></html>", nil
		}
		logf := func(format string, args ...any) { logged = append(logged, fmt.Sprintf(format, args...)) }

		html, err := ingest.FetchWithRetry(context.Background(), "https://example.com/ilan/1", fetch, logf, delays)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 3, calls)
		require.Len(t, logged, 2)
		assert.Contains(t, logged[0], "attempt 2")
	})

	t.Run("returns last error after final attempt", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", emlak.Errorf(emlak.EUNREACHABLE, "attempt %d", calls)
		}

		_, err := ingest.FetchWithRetry(context.Background(), "https://example.com/ilan/1", fetch, nil, delays)

		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, "attempt 3", emlak.ErrorMessage(err))
	})

	t.Run("does not retry other failures", func(t *testing.T) {
		t.Parallel()

		for _, code := range []string{emlak.EBLOCKED, emlak.ENOTFOUND, emlak.ERENDER} {
			var calls int
			fetch := func(ctx context.Context, url string) (string, error) {
				calls++
				return "", emlak.Errorf(code, "failed")
			}

			_, err := ingest.FetchWithRetry(context.Background(), "https://example.com/ilan/1", fetch, nil, delays)

			assert.Equal(t, code, emlak.ErrorCode(err))
			assert.Equal(t, 1, calls, code)
		}
	})

	t.Run("no delays means a single attempt", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", emlak.Errorf(emlak.EUNREACHABLE, "down")
		}

		_, err := ingest.FetchWithRetry(context.Background(), "https://example.com/ilan/1", fetch, nil, nil)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(ctx context.Context, url string) (string, error) {
			cancel()
			return "", emlak.Errorf(emlak.EUNREACHABLE, "down")
		}

		_, err := ingest.FetchWithRetry(ctx, "https://example.com/ilan/1", fetch, nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
