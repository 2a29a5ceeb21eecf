package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	cfg := DefaultConfig()
	cfg.MaxAttempts = attempts
	cfg.InitialDelay = 5 * time.Millisecond
	cfg.MaxDelay = 20 * time.Millisecond
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 1*time.Second, cfg.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.InDelta(t, 2.0, cfg.Multiplier, 0)
	assert.Empty(t, cfg.RetryableErrors)
	assert.Nil(t, cfg.OnRetry)
}

func TestDo(t *testing.T) {
	ctx := context.Background()

	t.Run("success on first attempt", func(t *testing.T) {
		attempts := 0
		err := Do(ctx, fastConfig(3), func() error {
			attempts++
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("succeeds after retries", func(t *testing.T) {
		attempts := 0
		err := Do(ctx, fastConfig(3), func() error {
			attempts++
			if attempts < 3 {
				return errors.New("temporary error")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("returns last error after max attempts", func(t *testing.T) {
		attempts := 0
		err := Do(ctx, fastConfig(3), func() error {
			attempts++
			return errors.New("persistent error")
		})
		assert.EqualError(t, err, "persistent error")
		assert.Equal(t, 3, attempts)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		cfg := fastConfig(5)
		cfg.RetryableErrors = []string{"connection refused"}

		attempts := 0
		err := Do(ctx, cfg, func() error {
			attempts++
			return errors.New("password authentication failed")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries matching error case-insensitively", func(t *testing.T) {
		cfg := fastConfig(3)
		cfg.RetryableErrors = []string{"connection refused"}

		attempts := 0
		err := Do(ctx, cfg, func() error {
			attempts++
			if attempts == 1 {
				return errors.New("dial: Connection Refused")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, attempts)
	})

	t.Run("zero max attempts", func(t *testing.T) {
		err := Do(ctx, Config{}, func() error { return nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MaxAttempts")
	})

	t.Run("context cancelled while waiting", func(t *testing.T) {
		cfg := fastConfig(5)
		cfg.InitialDelay = time.Second
		cfg.MaxDelay = time.Second

		cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		err := Do(cctx, cfg, func() error { return errors.New("temporary error") })
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestDoWithResult(t *testing.T) {
	attempts := 0
	result, err := DoWithResult(context.Background(), fastConfig(3), func() (string, error) {
		attempts++
		if attempts < 2 {
			return "", errors.New("temporary error")
		}
		return "connected", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "connected", result)
	assert.Equal(t, 2, attempts)
}

func TestOnRetry(t *testing.T) {
	var seen []int
	cfg := fastConfig(3)
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		seen = append(seen, attempt)
		assert.EqualError(t, err, "temporary error")
		assert.Positive(t, delay)
	}

	err := Do(context.Background(), cfg, func() error { return errors.New("temporary error") })

	assert.Error(t, err)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestCalculateDelay(t *testing.T) {
	cfg := Config{InitialDelay: 100 * time.Millisecond, MaxDelay: time.Second, Multiplier: 2.0}

	assert.Equal(t, 100*time.Millisecond, calculateDelay(0, cfg))
	assert.Equal(t, 200*time.Millisecond, calculateDelay(1, cfg))
	assert.Equal(t, 400*time.Millisecond, calculateDelay(2, cfg))
	assert.Equal(t, time.Second, calculateDelay(10, cfg))
	assert.Equal(t, 100*time.Millisecond, calculateDelay(-1, cfg))
}

func TestAddJitter(t *testing.T) {
	base := time.Second
	for i := 0; i < 100; i++ {
		d := addJitter(base)
		assert.GreaterOrEqual(t, d, 900*time.Millisecond)
		assert.LessOrEqual(t, d, 1100*time.Millisecond)
	}
	assert.Equal(t, time.Duration(0), addJitter(0))
}

func TestIsRetryableError(t *testing.T) {
	assert.False(t, IsRetryableError(nil, DefaultConfig()))
	assert.True(t, IsRetryableError(errors.New("anything"), DefaultConfig()))

	pg := PostgresConfig()
	assert.True(t, IsRetryableError(errors.New("FATAL: the database system is starting up"), pg))
	assert.True(t, IsRetryableError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), pg))
	assert.False(t, IsRetryableError(errors.New("password authentication failed"), pg))

	rd := RedisConfig()
	assert.True(t, IsRetryableError(errors.New("LOADING Redis is loading the dataset in memory"), rd))
	assert.False(t, IsRetryableError(errors.New("WRONGPASS invalid username-password pair"), rd))
}

func TestPresets(t *testing.T) {
	assert.Equal(t, 5, PostgresConfig().MaxAttempts)
	assert.Contains(t, DefaultPostgresRetryableErrors(), "connection refused")

	rd := RedisConfig()
	assert.Equal(t, 4, rd.MaxAttempts)
	assert.Equal(t, 5*time.Second, rd.MaxDelay)
	assert.Contains(t, DefaultRedisRetryableErrors(), "i/o timeout")
}
