package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetSet(t *testing.T) {
	t.Parallel()

	t.Run("missing key is absent", func(t *testing.T) {
		t.Parallel()

		s := NewStore[string]()

		_, ok := s.Get("missing")
		assert.False(t, ok)
	})

	t.Run("stored payload is returned before expiry", func(t *testing.T) {
		t.Parallel()

		s := NewStore[string]()
		s.Set("key", "payload", time.Minute)

		v, ok := s.Get("key")

		require.True(t, ok)
		assert.Equal(t, "payload", v)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		s := NewStore[int]()
		s.Set("a", 1, time.Minute)
		s.Set("b", 2, time.Minute)

		a, ok := s.Get("a")
		require.True(t, ok)
		assert.Equal(t, 1, a)

		b, ok := s.Get("b")
		require.True(t, ok)
		assert.Equal(t, 2, b)
	})

	t.Run("writing an existing key replaces the payload", func(t *testing.T) {
		t.Parallel()

		s := NewStore[string]()
		s.Set("key", "old", time.Minute)
		s.Set("key", "new", time.Minute)

		v, ok := s.Get("key")

		require.True(t, ok)
		assert.Equal(t, "new", v)
		assert.Equal(t, 1, s.Len())
	})
}

func TestStore_Expiry(t *testing.T) {
	t.Parallel()

	t.Run("expired entry is absent and evicted", func(t *testing.T) {
		t.Parallel()

		var (
			current = time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)

			s = NewStore[string]()
		)

		s.now = func() time.Time {
			return current
		}

		s.Set("key", "payload", time.Minute)

		// Still live right at the expiry instant
		current = current.Add(time.Minute)

		v, ok := s.Get("key")
		require.True(t, ok)
		assert.Equal(t, "payload", v)

		// One tick past expiry the entry behaves as absent
		current = current.Add(time.Nanosecond)

		_, ok = s.Get("key")
		assert.False(t, ok)

		// The read evicted the stale entry
		assert.Equal(t, 0, s.Len())
	})

	t.Run("refreshing an expired key revives it", func(t *testing.T) {
		t.Parallel()

		var (
			current = time.Date(2026, time.January, 5, 12, 0, 0, 0, time.UTC)

			s = NewStore[string]()
		)

		s.now = func() time.Time {
			return current
		}

		s.Set("key", "stale", time.Minute)

		current = current.Add(2 * time.Minute)

		s.Set("key", "fresh", time.Minute)

		v, ok := s.Get("key")

		require.True(t, ok)
		assert.Equal(t, "fresh", v)
	})
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	s := NewStore[string]()

	s.Set("a", "1", time.Minute)
	s.Set("b", "2", time.Minute)

	require.Equal(t, 2, s.Len())

	s.Clear()

	assert.Equal(t, 0, s.Len())

	_, ok := s.Get("a")
	assert.False(t, ok)
}
