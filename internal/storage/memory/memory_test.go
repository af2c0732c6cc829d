package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/dutchpay/internal/ledger"
	"github.com/mmynk/dutchpay/internal/storage"
)

func TestMemoryStore(t *testing.T) {
	store := New(0)
	defer store.Close()

	ctx := context.Background()

	t.Run("CreateSession assigns an ID and an empty ledger", func(t *testing.T) {
		session, err := store.CreateSession(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, session.ID)
		assert.False(t, session.CreatedAt.IsZero())

		err = session.Do(func(l *ledger.Ledger) error {
			assert.Equal(t, ledger.StateSetup, l.State())
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("GetSession returns the same ledger", func(t *testing.T) {
		session, err := store.CreateSession(ctx)
		require.NoError(t, err)
		require.NoError(t, session.Do(func(l *ledger.Ledger) error {
			_, err := l.InitParticipants(2)
			return err
		}))

		got, err := store.GetSession(ctx, session.ID)
		require.NoError(t, err)
		require.NoError(t, got.Do(func(l *ledger.Ledger) error {
			assert.Equal(t, ledger.StateActive, l.State())
			return nil
		}))
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		a, err := store.CreateSession(ctx)
		require.NoError(t, err)
		b, err := store.CreateSession(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)

		require.NoError(t, a.Do(func(l *ledger.Ledger) error {
			_, err := l.InitParticipants(3)
			return err
		}))
		require.NoError(t, b.Do(func(l *ledger.Ledger) error {
			assert.Equal(t, ledger.StateSetup, l.State())
			return nil
		}))
	})

	t.Run("GetSession on unknown ID", func(t *testing.T) {
		_, err := store.GetSession(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrSessionNotFound)
	})

	t.Run("DeleteSession", func(t *testing.T) {
		session, err := store.CreateSession(ctx)
		require.NoError(t, err)
		require.NoError(t, store.DeleteSession(ctx, session.ID))

		_, err = store.GetSession(ctx, session.ID)
		assert.ErrorIs(t, err, storage.ErrSessionNotFound)
		assert.NoError(t, store.DeleteSession(ctx, session.ID))
	})
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	store := New(30 * time.Minute)

	var counts []int
	store.OnCountChange = func(n int) { counts = append(counts, n) }

	_, err := store.CreateSession(ctx)
	require.NoError(t, err)
	_, err = store.CreateSession(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, store.Sweep())
	assert.Equal(t, 2, store.Len())

	store.now = func() time.Time { return time.Now().Add(time.Hour) }
	assert.Equal(t, 2, store.Sweep())
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, []int{1, 2, 0}, counts)
}

func TestMemoryStore_SweepDisabled(t *testing.T) {
	store := New(0)
	_, err := store.CreateSession(context.Background())
	require.NoError(t, err)

	store.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	assert.Equal(t, 0, store.Sweep())
	assert.Equal(t, 1, store.Len())
}

func TestSession_DoSerializesAccess(t *testing.T) {
	store := New(0)
	session, err := store.CreateSession(context.Background())
	require.NoError(t, err)
	require.NoError(t, session.Do(func(l *ledger.Ledger) error {
		_, err := l.InitParticipants(2)
		return err
	}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = session.Do(func(l *ledger.Ledger) error {
				_, err := l.AddItem("Round", decimal.NewFromInt(1000), []string{"1", "2"})
				return err
			})
		}()
	}
	wg.Wait()

	require.NoError(t, session.Do(func(l *ledger.Ledger) error {
		assert.Len(t, l.Items(), 50)
		return nil
	}))
}
