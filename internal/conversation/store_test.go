package conversation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "42")
	assert.ErrorIs(t, err, ErrNotFound)

	session := Session{UserID: "42", Stage: StageAwaitingName, Phone: "+70000000000"}
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, session, got)

	require.NoError(t, store.Delete(ctx, "42"))
	_, err = store.Get(ctx, "42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreConcurrentUsers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n%26))
			_ = store.Save(ctx, Session{UserID: id, Stage: StageAwaitingPhone})
			_, _ = store.Get(ctx, id)
		}(i)
	}
	wg.Wait()
}
