package audit_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultkit/vaultkit/pkg/audit"
)

func TestReader(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	storage := audit.NewMemoryStorage()
	log := audit.NewLogger(storage)

	log.Log(ctx, "alfred@wayne.example", audit.ActionRegister, "")
	log.Log(ctx, "bruce@wayne.example", audit.ActionPasswordVerified, "")
	log.Log(ctx, "bruce@wayne.example", audit.ActionTOTPVerified, "")
	log.Log(ctx, "bruce@wayne.example", audit.ActionLogout, "")

	reader := audit.NewReader(storage)

	t.Run("by actor newest first", func(t *testing.T) {
		events, err := reader.ByActor(ctx, "bruce@wayne.example", 10)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, audit.ActionLogout, events[0].Action)
		assert.Equal(t, audit.ActionTOTPVerified, events[1].Action)
		assert.Equal(t, audit.ActionPasswordVerified, events[2].Action)
	})

	t.Run("by actor respects limit", func(t *testing.T) {
		events, err := reader.ByActor(ctx, "bruce@wayne.example", 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, audit.ActionLogout, events[0].Action)
	})

	t.Run("all newest first", func(t *testing.T) {
		events, err := reader.All(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, audit.ActionLogout, events[0].Action)
		assert.Equal(t, audit.ActionRegister, events[3].Action)
	})

	t.Run("unknown actor yields nothing", func(t *testing.T) {
		events, err := reader.ByActor(ctx, "nobody@wayne.example", 10)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("nil storage panics", func(t *testing.T) {
		assert.Panics(t, func() { audit.NewReader(nil) })
	})
}

// Appends may be concurrent across actors; per-actor order must still follow
// append order.
func TestMemoryStorageConcurrentAppends(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	storage := audit.NewMemoryStorage()
	log := audit.NewLogger(storage)

	const actors = 8
	const eventsPerActor = 25

	var wg sync.WaitGroup
	for a := range actors {
		wg.Add(1)
		go func() {
			defer wg.Done()
			actor := fmt.Sprintf("user%d@wayne.example", a)
			for i := range eventsPerActor {
				log.Log(ctx, actor, audit.ActionTOTPFailed, fmt.Sprintf("attempt %d", i))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, actors*eventsPerActor, storage.Len())

	reader := audit.NewReader(storage)
	for a := range actors {
		actor := fmt.Sprintf("user%d@wayne.example", a)
		events, err := reader.ByActor(ctx, actor, eventsPerActor)
		require.NoError(t, err)
		require.Len(t, events, eventsPerActor)
		// Newest first: metadata counts down from the last append.
		for i, event := range events {
			assert.Equal(t, fmt.Sprintf("attempt %d", eventsPerActor-1-i), event.Metadata)
		}
	}
}
