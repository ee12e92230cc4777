package ranking

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestMemoryRepoTally(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryRepo())

	assert.NoError(t, ledger.RecordWin(ctx, []string{"ana", "caio"}))
	assert.NoError(t, ledger.RecordWin(ctx, []string{"ana", "caio"}))
	assert.NoError(t, ledger.RecordWin(ctx, []string{"bia", "duda"}))

	wins, err := ledger.Wins(ctx, "ana")
	assert.NoError(t, err)
	assert.EqualValues(t, 2, wins)

	wins, err = ledger.Wins(ctx, "nobody")
	assert.NoError(t, err)
	assert.EqualValues(t, 0, wins)

	top, err := ledger.Top(ctx, 2)
	assert.NoError(t, err)
	assert.Len(t, top, 2)
	assert.EqualValues(t, 2, top[0].Wins)
	assert.EqualValues(t, 2, top[1].Wins)
}

// Matches finish concurrently; the ledger must not lose increments.
func TestMemoryRepoConcurrentWins(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(NewMemoryRepo())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = ledger.RecordWin(ctx, []string{"ana"})
		}()
	}
	wg.Wait()

	wins, err := ledger.Wins(ctx, "ana")
	assert.NoError(t, err)
	assert.EqualValues(t, 50, wins)
}

func TestRedisRepoTally(t *testing.T) {
	mr, err := miniredis.Run()
	assert.NoError(t, err)
	defer mr.Close()

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ledger := NewLedger(NewRedisRepo(rdb))

	assert.NoError(t, ledger.RecordWin(ctx, []string{"ana", "caio"}))
	assert.NoError(t, ledger.RecordWin(ctx, []string{"ana"}))

	wins, err := ledger.Wins(ctx, "ana")
	assert.NoError(t, err)
	assert.EqualValues(t, 2, wins)

	wins, err = ledger.Wins(ctx, "nobody")
	assert.NoError(t, err)
	assert.EqualValues(t, 0, wins)

	top, err := ledger.Top(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, top, 2)
	assert.Equal(t, "ana", top[0].Name)
	assert.EqualValues(t, 2, top[0].Wins)
	assert.Equal(t, "caio", top[1].Name)
}
