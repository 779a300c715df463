package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/catalog-console/internal/domain/notice"
	"github.com/target/catalog-console/internal/testutil"
)

func TestFlashStore_PushAndPop(t *testing.T) {
	client, _ := testutil.SetupTestRedis(t)
	store := NewFlashStore(FlashStoreOptions{Client: client})
	ctx := context.Background()

	require.NoError(t, store.Push(ctx, "abc", notice.Info("See you later", "You log out from this account.")))
	require.NoError(t, store.Push(ctx, "abc", notice.Success("Updated")))

	got, err := store.Pop(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "See you later", got[0].Title)
	assert.Equal(t, "You log out from this account.", got[0].Description)
	assert.Equal(t, notice.KindSuccess, got[1].Kind)

	again, err := store.Pop(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, again, "pop drains the queue")
}

func TestFlashStore_PopUnknown(t *testing.T) {
	client, _ := testutil.SetupTestRedis(t)
	store := NewFlashStore(FlashStoreOptions{Client: client})

	got, err := store.Pop(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = store.Pop(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFlashStore_PushRequiresID(t *testing.T) {
	client, _ := testutil.SetupTestRedis(t)
	store := NewFlashStore(FlashStoreOptions{Client: client})

	require.Error(t, store.Push(context.Background(), "", notice.Success("Updated")))
}

func TestFlashStore_Expires(t *testing.T) {
	client, mini := testutil.SetupTestRedis(t)
	store := NewFlashStore(FlashStoreOptions{Client: client, Prefix: "test:flash:", TTL: 30 * time.Second})
	ctx := context.Background()

	require.NoError(t, store.Push(ctx, "abc", notice.Success("Updated")))
	assert.True(t, mini.Exists("test:flash:abc"))

	mini.FastForward(31 * time.Second)

	got, err := store.Pop(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, got)
}
