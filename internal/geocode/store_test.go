package geocode

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	place := &Place{
		Label:       "Zagreb, Croatia",
		CountryCode: "HR",
		Lat:         45.81444,
		Lon:         15.97798,
		Confidence:  0.95,
	}

	key := cacheKey("zagreb")
	if err := store.Set(ctx, key, place, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, found, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}
	if got.CountryCode != "HR" || got.Lat != 45.81444 {
		t.Errorf("unexpected place: %+v", got)
	}
}

func TestRedisStore_Miss(t *testing.T) {
	store, _ := newTestRedisStore(t)

	_, found, err := store.Get(context.Background(), cacheKey("never-set"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected cache miss")
	}
}

func TestRedisStore_TTL(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	place := &Place{Label: "Ljubljana, Slovenia", CountryCode: "SI"}
	key := cacheKey("ljubljana")

	if err := store.Set(ctx, key, place, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Advance the fake clock past the TTL
	mr.FastForward(2 * time.Minute)

	_, found, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected entry to expire after TTL")
	}
}
