package geocode

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeResolver struct {
	place     *Place
	err       error
	callCount atomic.Int32
}

func (f *fakeResolver) Resolve(ctx context.Context, query string) (*Place, error) {
	f.callCount.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.place, nil
}

func TestService_Resolve_CachesResults(t *testing.T) {
	resolver := &fakeResolver{
		place: &Place{Label: "Vienna, Austria", CountryCode: "AT", Lat: 48.20817, Lon: 16.37208},
	}

	service := NewService(ServiceConfig{
		Resolver: resolver,
		Logger:   zerolog.Nop(),
	})

	place, err := service.Resolve(context.Background(), "Vienna")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if place.CountryCode != "AT" {
		t.Errorf("expected country AT, got %s", place.CountryCode)
	}

	// Second lookup should come from cache
	_, err = service.Resolve(context.Background(), "Vienna")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolver.callCount.Load() != 1 {
		t.Errorf("expected 1 resolver call, got %d", resolver.callCount.Load())
	}
}

func TestService_Resolve_NormalizesQueries(t *testing.T) {
	resolver := &fakeResolver{
		place: &Place{Label: "Vienna, Austria", CountryCode: "AT"},
	}

	service := NewService(ServiceConfig{
		Resolver: resolver,
		Logger:   zerolog.Nop(),
	})

	queries := []string{"Vienna", "  vienna ", "VIENNA"}
	for _, q := range queries {
		if _, err := service.Resolve(context.Background(), q); err != nil {
			t.Fatalf("unexpected error for %q: %v", q, err)
		}
	}

	if resolver.callCount.Load() != 1 {
		t.Errorf("expected trivially different spellings to share a cache entry, got %d resolver calls", resolver.callCount.Load())
	}
}

func TestService_Resolve_ProviderError(t *testing.T) {
	resolver := &fakeResolver{
		err: ErrNotFound,
	}

	service := NewService(ServiceConfig{
		Resolver: resolver,
		Logger:   zerolog.Nop(),
	})

	_, err := service.Resolve(context.Background(), "Nowhereville")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (*Place, bool, error) {
	return nil, false, errors.New("store down")
}

func (failingStore) Set(context.Context, string, *Place, time.Duration) error {
	return errors.New("store down")
}

func TestService_Resolve_StoreFailureDoesNotFailLookup(t *testing.T) {
	resolver := &fakeResolver{
		place: &Place{Label: "Vienna, Austria", CountryCode: "AT"},
	}

	service := NewService(ServiceConfig{
		Resolver: resolver,
		Store:    failingStore{},
		Logger:   zerolog.Nop(),
	})

	place, err := service.Resolve(context.Background(), "Vienna")
	if err != nil {
		t.Fatalf("expected lookup to succeed despite store failure, got %v", err)
	}
	if place.CountryCode != "AT" {
		t.Errorf("expected country AT, got %s", place.CountryCode)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	place := &Place{Label: "Graz, Austria", CountryCode: "AT"}
	if err := store.Set(ctx, "k", place, 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, found, _ := store.Get(ctx, "k"); !found {
		t.Fatal("expected entry before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if _, found, _ := store.Get(ctx, "k"); found {
		t.Error("expected entry to expire")
	}

	store.mu.RLock()
	_, still := store.entries["k"]
	store.mu.RUnlock()
	if still {
		t.Error("expected expired entry to be evicted on read")
	}
}
