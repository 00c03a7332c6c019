package slugcache

import (
	"context"
	"testing"
	"time"

	"docvoice/internal/domain/docmodel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type fakeStore struct {
	docmodel.Store
	surfaces map[string]docmodel.ShareSurface
	reads    int
}

func (f *fakeStore) GetShareSurfaceBySlug(ctx context.Context, slug string) (docmodel.ShareSurface, bool, error) {
	f.reads++
	s, ok := f.surfaces[slug]
	return s, ok, nil
}

func newTestCache(t *testing.T, store *fakeStore) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(client, store, 10*time.Minute), mr
}

func TestCacheReadThrough(t *testing.T) {
	store := &fakeStore{surfaces: map[string]docmodel.ShareSurface{
		"handbook-4f2a": {DocumentID: "doc-1", LiveVersionID: "ver-1", PageSlug: "handbook-4f2a"},
	}}
	cache, _ := newTestCache(t, store)
	ctx := context.Background()

	surface, found, err := cache.GetShareSurfaceBySlug(ctx, "handbook-4f2a")
	if err != nil {
		t.Fatalf("GetShareSurfaceBySlug failed: %v", err)
	}
	if !found || surface.LiveVersionID != "ver-1" {
		t.Fatalf("unexpected first read: found=%v surface=%+v", found, surface)
	}
	if store.reads != 1 {
		t.Fatalf("expected 1 store read, got %d", store.reads)
	}

	// Second read must come from redis, not the store.
	surface, found, err = cache.GetShareSurfaceBySlug(ctx, "handbook-4f2a")
	if err != nil || !found {
		t.Fatalf("second read failed: found=%v err=%v", found, err)
	}
	if surface.DocumentID != "doc-1" {
		t.Errorf("cached surface mismatch: %+v", surface)
	}
	if store.reads != 1 {
		t.Errorf("expected cached hit, store reads = %d", store.reads)
	}
}

func TestCacheMissDoesNotCache(t *testing.T) {
	store := &fakeStore{surfaces: map[string]docmodel.ShareSurface{}}
	cache, mr := newTestCache(t, store)
	ctx := context.Background()

	_, found, err := cache.GetShareSurfaceBySlug(ctx, "ghost")
	if err != nil {
		t.Fatalf("GetShareSurfaceBySlug failed: %v", err)
	}
	if found {
		t.Fatal("expected miss for unknown slug")
	}
	if mr.Exists(keyPrefix + "ghost") {
		t.Error("miss should not be cached")
	}
}

func TestInvalidateForcesStoreRead(t *testing.T) {
	store := &fakeStore{surfaces: map[string]docmodel.ShareSurface{
		"notes-9c1d": {DocumentID: "doc-2", LiveVersionID: "ver-1", PageSlug: "notes-9c1d"},
	}}
	cache, mr := newTestCache(t, store)
	ctx := context.Background()

	if _, _, err := cache.GetShareSurfaceBySlug(ctx, "notes-9c1d"); err != nil {
		t.Fatalf("prime read failed: %v", err)
	}
	if !mr.Exists(keyPrefix + "notes-9c1d") {
		t.Fatal("expected cached entry after first read")
	}

	store.surfaces["notes-9c1d"] = docmodel.ShareSurface{DocumentID: "doc-2", LiveVersionID: "ver-2", PageSlug: "notes-9c1d"}
	cache.Invalidate(ctx, "notes-9c1d")

	surface, found, err := cache.GetShareSurfaceBySlug(ctx, "notes-9c1d")
	if err != nil || !found {
		t.Fatalf("read after invalidate failed: found=%v err=%v", found, err)
	}
	if surface.LiveVersionID != "ver-2" {
		t.Errorf("expected fresh live version, got %s", surface.LiveVersionID)
	}
	if store.reads != 2 {
		t.Errorf("expected 2 store reads, got %d", store.reads)
	}
}

func TestCacheDegradesWhenRedisDown(t *testing.T) {
	store := &fakeStore{surfaces: map[string]docmodel.ShareSurface{
		"live-doc": {DocumentID: "doc-3", PageSlug: "live-doc"},
	}}
	cache, mr := newTestCache(t, store)
	mr.Close()

	surface, found, err := cache.GetShareSurfaceBySlug(context.Background(), "live-doc")
	if err != nil {
		t.Fatalf("expected degraded read to succeed, got %v", err)
	}
	if !found || surface.DocumentID != "doc-3" {
		t.Errorf("unexpected degraded read: found=%v surface=%+v", found, surface)
	}
}
