package profile

import (
	"context"
	"errors"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisStoreContract(t *testing.T) {
	testStoreContract(t, func(t *testing.T) Store {
		_, client := setupRedis(t)
		return NewRedisStore(client, "userProfile")
	})
}

func TestRedisStoreWritesSingleKey(t *testing.T) {
	mr, client := setupRedis(t)
	store := NewRedisStore(client, "userProfile")

	if err := store.Save(context.Background(), adaProfile()); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := mr.Get("userProfile")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := `{"firstName":"Ada","lastName":"Lovelace","company":"","phone":"+15551234567","email":"ada@example.com"}`
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if ttl := mr.TTL("userProfile"); ttl != 0 {
		t.Fatalf("expected no expiry, got %v", ttl)
	}
	if keys := mr.Keys(); len(keys) != 1 {
		t.Fatalf("expected a single key, got %v", keys)
	}
}

func TestRedisStoreLoadsRecordWithoutCompany(t *testing.T) {
	mr, client := setupRedis(t)
	if err := mr.Set("userProfile", `{"firstName":"Ada","lastName":"Lovelace","phone":"1","email":"a@b.c"}`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	p, found, err := NewRedisStore(client, "userProfile").Load(context.Background())
	if err != nil || !found {
		t.Fatalf("expected record, found=%v err=%v", found, err)
	}
	if p.Company != "" || p.FirstName != "Ada" {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestRedisStoreServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client, "userProfile")
	mr.Close()

	if err := store.Save(context.Background(), adaProfile()); !errors.Is(err, ErrStore) {
		t.Fatalf("expected ErrStore on save, got %v", err)
	}
	if _, _, err := store.Load(context.Background()); !errors.Is(err, ErrStore) {
		t.Fatalf("expected ErrStore on load, got %v", err)
	}
}

func TestNewRedisClient(t *testing.T) {
	mr, _ := setupRedis(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = client.Close()

	if _, err := NewRedisClient(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty url")
	}
	if _, err := NewRedisClient(context.Background(), "http://nope"); err == nil {
		t.Fatal("expected error for invalid scheme")
	}
}
