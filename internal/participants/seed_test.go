package participants

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "participants.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	return path
}

func TestSeedImportsParticipants(t *testing.T) {
	store := newMemStore()
	path := writeSeedFile(t, `{"participants": [
		{"token": "tok-a", "label": "Alice"},
		{"token": "tok-b", "label": "Bob"}
	]}`)

	if err := Seed(context.Background(), store, path, zap.NewNop()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	n, _ := store.CountAll(context.Background())
	if n != 2 {
		t.Errorf("expected 2 participants, got %d", n)
	}
	p, err := store.Get(context.Background(), "tok-a")
	if err != nil || p.Label != "Alice" {
		t.Errorf("seeded participant wrong: %+v, %v", p, err)
	}
}

func TestSeedIdempotent(t *testing.T) {
	store := newMemStore()
	path := writeSeedFile(t, `{"participants": [{"token": "tok-a", "label": "Alice"}]}`)

	if err := Seed(context.Background(), store, path, zap.NewNop()); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	// Second run sees a non-empty table and must not touch anything.
	if _, err := store.UpdateLabel(context.Background(), "tok-a", "Renamed"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if err := Seed(context.Background(), store, path, zap.NewNop()); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	n, _ := store.CountAll(context.Background())
	if n != 1 {
		t.Errorf("expected 1 participant after re-seed, got %d", n)
	}
	p, _ := store.Get(context.Background(), "tok-a")
	if p.Label != "Renamed" {
		t.Errorf("re-seed altered an existing row: %+v", p)
	}
}

func TestSeedSkipsWhenTableNotEmpty(t *testing.T) {
	store := newMemStore()
	if _, err := store.Create(context.Background(), "Existing"); err != nil {
		t.Fatal(err)
	}
	path := writeSeedFile(t, `{"participants": [{"token": "tok-a", "label": "Alice"}]}`)

	if err := Seed(context.Background(), store, path, zap.NewNop()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if _, err := store.Get(context.Background(), "tok-a"); err == nil {
		t.Error("seed ran against a non-empty table")
	}
}

func TestSeedMissingFileIsNoop(t *testing.T) {
	store := newMemStore()
	path := filepath.Join(t.TempDir(), "absent.json")
	if err := Seed(context.Background(), store, path, zap.NewNop()); err != nil {
		t.Errorf("Seed with absent file: %v", err)
	}
	n, _ := store.CountAll(context.Background())
	if n != 0 {
		t.Errorf("expected no participants, got %d", n)
	}
}

func TestSeedMalformedFile(t *testing.T) {
	store := newMemStore()
	path := writeSeedFile(t, `{"participants": [`)
	if err := Seed(context.Background(), store, path, zap.NewNop()); err == nil {
		t.Error("expected error for malformed seed file")
	}
}
