package participants

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// SeedStore is the persistence the seeder needs.
type SeedStore interface {
	CountAll(ctx context.Context) (int, error)
	CreateWithToken(ctx context.Context, token, label string) (bool, error)
}

var _ SeedStore = (*Repository)(nil)

type seedFile struct {
	Participants []seedEntry `json:"participants"`
}

type seedEntry struct {
	Token string `json:"token"`
	Label string `json:"label"`
}

// Seed imports participants from the seed document at path on first boot.
// It is a no-op when the participants table already has rows or the file
// is absent, and skips tokens that already exist, so re-running it never
// duplicates or alters anything.
func Seed(ctx context.Context, store SeedStore, path string, logger *zap.Logger) error {
	if path == "" {
		return nil
	}
	count, err := store.CountAll(ctx)
	if err != nil {
		return fmt.Errorf("count participants: %w", err)
	}
	if count > 0 {
		return nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read seed file %s: %w", path, err)
	}

	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file %s: %w", path, err)
	}

	inserted := 0
	for _, e := range seed.Participants {
		if e.Token == "" {
			logger.Warn("seed entry without token skipped", zap.String("label", e.Label))
			continue
		}
		ok, err := store.CreateWithToken(ctx, e.Token, e.Label)
		if err != nil {
			return fmt.Errorf("seed participant %s: %w", e.Token, err)
		}
		if ok {
			inserted++
		}
	}
	logger.Info("participants seeded", zap.Int("inserted", inserted), zap.String("path", path))
	return nil
}
