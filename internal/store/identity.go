package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// EnsureLearnerID returns the stable per-install learner identifier stored
// next to the database, generating one on first run. The engine treats it as
// an opaque cache-partitioning and feedback-attribution key.
func EnsureLearnerID(dbPath string) (string, error) {
	path := filepath.Join(filepath.Dir(dbPath), "learner-id")

	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read learner id: %w", err)
	}

	id := uuid.NewString()
	if err := EnsureDir(path); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write learner id: %w", err)
	}
	return id, nil
}
