// Package identity manages the persisted anonymous user id attached to
// API requests for session tracking.
package identity

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tripdocs/tripdocs/internal/logger"
)

const stateFileName = "user_id"

const randomSuffixLen = 9

const randomAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	once   sync.Once
	cached string
)

// UserID returns the persisted user id, generating and storing one on
// first use. It returns the empty string when persistent storage is
// unavailable; requests then go out anonymous and the server treats the
// interaction as session-only.
func UserID(path string) string {
	once.Do(func() {
		cached = loadOrCreate(path)
	})
	return cached
}

// Generate returns a fresh user id of the form user_<unixms>_<random>.
func Generate() string {
	suffix := make([]byte, randomSuffixLen)
	for i := range suffix {
		suffix[i] = randomAlphabet[rand.Intn(len(randomAlphabet))]
	}
	return fmt.Sprintf("user_%d_%s", time.Now().UnixMilli(), suffix)
}

func loadOrCreate(path string) string {
	path, err := statePath(path)
	if err != nil {
		logger.Warn("user id storage unavailable, using anonymous session", "error", err)
		return ""
	}

	if data, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}

	id := Generate()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Warn("user id storage unavailable, using anonymous session", "error", err)
		return ""
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		logger.Warn("user id storage unavailable, using anonymous session", "error", err)
		return ""
	}
	return id
}

func statePath(override string) (string, error) {
	if strings.TrimSpace(override) != "" {
		return override, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tripdocs", stateFileName), nil
}

// reset clears the cached id. Test hook only.
func reset() {
	once = sync.Once{}
	cached = ""
}
