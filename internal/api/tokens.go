package api

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/viper"
)

// Fixed keys under which the token pair is persisted.
const (
	keyAccessToken  = "auth.access_token"
	keyRefreshToken = "auth.refresh_token"
)

// TokenStore holds the current token pair. The transport reads it on every
// request and clears it on 401; SetTokens on the transport is the only
// external writer.
type TokenStore interface {
	Access() string
	Refresh() string
	Set(access, refresh string) error
	Clear() error
}

// MemoryTokenStore keeps tokens for the lifetime of the process.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// NewMemoryTokenStore returns an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *MemoryTokenStore) Refresh() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *MemoryTokenStore) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	return s.Set("", "")
}

// FileTokenStore persists the token pair in a YAML config file so a CLI
// session survives process restarts.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
	v    *viper.Viper
}

// NewFileTokenStore loads (or prepares) the token file at path. A missing
// file is not an error; the store starts empty.
func NewFileTokenStore(path string) (*FileTokenStore, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, err
		}
	}
	return &FileTokenStore{path: path, v: v}, nil
}

// DefaultTokenPath returns ~/.sisexpo/credentials.yaml.
func DefaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sisexpo-credentials.yaml"
	}
	return filepath.Join(home, ".sisexpo", "credentials.yaml")
}

func (s *FileTokenStore) Access() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(keyAccessToken)
}

func (s *FileTokenStore) Refresh() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetString(keyRefreshToken)
}

func (s *FileTokenStore) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(keyAccessToken, access)
	s.v.Set(keyRefreshToken, refresh)
	return s.write()
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(keyAccessToken, "")
	s.v.Set(keyRefreshToken, "")
	return s.write()
}

func (s *FileTokenStore) write() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return s.v.WriteConfigAs(s.path)
}

// tokenExpired reports whether the access token carries an exp claim in the
// past. The signature is not verified; only the server can do that. Tokens
// that do not parse are attached as-is and left for the server to reject.
func tokenExpired(token string) bool {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
