package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hormonya/hormonya/internal/model"
)

// Identity is the signed-in user as cached on the client.
type Identity struct {
	Email  string   `json:"email"`
	Name   *string  `json:"name,omitempty"`
	Age    *int     `json:"age,omitempty"`
	Gender *string  `json:"gender,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	BMI    *float64 `json:"bmi,omitempty"`
	Token  string   `json:"token,omitempty"`
}

// IdentityFromUser builds an Identity from a server user and session token.
func IdentityFromUser(u *model.User, token string) *Identity {
	return &Identity{
		Email:  u.Email,
		Name:   u.Name,
		Age:    u.Age,
		Gender: u.Gender,
		Height: u.Height,
		Weight: u.Weight,
		BMI:    u.BMI,
		Token:  token,
	}
}

// DisplayName returns the name to greet the user with.
func (i *Identity) DisplayName() string {
	if i.Name != nil && *i.Name != "" {
		return *i.Name
	}
	return "User"
}

// Store persists the cached identity.
// Load returns (nil, nil) when nothing is cached.
type Store interface {
	Load() (*Identity, error)
	Save(id *Identity) error
	Clear() error
}

// FileStore keeps the identity in a JSON file readable only by the owner.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore at path. The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/hormonya/session.json or its
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "hormonya", "session.json"), nil
}

// Path returns the file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load implements Store. A corrupt file is treated as an error, not as
// signed out, so it is never silently overwritten.
func (s *FileStore) Load() (*Identity, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read identity: %w", err)
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("decode identity %s: %w", s.path, err)
	}
	if id.Email == "" {
		return nil, nil
	}
	return &id, nil
}

// Save implements Store. The file is replaced atomically.
func (s *FileStore) Save(id *Identity) error {
	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create identity dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write identity: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close identity: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("chmod identity: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace identity: %w", err)
	}
	return nil
}

// Clear implements Store. Clearing an absent file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove identity: %w", err)
	}
	return nil
}
