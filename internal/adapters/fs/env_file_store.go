package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
	"github.com/trebuchet-org/proxy-deploy/internal/usecase"
)

// EnvFileStore persists deployment records as .<network>.env files in the project root
type EnvFileStore struct {
	fs   afero.Fs
	root string
	log  *slog.Logger
}

// NewEnvFileStore creates a new EnvFileStore
func NewEnvFileStore(fs afero.Fs, cfg *config.RuntimeConfig, log *slog.Logger) *EnvFileStore {
	return &EnvFileStore{
		fs:   fs,
		root: cfg.ProjectRoot,
		log:  log.With("component", "EnvFileStore"),
	}
}

// Path returns the record file for the target
func (s *EnvFileStore) Path(target domain.DeploymentTarget) string {
	return filepath.Join(s.root, target.RecordFileName())
}

// Read returns the record held by the target's env file, or nil if there is none
func (s *EnvFileStore) Read(ctx context.Context, target domain.DeploymentTarget) (*domain.DeploymentRecord, error) {
	values, err := s.parse(target)
	if err != nil || values == nil {
		return nil, err
	}
	value, ok := values[domain.RecordKey]
	if !ok {
		return nil, nil
	}
	return &domain.DeploymentRecord{Key: domain.RecordKey, Value: value}, nil
}

// Write replaces the target's env file with the single record line
func (s *EnvFileStore) Write(ctx context.Context, target domain.DeploymentTarget, record domain.DeploymentRecord) (string, error) {
	path := s.Path(target)
	if err := afero.WriteFile(s.fs, path, []byte(record.Line()), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.log.Debug("wrote deployment record", "path", path, "key", record.Key, "value", record.Value)
	return path, nil
}

// Reload sets every key of the target's env file in the process environment.
// Values from the file replace existing ones.
func (s *EnvFileStore) Reload(ctx context.Context, target domain.DeploymentTarget) error {
	values, err := s.parse(target)
	if err != nil {
		return err
	}
	if values == nil {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, s.Path(target))
	}
	for key, value := range values {
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}

// parse returns nil values when the file does not exist
func (s *EnvFileStore) parse(target domain.DeploymentTarget) (map[string]string, error) {
	path := s.Path(target)
	file, err := s.fs.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	values, err := godotenv.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return values, nil
}

var _ usecase.DeploymentRecordStore = (*EnvFileStore)(nil)
