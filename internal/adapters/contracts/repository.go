package contracts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/trebuchet-org/proxy-deploy/internal/domain"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/config"
	"github.com/trebuchet-org/proxy-deploy/internal/domain/models"
	"github.com/trebuchet-org/proxy-deploy/internal/usecase"
)

// maxSuggestions bounds the "did you mean" list
const maxSuggestions = 3

// ArtifactRepository resolves contracts from Foundry build artifacts
type ArtifactRepository struct {
	fs     afero.Fs
	outDir string
	log    *slog.Logger

	mu      sync.Mutex
	indexed bool
	byKey   map[string]*models.Contract   // key: "path:Name"
	byName  map[string][]*models.Contract // key: contract name
}

// NewArtifactRepository creates a repository reading <root>/<out> through fs
func NewArtifactRepository(fs afero.Fs, cfg *config.RuntimeConfig, log *slog.Logger) *ArtifactRepository {
	return &ArtifactRepository{
		fs:     fs,
		outDir: filepath.Join(cfg.ProjectRoot, cfg.OutDir()),
		log:    log.With("component", "ArtifactRepository"),
	}
}

// GetContract returns the contract named either "Name" or "path/to/File.sol:Name".
func (r *ArtifactRepository) GetContract(ctx context.Context, name string) (*models.Contract, error) {
	if err := r.ensureIndexed(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var contract *models.Contract
	if strings.Contains(name, ":") {
		contract = r.byKey[name]
	} else {
		matches := r.byName[name]
		if len(matches) > 1 {
			keys := lo.Map(matches, func(c *models.Contract, _ int) string { return c.String() })
			slices.Sort(keys)
			return nil, fmt.Errorf("contract %q is ambiguous, use one of: %s", name, strings.Join(keys, ", "))
		}
		if len(matches) == 1 {
			contract = matches[0]
		}
	}
	if contract == nil {
		return nil, domain.ContractNotFoundErr{Name: name, Suggestions: r.suggest(name)}
	}

	r.log.Debug("resolved contract", "name", name, "artifact", contract.ArtifactPath)
	return contract, nil
}

// ListContractNames returns every deployable contract name, sorted
func (r *ArtifactRepository) ListContractNames(ctx context.Context) ([]string, error) {
	if err := r.ensureIndexed(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	names := lo.Keys(r.byName)
	slices.Sort(names)
	return names, nil
}

func (r *ArtifactRepository) ensureIndexed() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexed {
		return nil
	}

	if exists, err := afero.DirExists(r.fs, r.outDir); err != nil || !exists {
		return fmt.Errorf("%w: artifact directory %s does not exist (run forge build or pass --build)",
			domain.ErrContractNotFound, r.outDir)
	}

	r.byKey = make(map[string]*models.Contract)
	r.byName = make(map[string][]*models.Contract)

	err := afero.Walk(r.fs, r.outDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" {
			return nil
		}
		r.indexArtifact(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts in %s: %w", r.outDir, err)
	}

	r.indexed = true
	r.log.Debug("indexed artifacts", "dir", r.outDir, "contracts", len(r.byKey))
	return nil
}

// indexArtifact records a deployable artifact; anything else is skipped
func (r *ArtifactRepository) indexArtifact(path string) {
	artifact, err := r.readArtifact(path)
	if err != nil {
		r.log.Debug("skipping artifact", "path", path, "error", err)
		return
	}

	if artifact.Bytecode.Object == "" || artifact.Bytecode.Object == "0x" {
		return
	}

	// There is a single compilation target per artifact
	var sourceName, contractName string
	for source, contract := range artifact.Metadata.Settings.CompilationTarget {
		sourceName, contractName = source, contract
	}
	if contractName == "" {
		return
	}

	contract := &models.Contract{
		Name:         contractName,
		Path:         sourceName,
		ArtifactPath: path,
		Artifact:     artifact,
	}
	key := contract.String()
	if _, exists := r.byKey[key]; exists {
		return
	}
	r.byKey[key] = contract
	r.byName[contractName] = append(r.byName[contractName], contract)
}

func (r *ArtifactRepository) readArtifact(path string) (*models.Artifact, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}
	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", path, err)
	}
	return &artifact, nil
}

// suggest returns the closest known contract names
func (r *ArtifactRepository) suggest(name string) []string {
	short := name
	if idx := strings.LastIndex(name, ":"); idx != -1 {
		short = name[idx+1:]
	}

	names := lo.Keys(r.byName)
	slices.Sort(names)
	matches := fuzzy.Find(short, names)
	suggestions := lo.Map(matches, func(m fuzzy.Match, _ int) string { return m.Str })

	// Case-insensitive containment catches typos fuzzy ordering misses
	for _, candidate := range names {
		if strings.EqualFold(candidate, short) || strings.Contains(strings.ToLower(candidate), strings.ToLower(short)) {
			suggestions = append(suggestions, candidate)
		}
	}
	suggestions = lo.Uniq(suggestions)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

var _ usecase.ContractRepository = (*ArtifactRepository)(nil)
