package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/config"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// artifactFile covers both the hardhat layout ({contractName, abi, bytecode: "0x.."})
// and the foundry layout ({abi, bytecode: {object: "0x.."}, metadata})
type artifactFile struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
	Metadata     *struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

// Repository discovers and indexes compiled artifacts below a directory
type Repository struct {
	dir string
	log *slog.Logger

	mu       sync.RWMutex
	indexed  bool
	indexErr error
	byName   map[string][]*models.Artifact
	bySource map[string]*models.Artifact // key: "source:ContractName"
}

// NewRepository creates a new artifact repository for the configured artifacts dir
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	return NewRepositoryForDir(cfg.ArtifactsDir, log)
}

// NewRepositoryForDir creates a new artifact repository reading from dir
func NewRepositoryForDir(dir string, log *slog.Logger) *Repository {
	return &Repository{
		dir: dir,
		log: log.With("component", "ArtifactRepository"),
	}
}

// Index walks the artifacts dir once
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return r.indexErr
	}
	r.indexed = true
	r.byName = make(map[string][]*models.Artifact)
	r.bySource = make(map[string]*models.Artifact)

	if _, err := os.Stat(r.dir); os.IsNotExist(err) {
		r.indexErr = fmt.Errorf("%w: artifacts directory %s does not exist, compile the contracts first", domain.ErrArtifactNotFound, r.dir)
		return r.indexErr
	}

	r.indexErr = filepath.Walk(r.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		return r.processArtifact(path)
	})
	return r.indexErr
}

// processArtifact processes a single artifact file, skipping anything that is
// not a deployable contract
func (r *Repository) processArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file artifactFile
	if err := json.Unmarshal(data, &file); err != nil || len(file.ABI) == 0 {
		return nil
	}

	name, source := file.ContractName, file.SourceName
	if file.Metadata != nil {
		for s, c := range file.Metadata.Settings.CompilationTarget {
			source, name = s, c
			break // There should only be one entry
		}
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".json")
	}

	bytecode, err := decodeBytecode(file.Bytecode)
	if err != nil {
		r.log.Debug("skipping artifact", "path", path, "reason", err)
		return nil
	}
	if len(bytecode) == 0 {
		return nil // interface or abstract contract
	}

	parsed, err := abi.JSON(bytes.NewReader(file.ABI))
	if err != nil {
		return fmt.Errorf("invalid ABI in %s: %w", path, err)
	}

	artifact := &models.Artifact{
		Name:     name,
		Path:     path,
		ABI:      parsed,
		Bytecode: bytecode,
	}
	r.log.Debug("indexed artifact", "name", name, "path", path)

	r.byName[name] = append(r.byName[name], artifact)
	if source != "" {
		r.bySource[source+":"+name] = artifact
	}
	return nil
}

func decodeBytecode(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var hex string
	if err := json.Unmarshal(raw, &hex); err != nil {
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("unrecognized bytecode format")
		}
		hex = obj.Object
	}

	if hex == "" || hex == "0x" {
		return nil, nil
	}
	if strings.Contains(hex, "__") {
		return nil, fmt.Errorf("bytecode has unlinked libraries")
	}
	if !strings.HasPrefix(hex, "0x") {
		hex = "0x" + hex
	}
	return hexutil.Decode(hex)
}

// GetArtifact looks up an artifact by contract name or "source:ContractName"
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if artifact, ok := r.bySource[name]; ok {
		return artifact, nil
	}

	matches := uniqueByBytecode(r.byName[name])
	switch len(matches) {
	case 0:
		err := fmt.Errorf("%w: no compiled contract named %s in %s", domain.ErrArtifactNotFound, name, r.dir)
		if suggestions := r.suggest(name); len(suggestions) > 0 {
			err = fmt.Errorf("%w (did you mean: %s?)", err, strings.Join(suggestions, ", "))
		}
		return nil, err
	case 1:
		return matches[0], nil
	default:
		paths := lo.Map(matches, func(a *models.Artifact, _ int) string { return a.Path })
		sort.Strings(paths)
		return nil, fmt.Errorf("ambiguous contract name %s, found in %s", name, strings.Join(paths, ", "))
	}
}

// suggest returns up to three indexed contract names close to name.
// The caller holds r.mu.
func (r *Repository) suggest(name string) []string {
	names := lo.Keys(r.byName)
	sort.Strings(names)

	matches := fuzzy.Find(name, names)
	suggestions := make([]string, 0, 3)
	for _, m := range matches {
		suggestions = append(suggestions, m.Str)
		if len(suggestions) == 3 {
			break
		}
	}
	return suggestions
}

// uniqueByBytecode drops copies of the same contract, e.g. a hardhat and a
// foundry build of one source
func uniqueByBytecode(artifacts []*models.Artifact) []*models.Artifact {
	return lo.UniqBy(artifacts, func(a *models.Artifact) string { return string(a.Bytecode) })
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactRepository = (*Repository)(nil)
