package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/config"
	"github.com/trebuchet-org/stake-deployer/internal/domain/models"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// recordFile is the on-disk layout of <dataDir>/<chainId>/<plan>.json
type recordFile struct {
	Plan    string                     `json:"plan"`
	ChainID uint64                     `json:"chainId"`
	Runs    []*models.DeploymentRecord `json:"runs"`
}

// FileRepository stores deployment records as json files, one per chain and plan
type FileRepository struct {
	dataDir string
	mu      sync.RWMutex
}

// NewFileRepository creates a record store rooted at dataDir
func NewFileRepository(dataDir string) *FileRepository {
	return &FileRepository{dataDir: dataDir}
}

// NewFileRepositoryFromConfig creates a record store in the project data dir
func NewFileRepositoryFromConfig(cfg *config.RuntimeConfig) *FileRepository {
	return NewFileRepository(cfg.DataDir)
}

func (m *FileRepository) path(chainID uint64, plan string) string {
	return filepath.Join(m.dataDir, strconv.FormatUint(chainID, 10), plan+".json")
}

// SaveRecord inserts the record or replaces the run with the same RunID
func (m *FileRepository) SaveRecord(ctx context.Context, record *models.DeploymentRecord) error {
	if record.Plan == "" || strings.ContainsAny(record.Plan, `/\`) {
		return fmt.Errorf("invalid plan name %q", record.Plan)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.path(record.ChainID, record.Plan)
	file, err := m.loadFile(path)
	if err != nil {
		return err
	}
	if file == nil {
		file = &recordFile{Plan: record.Plan, ChainID: record.ChainID}
	}

	_, index, found := lo.FindIndexOf(file.Runs, func(r *models.DeploymentRecord) bool { return r.RunID == record.RunID })
	if found {
		file.Runs[index] = record
	} else {
		file.Runs = append(file.Runs, record)
	}

	return m.saveFile(path, file)
}

// LatestRecord returns the most recently started run of a plan on a chain
func (m *FileRepository) LatestRecord(ctx context.Context, chainID uint64, plan string) (*models.DeploymentRecord, error) {
	records, err := m.ListRecords(ctx, chainID, plan)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no runs of %s on chain %d: %w", plan, chainID, domain.ErrNotFound)
	}
	return records[0], nil
}

// ListRecords returns the runs on a chain, newest first. An empty plan matches all plans.
func (m *FileRepository) ListRecords(ctx context.Context, chainID uint64, plan string) ([]*models.DeploymentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var paths []string
	if plan != "" {
		paths = []string{m.path(chainID, plan)}
	} else {
		matches, err := filepath.Glob(filepath.Join(m.dataDir, strconv.FormatUint(chainID, 10), "*.json"))
		if err != nil {
			return nil, err
		}
		paths = matches
	}

	var records []*models.DeploymentRecord
	for _, path := range paths {
		file, err := m.loadFile(path)
		if err != nil {
			return nil, err
		}
		if file != nil {
			records = append(records, file.Runs...)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})
	return records, nil
}

// loadFile reads a record file, returning nil when it does not exist
func (m *FileRepository) loadFile(path string) (*recordFile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file recordFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &file, nil
}

// saveFile writes a record file through a temp file and an atomic rename
func (m *FileRepository) saveFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	// Write to temp file first
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	// Atomic rename
	return os.Rename(tmpPath, path)
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentRecordStore = (*FileRepository)(nil)
