package repository

import (
	"context"
	"fmt"
	"os"

	"golang-stock-scanner/internal/entity"

	"gopkg.in/yaml.v3"
)

type staticUniverseRepository struct {
	tickers []string
}

// NewStaticUniverseRepository serves a fixed ticker list.
func NewStaticUniverseRepository(tickers []string) UniverseRepository {
	return &staticUniverseRepository{tickers: entity.NormalizeTickers(tickers)}
}

func (r *staticUniverseRepository) GetTickers(ctx context.Context) ([]string, error) {
	out := make([]string, len(r.tickers))
	copy(out, r.tickers)
	return out, nil
}

// universeFile is the layout of the ticker list file.
type universeFile struct {
	Tickers []string `yaml:"tickers"`
}

type fileUniverseRepository struct {
	path string
}

// NewFileUniverseRepository reads tickers from a YAML file on every call.
func NewFileUniverseRepository(path string) UniverseRepository {
	return &fileUniverseRepository{path: path}
}

func (r *fileUniverseRepository) GetTickers(ctx context.Context) ([]string, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read universe file: %w", err)
	}

	var f universeFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse universe file %s: %w", r.path, err)
	}
	return entity.NormalizeTickers(f.Tickers), nil
}
