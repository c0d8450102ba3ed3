package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ppiankov/qticonv/internal/model"
)

// Source yields the paths of the documents to convert
type Source interface {
	Documents() ([]string, error)
}

// DirSource finds QTI documents in the assessments directory of an
// extracted course export
type DirSource struct {
	Dir     string
	Pattern string
}

// NewDirSource creates a source for the export rooted at exportPath
func NewDirSource(exportPath string, cfg model.InputConfig) *DirSource {
	return &DirSource{
		Dir:     filepath.Join(exportPath, cfg.AssessmentsDir),
		Pattern: cfg.Pattern,
	}
}

// Documents returns matching document paths in sorted order
func (s *DirSource) Documents() ([]string, error) {
	info, err := os.Stat(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("assessments directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assessments directory: %s is not a directory", s.Dir)
	}

	paths, err := filepath.Glob(filepath.Join(s.Dir, s.Pattern))
	if err != nil {
		return nil, fmt.Errorf("glob documents: %w", err)
	}

	sort.Strings(paths)
	return paths, nil
}
