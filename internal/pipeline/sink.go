package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Sink accepts rendered text keyed by a name
type Sink interface {
	Write(name string, text string) error
}

// FileName derives an output file name from a title by replacing spaces
// and colons with underscores
func FileName(title, ext string) string {
	return strings.NewReplacer(" ", "_", ":", "_").Replace(title) + ext
}

// DirSink writes each rendered text to a file in a directory
type DirSink struct {
	dir string
}

// NewDirSink creates a sink writing into dir
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Write writes text to dir/name, replacing any existing file
func (s *DirSink) Write(name string, text string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// MemorySink keeps rendered texts in memory
type MemorySink struct {
	mu    sync.Mutex
	files map[string]string
}

// NewMemorySink creates an empty memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string]string)}
}

// Write stores text under name
func (s *MemorySink) Write(name string, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = text
	return nil
}

// Get returns the text stored under name
func (s *MemorySink) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.files[name]
	return text, ok
}

// Len returns the number of stored texts
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
