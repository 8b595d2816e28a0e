// Package state records what each page was rendered from so unchanged
// pages can be skipped.
package state

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// PageState represents the last successful render of a single page
type PageState struct {
	MTime        int64  `json:"mtime"`
	Hash         string `json:"hash"`
	InputsHash   string `json:"inputs_hash"`
	Output       string `json:"output"`
}

// State represents the incremental build state
type State struct {
	Pages       map[string]*PageState `json:"pages"`
	LastBuildID string                `json:"last_build_id,omitempty"`
	LastBuildAt int64                 `json:"last_build_at,omitempty"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Pages: make(map[string]*PageState),
	}
}

// Load reads state from the state file
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	if state.Pages == nil {
		state.Pages = make(map[string]*PageState)
	}

	return &state, nil
}

// Save writes state to the state file
func (s *State) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// ComputeHash computes SHA256 hash of a file
func ComputeHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HashBytes computes the SHA256 hash of in-memory content
func HashBytes(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

// InputsHash hashes everything besides the source that shapes a rendered
// page: the template and the base path links are rewritten with
func InputsHash(template []byte, basePath string) string {
	buf := make([]byte, 0, len(template)+1+len(basePath))
	buf = append(buf, template...)
	buf = append(buf, 0)
	buf = append(buf, basePath...)
	return HashBytes(buf)
}

// IsFresh reports whether a page can be skipped: its output still exists,
// the render inputs are unchanged, and the source has not changed since the
// last render. Uses hybrid mtime + hash approach.
func (s *State) IsFresh(source, inputsHash string) (bool, error) {
	page, exists := s.Pages[source]
	if !exists {
		return false, nil
	}
	if page.InputsHash != inputsHash {
		return false, nil
	}
	if _, err := os.Stat(page.Output); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	info, err := os.Stat(source)
	if err != nil {
		return false, err
	}

	// Fast path: check mtime first
	if info.ModTime().Unix() == page.MTime {
		return true, nil
	}

	// mtime changed, compute hash to check for actual content changes
	hash, err := ComputeHash(source)
	if err != nil {
		return false, err
	}

	return hash == page.Hash, nil
}

// Update records a successful render of source into output
func (s *State) Update(source, output, inputsHash string) error {
	info, err := os.Stat(source)
	if err != nil {
		return err
	}

	hash, err := ComputeHash(source)
	if err != nil {
		return err
	}

	s.Pages[source] = &PageState{
		MTime:        info.ModTime().Unix(),
		Hash:         hash,
		InputsHash:   inputsHash,
		Output:       output,
	}

	return nil
}

// Forget drops a page from the state so it is rebuilt next time
func (s *State) Forget(source string) {
	delete(s.Pages, source)
}

// Prune removes pages under root whose sources are not in keep and returns
// the output paths they were rendered to, sorted.
// Pages outside root belong to other sites and are left alone.
func (s *State) Prune(root string, keep map[string]bool) []string {
	var outputs []string
	prefix := filepath.Clean(root) + string(filepath.Separator)
	for source, page := range s.Pages {
		if strings.HasPrefix(source, prefix) && !keep[source] {
			delete(s.Pages, source)
			if page != nil && page.Output != "" {
				outputs = append(outputs, page.Output)
			}
		}
	}
	sort.Strings(outputs)
	return outputs
}

// RecordBuild stores the id and time of a completed build
func (s *State) RecordBuild(id string, at time.Time) {
	s.LastBuildID = id
	s.LastBuildAt = at.Unix()
}

// LastBuild returns the time of the last recorded build
func (s *State) LastBuild() time.Time {
	if s.LastBuildAt == 0 {
		return time.Time{}
	}
	return time.Unix(s.LastBuildAt, 0)
}
