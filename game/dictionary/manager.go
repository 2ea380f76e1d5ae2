package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrDictionaryNotFound = errors.New("dictionary not found")
	ErrEmptyWord          = errors.New("word is empty")
)

// Validator is the word-membership capability the rest of the system
// consumes.
type Validator interface {
	IsValid(word, dictionaryID string) (bool, error)
}

// Info describes one available dictionary.
type Info struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Loaded   bool   `json:"loaded"`
	Words    int    `json:"words,omitempty"`
}

// Manager loads and caches word lists from a directory.
type Manager struct {
	dir   string
	words map[string]map[string]struct{}
	mu    sync.RWMutex
}

// NewManager creates a dictionary manager over the given directory.
func NewManager(dir string) (*Manager, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("dictionaries directory does not exist: %s", dir)
	}

	return &Manager{
		dir:   dir,
		words: make(map[string]map[string]struct{}),
	}, nil
}

// IsValid reports whether word belongs to the identified dictionary. The
// word is trimmed and case-folded before lookup; the check has no side
// effects beyond populating the lazy cache.
func (m *Manager) IsValid(word, dictionaryID string) (bool, error) {
	word = Normalize(word)
	if word == "" {
		return false, ErrEmptyWord
	}

	set, err := m.load(dictionaryID)
	if err != nil {
		return false, err
	}

	_, ok := set[word]
	return ok, nil
}

// List returns all available dictionaries with their load state and word
// counts for the ones already in memory.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionaries directory: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".txt")
		info := Info{ID: id, Filename: entry.Name()}
		if set, ok := m.words[id]; ok {
			info.Loaded = true
			info.Words = len(set)
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// Count returns the number of available dictionaries.
func (m *Manager) Count() int {
	infos, err := m.List()
	if err != nil {
		return 0
	}
	return len(infos)
}

// Normalize trims surrounding whitespace and lowercases a word the same way
// the loader does, so lookups and stored entries agree.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// load returns the word set for a dictionary, reading it from disk on first
// use. Loaded sets are immutable; concurrent readers share them safely.
func (m *Manager) load(id string) (map[string]struct{}, error) {
	m.mu.RLock()
	if set, ok := m.words[id]; ok {
		m.mu.RUnlock()
		return set, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock.
	if set, ok := m.words[id]; ok {
		return set, nil
	}

	path := filepath.Join(m.dir, id+".txt")
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDictionaryNotFound
		}
		return nil, fmt.Errorf("failed to open dictionary %s: %w", id, err)
	}
	defer file.Close()

	set := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := Normalize(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		set[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary %s: %w", id, err)
	}

	m.words[id] = set
	return set, nil
}
