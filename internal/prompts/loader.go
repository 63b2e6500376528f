// Package prompts serves the oracle prompt templates embedded in the
// binary as JSON files.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var promptFS embed.FS

var (
	mu     sync.Mutex
	loaded map[string]map[string]string
)

// Get returns the prompt stored under key in the named embedded file
// (e.g. "chat.json").
func Get(filename, key string) (string, error) {
	file, err := load(filename)
	if err != nil {
		return "", err
	}
	prompt, ok := file[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts the binary cannot run without.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders with values from data in a
// single pass. Placeholders without a matching key are left in place.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(data))
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// List returns the prompt keys in a file, sorted.
func List(filename string) ([]string, error) {
	file, err := load(filename)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(file))
	for key := range file {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearCache drops every parsed prompt file so the next lookup reloads
// from the embedded filesystem.
func ClearCache() {
	mu.Lock()
	loaded = nil
	mu.Unlock()
}

func load(filename string) (map[string]string, error) {
	mu.Lock()
	defer mu.Unlock()

	if file, ok := loaded[filename]; ok {
		return file, nil
	}

	data, err := promptFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	var file map[string]string
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	if loaded == nil {
		loaded = make(map[string]map[string]string)
	}
	loaded[filename] = file
	return file, nil
}
