package repo

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"sgf_review/internal/domain"
)

// SaveSidecar writes the side-car file for an analyzed record: first line is
// the canonical record text, the rest is one JSON response record per line.
// Written incrementally and never rolled back on a later failure.
func SaveSidecar(path, canonical string, responses []domain.Response) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(canonical + "\n"); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	for _, resp := range responses {
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return w.Flush()
}

// LoadSidecar reads a side-car file back into its record text and response
// records.
func LoadSidecar(path string) (string, []domain.Response, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return "", nil, fmt.Errorf("sidecar %s: missing record line", path)
	}

	canonical := lines[0]
	var responses []domain.Response
	for i, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var resp domain.Response
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			return "", nil, fmt.Errorf("sidecar %s line %d: %w", path, i+2, err)
		}
		responses = append(responses, resp)
	}
	return canonical, responses, nil
}
