// Package artifact writes the per-run output files: one raw .eml and one
// proof JSON per successfully sent recipient, under a timestamped run
// directory.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/farewell-protocol/farewell-claimer/internal/proof"
)

// dirPrefix names the per-run output directory together with a
// YYYYMMDD_HHMMSS timestamp.
const dirPrefix = "farewell_proofs_"

// Store writes artifacts into one run directory. Existing files are
// overwritten; filesystem errors surface to the caller unretried.
type Store struct {
	dir string
}

// NewStore returns a store writing into a timestamped run directory under
// baseDir. The directory is created on the first write, so a run that
// fails before sending anything leaves no empty directory behind.
func NewStore(baseDir string) *Store {
	name := dirPrefix + time.Now().Format("20060102_150405")
	return &Store{dir: filepath.Join(baseDir, name)}
}

// Dir returns the run directory path.
func (s *Store) Dir() string {
	return s.dir
}

// WriteRawMessage saves the raw message for the index-th recipient as an
// .eml file and returns the path written.
func (s *Store) WriteRawMessage(index int, recipient string, raw []byte) (string, error) {
	name := fmt.Sprintf("recipient_%d_%s.eml", index, fileSafeAddr(recipient))
	return s.write(name, raw)
}

// WriteProof saves the proof record for the index-th recipient as an
// indented JSON file and returns the path written.
func (s *Store) WriteProof(index int, recipient string, rec proof.Record) (string, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding proof for %s: %w", recipient, err)
	}
	name := fmt.Sprintf("proof_%d_%s.json", index, fileSafeAddr(recipient))
	return s.write(name, append(data, '\n'))
}

func (s *Store) write(name string, data []byte) (string, error) {
	path := filepath.Join(s.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ReadProof loads a proof record back from a JSON file.
func ReadProof(path string) (proof.Record, error) {
	var rec proof.Record
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, fmt.Errorf("reading proof %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("decoding proof %s: %w", path, err)
	}
	return rec, nil
}

// fileSafeAddr makes an email address usable in a file name.
func fileSafeAddr(addr string) string {
	return strings.ReplaceAll(addr, "@", "_at_")
}
