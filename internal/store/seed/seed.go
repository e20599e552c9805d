package seed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tasks/internal/store"
)

// JSON-backed start-up data. Single file, human-readable, read once.
// Nothing is ever written back.

const schemaURL = "seed.schema.json"

const schemaSrc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title"],
    "additionalProperties": false,
    "properties": {
      "title": {"type": "string", "minLength": 1, "pattern": "\\S"},
      "done":  {"type": "boolean"}
    }
  }
}`

var schema = jsonschema.MustCompileString(schemaURL, schemaSrc)

// Entry is one task of a seed file.
type Entry struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// Load reads and validates a seed file.
func Load(path string) ([]Entry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return Parse(b)
}

// Parse validates raw seed JSON and decodes it.
func Parse(b []byte) ([]Entry, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return nil, fmt.Errorf("invalid seed: %s", flatten(ve))
		}
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return entries, nil
}

// Apply feeds entries through the store's own add path, so seeds obey the
// same duplicate rule as typed input. It returns how many were added.
func Apply(s *store.Store, entries []Entry, logger *log.Logger) int {
	added := 0
	for _, e := range entries {
		task, err := s.Add(e.Title)
		if err != nil {
			if logger != nil {
				logger.Warn("seed entry skipped", "title", e.Title, "err", err)
			}
			continue
		}
		if e.Done {
			s.Toggle(task.ID)
		}
		added++
	}
	return added
}

// flatten joins leaf validation messages into one line.
func flatten(ve *jsonschema.ValidationError) string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return loc + ": " + ve.Message
	}
	parts := make([]string, 0, len(ve.Causes))
	for _, c := range ve.Causes {
		parts = append(parts, flatten(c))
	}
	return strings.Join(parts, "; ")
}
