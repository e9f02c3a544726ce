package survey

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadDefinition reads the survey definition document from disk. It is
// read on every request rather than cached, so the questions file can be
// edited under a running server.
func LoadDefinition(path string) (json.RawMessage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read survey definition %s: %w", path, err)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("survey definition %s is not valid JSON", path)
	}
	return json.RawMessage(raw), nil
}
