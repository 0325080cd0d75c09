package memory

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed seed.json
var defaultSeed []byte

// DefaultSeed returns the bundled reference records.
func DefaultSeed() Seed {
	var s Seed
	if err := json.Unmarshal(defaultSeed, &s); err != nil {
		panic(fmt.Sprintf("memory: bundled seed is invalid: %v", err))
	}
	return s
}

// LoadSeed reads a Seed from a JSON file.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("memory: read seed: %w", err)
	}
	var s Seed
	if err := json.Unmarshal(data, &s); err != nil {
		return Seed{}, fmt.Errorf("memory: parse seed %s: %w", path, err)
	}
	return s, nil
}
