package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"hospitalops/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a directory from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Directory, error) {
	var dir domain.Directory
	if err := json.NewDecoder(r).Decode(&dir); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if err := normalize(&dir); err != nil {
		return nil, err
	}
	return &dir, nil
}

// Export writes the directory as indented JSON
func (c *JSONCodec) Export(dir *domain.Directory, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(dir); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
