package codec

import (
	"errors"
	"fmt"
	"io"

	"hospitalops/internal/domain"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export. It is also the format of the seed
// directory file.
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports a directory from YAML. An empty document is an empty
// directory.
func (c *YAMLCodec) Parse(r io.Reader) (*domain.Directory, error) {
	var dir domain.Directory
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&dir); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := normalize(&dir); err != nil {
		return nil, err
	}
	return &dir, nil
}

// Export writes the directory as YAML
func (c *YAMLCodec) Export(dir *domain.Directory, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(dir); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
