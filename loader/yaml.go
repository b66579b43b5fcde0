package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/benn-herrera/jnihgen/model"
)

// LoadDeclarations reads and parses a YAML declaration file.
// It validates the YAML against the JSON Schema before unmarshalling.
func LoadDeclarations(path string) (*model.DeclarationFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading declarations: %w", err)
	}
	return ParseDeclarations(data)
}

// ParseDeclarations validates data against the schema, decodes it, fills
// defaults and checks the decoded structure.
func ParseDeclarations(data []byte) (*model.DeclarationFile, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	var decl model.DeclarationFile
	if err := yaml.Unmarshal(data, &decl); err != nil {
		return nil, fmt.Errorf("parsing declarations: %w", err)
	}
	decl.Normalize()

	if err := validateStruct(&decl); err != nil {
		return nil, fmt.Errorf("invalid declarations: %w", err)
	}
	return &decl, nil
}
