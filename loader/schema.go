package loader

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// schemaJSON is the embedded JSON Schema for declaration files.
var schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://jnihgen.dev/schemas/declarations/v1",
  "title": "jnihgen class declarations",
  "description": "Schema for jnihgen declaration YAML files.",
  "type": "object",
  "required": ["classes"],
  "additionalProperties": false,
  "properties": {
    "options": { "$ref": "#/$defs/options" },
    "classes": {
      "type": "array",
      "items": { "$ref": "#/$defs/class" },
      "minItems": 1
    }
  },
  "$defs": {
    "qualified_name": {
      "type": "string",
      "pattern": "^[\\p{L}_$][\\p{L}\\p{N}_$]*(\\.[\\p{L}_$][\\p{L}\\p{N}_$]*)*$"
    },
    "type_ref": {
      "type": "string",
      "pattern": "^[\\p{L}_$][\\p{L}\\p{N}_$]*(\\.[\\p{L}_$][\\p{L}\\p{N}_$]*)*(\\[\\])*$"
    },
    "modifiers": {
      "type": "array",
      "items": {
        "enum": ["public", "protected", "private", "static", "final", "native", "synchronized", "abstract"]
      },
      "uniqueItems": true
    },
    "options": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "platform": { "enum": ["auto", "windows", "unix"] },
        "file_prefix": { "type": "string", "pattern": "^[^/\\\\]*$" },
        "onload_header": { "type": "string", "pattern": "^[^/\\\\]+\\.h$" },
        "onload_function": { "type": "string", "pattern": "^[A-Za-z_][A-Za-z0-9_]*$" },
        "require_register_natives": { "type": "boolean" }
      }
    },
    "class": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": { "$ref": "#/$defs/qualified_name" },
        "scope": { "enum": ["top_level", "nested", "local"] },
        "enclosing": { "$ref": "#/$defs/qualified_name" },
        "extends": { "$ref": "#/$defs/qualified_name" },
        "header": { "type": "string", "pattern": "^[A-Za-z0-9_.-]+$" },
        "reference_only": { "type": "boolean" },
        "fields": {
          "type": "array",
          "items": { "$ref": "#/$defs/field" }
        },
        "methods": {
          "type": "array",
          "items": { "$ref": "#/$defs/method" }
        }
      },
      "if": {
        "properties": { "scope": { "const": "nested" } },
        "required": ["scope"]
      },
      "then": { "required": ["enclosing"] }
    },
    "method": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[\\p{L}_$][\\p{L}\\p{N}_$]*$" },
        "parameters": {
          "type": "array",
          "items": { "$ref": "#/$defs/parameter" }
        },
        "returns": { "$ref": "#/$defs/type_ref" },
        "modifiers": { "$ref": "#/$defs/modifiers" },
        "fast_native": { "type": "boolean" },
        "critical_native": { "type": "boolean" }
      }
    },
    "parameter": {
      "type": "object",
      "required": ["type"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[A-Za-z_][A-Za-z0-9_]*$" },
        "type": { "$ref": "#/$defs/type_ref" }
      }
    },
    "field": {
      "type": "object",
      "required": ["name", "type"],
      "additionalProperties": false,
      "properties": {
        "name": { "type": "string", "pattern": "^[\\p{L}_$][\\p{L}\\p{N}_$]*$" },
        "type": { "$ref": "#/$defs/type_ref" },
        "modifiers": { "$ref": "#/$defs/modifiers" },
        "value": { "type": ["number", "boolean", "string"] }
      }
    }
  }
}`

var compiledSchema *jsonschema.Schema

func init() {
	var schemaDoc interface{}
	if err := json.Unmarshal([]byte(schemaJSON), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to decode schema JSON: %v", err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add schema resource: %v", err))
	}
	var err error
	compiledSchema, err = c.Compile("schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile schema: %v", err))
	}
}

// SchemaJSON returns the declaration file JSON Schema.
func SchemaJSON() string {
	return schemaJSON
}

// ValidateSchema validates raw YAML bytes against the declaration JSON Schema.
func ValidateSchema(yamlData []byte) error {
	var raw interface{}
	if err := yaml.Unmarshal(yamlData, &raw); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	err := compiledSchema.Validate(convertYAMLToJSON(raw))
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// convertYAMLToJSON converts YAML-parsed values to the types the schema
// validator expects. Integers become float64.
func convertYAMLToJSON(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for k, val := range v {
			result[k] = convertYAMLToJSON(val)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, val := range v {
			result[i] = convertYAMLToJSON(val)
		}
		return result
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return v
	}
}

// ValidateSchemaJSON validates a JSON document against the schema.
func ValidateSchemaJSON(jsonData []byte) error {
	var raw interface{}
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}
	err := compiledSchema.Validate(raw)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
