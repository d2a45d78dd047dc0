// Package schema validates declaration documents against the embedded JSON
// Schema before they are loaded.
package schema

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/foundry-zero/dataspec/internal/ast"
)

//go:embed all:schemas
var schemaFS embed.FS

const (
	schemaRoot = "schemas/v1/"
	rootSchema = "dataspec.json"
)

// SchemaError is one schema violation, or a failure to read or parse the
// document at all.
type SchemaError struct {
	Path       string `json:"path"`
	Message    string `json:"message"`
	ParseError bool   `json:"-"`
}

func (e SchemaError) String() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// Validator checks documents against the compiled root schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded schemas. Each file is registered under
// its path relative to schemas/v1 so relative $refs between them resolve.
func NewValidator() (*Validator, error) {
	c := jsonschema.NewCompiler()
	err := fs.WalkDir(schemaFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		raw, err := schemaFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read embedded schema %s: %w", path, err)
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("parse embedded schema %s: %w", path, err)
		}
		id := strings.TrimPrefix(path, schemaRoot)
		if err := c.AddResource(id, doc); err != nil {
			return fmt.Errorf("add schema resource %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load embedded schemas: %w", err)
	}

	s, err := c.Compile(rootSchema)
	if err != nil {
		return nil, fmt.Errorf("compile root schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

// Validate reads the document at path, as YAML or JSON depending on its
// extension, and validates it.
func (v *Validator) Validate(path string) []SchemaError {
	raw, err := os.ReadFile(path)
	if err != nil {
		return []SchemaError{{Message: fmt.Sprintf("failed to read file: %v", err), ParseError: true}}
	}

	var doc any
	if ast.IsYAML(path) {
		doc, err = yamlToJSON(raw)
	} else {
		err = json.Unmarshal(raw, &doc)
	}
	if err != nil {
		return []SchemaError{{Message: fmt.Sprintf("failed to parse document: %v", err), ParseError: true}}
	}
	return v.ValidateDocument(doc)
}

// ValidateDocument validates a document already decoded into the JSON data
// model.
func (v *Validator) ValidateDocument(doc any) []SchemaError {
	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []SchemaError{{Message: err.Error()}}
	}
	return collectErrors(ve)
}

// collectErrors flattens a validation error tree into its leaves.
func collectErrors(ve *jsonschema.ValidationError) []SchemaError {
	if len(ve.Causes) > 0 {
		var out []SchemaError
		for _, cause := range ve.Causes {
			out = append(out, collectErrors(cause)...)
		}
		return out
	}
	msg := ve.Error()
	if msg == "" {
		return nil
	}
	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	return []SchemaError{{Path: path, Message: msg}}
}

// yamlToJSON decodes YAML text into the value encoding/json would produce
// for the equivalent JSON text.
func yamlToJSON(raw []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc, err := stringKeys(doc)
	if err != nil {
		return nil, err
	}
	buf, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func stringKeys(v any) (any, error) {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			conv, err := stringKeys(e)
			if err != nil {
				return nil, err
			}
			x[k] = conv
		}
		return x, nil
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("mapping key %v is not a string", k)
			}
			conv, err := stringKeys(e)
			if err != nil {
				return nil, err
			}
			out[ks] = conv
		}
		return out, nil
	case []any:
		for i, e := range x {
			conv, err := stringKeys(e)
			if err != nil {
				return nil, err
			}
			x[i] = conv
		}
		return x, nil
	default:
		return v, nil
	}
}
