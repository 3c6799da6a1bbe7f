package repository

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/ytget/source-editor/internal/model"
)

// Export constants
const (
	DefaultExportName = "repository"
	ExportExtension   = ".json"
	ExportIndent      = "  "
)

// Reasons reported for rejected manifests
const (
	ReasonMissingApps = "Invalid JSON structure: missing apps array"
)

//go:embed schema/manifest.schema.json
var schemaBytes []byte

const schemaResource = "manifest.schema.json"

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// getSchema compiles the embedded manifest schema once.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaResource, doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(schemaResource)
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ParseManifest decodes manifest text. It fails with an error matching
// ErrMalformedManifest when the text is not JSON or lacks an apps array.
func ParseManifest(data []byte) (*model.Manifest, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &ManifestError{Reason: err.Error(), Err: err}
	}
	if err := schema.Validate(inst); err != nil {
		return nil, &ManifestError{Reason: ReasonMissingApps, Err: err}
	}

	var m model.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ManifestError{Reason: err.Error(), Err: err}
	}
	if m.Apps == nil {
		m.Apps = []model.AppEntry{}
	}
	return &m, nil
}

// Serialize renders m as JSON indented by two spaces.
func Serialize(m *model.Manifest) ([]byte, error) {
	compact, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", ExportIndent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var exportNameReplacer = strings.NewReplacer("/", "-", "\\", "-", ":", "-")

// ExportFileName returns "<name>.json", or "repository.json" for a nil or
// unnamed manifest. Path separators in the name become dashes.
func ExportFileName(m *model.Manifest) string {
	name := ""
	if m != nil {
		name = strings.TrimSpace(m.Name)
	}
	if name == "" {
		name = DefaultExportName
	}
	return exportNameReplacer.Replace(name) + ExportExtension
}
