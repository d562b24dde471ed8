// Where: cli/internal/infra/config/options_file.go
// What: Options document loader (YAML or JSON).
// Why: Validate executor options against one schema before they reach the workflow.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"sigs.k8s.io/yaml"
)

const schemaURL = "https://npm-deploy.local/schema/options.json"

//go:embed schema.json
var optionsSchema string

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema
)

type optionsDocument struct {
	DistFolderPath string `json:"distFolderPath"`
	Access         string `json:"access"`
	Tag            string `json:"tag"`
	OTP            any    `json:"otp"`
	DryRun         *bool  `json:"dryRun"`
	Registry       string `json:"registry"`
	PackageVersion string `json:"packageVersion"`
	CheckExisting  any    `json:"checkExisting"`
	PackageManager string `json:"packageManager"`
}

// LoadOptionsFile reads, renders and validates an options document.
func LoadOptionsFile(path string) (Options, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options file: %w", err)
	}
	opts, err := ParseOptions(content)
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// ParseOptions decodes YAML or JSON option content. String values are
// rendered as Go templates with sprig functions before validation.
func ParseOptions(content []byte) (Options, error) {
	jsonData, err := yaml.YAMLToJSON(quoteTextScalars(content, textKeys...))
	if err != nil {
		return Options{}, fmt.Errorf("convert yaml to json: %w", err)
	}

	var document any
	if err := json.Unmarshal(jsonData, &document); err != nil {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}
	if document == nil {
		document = map[string]any{}
	}
	document, err = renderValues(document)
	if err != nil {
		return Options{}, err
	}

	sch, err := loadSchema()
	if err != nil {
		return Options{}, err
	}
	if err := sch.Validate(document); err != nil {
		return Options{}, fmt.Errorf("%w: %v", errInvalidOptions, err)
	}

	rendered, err := json.Marshal(document)
	if err != nil {
		return Options{}, fmt.Errorf("encode options: %w", err)
	}
	var doc optionsDocument
	if err := json.Unmarshal(rendered, &doc); err != nil {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}
	return doc.toOptions()
}

func (d optionsDocument) toOptions() (Options, error) {
	opts := Options{
		DistFolderPath: d.DistFolderPath,
		Access:         d.Access,
		Tag:            d.Tag,
		OTP:            scalarString(d.OTP),
		DryRun:         d.DryRun,
		Registry:       d.Registry,
		PackageVersion: d.PackageVersion,
		PackageManager: d.PackageManager,
	}
	if d.CheckExisting != nil {
		check, err := ParseCheckExisting(d.CheckExisting)
		if err != nil {
			return Options{}, err
		}
		opts.CheckExisting = &check
	}
	return opts, nil
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func renderValues(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		for key, item := range v {
			rendered, err := renderValues(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			v[key] = rendered
		}
		return v, nil
	case []any:
		for i, item := range v {
			rendered, err := renderValues(item)
			if err != nil {
				return nil, err
			}
			v[i] = rendered
		}
		return v, nil
	case string:
		return renderString(v)
	default:
		return value, nil
	}
}

func renderString(value string) (string, error) {
	if !strings.Contains(value, "{{") {
		return value, nil
	}
	tmpl, err := template.New("option").Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(value)
	if err != nil {
		return "", fmt.Errorf("parse template %q: %w", value, err)
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, nil); err != nil {
		return "", fmt.Errorf("render template %q: %w", value, err)
	}
	return strings.TrimSpace(out.String()), nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString(schemaURL, optionsSchema)
	})
	return compiledSchema, schemaErr
}
