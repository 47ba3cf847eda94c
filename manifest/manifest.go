// Package manifest parses YAML signature manifests into promptsig
// Signatures, with default field descriptors from package fields.
package manifest

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skosovsky/promptsig"
	"github.com/skosovsky/promptsig/fields"
)

// fileManifest is the YAML manifest shape bound directly to domain types.
type fileManifest struct {
	ID          string        `yaml:"id"`
	Description string        `yaml:"description"`
	Inputs      []fieldSpec   `yaml:"inputs"`
	Outputs     []fieldSpec   `yaml:"outputs"`
	Hints       []hintSpec    `yaml:"hints"`
	Examples    []exampleSpec `yaml:"examples"`
}

type fieldSpec struct {
	Name     string `yaml:"name"`
	Desc     string `yaml:"desc"`
	Optional bool   `yaml:"optional"`
	Type     string `yaml:"type"` // "", text, int, float, bool, strings
}

type hintSpec struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

type exampleSpec struct {
	Input  map[string]any `yaml:"input"`
	Output any            `yaml:"output"` // scalar or name -> value mapping
}

// ParseBytes parses a YAML manifest and returns a Signature.
func ParseBytes(data []byte) (*promptsig.Signature, error) {
	var m fileManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", promptsig.ErrInvalidManifest, err)
	}
	return buildSignature(&m)
}

// ParseFile reads and parses a manifest file.
func ParseFile(path string) (*promptsig.Signature, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is validated by caller
	if err != nil {
		return nil, fmt.Errorf("manifest: read file: %w", err)
	}
	return ParseBytes(data)
}

// ParseFS reads and parses a manifest from fs.FS (e.g. embed.FS).
func ParseFS(fsys fs.FS, name string) (*promptsig.Signature, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("manifest: read fs: %w", err)
	}
	return ParseBytes(data)
}

func buildSignature(m *fileManifest) (*promptsig.Signature, error) {
	if m.ID == "" {
		return nil, fmt.Errorf("%w: missing id", promptsig.ErrInvalidManifest)
	}
	if len(m.Outputs) == 0 {
		return nil, fmt.Errorf("%w: at least one output field is required", promptsig.ErrInvalidManifest)
	}
	opts := []promptsig.SignatureOption{promptsig.WithName(m.ID)}
	inputs := make([]promptsig.FieldDescriptor, 0, len(m.Inputs))
	for i, spec := range m.Inputs {
		fieldOpts, err := fieldOptions(i, "inputs", spec)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, fields.NewInput(spec.Name, spec.Desc, fieldOpts...))
	}
	outputs := make([]promptsig.FieldDescriptor, 0, len(m.Outputs))
	for i, spec := range m.Outputs {
		fieldOpts, err := fieldOptions(i, "outputs", spec)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, fields.NewOutput(spec.Name, spec.Desc, fieldOpts...))
	}
	opts = append(opts, promptsig.WithInputs(inputs...), promptsig.WithOutputs(outputs...))
	if len(m.Hints) > 0 {
		hints := make([]promptsig.FieldDescriptor, 0, len(m.Hints))
		for i, spec := range m.Hints {
			if spec.Name == "" || spec.Text == "" {
				return nil, fmt.Errorf("%w: hint %d: missing name or text", promptsig.ErrInvalidManifest, i)
			}
			hints = append(hints, fields.NewHint(spec.Name, spec.Text))
		}
		opts = append(opts, promptsig.WithHints(hints...))
	}
	if len(m.Examples) > 0 {
		examples := make([]promptsig.Example, 0, len(m.Examples))
		for _, spec := range m.Examples {
			examples = append(examples, buildExample(spec))
		}
		opts = append(opts, promptsig.WithExamples(examples...))
	}
	return promptsig.NewSignature(opts...)
}

func fieldOptions(i int, role string, spec fieldSpec) ([]fields.Option, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: %s %d: missing name", promptsig.ErrInvalidManifest, role, i)
	}
	var opts []fields.Option
	if spec.Optional {
		opts = append(opts, fields.Optional())
	}
	switch spec.Type {
	case "", "text":
	case "int":
		opts = append(opts, fields.WithTransform(fields.AsInt))
	case "float":
		opts = append(opts, fields.WithTransform(fields.AsFloat))
	case "bool":
		opts = append(opts, fields.WithTransform(fields.AsBool))
	case "strings":
		opts = append(opts, fields.WithTransform(fields.AsStringSlice))
	default:
		return nil, fmt.Errorf("%w: %s %d: unknown type %q", promptsig.ErrInvalidManifest, role, i, spec.Type)
	}
	return opts, nil
}

func buildExample(spec exampleSpec) promptsig.Example {
	ex := promptsig.Example{Inputs: spec.Input}
	if m, ok := spec.Output.(map[string]any); ok {
		ex.Output = promptsig.FieldOutput(m)
	} else {
		ex.Output = promptsig.ScalarOutput{Value: spec.Output}
	}
	return ex
}
