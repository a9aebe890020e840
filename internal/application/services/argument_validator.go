package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	apperrors "github.com/shaderplay/shaderplay/internal/application/errors"
	"github.com/shaderplay/shaderplay/internal/domain/compiler"
)

// ArgumentValidator checks resolved arguments against a JSON Schema derived
// from a compiler's parameter declarations.
type ArgumentValidator struct{}

// NewArgumentValidator creates a new argument validator.
func NewArgumentValidator() *ArgumentValidator {
	return &ArgumentValidator{}
}

// Validate builds the schema for the parameters visible under args and
// validates args against it. Combobox values must be one of the declared
// options and checkbox values must be "true" or "false".
func (v *ArgumentValidator) Validate(compilerName string, params []compiler.Parameter, args compiler.Arguments) error {
	schemaBytes, err := json.Marshal(BuildParameterSchema(params, args))
	if err != nil {
		return fmt.Errorf("failed to marshal argument schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020

	url := compilerName + ".arguments.json"
	if err := c.AddResource(url, bytes.NewReader(schemaBytes)); err != nil {
		return fmt.Errorf("failed to add argument schema for %s: %w", compilerName, err)
	}
	schema, err := c.Compile(url)
	if err != nil {
		return fmt.Errorf("failed to compile argument schema for %s: %w", compilerName, err)
	}

	instance := make(map[string]interface{}, args.Len())
	for name, value := range args.Map() {
		instance[name] = value
	}

	if err := schema.Validate(instance); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return apperrors.NewValidationError("arguments", "invalid arguments for "+compilerName, collectSchemaErrors(validationErr)...)
		}
		return fmt.Errorf("argument validation failed: %w", err)
	}
	return nil
}

// BuildParameterSchema returns the draft 2020 schema for params, treating
// every parameter visible under args as required.
func BuildParameterSchema(params []compiler.Parameter, args compiler.Arguments) map[string]interface{} {
	properties := map[string]interface{}{
		compiler.InputLanguageParameterName: map[string]interface{}{"type": "string"},
	}
	required := []string{compiler.InputLanguageParameterName}

	for _, p := range params {
		if !p.IsVisible(args.Lookup) {
			continue
		}
		prop := map[string]interface{}{"type": "string"}
		if p.DisplayName != "" {
			prop["title"] = p.DisplayName
		}
		switch p.Kind {
		case compiler.ParameterKindText:
			prop["minLength"] = 1
		case compiler.ParameterKindComboBox:
			prop["enum"] = append([]string(nil), p.Options...)
		case compiler.ParameterKindCheckBox:
			prop["enum"] = []string{"true", "false"}
		}
		properties[p.Name] = prop
		required = append(required, p.Name)
	}

	return map[string]interface{}{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func collectSchemaErrors(err *jsonschema.ValidationError) []string {
	var messages []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 && e.Message != "" {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(err)
	sort.Strings(messages)
	return messages
}
