package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
	outputJSON  = "json"
)

func validateOutputFormat(outputFormat string) error {
	switch strings.ToLower(outputFormat) {
	case outputTable, outputYAML, outputJSON:
		return nil
	}
	return errors.Errorf("unknown output format %q", outputFormat)
}

// formatStructured renders obj as YAML or JSON.
func formatStructured(outputFormat string, obj interface{}) (string, error) {
	switch strings.ToLower(outputFormat) {
	case outputYAML:
		yamlBytes, err := yaml.Marshal(obj)
		if err != nil {
			return "", errors.Wrap(err, "error formatting output as yaml")
		}
		return string(yamlBytes), nil
	case outputJSON:
		prettyJSON, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, "error formatting output as json")
		}
		return string(prettyJSON), nil
	}
	return "", errors.Errorf("%q is not a structured output format", outputFormat)
}

func printStructured(outputFormat string, obj interface{}) error {
	out, err := formatStructured(outputFormat, obj)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
