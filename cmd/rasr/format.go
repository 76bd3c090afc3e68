package main

import (
	"encoding/json"
	"fmt"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON     OutputFormat = "json"
	FormatMarkdown OutputFormat = "markdown"
)

// formatJSON renders a response as indented JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// renderOutput picks between JSON and a pre-rendered markdown string
func renderOutput(format string, resp interface{}, markdown func() string) (string, error) {
	switch OutputFormat(format) {
	case FormatJSON:
		return formatJSON(resp)
	case FormatMarkdown:
		return markdown(), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}
