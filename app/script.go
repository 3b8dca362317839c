package main

import (
	"fmt"
	"os"
	"strings"
)

// LoadScript reads a command file and returns its lines.
func LoadScript(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load script: %w", err)
	}
	return SplitLines(string(data)), nil
}

// SplitLines splits text into lines, accepting \n, \r\n and \r endings.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
