// Package jsonutil pulls JSON objects out of model responses.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when a response contains no JSON object
var ErrNoJSON = errors.New("no JSON object found in response")

var (
	jsonFenceRegex  = regexp.MustCompile("```json\\s*")
	fenceRegex      = regexp.MustCompile("```\\s*")
	objectSpanRegex = regexp.MustCompile(`\{[\s\S]*\}`)
)

// Extract strips markdown code fences and surrounding prose from a model
// response and returns the text that should hold a single JSON object.
// It never fails; callers decide whether the result parses.
func Extract(response string) string {
	cleaned := jsonFenceRegex.ReplaceAllString(response, "")
	cleaned = fenceRegex.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if !strings.HasPrefix(cleaned, "{") {
		if m := objectSpanRegex.FindString(cleaned); m != "" {
			cleaned = m
		}
	}
	return cleaned
}

// Decode extracts the JSON object from response and unmarshals it into T.
// Trailing text after the first complete object is ignored.
func Decode[T any](response string) (T, error) {
	var result T

	cleaned := Extract(response)
	idx := strings.Index(cleaned, "{")
	if idx == -1 {
		return result, ErrNoJSON
	}

	decoder := json.NewDecoder(strings.NewReader(cleaned[idx:]))
	if err := decoder.Decode(&result); err != nil {
		return result, fmt.Errorf("decode response JSON: %w", err)
	}
	return result, nil
}
