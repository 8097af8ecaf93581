package utils

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/oshokin/reqrelay/internal/constants"
)

// truncatedSuffix marks text cut by Truncate.
const truncatedSuffix = "... [truncated]"

// ErrInvalidHeaderLine indicates that a header line has no "Name: Value" shape.
var ErrInvalidHeaderLine = errors.New(`header must look like "Name: Value"`)

// textContentTypePatterns is a slice of regular expressions that match content types
// considered to be text-based: "text/*", JSON, XML, JavaScript and their "+json" / "+xml" variants.
//
//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
var textContentTypePatterns = []*regexp.Regexp{
	regexp.MustCompile("^text/.+"),
	regexp.MustCompile("^application/(json|xml|javascript|x-www-form-urlencoded)$"),
	regexp.MustCompile(`^application/.+\+(json|xml)$`),
}

// IsTextContentType checks if the given content type represents a text-based format.
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

// ReadInput reads a whole file, or standard input when path is "-".
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	if path == constants.StdinFilename {
		if stdin == nil {
			stdin = os.Stdin
		}

		return io.ReadAll(stdin)
	}

	return os.ReadFile(filepath.Clean(path))
}

// SplitHeaderLine splits a "Name: Value" line into its parts.
// Surrounding whitespace is trimmed from both; an empty value is allowed.
func SplitHeaderLine(line string) (string, string, error) {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidHeaderLine, line)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidHeaderLine, line)
	}

	return name, strings.TrimSpace(value), nil
}

// Truncate cuts data down to limit bytes and marks the cut. A zero limit disables truncation.
func Truncate(data []byte, limit uint64) string {
	if limit > 0 && uint64(len(data)) > limit {
		return string(data[:limit]) + truncatedSuffix
	}

	return string(data)
}

// Map applies a transformation function to each element of a slice and returns a new slice with the results.
func Map[E, S any](v []E, transformFunc func(E) S) []S {
	result := make([]S, len(v))
	for i := range v {
		result[i] = transformFunc(v[i])
	}

	return result
}
