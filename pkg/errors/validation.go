package errors

import (
	"strings"
	"unicode"
)

// ValidateInstanceName validates a component name before it is written into
// an emitted command. Names appear verbatim inside double-quoted strings, so
// quotes, backslashes and control characters are rejected.
func ValidateInstanceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInstanceName, "instance name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInstanceName, "instance name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInstanceName, "instance name %q contains whitespace or control characters", name)
		}
	}

	if strings.ContainsAny(name, "\"\\") {
		return New(ErrCodeInvalidInstanceName, "instance name %q contains quote or backslash", name)
	}

	return nil
}

// ValidateDeviceName validates a device (cell) name from an intent graph.
func ValidateDeviceName(device string) error {
	if device == "" {
		return New(ErrCodeInvalidInput, "device name cannot be empty")
	}
	for _, r := range device {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return New(ErrCodeInvalidInput, "device name %q contains invalid character %q", device, r)
		}
	}
	return nil
}

// ValidatePath validates an output path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
