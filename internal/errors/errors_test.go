package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCategory_String(t *testing.T) {
	tests := map[string]struct {
		category ErrorCategory
		want     string
	}{
		"argument":      {category: Argument, want: "Argument Error"},
		"configuration": {category: Configuration, want: "Configuration Error"},
		"input":         {category: Input, want: "Input Error"},
		"runtime":       {category: Runtime, want: "Runtime Error"},
		"unknown":       {category: ErrorCategory(99), want: "Error"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.category.String())
		})
	}
}

func TestNewArgumentError(t *testing.T) {
	err := NewArgumentError("accepts 1 arg(s), received 0", "relnotes <version>",
		"Pass the release version to extract")

	assert.Equal(t, Argument, err.Category)
	assert.Equal(t, "accepts 1 arg(s), received 0", err.Error())
	assert.Equal(t, "relnotes <version>", err.Usage)
	assert.Equal(t, []string{"Pass the release version to extract"}, err.Remediation)
}

func TestWrapWithMessage(t *testing.T) {
	wrapped := WrapWithMessage(fmt.Errorf("open CHANGES.md: no such file"),
		Input, "reading change log", "Check the path")

	require.NotNil(t, wrapped)
	assert.Equal(t, Input, wrapped.Category)
	assert.Equal(t, "reading change log: open CHANGES.md: no such file", wrapped.Message)
	assert.Equal(t, []string{"Check the path"}, wrapped.Remediation)
}

func TestWrapWithMessage_NilError(t *testing.T) {
	assert.Nil(t, WrapWithMessage(nil, Runtime, "ignored"))
}

func TestAsCLIError(t *testing.T) {
	cliErr := NewArgumentError("bad input", "")
	assert.Equal(t, cliErr, AsCLIError(cliErr))

	assert.Nil(t, AsCLIError(fmt.Errorf("plain error")))
	assert.Nil(t, AsCLIError(nil))
}

func TestFormatErrorPlain(t *testing.T) {
	err := NewArgumentError("accepts 1 arg(s), received 0", "relnotes <version>",
		"Run 'relnotes --help' for details")

	out := FormatErrorPlain(err)

	assert.Contains(t, out, "Error [Argument Error]: accepts 1 arg(s), received 0")
	assert.Contains(t, out, "Usage: relnotes <version>")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "• Run 'relnotes --help' for details")
}

func TestFormatErrorPlain_NoOptionalSections(t *testing.T) {
	err := WrapWithMessage(fmt.Errorf("boom"), Runtime, "rendering release")

	out := FormatErrorPlain(err)

	assert.Equal(t, "Error [Runtime Error]: rendering release: boom\n", out)
}

func TestFormatError_NilError(t *testing.T) {
	assert.Empty(t, FormatError(nil))
	assert.Empty(t, FormatErrorPlain(nil))
}
