package words_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sublee/eqgen/internal/words"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "camelCase",
			input:    "getId",
			expected: []string{"get", "Id"},
		},
		{
			name:     "PascalCase",
			input:    "GetId",
			expected: []string{"Get", "Id"},
		},
		{
			name:     "snake_case",
			input:    "send_message",
			expected: []string{"send", "_", "message"},
		},
		{
			name:     "DigitAfterLetter",
			input:    "iso8601",
			expected: []string{"iso", "8601"},
		},
		{
			name:     "LetterAfterDigit",
			input:    "file2name",
			expected: []string{"file", "2", "name"},
		},
		{
			name:     "MultipleUnderscores",
			input:    "send__nowait",
			expected: []string{"send", "__", "nowait"},
		},
		{
			name:     "MixedCase",
			input:    "version2Point1",
			expected: []string{"version", "2", "Point", "1"},
		},
		{
			name:     "SingleWord",
			input:    "hello",
			expected: []string{"hello"},
		},
		{
			name:     "EmptyString",
			input:    "",
			expected: ([]string)(nil),
		},
		{
			name:     "AllUppercase",
			input:    "HELLO",
			expected: []string{"HELLO"},
		},
		{
			name:     "UppercaseAcronym",
			input:    "getID",
			expected: []string{"get", "ID"},
		},
		{
			name:     "UnderscoresOnly",
			input:    "___",
			expected: []string{"___"},
		},
		{
			name:     "DigitsOnly",
			input:    "12345",
			expected: []string{"12345"},
		},
		{
			name:     "Korean",
			input:    "안녕",
			expected: []string{"안녕"},
		},
		{
			name:     "UppercaseAcronymAtStart",
			input:    "JSONParser",
			expected: []string{"JSON", "Parser"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := words.SplitWords(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLowerCamel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ID", "id"},
		{"X", "x"},
		{"Name", "name"},
		{"name", "name"},
		{"HTTPServer", "httpServer"},
		{"userID", "userID"},
		{"MaxSize", "maxSize"},
		{"V2Name", "v2Name"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, words.LowerCamel(tt.input))
		})
	}
}
