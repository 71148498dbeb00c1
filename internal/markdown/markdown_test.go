package markdown

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		opts     []Option
		expected string
	}{
		{
			name:     "plain paragraph",
			input:    "Just some text.",
			expected: "Just some text.",
		},
		{
			name:     "heading gets a boundary",
			input:    "# Title\n\nBody text here.",
			expected: "Title. Body text here.",
		},
		{
			name:     "soft line breaks become spaces",
			input:    "First line\nsecond line.",
			expected: "First line second line.",
		},
		{
			name:     "list items end sentences",
			input:    "- item one\n- item two!\n",
			expected: "item one. item two!",
		},
		{
			name:     "inline formatting removed",
			input:    "After **bold** and [a link](http://example.com) and `code`.",
			expected: "After bold and a link and code.",
		},
		{
			name:     "code blocks dropped by default",
			input:    "Intro.\n\n```go\nfmt.Println()\n```\n\nOutro.",
			expected: "Intro. Outro.",
		},
		{
			name:     "code blocks kept on request",
			input:    "Intro.\n\n```\nrun it\n```\n",
			opts:     []Option{WithCodeBlocks()},
			expected: "Intro. run it.",
		},
		{
			name:     "thematic break",
			input:    "Part one\n\n---\n\nPart two",
			expected: "Part one. Part two.",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewExtractor(tt.opts...).PlainText(tt.input)
			if got != tt.expected {
				t.Errorf("PlainText() = %q, want %q", got, tt.expected)
			}
		})
	}
}
