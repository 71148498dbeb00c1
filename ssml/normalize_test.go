package ssml

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
		{"collapse and trim", "  Hello \n\n there\tfriend  ", "Hello there friend"},
		{"ampersand", "Salt & pepper", "Salt &amp; pepper"},
		{"angle brackets", "a < b > c", "a &lt; b &gt; c"},
		{"quotes", `She said "it's fine"`, "She said &quot;it&apos;s fine&quot;"},
		{"all reserved", `&<>"'`, "&amp;&lt;&gt;&quot;&apos;"},
		{"existing named entity kept", "Tom &amp; Jerry", "Tom &amp; Jerry"},
		{"existing numeric entity kept", "caf&#233; &#x1F600;", "caf&#233; &#x1F600;"},
		{"bare ampersand before hash", "item &# 4", "item &amp;# 4"},
		{"unterminated entity", "&amp no semicolon", "&amp;amp no semicolon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"  lots   of\n\nspace ",
		`Fish & chips <cheap> "today" isn't it?`,
		"&&&;;; &lt &gt; &#; &#x;",
		"<speak>already markup</speak>",
		`say <emphasis level="strong">old & new</emphasis> thing.<break time="500ms"/>`,
		`<sub alias="Dr. Who">DW</sub> </sub> <voice name="x">`,
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeLeavesNoReservedCharacters(t *testing.T) {
	inputs := []string{
		`<b>bold</b> & "quoted" 'single'`,
		"&&<<>>",
		"a&b",
	}

	for _, in := range inputs {
		out := Normalize(in)
		if strings.ContainsAny(out, `<>"'`) {
			t.Errorf("Normalize(%q) = %q contains an unescaped reserved character", in, out)
		}
		for i := 0; i < len(out); i++ {
			if out[i] == '&' && entityLen(out[i:]) == 0 {
				t.Errorf("Normalize(%q) = %q has a bare ampersand at %d", in, out, i)
			}
		}
	}
}

func TestNormalizeKeepsInlineMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "paired tag",
			input: `say <emphasis level="strong">old</emphasis> thing`,
			want:  `say <emphasis level="strong">old</emphasis> thing`,
		},
		{
			name:  "empty element tag",
			input: `Wait.<break time="500ms"/> Go`,
			want:  `Wait.<break time="500ms"/> Go`,
		},
		{
			name:  "text inside tag is escaped",
			input: `<sub alias="and">&</sub> "x"`,
			want:  `<sub alias="and">&amp;</sub> &quot;x&quot;`,
		},
		{
			name:  "nested tags and prosody",
			input: `<prosody volume="x-soft"><say-as interpret-as="digits">42</say-as></prosody>`,
			want:  `<prosody volume="x-soft"><say-as interpret-as="digits">42</say-as></prosody>`,
		},
		{
			name:  "whitespace inside tag collapsed",
			input: "<voice\n name=\"Joanna\">hi</voice>",
			want:  `<voice name="Joanna">hi</voice>`,
		},
		{
			name:  "stray end tag escaped",
			input: `one</emphasis> two`,
			want:  `one&lt;/emphasis&gt; two`,
		},
		{
			name:  "unclosed start tag escaped",
			input: `<emphasis level="strong">open`,
			want:  `&lt;emphasis level=&quot;strong&quot;&gt;open`,
		},
		{
			name:  "structural elements escaped",
			input: `<speak><s>hi</s></speak>`,
			want:  `&lt;speak&gt;&lt;s&gt;hi&lt;/s&gt;&lt;/speak&gt;`,
		},
		{
			name:  "mismatched end tag escaped",
			input: `<sub alias="a">x</lang>`,
			want:  `&lt;sub alias=&quot;a&quot;&gt;x&lt;/lang&gt;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
