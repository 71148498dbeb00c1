package ssml

import (
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// TagKind names an inline tag.
type TagKind string

// Supported inline tags.
const (
	KindEmphasis TagKind = "emphasis"
	KindSayAs    TagKind = "say-as"
	KindSub      TagKind = "sub"
	KindLang     TagKind = "lang"
	KindVoice    TagKind = "voice"
	KindPhoneme  TagKind = "phoneme"
	KindBreak    TagKind = "break"
)

// TagKinds lists every supported inline tag.
var TagKinds = []TagKind{KindEmphasis, KindSayAs, KindSub, KindLang, KindVoice, KindPhoneme, KindBreak}

// Parameter names as they appear in the markup.
const (
	ParamLevel       = "level"
	ParamInterpretAs = "interpret-as"
	ParamAlias       = "alias"
	ParamXMLLang     = "xml:lang"
	ParamName        = "name"
	ParamAlphabet    = "alphabet"
	ParamPh          = "ph"
	ParamStrength    = "strength"
	ParamTime        = "time"
)

// Allowed values for enumerated parameters.
var (
	EmphasisLevels   = []string{"strong", "moderate", "reduced"}
	InterpretAsTypes = []string{
		"characters", "spell-out", "cardinal", "number", "ordinal", "digits",
		"fraction", "unit", "date", "time", "telephone", "address",
		"interjection", "expletive",
	}
	PhonemeAlphabets = []string{"ipa", "x-sampa"}
	BreakStrengths   = []string{"none", "x-weak", "weak", "medium", "strong", "x-strong"}
)

var breakTimeRegex = regexp.MustCompile(`^\d+(\.\d+)?(ms|s)$`)

// TagSpec is an inline tag with its parameters. The set of implementations
// is closed: Emphasis, SayAs, Sub, Lang, Voice, Phoneme and Break.
type TagSpec interface {
	Kind() TagKind
	attributes() ([]attribute, error)
}

// Emphasis stresses the wrapped text.
type Emphasis struct {
	Level string
}

// SayAs tells the engine how to interpret the wrapped text.
type SayAs struct {
	InterpretAs string
}

// Sub speaks Alias in place of the wrapped text.
type Sub struct {
	Alias string
}

// Lang speaks the wrapped text in another language.
type Lang struct {
	Lang string // BCP 47 tag, e.g. "fr-FR"
}

// Voice speaks the wrapped text with a named voice.
type Voice struct {
	Name string
}

// Phoneme gives the pronunciation of the wrapped text.
type Phoneme struct {
	Alphabet string
	Ph       string
}

// Break inserts a pause. Exactly one of Strength or Time must be set.
type Break struct {
	Strength string
	Time     string // e.g. "500ms" or "1.5s"
}

func (Emphasis) Kind() TagKind { return KindEmphasis }
func (SayAs) Kind() TagKind    { return KindSayAs }
func (Sub) Kind() TagKind      { return KindSub }
func (Lang) Kind() TagKind     { return KindLang }
func (Voice) Kind() TagKind    { return KindVoice }
func (Phoneme) Kind() TagKind  { return KindPhoneme }
func (Break) Kind() TagKind    { return KindBreak }

func (t Emphasis) attributes() ([]attribute, error) {
	v, err := enumParam(KindEmphasis, ParamLevel, t.Level, EmphasisLevels)
	return []attribute{{ParamLevel, v}}, err
}

func (t SayAs) attributes() ([]attribute, error) {
	v, err := enumParam(KindSayAs, ParamInterpretAs, t.InterpretAs, InterpretAsTypes)
	return []attribute{{ParamInterpretAs, v}}, err
}

func (t Sub) attributes() ([]attribute, error) {
	v, err := textParam(KindSub, ParamAlias, t.Alias)
	return []attribute{{ParamAlias, v}}, err
}

func (t Lang) attributes() ([]attribute, error) {
	v, err := textParam(KindLang, ParamXMLLang, t.Lang)
	if err != nil {
		return nil, err
	}
	if _, err := language.Parse(v); err != nil {
		return nil, invalid(KindLang, ParamXMLLang, v)
	}
	return []attribute{{ParamXMLLang, v}}, nil
}

func (t Voice) attributes() ([]attribute, error) {
	v, err := textParam(KindVoice, ParamName, t.Name)
	return []attribute{{ParamName, v}}, err
}

func (t Phoneme) attributes() ([]attribute, error) {
	alphabet, err := enumParam(KindPhoneme, ParamAlphabet, t.Alphabet, PhonemeAlphabets)
	if err != nil {
		return nil, err
	}
	ph, err := textParam(KindPhoneme, ParamPh, t.Ph)
	if err != nil {
		return nil, err
	}
	return []attribute{{ParamAlphabet, alphabet}, {ParamPh, ph}}, nil
}

func (t Break) attributes() ([]attribute, error) {
	hasStrength, hasTime := t.Strength != "", t.Time != ""
	if hasStrength == hasTime {
		return nil, &ConfigurationError{Kind: KindBreak, Err: ErrConflictingParams}
	}
	if hasStrength {
		v, err := enumParam(KindBreak, ParamStrength, t.Strength, BreakStrengths)
		return []attribute{{ParamStrength, v}}, err
	}
	if !breakTimeRegex.MatchString(t.Time) {
		return nil, invalid(KindBreak, ParamTime, t.Time)
	}
	return []attribute{{ParamTime, t.Time}}, nil
}

// BuildFragment maps a tag spec to its markup fragment. Break yields a void
// fragment; every other kind yields a paired one. Missing, conflicting or
// unknown parameters fail with a *ConfigurationError.
func BuildFragment(spec TagSpec) (Fragment, error) {
	if spec == nil {
		return Fragment{}, &ConfigurationError{Err: ErrUnknownTag}
	}

	attrs, err := spec.attributes()
	if err != nil {
		return Fragment{}, err
	}
	for _, a := range attrs {
		if strings.Contains(a.value, Placeholder) {
			return Fragment{}, invalid(spec.Kind(), a.name, a.value)
		}
	}

	name := string(spec.Kind())
	if spec.Kind() == KindBreak {
		return voidFragment(name, attrs), nil
	}
	return pairedFragment(name, attrs), nil
}

// ParseTagSpec builds a TagSpec from a kind name and string parameters, as
// they arrive from flags or preset files. Unknown parameters are ignored.
func ParseTagSpec(kind string, params map[string]string) (TagSpec, error) {
	get := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := params[k]; ok {
				return v
			}
		}
		return ""
	}

	switch TagKind(strings.ToLower(strings.TrimSpace(kind))) {
	case KindEmphasis:
		return Emphasis{Level: get(ParamLevel)}, nil
	case KindSayAs:
		return SayAs{InterpretAs: get(ParamInterpretAs, "interpret_as")}, nil
	case KindSub:
		return Sub{Alias: get(ParamAlias)}, nil
	case KindLang:
		return Lang{Lang: get(ParamXMLLang, "lang")}, nil
	case KindVoice:
		return Voice{Name: get(ParamName)}, nil
	case KindPhoneme:
		return Phoneme{Alphabet: get(ParamAlphabet), Ph: get(ParamPh)}, nil
	case KindBreak:
		return Break{Strength: get(ParamStrength), Time: get(ParamTime)}, nil
	default:
		return nil, &ConfigurationError{Kind: TagKind(kind), Err: ErrUnknownTag}
	}
}

func textParam(kind TagKind, param, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", missing(kind, param)
	}
	return value, nil
}

func enumParam(kind TagKind, param, value string, allowed []string) (string, error) {
	if value == "" {
		return "", missing(kind, param)
	}
	if !slices.Contains(allowed, value) {
		return "", invalid(kind, param, value)
	}
	return value, nil
}
