package session

import (
	"errors"
	"testing"

	"github.com/dgnsrekt/ssmltag/internal/presets"
	"github.com/dgnsrekt/ssmltag/ssml"
)

func TestNewSession(t *testing.T) {
	s := New("hello", nil)
	if s.Text() != "hello" {
		t.Errorf("Text() = %q", s.Text())
	}
	if s.Output() != "" {
		t.Errorf("Output() = %q, want empty", s.Output())
	}
	if s.Selection() != nil {
		t.Error("new session should have no selection")
	}
	if s.Presets() == nil {
		t.Error("Presets() should never be nil")
	}
}

func TestGenerate(t *testing.T) {
	s := New("Hello there. How are you?", nil)
	cfg := ssml.DefaultGenerationConfig()
	cfg.SentencePauses = true

	out, err := s.Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := `<speak><prosody rate="100%" pitch="medium" volume="medium"><p><s>Hello there.</s> <s>How are you?</s></p></prosody></speak>`
	if out != want {
		t.Errorf("Generate() = %q, want %q", out, want)
	}
	if s.Output() != out {
		t.Error("Output() does not hold the generated markup")
	}

	stats := s.Stats()
	if stats.Sentences != 2 {
		t.Errorf("Stats().Sentences = %d, want 2", stats.Sentences)
	}
	if stats.Bytes != len(out) {
		t.Errorf("Stats().Bytes = %d, want %d", stats.Bytes, len(out))
	}
	if stats.Duration <= 0 {
		t.Errorf("Stats().Duration = %v, want > 0", stats.Duration)
	}
}

func TestGenerateInvalidConfigKeepsOutput(t *testing.T) {
	s := New("Text.", nil)
	first, err := s.Generate(ssml.DefaultGenerationConfig())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	bad := ssml.DefaultGenerationConfig()
	bad.Rate = 500
	if _, err := s.Generate(bad); !errors.Is(err, ssml.ErrInvalidRate) {
		t.Fatalf("Generate(bad) error = %v, want %v", err, ssml.ErrInvalidRate)
	}
	if s.Output() != first {
		t.Errorf("Output() changed after failed generate: %q", s.Output())
	}
}

func TestInsertTagWithSelection(t *testing.T) {
	s := New("say old thing", nil)
	if err := s.Select(4, 7); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got := s.Selection().Text; got != "old" {
		t.Errorf("Selection().Text = %q", got)
	}

	if err := s.InsertTag(ssml.Emphasis{Level: "strong"}); err != nil {
		t.Fatalf("InsertTag() error = %v", err)
	}
	want := `say <emphasis level="strong">old</emphasis> thing`
	if s.Text() != want {
		t.Errorf("Text() = %q, want %q", s.Text(), want)
	}
	if s.Selection() != nil {
		t.Error("selection should be cleared after insertion")
	}
}

func TestInsertTagWithoutSelection(t *testing.T) {
	s := New("Intro. ", nil)
	if err := s.InsertTag(ssml.SayAs{InterpretAs: "characters"}); err != nil {
		t.Fatalf("InsertTag() error = %v", err)
	}
	want := `Intro. <say-as interpret-as="characters">your text here</say-as>`
	if s.Text() != want {
		t.Errorf("Text() = %q, want %q", s.Text(), want)
	}
}

func TestInsertTagConfigurationErrorLeavesState(t *testing.T) {
	s := New("keep me", nil)
	if _, err := s.Generate(ssml.DefaultGenerationConfig()); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	output := s.Output()
	if err := s.Select(0, 4); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	err := s.InsertTag(ssml.Break{Strength: "weak", Time: "1s"})
	if !ssml.IsConfigurationError(err) {
		t.Fatalf("InsertTag() error = %v, want configuration error", err)
	}
	if s.Text() != "keep me" {
		t.Errorf("Text() = %q, buffer should be untouched", s.Text())
	}
	if s.Output() != output {
		t.Errorf("Output() = %q, output should be untouched", s.Output())
	}
	if s.Selection() == nil {
		t.Error("selection should survive a rejected tag")
	}
}

func TestSelect(t *testing.T) {
	s := New("abc", nil)
	tests := []struct {
		name       string
		start, end int
		wantErr    bool
	}{
		{"whole buffer", 0, 3, false},
		{"empty range", 1, 1, false},
		{"negative", -1, 2, true},
		{"reversed", 2, 1, true},
		{"past end", 0, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Select(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("Select(%d, %d) error = %v, wantErr %v", tt.start, tt.end, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ssml.ErrInvalidSelection) {
				t.Errorf("error = %v, want %v", err, ssml.ErrInvalidSelection)
			}
		})
	}
}

func TestSelectTextAndClear(t *testing.T) {
	s := New("one two one", nil)
	if !s.SelectText("two") {
		t.Fatal("SelectText(two) = false")
	}
	if sel := s.Selection(); sel.Start != 4 || sel.End != 7 {
		t.Errorf("Selection() = %+v", sel)
	}
	if s.SelectText("three") {
		t.Error("SelectText(three) = true")
	}
	if s.Selection() == nil {
		t.Error("failed SelectText should keep the previous selection")
	}
	s.ClearSelection()
	if s.Selection() != nil {
		t.Error("ClearSelection() left a selection")
	}
}

func TestSetTextClearsSelection(t *testing.T) {
	s := New("abc", nil)
	_ = s.Select(0, 1)
	s.SetText("xyz")
	if s.Text() != "xyz" || s.Selection() != nil {
		t.Errorf("SetText() left text=%q selection=%+v", s.Text(), s.Selection())
	}
}

func TestInsertPreset(t *testing.T) {
	set := presets.Set{
		"slow":  `<prosody rate="slow">{text}</prosody>`,
		"outro": "Bye.",
	}
	s := New("go slow now", set)
	if !s.SelectText("slow") {
		t.Fatal("SelectText(slow) = false")
	}
	if err := s.InsertPreset("slow"); err != nil {
		t.Fatalf("InsertPreset(slow) error = %v", err)
	}
	if want := `go <prosody rate="slow">slow</prosody> now`; s.Text() != want {
		t.Errorf("Text() = %q, want %q", s.Text(), want)
	}

	if err := s.InsertPreset("outro"); err != nil {
		t.Fatalf("InsertPreset(outro) error = %v", err)
	}
	if want := `go <prosody rate="slow">slow</prosody> nowBye.`; s.Text() != want {
		t.Errorf("Text() = %q, want %q", s.Text(), want)
	}

	before := s.Text()
	if err := s.InsertPreset("missing"); !errors.Is(err, presets.ErrNotFound) {
		t.Errorf("InsertPreset(missing) error = %v, want %v", err, presets.ErrNotFound)
	}
	if s.Text() != before {
		t.Error("buffer changed after unknown preset")
	}
}

func TestInsertThenGenerateKeepsMarkup(t *testing.T) {
	set := presets.Set{"whisper": `<prosody volume="x-soft">{text}</prosody>`}
	tag := func(spec ssml.TagSpec) func(*Session) error {
		return func(s *Session) error { return s.InsertTag(spec) }
	}

	tests := []struct {
		name    string
		insert  func(*Session) error
		element string
	}{
		{"emphasis", tag(ssml.Emphasis{Level: "strong"}), `<emphasis level="strong">old</emphasis>`},
		{"say-as", tag(ssml.SayAs{InterpretAs: "characters"}), `<say-as interpret-as="characters">old</say-as>`},
		{"sub", tag(ssml.Sub{Alias: "Dr. Who"}), `<sub alias="Dr. Who">old</sub>`},
		{"lang", tag(ssml.Lang{Lang: "fr-FR"}), `<lang xml:lang="fr-FR">old</lang>`},
		{"voice", tag(ssml.Voice{Name: "Joanna"}), `<voice name="Joanna">old</voice>`},
		{"phoneme", tag(ssml.Phoneme{Alphabet: "ipa", Ph: "oʊld"}), `<phoneme alphabet="ipa" ph="oʊld">old</phoneme>`},
		{"preset", func(s *Session) error { return s.InsertPreset("whisper") }, `<prosody volume="x-soft">old</prosody>`},
	}

	cfg := ssml.DefaultGenerationConfig()
	cfg.SentencePauses = true
	const open = `<speak><prosody rate="100%" pitch="medium" volume="medium"><p><s>`
	const closing = `</s></p></prosody></speak>`

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(`Tom & Jerry say old thing.`, set)
			if !s.SelectText("old") {
				t.Fatal("SelectText(old) = false")
			}
			if err := tt.insert(s); err != nil {
				t.Fatalf("insert error = %v", err)
			}

			out, err := s.Generate(cfg)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			want := open + `Tom &amp; Jerry say ` + tt.element + ` thing.` + closing
			if out != want {
				t.Errorf("Generate() = %q, want %q", out, want)
			}
			if got := s.Stats().Sentences; got != 1 {
				t.Errorf("Stats().Sentences = %d, want 1", got)
			}
		})
	}

	t.Run("break", func(t *testing.T) {
		s := New(`Tom & Jerry say old thing.`, set)
		if err := s.InsertTag(ssml.Break{Time: "500ms"}); err != nil {
			t.Fatalf("InsertTag() error = %v", err)
		}
		out, err := s.Generate(cfg)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		want := open + `Tom &amp; Jerry say old thing.<break time="500ms"/>` + closing
		if out != want {
			t.Errorf("Generate() = %q, want %q", out, want)
		}
	})
}

func TestGenerateDurationIgnoresMarkup(t *testing.T) {
	plain := New("say old thing", nil)
	tagged := New("say old thing", nil)
	if err := tagged.Select(4, 7); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if err := tagged.InsertTag(ssml.Emphasis{Level: "strong"}); err != nil {
		t.Fatalf("InsertTag() error = %v", err)
	}

	cfg := ssml.DefaultGenerationConfig()
	if _, err := plain.Generate(cfg); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if _, err := tagged.Generate(cfg); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if plain.Stats().Duration != tagged.Stats().Duration {
		t.Errorf("Duration = %v with tags, %v without", tagged.Stats().Duration, plain.Stats().Duration)
	}
}
