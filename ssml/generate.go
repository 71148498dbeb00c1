package ssml

import "github.com/dgnsrekt/ssmltag/ssml/sentence"

// Generate converts raw script text to SSML. cfg is expected to have passed
// Validate; Generate itself never fails. Empty text yields the wrapper
// elements around an empty body.
func Generate(raw string, cfg GenerationConfig) string {
	return Compose(sentence.Split(Normalize(raw)), cfg)
}

// Compose runs the markup stages on already segmented sentences.
func Compose(sentences []string, cfg GenerationConfig) string {
	body := Annotate(sentences, cfg.SentencePauses, cfg.LongPauseDash)
	return WrapRoot(Prosody(body, cfg.Rate, cfg.Pitch, cfg.Volume), cfg.WrapInRoot)
}
