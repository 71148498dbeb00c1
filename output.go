package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/ssmltag/internal/markdown"
	"github.com/dgnsrekt/ssmltag/internal/session"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

// executeCLI generates SSML for one script and writes it to w.
func executeCLI(script string, w io.Writer) error {
	if markdownInput {
		script = markdown.NewExtractor().PlainText(script)
	}

	s := session.New(script, nil)
	out, err := s.Generate(genConfig)
	if err != nil {
		return fmt.Errorf("unable to generate ssml: %w", err)
	}

	if showStats {
		reportStats(s.Stats())
	}

	if copyOutput {
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("unable to copy to clipboard: %w", err)
		}
		log.Debug("Copied output to clipboard", "bytes", len(out))
	}

	if pretty {
		rendered, err := renderMarkup(out)
		if err != nil {
			return err
		}
		out = rendered
	} else {
		out += "\n"
	}

	if _, err = fmt.Fprint(w, out); err != nil {
		return fmt.Errorf("unable to write to writer: %w", err)
	}
	return nil
}

// renderMarkup highlights SSML as an XML code block.
func renderMarkup(markup string) (string, error) {
	style := styles.LightStyle
	if termenv.HasDarkBackground() {
		style = styles.DarkStyle
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(int(width)), //nolint:gosec
	)
	if err != nil {
		return "", fmt.Errorf("unable to create renderer: %w", err)
	}

	out, err := r.Render(wrapCodeBlock(markup, "xml"))
	if err != nil {
		return "", fmt.Errorf("unable to render markup: %w", err)
	}
	return out, nil
}

func wrapCodeBlock(s, language string) string {
	return "```" + language + "\n" + s + "\n```"
}

// reportStats prints generation statistics to stderr.
func reportStats(st session.Stats) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "ssmltag"})
	logger.Info("Generated SSML",
		"sentences", st.Sentences,
		"size", humanize.Bytes(uint64(st.Bytes)), //nolint:gosec
		"speaking", st.Duration.Round(time.Second),
	)
}
