package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dgnsrekt/ssmltag/internal/options"
	"github.com/dgnsrekt/ssmltag/internal/presets"
	"github.com/dgnsrekt/ssmltag/internal/session"
	"github.com/dgnsrekt/ssmltag/ssml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	tagPreset     string
	tagSelect     string
	tagSelectText string
	tagWrite      bool

	// flag name -> tag parameter name
	tagParamFlags = map[string]string{
		"level":        ssml.ParamLevel,
		"interpret-as": ssml.ParamInterpretAs,
		"alias":        ssml.ParamAlias,
		"lang":         ssml.ParamXMLLang,
		"name":         ssml.ParamName,
		"alphabet":     ssml.ParamAlphabet,
		"ph":           ssml.ParamPh,
		"strength":     ssml.ParamStrength,
		"time":         ssml.ParamTime,
	}

	tagCmd = &cobra.Command{
		Use:   "tag [KIND] [SOURCE]",
		Short: "Insert an inline tag into a script",
		Long: paragraph(fmt.Sprintf("\n%s an inline tag around the selected text, or append it to the script when nothing is selected. Kinds: %s.",
			keyword("Insert"), strings.Join(tagKindNames(), ", "))),
		Example: paragraph(`ssmltag tag emphasis --level strong --select 4:7 script.txt
ssmltag tag break --time 500ms -i script.txt
ssmltag tag --preset whisper --select-text "between us" script.txt`),
		Args:      cobra.MaximumNArgs(2),
		ValidArgs: tagKindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeTag(cmd, args, cmd.OutOrStdout())
		},
	}
)

func tagKindNames() []string {
	names := make([]string, len(ssml.TagKinds))
	for i, k := range ssml.TagKinds {
		names[i] = string(k)
	}
	return names
}

func executeTag(cmd *cobra.Command, args []string, w io.Writer) error {
	var kind string
	if tagPreset == "" {
		if len(args) == 0 {
			return errors.New("missing tag kind: pass one of " + strings.Join(tagKindNames(), ", "))
		}
		kind, args = args[0], args[1:]
	}
	if len(args) > 1 {
		return errors.New("too many arguments")
	}

	src, err := sourceFromArgs(args)
	if err != nil {
		return err
	}
	b, err := io.ReadAll(src.reader)
	_ = src.reader.Close()
	if err != nil {
		return fmt.Errorf("unable to read from reader: %w", err)
	}

	set := presets.LoadOrEmpty(options.PresetsPath(viper.GetViper(), environ))
	s := session.New(string(b), set)
	if err := applySelection(s, tagSelect, tagSelectText); err != nil {
		return err
	}

	if tagPreset != "" {
		err = s.InsertPreset(tagPreset)
	} else {
		var spec ssml.TagSpec
		spec, err = ssml.ParseTagSpec(kind, tagParams(cmd))
		if err == nil {
			err = s.InsertTag(spec)
		}
	}
	if err != nil {
		return fmt.Errorf("unable to insert tag: %w", err)
	}

	if tagWrite {
		if src.path == "" {
			return errors.New("cannot write stdin in place: pass a file")
		}
		return writeInPlace(src.path, s.Text())
	}
	if _, err := fmt.Fprintln(w, s.Text()); err != nil {
		return fmt.Errorf("unable to write to writer: %w", err)
	}
	return nil
}

// tagParams collects the tag parameter flags that were set.
func tagParams(cmd *cobra.Command) map[string]string {
	params := make(map[string]string)
	for flag, param := range tagParamFlags {
		f := cmd.Flags().Lookup(flag)
		if f != nil && f.Changed {
			params[param] = f.Value.String()
		}
	}
	return params
}

// applySelection selects by offsets ("start:end") or, failing that, by the
// first occurrence of text.
func applySelection(s *session.Session, offsets, text string) error {
	switch {
	case offsets != "":
		start, end, err := parseSelection(offsets)
		if err != nil {
			return err
		}
		if err := s.Select(start, end); err != nil {
			return err
		}
		if text != "" && s.Selection().Text != text {
			return fmt.Errorf("%w: want %q, buffer holds %q", ssml.ErrSelectionMismatch, text, s.Selection().Text)
		}
	case text != "":
		if !s.SelectText(text) {
			return fmt.Errorf("%w: %q not found", ssml.ErrInvalidSelection, text)
		}
	}
	return nil
}

// parseSelection parses "start:end" byte offsets.
func parseSelection(v string) (int, int, error) {
	a, b, ok := strings.Cut(v, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid selection %q: want start:end", v)
	}
	start, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid selection start %q: %w", a, err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid selection end %q: %w", b, err)
	}
	return start, end, nil
}

func writeInPlace(path, text string) error {
	mode := os.FileMode(0o644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return fmt.Errorf("unable to write file: %w", err)
	}
	return nil
}

func init() {
	flags := tagCmd.Flags()
	flags.StringVar(&tagPreset, "preset", "", "insert a named preset instead of a tag kind")
	flags.StringVar(&tagSelect, "select", "", "byte offsets of the selection, as start:end")
	flags.StringVar(&tagSelectText, "select-text", "", "select the first occurrence of this text")
	flags.BoolVarP(&tagWrite, "in-place", "i", false, "write the result back to the source file")

	flags.String("level", "", "emphasis level (strong, moderate, reduced)")
	flags.String("interpret-as", "", "say-as interpretation, e.g. characters, date, telephone")
	flags.String("alias", "", "sub alias text")
	flags.String("lang", "", "lang language tag, e.g. fr-FR")
	flags.String("name", "", "voice name")
	flags.String("alphabet", "", "phoneme alphabet (ipa, x-sampa)")
	flags.String("ph", "", "phoneme pronunciation")
	flags.String("strength", "", "break strength (none, x-weak, weak, medium, strong, x-strong)")
	flags.String("time", "", "break duration, e.g. 500ms or 1.5s")
}
