package main

import (
	"fmt"
	"os"

	"github.com/dgnsrekt/ssmltag/internal/options"
	"github.com/dgnsrekt/ssmltag/internal/presets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var presetsCmd = &cobra.Command{
	Use:     "presets [QUERY]",
	Short:   "List tag presets",
	Long:    paragraph(fmt.Sprintf("\n%s the presets from the preset file, optionally narrowed by a fuzzy query.", keyword("List"))),
	Example: paragraph("ssmltag presets\nssmltag presets whis"),
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := options.PresetsPath(viper.GetViper(), environ)
		set := presets.LoadOrEmpty(path)
		if len(set) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No presets found. Set \"presets\" in the config file or SSMLTAG_PRESETS.")
			return nil
		}

		if len(args) == 1 {
			matched := presets.Set{}
			for _, name := range set.Suggest(args[0]) {
				matched[name] = set[name]
			}
			set = matched
		}

		w := 0
		if term.IsTerminal(int(os.Stdout.Fd())) {
			w = int(width) //nolint:gosec
		}
		return set.Write(cmd.OutOrStdout(), w) //nolint:wrapcheck
	},
}
