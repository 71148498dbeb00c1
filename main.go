// Package main provides the entry point for the ssmltag CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/ssmltag/internal/options"
	"github.com/dgnsrekt/ssmltag/ssml"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile    string
	environ       options.Env
	genConfig     ssml.GenerationConfig
	markdownInput bool
	pretty        bool
	copyOutput    bool
	watch         bool
	showStats     bool
	width         uint

	rootCmd = &cobra.Command{
		Use:   "ssmltag [SOURCE]",
		Short: "Turn plain script text into SSML",
		Long: paragraph(
			fmt.Sprintf("\nTurn plain script text into %s for speech engines.", keyword("SSML")),
		),
		Example: paragraph("ssmltag script.txt\nssmltag --sentence-pauses --rate 90 script.txt\ncat script.txt | ssmltag --no-speak"),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}

	generateCmd = &cobra.Command{
		Use:     "generate [SOURCE]",
		Aliases: []string{"gen"},
		Short:   "Generate SSML from a script (the default command)",
		Args:    cobra.MaximumNArgs(1),
		RunE:    execute,
	}
)

// source provides a readable script.
type source struct {
	reader io.ReadCloser
	path   string // empty for stdin
}

// sourceFromArg opens a script file, or stdin for "-".
func sourceFromArg(arg string) (*source, error) {
	if arg == "-" {
		return &source{reader: os.Stdin}, nil
	}

	r, err := os.Open(arg)
	if err != nil {
		return nil, fmt.Errorf("unable to open file: %w", err)
	}
	p, err := filepath.Abs(arg)
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("unable to get absolute path: %w", err)
	}
	return &source{r, p}, nil
}

// sourceFromArgs picks the script source: the single argument, or stdin when
// it is a pipe.
func sourceFromArgs(args []string) (*source, error) {
	if len(args) > 0 {
		return sourceFromArg(args[0])
	}
	if yes, err := stdinIsPipe(); err != nil {
		return nil, err
	} else if yes {
		return &source{reader: os.Stdin}, nil
	}
	return nil, errors.New("missing script source: pass a file or pipe text on stdin")
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to open file: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

// skipOptions marks commands that must run even with a broken configuration.
const skipOptions = "skip-options"

func validateOptions(cmd *cobra.Command) error {
	if _, ok := cmd.Annotations[skipOptions]; ok {
		return nil
	}

	if cmd.Flags().Changed("config") {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config file: %w", err)
		}
	}

	var err error
	genConfig, err = options.GenerationConfig(viper.GetViper())
	if err != nil {
		return err
	}

	markdownInput = viper.GetBool("markdown")
	showStats = viper.GetBool("stats")
	width = viper.GetUint("width")

	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	// Pretty output only makes sense on a terminal
	if pretty && !isTerminal {
		log.Debug("Ignoring --pretty, stdout is not a terminal")
		pretty = false
	}
	if copyOutput && watch {
		return errors.New("cannot use both copy and watch")
	}

	// Detect terminal width
	if !cmd.Flags().Changed("width") { //nolint:nestif
		if isTerminal && width == 0 {
			w, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err == nil {
				width = uint(w) //nolint:gosec
			}

			if width > 120 {
				width = 120
			}
		}
		if width == 0 {
			width = 80
		}
	}
	return nil
}

func execute(cmd *cobra.Command, args []string) error {
	src, err := sourceFromArgs(args)
	if err != nil {
		return err
	}
	defer src.reader.Close() //nolint:errcheck

	if watch {
		if src.path == "" {
			return errors.New("cannot watch stdin: pass a file")
		}
		return watchSource(cmd.Context(), src.path, cmd.OutOrStdout())
	}

	b, err := io.ReadAll(src.reader)
	if err != nil {
		return fmt.Errorf("unable to read from reader: %w", err)
	}
	return executeCLI(string(b), cmd.OutOrStdout())
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = rootCmd.ExecuteContext(ctx)
	stop()
	_ = closer()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	var err error
	environ, err = options.ParseEnv()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))

	// Generation options
	d := ssml.DefaultGenerationConfig()
	flags.Bool("speak", d.WrapInRoot, "wrap output in <speak> tags")
	flags.Int("rate", d.Rate, fmt.Sprintf("prosody rate in percent (%d-%d)", ssml.MinRate, ssml.MaxRate))
	flags.String("pitch", string(d.Pitch), "prosody pitch (x-low, low, medium, high, x-high)")
	flags.String("volume", string(d.Volume), "prosody volume (silent, x-soft, soft, medium, loud, x-loud)")
	flags.Bool("sentence-pauses", d.SentencePauses, "add brief pauses with <s> and <p> tags")
	flags.Bool("dash-pauses", d.LongPauseDash, "add a longer pause after sentences using —")

	// Input and output
	flags.BoolP("markdown", "m", false, "treat the script as markdown")
	flags.BoolVarP(&pretty, "pretty", "p", false, "highlight the output (terminal only)")
	flags.BoolVarP(&copyOutput, "copy", "c", false, "copy the output to the clipboard")
	flags.BoolVarP(&watch, "watch", "W", false, "regenerate whenever the script file changes")
	flags.Bool("stats", false, "report sentence count, size and estimated speaking time")
	flags.UintP("width", "w", 0, "word-wrap pretty output at width (set to 0 to detect)")

	// Config bindings
	_ = viper.BindPFlag(options.KeySpeak, flags.Lookup("speak"))
	_ = viper.BindPFlag(options.KeyRate, flags.Lookup("rate"))
	_ = viper.BindPFlag(options.KeyPitch, flags.Lookup("pitch"))
	_ = viper.BindPFlag(options.KeyVolume, flags.Lookup("volume"))
	_ = viper.BindPFlag(options.KeySentencePauses, flags.Lookup("sentence-pauses"))
	_ = viper.BindPFlag(options.KeyLongPauseDash, flags.Lookup("dash-pauses"))
	_ = viper.BindPFlag("markdown", flags.Lookup("markdown"))
	_ = viper.BindPFlag("stats", flags.Lookup("stats"))
	_ = viper.BindPFlag("width", flags.Lookup("width"))

	options.SetDefaults(viper.GetViper())
	viper.SetDefault("markdown", false)
	viper.SetDefault("stats", false)
	viper.SetDefault("width", 0)

	rootCmd.AddCommand(generateCmd, tagCmd, presetsCmd, configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "ssmltag")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := environ.XDGConfig; c != "" {
		dirs = append([]string{filepath.Join(c, "ssmltag")}, dirs...)
	}

	if c := environ.ConfigHome; c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("ssmltag")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("ssmltag")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "ssmltag.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
