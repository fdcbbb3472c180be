package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/martian/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "martian [text]",
		Short: "English <-> Alien glyph translator",
		Long: `martian translates between English and the alien glyph alphabet.

Every Latin letter maps to exactly one glyph; digits, punctuation and
whitespace are kept as they are.

Examples:
  martian                          # Launch interactive GUI (default)
  martian --tui                    # Launch terminal UI
  martian "take me to your leader" # Translate to alien
  martian --to-english "⊑⟒⌰⌰⍜"     # Translate to English
  martian --batch lines.txt        # Translate a file line by line
  martian --anki                   # Export the alphabet as an Anki deck`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.martian.yaml)")

	// Local flags
	cmd.Flags().BoolVarP(&flags.ToEnglish, "to-english", "e", false, "Translate from alien glyphs to English")
	cmd.Flags().StringVarP(&flags.Direction, "direction", "d", "", "Default direction: alien or english (default alien)")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Write translations to file instead of stdout")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate lines from file (one per line)")
	cmd.Flags().BoolVar(&flags.TUIMode, "tui", false, "Launch the terminal user interface")
	cmd.Flags().BoolVarP(&flags.Copy, "copy", "c", false, "Copy the translation to the clipboard")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move an existing output file into archive/ instead of overwriting it")
	cmd.Flags().StringVar(&flags.ClipboardTool, "clipboard-tool", "", "Fallback clipboard command (e.g. 'xclip -selection clipboard', default: auto-detect)")

	// Anki flags
	cmd.Flags().BoolVar(&flags.GenerateAnki, "anki", false, "Export the alien alphabet as an Anki deck (APKG format by default)")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Generate CSV format instead of APKG when using --anki")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().StringVar(&flags.AnkiOutput, "anki-output", "", "Anki export path (default: <deck name>.apkg or .csv)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translate.to_english", cmd.Flags().Lookup("to-english"))
	viper.BindPFlag("translate.direction", cmd.Flags().Lookup("direction"))
	viper.BindPFlag("output.file", cmd.Flags().Lookup("output"))
	viper.BindPFlag("output.archive", cmd.Flags().Lookup("archive"))
	viper.BindPFlag("ui.tui", cmd.Flags().Lookup("tui"))
	viper.BindPFlag("clipboard.tool", cmd.Flags().Lookup("clipboard-tool"))
	viper.BindPFlag("anki.deck_name", cmd.Flags().Lookup("deck-name"))
	viper.BindPFlag("anki.csv", cmd.Flags().Lookup("anki-csv"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".martian" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".martian")
	}

	// Environment variables
	viper.SetEnvPrefix("MARTIAN")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ApplyConfig copies config file values into flags the user did not set
// on the command line.
func ApplyConfig(cmd *cobra.Command, flags *Flags) {
	if !cmd.Flags().Changed("to-english") {
		flags.ToEnglish = viper.GetBool("translate.to_english")
	}
	if !cmd.Flags().Changed("direction") {
		flags.Direction = viper.GetString("translate.direction")
	}
	if !cmd.Flags().Changed("output") {
		flags.OutputFile = viper.GetString("output.file")
	}
	if !cmd.Flags().Changed("archive") {
		flags.Archive = viper.GetBool("output.archive")
	}
	if !cmd.Flags().Changed("tui") {
		flags.TUIMode = viper.GetBool("ui.tui")
	}
	if !cmd.Flags().Changed("clipboard-tool") {
		flags.ClipboardTool = viper.GetString("clipboard.tool")
	}
	if !cmd.Flags().Changed("deck-name") {
		if name := viper.GetString("anki.deck_name"); name != "" {
			flags.DeckName = name
		}
	}
	if !cmd.Flags().Changed("anki-csv") {
		flags.AnkiCSV = viper.GetBool("anki.csv")
	}
}
