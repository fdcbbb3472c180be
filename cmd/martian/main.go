package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/martian/internal/cli"
	"codeberg.org/snonux/martian/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Values from the config file only apply where no flag was given
	cli.ApplyConfig(cmd, flags)

	if _, err := flags.TranslationDirection(); err != nil {
		return err
	}

	proc := processor.NewProcessor(flags)

	switch {
	case flags.GenerateAnki:
		outputPath, err := proc.GenerateAnkiFile()
		if err != nil {
			return err
		}
		fmt.Printf("Anki package created: %s\n", outputPath)
		return nil
	case flags.BatchFile != "":
		return proc.ProcessBatch()
	case len(args) > 0:
		return proc.ProcessText(args[0])
	case flags.TUIMode:
		return proc.RunTUIMode()
	default:
		// No input provided - launch GUI mode by default
		return proc.RunGUIMode()
	}
}
