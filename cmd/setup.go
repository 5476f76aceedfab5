package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"video-trimmer/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through pointing the tool at your ffmpeg and
ffprobe binaries and choosing how trimmed files are named.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to video-trimmer setup!")
	fmt.Println()

	cfg := config.Default()

	ffmpegPath, err := prompter.Input("Path to the ffmpeg binary:", cfg.Engine.FFmpegPath)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Engine.FFmpegPath = ffmpegPath

	ffprobePath, err := prompter.Input("Path to the ffprobe binary:", cfg.Engine.FFprobePath)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Engine.FFprobePath = ffprobePath

	dirName, err := prompter.Input("Output directory name (created beside the inputs):", cfg.Output.DirectoryName)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Output.DirectoryName = dirName

	prefix, err := prompter.Input("Output filename prefix:", cfg.Output.FilenamePrefix)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Output.FilenamePrefix = prefix

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := config.Save(cfg, configPath); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Configuration written to %s\n", configPath)
	return nil
}
