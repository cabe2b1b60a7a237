package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikogura/resume-latex/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a default config file to --config, or to
$HOME/.resume-latex/config.json. A path ending in .yaml or .yml gets YAML.

The API key can instead come from OPENAI_API_KEY, ANTHROPIC_API_KEY or
GEMINI_API_KEY, in the environment or a .env file.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) (err error) {
	var path string
	path, err = config.InitConfig(getConfigFile())
	if err != nil {
		return err
	}

	fmt.Printf("%s Config written to %s\n", successStyle.Render("✓"), path)
	fmt.Println("Edit api_key and resume_path before running 'resume-latex tailor'.")
	return err
}
