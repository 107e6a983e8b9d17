// Package cli defines the command-line interface: a one-shot ask command
// and an interactive chat session over the same local context.
package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"recurag/internal/tui"
)

var (
	cfgPath      string
	contextFiles []string
)

var rootCmd = &cobra.Command{
	Use:   "recurag",
	Short: "Offline question answering over local documents",
	Long:  `recurag answers questions from a fixed set of local text files using recursive retrieval passes. No network, no external model.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question and print the cited answer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := assemble(cfgPath, contextFiles)
		if err != nil {
			return err
		}
		answer, err := svc.Answer(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(answer.Text)
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question-answering session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := assemble(cfgPath, contextFiles)
		if err != nil {
			return err
		}
		_, err = tea.NewProgram(tui.New(svc)).Run()
		return err
	},
}

// Execute runs the CLI.
func Execute() error {
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (optional)")
	rootCmd.PersistentFlags().StringSliceVar(&contextFiles, "context", nil, "Files or globs to load into the context")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
}
