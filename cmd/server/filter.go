package main

import (
	"fmt"
	"strings"

	"github.com/casual-cat/instamini-project/internal/filter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var wordsFile string

var filterCmd = &cobra.Command{
	Use:   "filter <text>",
	Short: "Print text as the content filter would store it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := wordsFile
		if path == "" {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()
			path = cfg.BadWordsFile
		}
		words := filter.LoadFile(path, zap.NewNop())
		return printFiltered(cmd, words, strings.Join(args, " "))
	},
}

func init() {
	filterCmd.Flags().StringVar(&wordsFile, "words", "", "word list to use instead of BAD_WORDS_FILE")
}

func printFiltered(cmd *cobra.Command, words filter.WordSet, text string) error {
	out, n := filter.Redact(text, words)
	count, ok := filter.WithinLimit(text)
	fmt.Fprintln(cmd.OutOrStdout(), out)
	fmt.Fprintf(cmd.ErrOrStderr(), "%d words, %d redacted", count, n)
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), ", over the %d word limit", filter.MaxWords)
	}
	fmt.Fprintln(cmd.ErrOrStderr())
	return nil
}
