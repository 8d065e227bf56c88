package cli

import (
	"fmt"
	"path/filepath"

	"github.com/example/vocabagent/internal/config"
	"github.com/example/vocabagent/internal/excel"
	"github.com/spf13/cobra"
)

var (
	importSheet    string
	importStartRow int
	importOut      string
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx|file.csv>",
	Short: "Import a word list into the corpus",
	Long: "Reads words from an Excel sheet or CSV file (columns: word, part\n" +
		"of speech, definition, example, synonyms, rank) and merges them\n" +
		"into the corpus JSON used for daily sessions.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		out := importOut
		if out == "" {
			out = filepath.Join(cfg.DataDir, "words.json")
		}

		importCfg := excel.DefaultImportConfig()
		importCfg.FilePath = args[0]
		importCfg.SheetName = importSheet
		importCfg.StartRow = importStartRow

		result, err := excel.ImportWords(importCfg, out)
		if err != nil {
			return err
		}

		fmt.Printf("Processed %d rows: %d created, %d updated, %d skipped\n",
			result.TotalProcessed, result.Created, result.Updated, result.Skipped)
		for _, e := range result.Errors {
			fmt.Printf("  %s\n", e)
		}
		fmt.Printf("Corpus written to %s (set VOCAB_WORDS_FILE to use it)\n", out)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importSheet, "sheet", "Sheet1", "Excel sheet name")
	importCmd.Flags().IntVar(&importStartRow, "start-row", 2, "first data row (1-based)")
	importCmd.Flags().StringVar(&importOut, "out", "", "output corpus file (default <data dir>/words.json)")
	rootCmd.AddCommand(importCmd)
}
