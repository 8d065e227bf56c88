// Package excel imports word lists from Excel or CSV files into the
// corpus JSON consumed by the session.
package excel

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/vocabagent/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	WordColumn       int    // Zero-based column with the headword
	PosColumn        int    // Column with the part of speech
	DefinitionColumn int    // Column with the definition
	ExampleColumn    int    // Column with an example sentence
	SynonymsColumn   int    // Column with comma-separated synonyms
	RankColumn       int    // Column with the 1-5 difficulty rank
	SheetName        string // Name of the sheet to import
	StartRow         int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:       0,
		PosColumn:        1,
		DefinitionColumn: 2,
		ExampleColumn:    3,
		SynonymsColumn:   4,
		RankColumn:       5,
		SheetName:        "Sheet1",
		StartRow:         2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// ImportWords imports words from an Excel or CSV file and merges them
// into the corpus JSON at outPath, replacing entries that share a
// headword and appending new ones
func ImportWords(config ImportConfig, outPath string) (*ImportResult, error) {
	var rows [][]string
	var err error

	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	existing, err := readCorpus(outPath)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(existing))
	for i, w := range existing {
		index[strings.ToLower(w.Headword)] = i
	}

	result := &ImportResult{Errors: make([]string, 0)}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		word, err := parseRow(row, config)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}

		if at, ok := index[strings.ToLower(word.Headword)]; ok {
			existing[at] = word
			result.Updated++
		} else {
			index[strings.ToLower(word.Headword)] = len(existing)
			existing = append(existing, word)
			result.Created++
		}
	}

	if err := writeCorpus(outPath, existing); err != nil {
		return nil, err
	}
	return result, nil
}

func parseRow(row []string, config ImportConfig) (models.Word, error) {
	headword := strings.TrimSpace(cell(row, config.WordColumn))
	if headword == "" {
		return models.Word{}, fmt.Errorf("empty headword")
	}
	definition := strings.TrimSpace(cell(row, config.DefinitionColumn))
	if definition == "" {
		return models.Word{}, fmt.Errorf("empty definition for %q", headword)
	}

	word := models.Word{
		Headword:     headword,
		PartOfSpeech: strings.TrimSpace(cell(row, config.PosColumn)),
		Definitions: []models.Definition{{
			Text:    definition,
			Example: strings.TrimSpace(cell(row, config.ExampleColumn)),
		}},
	}

	if syns := strings.TrimSpace(cell(row, config.SynonymsColumn)); syns != "" {
		for _, s := range strings.Split(syns, ",") {
			if s = strings.TrimSpace(s); s != "" {
				word.Synonyms = append(word.Synonyms, s)
			}
		}
	}

	if rank := strings.TrimSpace(cell(row, config.RankColumn)); rank != "" {
		if n, err := strconv.Atoi(rank); err == nil && n >= 1 && n <= 5 {
			word.Rank = n
		}
	}

	return word, nil
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readCorpus(path string) ([]models.Word, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus file: %v", err)
	}
	var words []models.Word
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to parse corpus file: %v", err)
	}
	return words, nil
}

func writeCorpus(path string, words []models.Word) error {
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal corpus: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write corpus file: %v", err)
	}
	return nil
}
