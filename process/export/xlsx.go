// Package export writes batch results to a spreadsheet for manual review.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"scorekeeper/pkg/scorecard"
	"scorekeeper/process/batch"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding one row per processed file.
const SheetName = "Scorecards"

func headers() []string {
	h := []string{"File", "Success", "Needs Review", "Confidence", "Course", "Player", "Start Time"}
	for i := 1; i <= scorecard.HoleCount; i++ {
		h = append(h, fmt.Sprintf("Hole %d", i))
	}
	return append(h, "Total", "Matched Course", "Match Score", "Errors")
}

// WriteXLSX renders results as an XLSX workbook into w.
func WriteXLSX(w io.Writer, results []batch.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if index, _ := f.GetSheetIndex(SheetName); index == -1 {
		if _, err := f.NewSheet(SheetName); err != nil {
			return err
		}
	}
	_ = f.DeleteSheet("Sheet1")
	activeIndex, _ := f.GetSheetIndex(SheetName)
	f.SetActiveSheet(activeIndex)

	cols := headers()
	for i, h := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}

	for i, res := range results {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(SheetName, cell, v)
		}
		write(1, res.File)
		write(3, res.NeedsReview)
		if res.Err != nil {
			write(2, false)
			write(len(cols), res.Err.Error())
			continue
		}

		ext := res.Extraction
		write(2, ext.Success)
		write(4, ext.Confidence)
		write(5, deref(ext.CourseName))
		write(6, deref(ext.PlayerUsername))
		write(7, deref(ext.StartTime))
		for h, score := range ext.HoleScores {
			write(8+h, score)
		}
		col := 8 + scorecard.HoleCount
		if ext.TotalScore != nil {
			write(col, *ext.TotalScore)
		}
		if res.Match != nil {
			write(col+1, deref(res.Match.MatchedCourseID))
			write(col+2, res.Match.BestScore)
		}
		write(col+3, strings.Join(ext.Errors, "; "))
	}

	_ = f.SetColWidth(SheetName, "A", "A", 28)
	_ = f.SetColWidth(SheetName, "E", "F", 24)
	_ = f.SetColWidth(SheetName, "G", "G", 22)
	last, _ := excelize.ColumnNumberToName(len(cols))
	_ = f.SetColWidth(SheetName, last, last, 60)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook to path.
func SaveXLSX(path string, results []batch.Result) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteXLSX(out, results); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
