// Package xlsx renders aggregated statistics as a workbook with one sheet and
// one column chart per view.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/syllabus-stats/internal/core/domain"
)

const (
	SheetAuthors     = "Authors"
	SheetDisciplines = "Disciplines"
	SheetHours       = "Hours"

	hoursMajorUnit = 50
	chartAnchor    = "D2"
)

type sheetLayout struct {
	name       string
	headers    []any
	chartTitle string
	majorUnit  float64
	rows       [][]any
}

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// Write saves the workbook to path, replacing an existing file.
func (w *Writer) Write(ctx context.Context, stats domain.Statistics, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, layout := range sheets(stats) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), layout.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(layout.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", layout.name, err)
		}
		if err := writeSheet(f, layout, bold); err != nil {
			return fmt.Errorf("write sheet %s: %w", layout.name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}
	return nil
}

func sheets(stats domain.Statistics) []sheetLayout {
	authors := sheetLayout{
		name:       SheetAuthors,
		headers:    []any{"Автор", "Количество дисциплин"},
		chartTitle: "Количество дисциплин по авторам",
		majorUnit:  1,
	}
	for _, a := range stats.Authors {
		authors.rows = append(authors.rows, []any{a.Author, len(a.Disciplines)})
	}

	mentions := sheetLayout{
		name:       SheetDisciplines,
		headers:    []any{"Дисциплина", "Упоминания"},
		chartTitle: "Количество упоминаний дисциплин",
		majorUnit:  1,
	}
	hours := sheetLayout{
		name:       SheetHours,
		headers:    []any{"Дисциплина", "Академические часы"},
		chartTitle: "Академические часы по дисциплинам",
		majorUnit:  hoursMajorUnit,
	}
	for _, d := range stats.Disciplines {
		if d.Mentions > 0 {
			mentions.rows = append(mentions.rows, []any{d.Discipline, d.Mentions})
		}
		if d.Hours > 0 {
			hours.rows = append(hours.rows, []any{d.Discipline, d.Hours})
		}
	}
	return []sheetLayout{authors, mentions, hours}
}

func writeSheet(f *excelize.File, layout sheetLayout, headerStyle int) error {
	if err := f.SetSheetRow(layout.name, "A1", &layout.headers); err != nil {
		return err
	}
	if err := f.SetCellStyle(layout.name, "A1", "B1", headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(layout.name, "A", "A", 45); err != nil {
		return err
	}
	if err := f.SetColWidth(layout.name, "B", "B", 22); err != nil {
		return err
	}

	for i, row := range layout.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(layout.name, cell, &row); err != nil {
			return err
		}
	}
	if len(layout.rows) == 0 {
		return nil
	}

	last := len(layout.rows) + 1
	return f.AddChart(layout.name, chartAnchor, &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", layout.name),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", layout.name, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", layout.name, last),
		}},
		Title:  []excelize.RichTextRun{{Text: layout.chartTitle}},
		Legend: excelize.ChartLegend{Position: "none"},
		YAxis:  excelize.ChartAxis{MajorUnit: layout.majorUnit},
		Dimension: excelize.ChartDimension{
			Width:  720,
			Height: 400,
		},
	})
}
