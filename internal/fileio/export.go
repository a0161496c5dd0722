package fileio

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	excelize "github.com/xuri/excelize/v2"

	"matcher-service/internal/reconcile/model"
)

const (
	sheetResults = "Совпадения"
	sheetSummary = "Сводка"
)

var resultHeader = []any{
	"Код материала", "Материал", "Код позиции", "Позиция прайса", "Поставщик", "Цена",
	"Похожесть, %", "Качество", "Уверенность", "Оценка", "Высокая уверенность", "Идеально",
	"Имя, %", "Описание, %", "Категория, %", "Бренд, %", "Характеристики, %",
}

var summaryHeader = []any{
	"Код материала", "Материал", "Категория", "Найдено", "Лучшая похожесть, %",
	"Лучшая позиция", "Поставщик", "Цена", "Высокая уверенность", "Всего совпадений",
}

// WriteReport пишет отчёт в формате по расширению имени: .xlsx или .json.
func WriteReport(w io.Writer, filename string, rep model.Report) error {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx":
		return WriteReportXLSX(w, rep)
	case ".json":
		return WriteReportJSON(w, rep)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

func WriteReportJSON(w io.Writer, rep model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteReportXLSX: лист совпадений и лист сводки по материалам.
func WriteReportXLSX(w io.Writer, rep model.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetResults); err != nil {
		return err
	}
	if _, err := f.NewSheet(sheetSummary); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	rows := make([][]any, 0, len(rep.Results))
	for _, r := range rep.Results {
		rows = append(rows, []any{
			r.Material.ID(), r.Material.Name(), r.PriceItem.ID(), r.PriceItem.Name(), r.PriceItem.Supplier(),
			r.PriceItem.FormattedPrice(),
			round2(r.Similarity), round2(r.Quality), round2(r.Confidence), string(r.Grade()),
			yesNo(r.HighConfidence()), yesNo(r.Perfect()),
			round2(r.Details[model.FieldName]), round2(r.Details[model.FieldDescription]),
			round2(r.Details[model.FieldCategory]), round2(r.Details[model.FieldBrand]),
			round2(r.Details[model.FieldSpecifications]),
		})
	}
	if err := writeSheet(f, sheetResults, resultHeader, rows, bold); err != nil {
		return err
	}

	rows = rows[:0]
	for _, s := range rep.Summary {
		rows = append(rows, []any{
			s.MaterialID, s.MaterialName, s.MaterialCategory.LocalizedName(), yesNo(s.BestMatchFound),
			round2(s.BestMatchSimilarity), s.BestMatchItemName, s.BestMatchSupplier, s.BestMatchPrice,
			yesNo(s.BestMatchHighConfidence), s.TotalMatchesFound,
		})
	}
	if err := writeSheet(f, sheetSummary, summaryHeader, rows, bold); err != nil {
		return err
	}

	return f.Write(w)
}

func yesNo(b bool) string {
	if b {
		return "да"
	}
	return "нет"
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
