package fileio

import (
	"bytes"
	"errors"
	"io"

	xls "github.com/extrame/xls"
)

// Выгрузки из 1С в .xls чаще всего cp1251, реже UTF-8/KOI8-R.
var xlsCharsets = []string{"windows-1251", "utf-8", "koi8-r"}

// sheetWidth — реальная ширина листа. Row.LastCol() у старых .xls врёт,
// поэтому пробегаем колонки сами.
func sheetWidth(sheet *xls.WorkSheet) int {
	const probeMax = 512
	width := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		r := sheet.Row(i)
		if r == nil {
			continue
		}
		for j := probeMax - 1; j >= width; j-- {
			if normalizeCell(r.Col(j)) != "" {
				width = j + 1
				break
			}
		}
	}
	return max(width, 1)
}

func readXLS(r io.Reader, headerRow int) ([][]string, error) {
	if headerRow <= 0 {
		return nil, errors.New("headerRow must be 1-based and >= 1")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var wb *xls.WorkBook
	var lastErr error
	for _, ch := range xlsCharsets {
		wb, err = xls.OpenReader(bytes.NewReader(b), ch)
		if err == nil && wb != nil {
			break
		}
		lastErr = err
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return nil, lastErr
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, nil
	}

	width := sheetWidth(sheet)
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		cols := make([]string, width)
		if row != nil {
			for j := range width {
				cols[j] = row.Col(j)
			}
		}
		rows = append(rows, cols)
	}
	return rows, nil
}
