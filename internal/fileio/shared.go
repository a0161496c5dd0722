package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// Table — строки листа как map[заголовок]значение, заголовки в порядке колонок.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// ReadTable выбирает парсер по расширению. headerRow — номер строки заголовков (1-based).
func ReadTable(r io.Reader, filename string, headerRow int) (Table, error) {
	if headerRow <= 0 {
		headerRow = 1
	}
	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(r)
	case ".xls":
		rows, err = readXLS(r, headerRow)
	case ".csv", ".txt":
		rows, err = readCSV(r)
	default:
		return Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", filename, err)
	}
	if len(rows) == 0 {
		return Table{}, nil
	}
	h := pickHeader(rows, headerRow)
	return Table{Headers: h, Rows: rowsToMaps(rows, h, headerRow)}, nil
}

// pickHeader — строка заголовков; пустые и повторные имена получают Column N.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	seen := make(map[string]struct{}, len(h))
	for i, v := range h {
		v = normalizeCell(v)
		if _, dup := seen[v]; v == "" || dup {
			v = fmt.Sprintf("Column %d", i+1)
		}
		seen[v] = struct{}{}
		out[i] = v
	}
	return out
}

// rowsToMaps — строки после заголовка в []map, полностью пустые пропускаем.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]string {
	var out []map[string]string
	for r := headerRow; r < len(rows); r++ {
		rec := rows[r]
		m := make(map[string]string, len(headers))
		empty := true
		for c, name := range headers {
			var v string
			if c < len(rec) {
				v = normalizeCell(rec[c])
			}
			if v != "" {
				empty = false
			}
			m[name] = v
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}

// normalizeCell: спец-пробелы в обычные, переносы строк в пробел, trim.
func normalizeCell(s string) string {
	s = cellReplacer.Replace(s)
	return strings.TrimSpace(s)
}

var cellReplacer = strings.NewReplacer(
	"\u00A0", " ", "\u202F", " ", "\u2009", " ",
	"\r\n", " ", "\n", " ", "\r", " ", "\t", " ",
	"\uFEFF", "",
)
