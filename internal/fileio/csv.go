package fileio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// readCSV: автоопределение кодировки (UTF-8, cp1251, KOI8-R) и разделителя (; , tab).
func readCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	peek, _ := br.Peek(4096)
	var dec io.Reader = br
	switch detectCharset(peek) {
	case "windows-1251":
		dec = transform.NewReader(br, charmap.Windows1251.NewDecoder())
		peek, _ = charmap.Windows1251.NewDecoder().Bytes(peek)
	case "koi8-r":
		dec = transform.NewReader(br, charmap.KOI8R.NewDecoder())
		peek, _ = charmap.KOI8R.NewDecoder().Bytes(peek)
	}

	cr := csv.NewReader(dec)
	cr.Comma = sniffDelimiter(peek)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func detectCharset(peek []byte) string {
	if len(peek) == 0 {
		return "utf-8"
	}
	det, err := chardet.NewTextDetector().DetectBest(peek)
	if err != nil || det == nil {
		return "utf-8"
	}
	switch cs := strings.ToLower(det.Charset); cs {
	case "windows-1251", "cp1251":
		return "windows-1251"
	case "koi8-r":
		return "koi8-r"
	default:
		return "utf-8"
	}
}

// sniffDelimiter — по первой строке: выгрузки из 1С и Excel (RU) обычно через ';'.
func sniffDelimiter(peek []byte) rune {
	line := peek
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		line = peek[:i]
	}
	best, bestN := ',', 0
	for _, d := range []rune{';', ',', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}
