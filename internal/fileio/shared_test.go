package fileio

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestReadTableCSV(t *testing.T) {
	t.Run("semicolon with bom", func(t *testing.T) {
		src := "\uFEFFКод;Наименование;Цена\n" +
			"1;Кабель ВВГ 3x2.5;\"1 234,50\"\n" +
			";;\n" +
			"2;\"Провод\nПВС\";99\n"
		tbl, err := ReadTable(strings.NewReader(src), "prices.csv", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"Код", "Наименование", "Цена"}, tbl.Headers)
		require.Len(t, tbl.Rows, 2)
		assert.Equal(t, "1 234,50", tbl.Rows[0]["Цена"])
		assert.Equal(t, "Провод ПВС", tbl.Rows[1]["Наименование"])
	})

	t.Run("tab separated with header offset", func(t *testing.T) {
		src := "Прайс ЭТМ\t\t\nАртикул\tТовар\tТовар\nA1\tЛампа\tE27\n"
		tbl, err := ReadTable(strings.NewReader(src), "p.txt", 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"Артикул", "Товар", "Column 3"}, tbl.Headers)
		require.Len(t, tbl.Rows, 1)
		assert.Equal(t, "E27", tbl.Rows[0]["Column 3"])
	})

	t.Run("windows-1251", func(t *testing.T) {
		var sb strings.Builder
		sb.WriteString("Код;Наименование;Описание\n")
		for i := 0; i < 20; i++ {
			sb.WriteString("1;Кабель силовой медный с изоляцией;Для прокладки в земле и на открытом воздухе\n")
		}
		raw, err := charmap.Windows1251.NewEncoder().String(sb.String())
		require.NoError(t, err)

		tbl, err := ReadTable(strings.NewReader(raw), "m.csv", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"Код", "Наименование", "Описание"}, tbl.Headers)
		require.Len(t, tbl.Rows, 20)
		assert.Equal(t, "Кабель силовой медный с изоляцией", tbl.Rows[0]["Наименование"])
	})

	t.Run("empty input", func(t *testing.T) {
		tbl, err := ReadTable(strings.NewReader(""), "m.csv", 1)
		require.NoError(t, err)
		assert.Empty(t, tbl.Rows)
	})
}

func TestReadTableXLSX(t *testing.T) {
	f := excelize.NewFile()
	_, err := f.NewSheet("Данные")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Данные", "A1", &[]any{"Код", "Наименование", "Цена"}))
	require.NoError(t, f.SetSheetRow("Данные", "A2", &[]any{"P1", "Автомат 16А", 350.5}))
	require.NoError(t, f.SetSheetRow("Данные", "A3", &[]any{"P2", "Розетка двойная"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	// Sheet1 пустой, берётся следующий лист
	tbl, err := ReadTable(&buf, "prices.XLSX", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Код", "Наименование", "Цена"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "350.5", tbl.Rows[0]["Цена"])
	assert.Equal(t, "Розетка двойная", tbl.Rows[1]["Наименование"])
	assert.Equal(t, "", tbl.Rows[1]["Цена"])
}

func TestReadTableUnsupported(t *testing.T) {
	_, err := ReadTable(strings.NewReader("x"), "prices.pdf", 1)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ';', sniffDelimiter([]byte("a;b;c\n1,2;3")))
	assert.Equal(t, ',', sniffDelimiter([]byte("a,b,c")))
	assert.Equal(t, '\t', sniffDelimiter([]byte("a\tb")))
	assert.Equal(t, ',', sniffDelimiter([]byte("single")))
}
