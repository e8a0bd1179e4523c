package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabviz/tabviz/internal/domain"
)

func TestDetectFileType(t *testing.T) {
	assert.Equal(t, "csv", DetectFileType("ventas.CSV"))
	assert.Equal(t, "xlsx", DetectFileType("report.xlsx"))
	assert.Equal(t, "pdf", DetectFileType("doc.pdf"))
	assert.Equal(t, "", DetectFileType("noext"))

	assert.True(t, IsSupported("csv"))
	assert.True(t, IsSupported("xlsx"))
	assert.False(t, IsSupported("pdf"))
}

func TestParseCSVTypes(t *testing.T) {
	csv := "name,amount,active,joined\n" +
		"ana,10.5,true,2024-01-02\n" +
		"luis,20,false,2024-02-03\n" +
		"eva,,true,2024-03-04\n"

	ds, err := Parse([]byte(csv), FileTypeCSV)
	require.NoError(t, err)

	require.Equal(t, 3, ds.Rows())
	assert.Equal(t, []string{"name", "amount", "active", "joined"}, ds.ColumnNames())

	assert.Equal(t, domain.DTypeCategorical, ds.Column("name").DType)
	assert.Equal(t, domain.DTypeNumeric, ds.Column("amount").DType)
	assert.Equal(t, domain.DTypeBoolean, ds.Column("active").DType)
	assert.Equal(t, domain.DTypeDatetime, ds.Column("joined").DType)

	amount := ds.Column("amount")
	assert.Equal(t, 10.5, amount.Values[0])
	assert.Equal(t, 20.0, amount.Values[1])
	assert.Nil(t, amount.Values[2])
}

func TestParseCSVCurrencyCleanup(t *testing.T) {
	csv := "product,price\nwidget,\"$1,234.50\"\ngadget,$99\n"

	ds, err := Parse([]byte(csv), FileTypeCSV)
	require.NoError(t, err)

	price := ds.Column("price")
	require.Equal(t, domain.DTypeNumeric, price.DType)
	assert.Equal(t, 1234.5, price.Values[0])
	assert.Equal(t, 99.0, price.Values[1])
}

func TestParseCSVDropsEmptyRows(t *testing.T) {
	csv := "a,b\n1,2\n,\n3,4\n"

	ds, err := Parse([]byte(csv), FileTypeCSV)
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Rows())
}

func TestParseCSVNullTokens(t *testing.T) {
	csv := "x\nnan\nNone\n5\n"

	ds, err := Parse([]byte(csv), FileTypeCSV)
	require.NoError(t, err)

	x := ds.Column("x")
	assert.Equal(t, domain.DTypeNumeric, x.DType)
	assert.Nil(t, x.Values[0])
	assert.Nil(t, x.Values[1])
	assert.Equal(t, 5.0, x.Values[2])
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse([]byte(""), FileTypeCSV)
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)

	// Header only.
	_, err = Parse([]byte("a,b\n"), FileTypeCSV)
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

func TestParseUnsupportedType(t *testing.T) {
	_, err := Parse([]byte("x"), "pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestParseLatin1Fallback(t *testing.T) {
	// "año" encoded as ISO-8859-1; invalid as UTF-8.
	csv := append([]byte("col\n"), 0x61, 0xF1, 0x6F, '\n')

	ds, err := Parse(csv, FileTypeCSV)
	require.NoError(t, err)
	assert.Equal(t, "año", ds.Column("col").Values[0])
}

func TestParseInfinityBecomesNull(t *testing.T) {
	csv := "x\n1\ninf\n3\n"

	ds, err := Parse([]byte(csv), FileTypeCSV)
	require.NoError(t, err)

	x := ds.Column("x")
	require.Equal(t, domain.DTypeNumeric, x.DType)
	assert.Nil(t, x.Values[1])
}
