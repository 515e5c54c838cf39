package exchange

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	"github.com/m04kA/SMC-StallCalendar/internal/service/exchange/models"
)

func TestEncodeCSV_BOMAndCRLF(t *testing.T) {
	data, err := EncodeCSV([]models.Row{
		{Date: "2024-03-01", MarketCity: "彰化縣", MarketName: "和美市場", VendorID: "vendor-a", VendorName: "攤商A"},
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("\ufeff")))
	text := strings.TrimPrefix(string(data), "\ufeff")
	assert.Equal(t,
		"date,marketCity,marketName,vendorId,vendorName\r\n2024-03-01,彰化縣,和美市場,vendor-a,攤商A\r\n",
		text)
}

func TestDecodeCSV_ExportedFileReadsBack(t *testing.T) {
	in := []models.Row{
		{Date: "2024-03-01", MarketCity: "彰化縣", MarketName: "和美市場", VendorID: "vendor-a", VendorName: "A"},
		{Date: "2024-03-02", MarketCity: "台中市", MarketName: "向上市場, 北側", VendorID: "vendor-b", VendorName: "B"},
	}
	data, err := EncodeCSV(in)
	require.NoError(t, err)

	out, err := DecodeCSV(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeCSV_RequiredColumns(t *testing.T) {
	_, err := DecodeCSV([]byte("date,marketCity,vendorId\n2024-03-01,x,y\n"))
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "marketName")

	_, err = DecodeCSV(nil)
	assert.ErrorIs(t, err, ErrMalformedFile)

	rows, err := DecodeCSV([]byte("vendorId,date,marketName\n vendor-a ,2024/3/1,和美市場\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "vendor-a", rows[0].VendorID)
	assert.Equal(t, "2024/3/1", rows[0].Date)
	assert.Empty(t, rows[0].MarketCity)
}

func TestEncodeXLSX(t *testing.T) {
	data, err := EncodeXLSX([]models.Row{{Date: "2024-03-01", MarketName: "和美市場", VendorID: "vendor-a"}})
	require.NoError(t, err)
	// xlsx это zip архив
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

func TestBuildRows_SortAndNameFallback(t *testing.T) {
	bookings := []*domain.Booking{
		{Date: "2024-03-02", Market: domain.MarketSnapshot{Name: "b"}, Vendor: domain.VendorSnapshot{ID: "vendor-a", Name: "old A"}},
		{Date: "2024-03-01", Market: domain.MarketSnapshot{Name: "z"}, Vendor: domain.VendorSnapshot{ID: "gone", Name: "snapshot"}},
		{Date: "2024-03-01", Market: domain.MarketSnapshot{Name: "a"}, Vendor: domain.VendorSnapshot{ID: "ghost"}},
	}
	vendors := []*domain.Vendor{{ID: "Vendor-A", Name: "current A"}}

	rows := BuildRows(bookings, vendors)
	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].MarketName)
	assert.Equal(t, domain.UnknownVendorName, rows[0].VendorName)
	assert.Equal(t, "snapshot", rows[1].VendorName)
	assert.Equal(t, "current A", rows[2].VendorName)
}
