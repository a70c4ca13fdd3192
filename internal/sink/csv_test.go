package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sunilyadav03/Shopify-Insights/internal/export"
	"github.com/Sunilyadav03/Shopify-Insights/internal/report"
)

func sampleTable() *report.Table {
	return &report.Table{
		Name:    "sales_over_time",
		Columns: []string{"Day", "Orders", "Total_sales"},
		Rows: [][]string{
			{"2025-04-29", "3", "40709.83"},
			{"2025-04-30", "1", "12.00"},
		},
		Stats: export.Stats{RunID: "run-1", MalformedLines: 2},
	}
}

func TestCSVSinkWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	err := NewCSVSink(path).Write(sampleTable())
	assert.NoError(t, err)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t,
		"Day,Orders,Total_sales\n2025-04-29,3,40709.83\n2025-04-30,1,12.00\n",
		string(data))
}

func TestCSVSinkUnwritableDirectory(t *testing.T) {
	err := NewCSVSink(filepath.Join(t.TempDir(), "missing", "report.csv")).Write(sampleTable())
	assert.Error(t, err)
}
