package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()

	payload, err := exporter.Render(Dataset{
		Headers: []string{"ID", "Name"},
		Rows: []map[string]string{
			{"ID": "1", "Name": "Ada"},
			{"ID": "2", "Name": "Grace, Rear Admiral"},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name", lines[0])
	assert.Equal(t, "1,Ada", lines[1])
	assert.Equal(t, `2,"Grace, Rear Admiral"`, lines[2])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	exporter := NewPDFExporter()

	payload, err := exporter.Render(Dataset{
		Headers: []string{"ID", "Name"},
		Rows:    []map[string]string{{"ID": "1", "Name": "Ada"}},
	}, "students")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(payload), "%PDF"))
}
