package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderKeepsColumnOrder(t *testing.T) {
	exporter := NewCSVExporter()

	out, err := exporter.Render(Dataset{
		Headers: []string{"Code", "First", "Last"},
		Rows: [][]string{
			{"STU0001", "Alice", "Smith"},
			{"STU0002", "Bob", "Jones"},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Code,First,Last", lines[0])
	assert.Equal(t, "STU0001,Alice,Smith", lines[1])
	assert.Equal(t, "STU0002,Bob,Jones", lines[2])
}

func TestCSVRenderRejectsRaggedRow(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{
		Headers: []string{"Code", "First", "Last"},
		Rows:    [][]string{{"STU0001", "Alice"}},
	})
	assert.Error(t, err)
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()

	_, err := exporter.Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFRenderRejectsRaggedRow(t *testing.T) {
	exporter := NewPDFExporter()

	_, err := exporter.Render(Dataset{
		Headers: []string{"Subject", "Grade"},
		Rows:    [][]string{{"Math"}},
	}, "Marks")
	assert.Error(t, err)
}

func TestPDFRenderProducesDocument(t *testing.T) {
	exporter := NewPDFExporter()

	out, err := exporter.Render(Dataset{
		Headers: []string{"Subject", "Grade"},
		Rows:    [][]string{{"Math", "A"}},
	}, "Marks")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
