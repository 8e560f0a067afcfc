package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productsJSON = `[
  {"ifcType": "IfcWall", "attributes": {"Name": {"value": "Wall-1"}},
   "quantitySets": {"qs": {"attributes": {"Name": {"value": "Qto_WallBaseQuantities"}},
     "quantities": {"NetArea": {"value": {"type": "number", "unit": "m2", "value": 10.5}}}}}},
  {"ifcType": "IfcWall", "attributes": {"Name": {"value": "Wall-2"}},
   "quantitySets": {"qs": {"quantities": {"NetArea": {"value": {"type": "number", "unit": "m2", "value": 4.25}}}}}},
  {"ifcType": "IfcSlab", "attributes": {"Name": {"value": "Slab-1"}}}
]`

func writeProductFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand(&out, &errOut)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestParseColumnFlags(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    []model.ColumnSpec
		wantErr bool
	}{
		{
			name:   "path only",
			values: []string{"ifcType"},
			want:   []model.ColumnSpec{{Path: []string{"ifcType"}, Mode: model.GroupingDontSummarize}},
		},
		{
			name:   "path with modes",
			values: []string{"attributes.Name.value=count", "quantitySets.qs.quantities.NetArea.value.value=Count (Distinct)"},
			want: []model.ColumnSpec{
				{Path: []string{"attributes", "Name", "value"}, Mode: model.GroupingCount},
				{Path: []string{"quantitySets", "qs", "quantities", "NetArea", "value", "value"}, Mode: model.GroupingCountDistinct},
			},
		},
		{
			name:   "mode follows the last equals sign",
			values: []string{"propertySets.a=b.properties.X.nominalValue.value=SUM"},
			want:   []model.ColumnSpec{{Path: []string{"propertySets", "a=b", "properties", "X", "nominalValue", "value"}, Mode: model.GroupingSum}},
		},
		{name: "empty path", values: []string{"=SUM"}, wantErr: true},
		{name: "unknown mode", values: []string{"ifcType=TOTAL"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseColumnFlags(tt.values)
			if tt.wantErr {
				assert.True(t, ierr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMoveFlags(t *testing.T) {
	moves, err := parseMoveFlags([]string{"1:TOP", "0:down"})
	require.NoError(t, err)
	assert.Equal(t, []model.ColumnMove{{Index: 1, Direction: "top"}, {Index: 0, Direction: "down"}}, moves)

	for _, bad := range []string{"top", "x:up", ":up"} {
		_, err := parseMoveFlags([]string{bad})
		assert.True(t, ierr.IsValidation(err), bad)
	}
}

func TestSourceFor(t *testing.T) {
	assert.Equal(t, model.Source{Type: "url", URL: "https://example.com/p.json"}, sourceFor("https://example.com/p.json"))
	assert.Equal(t, model.Source{Type: "file", URL: "p.json"}, sourceFor("p.json"))
}

func TestPivotCommandCSV(t *testing.T) {
	path := writeProductFile(t, productsJSON)

	out, errOut, err := execute(t, "pivot", path,
		"-c", "quantitySets.qs.quantities.NetArea.value.value=SUM",
		"-c", "ifcType",
		"--move", "1:top",
		"--format", "csv")
	require.NoError(t, err, errOut)
	assert.Equal(t, "Entity,Sum of NetArea (m2)\nIfcWall,14.75\nIfcSlab,0\n", out)
}

func TestPivotCommandTable(t *testing.T) {
	path := writeProductFile(t, productsJSON)

	out, errOut, err := execute(t, "pivot", path, "-c", "ifcType", "-c", "attributes.Name.value=count")
	require.NoError(t, err)
	assert.Contains(t, out, "Entity")
	assert.Contains(t, out, "Count of Name")
	assert.Contains(t, out, "IfcWall")
	assert.Contains(t, errOut, "2 rows from 3 products")
}

func TestPivotCommandJSONConcatenatesFiles(t *testing.T) {
	first := writeProductFile(t, productsJSON)
	second := writeProductFile(t, `{"ifcType": "IfcDoor", "attributes": {"Name": {"value": "Door-1"}}}`)

	out, _, err := execute(t, "pivot", first, second, "-c", "ifcType", "--format", "json")
	require.NoError(t, err)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Equal(t, []map[string]string{
		{"Entity": "IfcWall"},
		{"Entity": "IfcSlab"},
		{"Entity": "IfcDoor"},
	}, rows)
}

func TestPivotCommandErrors(t *testing.T) {
	path := writeProductFile(t, productsJSON)

	_, _, err := execute(t, "pivot", path)
	assert.Error(t, err)

	_, _, err = execute(t, "pivot", path, "-c", "attributes.Tag.value")
	assert.True(t, ierr.IsValidation(err))

	_, _, err = execute(t, "pivot", path, "-c", "ifcType", "--format", "xml")
	assert.True(t, ierr.IsValidation(err))

	_, _, err = execute(t, "pivot", filepath.Join(t.TempDir(), "missing.json"), "-c", "ifcType")
	assert.True(t, ierr.IsNotFound(err))
	assert.Contains(t, FormatError(err), "does not exist")
}

func TestColumnsCommand(t *testing.T) {
	path := writeProductFile(t, productsJSON)

	out, _, err := execute(t, "columns", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Identification")
	assert.Contains(t, out, "Qto_WallBaseQuantities")
	assert.Contains(t, out, "10.5 m2")
	assert.Contains(t, out, "quantitySets.qs.quantities.NetArea.value.value")

	out, _, err = execute(t, "columns", path, "--format", "json", "-r", "2")
	require.NoError(t, err)
	var sets []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &sets))
	require.Len(t, sets, 1)
	assert.Equal(t, "Identification", sets[0].Name)

	_, _, err = execute(t, "columns", path, "-r", "5")
	assert.True(t, ierr.IsValidation(err))
}
