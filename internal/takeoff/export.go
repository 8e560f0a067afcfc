package takeoff

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"time"

	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/logger"
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/kuperiu/bimsyncManager/pkg/utils"
	"github.com/samber/lo"
)

// Export file names inside a report's output directory
const (
	CSVFileName  = "takeoff.csv"
	JSONFileName = "takeoff.json"
)

// Exporter writes pivot rows of a report to its output directory.
type Exporter struct {
	out *utils.OutputManager
	log *logger.Logger
}

func NewExporter(out *utils.OutputManager, log *logger.Logger) *Exporter {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Exporter{out: out, log: log}
}

// Export writes every format enabled in spec. A failed format is reported
// in its result and does not stop the others.
func (e *Exporter) Export(reportID string, spec model.ExportSpec, columns []model.ColumnHeader, rows []model.Row) []model.ExportResult {
	results := make([]model.ExportResult, 0, 2)
	if spec.CSV {
		results = append(results, e.exportFile(reportID, CSVFileName, func(w io.Writer) error {
			return WriteCSV(w, columns, rows)
		}, len(rows)))
	}
	if spec.JSON {
		results = append(results, e.exportFile(reportID, JSONFileName, func(w io.Writer) error {
			return WriteJSON(w, columns, rows)
		}, len(rows)))
	}
	return results
}

func (e *Exporter) exportFile(reportID, fileName string, write func(io.Writer) error, count int) model.ExportResult {
	result := model.ExportResult{
		Type:      e.out.FileType(fileName),
		Timestamp: time.Now(),
	}

	path, err := e.out.FilePath(reportID, fileName)
	if err == nil {
		result.Path = path
		err = writeFile(path, write)
	}
	if err != nil {
		result.Error = err.Error()
		e.log.Errorw("export failed", "report_id", reportID, "type", result.Type, "error", err)
		return result
	}

	result.Success = true
	result.RecordCount = count
	if size, err := e.out.FileSize(path); err == nil {
		result.SizeBytes = size
	}
	e.log.Infow("export written", "report_id", reportID, "type", result.Type, "path", path, "rows", count)
	return result
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Could not create export file %s", path).
			Mark(ierr.ErrSystem)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteCSV writes the header row of display names followed by one line per
// pivot row. Units live in the header, so cells carry bare values.
func WriteCSV(w io.Writer, columns []model.ColumnHeader, rows []model.Row) error {
	writer := csv.NewWriter(w)

	header := lo.Map(columns, func(c model.ColumnHeader, _ int) string { return c.DisplayName })
	if err := writer.Write(header); err != nil {
		return ierr.WithError(err).WithHint("Failed to write CSV header").Mark(ierr.ErrSystem)
	}
	for _, row := range rows {
		line := lo.Map(columns, func(c model.ColumnHeader, _ int) string {
			return FormatCell(row[c.ColumnGUID], "")
		})
		if err := writer.Write(line); err != nil {
			return ierr.WithError(err).WithHint("Failed to write CSV row").Mark(ierr.ErrSystem)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return ierr.WithError(err).WithHint("Failed to flush CSV").Mark(ierr.ErrSystem)
	}
	return nil
}

// WriteJSON writes the rows as an array of objects keyed by display name,
// keys in column order.
func WriteJSON(w io.Writer, columns []model.ColumnHeader, rows []model.Row) error {
	keys := ColumnKeys(columns)
	records := lo.Map(rows, func(row model.Row, _ int) *model.Record {
		rec := model.NewRecord()
		for i, c := range columns {
			rec.Set(keys[i], row[c.ColumnGUID])
		}
		return rec
	})

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return ierr.WithError(err).WithHint("Failed to encode JSON export").Mark(ierr.ErrSystem)
	}
	return nil
}

// ColumnKeys returns one unique object key per column: its display name,
// qualified by path when two columns share a display name.
func ColumnKeys(columns []model.ColumnHeader) []string {
	counts := lo.CountValuesBy(columns, func(c model.ColumnHeader) string { return c.DisplayName })
	return lo.Map(columns, func(c model.ColumnHeader, _ int) string {
		if counts[c.DisplayName] > 1 {
			return c.DisplayName + " [" + Path(c.Path).String() + "]"
		}
		return c.DisplayName
	})
}
