// Package jobcsv imports and exports job applications as CSV with a fixed
// column schema. Rows missing required fields are dropped and malformed
// optional fields fall back to defaults. Imports insert in fixed-size
// chunks; a failed chunk aborts the rest of the import but
// previously-inserted chunks stay committed.
package jobcsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/joe5h/tally/internal/model"
)

// ApplicationSaver is the slice of the storage interface imports need.
type ApplicationSaver interface {
	SaveApplications(ctx context.Context, apps []model.JobApplication) error
}

// ChunkSize is how many rows each insert batch carries.
const ChunkSize = 20

const dateLayout = "2006-01-02"

// Header is the fixed CSV column schema, in order.
var Header = []string{
	"Company",
	"Position",
	"Status",
	"Date Applied",
	"Location",
	"Salary",
	"Currency",
	"Has Interview",
	"Salary Listed",
	"Has Bonus",
	"URL",
	"Portal URL",
	"Resume Path",
	"Cover Letter Path",
}

// Export writes applications to w in the fixed schema. Booleans are
// written lowercase; dates in ISO form.
func Export(w io.Writer, apps []model.JobApplication) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, app := range apps {
		record := []string{
			app.Company,
			app.Position,
			string(app.Status),
			app.DateApplied.Format(dateLayout),
			app.Location,
			app.Salary,
			app.Currency,
			formatBool(app.HasInterview),
			formatBool(app.IsSalaryListed),
			formatBool(app.HasBonus),
			app.URL,
			app.PortalURL,
			app.ResumePath,
			app.CoverLetterPath,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", app.Company, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportResult reports what an import accomplished before finishing or
// failing.
type ImportResult struct {
	Imported int
	Skipped  int
	Total    int
}

// Import reads applications from r and inserts them in chunks of ChunkSize.
// The first chunk error aborts the import; chunks already inserted are not
// rolled back. Returns how many rows landed either way.
func Import(ctx context.Context, store ApplicationSaver, r io.Reader, showProgress bool) (ImportResult, error) {
	apps, skipped, err := Parse(r)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{Total: len(apps), Skipped: skipped}
	if len(apps) == 0 {
		return result, nil
	}

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(len(apps)), "importing")
	}

	for start := 0; start < len(apps); start += ChunkSize {
		end := start + ChunkSize
		if end > len(apps) {
			end = len(apps)
		}

		if err := store.SaveApplications(ctx, apps[start:end]); err != nil {
			return result, fmt.Errorf("import aborted at row %d: %w", start+1, err)
		}
		result.Imported += end - start
		if bar != nil {
			_ = bar.Add(end - start)
		}
	}

	return result, nil
}

// Parse reads the full CSV into applications without touching storage.
// The header row must match the fixed schema exactly; data rows missing
// Company or Position are dropped rather than failing the parse, and the
// skipped count is returned alongside the usable rows.
func Parse(r io.Reader) ([]model.JobApplication, int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, fmt.Errorf("empty file: missing header row")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, 0, err
	}

	var apps []model.JobApplication
	skipped := 0
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, skipped, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		app, ok := parseRow(record)
		if !ok {
			skipped++
			continue
		}
		apps = append(apps, app)
	}

	return apps, skipped, nil
}

func checkHeader(header []string) error {
	if len(header) != len(Header) {
		return fmt.Errorf("header has %d columns, want %d", len(header), len(Header))
	}
	for i, want := range Header {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("header column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

// parseRow converts one record into an application. Rows without a company
// or position are unusable and reported with ok=false; every other field
// falls back to its default when empty or unrecognized.
func parseRow(record []string) (model.JobApplication, bool) {
	var app model.JobApplication
	if len(record) != len(Header) {
		return app, false
	}

	app.Company = strings.TrimSpace(record[0])
	app.Position = strings.TrimSpace(record[1])
	if app.Company == "" || app.Position == "" {
		return app, false
	}

	app.Status = model.StatusApplied
	if status := strings.TrimSpace(record[2]); status != "" {
		if parsed, err := model.ParseApplicationStatus(status); err == nil {
			app.Status = parsed
		}
	}

	now := time.Now()
	app.DateApplied = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if dateStr := strings.TrimSpace(record[3]); dateStr != "" {
		if date, err := time.Parse(dateLayout, dateStr); err == nil {
			app.DateApplied = date
		}
	}

	app.Location = strings.TrimSpace(record[4])
	app.Salary = strings.TrimSpace(record[5])
	app.Currency = strings.TrimSpace(record[6])
	if app.Currency == "" {
		app.Currency = "USD"
	}
	app.HasInterview = parseBool(record[7])
	app.IsSalaryListed = parseBool(record[8])
	app.HasBonus = parseBool(record[9])
	app.URL = strings.TrimSpace(record[10])
	app.PortalURL = strings.TrimSpace(record[11])
	app.ResumePath = strings.TrimSpace(record[12])
	app.CoverLetterPath = strings.TrimSpace(record[13])

	return app, true
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// parseBool accepts the casings spreadsheets produce; anything
// unrecognized is false.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	default:
		return false
	}
}
