package export

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/hyperifyio/goprospect/internal/scan"
)

// SheetsSink writes a contact list into one tab of a Google spreadsheet using
// a service-account credential. The target tab is cleared when it exists and
// created when it does not, then receives a header row plus one row per
// contact.
type SheetsSink struct {
	// CredentialsJSON is the raw service-account key blob.
	CredentialsJSON []byte
	SpreadsheetID   string
	SheetName       string

	// newService allows tests to substitute the API client factory.
	newService func(ctx context.Context, opts ...option.ClientOption) (*sheets.Service, error)
}

// Write pushes the contacts to the configured tab. Any failure, from a bad
// credential to a missing spreadsheet, comes back as an error for the caller
// to report; the in-memory contact list is unaffected.
func (s *SheetsSink) Write(ctx context.Context, contacts []scan.Contact) error {
	if len(s.CredentialsJSON) == 0 {
		return fmt.Errorf("sheets export: missing service account credentials")
	}
	if s.SpreadsheetID == "" {
		return fmt.Errorf("sheets export: missing spreadsheet id")
	}
	name := s.SheetName
	if name == "" {
		name = "contacts"
	}

	factory := s.newService
	if factory == nil {
		factory = sheets.NewService
	}
	svc, err := factory(ctx,
		option.WithCredentialsJSON(s.CredentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return fmt.Errorf("sheets export: build client: %w", err)
	}

	doc, err := svc.Spreadsheets.Get(s.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets export: open spreadsheet %s: %w", s.SpreadsheetID, err)
	}

	if tabExists(doc, name) {
		if _, err := svc.Spreadsheets.Values.Clear(s.SpreadsheetID, quoteTab(name), &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
			return fmt.Errorf("sheets export: clear tab %s: %w", name, err)
		}
	} else {
		req := &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: name},
				},
			}},
		}
		if _, err := svc.Spreadsheets.BatchUpdate(s.SpreadsheetID, req).Context(ctx).Do(); err != nil {
			return fmt.Errorf("sheets export: create tab %s: %w", name, err)
		}
	}

	values := make([][]interface{}, 0, len(contacts)+1)
	values = append(values, toCells(Header))
	for _, c := range contacts {
		values = append(values, toCells(Row(c)))
	}
	vr := &sheets.ValueRange{Values: values}
	if _, err := svc.Spreadsheets.Values.Update(s.SpreadsheetID, a1Range(name), vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets export: write tab %s: %w", name, err)
	}
	return nil
}

// quoteTab wraps a tab name in single quotes so names containing spaces, "!"
// or other A1 metacharacters stay valid ranges; embedded quotes are doubled
// per the A1 escaping rule.
func quoteTab(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// a1Range anchors the write at the tab's top-left cell.
func a1Range(name string) string {
	return quoteTab(name) + "!A1"
}

func tabExists(doc *sheets.Spreadsheet, name string) bool {
	for _, sh := range doc.Sheets {
		if sh.Properties != nil && sh.Properties.Title == name {
			return true
		}
	}
	return false
}

func toCells(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
