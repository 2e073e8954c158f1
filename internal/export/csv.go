package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/hyperifyio/goprospect/internal/scan"
)

// WriteCSV writes the header row followed by one row per contact.
func WriteCSV(w io.Writer, contacts []scan.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range contacts {
		if err := cw.Write(Row(c)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes the contact list to path, creating or truncating it.
func WriteCSVFile(path string, contacts []scan.Contact) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := WriteCSV(f, contacts); err != nil {
		return err
	}
	return f.Close()
}
