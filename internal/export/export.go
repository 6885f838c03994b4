// =============================================================================
// UCaaS Import Generator - Section Assembler
// =============================================================================
//
// Concatenates record groups into the textual export buffers the MetaSphere
// importer consumes. Each section is framed with comment-marker lines, a
// section title line and a column-header line, followed by its data rows.
// Field quoting follows standard CSV rules via encoding/csv; the line
// terminator is a bare line feed.
//
// Blank separator lines between sections are a fixed configured count. The
// importer tolerates blank lines, but the counts are reproduced exactly so
// generated files diff cleanly against historical exports.
//
// =============================================================================

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/commandlink/uccaas-import-gen/internal/config"
	"github.com/commandlink/uccaas-import-gen/internal/records"
)

// Section is one framed record group.
type Section struct {
	Title   string
	Headers []string
	Rows    []records.Record
}

// Assembler builds export buffers with configured separator counts.
type Assembler struct {
	sectionGap int
	groupGap   int
}

// New builds an assembler from the output configuration.
func New(cfg config.OutputConfig) *Assembler {
	return &Assembler{sectionGap: cfg.SectionGap, groupGap: cfg.GroupGap}
}

// TwoFile assembles the two-buffer export: the BG group (Business Group,
// Number Block, Department) and the seats group (Subscriber, Managed
// Device, Intercom Range, Hunt Group, Hunt Group Pilot).
func (a *Assembler) TwoFile(bgSections, seatSections []Section) (bgBuf, seatBuf []byte, err error) {
	bg, err := a.assemble(bgSections)
	if err != nil {
		return nil, nil, err
	}
	seats, err := a.assemble(seatSections)
	if err != nil {
		return nil, nil, err
	}
	return bg, seats, nil
}

// Combined assembles both groups into a single buffer, with the group gap
// at the split point.
func (a *Assembler) Combined(bgSections, seatSections []Section) ([]byte, error) {
	var buf bytes.Buffer

	bg, err := a.assemble(bgSections)
	if err != nil {
		return nil, err
	}
	buf.Write(bg)

	for i := 0; i < a.groupGap; i++ {
		buf.WriteByte('\n')
	}

	seats, err := a.assemble(seatSections)
	if err != nil {
		return nil, err
	}
	buf.Write(seats)

	return buf.Bytes(), nil
}

// assemble frames each section and joins them with the section gap.
func (a *Assembler) assemble(sections []Section) ([]byte, error) {
	var buf bytes.Buffer

	for i, s := range sections {
		if i > 0 {
			for j := 0; j < a.sectionGap; j++ {
				buf.WriteByte('\n')
			}
		}
		if err := writeSection(&buf, s); err != nil {
			return nil, fmt.Errorf("failed to assemble section %q: %w", s.Title, err)
		}
	}

	return buf.Bytes(), nil
}

// writeSection writes one framed section: comment markers and title first,
// then the header line and data rows through the CSV writer.
func writeSection(buf *bytes.Buffer, s Section) error {
	buf.WriteString("#\n")
	buf.WriteString("# " + s.Title + "\n")
	buf.WriteString("#\n")

	w := csv.NewWriter(buf)
	if err := w.Write(s.Headers); err != nil {
		return err
	}
	for _, row := range s.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// =============================================================================
// FILE NAMING
// =============================================================================

// BGFileName names the BG/NumberBlock/Departments export for a customer.
func BGFileName(customer string) string {
	return fmt.Sprintf("BG-NumberBlock-Departments-%s.csv", customer)
}

// SeatsFileName names the seats/devices/extensions/MLHG export.
func SeatsFileName(customer string) string {
	return fmt.Sprintf("Seats-Devices-Exts-MLHG-%s.csv", customer)
}

// CombinedFileName names the single-buffer combined export.
func CombinedFileName(customer string) string {
	return fmt.Sprintf("%s-Meta-Import-Combined.csv", customer)
}
