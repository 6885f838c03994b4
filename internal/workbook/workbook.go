// =============================================================================
// UCaaS Import Generator - Workbook Access
// =============================================================================
//
// This module owns all direct excelize access: resolving worksheets by fuzzy
// name, reading scalar cells, and extracting column ranges as ordered
// sequences of non-empty values.
//
// Sheet resolution is case and whitespace insensitive because customers
// routinely rename "User details" to "User Details" or "user details ". A
// sheet that cannot be resolved aborts the whole run; the error carries every
// actual sheet name so support can see what the customer actually uploaded.
//
// =============================================================================

package workbook

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// =============================================================================
// SHEET RESOLUTION
// =============================================================================

// SheetNotFoundError is returned when a required worksheet is absent after
// fuzzy matching. It is fatal for the run.
type SheetNotFoundError struct {
	// Wanted is the sheet name the generator asked for.
	Wanted string

	// Available lists the actual sheet names in the workbook.
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("worksheet %q not found; available sheets: %s",
		e.Wanted, strings.Join(e.Available, ", "))
}

// normalizeName lower-cases a sheet name and strips all whitespace.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "")
}

// Resolve finds a worksheet by fuzzy name match and returns its exact name.
func Resolve(f *excelize.File, wanted string) (string, error) {
	wantedNorm := normalizeName(wanted)
	for _, name := range f.GetSheetList() {
		if normalizeName(name) == wantedNorm {
			return name, nil
		}
	}
	return "", &SheetNotFoundError{Wanted: wanted, Available: f.GetSheetList()}
}

// ResolveAny finds the first worksheet matching any of the wanted names,
// tried in order. Used for the engineering sheet, which some workbook
// revisions call "CommandLink" and others "Engineering".
func ResolveAny(f *excelize.File, wanted []string) (string, error) {
	for _, w := range wanted {
		if name, err := Resolve(f, w); err == nil {
			return name, nil
		}
	}
	return "", &SheetNotFoundError{
		Wanted:    strings.Join(wanted, "|"),
		Available: f.GetSheetList(),
	}
}

// =============================================================================
// CELL AND RANGE EXTRACTION
// =============================================================================

// Cell reads a single cell as a trimmed string. A blank or missing cell
// yields "".
func Cell(f *excelize.File, sheet, addr string) (string, error) {
	v, err := f.GetCellValue(sheet, addr)
	if err != nil {
		return "", fmt.Errorf("failed to read %s!%s: %w", sheet, addr, err)
	}
	return strings.TrimSpace(v), nil
}

// Column reads a vertical cell range (inclusive, 1-based rows) and returns
// every non-empty trimmed value in row order.
func Column(f *excelize.File, sheet, col string, fromRow, toRow int) ([]string, error) {
	var values []string
	for row := fromRow; row <= toRow; row++ {
		v, err := Cell(f, sheet, fmt.Sprintf("%s%d", col, row))
		if err != nil {
			return nil, err
		}
		if v != "" {
			values = append(values, v)
		}
	}
	return values, nil
}

// UniqueOrdered concatenates the given sequences and drops later duplicates,
// keeping the position of each value's first occurrence. This is the policy
// for the phone number pool: subscriber numbers first, hunt pilot numbers
// after, shared numbers counted once.
func UniqueOrdered(seqs ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, seq := range seqs {
		for _, v := range seq {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
