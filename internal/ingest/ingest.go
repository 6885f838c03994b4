// =============================================================================
// UCaaS Import Generator - Workbook Ingestion
// =============================================================================
//
// Reads the three worksheets into plain structs, resolving every address
// through the named column schema in the configuration. All blank-versus-
// present decisions happen here, once: every field is a trimmed string and
// "" consistently means absent. Downstream builders never re-probe the
// workbook.
//
// =============================================================================

package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/commandlink/uccaas-import-gen/internal/config"
	"github.com/commandlink/uccaas-import-gen/internal/ratecenter"
	"github.com/commandlink/uccaas-import-gen/internal/workbook"
)

// =============================================================================
// TYPES
// =============================================================================

// CustomerContext holds the scalar facts read once per run.
type CustomerContext struct {
	CustomerName string
	Region       string
	Timezone     string

	// Engineering default line class codes, used when rate-center
	// enrichment yields blanks.
	DefaultLCC1 string
	DefaultLCC2 string
	DefaultLCC3 string

	// BusinessGroupLCC is the BG-level line class code.
	BusinessGroupLCC string
}

// UserRow is one provisioning subject from the user sheet. Row is the
// 1-based source row, which fixes member-list and number-block ordering.
type UserRow struct {
	Row int

	Name            string
	Phone           string
	CallingParty    string
	Extension       string
	Email           string
	AccountType     string
	Department      string
	Timezone        string
	TemplateRaw     string
	MAC             string
	HuntGroup       string
	RoutingOverride string
}

// HuntGroupRow is one row of the Call flow hunt group window.
type HuntGroupRow struct {
	Row int

	Name         string
	Distribution string
	Pilot        string
	Voicemail    string
}

// =============================================================================
// READERS
// =============================================================================

// ReadContext reads the customer context cells.
func ReadContext(f *excelize.File, userSheet, engSheet string, cfg *config.Config) (CustomerContext, error) {
	var ctx CustomerContext
	cells := cfg.ContextCells

	reads := []struct {
		sheet string
		addr  string
		dst   *string
	}{
		{userSheet, cells.CustomerName, &ctx.CustomerName},
		{engSheet, cells.Region, &ctx.Region},
		{engSheet, cells.Timezone, &ctx.Timezone},
		{engSheet, cells.DefaultLCC1, &ctx.DefaultLCC1},
		{engSheet, cells.DefaultLCC2, &ctx.DefaultLCC2},
		{engSheet, cells.DefaultLCC3, &ctx.DefaultLCC3},
		{engSheet, cells.BusinessGroupLCC, &ctx.BusinessGroupLCC},
	}

	for _, r := range reads {
		v, err := workbook.Cell(f, r.sheet, r.addr)
		if err != nil {
			return CustomerContext{}, err
		}
		*r.dst = v
	}

	return ctx, nil
}

// ReadUserRows reads the user sheet data window. Rows with no content in
// any schema column are dropped; everything else is returned as-is, in
// source order. Eligibility filtering is the caller's concern.
func ReadUserRows(f *excelize.File, sheet string, cfg *config.Config) ([]UserRow, error) {
	cols := cfg.UserColumns
	var rows []UserRow

	for rowNum := cfg.UserStartRow; rowNum <= cfg.UserEndRow; rowNum++ {
		row := UserRow{Row: rowNum}

		fields := []struct {
			col string
			dst *string
		}{
			{cols.Name, &row.Name},
			{cols.Phone, &row.Phone},
			{cols.CallingParty, &row.CallingParty},
			{cols.Extension, &row.Extension},
			{cols.Email, &row.Email},
			{cols.AccountType, &row.AccountType},
			{cols.Department, &row.Department},
			{cols.Timezone, &row.Timezone},
			{cols.Template, &row.TemplateRaw},
			{cols.MAC, &row.MAC},
			{cols.HuntGroup, &row.HuntGroup},
			{cols.RoutingOverride, &row.RoutingOverride},
		}

		empty := true
		for _, field := range fields {
			v, err := workbook.Cell(f, sheet, fmt.Sprintf("%s%d", field.col, rowNum))
			if err != nil {
				return nil, err
			}
			*field.dst = v
			if v != "" {
				empty = false
			}
		}

		if !empty {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// ReadHuntRows reads the hunt group window from the Call flow sheet. A row
// with an empty name is skipped entirely.
func ReadHuntRows(f *excelize.File, sheet string, cfg *config.Config) ([]HuntGroupRow, error) {
	cols := cfg.HuntColumns
	var rows []HuntGroupRow

	for rowNum := cfg.HuntRows.From; rowNum <= cfg.HuntRows.To; rowNum++ {
		name, err := workbook.Cell(f, sheet, fmt.Sprintf("%s%d", cols.Name, rowNum))
		if err != nil {
			return nil, err
		}
		if name == "" {
			continue
		}

		row := HuntGroupRow{Row: rowNum, Name: name}

		fields := []struct {
			col string
			dst *string
		}{
			{cols.Distribution, &row.Distribution},
			{cols.Pilot, &row.Pilot},
			{cols.Voicemail, &row.Voicemail},
		}
		for _, field := range fields {
			v, err := workbook.Cell(f, sheet, fmt.Sprintf("%s%d", field.col, rowNum))
			if err != nil {
				return nil, err
			}
			*field.dst = v
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// ReadEngineeringTable reads the rate-center to line-class-code table from
// the engineering sheet. Rows missing either column are skipped.
func ReadEngineeringTable(f *excelize.File, sheet string, cfg *config.Config) ([]ratecenter.TableEntry, error) {
	table := cfg.EngineeringTable
	var entries []ratecenter.TableEntry

	for rowNum := table.Rows.From; rowNum <= table.Rows.To; rowNum++ {
		name, err := workbook.Cell(f, sheet, fmt.Sprintf("%s%d", table.NameColumn, rowNum))
		if err != nil {
			return nil, err
		}
		code, err := workbook.Cell(f, sheet, fmt.Sprintf("%s%d", table.CodeColumn, rowNum))
		if err != nil {
			return nil, err
		}
		if name == "" || code == "" {
			continue
		}
		entries = append(entries, ratecenter.TableEntry{RateCenter: name, Code: code})
	}

	return entries, nil
}
