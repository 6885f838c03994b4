// =============================================================================
// UCaaS Import Generator - Run Orchestrator
// =============================================================================
//
// This module drives the whole pipeline for a single workbook:
//
//   1. Open the workbook and resolve the three required sheets
//   2. Read the customer context and the engineering LCC table
//   3. Ingest user rows and hunt group rows
//   4. Classify templates and enrich phone numbers with line class codes
//   5. Build every record kind
//   6. Assemble the export buffers and write them out
//
// Data flows strictly one way through those steps; nothing downstream
// mutates upstream output. A run is single-threaded and either produces
// every requested output buffer or fails before writing anything.
//
// =============================================================================

package generator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/commandlink/uccaas-import-gen/internal/classify"
	"github.com/commandlink/uccaas-import-gen/internal/config"
	"github.com/commandlink/uccaas-import-gen/internal/export"
	"github.com/commandlink/uccaas-import-gen/internal/ingest"
	"github.com/commandlink/uccaas-import-gen/internal/ratecenter"
	"github.com/commandlink/uccaas-import-gen/internal/records"
	"github.com/commandlink/uccaas-import-gen/internal/workbook"
	"github.com/commandlink/uccaas-import-gen/pkg/utils"
)

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options control one generation run.
type Options struct {
	// Combined selects the single-buffer export instead of the two-file
	// export.
	Combined bool

	// Offline disables the rate-center HTTP lookup; enrichment degrades
	// to blank LCC1/LCC2 with the engineering defaults filling in.
	Offline bool

	// DryRun builds everything but writes no files.
	DryRun bool

	// Lookup overrides the rate-center lookup. Tests inject deterministic
	// fakes here; when nil (and not Offline) an HTTP lookup with a
	// process-lifetime cache is built from the configuration.
	Lookup ratecenter.Lookup

	// Now overrides the clock for the MAC trust window. Defaults to
	// time.Now.
	Now func() time.Time
}

// Result represents the outcome of one generation run.
type Result struct {
	// RunID uniquely identifies this run in logs and the summary file.
	RunID string

	// SourceFile is the workbook that was processed.
	SourceFile string

	// OutputFiles are the paths written, empty on dry runs and failures.
	OutputFiles []string

	// Summary carries the run statistics.
	Summary utils.RunSummary

	// Success indicates whether the run completed.
	Success bool

	// Error contains the failure when Success is false.
	Error error
}

// =============================================================================
// GENERATOR
// =============================================================================

// Generator processes a single provisioning workbook.
type Generator struct {
	path string
	cfg  *config.Config
	opts Options
}

// New creates a Generator for one workbook.
func New(path string, cfg *config.Config, opts Options) *Generator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Generator{path: path, cfg: cfg, opts: opts}
}

// Run executes the pipeline. It never panics on malformed input: blank
// fields flow through as empty strings, and only a missing worksheet (or an
// I/O failure) aborts the run.
func (g *Generator) Run() Result {
	startTime := time.Now()
	result := Result{
		RunID:      uuid.New().String(),
		SourceFile: g.path,
	}

	log.Info().Str("run_id", result.RunID).Str("file", g.path).Msg("processing workbook")

	f, err := excelize.OpenFile(g.path)
	if err != nil {
		result.Error = fmt.Errorf("failed to open workbook: %w", err)
		return result
	}
	defer f.Close()

	// -------------------------------------------------------------------------
	// Resolve sheets. All three are required; there is no partial fallback.
	// -------------------------------------------------------------------------

	userSheet, err := workbook.Resolve(f, g.cfg.Sheets.UserDetails)
	if err != nil {
		result.Error = err
		return result
	}
	engSheet, err := workbook.ResolveAny(f, g.cfg.Sheets.Engineering)
	if err != nil {
		result.Error = err
		return result
	}
	callFlowSheet, err := workbook.Resolve(f, g.cfg.Sheets.CallFlow)
	if err != nil {
		result.Error = err
		return result
	}

	log.Debug().Str("user", userSheet).Str("engineering", engSheet).
		Str("call_flow", callFlowSheet).Msg("resolved sheets")

	// -------------------------------------------------------------------------
	// Read context and rows.
	// -------------------------------------------------------------------------

	ctx, err := ingest.ReadContext(f, userSheet, engSheet, g.cfg)
	if err != nil {
		result.Error = err
		return result
	}

	userRows, err := ingest.ReadUserRows(f, userSheet, g.cfg)
	if err != nil {
		result.Error = err
		return result
	}

	huntRows, err := ingest.ReadHuntRows(f, callFlowSheet, g.cfg)
	if err != nil {
		result.Error = err
		return result
	}

	engTable, err := ingest.ReadEngineeringTable(f, engSheet, g.cfg)
	if err != nil {
		result.Error = err
		return result
	}

	log.Info().Str("customer", ctx.CustomerName).Str("region", ctx.Region).
		Int("user_rows", len(userRows)).Int("hunt_rows", len(huntRows)).
		Msg("ingested workbook")

	// -------------------------------------------------------------------------
	// Build the enricher.
	// -------------------------------------------------------------------------

	var cache *ratecenter.Cache
	lookup := g.opts.Lookup
	if lookup == nil && !g.opts.Offline {
		timeout := time.Duration(g.cfg.RateCenter.TimeoutSeconds) * time.Second
		lookup = ratecenter.NewHTTPLookup(g.cfg.RateCenter.Endpoint, timeout)
	}
	if lookup != nil {
		cache = ratecenter.NewCache(lookup)
		lookup = cache
	}
	enricher := ratecenter.NewEnricher(lookup, engTable)

	// -------------------------------------------------------------------------
	// Filter rows and build records.
	// -------------------------------------------------------------------------

	var eligible []ingest.UserRow
	for _, row := range userRows {
		if records.Eligible(row) {
			eligible = append(eligible, row)
		}
	}

	bgSections, seatSections := g.buildSections(ctx, eligible, huntRows, enricher)

	// -------------------------------------------------------------------------
	// Assemble and write.
	// -------------------------------------------------------------------------

	asm := export.New(g.cfg.Output)
	fm := utils.NewFileManager(g.cfg.Output.Dir)

	type outFile struct {
		name string
		data []byte
	}
	var outputs []outFile

	if g.opts.Combined {
		data, err := asm.Combined(bgSections, seatSections)
		if err != nil {
			result.Error = err
			return result
		}
		outputs = append(outputs, outFile{export.CombinedFileName(ctx.CustomerName), data})
	} else {
		bgData, seatData, err := asm.TwoFile(bgSections, seatSections)
		if err != nil {
			result.Error = err
			return result
		}
		outputs = append(outputs,
			outFile{export.BGFileName(ctx.CustomerName), bgData},
			outFile{export.SeatsFileName(ctx.CustomerName), seatData},
		)
	}

	if !g.opts.DryRun {
		if err := fm.EnsureDirectories(); err != nil {
			result.Error = err
			return result
		}
		for _, out := range outputs {
			path, err := fm.WriteExport(out.name, out.data)
			if err != nil {
				result.Error = err
				return result
			}
			result.OutputFiles = append(result.OutputFiles, path)
			log.Info().Str("file", path).Msg("wrote export")
		}
	}

	// -------------------------------------------------------------------------
	// Summarize.
	// -------------------------------------------------------------------------

	counts := make(map[string]int)
	for _, s := range bgSections {
		counts[s.Title] = len(s.Rows)
	}
	for _, s := range seatSections {
		counts[s.Title] = len(s.Rows)
	}

	summary := utils.RunSummary{
		RunID:        result.RunID,
		SourceFile:   g.path,
		Customer:     ctx.CustomerName,
		Region:       ctx.Region,
		StartTime:    startTime,
		EndTime:      time.Now(),
		UserRows:     len(userRows),
		EligibleRows: len(eligible),
		RecordCounts: counts,
		OutputFiles:  result.OutputFiles,
	}
	if cache != nil {
		summary.CacheHits, summary.CacheRequests = cache.Stats()
	}
	result.Summary = summary

	if !g.opts.DryRun {
		if _, err := fm.WriteRunSummary(summary); err != nil {
			// The exports are already on disk; a failed summary log is
			// not worth failing the run over.
			log.Warn().Err(err).Msg("failed to write run summary")
		}
	}

	result.Success = true
	return result
}

// =============================================================================
// SECTION BUILDING
// =============================================================================

// buildSections builds every record kind and frames them into the BG group
// and the seats group, in the fixed export order.
func (g *Generator) buildSections(
	ctx ingest.CustomerContext,
	eligible []ingest.UserRow,
	huntRows []ingest.HuntGroupRow,
	enricher *ratecenter.Enricher,
) (bgSections, seatSections []export.Section) {

	// Phone number pool: subscriber numbers first, hunt pilot numbers
	// after, first occurrence wins.
	var userPhones, pilotPhones []string
	for _, row := range eligible {
		userPhones = append(userPhones, row.Phone)
	}
	for _, hg := range huntRows {
		if hg.Pilot != "" {
			pilotPhones = append(pilotPhones, hg.Pilot)
		}
	}
	numberPool := workbook.UniqueOrdered(userPhones, pilotPhones)

	var numberBlocks []records.Record
	for _, num := range numberPool {
		numberBlocks = append(numberBlocks, records.BuildNumberBlock(num))
	}

	var departments []records.Record
	for _, dept := range uniqueDepartments(eligible) {
		departments = append(departments, records.BuildDepartment(dept))
	}

	bgSections = []export.Section{
		{Title: "Business Group", Headers: records.BusinessGroupHeaders,
			Rows: []records.Record{records.BuildBusinessGroup(ctx)}},
		{Title: "Number Block", Headers: records.NumberBlockHeaders, Rows: numberBlocks},
		{Title: "Department", Headers: records.DepartmentHeaders, Rows: departments},
	}

	// Seats group.
	var subscribers, devices, intercoms []records.Record
	now := g.opts.Now()

	for _, row := range eligible {
		template := classify.Classify(row.TemplateRaw, ctx.Region)
		input := records.SubscriberInput{
			Row:           row,
			Template:      template,
			AutoAttendant: classify.IsAutoAttendant(template, ctx.Region),
		}
		input.LCC1, input.LCC2, input.LCC3 = g.resolveLCCs(ctx, row, enricher)
		subscribers = append(subscribers, records.BuildSubscriber(input, ctx))

		if rec, ok := records.BuildManagedDevice(row, now, g.cfg.Policy.MACTrustWeeks); ok {
			devices = append(devices, rec)
		}
		if rec, ok := records.BuildIntercomRange(row); ok {
			intercoms = append(intercoms, rec)
		}
	}

	var huntGroups, pilots []records.Record
	for _, hg := range huntRows {
		if hg.Pilot != "" || *g.cfg.Policy.IncludePilotlessGroups {
			huntGroups = append(huntGroups, records.BuildHuntGroup(hg, huntMembers(hg.Name, eligible)))
		}
		if rec, ok := records.BuildHuntGroupPilot(hg, ctx.Region); ok {
			pilots = append(pilots, rec)
		}
	}

	seatSections = []export.Section{
		{Title: "Subscriber", Headers: records.SubscriberHeaders, Rows: subscribers},
		{Title: "Managed Device", Headers: records.ManagedDeviceHeaders, Rows: devices},
		{Title: "Intercom Range", Headers: records.IntercomRangeHeaders, Rows: intercoms},
		{Title: "Hunt Group", Headers: records.HuntGroupHeaders, Rows: huntGroups},
		{Title: "Hunt Group Pilot", Headers: records.HuntGroupPilotHeaders, Rows: pilots},
	}

	return bgSections, seatSections
}

// resolveLCCs runs enrichment for one row and applies the per-row routing
// override and the engineering defaults. The override beats the derived
// LCC1; the defaults only fill codes that are still blank.
func (g *Generator) resolveLCCs(ctx ingest.CustomerContext, row ingest.UserRow, enricher *ratecenter.Enricher) (lcc1, lcc2, lcc3 string) {
	lcc1, lcc2, lcc3 = enricher.Enrich(row.Phone)

	if row.RoutingOverride != "" {
		lcc1 = row.RoutingOverride
	}
	if lcc1 == "" {
		lcc1 = ctx.DefaultLCC1
	}
	if lcc2 == "" {
		lcc2 = ctx.DefaultLCC2
	}
	if lcc3 == "" {
		lcc3 = ctx.DefaultLCC3
	}
	return lcc1, lcc2, lcc3
}

// uniqueDepartments collects department labels in first-seen order.
func uniqueDepartments(rows []ingest.UserRow) []string {
	var labels []string
	for _, row := range rows {
		if row.Department != "" {
			labels = append(labels, row.Department)
		}
	}
	return workbook.UniqueOrdered(labels)
}

// huntMembers returns the eligible rows whose hunt-group label exactly
// equals the group name, in source row order.
func huntMembers(groupName string, eligible []ingest.UserRow) []ingest.UserRow {
	var members []ingest.UserRow
	for _, row := range eligible {
		if row.HuntGroup == groupName {
			members = append(members, row)
		}
	}
	return members
}
