// =============================================================================
// UCaaS Import Generator - Record Builders
// =============================================================================
//
// One builder per output record kind: Business Group, Number Block,
// Department, Subscriber, Managed Device, Intercom Code Range, Hunt Group
// and Hunt Group Pilot. Each builder is a pure function from ingested row
// data (plus the customer context) to zero or one fixed-width record.
//
// Every record is padded to its kind's width before leaving this package:
// right-filled with empty strings, truncated from the right if a builder
// ever produces too many fields. Widths are fixed by the header tables
// below and never shared between kinds.
//
// =============================================================================

package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/commandlink/uccaas-import-gen/internal/classify"
	"github.com/commandlink/uccaas-import-gen/internal/ingest"
)

// MetaSphere system constants. These name the CFS/EAS instances and the
// subscriber group every import targets.
const (
	MetaCFS         = "CommandLink"
	MetaEAS         = "CommandLink_vEAS_LV"
	SubscriberGroup = "Standard Subscribers"
)

// Record is an ordered sequence of string fields, padded to its kind's
// fixed width.
type Record []string

// pad right-fills fields with empty strings to the given width, truncating
// from the right if the list already exceeds it.
func pad(fields []string, width int) Record {
	if len(fields) > width {
		return Record(fields[:width])
	}
	out := make(Record, width)
	copy(out, fields)
	return out
}

// =============================================================================
// HEADER TABLES
// =============================================================================

// BusinessGroupHeaders frames the single per-run Business Group record.
var BusinessGroupHeaders = []string{
	"MetaSphere CFS",
	"MetaSphere EAS",
	"Business Group",
	"Template",
	"CFS Persistent Profile",
	"Local CNAM name",
	"Music On Hold Service - Subscribed",
	"Music On Hold Service - class of service",
	"Music On Hold Service - limit concurrent calls",
	"Music On Hold Service - maximum concurrent calls",
	"Music On Hold Service - Service Level",
	"Music On Hold Service - Application Server",
	"Line Class Code",
	"CFS Subscriber Group",
}

// NumberBlockHeaders frames one record per unique phone number.
var NumberBlockHeaders = []string{
	"First Phone number",
	"Block size",
}

// DepartmentHeaders frames one record per unique department label.
var DepartmentHeaders = []string{
	"Department Name",
}

// SubscriberHeaders frames one record per eligible user row.
var SubscriberHeaders = []string{
	"MetaSphere CFS",
	"MetaSphere EAS",
	"Phone Number",
	"Template",
	"Business Group (CFS)",
	"Business Group (EAS)",
	"CFS Subscriber Group",
	"Name (CFS)",
	"Name (EAS)",
	"PIN (CFS)",
	"PIN (EAS)",
	"EAS Preferred Language",
	"EAS Password",
	"Business Group Administration - account type (CFS)",
	"Business Group Administration - account type (EAS)",
	"Line State Monitoring - Subscribed",
	"Calling Name Delivery - local name (BG subscriber)",
	"Account Email",
	"Timezone (CFS)",
	"Timezone (EAS)",
	"Calling party number",
	"Charge number",
	"Calling party number for emergency calls",
	"Department (CFS)",
	"Department (EAS)",
	"Calling Name Delivery - use local name for intra-BG calls only",
	"Line Class Code 1",
	"Line Class Code 2",
	"Line Class Code 3",
}

// ManagedDeviceHeaders frames one record per user row with phone and MAC.
var ManagedDeviceHeaders = []string{
	"MAC address",
	"Assigned to user",
	"User directory number",
	"MAC trusted until",
	"Device version",
	"Device model",
	"Description",
}

// IntercomRangeHeaders frames one record per user row with phone and
// extension; first and last code are always equal.
var IntercomRangeHeaders = []string{
	"First Code",
	"Last Code",
	"First Directory Number",
}

// HuntGroupHeaders frames one record per named hunt group.
var HuntGroupHeaders = []string{
	"MLHG Name",
	"Members;Directory number;Login/logout supported",
	"Distribution algorithm",
	"Hunt on no-answer",
}

// HuntGroupPilotHeaders frames one record per hunt group with a pilot number.
var HuntGroupPilotHeaders = []string{
	"Phone number",
	"Template",
	"Name (CFS)",
	"Name (EAS)",
	"PIN (EAS)",
	"EAS Password",
}

// =============================================================================
// BUSINESS GROUP / NUMBER BLOCK / DEPARTMENT
// =============================================================================

// BuildBusinessGroup produces the single synthetic Business Group record
// for the run: fixed music-on-hold service defaults plus the customer and
// region derived names.
func BuildBusinessGroup(ctx ingest.CustomerContext) Record {
	bgTemplate := ctx.Region + " BG"
	return pad([]string{
		MetaCFS,
		MetaEAS,
		ctx.CustomerName,
		bgTemplate,
		bgTemplate, // persistent profile mirrors the template
		"",         // local CNAM name
		"TRUE",     // MOH subscribed
		"0",        // MOH class of service
		"TRUE",     // MOH limit concurrent calls
		"16",       // MOH maximum concurrent calls
		"Enhanced", // MOH service level
		"EAS Voicemail",
		ctx.BusinessGroupLCC,
		SubscriberGroup,
	}, len(BusinessGroupHeaders))
}

// BuildNumberBlock produces one block-of-one record for a phone number.
func BuildNumberBlock(number string) Record {
	return pad([]string{number, "1"}, len(NumberBlockHeaders))
}

// BuildDepartment produces one record for a department label.
func BuildDepartment(name string) Record {
	return pad([]string{name}, len(DepartmentHeaders))
}

// =============================================================================
// SUBSCRIBER
// =============================================================================

// SubscriberInput is a classified, enriched user row ready for assembly.
type SubscriberInput struct {
	Row ingest.UserRow

	// Template is the classified template identifier, "" for unknown plans.
	Template string

	// AutoAttendant blanks the subscriber presence/caller-ID fields.
	AutoAttendant bool

	// LCC1, LCC2 and LCC3 are the final line class codes: enrichment
	// output with the per-row routing override and the engineering
	// defaults already applied.
	LCC1 string
	LCC2 string
	LCC3 string
}

// adminLabels are the account-type labels that map to "Administrator".
var adminLabels = map[string]struct{}{
	"Location Admin": {},
	"Company Admin":  {},
}

// BuildSubscriber produces the Subscriber record for an eligible row.
//
// Account type is "Administrator" only for the exact labels "Location
// Admin" and "Company Admin". The single source name is written into both
// the CFS and EAS name fields. Charge number and emergency calling number
// are both the subscriber's own phone number; no override field exists.
func BuildSubscriber(in SubscriberInput, ctx ingest.CustomerContext) Record {
	row := in.Row

	accountType := "Normal"
	if _, ok := adminLabels[row.AccountType]; ok {
		accountType = "Administrator"
	}

	lineStateMonitor := "TRUE"
	callingNameDelivery := row.Name
	intraBGCalls := "TRUE"
	if in.AutoAttendant {
		// AA lines are not subscriber seats and carry no presence or
		// caller-ID behavior.
		lineStateMonitor = ""
		callingNameDelivery = ""
		intraBGCalls = ""
	}

	timezone := row.Timezone
	if timezone == "" {
		timezone = ctx.Timezone
	}

	return pad([]string{
		MetaCFS,
		MetaEAS,
		row.Phone,
		in.Template,
		ctx.CustomerName,
		ctx.CustomerName,
		SubscriberGroup,
		row.Name,
		row.Name,
		"", // PIN (CFS)
		"", // PIN (EAS)
		"eng",
		"", // EAS password
		accountType,
		accountType,
		lineStateMonitor,
		callingNameDelivery,
		row.Email,
		timezone,
		timezone,
		row.CallingParty,
		row.Phone,
		row.Phone,
		row.Department,
		row.Department,
		intraBGCalls,
		in.LCC1,
		in.LCC2,
		in.LCC3,
	}, len(SubscriberHeaders))
}

// =============================================================================
// MANAGED DEVICE / INTERCOM RANGE
// =============================================================================

// BuildManagedDevice produces a Managed Device record when the row has both
// a phone number and a non-blank MAC address. The MAC trust window ends
// trustWeeks ahead of now, pinned to end of day.
func BuildManagedDevice(row ingest.UserRow, now time.Time, trustWeeks int) (Record, bool) {
	mac := strings.TrimSpace(row.MAC)
	if row.Phone == "" || mac == "" {
		return nil, false
	}

	trusted := now.AddDate(0, 0, 7*trustWeeks)

	return pad([]string{
		mac,
		"TRUE",
		row.Phone,
		formatTrustedUntil(trusted),
		"2",
		"Determined by Endpoint Pack",
		"",
	}, len(ManagedDeviceHeaders)), true
}

// formatTrustedUntil renders the canonical trust timestamp: month and day
// without leading zeros, four-digit year, two spaces, then the fixed end of
// day time. Earlier workbook revisions used a 12-hour lower-case variant;
// this format is the pinned one and must not be mixed with it.
func formatTrustedUntil(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d  11:59:59 PM", int(t.Month()), t.Day(), t.Year())
}

// BuildIntercomRange produces an Intercom Code Range record when the row
// has both a phone number and an extension. The range always covers exactly
// one code.
func BuildIntercomRange(row ingest.UserRow) (Record, bool) {
	if row.Phone == "" || row.Extension == "" {
		return nil, false
	}
	return pad([]string{
		row.Extension,
		row.Extension,
		row.Phone,
	}, len(IntercomRangeHeaders)), true
}

// =============================================================================
// HUNT GROUP / HUNT GROUP PILOT
// =============================================================================

// BuildHuntGroup produces the MLHG record for a named hunt group. Members
// are the eligible user rows whose hunt-group label exactly equals the
// group name, in source row order, each rendered as the composite token
// {'<number>';'FALSE'} the importer expects.
func BuildHuntGroup(group ingest.HuntGroupRow, members []ingest.UserRow) Record {
	tokens := make([]string, 0, len(members))
	for _, m := range members {
		tokens = append(tokens, fmt.Sprintf("{'%s';'FALSE'}", m.Phone))
	}

	dist := group.Distribution
	if dist == "Ring All" {
		// The importer's algorithm names are sentence case.
		dist = "Ring all"
	}

	return pad([]string{
		group.Name,
		strings.Join(tokens, ";"),
		dist,
		"FALSE", // hunt on no-answer is never derived from input
	}, len(HuntGroupHeaders))
}

// BuildHuntGroupPilot produces the pilot seat record when the group has
// both a name and a pilot number. Template selection follows the voicemail
// flag; the pilot's display name is the group name with a " Pilot" suffix
// in both name fields.
func BuildHuntGroupPilot(group ingest.HuntGroupRow, region string) (Record, bool) {
	if group.Name == "" || group.Pilot == "" {
		return nil, false
	}

	template := region + "_MLHG_Pilot_NoVM"
	if strings.EqualFold(strings.TrimSpace(group.Voicemail), "yes") {
		template = region + "_MLHG_Pilot"
	}

	pilotName := group.Name + " Pilot"

	return pad([]string{
		group.Pilot,
		template,
		pilotName,
		pilotName,
		"*",
		"*",
	}, len(HuntGroupPilotHeaders)), true
}

// =============================================================================
// ELIGIBILITY
// =============================================================================

// Eligible implements the universal row filter: a row with a blank phone
// number or a reserve/none plan label is excluded from every record kind.
func Eligible(row ingest.UserRow) bool {
	if row.Phone == "" {
		return false
	}
	return !classify.IsExcludedLabel(row.TemplateRaw)
}
