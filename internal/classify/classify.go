// =============================================================================
// UCaaS Import Generator - Template Classifier
// =============================================================================
//
// Maps raw vendor plan labels from the order workbook to MetaSphere template
// identifiers. The mapping table is a closed set: unknown labels are not an
// error, they classify to "" and the row exports with blank template-bearing
// fields.
//
// =============================================================================

package classify

import "strings"

// templateSuffixes maps exact vendor plan labels to a template suffix that is
// appended to the region code. Entries flagged literal are emitted as-is,
// without region composition.
var templateSuffixes = map[string]struct {
	Suffix  string
	Literal bool
}{
	"UCaaS|Link Basic Auto-Attendant":           {Suffix: "_AA_Easy"},
	"UCaaS|Link Premium Auto-Attendant":         {Suffix: "_AA_Premium"},
	"UCaaS|Link Lite":                           {Suffix: "_Lite"},
	"UCaaS|Link Standard":                       {Suffix: "_STD"},
	"UCaaS|Link Complete":                       {Suffix: "_Complete"},
	"UCaaS|Link Complete (HIPPA)":               {Suffix: "Complete_HIPPA", Literal: true},
	"UCaaS|Link Complete (No Voicemail)":        {Suffix: "_Complete_NoVM"},
	"UCaaS|Link Complete ContactCenter Agent":   {Suffix: "_Complete"},
	"UCaaS|Link Complete ContactCenter Manager": {Suffix: "_Complete"},
}

// excludedLabels are the plan labels that take a row out of every record
// kind entirely. This is the universal eligibility filter, together with a
// blank phone number.
var excludedLabels = map[string]struct{}{
	"None":                  {},
	"Reserve Number":        {},
	"None | Reserve Number": {},
}

// Classify maps a raw plan label plus a region code to a template
// identifier, or "" when the label is not in the table.
func Classify(rawLabel, region string) string {
	entry, ok := templateSuffixes[strings.TrimSpace(rawLabel)]
	if !ok {
		return ""
	}
	if entry.Literal {
		return entry.Suffix
	}
	return region + entry.Suffix
}

// IsAutoAttendant reports whether a resolved template denotes an
// auto-attendant line. AA lines are not real subscriber seats: the caller
// blanks line-state monitoring, calling-name delivery and the intra-BG
// calls flag for them.
func IsAutoAttendant(template, region string) bool {
	return template == region+"_AA_Easy" || template == region+"_AA_Premium"
}

// IsExcludedLabel reports whether a trimmed plan label is one of the
// reserve/none literals that exclude the row from export.
func IsExcludedLabel(rawLabel string) bool {
	_, ok := excludedLabels[strings.TrimSpace(rawLabel)]
	return ok
}
