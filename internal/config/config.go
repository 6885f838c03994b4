// =============================================================================
// UCaaS Import Generator - Configuration Module
// =============================================================================
//
// This module loads and manages the application configuration. Everything the
// generator needs to locate data inside a provisioning workbook lives here:
// sheet names, context cell addresses, the user-sheet column schema, the hunt
// group row window, the engineering line-class-code table range, rate-center
// lookup settings and output framing.
//
// The column schema is deliberately a single named configuration object,
// resolved once at load time. Workbook revisions have a history of inserting
// columns and shifting everything after them; keeping every address in one
// place means a drifted workbook needs a config change, not a code change.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full application configuration.
// This is loaded from config.yaml; every field has a working default so the
// tool runs with no config file at all.
type Config struct {
	// Sheets names the worksheets the generator requires.
	Sheets SheetNames `yaml:"sheets"`

	// ContextCells are the scalar cells read once per run.
	ContextCells ContextCells `yaml:"context_cells"`

	// UserColumns is the column schema of the "User details" sheet.
	UserColumns UserColumns `yaml:"user_columns"`

	// UserStartRow is the first data row of the user sheet (1-based).
	// Default: 9
	UserStartRow int `yaml:"user_start_row"`

	// UserEndRow is the last row scanned on the user sheet (1-based).
	// Default: 500
	UserEndRow int `yaml:"user_end_row"`

	// HuntRows is the fixed row window of the "Call flow" sheet that
	// describes hunt groups. Default: rows 17-27.
	HuntRows RowWindow `yaml:"hunt_rows"`

	// HuntColumns is the column schema of the hunt group window.
	HuntColumns HuntColumns `yaml:"hunt_columns"`

	// EngineeringTable locates the rate-center -> line-class-code table on
	// the engineering sheet.
	EngineeringTable TableRange `yaml:"engineering_table"`

	// RateCenter configures the external NPA-NXX prefix lookup.
	RateCenter RateCenterConfig `yaml:"rate_center"`

	// Output configures export framing and destination.
	Output OutputConfig `yaml:"output"`

	// Policy holds the behavioral knobs that varied between workbook
	// revisions and had to be pinned to one canonical choice.
	Policy PolicyConfig `yaml:"policy"`
}

// SheetNames names the required worksheets. Matching is case and
// whitespace insensitive, so "User Details" and "user details" both resolve.
type SheetNames struct {
	// UserDetails is the subscriber sheet. Default: "User details"
	UserDetails string `yaml:"user_details"`

	// Engineering lists acceptable names for the engineering sheet, tried
	// in order. Default: ["CommandLink", "Engineering"]
	Engineering []string `yaml:"engineering"`

	// CallFlow is the hunt group sheet. Default: "Call flow"
	CallFlow string `yaml:"call_flow"`
}

// ContextCells are the per-run scalar cell addresses.
type ContextCells struct {
	// CustomerName on the user sheet. Default: "B3"
	CustomerName string `yaml:"customer_name"`

	// Region on the engineering sheet, a two-letter code such as "CH" or
	// "LV" that prefixes every derived template name. Default: "C4"
	Region string `yaml:"region"`

	// Timezone on the engineering sheet, the default subscriber timezone.
	// Default: "C5"
	Timezone string `yaml:"timezone"`

	// DefaultLCC1, DefaultLCC2 and DefaultLCC3 are the engineering default
	// line class codes used when rate-center enrichment comes back blank.
	// Defaults: "C17", "C18", "C12"
	DefaultLCC1 string `yaml:"default_lcc1"`
	DefaultLCC2 string `yaml:"default_lcc2"`
	DefaultLCC3 string `yaml:"default_lcc3"`

	// BusinessGroupLCC is the business-group level line class code.
	// Default: "C19"
	BusinessGroupLCC string `yaml:"business_group_lcc"`
}

// UserColumns is the named column schema of the user sheet. Values are
// spreadsheet column letters. The defaults match the current workbook
// revision; older revisions without column J shift everything after it.
type UserColumns struct {
	Name            string `yaml:"name"`             // "A"
	Phone           string `yaml:"phone"`            // "B"
	CallingParty    string `yaml:"calling_party"`    // "D"
	Extension       string `yaml:"extension"`        // "E"
	Email           string `yaml:"email"`            // "F"
	AccountType     string `yaml:"account_type"`     // "H"
	Department      string `yaml:"department"`       // "I"
	Timezone        string `yaml:"timezone"`         // "J"
	Template        string `yaml:"template"`         // "M"
	MAC             string `yaml:"mac"`              // "N"
	HuntGroup       string `yaml:"hunt_group"`       // "O"
	RoutingOverride string `yaml:"routing_override"` // "R"
}

// HuntColumns is the column schema of the Call flow hunt group window.
type HuntColumns struct {
	Name         string `yaml:"name"`         // "B"
	Distribution string `yaml:"distribution"` // "C"
	Pilot        string `yaml:"pilot"`        // "D"
	Voicemail    string `yaml:"voicemail"`    // "H"
}

// RowWindow is an inclusive 1-based row range.
type RowWindow struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// TableRange locates a two-column lookup table on a sheet.
type TableRange struct {
	// NameColumn holds rate-center names. Default: "F"
	NameColumn string `yaml:"name_column"`

	// CodeColumn holds the paired line class codes. Default: "G"
	CodeColumn string `yaml:"code_column"`

	// Rows is the scanned row window. Default: 10-200.
	Rows RowWindow `yaml:"rows"`
}

// RateCenterConfig configures the external NPA-NXX prefix lookup service.
type RateCenterConfig struct {
	// Endpoint is the lookup URL. The service takes npa and nxx query
	// parameters and answers XML containing <rc> and <lata> elements.
	// Overridable via the RATE_CENTER_URL environment variable.
	Endpoint string `yaml:"endpoint"`

	// TimeoutSeconds bounds each lookup. A timed-out prefix is cached as
	// a permanent miss for the rest of the run; there are no retries.
	// Overridable via RATE_CENTER_TIMEOUT. Default: 10
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// OutputConfig configures export framing and destination.
type OutputConfig struct {
	// Dir is the directory generated CSV files are written to.
	// Default: "./output"
	Dir string `yaml:"dir"`

	// SectionGap is the number of blank lines between sections inside one
	// buffer. The consuming importer tolerates blank lines but the exact
	// count is kept stable for diff compatibility. Default: 1
	SectionGap int `yaml:"section_gap"`

	// GroupGap is the number of blank lines at the split point between
	// the BG group and the seats group in combined mode. Default: 2
	GroupGap int `yaml:"group_gap"`
}

// PolicyConfig pins revision-ambiguous behavior to one documented choice.
type PolicyConfig struct {
	// IncludePilotlessGroups controls whether a hunt group row with a name
	// but no pilot number still emits a Hunt Group membership record. It
	// never emits a Pilot record either way. Default: true
	IncludePilotlessGroups *bool `yaml:"include_pilotless_groups"`

	// MACTrustWeeks is how far ahead the "MAC trusted until" timestamp is
	// set on Managed Device records. Default: 4
	MACTrustWeeks int `yaml:"mac_trust_weeks"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from the given path. A missing file is not an
// error: the generator is fully functional on defaults, and most deployments
// never ship a config.yaml at all.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Sheets.UserDetails == "" {
		cfg.Sheets.UserDetails = "User details"
	}
	if len(cfg.Sheets.Engineering) == 0 {
		cfg.Sheets.Engineering = []string{"CommandLink", "Engineering"}
	}
	if cfg.Sheets.CallFlow == "" {
		cfg.Sheets.CallFlow = "Call flow"
	}

	cc := &cfg.ContextCells
	if cc.CustomerName == "" {
		cc.CustomerName = "B3"
	}
	if cc.Region == "" {
		cc.Region = "C4"
	}
	if cc.Timezone == "" {
		cc.Timezone = "C5"
	}
	if cc.DefaultLCC1 == "" {
		cc.DefaultLCC1 = "C17"
	}
	if cc.DefaultLCC2 == "" {
		cc.DefaultLCC2 = "C18"
	}
	if cc.DefaultLCC3 == "" {
		cc.DefaultLCC3 = "C12"
	}
	if cc.BusinessGroupLCC == "" {
		cc.BusinessGroupLCC = "C19"
	}

	uc := &cfg.UserColumns
	defaultCol(&uc.Name, "A")
	defaultCol(&uc.Phone, "B")
	defaultCol(&uc.CallingParty, "D")
	defaultCol(&uc.Extension, "E")
	defaultCol(&uc.Email, "F")
	defaultCol(&uc.AccountType, "H")
	defaultCol(&uc.Department, "I")
	defaultCol(&uc.Timezone, "J")
	defaultCol(&uc.Template, "M")
	defaultCol(&uc.MAC, "N")
	defaultCol(&uc.HuntGroup, "O")
	defaultCol(&uc.RoutingOverride, "R")

	if cfg.UserStartRow == 0 {
		cfg.UserStartRow = 9
	}
	if cfg.UserEndRow == 0 {
		cfg.UserEndRow = 500
	}

	if cfg.HuntRows.From == 0 {
		cfg.HuntRows.From = 17
	}
	if cfg.HuntRows.To == 0 {
		cfg.HuntRows.To = 27
	}

	hc := &cfg.HuntColumns
	defaultCol(&hc.Name, "B")
	defaultCol(&hc.Distribution, "C")
	defaultCol(&hc.Pilot, "D")
	defaultCol(&hc.Voicemail, "H")

	et := &cfg.EngineeringTable
	defaultCol(&et.NameColumn, "F")
	defaultCol(&et.CodeColumn, "G")
	if et.Rows.From == 0 {
		et.Rows.From = 10
	}
	if et.Rows.To == 0 {
		et.Rows.To = 200
	}

	if cfg.RateCenter.Endpoint == "" {
		cfg.RateCenter.Endpoint = "https://www.localcallingguide.com/xmlprefix.php"
	}
	if cfg.RateCenter.TimeoutSeconds == 0 {
		cfg.RateCenter.TimeoutSeconds = 10
	}

	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "./output"
	}
	if cfg.Output.SectionGap == 0 {
		cfg.Output.SectionGap = 1
	}
	if cfg.Output.GroupGap == 0 {
		cfg.Output.GroupGap = 2
	}

	if cfg.Policy.IncludePilotlessGroups == nil {
		t := true
		cfg.Policy.IncludePilotlessGroups = &t
	}
	if cfg.Policy.MACTrustWeeks == 0 {
		cfg.Policy.MACTrustWeeks = 4
	}
}

// applyEnvOverrides lets the environment (optionally loaded from .env)
// override the rate-center lookup settings.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RATE_CENTER_URL"); v != "" {
		cfg.RateCenter.Endpoint = v
	}
	if v := os.Getenv("RATE_CENTER_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RateCenter.TimeoutSeconds = secs
		}
	}
}

// validate rejects configurations the generator cannot act on.
func validate(cfg *Config) error {
	if cfg.UserStartRow > cfg.UserEndRow {
		return fmt.Errorf("user_start_row %d is after user_end_row %d", cfg.UserStartRow, cfg.UserEndRow)
	}
	if cfg.HuntRows.From > cfg.HuntRows.To {
		return fmt.Errorf("hunt_rows window %d-%d is inverted", cfg.HuntRows.From, cfg.HuntRows.To)
	}
	if cfg.EngineeringTable.Rows.From > cfg.EngineeringTable.Rows.To {
		return fmt.Errorf("engineering_table rows %d-%d is inverted",
			cfg.EngineeringTable.Rows.From, cfg.EngineeringTable.Rows.To)
	}
	return nil
}

func defaultCol(field *string, def string) {
	if *field == "" {
		*field = def
	}
}
