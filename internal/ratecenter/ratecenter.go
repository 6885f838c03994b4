// =============================================================================
// UCaaS Import Generator - Rate-Center Enricher
// =============================================================================
//
// Derives per-subscriber line class codes from a phone number. The NPA-NXX
// prefix is looked up against an external rate-center service, and the
// returned rate-center name is joined against the engineering table from the
// workbook to produce LCC1. LCC2 is the LATA code, LCC3 the area code.
//
// This is the only network-dependent component in the generator and it is
// best-effort throughout: any network error, timeout, non-2xx response or
// parse failure degrades to blank codes. A failed prefix is cached as a miss
// for the rest of the run and never retried.
//
// =============================================================================

package ratecenter

import (
	"encoding/xml"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// RateCenter is one result of an NPA-NXX prefix lookup.
type RateCenter struct {
	// Name is the rate-center name, e.g. "CHICAGO ZONE 1".
	Name string

	// LATA is the Local Access and Transport Area code.
	LATA string
}

// Lookup resolves an NPA-NXX prefix to a rate center. Implementations must
// treat failure as a miss (ok == false), never as an error: enrichment is
// optional by contract.
type Lookup interface {
	Lookup(npa, nxx string) (RateCenter, bool)
}

// =============================================================================
// HTTP LOOKUP
// =============================================================================

// HTTPLookup queries an external prefix lookup service over HTTP GET with
// npa and nxx query parameters, expecting an XML response containing <rc>
// and <lata> elements.
type HTTPLookup struct {
	endpoint string
	client   *http.Client
}

// NewHTTPLookup builds a lookup against the given endpoint with a bounded
// per-request timeout.
func NewHTTPLookup(endpoint string, timeout time.Duration) *HTTPLookup {
	return &HTTPLookup{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Lookup performs a single prefix query. All failure paths return a miss.
func (l *HTTPLookup) Lookup(npa, nxx string) (RateCenter, bool) {
	u, err := url.Parse(l.endpoint)
	if err != nil {
		log.Debug().Str("endpoint", l.endpoint).Err(err).Msg("bad rate-center endpoint")
		return RateCenter{}, false
	}
	q := u.Query()
	q.Set("npa", npa)
	q.Set("nxx", nxx)
	u.RawQuery = q.Encode()

	resp, err := l.client.Get(u.String())
	if err != nil {
		log.Debug().Str("prefix", npa+nxx).Err(err).Msg("rate-center lookup failed")
		return RateCenter{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug().Str("prefix", npa+nxx).Int("status", resp.StatusCode).
			Msg("rate-center lookup returned non-2xx")
		return RateCenter{}, false
	}

	rc, ok := parseResponse(resp.Body)
	if !ok {
		log.Debug().Str("prefix", npa+nxx).Msg("rate-center response had no rc element")
	}
	return rc, ok
}

// parseResponse walks the XML token stream for the first <rc> and <lata>
// elements, at any nesting depth. The service wraps them differently
// depending on query form, so no fixed document structure is assumed.
func parseResponse(body io.Reader) (RateCenter, bool) {
	dec := xml.NewDecoder(body)
	var rc RateCenter
	var current string

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			current = t.Name.Local
		case xml.CharData:
			v := strings.TrimSpace(string(t))
			if v == "" {
				break
			}
			switch current {
			case "rc":
				if rc.Name == "" {
					rc.Name = v
				}
			case "lata":
				if rc.LATA == "" {
					rc.LATA = v
				}
			}
		case xml.EndElement:
			current = ""
		}
	}

	return rc, rc.Name != ""
}

// =============================================================================
// CACHE
// =============================================================================

// Cache wraps a Lookup with process-lifetime read-through caching keyed by
// the six-digit prefix. Misses are cached too, so a dead service costs one
// attempt per prefix, not one per row. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	inner   Lookup
	entries map[string]cacheEntry

	hits     int
	requests int
}

type cacheEntry struct {
	rc RateCenter
	ok bool
}

// NewCache wraps the given lookup.
func NewCache(inner Lookup) *Cache {
	return &Cache{inner: inner, entries: make(map[string]cacheEntry)}
}

// Lookup returns the cached result for the prefix, consulting the inner
// lookup exactly once per prefix.
func (c *Cache) Lookup(npa, nxx string) (RateCenter, bool) {
	key := npa + nxx

	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests++
	if e, ok := c.entries[key]; ok {
		c.hits++
		return e.rc, e.ok
	}

	rc, ok := c.inner.Lookup(npa, nxx)
	c.entries[key] = cacheEntry{rc: rc, ok: ok}
	return rc, ok
}

// Stats reports cache hits and total requests for the run summary.
func (c *Cache) Stats() (hits, requests int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.requests
}

// =============================================================================
// ENRICHER
// =============================================================================

// TableEntry is one row of the engineering rate-center table read from the
// workbook: a rate-center name paired with a line class code.
type TableEntry struct {
	RateCenter string
	Code       string
}

// Enricher turns a phone number into the three line class codes. A nil
// lookup (offline mode) keeps LCC3 working and blanks the other two.
type Enricher struct {
	lookup Lookup
	table  []TableEntry
}

// NewEnricher builds an enricher over the given lookup and engineering table.
func NewEnricher(lookup Lookup, table []TableEntry) *Enricher {
	return &Enricher{lookup: lookup, table: table}
}

// Enrich derives (lcc1, lcc2, lcc3) for a phone number.
//
// The number is reduced to digits; an 11-digit number with a leading "1"
// drops it. Fewer than six remaining digits means no prefix and all codes
// come back blank. LCC3 is the NPA verbatim. LCC2 is the LATA from the
// lookup. LCC1 is the engineering-table code whose rate-center column
// matches the looked-up rate-center name, first match wins.
func (e *Enricher) Enrich(phone string) (lcc1, lcc2, lcc3 string) {
	digits := digitsOnly(phone)
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	if len(digits) < 6 {
		return "", "", ""
	}

	npa, nxx := digits[0:3], digits[3:6]
	lcc3 = npa

	if e.lookup == nil {
		return "", "", lcc3
	}

	rc, ok := e.lookup.Lookup(npa, nxx)
	if !ok {
		return "", "", lcc3
	}

	lcc2 = rc.LATA

	want := normalizeRCName(rc.Name)
	for _, entry := range e.table {
		if normalizeRCName(entry.RateCenter) == want {
			lcc1 = entry.Code
			break
		}
	}

	return lcc1, lcc2, lcc3
}

// digitsOnly strips every non-digit character.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeRCName collapses whitespace and upper-cases a rate-center name
// so workbook spelling and service spelling compare equal.
func normalizeRCName(name string) string {
	return strings.ToUpper(strings.Join(strings.Fields(name), " "))
}

// SplitPrefix exposes the NPA-NXX derivation for callers that only need the
// prefix, returning ok == false when fewer than six digits remain.
func SplitPrefix(phone string) (npa, nxx string, ok bool) {
	digits := digitsOnly(phone)
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	if len(digits) < 6 {
		return "", "", false
	}
	return digits[0:3], digits[3:6], true
}
