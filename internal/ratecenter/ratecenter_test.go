package ratecenter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLookup records every inner call so cache behavior is observable.
type countingLookup struct {
	calls   int
	results map[string]RateCenter
}

func (c *countingLookup) Lookup(npa, nxx string) (RateCenter, bool) {
	c.calls++
	rc, ok := c.results[npa+nxx]
	return rc, ok
}

func TestHTTPLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "312", r.URL.Query().Get("npa"))
		assert.Equal(t, "555", r.URL.Query().Get("nxx"))
		w.Write([]byte(`<root><prefixdata><rc>CHICAGO ZONE 1</rc><lata>358</lata></prefixdata></root>`))
	}))
	defer srv.Close()

	l := NewHTTPLookup(srv.URL, 2*time.Second)
	rc, ok := l.Lookup("312", "555")
	require.True(t, ok)
	assert.Equal(t, RateCenter{Name: "CHICAGO ZONE 1", LATA: "358"}, rc)
}

func TestHTTPLookupNon2xxIsMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	l := NewHTTPLookup(srv.URL, 2*time.Second)
	_, ok := l.Lookup("312", "555")
	assert.False(t, ok)
}

func TestHTTPLookupUnreachableIsMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	l := NewHTTPLookup(srv.URL, 500*time.Millisecond)
	_, ok := l.Lookup("312", "555")
	assert.False(t, ok)
}

func TestParseResponse(t *testing.T) {
	rc, ok := parseResponse(strings.NewReader(
		`<root><prefixdata><npa>312</npa><rc>CHICAGO ZONE 1</rc><lata>358</lata></prefixdata></root>`))
	require.True(t, ok)
	assert.Equal(t, "CHICAGO ZONE 1", rc.Name)
	assert.Equal(t, "358", rc.LATA)

	// First rc wins when the response carries several prefix blocks.
	rc, ok = parseResponse(strings.NewReader(
		`<root><a><rc>FIRST</rc><lata>111</lata></a><a><rc>SECOND</rc><lata>222</lata></a></root>`))
	require.True(t, ok)
	assert.Equal(t, "FIRST", rc.Name)
	assert.Equal(t, "111", rc.LATA)

	_, ok = parseResponse(strings.NewReader(`<root><error>no data</error></root>`))
	assert.False(t, ok)

	_, ok = parseResponse(strings.NewReader(`not xml at all`))
	assert.False(t, ok)
}

func TestCacheConsultsInnerOncePerPrefix(t *testing.T) {
	inner := &countingLookup{results: map[string]RateCenter{
		"312555": {Name: "CHICAGO ZONE 1", LATA: "358"},
	}}
	c := NewCache(inner)

	for i := 0; i < 3; i++ {
		rc, ok := c.Lookup("312", "555")
		require.True(t, ok)
		assert.Equal(t, "CHICAGO ZONE 1", rc.Name)
	}
	assert.Equal(t, 1, inner.calls)

	hits, requests := c.Stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 3, requests)
}

func TestCacheCachesMisses(t *testing.T) {
	inner := &countingLookup{}
	c := NewCache(inner)

	for i := 0; i < 3; i++ {
		_, ok := c.Lookup("999", "999")
		assert.False(t, ok)
	}
	assert.Equal(t, 1, inner.calls, "a failed prefix is never retried")
}

func TestEnrich(t *testing.T) {
	lookup := &countingLookup{results: map[string]RateCenter{
		"312555": {Name: "Chicago  Zone 1", LATA: "358"},
	}}
	e := NewEnricher(lookup, []TableEntry{
		{RateCenter: "MILWAUKEE", Code: "414-A"},
		{RateCenter: "CHICAGO ZONE 1", Code: "312-A"},
		{RateCenter: "CHICAGO ZONE 1", Code: "312-B"}, // first match wins
	})

	lcc1, lcc2, lcc3 := e.Enrich("3125551234")
	assert.Equal(t, "312-A", lcc1)
	assert.Equal(t, "358", lcc2)
	assert.Equal(t, "312", lcc3)
}

func TestEnrichNormalizesNumbers(t *testing.T) {
	lookup := &countingLookup{results: map[string]RateCenter{
		"312555": {Name: "CHICAGO ZONE 1", LATA: "358"},
	}}
	e := NewEnricher(lookup, []TableEntry{{RateCenter: "CHICAGO ZONE 1", Code: "312-A"}})

	// Leading country code and punctuation are stripped before splitting.
	for _, phone := range []string{"13125551234", "+1 (312) 555-1234", "312.555.1234"} {
		lcc1, lcc2, lcc3 := e.Enrich(phone)
		assert.Equal(t, "312-A", lcc1, phone)
		assert.Equal(t, "358", lcc2, phone)
		assert.Equal(t, "312", lcc3, phone)
	}
}

func TestEnrichShortNumberBlanksAll(t *testing.T) {
	e := NewEnricher(&countingLookup{}, nil)
	lcc1, lcc2, lcc3 := e.Enrich("31255")
	assert.Empty(t, lcc1)
	assert.Empty(t, lcc2)
	assert.Empty(t, lcc3)
}

func TestEnrichOfflineKeepsAreaCode(t *testing.T) {
	e := NewEnricher(nil, []TableEntry{{RateCenter: "CHICAGO ZONE 1", Code: "312-A"}})
	lcc1, lcc2, lcc3 := e.Enrich("3125551234")
	assert.Empty(t, lcc1)
	assert.Empty(t, lcc2)
	assert.Equal(t, "312", lcc3)
}

func TestEnrichLookupMissKeepsAreaCode(t *testing.T) {
	e := NewEnricher(&countingLookup{}, []TableEntry{{RateCenter: "CHICAGO ZONE 1", Code: "312-A"}})
	lcc1, lcc2, lcc3 := e.Enrich("3125551234")
	assert.Empty(t, lcc1)
	assert.Empty(t, lcc2)
	assert.Equal(t, "312", lcc3)
}

func TestEnrichUnmatchedRateCenterBlanksLCC1Only(t *testing.T) {
	lookup := &countingLookup{results: map[string]RateCenter{
		"312555": {Name: "SOMEWHERE ELSE", LATA: "358"},
	}}
	e := NewEnricher(lookup, []TableEntry{{RateCenter: "CHICAGO ZONE 1", Code: "312-A"}})

	lcc1, lcc2, lcc3 := e.Enrich("3125551234")
	assert.Empty(t, lcc1)
	assert.Equal(t, "358", lcc2)
	assert.Equal(t, "312", lcc3)
}

func TestSplitPrefix(t *testing.T) {
	npa, nxx, ok := SplitPrefix("3125551234")
	require.True(t, ok)
	assert.Equal(t, "312", npa)
	assert.Equal(t, "555", nxx)

	npa, nxx, ok = SplitPrefix("1-312-555-1234")
	require.True(t, ok)
	assert.Equal(t, "312", npa)
	assert.Equal(t, "555", nxx)

	_, _, ok = SplitPrefix("12345")
	assert.False(t, ok)
}
