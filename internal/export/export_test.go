package export

import (
	"strings"
	"testing"

	"github.com/commandlink/uccaas-import-gen/internal/config"
	"github.com/commandlink/uccaas-import-gen/internal/records"
)

func testAssembler() *Assembler {
	return New(config.OutputConfig{SectionGap: 1, GroupGap: 2})
}

func TestWriteSectionFraming(t *testing.T) {
	a := testAssembler()
	buf, err := a.assemble([]Section{{
		Title:   "Department",
		Headers: []string{"Department Name"},
		Rows:    []records.Record{{"Sales"}, {"Support"}},
	}})
	if err != nil {
		t.Fatal(err)
	}

	want := "#\n" +
		"# Department\n" +
		"#\n" +
		"Department Name\n" +
		"Sales\n" +
		"Support\n"
	if string(buf) != want {
		t.Errorf("assemble = %q, want %q", buf, want)
	}
}

func TestSectionGap(t *testing.T) {
	a := testAssembler()
	buf, err := a.assemble([]Section{
		{Title: "One", Headers: []string{"H"}, Rows: []records.Record{{"a"}}},
		{Title: "Two", Headers: []string{"H"}, Rows: []records.Record{{"b"}}},
	})
	if err != nil {
		t.Fatal(err)
	}

	got := string(buf)
	if !strings.Contains(got, "a\n\n#\n# Two\n") {
		t.Errorf("expected one blank line between sections, got %q", got)
	}
}

func TestCSVQuoting(t *testing.T) {
	a := testAssembler()
	buf, err := a.assemble([]Section{{
		Title:   "Subscriber",
		Headers: []string{"Name", "Department"},
		Rows:    []records.Record{{"Doe, Jane", "Sales"}},
	}})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(buf), `"Doe, Jane",Sales`) {
		t.Errorf("comma-bearing field should be quoted: %q", buf)
	}
}

func TestCombinedGroupGap(t *testing.T) {
	a := testAssembler()
	bg := []Section{{Title: "Business Group", Headers: []string{"H"}, Rows: []records.Record{{"bg"}}}}
	seats := []Section{{Title: "Subscriber", Headers: []string{"H"}, Rows: []records.Record{{"sub"}}}}

	buf, err := a.Combined(bg, seats)
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(buf), "bg\n\n\n#\n# Subscriber\n") {
		t.Errorf("expected two blank lines at the group split, got %q", buf)
	}
}

func TestTwoFile(t *testing.T) {
	a := testAssembler()
	bg := []Section{{Title: "Business Group", Headers: []string{"H"}, Rows: []records.Record{{"bg"}}}}
	seats := []Section{{Title: "Subscriber", Headers: []string{"H"}, Rows: []records.Record{{"sub"}}}}

	bgBuf, seatBuf, err := a.TwoFile(bg, seats)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(bgBuf), "#\n# Business Group\n") {
		t.Errorf("bg buffer = %q", bgBuf)
	}
	if !strings.HasPrefix(string(seatBuf), "#\n# Subscriber\n") {
		t.Errorf("seats buffer = %q", seatBuf)
	}
}

func TestFileNames(t *testing.T) {
	if got := BGFileName("Acme Dental"); got != "BG-NumberBlock-Departments-Acme Dental.csv" {
		t.Errorf("BGFileName = %q", got)
	}
	if got := SeatsFileName("Acme Dental"); got != "Seats-Devices-Exts-MLHG-Acme Dental.csv" {
		t.Errorf("SeatsFileName = %q", got)
	}
	if got := CombinedFileName("Acme Dental"); got != "Acme Dental-Meta-Import-Combined.csv" {
		t.Errorf("CombinedFileName = %q", got)
	}
}
