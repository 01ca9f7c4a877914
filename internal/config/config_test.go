// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kortschak/ddct/internal/ddct"
	"github.com/kortschak/ddct/internal/table"
)

const example = `control: kontrola
stress: stres
housekeeping: ef1alfa
tested: [ATG8H, HSP101, RCAR3]
quality:
  prime3: GAPDH3
  prime5: GAPDH5
undetermined: [Undetermined, Undertermined]
table:
  delimiter: comma
  ct_column: 5
  ct_header: [Ct]
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	err := os.WriteFile(path, []byte(example), 0o644)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := f.Analysis()
	want := ddct.Config{
		Control:      "kontrola",
		Stress:       "stres",
		Tested:       []string{"ATG8H", "HSP101", "RCAR3"},
		Housekeeping: "ef1alfa",
		Quality3:     "GAPDH3",
		Quality5:     "GAPDH5",
		Undetermined: []string{"Undetermined", "Undertermined"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected analysis config:\ngot: %+v\nwant:%+v", got, want)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}

	l, err := f.Layout()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLayout := table.DefaultLayout
	wantLayout.Comma = ','
	wantLayout.Ct = 5
	wantLayout.CtHeader = []string{"Ct"}
	if !reflect.DeepEqual(l, wantLayout) {
		t.Errorf("unexpected layout:\ngot: %+v\nwant:%+v", l, wantLayout)
	}
}

func TestParseUnknownField(t *testing.T) {
	_, err := Parse(strings.NewReader("control: a\nhousekeeper: b\n"))
	if err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l, err := f.Layout()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(l, table.DefaultLayout) {
		t.Errorf("unexpected default layout: got:%+v want:%+v", l, table.DefaultLayout)
	}
}

func TestLayoutExplicitColumn(t *testing.T) {
	const data = "Sample Name\tDetector Name\tTask\tCt\tCt Mean\n" +
		"c\tef1a\tUnknown\t20.1\t20.05\n" +
		"c\tef1a\tUnknown\t20.0\t20.05\n"

	ct := 3
	f, err := Parse(strings.NewReader("table:\n  delimiter: tab\n  ct_column: 3\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Table.CtColumn == nil || *f.Table.CtColumn != ct {
		t.Fatalf("unexpected Ct column: %v", f.Table.CtColumn)
	}
	l, err := f.Layout()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.CtHeader != nil {
		t.Errorf("unexpected Ct header labels for explicit column: %q", l.CtHeader)
	}
	r, err := table.NewReader(strings.NewReader(data), l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []ddct.Row{
		{Condition: "c", Gene: "ef1a", Ct: "20.1"},
		{Condition: "c", Gene: "ef1a", Ct: "20.0"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected rows:\ngot: %v\nwant:%v", got, want)
	}

	// Header labels given with the column keep header detection.
	f.Table.CtHeader = []string{"Ct Mean"}
	l, err = f.Layout()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err = table.NewReader(strings.NewReader(data), l)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err = r.ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = []ddct.Row{
		{Condition: "c", Gene: "ef1a", Ct: "20.05"},
		{Condition: "c", Gene: "ef1a", Ct: "20.05"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected rows:\ngot: %v\nwant:%v", got, want)
	}
}

var delimiterTests = []struct {
	in      string
	want    rune
	wantErr bool
}{
	{in: "", want: 0},
	{in: "tab", want: '\t'},
	{in: "TAB", want: '\t'},
	{in: `\t`, want: '\t'},
	{in: "comma", want: ','},
	{in: ",", want: ','},
	{in: "semicolon", want: ';'},
	{in: "|", want: '|'},
	{in: "ab", wantErr: true},
	{in: "\n", wantErr: true},
	{in: `"`, wantErr: true},
}

func TestDelimiter(t *testing.T) {
	for _, test := range delimiterTests {
		got, err := Delimiter(test.in)
		if (err != nil) != test.wantErr {
			t.Errorf("unexpected error for %q: got:%v want error:%t", test.in, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("unexpected delimiter for %q: got:%q want:%q", test.in, got, test.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" ATG8H, HSP101,,RCAR3 ")
	want := []string{"ATG8H", "HSP101", "RCAR3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected list: got:%v want:%v", got, want)
	}
	if got := SplitList(""); got != nil {
		t.Errorf("unexpected list for empty input: %v", got)
	}
}
