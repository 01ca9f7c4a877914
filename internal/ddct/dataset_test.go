// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddct

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestAggregate(t *testing.T) {
	readings := []Reading{
		{Condition: "control", Gene: "ef1a", Ct: NumericCt(20.1)},
		{Condition: "control", Gene: "ef1a", Ct: NumericCt(19.9)},
		{Condition: "control", Gene: "ef1a", Ct: Ct{Status: Missing}},
		{Condition: "control", Gene: "geneA", Ct: NumericCt(25)},
		{Condition: "control", Gene: "geneA", Ct: Ct{Status: Undetermined}},
		{Condition: "control", Gene: "geneB", Ct: Ct{Status: Undetermined}},
		{Condition: "control", Gene: "geneB", Ct: Ct{Status: Missing}},
		{Condition: "stress", Gene: "ef1a", Ct: NumericCt(19)},
		{Condition: "stress", Gene: "geneA", Ct: NumericCt(1.0 / 3)},
		{Condition: "other", Gene: "geneC", Ct: NumericCt(30)},
		{Condition: "Control", Gene: "geneD", Ct: NumericCt(30)},
	}
	control, stress := Aggregate(readings, "control", "stress")

	if got := control.Condition(); got != "control" {
		t.Errorf("unexpected control label: got:%q", got)
	}
	wantGenes := []string{"ef1a", "geneA", "geneB"}
	if got := control.Genes(); !reflect.DeepEqual(got, wantGenes) {
		t.Errorf("unexpected control genes: got:%v want:%v", got, wantGenes)
	}
	for gene, want := range map[string]Ct{
		"ef1a":  NumericCt(20),
		"geneA": NumericCt(25),
		"geneB": {Status: Undetermined},
		"geneC": {Status: Absent},
		"geneD": {Status: Absent},
	} {
		got := control.Ct(gene)
		if got.Status != want.Status || !scalar.EqualWithinAbs(got.Value, want.Value, 1e-12) {
			t.Errorf("unexpected control Ct for %s: got:%v want:%v", gene, got, want)
		}
	}

	if stress.Len() != 2 {
		t.Errorf("unexpected stress length: got:%d want:2", stress.Len())
	}
	if got, want := stress.Ct("geneA"), 0.3333333; !scalar.EqualWithinAbs(got.Value, want, 1e-15) {
		t.Errorf("unexpected rounding: got:%v want:%v", got, want)
	}
}

func TestAggregateEmpty(t *testing.T) {
	control, stress := Aggregate([]Reading{{Condition: "kontrola", Gene: "ef1a", Ct: NumericCt(20)}}, "control", "stress")
	if control.Len() != 0 || stress.Len() != 0 {
		t.Errorf("unexpected non-empty datasets: control:%v stress:%v", control.Genes(), stress.Genes())
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	var readings []Reading
	for i := 0; i < 50; i++ {
		readings = append(readings, Reading{Condition: "control", Gene: "geneA", Ct: NumericCt(20 + rnd.Float64()*10)})
	}
	want, _ := Aggregate(readings, "control", "stress")
	for i := 0; i < 20; i++ {
		rnd.Shuffle(len(readings), func(i, j int) { readings[i], readings[j] = readings[j], readings[i] })
		got, _ := Aggregate(readings, "control", "stress")
		if got.Ct("geneA") != want.Ct("geneA") {
			t.Errorf("order dependent aggregation: got:%v want:%v", got.Ct("geneA"), want.Ct("geneA"))
		}
	}
}

func TestAggregatorStreaming(t *testing.T) {
	a := NewAggregator("control", "stress")
	if !a.Add(Reading{Condition: "control", Gene: "ef1a", Ct: NumericCt(20)}) {
		t.Error("control reading not matched")
	}
	if a.Add(Reading{Condition: "unknown", Gene: "ef1a", Ct: NumericCt(20)}) {
		t.Error("unknown reading matched")
	}
	control, _ := a.Datasets()
	a.Add(Reading{Condition: "control", Gene: "ef1a", Ct: NumericCt(22)})
	if got := control.Ct("ef1a"); got != NumericCt(20) {
		t.Errorf("dataset modified by later reading: got:%v", got)
	}
	control, _ = a.Datasets()
	if got := control.Ct("ef1a"); got != NumericCt(21) {
		t.Errorf("unexpected aggregate: got:%v want:21", got)
	}
}

func TestNewDataset(t *testing.T) {
	d := NewDataset("control", map[string]Ct{
		"b": NumericCt(1),
		"a": {Status: Missing},
		"c": {Status: Absent},
	})
	if got, want := d.Genes(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected genes: got:%v want:%v", got, want)
	}
	if got := d.Ct("a").Status; got != Undetermined {
		t.Errorf("unexpected status for missing value: got:%v want:%v", got, Undetermined)
	}
}

func TestAggregatorAddRow(t *testing.T) {
	a := NewAggregator("kontrola", "stres")
	for _, r := range []Row{
		{Condition: "Sample Name", Gene: "Detector Name", Ct: "Ct Mean"},
		{Condition: "kontrola", Gene: "ef1alfa", Ct: "20.5"},
		{Condition: "kontrola", Gene: "ef1alfa", Ct: "Undertermined"},
		{Condition: "stres", Gene: "ef1alfa", Ct: ""},
	} {
		if _, err := a.AddRow(r); err != nil {
			t.Errorf("unexpected error for %+v: %v", r, err)
		}
	}
	control, stress := a.Datasets()
	if got := control.Ct("ef1alfa"); got != NumericCt(20.5) {
		t.Errorf("unexpected control Ct: got:%v want:20.5", got)
	}
	if got := stress.Ct("ef1alfa"); got.Status != Undetermined {
		t.Errorf("unexpected stress Ct: got:%v want:undetermined", got)
	}

	matched, err := a.AddRow(Row{Condition: "stres", Gene: "HSP101", Ct: "x"})
	if err == nil || !matched {
		t.Errorf("expected matched parse error: matched:%t err:%v", matched, err)
	}
}

func TestAggregatorOutOfRangeCt(t *testing.T) {
	a := NewAggregator("control", "stress")
	a.Add(Reading{Condition: "control", Gene: "ef1a", Ct: NumericCt(math.NaN())})
	a.Add(Reading{Condition: "control", Gene: "ef1a", Ct: NumericCt(20)})
	a.Add(Reading{Condition: "control", Gene: "geneA", Ct: NumericCt(math.Inf(1))})
	a.Add(Reading{Condition: "control", Gene: "geneB", Ct: NumericCt(-3)})
	control, _ := a.Datasets()
	if got := control.Ct("ef1a"); got != NumericCt(20) {
		t.Errorf("unexpected aggregate: got:%v want:20", got)
	}
	for _, g := range []string{"geneA", "geneB"} {
		if got := control.Ct(g).Status; got != Undetermined {
			t.Errorf("unexpected status for %s: got:%v want:%v", g, got, Undetermined)
		}
	}

	d := NewDataset("control", map[string]Ct{"geneA": NumericCt(math.NaN())})
	if got := d.Ct("geneA").Status; got != Undetermined {
		t.Errorf("unexpected status for stored out of range value: got:%v want:%v", got, Undetermined)
	}
}
