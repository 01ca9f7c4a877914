// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ddct

import (
	"math"
	"testing"
)

var parseCtTests = []struct {
	field   string
	tokens  []string
	want    Ct
	wantErr bool
}{
	{field: "24.5", want: NumericCt(24.5)},
	{field: " 18 ", want: NumericCt(18)},
	{field: "0", want: NumericCt(0)},
	{field: "", want: Ct{Status: Missing}},
	{field: "   ", want: Ct{Status: Missing}},
	{field: "Undetermined", want: Ct{Status: Undetermined}},
	{field: "UNDETERMINED", want: Ct{Status: Undetermined}},
	{field: "Undertermined", want: Ct{Status: Undetermined}},
	{field: "n/a", tokens: []string{"N/A"}, want: Ct{Status: Undetermined}},
	{field: "Undetermined", tokens: []string{"N/A"}, wantErr: true},
	{field: "-1", wantErr: true},
	{field: "NaN", wantErr: true},
	{field: "+Inf", wantErr: true},
	{field: "twenty", wantErr: true},
}

func TestParseCt(t *testing.T) {
	for _, test := range parseCtTests {
		got, err := ParseCt(test.field, test.tokens...)
		if (err != nil) != test.wantErr {
			t.Errorf("unexpected error for %q: got:%v want error:%t", test.field, err, test.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if got != test.want {
			t.Errorf("unexpected result for %q: got:%v want:%v", test.field, got, test.want)
		}
	}
}

func TestCtZeroValue(t *testing.T) {
	var c Ct
	if c.Status != Absent {
		t.Errorf("unexpected zero status: got:%v want:%v", c.Status, Absent)
	}
	if c.IsNumeric() {
		t.Error("zero Ct reported as numeric")
	}
	if got := c.String(); got != "absent" {
		t.Errorf("unexpected string: got:%q want:%q", got, "absent")
	}
	if got := NumericCt(21.25).String(); got != "21.25" {
		t.Errorf("unexpected string: got:%q want:%q", got, "21.25")
	}
}

func TestCtValidate(t *testing.T) {
	for _, test := range []struct {
		ct      Ct
		wantErr bool
	}{
		{ct: NumericCt(0)},
		{ct: NumericCt(38.5)},
		{ct: Ct{Status: Undetermined}},
		{ct: Ct{Status: Missing}},
		{ct: Ct{}},
		{ct: NumericCt(-0.5), wantErr: true},
		{ct: NumericCt(math.NaN()), wantErr: true},
		{ct: NumericCt(math.Inf(1)), wantErr: true},
	} {
		err := test.ct.Validate()
		if (err != nil) != test.wantErr {
			t.Errorf("unexpected error for %v: got:%v want error:%t", test.ct, err, test.wantErr)
		}
	}
}
