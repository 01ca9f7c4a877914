// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report renders ΔΔCt analysis reports as text, JSON, TSV and
// fold-change plots.
package report
