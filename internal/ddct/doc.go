// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ddct implements relative quantification of qPCR gene expression
// using the comparative ΔΔCt method.
//
// Per-well Ct readings are aggregated into a control and a stress Dataset.
// Each dataset is validated and normalised against a housekeeping gene to
// give ΔCt values, the two conditions are compared to give ΔΔCt values and
// these are converted to fold-change, 2^(-ΔΔCt), and classified as up- or
// down-regulated. An RNA integrity ratio of 3′ and 5′ probe Ct values is
// reported for each condition as a diagnostic.
//
// Problems found during analysis are recorded as Issues. Warnings never stop
// the analysis; fatal issues stop the affected condition or comparison and
// no numeric placeholder is ever substituted for a value that could not be
// calculated.
package ddct
