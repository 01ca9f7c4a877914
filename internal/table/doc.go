// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table reads qPCR instrument result exports into rows of sample
// name, detector name and Ct field.
//
// Delimited text exports may be tab, comma or semicolon separated and may
// be gzip, bzip2, xz or zip compressed. Legacy Excel workbooks are read from
// their first sheet unless another is requested. Rows too short to hold the
// configured columns, such as export preamble lines, are skipped.
package table
