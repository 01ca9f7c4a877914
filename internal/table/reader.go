// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/csimplestring/go-csv/detector"
	"github.com/extrame/xls"

	"github.com/kortschak/ddct/internal/ddct"
)

// sampleSize is the number of bytes inspected for delimiter detection.
const sampleSize = 1 << 16

// records is a source of table records.
type records interface {
	Read() ([]string, error)
}

// Reader reads rows from an instrument table.
type Reader struct {
	src    records
	layout Layout
	width  int

	// sparse indicates that trailing empty
	// fields may be omitted by src.
	sparse bool
}

// NewReader returns a Reader reading delimited text from r. If layout.Comma
// is zero, the delimiter is detected from the start of the input.
func NewReader(r io.Reader, layout Layout) (*Reader, error) {
	err := layout.validate()
	if err != nil {
		return nil, err
	}
	if layout.Comma == 0 {
		br := bufio.NewReaderSize(r, sampleSize)
		sample, err := br.Peek(sampleSize)
		if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
			return nil, err
		}
		layout.Comma = DetectDelimiter(bytes.NewReader(sample))
		r = br
	}
	c := csv.NewReader(r)
	c.Comma = layout.Comma
	c.Comment = '#'
	c.FieldsPerRecord = -1
	c.LazyQuotes = true
	c.ReuseRecord = true
	return newReader(c, layout), nil
}

func newReader(src records, layout Layout) *Reader {
	return &Reader{src: src, layout: layout, width: layout.width()}
}

// Read returns the next row in the table. At the end of the table Read
// returns io.EOF.
func (r *Reader) Read() (ddct.Row, error) {
	for {
		record, err := r.src.Read()
		if err != nil {
			return ddct.Row{}, err
		}
		if l, ok := r.layout.header(record); ok {
			r.layout = l
			r.width = l.width()
			continue
		}
		if len(record) < r.width {
			if !r.sparse || len(record) <= r.layout.Sample || len(record) <= r.layout.Detector {
				continue
			}
			record = append(record, make([]string, r.width-len(record))...)
		}
		return ddct.Row{
			Condition: record[r.layout.Sample],
			Gene:      record[r.layout.Detector],
			Ct:        record[r.layout.Ct],
		}, nil
	}
}

// ReadAll returns all remaining rows in the table.
func (r *Reader) ReadAll() ([]ddct.Row, error) {
	var rows []ddct.Row
	for {
		row, err := r.Read()
		if err != nil {
			if err == io.EOF {
				return rows, nil
			}
			return rows, err
		}
		rows = append(rows, row)
	}
}

// DetectDelimiter returns the most likely field delimiter of the delimited
// text in r. Tab, comma and semicolon are preferred in that order when more
// than one candidate is found. If no delimiter can be identified a tab is
// returned.
func DetectDelimiter(r io.Reader) rune {
	d := detector.New()
	candidates := make(map[rune]bool)
	var first rune
	for _, c := range d.DetectDelimiter(r, '"') {
		if c == "" {
			continue
		}
		if first == 0 {
			first = rune(c[0])
		}
		candidates[rune(c[0])] = true
	}
	for _, c := range []rune{'\t', ',', ';'} {
		if candidates[c] {
			return c
		}
	}
	if first != 0 {
		return first
	}
	return '\t'
}

// ReadFile returns all the rows held in the table at path. Compressed
// text and Excel workbooks are detected from the file contents. If path
// is "-" the table is read from standard input.
func ReadFile(path string, layout Layout) ([]ddct.Row, error) {
	var f *os.File
	if path == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		defer f.Close()
	}

	br := bufio.NewReader(f)
	typ, err := detectDataType(br)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	if typ == dataTypeXLS {
		if path == "-" {
			return nil, pfx.Err(errors.New("cannot read Excel workbook from standard input"))
		}
		return readWorkbook(path, layout)
	}
	dr, err := decompress(br, typ)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	r, err := NewReader(dr, layout)
	if err != nil {
		return nil, pfx.Err(err)
	}
	rows, err := r.ReadAll()
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	return rows, nil
}

func readWorkbook(path string, layout Layout) ([]ddct.Row, error) {
	err := layout.validate()
	if err != nil {
		return nil, pfx.Err(err)
	}
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	if wb == nil {
		return nil, pfx.Err(fmt.Errorf("%s: no workbook stream", path))
	}
	if layout.Sheet < 0 || layout.Sheet >= wb.NumSheets() {
		return nil, pfx.Err(fmt.Errorf("%s: no sheet %d: workbook has %d sheets", path, layout.Sheet, wb.NumSheets()))
	}
	sheet := wb.GetSheet(layout.Sheet)
	if sheet == nil {
		return nil, pfx.Err(fmt.Errorf("%s: sheet %d is empty", path, layout.Sheet))
	}
	r := newReader(&sheetRecords{sheet: sheet}, layout)
	r.sparse = true
	return r.ReadAll()
}

// sheetRecords provides the rows of an Excel worksheet as records.
type sheetRecords struct {
	sheet *xls.WorkSheet
	row   int
}

func (s *sheetRecords) Read() ([]string, error) {
	if s.row > int(s.sheet.MaxRow) {
		return nil, io.EOF
	}
	row := s.rowAt(s.row)
	s.row++
	if row == nil {
		return nil, nil
	}
	// LastCol is one past the last cell in the row.
	record := make([]string, 0, row.LastCol())
	for col := 0; col < row.LastCol(); col++ {
		record = append(record, row.Col(col))
	}
	return record, nil
}

// rowAt returns row i of the sheet, or nil if the row holds no cells.
func (s *sheetRecords) rowAt(i int) (row *xls.Row) {
	// WorkSheet.Row panics for rows that are not present.
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return s.sheet.Row(i)
}
