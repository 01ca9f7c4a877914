// Copyright ©2023 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type dataType byte

const (
	dataTypePlain dataType = iota
	dataTypeGzip
	dataTypeZip
	dataTypeXZ
	dataTypeBZip2
	dataTypeXLS
)

var signatures = []struct {
	typ dataType
	sig []byte
}{
	{dataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{dataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{dataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{dataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
	{dataTypeXLS, []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}},
}

// detectDataType returns the data type of the stream held by r based on
// its leading bytes without consuming them.
func detectDataType(r *bufio.Reader) (dataType, error) {
	buf, err := r.Peek(8)
	if err != nil && err != io.EOF {
		return dataTypePlain, err
	}
	for _, s := range signatures {
		if bytes.HasPrefix(buf, s.sig) {
			return s.typ, nil
		}
	}
	return dataTypePlain, nil
}

// decompress returns a reader of the decompressed contents of r.
// Zip archives are read from their first entry.
func decompress(r *bufio.Reader, typ dataType) (io.Reader, error) {
	switch typ {
	case dataTypeGzip:
		return gzip.NewReader(r)
	case dataTypeBZip2:
		return bzip2.NewReader(r), nil
	case dataTypeXZ:
		return xz.NewReader(r, 0)
	case dataTypeZip:
		z := zipstream.NewReader(r)
		_, err := z.Next()
		if err != nil {
			return nil, err
		}
		return z, nil
	default:
		return r, nil
	}
}
