// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package sharelink encodes and decodes the compact URL-safe token a
// caller can hand off to reproduce a pattern: gzip the RLE document,
// then base64url-encode the compressed bytes.
package sharelink

import (
	"compress/gzip"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/conwaylife/hashlife/internal/bufpool"
)

// Encode compresses and base64url-encodes rle, an RLE document, into a
// single token suitable for embedding in a URL query parameter.
func Encode(rle string) (string, error) {
	buf := bufpool.GetBuffer()
	defer bufpool.PutBuffer(buf)

	gz := gzip.NewWriter(buf)
	if _, err := gz.Write([]byte(rle)); err != nil {
		return "", fmt.Errorf("sharelink: compress: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("sharelink: compress: %w", err)
	}

	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode: base64url-decodes token and ungzips the
// result back into an RLE document.
func Decode(token string) (string, error) {
	compressed, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("sharelink: decode base64: %w", err)
	}

	buf := bufpool.GetBuffer()
	defer bufpool.PutBuffer(buf)
	buf.Write(compressed)

	gz, err := gzip.NewReader(buf)
	if err != nil {
		return "", fmt.Errorf("sharelink: decompress: %w", err)
	}
	defer gz.Close()

	rle, err := io.ReadAll(gz)
	if err != nil {
		return "", fmt.Errorf("sharelink: decompress: %w", err)
	}
	return string(rle), nil
}
