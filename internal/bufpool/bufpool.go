// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package bufpool holds small sync.Pool wrappers reused across the RLE
// encoder and the sharelink gzip codec, adapted from the storage
// package's string-builder pool and the util package's JSON buffer
// pool.
package bufpool

import (
	"bytes"
	"strings"
	"sync"
)

var sb = &stringBuilderPool{
	pool: sync.Pool{
		New: func() any {
			return &strings.Builder{}
		},
	},
}

type stringBuilderPool struct{ pool sync.Pool }

func (p *stringBuilderPool) Get() *strings.Builder {
	return p.pool.Get().(*strings.Builder)
}

func (p *stringBuilderPool) Put(b *strings.Builder) {
	b.Reset()
	p.pool.Put(b)
}

// GetBuilder retrieves a reset *strings.Builder, used by the RLE encoder
// to assemble wrapped output lines without per-call allocation.
func GetBuilder() *strings.Builder { return sb.Get() }

// PutBuilder returns a builder to the pool.
func PutBuilder(b *strings.Builder) { sb.Put(b) }

var buf = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 256))
	},
}

// GetBuffer retrieves a reset *bytes.Buffer, used by the sharelink codec
// to stage gzip output before base64-encoding it, without allocating a
// fresh buffer on every call.
func GetBuffer() *bytes.Buffer {
	return buf.Get().(*bytes.Buffer)
}

// PutBuffer resets and returns a buffer to the pool.
func PutBuffer(b *bytes.Buffer) {
	b.Reset()
	buf.Put(b)
}
