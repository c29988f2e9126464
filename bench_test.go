// Copyright 2017-2020 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package atg_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/db47h/atg"
)

type mockSource struct{}

func (mockSource) ReadAt(p []byte, off int64) (n int, err error) {
	for i := range p {
		p[i] = 'a'
	}
	return len(p), nil
}

func (mockSource) Size() int64 { return 1 << 40 }

func BenchmarkCursor(b *testing.B) {
	var c atg.Cursor
	c.Reset(mockSource{}, 0, 1<<40)

	rnd := rand.New(rand.NewSource(123456))

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if rnd.Intn(3) == 0 {
			c.Backup()
		} else {
			c.Next()
		}
	}
}

func BenchmarkLexer(b *testing.B) {
	src := strings.Repeat(sample, 200)
	r := strings.NewReader(src)
	l := atg.NewLexer(nil)
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		l.Reset(r, 0, len(src))
		for t := l.Next(); t.Type != atg.End; t = l.Next() {
		}
	}
}
