package speller

import "unicode/utf8"

// outputBuffer is a fixed-capacity byte buffer holding the symbols of the
// form being walked. Writes past capacity fail instead of growing.
type outputBuffer struct {
	buf []byte
}

func newOutputBuffer(capacity int) *outputBuffer {
	return &outputBuffer{buf: make([]byte, 0, capacity)}
}

func (b *outputBuffer) reset() { b.buf = b.buf[:0] }

func (b *outputBuffer) capacity() int { return cap(b.buf) }

func (b *outputBuffer) bytes() []byte { return b.buf }

func (b *outputBuffer) writeRune(r rune) bool {
	n := utf8.RuneLen(r)
	if n < 0 {
		n = utf8.RuneLen(utf8.RuneError)
	}
	if len(b.buf)+n > cap(b.buf) {
		return false
	}
	b.buf = utf8.AppendRune(b.buf, r)
	return true
}

// encode replaces the contents with the UTF-8 form of word.
func (b *outputBuffer) encode(word []rune) bool {
	b.reset()
	for _, r := range word {
		if !b.writeRune(r) {
			b.reset()
			return false
		}
	}
	return true
}
