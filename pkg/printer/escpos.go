package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

type Align byte

const (
	AlignLeft   Align = 0
	AlignCenter Align = 1
	AlignRight  Align = 2
)

// DefaultWidth fits 58mm paper. 80mm paper takes 48.
const DefaultWidth = 32

// Document builds an ESC/POS byte stream. Every method appends and returns
// the document so calls chain.
type Document struct {
	buf   bytes.Buffer
	width int
}

func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = DefaultWidth
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{esc, '@'})
	return d
}

func (d *Document) Width() int {
	return d.width
}

func (d *Document) Feed(n int) *Document {
	d.buf.Write(bytes.Repeat([]byte{lf}, n))
	return d
}

func (d *Document) Align(a Align) *Document {
	d.buf.Write([]byte{esc, 'a', byte(a)})
	return d
}

func (d *Document) Bold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{esc, 'E', b})
	return d
}

// Large toggles double width and height
func (d *Document) Large(on bool) *Document {
	size := byte(0x00)
	if on {
		size = 0x11
	}
	d.buf.Write([]byte{gs, '!', size})
	return d
}

// Line writes s, truncated to the paper width
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(truncate(s, d.width))
	d.buf.WriteByte(lf)
	return d
}

// Heading writes a centred bold line and restores left alignment
func (d *Document) Heading(s string) *Document {
	return d.Align(AlignCenter).Bold(true).Line(s).Bold(false).Align(AlignLeft)
}

func (d *Document) Rule(char rune) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(lf)
	return d
}

// Pair writes left and right on one line, shortening left when they do not fit
func (d *Document) Pair(left, right string) *Document {
	room := d.width - utf8.RuneCountInString(right) - 1
	if room < 1 {
		return d.Line(left).Align(AlignRight).Line(right).Align(AlignLeft)
	}
	left = truncate(left, room)
	pad := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	d.buf.WriteString(left)
	d.buf.WriteString(strings.Repeat(" ", pad))
	d.buf.WriteString(right)
	d.buf.WriteByte(lf)
	return d
}

func (d *Document) Cut() *Document {
	d.buf.Write([]byte{gs, 'V', 0x01})
	return d
}

func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width])
}
