package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	SizeNormal = 0x00
	SizeDouble = 0x11 // double width + double height
)

// Document builds an ESC/POS byte stream for thermal receipt printers.
type Document struct {
	buf   bytes.Buffer
	width int // print width in characters: 32 for 58mm paper, 48 for 80mm
}

// NewDocument creates an initialized ESC/POS document with the given
// character width.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{ESC, '@'}) // initialize printer
	return d
}

// Width returns the configured character width.
func (d *Document) Width() int {
	return d.width
}

// Align sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) Align(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// Bold enables or disables bold text.
func (d *Document) Bold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// Size sets the character size: SizeNormal or SizeDouble.
func (d *Document) Size(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Line writes a line of text followed by a line feed.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// Linef writes a formatted line of text followed by a line feed.
func (d *Document) Linef(format string, args ...interface{}) *Document {
	return d.Line(fmt.Sprintf(format, args...))
}

// Rule prints a full-width separator line of the given character.
func (d *Document) Rule(char byte) *Document {
	return d.Line(strings.Repeat(string(char), d.width))
}

// Cols prints a left-aligned label and right-aligned value on one line,
// e.g. "Subtotal                  1.00 €". Padding is computed in runes, not
// bytes; "€" and accented product names occupy one printed column each.
func (d *Document) Cols(label, value string) *Document {
	pad := d.width - utf8.RuneCountInString(label) - utf8.RuneCountInString(value)
	if pad < 1 {
		pad = 1
	}
	d.buf.WriteString(label)
	d.buf.WriteString(strings.Repeat(" ", pad))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// Feed sends n line feeds.
func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// Cut sends the partial paper cut command.
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
