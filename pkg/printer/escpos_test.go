package printer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDocumentCols(t *testing.T) {
	d := NewDocument(32)
	d.Cols("Subtotal", "1.00 €")

	out := string(d.Bytes())
	assert.Contains(t, out, "Subtotal")
	assert.Contains(t, out, "1.00 €")
	// Label plus padding plus value fill the configured width.
	assert.Contains(t, out, "Subtotal"+strings.Repeat(" ", 18)+"1.00 €")
}

func TestDocumentColsMultibyteRunesFillWidth(t *testing.T) {
	d := NewDocument(32)
	d.Cols("Água 0.5L", "0.50 €")
	d.Cols("Pão", "0.30 €")

	// Skip the init bytes and drop the trailing line feed.
	body := string(d.Bytes()[2:])
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		assert.Equal(t, 32, utf8.RuneCountInString(line), "line %q", line)
	}
}

func TestDocumentColsOverflowKeepsOneSpace(t *testing.T) {
	d := NewDocument(10)
	d.Cols("a very long label", "9.99")

	assert.Contains(t, string(d.Bytes()), "a very long label 9.99")
}

func TestDocumentStartsWithInit(t *testing.T) {
	d := NewDocument(0)
	assert.Equal(t, 32, d.Width())
	assert.Equal(t, []byte{ESC, '@'}, d.Bytes()[:2])
}

func TestDocumentRuleAndCut(t *testing.T) {
	d := NewDocument(8)
	d.Rule('-').Cut()

	out := d.Bytes()
	assert.Contains(t, string(out), "--------")
	assert.Equal(t, []byte{GS, 'V', 0x01}, out[len(out)-3:])
}
