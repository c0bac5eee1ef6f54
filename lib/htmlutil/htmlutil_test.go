package htmlutil

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestCellText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<table><tr><td>  HERO MOTOCORP   <b>LTD</b> </td></tr></table>`,
	))
	require.NoError(t, err)

	cell := doc.Find("td")
	require.Equal(t, "HERO MOTOCORP LTD", CellText(cell))
}

func TestCleanText(t *testing.T) {
	// non-printable runes (newlines, tabs) are stripped outright,
	// runs of spaces collapse to one
	require.Equal(t, "a b", CleanText("  a    b  "))
	require.Equal(t, "ab", CleanText("a\nb"))
	require.Equal(t, "", CleanText("\n\t "))
}
