package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableAlignsLabels(t *testing.T) {
	out := SanitizeText(Table("Profile", []TableRow{
		{Label: "Name", Value: "Asha"},
		{Label: "Number", Value: "98765"},
	}, 80))
	assert.Contains(t, out, "Name    Asha")
	assert.Contains(t, out, "Number  98765")
}

func TestTableClampsLongValues(t *testing.T) {
	rows := []TableRow{{
		Label: strings.Repeat("Label", 8),
		Value: strings.Repeat("value", 40),
	}}
	out := Table("Table", rows, 60)
	assert.LessOrEqual(t, maxLineWidth(out), frameWidth(60))
}

func TestTableSanitizesCells(t *testing.T) {
	out := Table("", []TableRow{{Label: "na\u202Eme", Value: "va\x1b[2Jlue"}}, 80)
	assert.NotContains(t, out, "\u202E")
	assert.NotContains(t, out, "\x1b[2J")
	assert.Equal(t, "", Table("Empty", nil, 80))
}
