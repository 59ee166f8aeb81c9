package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyFilter(t *testing.T) {
	list := []item{{"1", "Ravi Shastri"}, {"2", "Meera"}, {"3", "RAVINDRA"}, {"4", ""}}

	assert.Equal(t, list, ApplyFilter("", list, itemName))
	assert.Equal(t, []string{"1", "3"}, ids(ApplyFilter("ravi", list, itemName)))
	assert.Equal(t, []string{"2"}, ids(ApplyFilter("EER", list, itemName)))
	assert.Empty(t, ApplyFilter("nobody", list, itemName))

	for _, term := range []string{"a", "r", "ra", "Meera", "x"} {
		got := ApplyFilter(term, list, itemName)
		want := 0
		for _, i := range list {
			if strings.Contains(strings.ToLower(i.name), strings.ToLower(term)) {
				want++
			}
		}
		assert.Len(t, got, want)
		for _, i := range got {
			assert.Contains(t, strings.ToLower(i.name), strings.ToLower(term))
		}
	}
	assert.Len(t, list, 4, "filtering never mutates the source")
}
