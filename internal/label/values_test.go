package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeValues(t *testing.T) {
	got := NormalizeValues([]string{" Sales ", "", "HR", "Sales", "  "})
	assert.Equal(t, []string{"Sales", "HR"}, got)
}

func TestNormalizeValuesEmpty(t *testing.T) {
	assert.Empty(t, NormalizeValues(nil))
	assert.Empty(t, NormalizeValues([]string{"", "   "}))
}

func TestMergeValues(t *testing.T) {
	merged, added := MergeValues([]string{"Sales", "HR"}, []string{"HR", "Finance", "Sales", "Ops"})
	assert.Equal(t, []string{"Sales", "HR", "Finance", "Ops"}, merged)
	assert.Equal(t, 2, added)
}

func TestMergeValuesCaseSensitive(t *testing.T) {
	merged, added := MergeValues([]string{"Sales"}, []string{"sales"})
	assert.Equal(t, []string{"Sales", "sales"}, merged)
	assert.Equal(t, 1, added)
}

func TestMergeValuesNoNew(t *testing.T) {
	merged, added := MergeValues([]string{"A", "B"}, []string{"B", "A"})
	assert.Equal(t, []string{"A", "B"}, merged)
	assert.Zero(t, added)
}

func TestUnionSorted(t *testing.T) {
	got := unionSorted([]string{"HR", "Sales"}, []string{"Finance", "HR"})
	assert.Equal(t, []string{"Finance", "HR", "Sales"}, got)
}
