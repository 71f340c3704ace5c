package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCriteria(t *testing.T) {
	got := ParseCriteria(`[{"field":"name","value":"ram"},{"field":"custom_Department","value":"Sales"}]`)
	assert.Equal(t, []Criterion{
		{Field: "name", Value: "ram"},
		{Field: "custom_Department", Value: "Sales"},
	}, got)
}

func TestParseCriteriaEmpty(t *testing.T) {
	assert.Nil(t, ParseCriteria(""))
}

func TestParseCriteriaMalformed(t *testing.T) {
	assert.Nil(t, ParseCriteria(`{"field":"name"}`))
	assert.Nil(t, ParseCriteria(`not json`))
}

func TestParseCriteriaSkipsIncomplete(t *testing.T) {
	got := ParseCriteria(`[{"field":"name","value":""},{"field":"","value":"x"},{"field":"city","value":"Pune"}]`)
	assert.Equal(t, []Criterion{{Field: "city", Value: "Pune"}}, got)
}

func TestCustomLabelName(t *testing.T) {
	name, ok := CustomLabelName("custom_Department")
	assert.True(t, ok)
	assert.Equal(t, "Department", name)

	_, ok = CustomLabelName("department")
	assert.False(t, ok)

	// A bare prefix names no label.
	_, ok = CustomLabelName("custom_")
	assert.False(t, ok)
}
