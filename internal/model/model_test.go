package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayIDs(t *testing.T) {
	e := Employee{EmpID: 1000}
	assert.Equal(t, "USR1000", e.DisplayID())

	b := Business{BusinessID: 20000}
	assert.Equal(t, "BUS20000", b.DisplayID())

	s := Store{StoreSequence: 3}
	assert.Equal(t, "STR3", s.DisplayID())

	p := Product{ID: 42}
	assert.Equal(t, "PRD42", p.DisplayID())
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleOwner))
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleManager))
	assert.True(t, ValidRole(RoleEmployee))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
}

func TestCustomFieldListRoundTrip(t *testing.T) {
	in := CustomFieldList{
		{LabelName: "Origin", LabelValue: "Local"},
		{LabelName: "Shelf", LabelValue: "A3"},
	}
	v, err := in.Value()
	require.NoError(t, err)

	var out CustomFieldList
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}

func TestCustomFieldListScanNil(t *testing.T) {
	var l CustomFieldList
	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)
}

func TestCustomFieldListScanString(t *testing.T) {
	var l CustomFieldList
	require.NoError(t, l.Scan(`[{"label_name":"Origin","label_value":"Imported"}]`))
	require.Len(t, l, 1)
	assert.Equal(t, "Origin", l[0].LabelName)
}

func TestEmployeeJSONHidesPassword(t *testing.T) {
	e := Employee{EmpID: 1000, Name: "Asha", HashedPassword: "$argon2id$secret"}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "argon2id")
	assert.NotContains(t, string(data), "hashed_password")
}
