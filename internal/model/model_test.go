package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBMI(t *testing.T) {
	bmi := ComputeBMI(65.5, 1.65)
	require.NotNil(t, bmi)
	assert.Equal(t, 24.06, *bmi)

	assert.Nil(t, ComputeBMI(0, 1.65))
	assert.Nil(t, ComputeBMI(65.5, -1))
}

func TestOptionalDistinguishesAbsentFromNull(t *testing.T) {
	var req UpdatePatientRequest
	require.NoError(t, json.Unmarshal([]byte(`{"email": null, "phone": "555-0100"}`), &req))

	assert.False(t, req.FullName.Present())
	assert.True(t, req.Email.Present())
	assert.True(t, req.Email.Null)
	assert.Nil(t, req.Email.ColumnValue())

	phone, ok := req.Phone.Get()
	assert.True(t, ok)
	assert.Equal(t, "555-0100", phone)
}

func TestOptionalMarshal(t *testing.T) {
	b, err := json.Marshal(struct {
		A Optional[int] `json:"a"`
		B Optional[int] `json:"b"`
	}{A: Some(3), B: Null[int]()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":null}`, string(b))
}

func TestMealsRoundTripThroughColumn(t *testing.T) {
	calories := 120.0
	meals := Meals{{
		MealType: MealBreakfast,
		Foods:    []FoodItem{{Name: "Oats", Quantity: 40, Unit: "g", Calories: &calories}},
	}}

	v, err := meals.Value()
	require.NoError(t, err)

	var scanned Meals
	require.NoError(t, scanned.Scan([]byte(v.(string))))
	assert.Equal(t, meals, scanned)

	var empty Meals
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)
	assert.Error(t, empty.Scan(42))
}

func TestNormalizeBlankPatientText(t *testing.T) {
	var create CreatePatientRequest
	require.NoError(t, json.Unmarshal([]byte(`{"full_name":" ","email":"","gender":"","phone":" 555 "}`), &create))
	create.Normalize()
	assert.Equal(t, " ", create.FullName)
	assert.Nil(t, create.Email)
	assert.Nil(t, create.Gender)
	require.NotNil(t, create.Phone)
	assert.Equal(t, "555", *create.Phone)

	var update UpdatePatientRequest
	require.NoError(t, json.Unmarshal([]byte(`{"full_name":"","email":"","career":" dev "}`), &update))
	update.Normalize()
	assert.True(t, update.Email.Present())
	assert.True(t, update.Email.Null)
	assert.False(t, update.Phone.Present())
	career, _ := update.Career.Get()
	assert.Equal(t, "dev", career)
	name, ok := update.FullName.Get()
	assert.True(t, ok)
	assert.Empty(t, name)
}
