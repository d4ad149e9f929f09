package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestConsolidateNoDuplicatesUnchanged(t *testing.T) {
	items := List{
		{Item: "Chicken Breast", Quantity: "2 lbs", Category: "Protein", Protein: "25g"},
		{Item: "Milk", Quantity: "1 gallon", Category: "Dairy"},
		{Item: "Apples", Quantity: "6", Category: "Produce"},
	}

	got := Consolidate(items)
	assert.Equal(t, items, got)
}

func TestConsolidateMergesCaseInsensitive(t *testing.T) {
	items := List{
		{Item: "Milk", Quantity: "1 gallon", Category: "Dairy"},
		{Item: "milk ", Quantity: "2 cups", Category: "Dairy", Cals: "103"},
	}

	got := Consolidate(items)
	require.Len(t, got, 1)
	assert.Equal(t, "Milk", got[0].Item, "first occurrence keeps its name")
	assert.Equal(t, "1 gallon + 2 cups", got[0].Quantity)
	assert.Equal(t, "103", got[0].Cals, "first non-empty nutrition value wins")
}

func TestConsolidateSameNameDifferentCategory(t *testing.T) {
	items := List{
		{Item: "Cream", Quantity: "1 pint", Category: "Dairy"},
		{Item: "Cream", Quantity: "1 tube", Category: "Pantry"},
	}

	got := Consolidate(items)
	assert.Len(t, got, 2, "entries in different categories are distinct")
}

func TestConsolidateFirstNonNullFieldWins(t *testing.T) {
	items := List{
		{Item: "Oats", Quantity: "1 lb", Category: "Pantry", Protein: "5g"},
		{Item: "oats", Quantity: "2 cups", Category: "Pantry", Protein: "6g", Carbs: "27g", Link: strPtr("https://example.com/oats")},
	}

	got := Consolidate(items)
	require.Len(t, got, 1)
	assert.Equal(t, "5g", got[0].Protein, "first value kept")
	assert.Equal(t, "27g", got[0].Carbs, "absent field filled from duplicate")
	require.NotNil(t, got[0].Link)
	assert.Equal(t, "https://example.com/oats", *got[0].Link)
}

func TestConsolidateIdempotent(t *testing.T) {
	items := List{
		{Item: "Milk", Quantity: "1 gallon", Category: "Dairy"},
		{Item: "MILK", Quantity: "2 cups", Category: "Dairy"},
		{Item: "Eggs", Quantity: "12", Category: "Dairy"},
	}

	once := Consolidate(items)
	twice := Consolidate(once)
	assert.Equal(t, once, twice)
}

func TestGroupByCategory(t *testing.T) {
	items := List{
		{Item: "Milk", Category: "Dairy"},
		{Item: "Apples", Category: "Produce"},
		{Item: "Eggs", Category: "Dairy"},
		{Item: "Mystery snack"},
	}

	grouped, order := GroupByCategory(items)
	assert.Equal(t, []string{"Dairy", "Produce", "Other"}, order)
	require.Len(t, grouped["Dairy"], 2)
	assert.Equal(t, "Milk", grouped["Dairy"][0].Item)
	assert.Equal(t, "Eggs", grouped["Dairy"][1].Item)
	assert.Equal(t, "Mystery snack", grouped["Other"][0].Item)
}
