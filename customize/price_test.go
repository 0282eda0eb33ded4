package customize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"estampa-studio/models"
)

func dimensionsWithDeltas(deltas ...int64) []models.OptionDimension {
	var dims []models.OptionDimension
	for i, d := range deltas {
		dims = append(dims, models.OptionDimension{
			ID:         string(rune('a' + i)),
			Label:      "Dim",
			Choices:    []models.OptionChoice{{ID: "x", Label: "X", PriceDelta: d}},
			SelectedID: "x",
		})
	}
	return dims
}

func TestComputeTotalAdditivity(t *testing.T) {
	// (1299 + 400 + 299 + 100) × 2 = 4196
	dims := dimensionsWithDeltas(400, 299, 100)
	assert.Equal(t, int64(4196), ComputeTotal(1299, dims, 2))
}

func TestComputeTotalQuantityOne(t *testing.T) {
	dims := dimensionsWithDeltas(40000, 29900)
	assert.Equal(t, int64(129900+40000+29900), ComputeTotal(129900, dims, 1))
}

func TestComputeTotalNegativeDeltasAddAlgebraically(t *testing.T) {
	dims := dimensionsWithDeltas(-500, 300)
	assert.Equal(t, int64((2000-500+300)*3), ComputeTotal(2000, dims, 3))
}

func TestComputeTotalNeverNegative(t *testing.T) {
	dims := dimensionsWithDeltas(-5000)
	assert.Equal(t, int64(0), ComputeTotal(1000, dims, 2))
}

func TestComputeTotalNormalizesQuantity(t *testing.T) {
	dims := dimensionsWithDeltas(100)
	assert.Equal(t, ComputeTotal(1000, dims, 1), ComputeTotal(1000, dims, 0))
}

func TestComputeTotalUnselectedDimensionContributesZero(t *testing.T) {
	dims := dimensionsWithDeltas(400)
	dims = append(dims, models.OptionDimension{
		ID:         "thickness",
		Label:      "Grosor",
		Choices:    []models.OptionChoice{{ID: "3mm", PriceDelta: 10000}},
		SelectedID: "missing", // no applicable selection
	})
	assert.Equal(t, int64(1299+400), ComputeTotal(1299, dims, 1))
}

func TestBuildBreakdownMatchesTotal(t *testing.T) {
	dims := dimensionsWithDeltas(400, 299)
	breakdown := BuildBreakdown(1299, dims, 2)

	assert.Equal(t, int64(1299), breakdown.BasePrice)
	assert.Len(t, breakdown.Lines, 2)
	assert.Equal(t, int64(1299+400+299), breakdown.UnitPrice)
	assert.Equal(t, ComputeTotal(1299, dims, 2), breakdown.Total)
	assert.Equal(t, 2, breakdown.Quantity)
	assert.NotEmpty(t, breakdown.TotalFormatted)
}
