package customize

import (
	"estampa-studio/models"
	"estampa-studio/utils"
)

// ComputeTotal derives the order total from the base price, the selected
// deltas of every dimension, and the quantity:
//
//	total = (basePrice + Σ selected deltas) × quantity
//
// Deltas add algebraically; negative deltas are not special-cased. The total
// is clamped at zero so it can never go negative. Pure function, re-run on
// every selection change.
func ComputeTotal(basePrice int64, dimensions []models.OptionDimension, quantity int) int64 {
	if quantity < 1 {
		quantity = 1
	}

	unit := basePrice
	for i := range dimensions {
		if selected := dimensions[i].Selected(); selected != nil {
			unit += selected.PriceDelta
		}
	}

	total := unit * int64(quantity)
	if total < 0 {
		return 0
	}
	return total
}

// BuildBreakdown derives the full price breakdown for display. Never cached:
// it is recomputed from the current selections on every call.
func BuildBreakdown(basePrice int64, dimensions []models.OptionDimension, quantity int) models.PriceBreakdown {
	if quantity < 1 {
		quantity = 1
	}

	breakdown := models.PriceBreakdown{
		BasePrice: basePrice,
		Lines:     []models.PriceLine{},
		Quantity:  quantity,
	}

	unit := basePrice
	for i := range dimensions {
		selected := dimensions[i].Selected()
		if selected == nil {
			continue
		}
		unit += selected.PriceDelta
		breakdown.Lines = append(breakdown.Lines, models.PriceLine{
			Dimension: dimensions[i].Label,
			Choice:    selected.Label,
			Delta:     selected.PriceDelta,
		})
	}

	breakdown.UnitPrice = unit
	breakdown.Total = ComputeTotal(basePrice, dimensions, quantity)
	breakdown.TotalFormatted = utils.FormatCOP(breakdown.Total)
	return breakdown
}
