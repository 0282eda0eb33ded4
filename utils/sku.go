package utils

import (
	"fmt"
	"strings"
)

// Category codes used in composed SKUs
var categoryCodes = map[string]string{
	"canvas":    "CV",
	"acrylic":   "AC",
	"frame":     "MC",
	"lettering": "LT",
	"collage":   "CL",
}

// Template codes
var templateCodes = map[string]string{
	"portrait":    "VT",
	"landscape":   "HZ",
	"square":      "SQ",
	"dual-border": "DB",
	"collage":     "CL",
}

// Frame codes
var frameCodes = map[string]string{
	"none":  "SM",
	"black": "NG",
	"white": "BL",
	"oak":   "RB",
}

// MapCategoryToCode maps a product category to its SKU code. Unknown
// categories fall back to the first two letters uppercased.
func MapCategoryToCode(category string) string {
	normalized := strings.ToLower(strings.TrimSpace(category))
	if code, exists := categoryCodes[normalized]; exists {
		return code
	}
	if len(normalized) >= 2 {
		return strings.ToUpper(normalized[:2])
	}
	return "XX"
}

// MapFrameToCode maps a frame choice ID to its SKU code
func MapFrameToCode(frameID string) string {
	normalized := strings.ToLower(strings.TrimSpace(frameID))
	if code, exists := frameCodes[normalized]; exists {
		return code
	}
	return "SM"
}

// ComposeSKU builds a deterministic SKU from the customization selections.
// Pattern: CATEGORY-TEMPLATE-SIZE-FRAME, e.g. CV-VT-30X40-NG
func ComposeSKU(category, templateID, sizeID, frameID string) string {
	templateCode, exists := templateCodes[strings.ToLower(templateID)]
	if !exists {
		templateCode = "VT"
	}

	sizeCode := strings.ToUpper(strings.TrimSpace(sizeID))
	if sizeCode == "" {
		sizeCode = "STD"
	}

	return fmt.Sprintf("%s-%s-%s-%s",
		MapCategoryToCode(category),
		templateCode,
		sizeCode,
		MapFrameToCode(frameID),
	)
}
