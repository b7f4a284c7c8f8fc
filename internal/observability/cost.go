package observability

import (
	"strconv"
)

// Pricing constants
const (
	tokensPerKilo       = 1000.0
	costFormatPrecision = 6

	// Gemini 2.0 Flash pricing
	gemini20FlashInputPrice  = 0.0001
	gemini20FlashOutputPrice = 0.0004

	// Gemini 2.5 Flash pricing
	gemini25FlashInputPrice  = 0.0003
	gemini25FlashOutputPrice = 0.0025

	// GPT-4.1-mini pricing
	gpt41MiniInputPrice  = 0.0004
	gpt41MiniOutputPrice = 0.0016

	// GPT-4o-mini pricing
	gpt4oMiniInputPrice  = 0.00015
	gpt4oMiniOutputPrice = 0.0006

	defaultPricingModel = "gemini-2.0-flash"
)

// ModelPricing contains pricing information per 1K tokens
type ModelPricing struct {
	InputPricePer1K  float64 // Price per 1K input tokens in USD
	OutputPricePer1K float64 // Price per 1K output tokens in USD
}

// PricingTable contains pricing for all models
var PricingTable = map[string]ModelPricing{
	"gemini-2.0-flash": {
		InputPricePer1K:  gemini20FlashInputPrice,
		OutputPricePer1K: gemini20FlashOutputPrice,
	},
	"gemini-2.5-flash": {
		InputPricePer1K:  gemini25FlashInputPrice,
		OutputPricePer1K: gemini25FlashOutputPrice,
	},
	"gpt-4.1-mini": {
		InputPricePer1K:  gpt41MiniInputPrice,
		OutputPricePer1K: gpt41MiniOutputPrice,
	},
	"gpt-4o-mini": {
		InputPricePer1K:  gpt4oMiniInputPrice,
		OutputPricePer1K: gpt4oMiniOutputPrice,
	},
}

// CalculateCost calculates the cost in USD for one chat call
func CalculateCost(model string, inputTokens, outputTokens int) float64 {
	pricing, exists := PricingTable[model]
	if !exists {
		pricing = PricingTable[defaultPricingModel]
	}

	inputCost := (float64(inputTokens) / tokensPerKilo) * pricing.InputPricePer1K
	outputCost := (float64(outputTokens) / tokensPerKilo) * pricing.OutputPricePer1K
	return inputCost + outputCost
}

// FormatCost formats a cost value as a USD string
func FormatCost(cost float64) string {
	return "$" + formatFloat(cost, costFormatPrecision)
}

// formatFloat formats a float with specified precision using strconv
func formatFloat(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}
