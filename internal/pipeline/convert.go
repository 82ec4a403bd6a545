package pipeline

// Unit conversion constants (회사 표준 단위)
const (
	// TroyOzToGram is grams per troy ounce
	TroyOzToGram = 31.1035
	// DonToGram is grams per 1 don (돈)
	DonToGram = 3.75
)

// DonPriceKRW converts a commodity price in USD per troy ounce into KRW per
// 1 don:
//
//	KRW/don = (USD/oz / 31.1035) * 3.75 * USD/KRW
//
// ok is false when either input is missing or non-positive; such rows are
// "not computable", never a zero result.
func DonPriceKRW(usdPerOz, usdkrw float64) (float64, bool) {
	if usdPerOz <= 0 || usdkrw <= 0 {
		return 0, false
	}

	gramPriceUSD := usdPerOz / TroyOzToGram
	donPriceUSD := gramPriceUSD * DonToGram
	return donPriceUSD * usdkrw, true
}
