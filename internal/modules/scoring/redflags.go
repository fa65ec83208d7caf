package scoring

import "github.com/aristath/quantfolio/internal/domain"

// Sector exemptions: sectors where an otherwise alarming raw value is
// structurally normal and should not be flagged.
var (
	negativePESectors = map[string]bool{
		"Technology":             true,
		"Healthcare":             true,
		"Communication Services": true,
	}
	highLeverageSectors = map[string]bool{
		"Financial Services": true,
		"Real Estate":        true,
	}
	highPBSectors = map[string]bool{
		"Technology":             true,
		"Communication Services": true,
	}
	negativeMarginSectors = map[string]bool{
		"Technology":             true,
		"Healthcare":             true,
		"Communication Services": true,
	}
)

// RedFlags screens fundamentals for disqualifying patterns. Flags
// annotate the scored record; exclusion is the caller's choice.
// Missing metrics never flag.
func RedFlags(f domain.Fundamentals, sector string) []string {
	var flags []string

	if f.PE != nil && *f.PE < 0 && !negativePESectors[sector] {
		flags = append(flags, "negative earnings outside growth sectors")
	}
	if f.DebtEquity != nil && *f.DebtEquity > 1000 && !highLeverageSectors[sector] {
		flags = append(flags, "debt/equity above 10x outside financials")
	}
	if f.ROE != nil && *f.ROE < -0.5 {
		flags = append(flags, "return on equity below -50%")
	}
	if f.PB != nil && *f.PB > 100 && !highPBSectors[sector] {
		flags = append(flags, "price/book above 100")
	}
	if f.ProfitMargin != nil && *f.ProfitMargin < -0.5 && !negativeMarginSectors[sector] {
		flags = append(flags, "profit margin below -50%")
	}

	return flags
}
