package pmf

import "time"

// seasonOrder is the display order of the seasonal aggregation.
var seasonOrder = []string{"Winter", "Spring", "Summer", "Fall"}

// seasonOf maps a month to its meteorological season (northern
// hemisphere: DJF winter, MAM spring, JJA summer, SON fall).
func seasonOf(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return "Winter"
	case time.March, time.April, time.May:
		return "Spring"
	case time.June, time.July, time.August:
		return "Summer"
	default:
		return "Fall"
	}
}
