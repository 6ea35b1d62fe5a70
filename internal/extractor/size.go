package extractor

import "fmt"

const invalidSizePlaceholder = "<invalid size>"

var sizeUnits = []string{"B", "K", "M", "G", "T"}

// FormatSize renders a byte count with 1024-based units. Exact multiples of a
// unit print as integers ("1K"), anything else with two decimals ("1.50K").
func FormatSize(size int64) string {
	if size < 0 {
		return invalidSizePlaceholder
	}

	unitValue := int64(1)
	unitName := sizeUnits[0]
	for i, name := range sizeUnits {
		unitName = name
		if size < 1024*unitValue || i == len(sizeUnits)-1 {
			break
		}
		unitValue *= 1024
	}

	if size%unitValue == 0 {
		return fmt.Sprintf("%d%s", size/unitValue, unitName)
	}
	return fmt.Sprintf("%.2f%s", float64(size)/float64(unitValue), unitName)
}
