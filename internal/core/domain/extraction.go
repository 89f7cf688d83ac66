package domain

// ExtractionCandidate holds the raw per-field results of running the pattern
// cascades over OCR text. Each field is extracted independently; a nil field
// means no pattern matched, which is data, not an error. The date is the raw
// matched substring with no calendar normalization.
type ExtractionCandidate struct {
	InvoiceNumber *string  `json:"invoiceNumber"`
	Vendor        *string  `json:"vendor"`
	Amount        *float64 `json:"amount"`
	Date          *string  `json:"date"`
}

// MatchedFields counts how many cascades produced a value.
func (c ExtractionCandidate) MatchedFields() int {
	n := 0
	if c.InvoiceNumber != nil {
		n++
	}
	if c.Vendor != nil {
		n++
	}
	if c.Amount != nil {
		n++
	}
	if c.Date != nil {
		n++
	}
	return n
}
