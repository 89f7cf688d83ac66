// Package extraction turns raw OCR text into a structured invoice candidate.
//
// OCR output is highly variable in header wording, so each field is resolved
// by an ordered cascade of patterns: patterns are tried in priority order and
// the first match wins. A field whose cascade finds nothing is nil; a miss on
// one field never blocks extraction of the others and never raises an error.
package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"invoice-reconciler/internal/core/domain"
)

// The "#" is required in the first and last forms; without it the first
// pattern would swallow the word "Number" out of "Invoice Number: …".
var invoiceNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Invoice\s*#\s*([A-Z0-9-]+)`),
	regexp.MustCompile(`(?i)Invoice\s*Number\s*:\s*([A-Z0-9-]+)`),
	regexp.MustCompile(`(?i)INV\s*#\s*([A-Z0-9-]+)`),
}

// Amounts show up as "£1,234.56", "1,234.56" or "£1234.56"; the thousands
// separators are stripped before parsing.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Total\s*:?\s*[£$€]?\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)Amount\s*:?\s*[£$€]?\s*([\d,]+\.?\d*)`),
	regexp.MustCompile(`(?i)Sum\s*:?\s*[£$€]?\s*([\d,]+\.?\d*)`),
}

// The date is returned as the raw matched substring; interpreting the
// day/month ordering is left to the caller.
var datePattern = regexp.MustCompile(`(\d{1,2}[-/.]\d{1,2}[-/.]\d{2,4})`)

var vendorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)From:\s*([^\n]+)`),
	regexp.MustCompile(`(?i)Vendor:\s*([^\n]+)`),
	regexp.MustCompile(`(?i)Supplier:\s*([^\n]+)`),
}

// Extract runs every field cascade over the OCR text and returns the
// candidate. Pure and deterministic given its input.
func Extract(text string) domain.ExtractionCandidate {
	return domain.ExtractionCandidate{
		InvoiceNumber: firstMatch(text, invoiceNumberPatterns),
		Vendor:        firstMatch(text, vendorPatterns),
		Amount:        extractAmount(text),
		Date:          firstMatch(text, []*regexp.Regexp{datePattern}),
	}
}

// firstMatch returns the trimmed first capture group of the first pattern
// that matches, or nil when none do.
func firstMatch(text string, patterns []*regexp.Regexp) *string {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if len(m) > 1 && m[1] != "" {
			v := strings.TrimSpace(m[1])
			if v != "" {
				return &v
			}
		}
	}
	return nil
}

func extractAmount(text string) *float64 {
	raw := firstMatch(text, amountPatterns)
	if raw == nil {
		return nil
	}
	cleaned := strings.ReplaceAll(*raw, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}
