// Package ingest implements the offline batch jobs: bulk catalog load and
// embedding backfill.
package ingest

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/openmart/prodsearch/internal/domain"
)

// Source datasets carry currency symbols and thousands separators in their
// numeric columns. Ingestion is deliberately lenient: missing or unparsable
// values normalize to zero instead of failing the row.

// CleanPrice strips a leading currency symbol and thousands separators and
// parses the rest as a float. Missing, unparsable, or negative values
// normalize to 0.0.
func CleanPrice(v string) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0.0
	}
	return f
}

// CleanInt strips thousands separators and parses an integer. Missing,
// unparsable, or negative values normalize to 0.
func CleanInt(v string) int {
	s := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// CleanFloat parses a plain float. Missing, unparsable, or negative values
// normalize to 0.0.
func CleanFloat(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 {
		return 0.0
	}
	return f
}

// SourceRow is one raw record from the tabular dataset. Numeric columns
// stay strings until normalization.
type SourceRow struct {
	Name          string
	MainCategory  string
	SubCategory   string
	Image         string
	Link          string
	Ratings       string
	NoOfRatings   string
	DiscountPrice string
	ActualPrice   string
}

// Product normalizes the row into a catalog document with the zero-vector
// placeholder, pending backfill.
func (r *SourceRow) Product() domain.Product {
	return domain.Product{
		Name:          r.Name,
		MainCategory:  r.MainCategory,
		SubCategory:   r.SubCategory,
		Image:         r.Image,
		Link:          r.Link,
		Ratings:       CleanFloat(r.Ratings),
		NoOfRatings:   CleanInt(r.NoOfRatings),
		DiscountPrice: CleanPrice(r.DiscountPrice),
		ActualPrice:   CleanPrice(r.ActualPrice),
		Embedding:     domain.ZeroEmbedding(),
	}
}
