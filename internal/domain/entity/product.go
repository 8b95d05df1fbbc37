package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Score nutri-score o eco-score.
type Score string

const (
	ScoreA             Score = "A"
	ScoreB             Score = "B"
	ScoreC             Score = "C"
	ScoreD             Score = "D"
	ScoreE             Score = "E"
	ScoreNotApplicable Score = "NOT-APPLICABLE"
)

// ParseScore normaliza una letra de score; desconocido -> NOT-APPLICABLE.
func ParseScore(s string) Score {
	switch sc := Score(strings.ToUpper(strings.TrimSpace(s))); sc {
	case ScoreA, ScoreB, ScoreC, ScoreD, ScoreE:
		return sc
	}
	return ScoreNotApplicable
}

// Product producto de una tienda. InStock se deriva sumando los asientos de Stock.
// IsActive=false es borrado lógico.
type Product struct {
	ID            int64
	Name          string
	Code          string // EAN, único por tienda
	Price         decimal.Decimal
	NutriScore    Score
	EcoScore      Score
	UnitPackaging string
	Threshold     int64
	Ingredients   string
	IsActive      bool
	StoreID       int64
	BrandID       int64
	CategoryIDs   []int64
	InStock       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BelowThreshold informa si el stock está por debajo del umbral de reposición.
func (p *Product) BelowThreshold() bool {
	return p.InStock < p.Threshold
}
