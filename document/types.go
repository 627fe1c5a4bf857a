package document

import (
	"github.com/shopspring/decimal"

	"github.com/yusufcetin82/tcmb-xml-rates/calendar"
)

// Rate is a single currency entry of a daily bulletin. Instances are
// constructed by the decoder and never mutated afterwards.
//
// The four quote fields and the two cross-rate fields are optional on the
// wire; a blank field decodes as absent, never as zero.
type Rate struct {
	Code            string              `json:"code"`
	Name            string              `json:"name"`
	EnglishName     string              `json:"english_name,omitempty"`
	Unit            int                 `json:"unit"`
	ForexBuying     decimal.NullDecimal `json:"forex_buying"`
	ForexSelling    decimal.NullDecimal `json:"forex_selling"`
	BanknoteBuying  decimal.NullDecimal `json:"banknote_buying"`
	BanknoteSelling decimal.NullDecimal `json:"banknote_selling"`
	CrossRateUSD    decimal.NullDecimal `json:"cross_rate_usd"`
	CrossRateOther  decimal.NullDecimal `json:"cross_rate_other"`
	Date            string              `json:"date"`        // resolved ISO date of the source document
	SourceDate      string              `json:"source_date"` // raw date string as published
}

// HourlyRate is a single currency or precious metal entry of an hourly
// snapshot. Instances are constructed by the decoder and never mutated
// afterwards.
type HourlyRate struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	EnglishName string          `json:"english_name"`
	Unit        int             `json:"unit"`
	Buying      decimal.Decimal `json:"buying"`
	Base        string          `json:"base"`
	Date        string          `json:"date"` // resolved ISO date of the source document
	Slot        calendar.Slot   `json:"slot"`
	Timestamp   string          `json:"timestamp"` // document-wide creation timestamp, as published
	Sequence    int             `json:"sequence"`
}

// DailySnapshot is the normalized record set of one daily bulletin
type DailySnapshot struct {
	Date       string `json:"date"` // ISO
	SourceDate string `json:"source_date"`
	BulletinNo string `json:"bulletin_no"`
	Rates      []Rate `json:"rates"`
	Raw        []byte `json:"-"` // document as published
}

// HourlySnapshot is the normalized record set of one hourly snapshot
type HourlySnapshot struct {
	Date      string        `json:"date"` // ISO
	Slot      calendar.Slot `json:"slot"`
	Timestamp string        `json:"timestamp"`
	Rates     []HourlyRate  `json:"rates"`
	Raw       []byte        `json:"-"` // document as published
}
