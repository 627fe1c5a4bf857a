package server

import (
	"github.com/shopspring/decimal"

	"github.com/yusufcetin82/tcmb-xml-rates/document"
)

type RatesResponse struct {
	Results []document.Rate `json:"results"`
}

type HourlyRatesResponse struct {
	Results []document.HourlyRate `json:"results"`
}

type CodesResponse struct {
	Results []string `json:"results"`
}

type ConvertResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Result decimal.Decimal `json:"result"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
