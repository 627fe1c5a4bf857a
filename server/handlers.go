package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/yusufcetin82/tcmb-xml-rates/calendar"
	"github.com/yusufcetin82/tcmb-xml-rates/document"
	"github.com/yusufcetin82/tcmb-xml-rates/query"
	"github.com/yusufcetin82/tcmb-xml-rates/resolve"
)

var (
	errInvalidType   = errors.New("invalid type (must be all, forex or banknote)")
	errInvalidQuote  = errors.New("invalid quote field")
	errInvalidAmount = errors.New("invalid amount")
	errMissingCode   = errors.New("missing currency code")
	errRateNotListed = errors.New("rate not listed in the resolved bulletin")
)

func (s *Server) Rates(w http.ResponseWriter, r *http.Request) {
	s.metrics.RateRequestsTotal.Inc()

	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	rates, err := s.client.Rates(r.Context(), opts)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, &RatesResponse{Results: rates})
}

func (s *Server) RateForCode(w http.ResponseWriter, r *http.Request) {
	s.metrics.RateRequestsTotal.Inc()

	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	rate, err := s.client.Rate(r.Context(), chi.URLParam(r, "code"), opts)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	if rate == nil {
		s.writeQueryError(w, errRateNotListed)

		return
	}

	writeJSON(w, http.StatusOK, rate)
}

func (s *Server) Codes(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	codes, err := s.client.Codes(r.Context(), opts)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, &CodesResponse{Results: codes})
}

func (s *Server) Convert(w http.ResponseWriter, r *http.Request) {
	s.metrics.ConversionRequestsTotal.Inc()

	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	var (
		amountParam = strings.TrimSpace(r.URL.Query().Get("amount"))
		fromParam   = r.URL.Query().Get("from")
		toParam     = r.URL.Query().Get("to")
	)

	amount, err := decimal.NewFromString(amountParam)
	if err != nil {
		s.writeQueryError(w, errInvalidAmount)

		return
	}

	if strings.TrimSpace(fromParam) == "" || strings.TrimSpace(toParam) == "" {
		s.writeQueryError(w, errMissingCode)

		return
	}

	result, err := s.client.Convert(r.Context(), amount, fromParam, toParam, opts)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, &ConvertResponse{
		From:   strings.ToUpper(strings.TrimSpace(fromParam)),
		To:     strings.ToUpper(strings.TrimSpace(toParam)),
		Amount: amount,
		Result: result,
	})
}

func (s *Server) HourlyRates(w http.ResponseWriter, r *http.Request) {
	s.metrics.HourlyRequestsTotal.Inc()

	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	rates, err := s.client.HourlyRates(r.Context(), opts)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, &HourlyRatesResponse{Results: rates})
}

func (s *Server) HourlyRateForCode(w http.ResponseWriter, r *http.Request) {
	s.metrics.HourlyRequestsTotal.Inc()

	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	rate, err := s.client.HourlyRate(r.Context(), chi.URLParam(r, "code"), opts)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	if rate == nil {
		s.writeQueryError(w, errRateNotListed)

		return
	}

	writeJSON(w, http.StatusOK, rate)
}

func (s *Server) PreciousMetals(w http.ResponseWriter, r *http.Request) {
	s.metrics.HourlyRequestsTotal.Inc()

	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	rates, err := s.client.PreciousMetals(r.Context(), opts)
	if err != nil {
		s.writeQueryError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, &HourlyRatesResponse{Results: rates})
}

// optionsFromQuery parses the query parameters shared by all endpoints
func optionsFromQuery(r *http.Request) (query.Options, error) {
	q := r.URL.Query()

	opts := query.Options{
		Date: strings.TrimSpace(q.Get("date")),
		Hour: strings.TrimSpace(q.Get("hour")),
	}

	switch strings.ToLower(strings.TrimSpace(q.Get("type"))) {
	case "", "all":
		opts.Filter = query.FilterAll
	case "forex":
		opts.Filter = query.FilterForex
	case "banknote":
		opts.Filter = query.FilterBanknote
	default:
		return query.Options{}, errInvalidType
	}

	switch strings.ToLower(strings.TrimSpace(q.Get("quote"))) {
	case "":
		opts.Quote = query.QuoteDefault
	case "forex_buying":
		opts.Quote = query.QuoteForexBuying
	case "forex_selling":
		opts.Quote = query.QuoteForexSelling
	case "banknote_buying":
		opts.Quote = query.QuoteBanknoteBuying
	case "banknote_selling":
		opts.Quote = query.QuoteBanknoteSelling
	default:
		return query.Options{}, errInvalidQuote
	}

	opts.NoDayFallback = isDisabled(q.Get("fallback"))
	opts.NoHourFallback = isDisabled(q.Get("hour_fallback"))
	opts.NoCache = isDisabled(q.Get("cache"))

	return opts, nil
}

// isDisabled reports whether an opt-out query flag was set
func isDisabled(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "0", "off", "no":
		return true
	default:
		return false
	}
}

// writeQueryError maps a query failure onto the HTTP surface and records it
func (s *Server) writeQueryError(w http.ResponseWriter, err error) {
	status, kind := classifyError(err)

	s.metrics.RequestErrorsTotal.WithLabelValues(kind).Inc()

	s.logger.Debug(
		"unable to serve request",
		"kind", kind,
		"err", err,
	)

	writeError(w, status, err)
}

// classifyError buckets a failure into an HTTP status and a metric kind
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, calendar.ErrInvalidSlot),
		errors.Is(err, query.ErrInvalidCurrencyCode),
		errors.Is(err, errInvalidType),
		errors.Is(err, errInvalidQuote),
		errors.Is(err, errInvalidAmount),
		errors.Is(err, errMissingCode):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, resolve.ErrNoData):
		return http.StatusNotFound, "no_data"
	case errors.Is(err, query.ErrRateNotFound), errors.Is(err, errRateNotListed):
		return http.StatusNotFound, "rate_not_found"
	case errors.Is(err, document.ErrMalformed):
		return http.StatusBadGateway, "malformed_feed"
	default:
		return http.StatusBadGateway, "transport"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // Fine to ignore
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := &ErrorResponse{
		Error: err.Error(),
	}

	writeJSON(w, status, resp)
}
