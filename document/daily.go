package document

import (
	"encoding/xml"
	"strings"
	"time"
)

// dailyDocument mirrors the wire shape of the daily bulletin
type dailyDocument struct {
	XMLName    xml.Name        `xml:"Tarih_Date"`
	Tarih      string          `xml:"Tarih,attr"` // Turkish "DD.MM.YYYY"
	Date       string          `xml:"Date,attr"`  // "MM/DD/YYYY"
	BulletinNo string          `xml:"Bulten_No,attr"`
	Currencies []dailyCurrency `xml:"Currency"`
}

type dailyCurrency struct {
	Code            string `xml:"Kod,attr"`
	CurrencyCode    string `xml:"CurrencyCode,attr"`
	Unit            string `xml:"Unit"`
	Name            string `xml:"Isim"`
	EnglishName     string `xml:"CurrencyName"`
	ForexBuying     string `xml:"ForexBuying"`
	ForexSelling    string `xml:"ForexSelling"`
	BanknoteBuying  string `xml:"BanknoteBuying"`
	BanknoteSelling string `xml:"BanknoteSelling"`
	CrossRateUSD    string `xml:"CrossRateUSD"`
	CrossRateOther  string `xml:"CrossRateOther"`
}

// DecodeDaily decodes a daily bulletin into its normalized snapshot
func DecodeDaily(raw []byte) (*DailySnapshot, error) {
	var doc dailyDocument

	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, malformed("unable to decode daily document: "+err.Error(), "")
	}

	if strings.TrimSpace(doc.Date) == "" {
		return nil, malformed("daily document is missing its date attribute", "")
	}

	if len(doc.Currencies) == 0 {
		return nil, malformed("daily document has no currency entries", "")
	}

	iso, err := usDateToISO(doc.Date)
	if err != nil {
		return nil, malformed("unable to parse the document date", doc.Date)
	}

	rates := make([]Rate, 0, len(doc.Currencies))

	for _, c := range doc.Currencies {
		code := strings.TrimSpace(c.CurrencyCode)
		if code == "" {
			code = strings.TrimSpace(c.Code)
		}

		if code == "" {
			return nil, malformed("currency entry is missing its code", c.Name)
		}

		rates = append(rates, Rate{
			Code:            code,
			Name:            strings.TrimSpace(c.Name),
			EnglishName:     strings.TrimSpace(c.EnglishName),
			Unit:            parseUnit(c.Unit),
			ForexBuying:     parseOptionalDecimal(c.ForexBuying),
			ForexSelling:    parseOptionalDecimal(c.ForexSelling),
			BanknoteBuying:  parseOptionalDecimal(c.BanknoteBuying),
			BanknoteSelling: parseOptionalDecimal(c.BanknoteSelling),
			CrossRateUSD:    parseOptionalDecimal(c.CrossRateUSD),
			CrossRateOther:  parseOptionalDecimal(c.CrossRateOther),
			Date:            iso,
			SourceDate:      doc.Date,
		})
	}

	return &DailySnapshot{
		Date:       iso,
		SourceDate: doc.Date,
		BulletinNo: doc.BulletinNo,
		Rates:      rates,
		Raw:        raw,
	}, nil
}

// usDateToISO converts the bulletin's slash-separated "MM/DD/YYYY" date
// attribute into ISO form
func usDateToISO(s string) (string, error) {
	t, err := time.Parse("01/02/2006", strings.TrimSpace(s))
	if err != nil {
		return "", err
	}

	return t.Format("2006-01-02"), nil
}
