package document

import (
	"encoding/xml"
	"strings"

	"github.com/yusufcetin82/tcmb-xml-rates/calendar"
)

// DefaultBase is the quote currency the hourly feed assumes when an entry
// does not carry one
const DefaultBase = "TRY"

// Known precious metal codes of the hourly feed
const (
	GoldCode   = "ALTIN"
	SilverCode = "GUMUS"
)

// displayName is the fixed bilingual name pair for an hourly feed code
type displayName struct {
	tr string
	en string
}

// hourlyNames maps hourly feed codes to their display names. Codes missing
// from the table fall back to the raw code.
var hourlyNames = map[string]displayName{
	"USD":      {tr: "ABD DOLARI", en: "US DOLLAR"},
	"AUD":      {tr: "AVUSTRALYA DOLARI", en: "AUSTRALIAN DOLLAR"},
	"DKK":      {tr: "DANİMARKA KRONU", en: "DANISH KRONE"},
	"EUR":      {tr: "EURO", en: "EURO"},
	"GBP":      {tr: "İNGİLİZ STERLİNİ", en: "POUND STERLING"},
	"CHF":      {tr: "İSVİÇRE FRANGI", en: "SWISS FRANC"},
	"SEK":      {tr: "İSVEÇ KRONU", en: "SWEDISH KRONA"},
	"CAD":      {tr: "KANADA DOLARI", en: "CANADIAN DOLLAR"},
	"KWD":      {tr: "KUVEYT DİNARI", en: "KUWAITI DINAR"},
	"NOK":      {tr: "NORVEÇ KRONU", en: "NORWEGIAN KRONE"},
	"SAR":      {tr: "SUUDİ ARABİSTAN RİYALİ", en: "SAUDI RIYAL"},
	"JPY":      {tr: "JAPON YENİ", en: "JAPANESE YEN"},
	"BGN":      {tr: "BULGAR LEVASI", en: "BULGARIAN LEV"},
	"RON":      {tr: "RUMEN LEYİ", en: "ROMANIAN LEU"},
	"RUB":      {tr: "RUS RUBLESİ", en: "RUSSIAN ROUBLE"},
	"CNY":      {tr: "ÇİN YUANI", en: "CHINESE YUAN"},
	"PKR":      {tr: "PAKİSTAN RUPİSİ", en: "PAKISTANI RUPEE"},
	"QAR":      {tr: "KATAR RİYALİ", en: "QATARI RIYAL"},
	"KRW":      {tr: "GÜNEY KORE WONU", en: "SOUTH KOREAN WON"},
	"AZN":      {tr: "AZERBAYCAN MANATI", en: "AZERBAIJANI MANAT"},
	"AED":      {tr: "BİRLEŞİK ARAP EMİRLİKLERİ DİRHEMİ", en: "UAE DIRHAM"},
	GoldCode:   {tr: "ALTIN", en: "GOLD"},
	SilverCode: {tr: "GÜMÜŞ", en: "SILVER"},
}

// hourlyDocument mirrors the wire shape of the hourly snapshot
type hourlyDocument struct {
	XMLName xml.Name      `xml:"tcmb_saatlik"`
	Header  *hourlyHeader `xml:"baslik"`
	List    *hourlyList   `xml:"kur_listesi"`
}

type hourlyHeader struct {
	CreatedAt string `xml:"olusturma_zamani"`
}

type hourlyList struct {
	Date    string        `xml:"tarih,attr"` // loosely padded "YYYY-M-D"
	Slot    string        `xml:"saat,attr"`  // "HH:MM"
	Entries []hourlyEntry `xml:"kur"`
}

type hourlyEntry struct {
	Base     string `xml:"baz"`
	Code     string `xml:"kod"`
	Unit     string `xml:"birim"`
	Buying   string `xml:"alis"` // comma-decimal
	Sequence string `xml:"sira"`
}

// DecodeHourly decodes an hourly snapshot into its normalized record set.
// An empty rate list is valid and yields zero records; a document missing
// the header or list containers is malformed.
func DecodeHourly(raw []byte) (*HourlySnapshot, error) {
	var doc hourlyDocument

	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, malformed("unable to decode hourly document: "+err.Error(), "")
	}

	if doc.Header == nil {
		return nil, malformed("hourly document is missing its header block", "")
	}

	if doc.List == nil {
		return nil, malformed("hourly document is missing its rate list block", "")
	}

	iso, err := calendar.NormalizeLooseISO(doc.List.Date)
	if err != nil {
		return nil, malformed("unable to parse the validity date", doc.List.Date)
	}

	slot, err := calendar.ParseSlot(doc.List.Slot)
	if err != nil {
		return nil, malformed("unable to parse the publication slot", doc.List.Slot)
	}

	timestamp := strings.TrimSpace(doc.Header.CreatedAt)

	rates := make([]HourlyRate, 0, len(doc.List.Entries))

	for _, entry := range doc.List.Entries {
		code := strings.TrimSpace(entry.Code)
		if code == "" {
			return nil, malformed("rate entry is missing its code", entry.Base)
		}

		base := strings.TrimSpace(entry.Base)
		if base == "" {
			base = DefaultBase
		}

		name, englishName := code, code
		if dn, ok := hourlyNames[code]; ok {
			name, englishName = dn.tr, dn.en
		}

		rates = append(rates, HourlyRate{
			Code:        code,
			Name:        name,
			EnglishName: englishName,
			Unit:        parseUnit(entry.Unit),
			Buying:      parseDecimal(entry.Buying),
			Base:        base,
			Date:        iso,
			Slot:        slot,
			Timestamp:   timestamp,
			Sequence:    parseSequence(entry.Sequence),
		})
	}

	return &HourlySnapshot{
		Date:      iso,
		Slot:      slot,
		Timestamp: timestamp,
		Rates:     rates,
		Raw:       raw,
	}, nil
}
