package timezone

import (
	"strings"

	"golang.org/x/text/language"
)

// brazilCountryCode prefixes every Brazilian phone number.
const brazilCountryCode = "55"

// dddZones maps Brazilian area codes (DDD) outside Brasília time to their
// state's zone. Codes not listed use America/Sao_Paulo.
var dddZones = map[string]string{
	// Amazonas
	"92": "America/Manaus", "97": "America/Manaus",
	// Roraima
	"95": "America/Boa_Vista",
	// Rondônia
	"69": "America/Porto_Velho",
	// Acre
	"68": "America/Rio_Branco",
	// Mato Grosso
	"65": "America/Cuiaba", "66": "America/Cuiaba",
	// Mato Grosso do Sul
	"67": "America/Campo_Grande",
	// Pará and Amapá
	"91": "America/Belem", "93": "America/Santarem", "94": "America/Belem", "96": "America/Belem",
	// Tocantins
	"63": "America/Araguaina",
	// Bahia
	"71": "America/Bahia", "73": "America/Bahia", "74": "America/Bahia", "75": "America/Bahia", "77": "America/Bahia",
	// Alagoas and Sergipe
	"79": "America/Maceio", "82": "America/Maceio",
	// Pernambuco
	"81": "America/Recife", "87": "America/Recife",
	// Paraíba, Rio Grande do Norte, Ceará, Piauí, Maranhão
	"83": "America/Fortaleza", "84": "America/Fortaleza", "85": "America/Fortaleza",
	"86": "America/Fortaleza", "88": "America/Fortaleza", "89": "America/Fortaleza",
	"98": "America/Fortaleza", "99": "America/Fortaleza",
}

// regionZones maps a locale region to its most populous zone.
var regionZones = map[string]string{
	"BR": TimezoneSaoPaulo,
	"PT": TimezoneLisbon,
	"AO": "Africa/Luanda",
	"MZ": "Africa/Maputo",
	"CV": "Atlantic/Cape_Verde",
	"GW": "Africa/Bissau",
	"ST": "Africa/Sao_Tome",
	"TL": "Asia/Dili",
	"US": "America/New_York",
	"ES": "Europe/Madrid",
	"AR": "America/Argentina/Buenos_Aires",
	"UY": "America/Montevideo",
	"PY": "America/Asuncion",
}

// ZoneForPhone derives a zone from a Brazilian phone number or a WhatsApp
// identifier such as "5592991234567@s.whatsapp.net". ok is false for
// anything that is not a Brazilian mobile or landline number.
func ZoneForPhone(id string) (string, bool) {
	if at := strings.IndexByte(id, '@'); at >= 0 {
		id = id[:at]
	}
	digits := strings.Map(func(r rune) rune {
		switch r {
		case '+', ' ', '-', '(', ')':
			return -1
		}
		return r
	}, id)

	// 55 + DDD + 8 or 9 digit subscriber number.
	if len(digits) != 12 && len(digits) != 13 {
		return "", false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	if !strings.HasPrefix(digits, brazilCountryCode) {
		return "", false
	}

	ddd := digits[2:4]
	if ddd[0] == '0' || ddd[1] == '0' {
		return "", false
	}
	if zone, ok := dddZones[ddd]; ok {
		return zone, true
	}
	return TimezoneSaoPaulo, true
}

// ZoneForLocale maps a locale tag such as "pt-BR", "pt_PT" or "pt-AO" to the
// zone of its region. A bare language ("pt") uses its most likely region.
func ZoneForLocale(hint string) (string, bool) {
	hint = strings.TrimSpace(strings.ReplaceAll(hint, "_", "-"))
	if hint == "" {
		return "", false
	}
	tag, err := language.Parse(hint)
	if err != nil {
		return "", false
	}
	region, conf := tag.Region()
	if conf == language.No {
		return "", false
	}
	zone, ok := regionZones[region.String()]
	return zone, ok
}
