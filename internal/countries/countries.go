package countries

// Country is one entry of the bundled reference data consumed by the
// phone picker and the dial-code resolver. The list is immutable for the
// process lifetime; Dial keeps its display "+" prefix.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Dial string `json:"dial"`
	Flag string `json:"flag"`
}

// All returns the full reference list in canonical order. Callers must
// not mutate the returned slice.
func All() []Country {
	return countryList
}

// countryList is ordered alphabetically by display name. Several
// territories share a calling code (e.g. +1); resolution is first match
// in this order.
var countryList = []Country{
	{Code: "AR", Name: "Argentina", Dial: "+54", Flag: "🇦🇷"},
	{Code: "AU", Name: "Australia", Dial: "+61", Flag: "🇦🇺"},
	{Code: "AT", Name: "Austria", Dial: "+43", Flag: "🇦🇹"},
	{Code: "BH", Name: "Bahrain", Dial: "+973", Flag: "🇧🇭"},
	{Code: "BD", Name: "Bangladesh", Dial: "+880", Flag: "🇧🇩"},
	{Code: "BE", Name: "Belgium", Dial: "+32", Flag: "🇧🇪"},
	{Code: "BR", Name: "Brazil", Dial: "+55", Flag: "🇧🇷"},
	{Code: "CA", Name: "Canada", Dial: "+1", Flag: "🇨🇦"},
	{Code: "CL", Name: "Chile", Dial: "+56", Flag: "🇨🇱"},
	{Code: "CN", Name: "China", Dial: "+86", Flag: "🇨🇳"},
	{Code: "CO", Name: "Colombia", Dial: "+57", Flag: "🇨🇴"},
	{Code: "CZ", Name: "Czech Republic", Dial: "+420", Flag: "🇨🇿"},
	{Code: "DK", Name: "Denmark", Dial: "+45", Flag: "🇩🇰"},
	{Code: "EG", Name: "Egypt", Dial: "+20", Flag: "🇪🇬"},
	{Code: "FJ", Name: "Fiji", Dial: "+679", Flag: "🇫🇯"},
	{Code: "FI", Name: "Finland", Dial: "+358", Flag: "🇫🇮"},
	{Code: "FR", Name: "France", Dial: "+33", Flag: "🇫🇷"},
	{Code: "DE", Name: "Germany", Dial: "+49", Flag: "🇩🇪"},
	{Code: "GR", Name: "Greece", Dial: "+30", Flag: "🇬🇷"},
	{Code: "HK", Name: "Hong Kong", Dial: "+852", Flag: "🇭🇰"},
	{Code: "HU", Name: "Hungary", Dial: "+36", Flag: "🇭🇺"},
	{Code: "IN", Name: "India", Dial: "+91", Flag: "🇮🇳"},
	{Code: "ID", Name: "Indonesia", Dial: "+62", Flag: "🇮🇩"},
	{Code: "IE", Name: "Ireland", Dial: "+353", Flag: "🇮🇪"},
	{Code: "IL", Name: "Israel", Dial: "+972", Flag: "🇮🇱"},
	{Code: "IT", Name: "Italy", Dial: "+39", Flag: "🇮🇹"},
	{Code: "JP", Name: "Japan", Dial: "+81", Flag: "🇯🇵"},
	{Code: "JO", Name: "Jordan", Dial: "+962", Flag: "🇯🇴"},
	{Code: "KE", Name: "Kenya", Dial: "+254", Flag: "🇰🇪"},
	{Code: "KW", Name: "Kuwait", Dial: "+965", Flag: "🇰🇼"},
	{Code: "LB", Name: "Lebanon", Dial: "+961", Flag: "🇱🇧"},
	{Code: "MY", Name: "Malaysia", Dial: "+60", Flag: "🇲🇾"},
	{Code: "MX", Name: "Mexico", Dial: "+52", Flag: "🇲🇽"},
	{Code: "NL", Name: "Netherlands", Dial: "+31", Flag: "🇳🇱"},
	{Code: "NZ", Name: "New Zealand", Dial: "+64", Flag: "🇳🇿"},
	{Code: "NG", Name: "Nigeria", Dial: "+234", Flag: "🇳🇬"},
	{Code: "NO", Name: "Norway", Dial: "+47", Flag: "🇳🇴"},
	{Code: "OM", Name: "Oman", Dial: "+968", Flag: "🇴🇲"},
	{Code: "PK", Name: "Pakistan", Dial: "+92", Flag: "🇵🇰"},
	{Code: "PG", Name: "Papua New Guinea", Dial: "+675", Flag: "🇵🇬"},
	{Code: "PE", Name: "Peru", Dial: "+51", Flag: "🇵🇪"},
	{Code: "PH", Name: "Philippines", Dial: "+63", Flag: "🇵🇭"},
	{Code: "PL", Name: "Poland", Dial: "+48", Flag: "🇵🇱"},
	{Code: "PT", Name: "Portugal", Dial: "+351", Flag: "🇵🇹"},
	{Code: "QA", Name: "Qatar", Dial: "+974", Flag: "🇶🇦"},
	{Code: "RO", Name: "Romania", Dial: "+40", Flag: "🇷🇴"},
	{Code: "RU", Name: "Russia", Dial: "+7", Flag: "🇷🇺"},
	{Code: "SA", Name: "Saudi Arabia", Dial: "+966", Flag: "🇸🇦"},
	{Code: "SG", Name: "Singapore", Dial: "+65", Flag: "🇸🇬"},
	{Code: "ZA", Name: "South Africa", Dial: "+27", Flag: "🇿🇦"},
	{Code: "KR", Name: "South Korea", Dial: "+82", Flag: "🇰🇷"},
	{Code: "ES", Name: "Spain", Dial: "+34", Flag: "🇪🇸"},
	{Code: "LK", Name: "Sri Lanka", Dial: "+94", Flag: "🇱🇰"},
	{Code: "SE", Name: "Sweden", Dial: "+46", Flag: "🇸🇪"},
	{Code: "CH", Name: "Switzerland", Dial: "+41", Flag: "🇨🇭"},
	{Code: "TW", Name: "Taiwan", Dial: "+886", Flag: "🇹🇼"},
	{Code: "TH", Name: "Thailand", Dial: "+66", Flag: "🇹🇭"},
	{Code: "TR", Name: "Turkey", Dial: "+90", Flag: "🇹🇷"},
	{Code: "AE", Name: "United Arab Emirates", Dial: "+971", Flag: "🇦🇪"},
	{Code: "GB", Name: "United Kingdom", Dial: "+44", Flag: "🇬🇧"},
	{Code: "US", Name: "United States", Dial: "+1", Flag: "🇺🇸"},
	{Code: "VN", Name: "Vietnam", Dial: "+84", Flag: "🇻🇳"},
}

// iso2ToIso3 maps alpha-2 codes to the alpha-3 labels the picker shows
// next to the dial code.
var iso2ToIso3 = map[string]string{
	"AR": "ARG", "AU": "AUS", "AT": "AUT", "BH": "BHR", "BD": "BGD",
	"BE": "BEL", "BR": "BRA", "CA": "CAN", "CL": "CHL", "CN": "CHN",
	"CO": "COL", "CZ": "CZE", "DK": "DNK", "EG": "EGY", "FJ": "FJI",
	"FI": "FIN", "FR": "FRA", "DE": "DEU", "GR": "GRC", "HK": "HKG",
	"HU": "HUN", "IN": "IND", "ID": "IDN", "IE": "IRL", "IL": "ISR",
	"IT": "ITA", "JP": "JPN", "JO": "JOR", "KE": "KEN", "KW": "KWT",
	"LB": "LBN", "MY": "MYS", "MX": "MEX", "NL": "NLD", "NZ": "NZL",
	"NG": "NGA", "NO": "NOR", "OM": "OMN", "PK": "PAK", "PG": "PNG",
	"PE": "PER", "PH": "PHL", "PL": "POL", "PT": "PRT", "QA": "QAT",
	"RO": "ROU", "RU": "RUS", "SA": "SAU", "SG": "SGP", "ZA": "ZAF",
	"KR": "KOR", "ES": "ESP", "LK": "LKA", "SE": "SWE", "CH": "CHE",
	"TW": "TWN", "TH": "THA", "TR": "TUR", "AE": "ARE", "GB": "GBR",
	"US": "USA", "VN": "VNM",
}

// Alpha3 returns the alpha-3 label for an alpha-2 code, falling back to
// the input when no mapping exists.
func Alpha3(code string) string {
	if a3, ok := iso2ToIso3[code]; ok {
		return a3
	}
	return code
}
