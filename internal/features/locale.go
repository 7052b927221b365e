package features

import "strings"

var canadianProvinces = map[string]bool{
	"on": true, "qc": true, "bc": true, "ab": true, "mb": true, "sk": true,
	"ns": true, "nb": true, "nl": true, "pe": true, "nt": true, "nu": true, "yt": true,
}

var usStates = map[string]bool{
	"al": true, "ak": true, "az": true, "ar": true, "ca": true, "co": true,
	"ct": true, "de": true, "fl": true, "ga": true, "hi": true, "id": true,
	"il": true, "in": true, "ia": true, "ks": true, "ky": true, "la": true,
	"me": true, "md": true, "ma": true, "mi": true, "mn": true, "ms": true,
	"mo": true, "mt": true, "ne": true, "nv": true, "nh": true, "nj": true,
	"nm": true, "ny": true, "nc": true, "nd": true, "oh": true, "ok": true,
	"or": true, "pa": true, "ri": true, "sc": true, "sd": true, "tn": true,
	"tx": true, "ut": true, "vt": true, "va": true, "wa": true, "wv": true,
	"wi": true, "wy": true,
}

// CountryCode derives a two-letter country code from a free-form location
// string like "Austin, TX" or "Toronto, Canada". Ambiguous input defaults to
// the US.
func CountryCode(location string) string {
	if location == "" || strings.Contains(strings.ToLower(location), "a major city") {
		return "us"
	}
	parts := strings.Split(location, ",")
	last := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))

	if canadianProvinces[last] {
		return "ca"
	}
	if usStates[last] {
		return "us"
	}
	switch last {
	case "usa", "united states":
		return "us"
	case "canada":
		return "ca"
	case "india":
		return "in"
	case "united kingdom", "uk":
		return "gb"
	}
	if len(last) == 2 {
		return last
	}
	return "us"
}

// CurrencyInfo picks the currency and local salary term for a location.
func CurrencyInfo(location string) (currency, term string) {
	lower := strings.ToLower(location)
	switch {
	case strings.Contains(lower, "india") || strings.HasSuffix(lower, " in"):
		return "INR", "annual CTC"
	case strings.Contains(lower, "canada") || strings.HasSuffix(lower, " ca"):
		return "CAD", "annual salary"
	case strings.Contains(lower, "united kingdom") || strings.Contains(lower, " uk") || strings.HasSuffix(lower, " gb"):
		return "GBP", "annual salary"
	default:
		return "USD", "annual salary"
	}
}
