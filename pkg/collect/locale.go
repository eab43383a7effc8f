package collect

import (
	"golang.org/x/text/language"
)

// localeFromHeader picks the language and region of the preferred
// Accept-Language entry. The region is only reported when the header names
// it explicitly.
func localeFromHeader(header string) (lang, country string, ok bool) {
	if header == "" {
		return "", "", false
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", "", false
	}

	base, conf := tags[0].Base()
	if conf == language.No {
		return "", "", false
	}
	lang = base.String()

	if region, conf := tags[0].Region(); conf == language.Exact {
		country = region.String()
	}
	return lang, country, true
}
