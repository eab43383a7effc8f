package utm

import (
	"strconv"
	"strings"
)

// Protocol constants sent with every hit.
const (
	ProtocolVersion = "4.3"
	Charset         = "UTF-8"
	DefaultLocale   = "en-us"
	DefaultTitle    = "-"
	HitTypeEvent    = "event"
)

// Collector endpoints.
const (
	HTTPHost   = "http://www.google-analytics.com"
	SSLHost    = "https://ssl.google-analytics.com"
	BeaconPath = "/__utm.gif"
)

// Query parameter names. These are a wire contract with the collector.
const (
	KeyVersion  = "utmwv"
	KeyRandom   = "utmn"
	KeyHost     = "utmhn"
	KeyCharset  = "utmcs"
	KeyLocale   = "utmul"
	KeyTitle    = "utmdt"
	KeyHitID    = "utmhid"
	KeyPath     = "utmp"
	KeyAccount  = "utmac"
	KeyCookies  = "utmcc"
	KeyHitType  = "utmt"
	KeyEventExt = "utme"
)

// Hit holds the values shared by page view and event beacons.
type Hit struct {
	Version string
	Random  int64
	Host    string
	Charset string
	Locale  string
	Title   string
	HitID   int64
	Path    string
	Account string
	Cookies string
}

// Endpoint returns the collector image URL.
func Endpoint(useSSL bool) string {
	if useSSL {
		return SSLHost + BeaconPath
	}
	return HTTPHost + BeaconPath
}

// BeaconURL joins the endpoint with the encoded parameters.
func BeaconURL(useSSL bool, params *Params) string {
	return Endpoint(useSSL) + params.Encode()
}

// PageviewParams builds the page view parameter set in legacy order.
func PageviewParams(h Hit) *Params {
	p := NewParams(10)
	p.Set(KeyVersion, h.Version).
		Set(KeyRandom, strconv.FormatInt(h.Random, 10)).
		Set(KeyHost, h.Host).
		Set(KeyCharset, h.Charset).
		Set(KeyLocale, h.Locale).
		Set(KeyTitle, h.Title).
		Set(KeyHitID, strconv.FormatInt(h.HitID, 10)).
		Set(KeyPath, h.Path).
		Set(KeyAccount, h.Account).
		Set(KeyCookies, h.Cookies)
	return p
}

// EventParams builds the event parameter set in legacy order. Title and Path
// are expected to be those of the last tracked page view.
func EventParams(h Hit, event string) *Params {
	p := NewParams(12)
	p.Set(KeyVersion, h.Version).
		Set(KeyRandom, strconv.FormatInt(h.Random, 10)).
		Set(KeyHost, h.Host).
		Set(KeyCharset, h.Charset).
		Set(KeyLocale, h.Locale).
		Set(KeyHitType, HitTypeEvent).
		Set(KeyEventExt, event).
		Set(KeyHitID, strconv.FormatInt(h.HitID, 10)).
		Set(KeyTitle, h.Title).
		Set(KeyPath, h.Path).
		Set(KeyAccount, h.Account).
		Set(KeyCookies, h.Cookies)
	return p
}

// EncodeEvent renders the utme extensible-data value:
//
//	5(category*action[*label])[(value)]
//
// label is appended only when non-empty and value only when non-zero.
func EncodeEvent(category, action, label string, value int64) string {
	var b strings.Builder
	b.WriteString("5(")
	b.WriteString(category)
	b.WriteByte('*')
	b.WriteString(action)
	if label != "" {
		b.WriteByte('*')
		b.WriteString(label)
	}
	b.WriteByte(')')
	if value != 0 {
		b.WriteByte('(')
		b.WriteString(strconv.FormatInt(value, 10))
		b.WriteByte(')')
	}
	return b.String()
}
