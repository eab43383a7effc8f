// Package utm implements the legacy urchin (__utm.gif) beacon wire format.
//
// It is a pure package: every function derives its output from its arguments
// only, so two calls with the same input produce byte-identical strings.
//
// The package covers three concerns:
//
//   - Cookie encoding. Cookie.Encode serializes visitor identity, session
//     counters and referrer attribution into the four-segment
//     __utma/__utmz/__utmc/__utmb string carried in the utmcc parameter.
//   - Query building. Params keeps parameters in insertion order and Encode
//     percent-encodes values with ECMAScript encodeURIComponent semantics,
//     which collectors of this protocol expect byte-for-byte.
//   - Hit assembly. PageviewParams and EventParams emit the fixed legacy
//     parameter names (utmwv, utmn, utmhn, ...) in the legacy order, and
//     BeaconURL joins them with the collector endpoint.
//
// # Usage
//
//	cookie := utm.Cookie{UserID: "12345678", Salt: "1234567890", ...}
//	params := utm.PageviewParams(utm.Hit{
//	    Version: utm.ProtocolVersion,
//	    Path:    "/home",
//	    Title:   "Home",
//	    Cookies: cookie.Encode(utm.Referrer{}),
//	    ...
//	})
//	url := utm.BeaconURL(true, params)
//
// Parameter names are a compatibility contract with the receiving collector
// and must never be renamed.
package utm
