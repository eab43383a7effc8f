// Package cookie writes HMAC-SHA256 signed cookies.
//
// The collection proxy keeps each browser's visitor id in a signed cookie
// so a client cannot claim another visitor's identity and session counters.
//
//	m, err := cookie.NewFromConfig(cfg)
//	if err != nil {
//		return err
//	}
//	m.SetSigned(w, "_gab_vid", visitorID)
//	id, err := m.GetSigned(r, "_gab_vid")
//
// Config.Secrets accepts several comma separated secrets. The first one
// signs; all of them verify, which allows rotation.
package cookie
