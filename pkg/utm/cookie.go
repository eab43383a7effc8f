package utm

import (
	"strconv"
	"strings"
)

// Default referrer attribution for direct traffic.
const (
	DefaultSource   = "(direct)"
	DefaultMedium   = "(none)"
	DefaultCampaign = "(direct)"
)

// Referrer carries campaign attribution encoded into the __utmz segment.
// Empty fields fall back to the direct-traffic defaults.
type Referrer struct {
	Source   string
	Medium   string
	Campaign string
}

// WithDefaults returns a copy with empty fields replaced by the defaults.
func (r Referrer) WithDefaults() Referrer {
	if r.Source == "" {
		r.Source = DefaultSource
	}
	if r.Medium == "" {
		r.Medium = DefaultMedium
	}
	if r.Campaign == "" {
		r.Campaign = DefaultCampaign
	}
	return r
}

// Cookie is the visitor and session state carried by every hit.
// Persisted fields are kept as the strings read from storage.
type Cookie struct {
	UserID         string
	Salt           string
	FirstSession   string
	LastSession    string
	SessionCount   string
	CurrentSession int64
	RequestCount   int
}

// Encode renders the four cookie segments:
//
//	__utma=<uid>.<salt>.<first>.<last>.<current>.<count>;
//	+__utmz=<uid>.<current>.1.1.utmcsr=<src>|utmccn=<campaign>|utmcmd=<medium>;
//	+__utmc=<uid>;
//	+__utmb=<uid>.<requests>.10.<current>;
func (c Cookie) Encode(ref Referrer) string {
	ref = ref.WithDefaults()
	current := strconv.FormatInt(c.CurrentSession, 10)

	var b strings.Builder
	b.Grow(256)

	b.WriteString("__utma=")
	b.WriteString(c.UserID)
	b.WriteByte('.')
	b.WriteString(c.Salt)
	b.WriteByte('.')
	b.WriteString(c.FirstSession)
	b.WriteByte('.')
	b.WriteString(c.LastSession)
	b.WriteByte('.')
	b.WriteString(current)
	b.WriteByte('.')
	b.WriteString(c.SessionCount)
	b.WriteByte(';')

	b.WriteString("+__utmz=")
	b.WriteString(c.UserID)
	b.WriteByte('.')
	b.WriteString(current)
	b.WriteString(".1.1.utmcsr=")
	b.WriteString(ref.Source)
	b.WriteString("|utmccn=")
	b.WriteString(ref.Campaign)
	b.WriteString("|utmcmd=")
	b.WriteString(ref.Medium)
	b.WriteByte(';')

	b.WriteString("+__utmc=")
	b.WriteString(c.UserID)
	b.WriteByte(';')

	b.WriteString("+__utmb=")
	b.WriteString(c.UserID)
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(c.RequestCount))
	b.WriteString(".10.")
	b.WriteString(current)
	b.WriteByte(';')

	return b.String()
}
