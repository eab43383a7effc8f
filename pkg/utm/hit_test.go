package utm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/gabeacon/pkg/utm"
)

func testHit() utm.Hit {
	return utm.Hit{
		Version: utm.ProtocolVersion,
		Random:  123456789,
		Host:    "example.com",
		Charset: utm.Charset,
		Locale:  utm.DefaultLocale,
		Title:   "Home",
		HitID:   987654321,
		Path:    "/home",
		Account: "UA-1-1",
		Cookies: "__utmc=1;",
	}
}

func keys(p *utm.Params) []string {
	out := make([]string, 0, p.Len())
	for _, kv := range p.List() {
		out = append(out, kv.Key)
	}
	return out
}

func TestEndpoint(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "https://ssl.google-analytics.com/__utm.gif", utm.Endpoint(true))
	assert.Equal(t, "http://www.google-analytics.com/__utm.gif", utm.Endpoint(false))
}

func TestPageviewParams(t *testing.T) {
	t.Parallel()
	p := utm.PageviewParams(testHit())

	assert.Equal(t, []string{
		"utmwv", "utmn", "utmhn", "utmcs", "utmul", "utmdt", "utmhid", "utmp", "utmac", "utmcc",
	}, keys(p))

	assert.Equal(t,
		"?utmwv=4.3&utmn=123456789&utmhn=example.com&utmcs=UTF-8&utmul=en-us&utmdt=Home"+
			"&utmhid=987654321&utmp=%2Fhome&utmac=UA-1-1&utmcc=__utmc%3D1%3B",
		p.Encode())
}

func TestEventParams(t *testing.T) {
	t.Parallel()
	p := utm.EventParams(testHit(), utm.EncodeEvent("ui", "click", "button", 0))

	assert.Equal(t, []string{
		"utmwv", "utmn", "utmhn", "utmcs", "utmul", "utmt", "utme", "utmhid", "utmdt", "utmp", "utmac", "utmcc",
	}, keys(p))

	v, ok := p.Get("utmt")
	require.True(t, ok)
	assert.Equal(t, "event", v)

	encoded := p.Encode()
	assert.Contains(t, encoded, "utme=5(ui*click*button)")
	assert.Contains(t, encoded, "utmp=%2Fhome")
}

func TestBeaconURL(t *testing.T) {
	t.Parallel()
	url := utm.BeaconURL(true, utm.PageviewParams(testHit()))
	assert.True(t, strings.HasPrefix(url, "https://ssl.google-analytics.com/__utm.gif?utmwv=4.3&"))
}

func TestParams_Set(t *testing.T) {
	t.Parallel()
	p := utm.NewParams(2)
	p.Set("a", "1").Set("b", "2").Set("a", "3")

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, "?a=3&b=2", p.Encode())

	_, ok := p.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, "?", utm.NewParams(0).Encode())
}

func TestEncodeEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                    string
		category, action, label string
		value                   int64
		want                    string
	}{
		{"category and action", "ui", "click", "", 0, "5(ui*click)"},
		{"with label", "ui", "click", "button", 0, "5(ui*click*button)"},
		{"with value", "video", "play", "", 30, "5(video*play)(30)"},
		{"with label and value", "video", "play", "intro", 30, "5(video*play*intro)(30)"},
		{"zero value is absent", "video", "play", "intro", 0, "5(video*play*intro)"},
		{"negative value", "score", "delta", "", -5, "5(score*delta)(-5)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, utm.EncodeEvent(tt.category, tt.action, tt.label, tt.value))
		})
	}
}
