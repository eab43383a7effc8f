// Package collect exposes the tracking API to browsers over HTTP.
//
// Each browser is identified by a visitor id kept in a signed cookie. The
// handler resolves the visitor's Tracker from a tracker.Registry and turns
// JSON requests into page views, events and visibility changes:
//
//	POST /pageview             {"path": "/home", "title": "Home", "referrer": {"source": "google"}}
//	POST /event                {"category": "ui", "action": "click", "label": "buy", "value": 3}
//	POST /visibility/{state}   hidden | blurred | focused
//	POST /session/reset
//	GET  /healthz
//
// Page views, events and session resets answer 204 No Content. Visibility
// changes answer 202 Accepted since their page view fires after the debounce
// delay. Client mistakes answer 4xx and store failures 500, with a JSON body:
//
//	{"error": {"code": "tracker.event_missing_action", "message": "..."}}
//
// The preferred Accept-Language entry sets the visitor's utmul locale.
//
// Usage:
//
//	registry := tracker.NewRegistry(store, trackerCfg, tracker.WithDispatcher(d))
//	cookies, _ := cookie.NewFromConfig(cookieCfg)
//	h, err := collect.New(registry, cookies, collectCfg, collect.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	r.Mount("/collect", h.Handle())
package collect
