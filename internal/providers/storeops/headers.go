package storeops

import (
	"net/http"

	"github.com/google/uuid"
)

// Identity carries the opaque device and account values the API expects on
// every request. They are supplied by configuration; nothing here is
// computed beyond the per-request id.
type Identity struct {
	DeviceID         string
	EmployeeID       string
	SiteID           string
	UserID           string
	PhoneNumber      string
	Role             string
	AuthToken        string
	SessionToken     string
	HTTPSessionToken string
	AppVersion       string
	UserAgent        string
	Latitude         string
	Longitude        string
}

// apply stamps identity headers onto a request. A fresh request id is
// generated per call; the upstream rejects reused ids.
func (id Identity) apply(req *http.Request) {
	h := req.Header
	h.Set("accept", "application/json")
	h.Set("content-type", "application/json")
	h.Set("requestid", uuid.NewString())

	setIfPresent(h, "x-device-id", id.DeviceID)
	setIfPresent(h, "employeeid", id.EmployeeID)
	setIfPresent(h, "site-id", id.SiteID)
	setIfPresent(h, "site_id", id.SiteID)
	setIfPresent(h, "siteid", id.SiteID)
	setIfPresent(h, "userid", id.UserID)
	setIfPresent(h, "phonenumber", id.PhoneNumber)
	setIfPresent(h, "role", id.Role)
	setIfPresent(h, "session-token", id.SessionToken)
	setIfPresent(h, "http_session_token", id.HTTPSessionToken)
	setIfPresent(h, "x-app-version", id.AppVersion)
	setIfPresent(h, "user-agent", id.UserAgent)
	setIfPresent(h, "x-lat", id.Latitude)
	setIfPresent(h, "lat", id.Latitude)
	setIfPresent(h, "x-long", id.Longitude)
	setIfPresent(h, "long", id.Longitude)

	if id.AuthToken != "" {
		h.Set("authorization", "Bearer "+id.AuthToken)
	}
}

func setIfPresent(h http.Header, key, value string) {
	if value != "" {
		h.Set(key, value)
	}
}
