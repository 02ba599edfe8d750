package config

const (
	envBaseURL          = "STOREOPS_BASE_URL"
	envAuthToken        = "AUTH_TOKEN"
	envSessionToken     = "SESSION_TOKEN"
	envHTTPSessionToken = "HTTP_SESSION_TOKEN"
	envDeviceID         = "DEVICE_ID"
	envEmployeeID       = "EMPLOYEE_ID"
	envSiteID           = "SITE_ID"
	envUserID           = "USER_ID"
	envPhoneNumber      = "PHONE_NUMBER"
	envRole             = "ROLE"
	envAppVersion       = "APP_VERSION"
	envUserAgent        = "USER_AGENT"
	envLatitude         = "LATITUDE"
	envLongitude        = "LONGITUDE"

	defaultRole      = "OD_CAPTAIN"
	defaultLatitude  = 22.5747936
	defaultLongitude = 88.28344
)

// StoreopsConfig carries everything needed to talk to the storeops API.
// Tokens and device identity are opaque pass-through values; the bot never
// refreshes or derives them.
type StoreopsConfig struct {
	BaseURL          string
	AuthToken        string
	SessionToken     string
	HTTPSessionToken string
	DeviceID         string
	EmployeeID       string
	SiteID           string
	UserID           string
	PhoneNumber      string
	Role             string
	AppVersion       string
	UserAgent        string
	Latitude         float64
	Longitude        float64
}

func loadStoreops() StoreopsConfig {
	return StoreopsConfig{
		BaseURL:          envOrDefault(envBaseURL, ""),
		AuthToken:        envOrDefault(envAuthToken, ""),
		SessionToken:     envOrDefault(envSessionToken, ""),
		HTTPSessionToken: envOrDefault(envHTTPSessionToken, ""),
		DeviceID:         envOrDefault(envDeviceID, ""),
		EmployeeID:       envOrDefault(envEmployeeID, ""),
		SiteID:           envOrDefault(envSiteID, ""),
		UserID:           envOrDefault(envUserID, ""),
		PhoneNumber:      envOrDefault(envPhoneNumber, ""),
		Role:             envOrDefault(envRole, defaultRole),
		AppVersion:       envOrDefault(envAppVersion, ""),
		UserAgent:        envOrDefault(envUserAgent, ""),
		Latitude:         floatEnvOrDefault(envLatitude, defaultLatitude),
		Longitude:        floatEnvOrDefault(envLongitude, defaultLongitude),
	}
}
