package storeops

import "time"

const (
	providerName = "storeops"

	defaultBaseURL = "https://storeops-api.blinkit.com"

	listSlotsPath = "/v1/slots/list_slots_by_site"
	bookPath      = "/v1/slots/book"
	cancelPath    = "/v1/slots/cancel"

	opListSlots = "list_slots"
	opBook      = "book"
	opCancel    = "cancel"

	statusAll = "All"

	defaultHTTPTimeout = 30 * time.Second
)
