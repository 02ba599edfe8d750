package storeops

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"slotops-service/internal/domain/slots"
	"slotops-service/internal/providers"
)

// Config controls how the storeops client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Identity   Identity
	Latitude   float64
	Longitude  float64
}

// Client talks to the storeops slot API and maps responses to domain
// records. It performs single exchanges only; retrying is the scan loop's
// job, not the client's.
type Client struct {
	baseURL    string
	httpClient httpDoer
	identity   Identity
	location   locationInfo
}

// NewClient constructs a storeops client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		identity:   cfg.Identity,
		location: locationInfo{
			Latitude:  cfg.Latitude,
			Longitude: cfg.Longitude,
		},
	}
}

// ListStores fetches the store-grouped slot listing for one date range.
// A response that parses but lacks the stores shape yields an empty
// listing, not an error.
func (c *Client) ListStores(ctx context.Context, r slots.DateRange) ([]slots.StoreListing, error) {
	payload := listSlotsRequest{
		StartDate:    r.Start.UTC().Format(time.RFC3339),
		EndDate:      r.End.UTC().Format(time.RFC3339),
		Status:       statusAll,
		LocationInfo: c.location,
	}

	var decoded listSlotsResponse
	if err := c.post(ctx, listSlotsPath, opListSlots, payload, &decoded); err != nil {
		return nil, err
	}

	listings := make([]slots.StoreListing, 0, len(decoded.Data.Stores))
	for _, store := range decoded.Data.Stores {
		listings = append(listings, mapStore(store))
	}
	return listings, nil
}

// ListSlots fetches every slot visible in the date range, flattened across
// stores. Each record carries its store id for filtering downstream.
func (c *Client) ListSlots(ctx context.Context, r slots.DateRange) ([]slots.SlotRecord, error) {
	listings, err := c.ListStores(ctx, r)
	if err != nil {
		return nil, err
	}
	records := make([]slots.SlotRecord, 0)
	for _, listing := range listings {
		records = append(records, listing.Slots...)
	}
	return records, nil
}

// BookSlots reserves the given slot ids in a single request.
func (c *Client) BookSlots(ctx context.Context, ids []string) (bool, error) {
	return c.submitSlotIDs(ctx, bookPath, opBook, ids)
}

// CancelSlots releases the given slot ids in a single request.
func (c *Client) CancelSlots(ctx context.Context, ids []string) (bool, error) {
	return c.submitSlotIDs(ctx, cancelPath, opCancel, ids)
}

func (c *Client) submitSlotIDs(ctx context.Context, path, op string, ids []string) (bool, error) {
	var decoded bookResponse
	if err := c.post(ctx, path, op, bookRequest{SlotIDs: ids}, &decoded); err != nil {
		return false, err
	}
	return decoded.Success, nil
}

func (c *Client) post(ctx context.Context, path, op string, payload, out any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	c.identity.apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &providers.HTTPError{
			Provider:   providerName,
			Operation:  op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return &providers.DecodeError{Provider: providerName, Operation: op, Cause: decodeErr}
	}
	return nil
}
