package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"planner/internal/domain/account"
	"planner/internal/domain/attraction"
	"planner/internal/domain/trip"
)

// RemoteError is a failed call to the backend: a non-2xx response, or a
// transport/decode failure (Status 0). Message is extracted from the
// structured error body when present.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// ErrNotLoggedIn marks the normal "no session" outcome of Me. It is not
// surfaced to the user as a failure.
var ErrNotLoggedIn = errors.New("not logged in")

const genericFailure = "request failed"

// Client is the gateway to the trip-planning backend. It owns the session
// cookie jar, so one Client is one logical browser context. Search calls
// are rate limited to stay polite to the search pipeline, which fans out
// to external providers server-side.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient builds a Client for the given base URL.
// PRE: baseURL has no trailing slash; timeout > 0
// POST: Returns a Client with its own cookie jar for session credentials
func NewClient(baseURL string, timeout time.Duration, searchPerMinute int) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if searchPerMinute <= 0 {
		searchPerMinute = 30
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout, Jar: jar},
		limiter: rate.NewLimiter(rate.Limit(float64(searchPerMinute)/60.0), 1),
	}, nil
}

// do issues one JSON request and decodes the response into out (when out
// is non-nil). Non-2xx responses and transport/decode failures come back
// as *RemoteError; local stores are never touched on that path.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	requestID := uuid.NewString()
	start := time.Now()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Message: genericFailure}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &RemoteError{Message: genericFailure}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("api_transport_failed", "method", method, "path", path, "request_id", requestID, "error", err.Error())
		return &RemoteError{Message: "backend unreachable"}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Message: genericFailure}
	}

	slog.Debug("api_request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteError{Status: resp.StatusCode, Message: extractMessage(payload)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &RemoteError{Message: "malformed response from backend"}
	}
	return nil
}

// extractMessage pulls a human-readable message out of a structured error
// body. The backend answers FastAPI-style: {"detail": "..."} for plain
// failures, {"detail": [{"msg": "..."}]} for 422s, occasionally
// {"message": "..."}.
func extractMessage(payload []byte) string {
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		var s string
		if json.Unmarshal(body.Detail, &s) == nil && s != "" {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(body.Detail, &items) == nil && len(items) > 0 && items[0].Msg != "" {
			return items[0].Msg
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return genericFailure
}

// Search looks up attractions for a destination. A well-formed response
// with no data is an empty result, not an error. Returns the attractions
// and the server's status message.
func (c *Client) Search(ctx context.Context, location string) ([]attraction.Attraction, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", &RemoteError{Message: genericFailure}
	}

	var resp struct {
		Message string                  `json:"message"`
		Data    []attraction.Attraction `json:"data"`
	}
	err := c.do(ctx, http.MethodPost, "/api/search", map[string]string{"location": location}, &resp)
	if err != nil {
		return nil, "", err
	}
	return resp.Data, resp.Message, nil
}

// createTripPayload is the wire shape of POST /api/trips.
type createTripPayload struct {
	Title     string            `json:"title"`
	Days      int               `json:"days"`
	StartDate *string           `json:"startDate"`
	Places    []createTripPlace `json:"places"`
}

type createTripPlace struct {
	PlaceRef string `json:"google_place_id"`
}

// CreateTrip submits a new trip and returns the server-issued trip id.
// The call is made exactly once; creation is not idempotent server-side,
// so retries are the caller's explicit decision.
func (c *Client) CreateTrip(ctx context.Context, title string, days int, startDate string, placeRefs []string) (int64, error) {
	payload := createTripPayload{
		Title:  title,
		Days:   days,
		Places: make([]createTripPlace, 0, len(placeRefs)),
	}
	if startDate != "" {
		payload.StartDate = &startDate
	}
	for _, ref := range placeRefs {
		payload.Places = append(payload.Places, createTripPlace{PlaceRef: ref})
	}

	var resp struct {
		TripID int64 `json:"trip_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/trips", payload, &resp); err != nil {
		return 0, err
	}
	if resp.TripID == 0 {
		return 0, &RemoteError{Message: "backend did not return a trip id"}
	}
	return resp.TripID, nil
}

// GetTrip fetches a trip by id. The backend answers with either an "id"
// or a "trip_id" key; both are accepted.
func (c *Client) GetTrip(ctx context.Context, tripID int64) (trip.Trip, error) {
	var resp struct {
		ID        int64  `json:"id"`
		TripID    int64  `json:"trip_id"`
		Title     string `json:"title"`
		Days      int    `json:"days"`
		StartDate string `json:"start_date"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/trips/%d", tripID), nil, &resp); err != nil {
		return trip.Trip{}, err
	}
	id := resp.TripID
	if id == 0 {
		id = resp.ID
	}
	return trip.Trip{TripID: id, Title: resp.Title, Days: resp.Days, StartDate: resp.StartDate}, nil
}

// tripPlacePayload is the wire shape of a trip place record.
type tripPlacePayload struct {
	DestinationID int64    `json:"destination_id"`
	PlaceName     string   `json:"place_name"`
	CityName      string   `json:"city_name"`
	PlaceRef      string   `json:"google_place_id"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	CoverURL      string   `json:"cover_url"`
}

func (p tripPlacePayload) toDomain() trip.Place {
	out := trip.Place{
		DestinationID: p.DestinationID,
		PlaceRef:      p.PlaceRef,
		Name:          p.PlaceName,
		Locality:      p.CityName,
		CoverImageURL: p.CoverURL,
	}
	if p.Lat != nil {
		out.Lat = *p.Lat
	}
	if p.Lng != nil {
		out.Lng = *p.Lng
	}
	return out
}

// ListTripPlaces returns the place pool of a trip. The backend has
// answered both as a bare array and as {"data": [...]} across versions;
// both shapes are accepted.
func (c *Client) ListTripPlaces(ctx context.Context, tripID int64) ([]trip.Place, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/trips/%d/places", tripID), nil, &raw); err != nil {
		return nil, err
	}

	var items []tripPlacePayload
	if json.Unmarshal(raw, &items) != nil {
		var wrapped struct {
			Data []tripPlacePayload `json:"data"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, &RemoteError{Message: "malformed response from backend"}
		}
		items = wrapped.Data
	}

	places := make([]trip.Place, 0, len(items))
	for _, it := range items {
		places = append(places, it.toDomain())
	}
	return places, nil
}

// AddTripPlace attaches a place to a trip and returns the created record.
func (c *Client) AddTripPlace(ctx context.Context, tripID int64, placeRef string) (trip.Place, error) {
	var resp tripPlacePayload
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/trips/%d/places", tripID),
		map[string]string{"google_place_id": placeRef}, &resp)
	if err != nil {
		return trip.Place{}, err
	}
	return resp.toDomain(), nil
}

// RemoveTripPlace detaches a place from a trip by its destination id.
func (c *Client) RemoveTripPlace(ctx context.Context, tripID, destinationID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/trips/%d/places/%d", tripID, destinationID), nil, nil)
}

// Me returns the current session user. A 401 means "no session" and comes
// back as ErrNotLoggedIn, which callers treat as a normal outcome.
func (c *Client) Me(ctx context.Context) (account.User, error) {
	var user account.User
	err := c.do(ctx, http.MethodGet, "/api/me", nil, &user)
	var remote *RemoteError
	if errors.As(err, &remote) && remote.Status == http.StatusUnauthorized {
		return account.User{}, ErrNotLoggedIn
	}
	if err != nil {
		return account.User{}, err
	}
	return user, nil
}

// Signup registers a new user. The backend sets the session cookie on
// success, captured by the client's jar.
func (c *Client) Signup(ctx context.Context, name, email, password string) (account.User, error) {
	var user account.User
	err := c.do(ctx, http.MethodPost, "/api/signup",
		map[string]string{"name": name, "email": email, "password": password}, &user)
	if err != nil {
		return account.User{}, err
	}
	return user, nil
}

// Login authenticates and stores the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context, email, password string) (account.User, error) {
	var user account.User
	err := c.do(ctx, http.MethodPost, "/api/login",
		map[string]string{"email": email, "password": password}, &user)
	if err != nil {
		return account.User{}, err
	}
	return user, nil
}

// Logout ends the session server-side. The jar drops the cookie when the
// backend expires it.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}
