package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, 5*time.Second, 6000)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

// TestSearch_ReturnsResults verifies a successful search decodes the
// attraction list and message.
func TestSearch_ReturnsResults(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/search" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["location"] != "Tokyo" {
			t.Errorf("location = %q", body["location"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"message": "success",
			"data": []map[string]any{
				{"attraction": "Senso-ji", "city": "Tokyo", "google_place_id": "gp1"},
			},
		})
	}))

	results, msg, err := c.Search(context.Background(), "Tokyo")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if msg != "success" {
		t.Errorf("message = %q", msg)
	}
	if len(results) != 1 || results[0].PlaceRef != "gp1" || results[0].Name != "Senso-ji" {
		t.Errorf("results = %+v", results)
	}
}

// TestSearch_EmptyDataIsNotError verifies a well-formed response with no
// data is an empty result, not a failure.
func TestSearch_EmptyDataIsNotError(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"message": "no results"})
	}))

	results, _, err := c.Search(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %+v, want empty", results)
	}
}

// TestRemoteError_DetailString verifies the detail field becomes the
// error message.
func TestRemoteError_DetailString(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "place is empty"})
	}))

	_, err := c.CreateTrip(context.Background(), "t", 3, "", []string{"a"})
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if remote.Status != http.StatusBadRequest || remote.Message != "place is empty" {
		t.Errorf("remote = %+v", remote)
	}
}

// TestRemoteError_DetailArray verifies FastAPI 422-style detail arrays are
// mined for the first message.
func TestRemoteError_DetailArray(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"detail": []map[string]string{{"msg": "days must be an integer"}},
		})
	}))

	_, err := c.CreateTrip(context.Background(), "t", 3, "", []string{"a"})
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if remote.Message != "days must be an integer" {
		t.Errorf("message = %q", remote.Message)
	}
}

// TestRemoteError_UnstructuredBody verifies a non-JSON error body falls
// back to the generic message.
func TestRemoteError_UnstructuredBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>502</html>"))
	}))

	_, err := c.GetTrip(context.Background(), 1)
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if remote.Status != http.StatusBadGateway || remote.Message != genericFailure {
		t.Errorf("remote = %+v", remote)
	}
}

// TestCreateTrip_WireShape verifies the request body matches the trips
// API contract, including the null startDate.
func TestCreateTrip_WireShape(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]int{"trip_id": 42})
	}))

	id, err := c.CreateTrip(context.Background(), "My trip", 5, "", []string{"p1", "p2"})
	if err != nil {
		t.Fatalf("CreateTrip: %v", err)
	}
	if id != 42 {
		t.Errorf("trip id = %d, want 42", id)
	}
	if got["title"] != "My trip" || got["days"] != float64(5) {
		t.Errorf("payload = %+v", got)
	}
	if v, present := got["startDate"]; !present || v != nil {
		t.Errorf("startDate = %v, want explicit null", v)
	}
	places, _ := got["places"].([]any)
	if len(places) != 2 {
		t.Fatalf("places = %v", got["places"])
	}
	first, _ := places[0].(map[string]any)
	if first["google_place_id"] != "p1" {
		t.Errorf("first place = %v", first)
	}
}

// TestCreateTrip_MissingTripID verifies a 2xx response without a trip id
// is rejected.
func TestCreateTrip_MissingTripID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))

	_, err := c.CreateTrip(context.Background(), "t", 3, "", []string{"a"})
	if err == nil {
		t.Fatal("err = nil, want RemoteError")
	}
}

// TestGetTrip_AcceptsBothIDKeys verifies "id" and "trip_id" responses both
// decode.
func TestGetTrip_AcceptsBothIDKeys(t *testing.T) {
	for name, body := range map[string]map[string]any{
		"trip_id": {"trip_id": 9, "title": "Kyoto", "days": 4},
		"id":      {"id": 9, "title": "Kyoto", "days": 4},
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				json.NewEncoder(w).Encode(body)
			}))
			got, err := c.GetTrip(context.Background(), 9)
			if err != nil {
				t.Fatalf("GetTrip: %v", err)
			}
			if got.TripID != 9 || got.Title != "Kyoto" || got.Days != 4 {
				t.Errorf("trip = %+v", got)
			}
		})
	}
}

// TestListTripPlaces_AcceptsBothShapes verifies bare-array and wrapped
// payloads both decode.
func TestListTripPlaces_AcceptsBothShapes(t *testing.T) {
	record := map[string]any{"destination_id": 3, "place_name": "Gion", "city_name": "Kyoto", "google_place_id": "gp3"}
	for name, body := range map[string]any{
		"bare":    []any{record},
		"wrapped": map[string]any{"data": []any{record}},
	} {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				json.NewEncoder(w).Encode(body)
			}))
			places, err := c.ListTripPlaces(context.Background(), 1)
			if err != nil {
				t.Fatalf("ListTripPlaces: %v", err)
			}
			if len(places) != 1 || places[0].DestinationID != 3 || places[0].PlaceRef != "gp3" {
				t.Errorf("places = %+v", places)
			}
		})
	}
}

// TestMe_UnauthorizedIsNotLoggedIn verifies a 401 maps to ErrNotLoggedIn.
func TestMe_UnauthorizedIsNotLoggedIn(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
	}))

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("err = %v, want ErrNotLoggedIn", err)
	}
}

// TestSessionCookieRoundTrip verifies the cookie set at login rides on
// the next request.
func TestSessionCookieRoundTrip(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "s3cr3t", Path: "/"})
			json.NewEncoder(w).Encode(map[string]any{"id": 1, "email": "a@b.c", "name": "A"})
		case "/api/me":
			if cookie, err := r.Cookie("session"); err != nil || cookie.Value != "s3cr3t" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"id": 1, "email": "a@b.c", "name": "A"})
		}
	}))

	ctx := context.Background()
	if _, err := c.Login(ctx, "a@b.c", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	user, err := c.Me(ctx)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.Email != "a@b.c" {
		t.Errorf("user = %+v", user)
	}
}

// TestTransportFailure verifies an unreachable backend surfaces as a
// RemoteError rather than a raw transport error.
func TestTransportFailure(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1", 200*time.Millisecond, 6000)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, gotErr := c.GetTrip(context.Background(), 1)
	var remote *RemoteError
	if !errors.As(gotErr, &remote) {
		t.Fatalf("err = %v, want RemoteError", gotErr)
	}
	if remote.Status != 0 {
		t.Errorf("status = %d, want 0", remote.Status)
	}
}
