package nasa

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/neoscope/pkg/cache"
	errs "github.com/matzehuels/neoscope/pkg/errors"
	"github.com/matzehuels/neoscope/pkg/integrations"
)

func approach(velocity, miss string) []CloseApproach {
	return []CloseApproach{{
		Date:             "2024-01-01",
		RelativeVelocity: RelativeVelocity{KilometersPerHour: velocity},
		MissDistance:     MissDistance{Kilometers: miss},
	}}
}

func sampleFeed() Feed {
	return Feed{
		ElementCount: 3,
		NearEarthObjects: map[string][]Object{
			"2024-01-02": {{
				ID:                 "3",
				Name:               "(2024 C)",
				AbsoluteMagnitudeH: 19.1,
				EstimatedDiameter:  EstimatedDiameter{Kilometers: DiameterRange{Min: 0.4, Max: 0.8}},
				Hazardous:          true,
				CloseApproachData:  approach("80000.5", "1000000"),
			}},
			"2024-01-01": {
				{
					ID:                 "1",
					Name:               "(2024 A)",
					AbsoluteMagnitudeH: 24.3,
					EstimatedDiameter:  EstimatedDiameter{Kilometers: DiameterRange{Min: 0.02, Max: 0.06}},
					CloseApproachData:  approach("12000.25", "3000000.75"),
				},
				{
					ID:                 "2",
					Name:               "(2024 B)",
					AbsoluteMagnitudeH: 21.0,
					EstimatedDiameter:  EstimatedDiameter{Kilometers: DiameterRange{Min: 0.1, Max: 0.3}},
					CloseApproachData: append(approach("45000", "5000000"),
						CloseApproach{RelativeVelocity: RelativeVelocity{KilometersPerHour: "1"}, MissDistance: MissDistance{Kilometers: "1"}}),
				},
			},
		},
	}
}

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewClient(c, time.Hour, "test-key").WithBaseURL(baseURL)
}

func TestClient_FetchFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/neo/rest/v1/feed" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("start_date") != "2024-01-01" || q.Get("end_date") != "2024-01-08" {
			t.Errorf("unexpected range %s..%s", q.Get("start_date"), q.Get("end_date"))
		}
		if q.Get("api_key") != "test-key" {
			t.Errorf("api_key = %q", q.Get("api_key"))
		}
		json.NewEncoder(w).Encode(sampleFeed())
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	feed, err := c.FetchFeed(context.Background(), "2024-01-01", "2024-01-08", true)
	if err != nil {
		t.Fatalf("FetchFeed failed: %v", err)
	}
	if feed.ElementCount != 3 {
		t.Errorf("element_count = %d, want 3", feed.ElementCount)
	}
	if len(feed.NearEarthObjects["2024-01-01"]) != 2 {
		t.Errorf("expected 2 objects on 2024-01-01")
	}
}

func TestClient_FetchFeed_Cached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(sampleFeed())
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	ctx := context.Background()

	for range 2 {
		if _, err := c.FetchFeed(ctx, "2024-01-01", "2024-01-08", false); err != nil {
			t.Fatalf("FetchFeed: %v", err)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("upstream hit %d times, want 1", n)
	}

	if _, err := c.FetchFeed(ctx, "2024-01-01", "2024-01-08", true); err != nil {
		t.Fatalf("FetchFeed(refresh): %v", err)
	}
	if n := hits.Load(); n != 2 {
		t.Errorf("refresh should reach upstream, hits = %d", n)
	}
}

func TestClient_FetchFeed_InvalidRange(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:0")

	tests := []struct {
		name       string
		start, end string
		code       errs.Code
	}{
		{"bad date", "2024-13-01", "2024-01-08", errs.ErrCodeInvalidDate},
		{"reversed", "2024-01-08", "2024-01-01", errs.ErrCodeInvalidDateRange},
		{"too wide", "2024-01-01", "2024-01-09", errs.ErrCodeInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.FetchFeed(context.Background(), tt.start, tt.end, true)
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestClient_FetchFeed_Forbidden(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	_, err := c.FetchFeed(context.Background(), "2024-01-01", "2024-01-02", true)
	if !errors.Is(err, integrations.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_FetchFeed_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	_, err := c.FetchFeed(context.Background(), "2024-01-01", "2024-01-02", true)
	if errs.GetCode(err) != errs.ErrCodeRateLimited {
		t.Errorf("expected RATE_LIMITED, got %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(nil, time.Hour, "")
	if c.apiKey != DefaultAPIKey {
		t.Errorf("apiKey = %q, want %q", c.apiKey, DefaultAPIKey)
	}
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", c.baseURL, DefaultBaseURL)
	}
	if got := c.WithBaseURL("http://localhost:9000/").baseURL; got != "http://localhost:9000" {
		t.Errorf("WithBaseURL trims the slash, got %q", got)
	}
}

func TestNormalize(t *testing.T) {
	feed := sampleFeed()
	obs, err := Normalize(&feed)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(obs) != 3 {
		t.Fatalf("got %d observations, want 3", len(obs))
	}

	wantOrder := []string{"1", "2", "3"}
	for i, id := range wantOrder {
		if obs[i].ID != id {
			t.Errorf("obs[%d].ID = %s, want %s", i, obs[i].ID, id)
		}
	}

	first := obs[0]
	if first.Date != "2024-01-01" {
		t.Errorf("date = %s", first.Date)
	}
	if math.Abs(first.DiameterAvg-0.04) > 1e-12 {
		t.Errorf("DiameterAvg = %v, want midpoint 0.04", first.DiameterAvg)
	}
	if first.Velocity != 12000.25 || first.MissDistance != 3000000.75 {
		t.Errorf("velocity/miss = %v/%v", first.Velocity, first.MissDistance)
	}
	if first.AbsoluteMagnitude != 24.3 {
		t.Errorf("magnitude = %v", first.AbsoluteMagnitude)
	}

	// Only the first close-approach record counts.
	if obs[1].Velocity != 45000 {
		t.Errorf("obs[1].Velocity = %v, want 45000", obs[1].Velocity)
	}
	if !obs[2].Hazardous || obs[2].Date != "2024-01-02" {
		t.Errorf("obs[2] = %+v", obs[2])
	}
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		feed *Feed
	}{
		{"nil feed", nil},
		{"no close approach", &Feed{NearEarthObjects: map[string][]Object{
			"2024-01-01": {{ID: "x"}},
		}}},
		{"unparsable velocity", &Feed{NearEarthObjects: map[string][]Object{
			"2024-01-01": {{ID: "x", CloseApproachData: approach("fast", "1")}},
		}}},
		{"unparsable miss distance", &Feed{NearEarthObjects: map[string][]Object{
			"2024-01-01": {{ID: "x", CloseApproachData: approach("1", "")}},
		}}},
		{"bad date key", &Feed{NearEarthObjects: map[string][]Object{
			"January": {{ID: "x", CloseApproachData: approach("1", "1")}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.feed)
			if !errs.Is(err, errs.ErrCodeInvalidFeed) {
				t.Errorf("error = %v, want INVALID_FEED", err)
			}
		})
	}
}

func TestNormalize_RejectsOutOfRangeNumbers(t *testing.T) {
	diameter := func(lo, hi float64) EstimatedDiameter {
		return EstimatedDiameter{Kilometers: DiameterRange{Min: lo, Max: hi}}
	}
	tests := []struct {
		name string
		obj  Object
	}{
		{"NaN velocity", Object{CloseApproachData: approach("NaN", "1")}},
		{"infinite velocity", Object{CloseApproachData: approach("+Inf", "1")}},
		{"negative velocity", Object{CloseApproachData: approach("-3", "1")}},
		{"negative miss distance", Object{CloseApproachData: approach("1", "-5")}},
		{"infinite miss distance", Object{CloseApproachData: approach("1", "Inf")}},
		{"negative diameter min", Object{EstimatedDiameter: diameter(-0.1, 0.2), CloseApproachData: approach("1", "1")}},
		{"negative diameter max", Object{EstimatedDiameter: diameter(0.1, -1), CloseApproachData: approach("1", "1")}},
		{"NaN diameter", Object{EstimatedDiameter: diameter(math.NaN(), 0.2), CloseApproachData: approach("1", "1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.obj.ID = "3542519"
			feed := &Feed{NearEarthObjects: map[string][]Object{"2024-01-01": {tt.obj}}}
			_, err := Normalize(feed)
			if !errs.Is(err, errs.ErrCodeInvalidFeed) {
				t.Fatalf("error = %v, want INVALID_FEED", err)
			}
			if !strings.Contains(err.Error(), "3542519") {
				t.Errorf("error %q should name the object", err)
			}
		})
	}

	obs, err := Normalize(&Feed{NearEarthObjects: map[string][]Object{
		"2024-01-01": {{ID: "zero", CloseApproachData: approach("0", "0")}},
	}})
	if err != nil || len(obs) != 1 {
		t.Errorf("zero values should be accepted: obs=%v err=%v", obs, err)
	}
}

func TestNormalize_Empty(t *testing.T) {
	obs, err := Normalize(&Feed{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(obs) != 0 {
		t.Errorf("got %d observations, want 0", len(obs))
	}
}
