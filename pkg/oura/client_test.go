package oura

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient("token-123", WithBaseURL(srv.URL))
	if _, err := c.Sleep(context.Background(), DateRange{}); err != nil {
		t.Fatalf("Sleep() error: %v", err)
	}

	if gotAuth != "Bearer token-123" {
		t.Errorf("Authorization = %q, want \"Bearer token-123\"", gotAuth)
	}
}

func TestClientEndpointsAndQuery(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *Client, ctx context.Context, r DateRange) error
		wantPath string
	}{
		{"sleep", func(c *Client, ctx context.Context, r DateRange) error {
			_, err := c.Sleep(ctx, r)
			return err
		}, "/sleep"},
		{"daily_activity", func(c *Client, ctx context.Context, r DateRange) error {
			_, err := c.DailyActivity(ctx, r)
			return err
		}, "/daily_activity"},
		{"daily_readiness", func(c *Client, ctx context.Context, r DateRange) error {
			_, err := c.DailyReadiness(ctx, r)
			return err
		}, "/daily_readiness"},
		{"heartrate", func(c *Client, ctx context.Context, r DateRange) error {
			_, err := c.HeartRate(ctx, r)
			return err
		}, "/heartrate"},
		{"workout", func(c *Client, ctx context.Context, r DateRange) error {
			_, err := c.Workouts(ctx, r)
			return err
		}, "/workout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotQuery string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.RawQuery
				w.Write([]byte(`{"data":[]}`))
			}))
			defer srv.Close()

			c := NewClient("tok", WithBaseURL(srv.URL))
			rng := DateRange{StartDate: "2026-01-01", EndDate: "2026-01-07"}
			if err := tt.call(c, context.Background(), rng); err != nil {
				t.Fatalf("call error: %v", err)
			}

			if gotPath != tt.wantPath {
				t.Errorf("path = %q, want %q", gotPath, tt.wantPath)
			}
			if gotQuery != "end_date=2026-01-07&start_date=2026-01-01" {
				t.Errorf("query = %q", gotQuery)
			}
		})
	}
}

func TestClientOmitsEmptyDates(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL))
	if _, err := c.Sleep(context.Background(), DateRange{}); err != nil {
		t.Fatalf("Sleep() error: %v", err)
	}

	if gotQuery != "" {
		t.Errorf("query = %q, want empty", gotQuery)
	}
}

func TestClientUpstreamErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad-token", WithBaseURL(srv.URL))
	_, err := c.Sleep(context.Background(), DateRange{})
	if err == nil {
		t.Fatal("expected error for 401")
	}
	if err.Error() != "Oura API error: 401 Unauthorized" {
		t.Errorf("error = %q, want \"Oura API error: 401 Unauthorized\"", err.Error())
	}
}

func TestClientDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"day":"2026-01-10","efficiency":91,"id":"s1"}],"next_token":"abc"}`))
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL))
	resp, err := c.Sleep(context.Background(), DateRange{})
	if err != nil {
		t.Fatalf("Sleep() error: %v", err)
	}

	if len(resp.Data) != 1 {
		t.Fatalf("len(data) = %d, want 1", len(resp.Data))
	}
	if resp.Data[0].Day != "2026-01-10" || resp.Data[0].Efficiency != 91 {
		t.Errorf("record = %+v", resp.Data[0])
	}
	if resp.NextToken != "abc" {
		t.Errorf("next_token = %q, want \"abc\"", resp.NextToken)
	}
}

func TestClientDecodeErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": not-json`))
	}))
	defer srv.Close()

	c := NewClient("tok", WithBaseURL(srv.URL))
	if _, err := c.Sleep(context.Background(), DateRange{}); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClientContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient("tok", WithBaseURL(srv.URL))
	if _, err := c.Sleep(ctx, DateRange{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
