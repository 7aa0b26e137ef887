package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"steamqueue/internal/ratelimit"
)

func noopLimiter() *ratelimit.Limiter {
	return ratelimit.New(0)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New("test-key", "testuser", noopLimiter(),
		WithBaseURLs(server.URL, server.URL, server.URL),
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatal(err)
	}
	return client, server
}

func TestAppListParsesAndForwardsParams(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`<response><apps><app><appid>10</appid><name>Editor Tool</name></app><app><appid>20</appid><name>DLC Pack</name></app></apps></response>`))
	}))

	apps, err := client.AppList(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 2 {
		t.Fatalf("got %d apps, want 2", len(apps))
	}
	if apps[0].ID != "10" || apps[0].Name != "Editor Tool" {
		t.Fatalf("unexpected first app: %+v", apps[0])
	}
	for _, param := range []string{"include_games=false", "include_dlc=true", "include_software=true", "key=test-key"} {
		if !strings.Contains(gotQuery, param) {
			t.Fatalf("query %q missing %q", gotQuery, param)
		}
	}
}

func TestAppListRequiresKey(t *testing.T) {
	client, err := New("", "testuser", noopLimiter())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.AppList(context.Background()); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestLibraryUnwrapsCDATA(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/id/testuser/games" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<gamesList><games><game><appID>101</appID><name><![CDATA[Half-Life 2]]></name></game><game><appID>202</appID><name><![CDATA[Portal]]></name></game></games></gamesList>`))
	}))

	apps, err := client.Library(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 2 {
		t.Fatalf("got %d apps, want 2", len(apps))
	}
	if apps[0].ID != "101" || apps[0].Name != "Half-Life 2" {
		t.Fatalf("CDATA name not unwrapped: %+v", apps[0])
	}
	if apps[1].ID != "202" {
		t.Fatalf("source order not preserved: %+v", apps)
	}
}

func TestLibraryProfileError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<response><error><![CDATA[The specified profile could not be found.]]></error></response>`))
	}))

	if _, err := client.Library(context.Background()); err == nil {
		t.Fatal("expected error for profile error payload")
	}
}

func TestDetailsSuccess(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"101":{"success":true,"data":{"name":"Half-Life 2","is_free":false,"drm_notice":"Denuvo Anti-tamper","platforms":{"windows":true,"mac":true,"linux":false}}}}`))
	}))

	details, err := client.Details(context.Background(), "101")
	if err != nil {
		t.Fatal(err)
	}
	if details == nil {
		t.Fatal("expected details")
	}
	if !details.Windows || !details.Mac || details.Linux {
		t.Fatalf("unexpected platforms: %+v", details)
	}
	if details.DRMNotice != "Denuvo Anti-tamper" {
		t.Fatalf("unexpected drm notice: %q", details.DRMNotice)
	}
}

func TestDetailsFailureIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"999":{"success":false}}`))
	}))

	details, err := client.Details(context.Background(), "999")
	if err != nil {
		t.Fatal(err)
	}
	if details != nil {
		t.Fatalf("expected nil details for success=false, got %+v", details)
	}
}

func TestDetailsMissingIdentifier(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	details, err := client.Details(context.Background(), "888")
	if err != nil {
		t.Fatal(err)
	}
	if details != nil {
		t.Fatalf("expected nil details for absent identifier, got %+v", details)
	}
}

func TestDetailsStatusError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	if _, err := client.Details(context.Background(), "101"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestAllEndpointsShareLimiter(t *testing.T) {
	clock := time.Unix(1000, 0)
	var waits int
	limiter := ratelimit.New(time.Second,
		ratelimit.WithClock(func() time.Time { return clock }),
		ratelimit.WithSleep(func(_ context.Context, d time.Duration) error {
			waits++
			clock = clock.Add(d)
			return nil
		}),
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := New("k", "u", limiter,
		WithBaseURLs(server.URL, server.URL, server.URL),
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.Details(context.Background(), "1"); err != nil {
		t.Fatal(err)
	}
	if _, err := client.Details(context.Background(), "2"); err != nil {
		t.Fatal(err)
	}
	if waits != 1 {
		t.Fatalf("second call should have waited once, got %d waits", waits)
	}
}
