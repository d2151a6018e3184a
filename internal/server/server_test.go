package server_test

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/server"
	"github.com/Iron-Ham/lifespan/internal/server/store"
	"github.com/Iron-Ham/lifespan/internal/testutil"
)

// raw performs a request against the harness and returns status and body.
func raw(t *testing.T, h *testutil.Harness, method, path, body string) (int, string) {
	t.Helper()

	client := &fasthttp.Client{Dial: h.Dial}
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI("http://lifespan.test" + path)
	req.Header.SetMethod(method)
	if body != "" {
		req.Header.SetContentType("application/json")
		req.SetBodyString(body)
	}

	if err := client.DoTimeout(req, resp, 2*time.Second); err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp.StatusCode(), string(resp.Body())
}

func TestServer_Routes(t *testing.T) {
	h := testutil.StartServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{"profile info", "GET", "/api/user-profile/", "", 200, "POST age and life_expectancy"},
		{"unknown route", "GET", "/api/nope/", "", 404, "Not found."},
		{"outside prefix", "GET", "/level1/1/", "", 404, "Not found."},
		{"bad id", "GET", "/api/category2/abc/", "", 404, "Not found."},
		{"unknown user", "GET", "/api/life-summary/77/", "", 404, "Not found."},
		{"method not allowed", "DELETE", "/api/user-profile/", "", 405, `Method \"DELETE\" not allowed.`},
		{"invalid json", "POST", "/api/user-profile/", "{", 400, "JSON parse error"},
		{"blank age", "POST", "/api/user-profile/", `{}`, 400, "age"},
		{"expectancy below age", "POST", "/api/user-profile/", `{"age": 90, "life_expectancy": 80}`, 400, "life_expectancy"},
		{"create", "POST", "/api/user-profile/", `{"age": 30}`, 201, `"life_expectancy":80`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := raw(t, h, tt.method, tt.path, tt.body)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", status, tt.wantStatus, body)
			}
			if !strings.Contains(body, tt.wantBody) {
				t.Errorf("body = %s, want it to contain %q", body, tt.wantBody)
			}
		})
	}
}

func TestServer_SummaryRequiresLevel1(t *testing.T) {
	h := testutil.StartServer(t)
	user, err := h.Client().CreateProfile(context.Background(), 25, 85)
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	status, body := raw(t, h, "GET", "/api/life-summary/1/", "")
	if user.ID != 1 {
		t.Fatalf("first user ID = %d, want 1", user.ID)
	}
	if status != fasthttp.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if !strings.Contains(body, server.DetailLevel1Missing) {
		t.Errorf("body = %s", body)
	}
}

func TestServer_Level1Validation(t *testing.T) {
	h := testutil.StartServer(t)
	user, _ := h.Client().CreateProfile(context.Background(), 30, 80)

	status, body := raw(t, h, "POST", "/api/level1/1/", `{"sleep_hours_per_day": -1}`)
	if user.ID != 1 {
		t.Fatalf("first user ID = %d, want 1", user.ID)
	}
	if status != fasthttp.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if !strings.Contains(body, "sleep_hours_per_day") {
		t.Errorf("body = %s, want field error for sleep_hours_per_day", body)
	}
}

func TestServer_ActivityOverwrite(t *testing.T) {
	h := testutil.StartServer(t)
	client := h.Client()
	ctx := context.Background()

	user, _ := client.CreateProfile(ctx, 30, 80)
	if _, err := client.ComputeSurvival(ctx, user.ID, life.SurvivalInputs{SleepHoursPerDay: 8}); err != nil {
		t.Fatalf("ComputeSurvival() error = %v", err)
	}

	first, err := client.AddMaintenance(ctx, user.ID, "Reading", 2)
	if err != nil {
		t.Fatalf("AddMaintenance() error = %v", err)
	}
	second, err := client.AddMaintenance(ctx, user.ID, "  Reading ", 4)
	if err != nil {
		t.Fatalf("AddMaintenance() overwrite error = %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("overwrite created a new activity: %d != %d", second.ID, first.ID)
	}
	if second.Source != life.SourceUser {
		t.Errorf("Source = %q, want %q", second.Source, life.SourceUser)
	}

	summary, err := client.FetchSummary(ctx, user.ID)
	if err != nil {
		t.Fatalf("FetchSummary() error = %v", err)
	}
	if len(summary.Category2) != 1 {
		t.Fatalf("Category2 has %d entries, want 1", len(summary.Category2))
	}
	want := life.YearsFromWeeklyHours(4, 50)
	if summary.Category2[0].Years != want {
		t.Errorf("Reading years = %v, want %v", summary.Category2[0].Years, want)
	}
}

func TestServer_BlankLabelRejected(t *testing.T) {
	h := testutil.StartServer(t)
	_, _ = h.Client().CreateProfile(context.Background(), 30, 80)

	status, body := raw(t, h, "POST", "/api/category3/1/", `{"name": "   ", "hours_per_week": 2}`)
	if status != fasthttp.StatusBadRequest || !strings.Contains(body, "may not be blank") {
		t.Errorf("status = %d, body = %s", status, body)
	}
}

func TestServer_PatchUnknownActivity(t *testing.T) {
	h := testutil.StartServer(t)
	_, _ = h.Client().CreateProfile(context.Background(), 30, 80)

	status, _ := raw(t, h, "PATCH", "/api/category2/1/99/", `{"is_active": false}`)
	if status != fasthttp.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestServer_SummaryClampsAtZero(t *testing.T) {
	h := testutil.StartServer(t)
	client := h.Client()
	ctx := context.Background()

	user, _ := client.CreateProfile(ctx, 30, 80)
	result, _ := client.ComputeSurvival(ctx, user.ID, life.SurvivalInputs{SleepHoursPerDay: 8, WorkHoursPerDay: 8, WorkDaysPerWeek: 7})
	_, _ = client.AddMaintenance(ctx, user.ID, "Exercising", 60)
	_, _ = client.AddLeakage(ctx, user.ID, "Meetings", 60)

	summary, err := client.FetchSummary(ctx, user.ID)
	if err != nil {
		t.Fatalf("FetchSummary() error = %v", err)
	}
	if summary.Adjusted.FreeYears != 0 {
		t.Errorf("Adjusted.FreeYears = %v, want 0", summary.Adjusted.FreeYears)
	}
	if summary.Adjusted.SleepYears != result.SleepYears {
		t.Errorf("Adjusted keeps survival categories: %v != %v", summary.Adjusted.SleepYears, result.SleepYears)
	}
}

func TestServer_SQLiteStore(t *testing.T) {
	st, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "serve.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	client := testutil.StartServerWithStore(t, st).Client()
	ctx := context.Background()

	user, err := client.CreateProfile(ctx, 25, 85)
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}
	if _, err := client.ComputeSurvival(ctx, user.ID, life.SurvivalInputs{SleepHoursPerDay: 8}); err != nil {
		t.Fatalf("ComputeSurvival() error = %v", err)
	}
	_, _ = client.AddMaintenance(ctx, user.ID, "Exercising", 5)
	_, _ = client.AddMaintenance(ctx, user.ID, "Exercising", 3)

	summary, err := client.FetchSummary(ctx, user.ID)
	if err != nil {
		t.Fatalf("FetchSummary() error = %v", err)
	}
	want := life.YearsFromWeeklyHours(3, 60)
	if math.Abs(summary.MaintenanceYears-want) > 1e-9 {
		t.Errorf("MaintenanceYears = %v, want %v", summary.MaintenanceYears, want)
	}
}

func TestServer_Metrics(t *testing.T) {
	h := testutil.StartServer(t)
	_, _ = raw(t, h, "GET", "/api/user-profile/", "")

	status, body := raw(t, h, "GET", "/metrics", "")
	if status != fasthttp.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !strings.Contains(body, `lifespan_server_requests_total{method="GET",route="user-profile",status="200"} 1`) {
		t.Errorf("metrics missing request counter:\n%s", body)
	}
	if !strings.Contains(body, "lifespan_server_request_duration_seconds") {
		t.Error("metrics missing duration histogram")
	}
}
