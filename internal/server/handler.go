package server

import (
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/Iron-Ham/lifespan/internal/errors"
	"github.com/Iron-Ham/lifespan/internal/life"
	"github.com/Iron-Ham/lifespan/internal/remote"
	"github.com/Iron-Ham/lifespan/internal/server/store"
)

// DetailLevel1Missing is returned when a summary is requested before survival
// inputs were submitted.
const DetailLevel1Missing = "Level1 result not found. Submit Category1 inputs first."

// Route names used for metrics and logs.
const (
	routeProfile     = "user-profile"
	routeLevel1      = "level1"
	routeCategory2   = "category2"
	routeCategory2ID = "category2.item"
	routeCategory3   = "category3"
	routeSummary     = "life-summary"
	routeMetrics     = "metrics"
	routeUnknown     = "unknown"
)

// fieldErrors is the field-keyed error body of a rejected request.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Handler is the fasthttp entry point of the reference service.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	method := string(ctx.Method())

	requestID := string(ctx.Request.Header.Peek(remote.RequestIDHeader))
	if requestID != "" {
		ctx.Response.Header.Set(remote.RequestIDHeader, requestID)
	}

	route := s.dispatch(ctx)

	status := ctx.Response.StatusCode()
	elapsed := time.Since(start)
	s.metrics.Observe(route, method, status, elapsed)
	s.logger.Info("request",
		"route", route,
		"method", method,
		"path", string(ctx.Path()),
		"status", status,
		"request_id", requestID,
		"duration_ms", elapsed.Milliseconds(),
	)
}

// dispatch routes the request and returns the route name.
func (s *Server) dispatch(ctx *fasthttp.RequestCtx) string {
	path := string(ctx.Path())

	if path == "/metrics" {
		if !ctx.IsGet() {
			methodNotAllowed(ctx)
			return routeMetrics
		}
		s.metrics.Handler()(ctx)
		return routeMetrics
	}

	rest, ok := strings.CutPrefix(path, s.prefix)
	if !ok {
		writeDetail(ctx, fasthttp.StatusNotFound, "Not found.")
		return routeUnknown
	}
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] == "user-profile":
		s.handleProfile(ctx)
		return routeProfile

	case len(parts) == 2 && parts[0] == "level1":
		if userID, ok := pathID(ctx, parts[1]); ok {
			s.handleLevel1(ctx, userID)
		}
		return routeLevel1

	case len(parts) == 2 && parts[0] == "category2":
		if userID, ok := pathID(ctx, parts[1]); ok {
			s.handleActivities(ctx, store.Maintenance, userID)
		}
		return routeCategory2

	case len(parts) == 3 && parts[0] == "category2":
		userID, ok := pathID(ctx, parts[1])
		if !ok {
			return routeCategory2ID
		}
		if activityID, ok := pathID(ctx, parts[2]); ok {
			s.handleActivityUpdate(ctx, store.Maintenance, userID, activityID)
		}
		return routeCategory2ID

	case len(parts) == 2 && parts[0] == "category3":
		if userID, ok := pathID(ctx, parts[1]); ok {
			s.handleActivities(ctx, store.Leakage, userID)
		}
		return routeCategory3

	case len(parts) == 2 && parts[0] == "life-summary":
		if userID, ok := pathID(ctx, parts[1]); ok {
			s.handleSummary(ctx, userID)
		}
		return routeSummary
	}

	writeDetail(ctx, fasthttp.StatusNotFound, "Not found.")
	return routeUnknown
}

func (s *Server) handleProfile(ctx *fasthttp.RequestCtx) {
	switch {
	case ctx.IsGet():
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{
			"message": "POST age and life_expectancy to create a user profile.",
		})
	case ctx.IsPost():
		var req remote.ProfileRequest
		if !decode(ctx, &req) {
			return
		}
		if req.LifeExpectancy == 0 {
			req.LifeExpectancy = life.DefaultLifeExpectancy
		}

		errs := fieldErrors{}
		if req.Age <= 0 {
			errs.add("age", "Ensure this value is greater than 0.")
		}
		if req.LifeExpectancy <= req.Age {
			errs.add("life_expectancy", "Ensure this value is greater than age.")
		}
		if len(errs) > 0 {
			writeJSON(ctx, fasthttp.StatusBadRequest, errs)
			return
		}

		user, err := s.store.CreateUser(ctx, req.Age, req.LifeExpectancy)
		if err != nil {
			s.internalError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusCreated, user)
	default:
		methodNotAllowed(ctx)
	}
}

func (s *Server) handleLevel1(ctx *fasthttp.RequestCtx, userID int64) {
	if !ctx.IsPost() {
		methodNotAllowed(ctx)
		return
	}
	user, ok := s.lookupUser(ctx, userID)
	if !ok {
		return
	}

	var in life.SurvivalInputs
	if !decode(ctx, &in) {
		return
	}

	errs := fieldErrors{}
	for field, v := range map[string]float64{
		"sleep_hours_per_day":       in.SleepHoursPerDay,
		"work_hours_per_day":        in.WorkHoursPerDay,
		"work_days_per_week":        in.WorkDaysPerWeek,
		"commute_hours_per_workday": in.CommuteHoursPerWorkday,
		"daily_routine_hours":       in.DailyRoutineHours,
	} {
		if v < 0 {
			errs.add(field, "Ensure this value is greater than or equal to 0.")
		}
	}
	if len(errs) > 0 {
		writeJSON(ctx, fasthttp.StatusBadRequest, errs)
		return
	}

	result := life.ComputeSurvival(user, in)
	if err := s.store.SaveSurvival(ctx, userID, in, result); err != nil {
		s.internalError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, result)
}

func (s *Server) handleActivities(ctx *fasthttp.RequestCtx, c store.Category, userID int64) {
	if !ctx.IsGet() && !ctx.IsPost() {
		methodNotAllowed(ctx)
		return
	}
	if _, ok := s.lookupUser(ctx, userID); !ok {
		return
	}

	if ctx.IsGet() {
		activities, err := s.store.ListActivities(ctx, c, userID, true)
		if err != nil {
			s.internalError(ctx, err)
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, activities)
		return
	}

	var req remote.ActivityRequest
	if !decode(ctx, &req) {
		return
	}
	label := life.NormalizeLabel(req.Label)

	errs := fieldErrors{}
	if label == "" {
		errs.add("name", "This field may not be blank.")
	}
	if req.HoursPerWeek < 0 {
		errs.add("hours_per_week", "Ensure this value is greater than or equal to 0.")
	}
	if len(errs) > 0 {
		writeJSON(ctx, fasthttp.StatusBadRequest, errs)
		return
	}

	source := ""
	if c == store.Maintenance {
		source = life.SourceUser
		if life.IsMaintenancePreset(label) {
			source = life.SourcePreset
		}
	}

	activity, err := s.store.UpsertActivity(ctx, c, userID, label, req.HoursPerWeek, source)
	if err != nil {
		s.internalError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusCreated, activity)
}

func (s *Server) handleActivityUpdate(ctx *fasthttp.RequestCtx, c store.Category, userID, activityID int64) {
	if !ctx.IsPatch() {
		methodNotAllowed(ctx)
		return
	}
	if _, ok := s.lookupUser(ctx, userID); !ok {
		return
	}

	var patch remote.ActivityPatch
	if !decode(ctx, &patch) {
		return
	}
	if patch.HoursPerWeek != nil && *patch.HoursPerWeek < 0 {
		writeJSON(ctx, fasthttp.StatusBadRequest, fieldErrors{
			"hours_per_week": {"Ensure this value is greater than or equal to 0."},
		})
		return
	}

	activity, err := s.store.UpdateActivity(ctx, c, userID, activityID, store.Update{
		HoursPerWeek: patch.HoursPerWeek,
		IsActive:     patch.IsActive,
	})
	if errors.Is(err, errors.ErrNotFound) {
		writeDetail(ctx, fasthttp.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		s.internalError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, activity)
}

func (s *Server) handleSummary(ctx *fasthttp.RequestCtx, userID int64) {
	if !ctx.IsGet() {
		methodNotAllowed(ctx)
		return
	}
	if _, ok := s.lookupUser(ctx, userID); !ok {
		return
	}

	level1, err := s.store.GetSurvival(ctx, userID)
	if errors.Is(err, errors.ErrNotFound) {
		writeDetail(ctx, fasthttp.StatusBadRequest, DetailLevel1Missing)
		return
	}
	if err != nil {
		s.internalError(ctx, err)
		return
	}

	maintenance, err := s.store.ListActivities(ctx, store.Maintenance, userID, true)
	if err != nil {
		s.internalError(ctx, err)
		return
	}
	leakage, err := s.store.ListActivities(ctx, store.Leakage, userID, true)
	if err != nil {
		s.internalError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, life.Summarize(level1, maintenance, leakage))
}

// lookupUser writes a 404 and returns false when the user does not exist.
func (s *Server) lookupUser(ctx *fasthttp.RequestCtx, userID int64) (life.UserContext, bool) {
	user, err := s.store.GetUser(ctx, userID)
	if errors.Is(err, errors.ErrNotFound) {
		writeDetail(ctx, fasthttp.StatusNotFound, "Not found.")
		return life.UserContext{}, false
	}
	if err != nil {
		s.internalError(ctx, err)
		return life.UserContext{}, false
	}
	return user, true
}

func (s *Server) internalError(ctx *fasthttp.RequestCtx, err error) {
	s.logger.Error("request failed", "path", string(ctx.Path()), "error", err.Error())
	writeDetail(ctx, fasthttp.StatusInternalServerError, "A server error occurred.")
}

func pathID(ctx *fasthttp.RequestCtx, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeDetail(ctx, fasthttp.StatusNotFound, "Not found.")
		return 0, false
	}
	return id, true
}

func decode(ctx *fasthttp.RequestCtx, v any) bool {
	body := ctx.PostBody()
	if len(body) == 0 {
		body = []byte("{}")
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeDetail(ctx, fasthttp.StatusBadRequest, "JSON parse error - "+err.Error())
		return false
	}
	return true
}

func methodNotAllowed(ctx *fasthttp.RequestCtx) {
	writeDetail(ctx, fasthttp.StatusMethodNotAllowed, "Method \""+string(ctx.Method())+"\" not allowed.")
}

func writeDetail(ctx *fasthttp.RequestCtx, status int, detail string) {
	writeJSON(ctx, status, remote.ErrorBody{Detail: detail})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.Error("encode response", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
