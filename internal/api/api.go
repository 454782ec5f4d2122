// Package api serves stored places over a read-only JSON HTTP API.
package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/safety-cli/internal/geo"
	"github.com/sells-group/safety-cli/internal/model"
	"github.com/sells-group/safety-cli/internal/store"
)

// Query defaults.
const (
	DefaultLimit    = 50
	MaxLimit        = 500
	DefaultRadiusKM = 5.0
)

// Envelope wraps every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Meta    any    `json:"meta,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NearbyPlace is a place with its distance from the query point.
type NearbyPlace struct {
	model.Place
	DistanceKM float64 `json:"distance_km"`
}

// Center is the query point of a nearby search.
type Center struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NearbyMeta describes a nearby search.
type NearbyMeta struct {
	Count    int     `json:"count"`
	Center   Center  `json:"center"`
	RadiusKM float64 `json:"radius"`
}

// ListMeta describes a place listing.
type ListMeta struct {
	Count int `json:"count"`
}

type server struct {
	store store.Store
}

// NewRouter builds the HTTP handler for st.
func NewRouter(st store.Store, corsOrigins []string) http.Handler {
	s := &server{store: st}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/places", s.listPlaces)
		r.Get("/places/{id}", s.getPlace)
		r.Get("/nearby", s.nearby)
	})
	return r
}

func (s *server) listPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q.Get("limit"), DefaultLimit)
	if err != nil || limit <= 0 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	limit = min(limit, MaxLimit)
	minScore, err := floatParam(q.Get("min_score"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "min_score must be a number")
		return
	}

	places, err := s.store.ListPlaces(r.Context(), store.PlaceFilter{MinScore: minScore, Limit: limit})
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: places, Meta: ListMeta{Count: len(places)}})
}

func (s *server) getPlace(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.GetPlace(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "place not found")
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: d})
}

func (s *server) nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("lat") == "" || q.Get("lng") == "" {
		writeError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}
	lat, err := floatParam(q.Get("lat"), 0)
	if err != nil || lat < -90 || lat > 90 {
		writeError(w, http.StatusBadRequest, "lat must be a number between -90 and 90")
		return
	}
	lng, err := floatParam(q.Get("lng"), 0)
	if err != nil || lng < -180 || lng > 180 {
		writeError(w, http.StatusBadRequest, "lng must be a number between -180 and 180")
		return
	}
	radius, err := floatParam(q.Get("radius"), DefaultRadiusKM)
	if err != nil || radius <= 0 {
		writeError(w, http.StatusBadRequest, "radius must be a positive number")
		return
	}

	places, err := s.store.ListPlaces(r.Context(), store.PlaceFilter{})
	if err != nil {
		internalError(w, r, err)
		return
	}

	out := []NearbyPlace{}
	for _, p := range places {
		d := geo.HaversineKM(lat, lng, p.Lat, p.Lng)
		if d <= radius {
			out = append(out, NearbyPlace{Place: p, DistanceKM: math.Round(d*100) / 100})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DistanceKM < out[j].DistanceKM })

	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    out,
		Meta:    NearbyMeta{Count: len(out), Center: Center{Lat: lat, Lng: lng}, RadiusKM: radius},
	})
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func floatParam(v string, def float64) (float64, error) {
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err == nil && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return 0, strconv.ErrSyntax
	}
	return f, err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("api: write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Envelope{Success: false, Error: msg})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	zap.L().Error("api: request failed",
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Debug("api: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
