package query

import (
	"net/http"
	"strings"
	"time"

	"github.com/2beens/bloghub/internal/errs"
	"github.com/2beens/bloghub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{
		engine: engine,
	}
}

// SetupRoutes registers the query routes on a router prefixed with /api/query.
func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/same-day-tags", h.handleSameDayTags).Methods("GET").Name("same-day-tags")
	router.HandleFunc("/most-blogs", h.handleMostBlogs).Methods("GET").Name("most-blogs")
	router.HandleFunc("/followed-by-both", h.handleFollowedByBoth).Methods("GET").Name("followed-by-both")
	router.HandleFunc("/never-posted", h.handleNeverPosted).Methods("GET").Name("never-posted")
	router.HandleFunc("/all-positive-blogs", h.handleAllPositiveBlogs).Methods("GET").Name("all-positive-blogs")
	router.HandleFunc("/only-negative-commenters", h.handleOnlyNegativeCommenters).Methods("GET").Name("only-negative-commenters")
	router.HandleFunc("/never-negative", h.handleNeverNegative).Methods("GET").Name("never-negative")
}

func (h *Handler) handleSameDayTags(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.engine.SameDayTagPair(r.Context(), q.Get("tag_a"), q.Get("tag_b"))
	writeResult(w, QuerySameDayTagPair, result, err)
}

func (h *Handler) handleMostBlogs(w http.ResponseWriter, r *http.Request) {
	var date *time.Time
	if dateStr := strings.TrimSpace(r.URL.Query().Get("date")); dateStr != "" {
		parsed, err := pkg.ParseDay(dateStr)
		if err != nil {
			writeResult(w, QueryMostBlogsOnDate, nil, errs.Validation("date", "expected format YYYY-MM-DD"))
			return
		}
		date = &parsed
	}

	result, err := h.engine.MostBlogsOnDate(r.Context(), date)
	writeResult(w, QueryMostBlogsOnDate, result, err)
}

func (h *Handler) handleFollowedByBoth(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.engine.FollowedByBoth(r.Context(), q.Get("user_x"), q.Get("user_y"))
	writeResult(w, QueryFollowedByBoth, result, err)
}

func (h *Handler) handleNeverPosted(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.NeverPosted(r.Context())
	writeResult(w, QueryNeverPosted, result, err)
}

func (h *Handler) handleAllPositiveBlogs(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.AllPositiveBlogs(r.Context(), r.URL.Query().Get("username"))
	writeResult(w, QueryAllPositiveBlogs, result, err)
}

func (h *Handler) handleOnlyNegativeCommenters(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.OnlyNegativeCommenters(r.Context())
	writeResult(w, QueryOnlyNegativeCommenters, result, err)
}

func (h *Handler) handleNeverNegative(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.BlogsNeverNegative(r.Context())
	writeResult(w, QueryBlogsNeverNegative, result, err)
}

func writeResult(w http.ResponseWriter, queryName string, result any, err error) {
	if err != nil {
		status := errs.HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Errorf("query %s: %s", queryName, err)
		}
		pkg.WriteJSONError(w, errs.PublicMessage(err), status)
		return
	}
	pkg.WriteJSON(w, result, http.StatusOK)
}
