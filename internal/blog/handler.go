package blog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/bloghub/internal/auth"
	"github.com/2beens/bloghub/internal/errs"
	"github.com/2beens/bloghub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type newBlogRequest struct {
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Tags        tagsInput `json:"tags"`
}

type newCommentRequest struct {
	Sentiment   string `json:"sentiment"`
	Description string `json:"description"`
}

type searchRequest struct {
	Tag string `json:"tag"`
}

// tagsInput accepts both "go, rust" and ["go", "rust"].
type tagsInput []string

func (t *tagsInput) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = list
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.New("tags must be a string or a list of strings")
	}
	*t = tagsInput(ParseTags(raw))
	return nil
}

// route names; the session middleware protects routes by name
const (
	RouteCreateBlog    = "create-blog"
	RouteCreateComment = "create-comment"
	RouteMyBlogs       = "my-blogs"
)

type Handler struct {
	guard *Guard
}

func NewHandler(guard *Guard) *Handler {
	return &Handler{
		guard: guard,
	}
}

// SetupRoutes registers the blog routes on a router prefixed with /api/blog.
// The write middlewares wrap only the create endpoints.
func (h *Handler) SetupRoutes(router *mux.Router, writeMiddlewares ...mux.MiddlewareFunc) {
	write := func(handlerFunc http.HandlerFunc) http.Handler {
		var handler http.Handler = handlerFunc
		for i := len(writeMiddlewares) - 1; i >= 0; i-- {
			handler = writeMiddlewares[i](handler)
		}
		return handler
	}

	router.Handle("/create", write(h.handleCreateBlog)).Methods("POST", "OPTIONS").Name(RouteCreateBlog)
	router.Handle("/{id:[0-9]+}/comment", write(h.handleCreateComment)).Methods("POST", "OPTIONS").Name(RouteCreateComment)
	router.HandleFunc("/search", h.handleSearch).Methods("GET", "POST").Name("search-blogs")
	router.HandleFunc("/my-blogs", h.handleMyBlogs).Methods("GET").Name(RouteMyBlogs)
	router.HandleFunc("/user/{username}", h.handleUserBlogs).Methods("GET").Name("user-blogs")
	router.HandleFunc("/{id:[0-9]+}", h.handleGetBlog).Methods("GET").Name("get-blog")
}

func (h *Handler) handleCreateBlog(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		pkg.WriteJSONError(w, "please log in first before attempting to post", http.StatusUnauthorized)
		return
	}

	var req newBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("new blog, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	newBlog, err := h.guard.CreateBlog(r.Context(), username, req.Subject, req.Description, req.Tags)
	if err != nil {
		writeError(w, "create blog", err)
		return
	}

	pkg.WriteJSON(w, newBlog, http.StatusCreated)
}

func (h *Handler) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		pkg.WriteJSONError(w, "please log in first before attempting to comment", http.StatusUnauthorized)
		return
	}

	blogID, err := blogIDFromPath(r)
	if err != nil {
		writeError(w, "create comment", err)
		return
	}

	var req newCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("new comment, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.guard.CreateComment(r.Context(), username, blogID, req.Sentiment, req.Description)
	if err != nil {
		writeError(w, "create comment", err)
		return
	}

	pkg.WriteJSON(w, comment, http.StatusCreated)
}

func (h *Handler) handleGetBlog(w http.ResponseWriter, r *http.Request) {
	blogID, err := blogIDFromPath(r)
	if err != nil {
		writeError(w, "get blog", err)
		return
	}

	b, err := h.guard.GetBlog(r.Context(), blogID)
	if err != nil {
		writeError(w, "get blog", err)
		return
	}

	pkg.WriteJSON(w, b, http.StatusOK)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	if r.Method == http.MethodPost {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Errorf("search blogs, unmarshal json params: %s", err)
			pkg.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
			return
		}
		tag = req.Tag
	}

	blogs, err := h.guard.SearchBlogsByTag(r.Context(), tag)
	if err != nil {
		writeError(w, "search blogs", err)
		return
	}

	pkg.WriteJSON(w, blogs, http.StatusOK)
}

func (h *Handler) handleMyBlogs(w http.ResponseWriter, r *http.Request) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		pkg.WriteJSONError(w, "please log in first", http.StatusUnauthorized)
		return
	}
	h.writeUserBlogs(w, r, username)
}

func (h *Handler) handleUserBlogs(w http.ResponseWriter, r *http.Request) {
	h.writeUserBlogs(w, r, mux.Vars(r)["username"])
}

func (h *Handler) writeUserBlogs(w http.ResponseWriter, r *http.Request, username string) {
	blogs, err := h.guard.ListBlogsByUser(r.Context(), username)
	if err != nil {
		writeError(w, "list user blogs", err)
		return
	}
	pkg.WriteJSON(w, blogs, http.StatusOK)
}

func blogIDFromPath(r *http.Request) (int64, error) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, errs.Validation("blog_id", fmt.Sprintf("not a number: %s", idStr))
	}
	return id, nil
}

func writeError(w http.ResponseWriter, op string, err error) {
	status := errs.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
	} else {
		log.Tracef("%s rejected: %s", op, err)
	}
	pkg.WriteJSONError(w, errs.PublicMessage(err), status)
}
