package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/kristjin/posts/internal/instrumentation"
	"github.com/kristjin/posts/internal/middleware"
	"github.com/kristjin/posts/pkg"
)

type postsRepo interface {
	Add(ctx context.Context, post *Post) error
	Get(ctx context.Context, id int) (*Post, error)
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filter Filter) ([]*Post, error)
}

type Handler struct {
	repo  postsRepo
	instr *instrumentation.Instrumentation
}

func NewHandler(repo postsRepo, instr *instrumentation.Instrumentation) *Handler {
	return &Handler{
		repo:  repo,
		instr: instr,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	postsRouter := router.PathPrefix("/posts").Subrouter()
	postsRouter.Use(middleware.ContentNegotiation())
	postsRouter.HandleFunc("", handler.handleList).Methods("GET").Name("list-posts")
	postsRouter.HandleFunc("", handler.handleAdd).Methods("POST").Name("new-post")
	postsRouter.HandleFunc("/{id:[0-9]+}", handler.handleGet).Methods("GET").Name("get-post")
	postsRouter.HandleFunc("/{id:[0-9]+}", handler.handleDelete).Methods("DELETE").Name("delete-post")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filter := FilterFromQuery(r.URL.Query())

	postsList, err := handler.repo.List(r.Context(), filter)
	if err != nil {
		log.Errorf("list posts: %s", err)
		pkg.WriteJSONMessage(w, "failed to get posts", http.StatusInternalServerError)
		return
	}

	if postsList == nil {
		// an empty result is still a JSON array
		postsList = []*Post{}
	}

	pkg.WriteJSONResponse(w, postsList, http.StatusOK)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := postIdFromRequest(w, r)
	if !ok {
		return
	}

	post, err := handler.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			pkg.WriteJSONMessage(w, fmt.Sprintf("Could not find post with id %d", id), http.StatusNotFound)
			return
		}
		log.Errorf("get post %d: %s", id, err)
		pkg.WriteJSONMessage(w, "failed to get post", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, post, http.StatusOK)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Errorf("add post, read request body: %s", err)
		pkg.WriteJSONMessage(w, "failed to read request body", http.StatusInternalServerError)
		return
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// valid JSON, but not an object
			pkg.WriteJSONMessage(w, fmt.Sprintf("%s is not of type 'object'", compactJSON(body)), http.StatusUnprocessableEntity)
			return
		}
		pkg.WriteJSONMessage(w, "request body is not valid JSON", http.StatusBadRequest)
		return
	}

	if err := ValidatePostPayload(payload); err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			pkg.WriteJSONMessage(w, validationErr.Message, http.StatusUnprocessableEntity)
			return
		}
		pkg.WriteJSONMessage(w, "invalid post payload", http.StatusUnprocessableEntity)
		return
	}

	// schema validation passed, title and body are JSON strings
	newPost := &Post{}
	if err := json.Unmarshal(payload["title"], &newPost.Title); err != nil {
		log.Errorf("add post, decode title: %s", err)
		pkg.WriteJSONMessage(w, "failed to add new post", http.StatusInternalServerError)
		return
	}
	if err := json.Unmarshal(payload["body"], &newPost.Body); err != nil {
		log.Errorf("add post, decode body: %s", err)
		pkg.WriteJSONMessage(w, "failed to add new post", http.StatusInternalServerError)
		return
	}

	if err := handler.repo.Add(r.Context(), newPost); err != nil {
		log.Errorf("add new post failed: %s", err)
		pkg.WriteJSONMessage(w, "failed to add new post", http.StatusInternalServerError)
		return
	}

	handler.instr.CounterPostsCreated.Inc()
	log.Tracef("new post %d [%s] added", newPost.Id, newPost.Title)

	w.Header().Set("Location", fmt.Sprintf("/posts/%d", newPost.Id))
	pkg.WriteJSONResponse(w, newPost, http.StatusCreated)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := postIdFromRequest(w, r)
	if !ok {
		return
	}

	if err := handler.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrPostNotFound) {
			pkg.WriteJSONMessage(w, fmt.Sprintf("Could not find post with id %d", id), http.StatusNotFound)
			return
		}
		log.Errorf("delete post %d: %s", id, err)
		pkg.WriteJSONMessage(w, "failed to delete post", http.StatusInternalServerError)
		return
	}

	handler.instr.CounterPostsDeleted.Inc()
	log.Tracef("post %d deleted", id)

	pkg.WriteJSONMessage(w, fmt.Sprintf("Deleted post with id %d", id), http.StatusOK)
}

func postIdFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		pkg.WriteJSONMessage(w, "error, id invalid", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
