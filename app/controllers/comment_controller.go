package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"journal/app/auth"
	"journal/app/middleware"
	"journal/app/repositories"
	"journal/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
	users          repositories.UserRepository
	gate           *auth.Service
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, users repositories.UserRepository, gate *auth.Service) *CommentController {
	return &CommentController{
		commentService: commentService,
		users:          users,
		gate:           gate,
	}
}

type commentRequest struct {
	Thoughts string `json:"thoughts"`
}

// Index handles listing all comments for a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.Atoi(vars["postId"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	comments, err := cc.commentService.ListPostComments(postID)
	if err != nil {
		sendTypedError(w, err, "")
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"comments": comments})
}

// Create handles adding a comment to a post. The author is the session
// identity, not anything taken from the request body.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.Atoi(vars["postId"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	username, ok := cc.gate.Identity(middleware.TokenFromRequest(r))
	if !ok {
		sendError(w, "Forbidden", http.StatusForbidden)
		return
	}
	author, err := cc.users.FindByUsername(username)
	if err != nil {
		sendTypedError(w, err, "")
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	comment, err := cc.commentService.AddComment(postID, author.ID, req.Thoughts)
	if err != nil {
		sendTypedError(w, err, "")
		return
	}

	sendJSON(w, http.StatusCreated, comment)
}
