package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"journal/app/models"
	"journal/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for journal posts
type PostController struct {
	postService    *services.PostService
	commentService *services.CommentService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, commentService *services.CommentService) *PostController {
	return &PostController{
		postService:    postService,
		commentService: commentService,
	}
}

type postRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// postDetail is the detail projection: the post plus its comments,
// serialized side by side.
type postDetail struct {
	*models.Post
	Comments []*models.Comment `json:"comments"`
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts()
	if err != nil {
		sendTypedError(w, err, "")
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// Show handles displaying a single post with its comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		sendTypedError(w, err, "")
		return
	}

	sendJSON(w, http.StatusOK, postDetail{Post: post, Comments: post.Comments})
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.postService.CreatePost(req.Title, req.Text)
	if err != nil {
		sendTypedError(w, err, "Title must be unique!")
		return
	}

	sendJSON(w, http.StatusCreated, post)
}

// Edit handles updating an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.postService.UpdatePost(id, req.Title, req.Text)
	if err != nil {
		sendTypedError(w, err, "Title must be unique!")
		return
	}

	sendJSON(w, http.StatusOK, post)
}
