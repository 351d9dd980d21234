package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"journal/app/services"

	"github.com/gorilla/mux"
)

// CategoryController handles HTTP requests for categories
type CategoryController struct {
	categoryService *services.CategoryService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService *services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// Index handles listing all categories
func (cc *CategoryController) Index(w http.ResponseWriter, r *http.Request) {
	categories, err := cc.categoryService.ListCategories()
	if err != nil {
		sendTypedError(w, err, "")
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

// Create handles creating a new category
func (cc *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	category, err := cc.categoryService.CreateCategory(req.Name)
	if err != nil {
		sendTypedError(w, err, "Name must be unique!")
		return
	}

	sendJSON(w, http.StatusCreated, category)
}

// Attach handles linking a category to a post
func (cc *CategoryController) Attach(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.Atoi(vars["postId"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return
	}
	categoryID, err := strconv.Atoi(vars["categoryId"])
	if err != nil {
		sendError(w, "Invalid category ID", http.StatusBadRequest)
		return
	}

	if err := cc.categoryService.AttachCategory(postID, categoryID); err != nil {
		sendTypedError(w, err, "Category already attached!")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
