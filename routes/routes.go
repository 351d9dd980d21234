package routes

import (
	"net/http"

	"journal/app/auth"
	"journal/app/controllers"
	"journal/app/middleware"
	"journal/app/repositories"
	"journal/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// SetupRoutes wires the application's routes against the given Badger DB
// and returns a router. Read routes are open to anonymous visitors; every
// mutating route sits behind the change-permission gate.
func SetupRoutes(db *badger.DB) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	postRepo := repositories.NewBadgerPostRepository(db)
	userRepo := repositories.NewBadgerUserRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	categoryRepo := repositories.NewBadgerCategoryRepository(db)

	gate := auth.NewService(userRepo)

	postController := controllers.NewPostController(
		services.NewPostService(postRepo),
		services.NewCommentService(commentRepo),
	)
	commentController := controllers.NewCommentController(
		services.NewCommentService(commentRepo), userRepo, gate,
	)
	categoryController := controllers.NewCategoryController(
		services.NewCategoryService(categoryRepo),
	)
	authController := controllers.NewAuthController(gate)

	api := router.PathPrefix("/api").Subrouter()

	// Session endpoints
	api.HandleFunc("/register", authController.Register).Methods("POST")
	api.HandleFunc("/login", authController.Login).Methods("POST")
	api.HandleFunc("/logout", authController.Logout).Methods("POST")

	// Read endpoints, open to anonymous visitors
	api.HandleFunc("/posts", postController.Index).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}", postController.Show).Methods("GET")
	api.HandleFunc("/posts/{postId:[0-9]+}/comments", commentController.Index).Methods("GET")
	api.HandleFunc("/categories", categoryController.Index).Methods("GET")

	// Change endpoints, authenticated sessions only
	change := api.NewRoute().Subrouter()
	change.Use(middleware.RequireChange(gate))
	change.HandleFunc("/posts", postController.Create).Methods("POST")
	change.HandleFunc("/posts/{id:[0-9]+}", postController.Edit).Methods("PUT")
	change.HandleFunc("/posts/{postId:[0-9]+}/comments", commentController.Create).Methods("POST")
	change.HandleFunc("/categories", categoryController.Create).Methods("POST")
	change.HandleFunc("/posts/{postId:[0-9]+}/categories/{categoryId:[0-9]+}", categoryController.Attach).Methods("PUT")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
