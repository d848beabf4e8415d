package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router builds the application's route table.
func (a *App) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)

	router.Use(a.SessionMiddleware)

	fs := http.FileServer(http.Dir("./static"))
	router.PathPrefix("/static/").Handler(
		cacheControlHandler(http.StripPrefix("/static/", fs), "public, max-age=86400"))

	router.HandleFunc("/", a.HomeHandler).Methods("GET")

	// Special pages are personalized; keep them out of shared caches.
	router.HandleFunc("/wiki/Special:{page}", noStore(a.SpecialPageHandler)).Methods("GET")

	router.HandleFunc("/wiki/{page}", a.PageDispatcher).Methods("GET", "POST")

	router.HandleFunc("/user/register", a.RegisterHandler).Methods("GET")
	router.HandleFunc("/user/register", a.RegisterPostHandler).Methods("POST")
	router.HandleFunc("/user/login", a.LoginHandler).Methods("GET")
	router.HandleFunc("/user/login", a.LoginPostHandler).Methods("POST")
	router.HandleFunc("/user/logout", a.LogoutPostHandler).Methods("POST")

	return router
}
