package controllers

import "net/http"

// PageController serves the static pages
type PageController struct {
	view *Renderer
}

// NewPageController creates a new PageController
func NewPageController(view *Renderer) *PageController {
	return &PageController{view: view}
}

// About renders the about page
func (pc *PageController) About(w http.ResponseWriter, r *http.Request) {
	pc.view.Render(w, r, http.StatusOK, "about", Page{Title: "About"})
}

// Contact renders the contact page
func (pc *PageController) Contact(w http.ResponseWriter, r *http.Request) {
	pc.view.Render(w, r, http.StatusOK, "contact", Page{Title: "Contact"})
}

// NotFound renders the 404 page for unknown routes
func (pc *PageController) NotFound(w http.ResponseWriter, r *http.Request) {
	pc.view.NotFound(w, r)
}
