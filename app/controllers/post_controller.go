package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/services"
)

type indexPage struct {
	Posts []services.PostSummary
}

type postPage struct {
	Detail *services.PostDetail
	Form   models.CommentForm
}

type postFormPage struct {
	Form    models.PostForm
	Editing bool
	Action  string
}

// PostController handles HTTP requests for blog posts and their comments
type PostController struct {
	postService    *services.PostService
	commentService *services.CommentService
	view           *Renderer
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, commentService *services.CommentService, view *Renderer) *PostController {
	return &PostController{
		postService:    postService,
		commentService: commentService,
		view:           view,
	}
}

// Index lists every post
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts(r.Context())
	if err != nil {
		pc.view.ServiceError(w, r, err)
		return
	}

	pc.view.Render(w, r, http.StatusOK, "index", Page{
		Title: "Home",
		Data:  indexPage{Posts: posts},
	})
}

// Show displays a post with its comments and accepts new comments
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		pc.view.NotFound(w, r)
		return
	}

	var form models.CommentForm
	if r.Method == http.MethodPost {
		form = commentFormFromRequest(r)
		visitor := middleware.VisitorFrom(r.Context())
		_, err := pc.commentService.CreateComment(r.Context(), visitor.User, id, form)
		if err == nil {
			http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
			return
		}
		msgs, invalid := formErrors(err)
		if !invalid {
			pc.view.ServiceError(w, r, err)
			return
		}
		pc.renderPost(w, r, http.StatusUnprocessableEntity, id, form, msgs)
		return
	}

	pc.renderPost(w, r, http.StatusOK, id, form, nil)
}

func (pc *PostController) renderPost(w http.ResponseWriter, r *http.Request, status, id int, form models.CommentForm, msgs []string) {
	detail, err := pc.postService.GetPost(r.Context(), id)
	if err != nil {
		pc.view.ServiceError(w, r, err)
		return
	}

	pc.view.Render(w, r, status, "post", Page{
		Title:  detail.Post.Title,
		Errors: msgs,
		Data:   postPage{Detail: detail, Form: form},
	})
}

// New shows the post form and publishes submitted posts
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	page := postFormPage{Action: "/new-post"}
	if r.Method != http.MethodPost {
		pc.renderForm(w, r, http.StatusOK, page, nil)
		return
	}

	page.Form = postFormFromRequest(r)
	visitor := middleware.VisitorFrom(r.Context())
	if _, err := pc.postService.CreatePost(r.Context(), visitor.User, page.Form); err != nil {
		pc.formFailure(w, r, page, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Edit shows a post pre-filled in the form and saves submitted changes
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		pc.view.NotFound(w, r)
		return
	}
	page := postFormPage{Editing: true, Action: "/edit-post/" + strconv.Itoa(id)}

	if r.Method != http.MethodPost {
		detail, err := pc.postService.GetPost(r.Context(), id)
		if err != nil {
			pc.view.ServiceError(w, r, err)
			return
		}
		page.Form = models.PostFormFrom(detail.Post)
		pc.renderForm(w, r, http.StatusOK, page, nil)
		return
	}

	page.Form = postFormFromRequest(r)
	visitor := middleware.VisitorFrom(r.Context())
	if _, err := pc.postService.UpdatePost(r.Context(), id, visitor.User, page.Form); err != nil {
		pc.formFailure(w, r, page, err)
		return
	}
	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusSeeOther)
}

// Delete removes a post and its comments
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		pc.view.NotFound(w, r)
		return
	}

	if err := pc.postService.DeletePost(r.Context(), id); err != nil {
		pc.view.ServiceError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (pc *PostController) renderForm(w http.ResponseWriter, r *http.Request, status int, page postFormPage, msgs []string) {
	title := "New Post"
	if page.Editing {
		title = "Edit Post"
	}
	pc.view.Render(w, r, status, "make-post", Page{
		Title:  title,
		Errors: msgs,
		Data:   page,
	})
}

func (pc *PostController) formFailure(w http.ResponseWriter, r *http.Request, page postFormPage, err error) {
	if msgs, invalid := formErrors(err); invalid {
		pc.renderForm(w, r, http.StatusUnprocessableEntity, page, msgs)
		return
	}
	if errors.Is(err, services.ErrDuplicateTitle) {
		pc.renderForm(w, r, http.StatusConflict, page, []string{"A post with this title already exists."})
		return
	}
	pc.view.ServiceError(w, r, err)
}
