package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"inkwell/app/models"
)

func isValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

// postID reads the {id} path variable
func postID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func postFormFromRequest(r *http.Request) models.PostForm {
	return models.PostForm{
		Title:    r.PostFormValue("title"),
		Subtitle: r.PostFormValue("subtitle"),
		ImgURL:   r.PostFormValue("img_url"),
		Body:     r.PostFormValue("body"),
	}
}

func registerFormFromRequest(r *http.Request) models.RegisterForm {
	return models.RegisterForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
}

func loginFormFromRequest(r *http.Request) models.LoginForm {
	return models.LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
}

func commentFormFromRequest(r *http.Request) models.CommentForm {
	return models.CommentForm{Text: r.PostFormValue("text")}
}
