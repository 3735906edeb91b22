package models

// RegisterForm is submitted by the sign-up page.
type RegisterForm struct {
	Name     string `form:"name" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email,max=100"`
	Password string `form:"password" validate:"required,passwordlen"`
}

// LoginForm is submitted by the login page.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// PostForm is shared by the create and edit pages.
type PostForm struct {
	Title    string `form:"title" validate:"required,max=250"`
	Subtitle string `form:"subtitle" validate:"required,max=250"`
	ImgURL   string `form:"img_url" validate:"required,url,max=250"`
	Body     string `form:"body" validate:"required"`
}

// CommentForm is the comment box under a post.
type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

// PostFormFrom pre-fills a form with a stored post.
func PostFormFrom(p *Post) PostForm {
	return PostForm{
		Title:    p.Title,
		Subtitle: p.Subtitle,
		ImgURL:   p.ImgURL,
		Body:     p.Body,
	}
}
