package models

import (
	"time"

	"gorm.io/gorm"
)

// DateLayout is how a post's publish date is displayed and stored.
const DateLayout = "January 02, 2006"

// TableName keeps the table name the blog has always used.
func (Post) TableName() string {
	return "blog_posts"
}

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// BeforeCreate stamps the publish date if the caller did not.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.Date == "" {
		p.Date = time.Now().Format(DateLayout)
	}
	return p.Validate()
}

// ApplyForm copies the editable fields of a submitted form onto the post.
func (p *Post) ApplyForm(form PostForm) {
	p.Title = form.Title
	p.Subtitle = form.Subtitle
	p.ImgURL = form.ImgURL
	p.Body = form.Body
}
