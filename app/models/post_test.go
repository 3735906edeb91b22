package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validPost() *Post {
	return &Post{
		ID:       1,
		AuthorID: 1,
		Title:    "The Life of Cactus",
		Subtitle: "Who knew that cacti lived such interesting lives.",
		Date:     "October 19, 2026",
		Body:     "<p>Nori grape silver beet broccoli kombu beet greens fava bean potato quandong celery.</p>",
		ImgURL:   "https://images.unsplash.com/photo-1530482054429-cc491f61333b",
	}
}

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Post)
		wantErr bool
	}{
		{
			name:    "valid post",
			mutate:  func(p *Post) {},
			wantErr: false,
		},
		{
			name:    "missing title",
			mutate:  func(p *Post) { p.Title = "" },
			wantErr: true,
		},
		{
			name:    "missing author",
			mutate:  func(p *Post) { p.AuthorID = 0 },
			wantErr: true,
		},
		{
			name:    "image is not a url",
			mutate:  func(p *Post) { p.ImgURL = "cactus.jpg" },
			wantErr: true,
		},
		{
			name:    "empty body",
			mutate:  func(p *Post) { p.Body = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := validPost()
			tt.mutate(post)
			err := post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostBeforeCreate(t *testing.T) {
	post := validPost()
	post.Date = ""

	assert.NoError(t, post.BeforeCreate(nil))
	_, err := time.Parse(DateLayout, post.Date)
	assert.NoError(t, err)
}

func TestPostApplyForm(t *testing.T) {
	post := validPost()
	post.ApplyForm(PostForm{
		Title:    "New title",
		Subtitle: "New subtitle",
		ImgURL:   "https://example.com/new.png",
		Body:     "<p>new</p>",
	})

	assert.Equal(t, "New title", post.Title)
	assert.Equal(t, "New subtitle", post.Subtitle)
	assert.Equal(t, "https://example.com/new.png", post.ImgURL)
	assert.Equal(t, "<p>new</p>", post.Body)
	assert.Equal(t, 1, post.AuthorID)
	assert.Equal(t, PostFormFrom(post).Title, "New title")
}
