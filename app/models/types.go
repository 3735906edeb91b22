package models

import "time"

// Role is the access level of an account.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// User represents a registered account.
type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email" validate:"required,email,max=100"`
	Password  string    `gorm:"size:100;not null" json:"-" validate:"required"`
	Name      string    `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Role      Role      `gorm:"size:16;not null;default:member" json:"role" validate:"oneof=admin member"`
	CreatedAt time.Time `json:"created_at"`
}

// Post represents a blog post. Comments are owned by the post and go away with it.
type Post struct {
	ID       int        `gorm:"primaryKey" json:"id"`
	AuthorID int        `gorm:"index;not null" json:"author_id" validate:"required,gt=0"`
	Author   *User      `gorm:"foreignKey:AuthorID" json:"-" validate:"-"`
	Title    string     `gorm:"size:250;uniqueIndex;not null" json:"title" validate:"required,max=250"`
	Subtitle string     `gorm:"size:250;not null" json:"subtitle" validate:"required,max=250"`
	Date     string     `gorm:"size:250;not null" json:"date" validate:"required"`
	Body     string     `gorm:"type:text;not null" json:"body" validate:"required"`
	ImgURL   string     `gorm:"column:img_url;size:250;not null" json:"img_url" validate:"required,url,max=250"`
	Comments []*Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty" validate:"-"`
}

// Comment represents a comment on a blog post.
type Comment struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	AuthorID  int       `gorm:"index;not null" json:"author_id" validate:"required,gt=0"`
	Author    *User     `gorm:"foreignKey:AuthorID" json:"-" validate:"-"`
	PostID    int       `gorm:"index;not null" json:"post_id" validate:"required,gt=0"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	Text      string    `gorm:"type:text;not null" json:"text" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the server-side half of a login. The client only holds a signed
// reference to it.
type Session struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
