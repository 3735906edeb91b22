package mock

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

type UserRepository struct {
	users  map[int]*models.User
	nextID int
	mutex  sync.RWMutex
}

type PostRepository struct {
	posts  map[int]*models.Post
	nextID int
	mutex  sync.RWMutex
}

type CommentRepository struct {
	comments map[int]*models.Comment
	nextID   int
	mutex    sync.RWMutex
}

type SessionRepository struct {
	sessions map[string]*models.Session
	mutex    sync.RWMutex
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[int]*models.User),
		nextID: 1,
	}
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[int]*models.Post),
		nextID: 1,
	}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[int]*models.Comment),
		nextID:   1,
	}
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]*models.Session)}
}

// UserRepository implementation
func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	m.nextID++
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	email = models.NormalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) Count(ctx context.Context) (int64, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return int64(len(m.users)), nil
}

func (m *UserRepository) ClaimFirstAdmin(ctx context.Context, id int) (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	user, exists := m.users[id]
	if !exists {
		return false, nil
	}
	for other := range m.users {
		if other < id {
			return false, nil
		}
	}
	user.Role = models.RoleAdmin
	return true, nil
}

func (m *UserRepository) UpdateRole(ctx context.Context, id int, role models.Role) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	user, exists := m.users[id]
	if !exists {
		return repositories.ErrNotFound
	}
	user.Role = role
	return nil
}

// PostRepository implementation
func (m *PostRepository) Create(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := post.BeforeCreate(nil); err != nil {
		return err
	}
	for _, p := range m.posts {
		if p.Title == post.Title {
			return repositories.ErrDuplicate
		}
	}
	post.ID = m.nextID
	m.nextID++
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *PostRepository) List(ctx context.Context) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	posts := make([]*models.Post, 0, len(m.posts))
	for _, post := range m.posts {
		copied := *post
		posts = append(posts, &copied)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].ID < posts[j].ID
	})
	return posts, nil
}

func (m *PostRepository) Update(ctx context.Context, post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[post.ID]; !exists {
		return repositories.ErrNotFound
	}
	for id, p := range m.posts {
		if id != post.ID && p.Title == post.Title {
			return repositories.ErrDuplicate
		}
	}
	stored := *post
	m.posts[post.ID] = &stored
	return nil
}

func (m *PostRepository) Delete(ctx context.Context, id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation
func (m *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := comment.BeforeCreate(nil); err != nil {
		return err
	}
	comment.ID = m.nextID
	m.nextID++
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) ListByPost(ctx context.Context, postID int) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.PostID == postID {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (m *CommentRepository) DeleteByPost(ctx context.Context, postID int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, comment := range m.comments {
		if comment.PostID == postID {
			delete(m.comments, id)
		}
	}
	return nil
}

// Len reports how many comments are stored across all posts.
func (m *CommentRepository) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.comments)
}

// SessionRepository implementation
func (m *SessionRepository) Create(session *models.Session) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if session.ID == "" {
		return errors.New("session id is required")
	}
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *SessionRepository) Get(id string) (*models.Session, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	session, exists := m.sessions[id]
	if !exists || !session.ExpiresAt.After(time.Now()) {
		return nil, repositories.ErrNotFound
	}
	copied := *session
	return &copied, nil
}

func (m *SessionRepository) Delete(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are stored, expired or not.
func (m *SessionRepository) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}
