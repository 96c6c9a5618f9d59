package models

import "time"

// PostType defines the kind of content a post describes.
type PostType string

const (
	// PostTypeMovie is a single feature film.
	PostTypeMovie PostType = "MOVIE"
	// PostTypeTVSeries is an episodic series.
	PostTypeTVSeries PostType = "TV_SERIES"
	// PostTypeOther covers everything else (shorts, documentaries, etc).
	PostTypeOther PostType = "OTHER"
)

// PostStatus defines the moderation state of a post.
type PostStatus string

const (
	// PostStatusDraft is an unsubmitted post.
	PostStatusDraft PostStatus = "DRAFT"
	// PostStatusPendingApproval awaits moderator review. Every save lands here.
	PostStatusPendingApproval PostStatus = "PENDING_APPROVAL"
	// PostStatusPublished is visible to its audience.
	PostStatusPublished PostStatus = "PUBLISHED"
	// PostStatusPendingDeletion is soft-deleted; only hard deletion follows.
	PostStatusPendingDeletion PostStatus = "PENDING_DELETION"
)

// ValidPostStatus reports whether s is one of the defined status values.
func ValidPostStatus(s PostStatus) bool {
	switch s {
	case PostStatusDraft, PostStatusPendingApproval, PostStatusPublished, PostStatusPendingDeletion:
		return true
	}
	return false
}

// ValidPostType reports whether t is one of the defined content types.
func ValidPostType(t PostType) bool {
	switch t {
	case PostTypeMovie, PostTypeTVSeries, PostTypeOther:
		return true
	}
	return false
}

// PostVisibility defines who may see a post.
type PostVisibility string

const (
	// VisibilityPublic makes a published post visible to everyone.
	VisibilityPublic PostVisibility = "PUBLIC"
	// VisibilityGroupOnly restricts a post to members of its group.
	VisibilityGroupOnly PostVisibility = "GROUP_ONLY"
)

// Post represents a content item (movie, series or other).
// Invariant: GroupID is non-nil if and only if Visibility is GROUP_ONLY.
type Post struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Type        PostType       `gorm:"type:varchar(20);not null;default:'MOVIE';index" json:"type"`
	Status      PostStatus     `gorm:"type:varchar(20);not null;default:'PENDING_APPROVAL';index" json:"status"`
	Visibility  PostVisibility `gorm:"type:varchar(20);not null;default:'PUBLIC'" json:"visibility"`
	GroupID     *uint          `gorm:"index" json:"group_id,omitempty"`
	Group       *Group         `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	Author      User           `gorm:"foreignKey:AuthorID" json:"author"`
	Year        int            `json:"year"`
	// Genres is stored comma-joined; business logic only ever sees []string
	// through the repository's split/join boundary.
	Genres        string   `gorm:"column:genres" json:"-"`
	GenreList     []string `gorm:"-" json:"genres"`
	IMDbRating    float64  `gorm:"column:imdb_rating" json:"imdb_rating"`
	PosterURL     string   `json:"poster_url"`
	SeriesID      *uint    `gorm:"index" json:"series_id,omitempty"`
	Series        *Series  `gorm:"foreignKey:SeriesID" json:"series,omitempty"`
	OrderInSeries int      `json:"order_in_series"`
	// Computed at query time, never persisted.
	LikesCount     int       `gorm:"->" json:"likes_count"`
	DislikesCount  int       `gorm:"->" json:"dislikes_count"`
	FavoritesCount int       `gorm:"->" json:"favorites_count"`
	Liked          bool      `gorm:"->" json:"liked"`
	Disliked       bool      `gorm:"->" json:"disliked"`
	Favorited      bool      `gorm:"->" json:"favorited"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Series is an ordered collection of posts (seasons, trilogies, ...).
type Series struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MediaLink points at a playable or downloadable rendition of a post.
type MediaLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Quality   string    `gorm:"size:20" json:"quality"`
	URL       string    `gorm:"not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// Subtitle is an uploaded subtitle file attached to a post.
type Subtitle struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	Language   string    `gorm:"size:40;not null" json:"language"`
	FileURL    string    `gorm:"not null" json:"file_url"`
	UploaderID uint      `gorm:"not null" json:"uploader_id"`
	Uploader   *User     `gorm:"foreignKey:UploaderID" json:"uploader,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
