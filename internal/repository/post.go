// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"math"
	"strings"
	"time"

	"cineverse/internal/cache"
	"cineverse/internal/models"

	"gorm.io/gorm"
)

// Viewer describes the requester for visibility filtering. GroupIDs holds the
// ids of groups where the viewer has an ACTIVE membership.
type Viewer struct {
	UserID       uint
	IsSuperAdmin bool
	GroupIDs     []uint
}

// Anonymous reports whether the viewer carries no session.
func (v Viewer) Anonymous() bool {
	return v.UserID == 0
}

// TimeWindow restricts a listing to posts created within a rolling window.
type TimeWindow string

const (
	WindowAll       TimeWindow = "all"
	WindowToday     TimeWindow = "today"
	WindowThisWeek  TimeWindow = "this_week"
	WindowThisMonth TimeWindow = "this_month"
)

// ListPostsParams are the composable AND filters for the catalog listing.
// Zero values mean "not filtered". AsOf anchors the time window so the same
// request replays deterministically.
type ListPostsParams struct {
	Page           int
	Limit          int
	Type           models.PostType
	Genres         []string
	YearMin        int
	YearMax        int
	RatingMin      float64
	RatingMax      float64
	HasRatingRange bool
	Window         TimeWindow
	AsOf           time.Time
	AuthorID       uint
	IncludePrivate bool
	SortField      string
	SortDir        string
}

// PostPage is one page of a listing plus its pagination envelope.
type PostPage struct {
	Items      []*models.Post `json:"items"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, viewer Viewer) (*models.Post, error)
	List(ctx context.Context, viewer Viewer, params ListPostsParams) (*PostPage, error)
	ListBySeries(ctx context.Context, seriesID uint, viewer Viewer) ([]*models.Post, error)
	UpdateStatus(ctx context.Context, id uint, status models.PostStatus) error
	HardDelete(ctx context.Context, id uint) error
	ReplaceMediaLinks(ctx context.Context, postID uint, links []models.MediaLink) error
	UpdateWithMediaLinks(ctx context.Context, post *models.Post, links []models.MediaLink) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	post.Genres = JoinGenres(post.GenreList)
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidatePostsList(ctx)
	}
	return err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	post.Genres = JoinGenres(post.GenreList)
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint, viewer Viewer) (*models.Post, error) {
	var post models.Post

	fetch := func() error {
		return r.applyPostDetails(r.db.WithContext(ctx), viewer.UserID).
			Preload("Author").
			Preload("Group").
			Preload("Series").
			First(&post, id).Error
	}

	var err error
	if viewer.Anonymous() {
		err = cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}

	post.GenreList = SplitGenres(post.Genres)
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, viewer Viewer, params ListPostsParams) (*PostPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 20
	}

	base := r.db.WithContext(ctx).Model(&models.Post{})
	base = applyVisibility(base, viewer, params)
	base = applyFilters(base, params)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []*models.Post
	query := r.applyPostDetails(base.Session(&gorm.Session{}), viewer.UserID).
		Preload("Author").
		Preload("Group")
	err := applySort(query, params.SortField, params.SortDir).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		p.GenreList = SplitGenres(p.Genres)
	}

	return &PostPage{
		Items:      posts,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (r *postRepository) ListBySeries(ctx context.Context, seriesID uint, viewer Viewer) ([]*models.Post, error) {
	var posts []*models.Post
	query := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("series_id = ?", seriesID)
	query = applyVisibility(query, viewer, ListPostsParams{})
	err := r.applyPostDetails(query, viewer.UserID).
		Preload("Author").
		Order("order_in_series ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		p.GenreList = SplitGenres(p.Genres)
	}
	return posts, nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, id uint, status models.PostStatus) error {
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err == nil {
		cache.InvalidatePost(ctx, id)
	}
	return err
}

// HardDelete removes the post and everything referencing it in one
// transaction. Poster file removal is the caller's concern and happens after
// the transaction commits.
func (r *postRepository) HardDelete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.FavoritePost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Subtitle{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.MediaLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err == nil {
		cache.InvalidatePost(ctx, id)
	}
	return err
}

func (r *postRepository) ReplaceMediaLinks(ctx context.Context, postID uint, links []models.MediaLink) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceMediaLinks(tx, postID, links)
	})
	if err == nil {
		cache.Invalidate(ctx, cache.PostKey(postID))
	}
	return err
}

// UpdateWithMediaLinks saves the post row and replaces its media links in a
// single transaction, so a failed link write never leaves an updated post
// with stale links.
func (r *postRepository) UpdateWithMediaLinks(ctx context.Context, post *models.Post, links []models.MediaLink) error {
	post.Genres = JoinGenres(post.GenreList)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		return replaceMediaLinks(tx, post.ID, links)
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func replaceMediaLinks(tx *gorm.DB, postID uint, links []models.MediaLink) error {
	if err := tx.Where("post_id = ?", postID).Delete(&models.MediaLink{}).Error; err != nil {
		return err
	}
	for i := range links {
		links[i].ID = 0
		links[i].PostID = postID
	}
	if len(links) == 0 {
		return nil
	}
	return tx.Create(&links).Error
}

// applyVisibility builds the role-dependent predicate. An author-scoped
// listing replaces the status part for the author themselves or a
// SUPER_ADMIN (the service layer guarantees IncludePrivate is only set for
// those two); every other requester keeps the full audience predicate.
func applyVisibility(db *gorm.DB, viewer Viewer, params ListPostsParams) *gorm.DB {
	if params.AuthorID != 0 {
		db = db.Where("posts.author_id = ?", params.AuthorID)
		if viewer.IsSuperAdmin || (!viewer.Anonymous() && viewer.UserID == params.AuthorID) {
			if params.IncludePrivate {
				return db.Where("posts.status <> ?", models.PostStatusPendingDeletion)
			}
			return db.Where("posts.status = ?", models.PostStatusPublished)
		}
		return audienceClause(db.Where("posts.status = ?", models.PostStatusPublished), viewer)
	}

	if viewer.IsSuperAdmin {
		return db
	}
	return audienceClause(db.Where("posts.status = ?", models.PostStatusPublished), viewer)
}

// audienceClause restricts to posts the viewer's group memberships allow:
// PUBLIC for everyone, GROUP_ONLY inside the viewer's groups.
func audienceClause(db *gorm.DB, viewer Viewer) *gorm.DB {
	if len(viewer.GroupIDs) == 0 {
		return db.Where("posts.visibility = ?", models.VisibilityPublic)
	}
	return db.Where(
		"posts.visibility = ? OR (posts.visibility = ? AND posts.group_id IN ?)",
		models.VisibilityPublic, models.VisibilityGroupOnly, viewer.GroupIDs,
	)
}

func applyFilters(db *gorm.DB, params ListPostsParams) *gorm.DB {
	if params.Type != "" {
		db = db.Where("posts.type = ?", params.Type)
	}
	if len(params.Genres) > 0 {
		clause, args := genreOverlap(params.Genres)
		db = db.Where(clause, args...)
	}
	if params.YearMin != 0 {
		db = db.Where("posts.year >= ?", params.YearMin)
	}
	if params.YearMax != 0 {
		db = db.Where("posts.year <= ?", params.YearMax)
	}
	if params.HasRatingRange {
		db = db.Where("posts.imdb_rating >= ? AND posts.imdb_rating <= ?", params.RatingMin, params.RatingMax)
	}
	if since, ok := windowStart(params.Window, params.AsOf); ok {
		db = db.Where("posts.created_at >= ?", since)
	}
	return db
}

// genreOverlap matches posts sharing at least one genre with the filter set.
// Genres are stored comma-joined, so each candidate is matched against the
// delimited column; the expression is valid on both PostgreSQL and SQLite.
func genreOverlap(genres []string) (string, []interface{}) {
	clauses := make([]string, 0, len(genres))
	args := make([]interface{}, 0, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		clauses = append(clauses, "(',' || posts.genres || ',') LIKE ?")
		args = append(args, "%,"+g+",%")
	}
	if len(clauses) == 0 {
		return "1 = 1", nil
	}
	return "(" + strings.Join(clauses, " OR ") + ")", args
}

func windowStart(window TimeWindow, asOf time.Time) (time.Time, bool) {
	if asOf.IsZero() {
		return time.Time{}, false
	}
	switch window {
	case WindowToday:
		y, m, d := asOf.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, asOf.Location()), true
	case WindowThisWeek:
		return asOf.AddDate(0, 0, -7), true
	case WindowThisMonth:
		return asOf.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

// applySort enforces the sort allow-list. Anything outside it silently falls
// back to the default ordering.
func applySort(db *gorm.DB, field, dir string) *gorm.DB {
	column := ""
	switch field {
	case "updated_at":
		column = "posts.updated_at"
	case "imdb_rating":
		column = "posts.imdb_rating"
	}
	direction := ""
	switch strings.ToLower(dir) {
	case "asc":
		direction = "ASC"
	case "desc":
		direction = "DESC"
	}
	if column == "" || direction == "" {
		return db.Order("posts.updated_at DESC")
	}
	return db.Order(column + " " + direction)
}

// applyPostDetails adds subqueries to fetch counts and the viewer's reaction
// flags in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'like') as likes_count, " +
		"(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.kind = 'dislike') as dislikes_count, " +
		"(SELECT COUNT(*) FROM favorite_posts WHERE favorite_posts.post_id = posts.id) as favorites_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM reactions WHERE reactions.post_id = posts.id AND reactions.user_id = ? AND reactions.kind = 'like') as liked"+
			", EXISTS(SELECT 1 FROM reactions WHERE reactions.post_id = posts.id AND reactions.user_id = ? AND reactions.kind = 'dislike') as disliked"+
			", EXISTS(SELECT 1 FROM favorite_posts WHERE favorite_posts.post_id = posts.id AND favorite_posts.user_id = ?) as favorited",
			currentUserID, currentUserID, currentUserID)
	}

	return db.Select(selectQuery + ", 0 as liked, 0 as disliked, 0 as favorited")
}

// SplitGenres converts the stored comma-joined column into the business-level
// genre set. Split/join happens only at this boundary.
func SplitGenres(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinGenres is the inverse of SplitGenres.
func JoinGenres(genres []string) string {
	cleaned := make([]string, 0, len(genres))
	for _, g := range genres {
		if trimmed := strings.TrimSpace(g); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, ",")
}
