// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"cineverse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// seedPassword is the shared demo credential so seeded accounts are usable.
const seedPassword = "password123"

var seedPasswordHash string

func init() {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	seedPasswordHash = string(hash)
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: seedPasswordHash,
		Role:     models.RoleUser,
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}
	for _, override := range overrides {
		override(user)
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateGroup persists a sample group with a unique slug.
func (f *Factory) CreateGroup(creator *models.User, overrides ...func(*models.Group)) (*models.Group, error) {
	group := &models.Group{
		Name:        gofakeit.Company() + " Film Club",
		Slug:        fmt.Sprintf("club-%s", gofakeit.LetterN(8)),
		Description: gofakeit.Sentence(12),
		Status:      models.GroupStatusActive,
	}
	if creator != nil {
		group.CreatedByUserID = &creator.ID
	}
	for _, override := range overrides {
		override(group)
	}
	if err := f.db.Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// AddMember persists a membership row.
func (f *Factory) AddMember(group *models.Group, user *models.User, status models.GroupMemberStatus) error {
	member := &models.GroupMember{
		GroupID: group.ID,
		UserID:  user.ID,
		Role:    models.GroupRoleMember,
		Status:  status,
	}
	return f.db.Create(member).Error
}

// CreateSeries persists a sample series.
func (f *Factory) CreateSeries(overrides ...func(*models.Series)) (*models.Series, error) {
	series := &models.Series{
		Title:       gofakeit.MovieName() + " Saga",
		Description: gofakeit.Sentence(15),
	}
	for _, override := range overrides {
		override(series)
	}
	if err := f.db.Create(series).Error; err != nil {
		return nil, err
	}
	return series, nil
}

// CreatePost constructs and persists a sample post with a realistic
// created_at spread over the last 90 days.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	genres := []string{gofakeit.MovieGenre()}
	if f.rand.Intn(2) == 0 {
		genres = append(genres, gofakeit.MovieGenre())
	}
	post := &models.Post{
		Title:       gofakeit.MovieName(),
		Description: gofakeit.Paragraph(1, 3, 8, "\n"),
		Type:        models.PostTypeMovie,
		Status:      models.PostStatusPublished,
		Visibility:  models.VisibilityPublic,
		AuthorID:    author.ID,
		Year:        gofakeit.Number(1950, 2025),
		Genres:      joinGenres(genres),
		IMDbRating:  float64(gofakeit.Number(30, 95)) / 10,
		PosterURL:   fmt.Sprintf("https://picsum.photos/seed/%s/400/600", gofakeit.UUID()),
	}
	daysBack := f.rand.Intn(90)
	hoursBack := f.rand.Intn(24)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)
	post.UpdatedAt = post.CreatedAt

	for _, override := range overrides {
		override(post)
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func joinGenres(genres []string) string {
	out := ""
	for i, g := range genres {
		if i > 0 {
			out += ","
		}
		out += g
	}
	return out
}

// CreateReview persists a review. Pass a parent to create a reply; replies
// never carry a rating.
func (f *Factory) CreateReview(user *models.User, post *models.Post, parent *models.Review) (*models.Review, error) {
	review := &models.Review{
		PostID:  post.ID,
		UserID:  user.ID,
		Comment: gofakeit.Sentence(gofakeit.Number(5, 20)),
	}
	if parent != nil {
		review.ParentID = &parent.ID
	} else {
		review.Rating = gofakeit.Number(1, 10)
	}
	if err := f.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// React persists a like or dislike.
func (f *Factory) React(user *models.User, post *models.Post, kind models.ReactionKind) error {
	return f.db.Create(&models.Reaction{UserID: user.ID, PostID: post.ID, Kind: kind}).Error
}

// Favorite adds the post to the user's favorites list.
func (f *Factory) Favorite(user *models.User, post *models.Post) error {
	return f.db.Create(&models.FavoritePost{UserID: user.ID, PostID: post.ID}).Error
}

// CreateSubtitle persists a subtitle reference for the post.
func (f *Factory) CreateSubtitle(uploader *models.User, post *models.Post) (*models.Subtitle, error) {
	sub := &models.Subtitle{
		PostID:     post.ID,
		Language:   gofakeit.Language(),
		FileURL:    fmt.Sprintf("https://subs.example.com/%s.srt", gofakeit.UUID()),
		UploaderID: uploader.ID,
	}
	if err := f.db.Create(sub).Error; err != nil {
		return nil, err
	}
	return sub, nil
}

// CreateMediaLinks persists a set of quality-tagged links for the post.
func (f *Factory) CreateMediaLinks(post *models.Post) error {
	qualities := []string{"720p", "1080p", "2160p"}
	count := 1 + f.rand.Intn(len(qualities))
	for i := 0; i < count; i++ {
		link := &models.MediaLink{
			PostID:  post.ID,
			Quality: qualities[i],
			URL:     fmt.Sprintf("https://cdn.example.com/%s/%s", qualities[i], gofakeit.UUID()),
		}
		if err := f.db.Create(link).Error; err != nil {
			return err
		}
	}
	return nil
}
