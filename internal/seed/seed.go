package seed

import (
	"fmt"
	"log"

	"cineverse/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much demo data the seeder generates.
type Options struct {
	Users  int
	Groups int
	Posts  int
}

// DefaultOptions is a medium-sized demo dataset.
var DefaultOptions = Options{Users: 50, Groups: 5, Posts: 200}

// Seeder populates the database with demo content.
type Seeder struct {
	db *gorm.DB
	f  *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, f: NewFactory(db)}
}

// ClearAll deletes all seeded content in dependency order.
func (s *Seeder) ClearAll() error {
	tables := []interface{}{
		&models.MediaLink{},
		&models.Subtitle{},
		&models.FavoritePost{},
		&models.Reaction{},
		&models.Review{},
		&models.Post{},
		&models.GroupMember{},
		&models.Group{},
		&models.Series{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	return nil
}

// Run seeds a full demo dataset: admins, users, groups with memberships,
// a series, posts in every status and visibility, review trees, reactions,
// favorites, subtitles and media links.
func (s *Seeder) Run(opts Options) error {
	if opts.Users < 3 {
		opts.Users = 3
	}
	if opts.Groups < 1 {
		opts.Groups = 1
	}
	if opts.Posts < opts.Users {
		opts.Posts = opts.Users
	}

	users, err := s.seedUsers(opts.Users)
	if err != nil {
		return err
	}
	groups, err := s.seedGroups(users, opts.Groups)
	if err != nil {
		return err
	}
	series, err := s.f.CreateSeries()
	if err != nil {
		return err
	}
	posts, err := s.seedPosts(users, groups, series, opts.Posts)
	if err != nil {
		return err
	}
	if err := s.seedEngagement(users, posts); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d groups, %d posts", len(users), len(groups), len(posts))
	return nil
}

func (s *Seeder) seedUsers(count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	admin, err := s.f.CreateUser(func(u *models.User) {
		u.Username = "admin"
		u.Email = "admin@cineverse.local"
		u.Role = models.RoleSuperAdmin
	})
	if err != nil {
		return nil, err
	}
	moderator, err := s.f.CreateUser(func(u *models.User) {
		u.Username = "moderator"
		u.Email = "moderator@cineverse.local"
		u.Role = models.RoleUserAdmin
	})
	if err != nil {
		return nil, err
	}
	users = append(users, admin, moderator)

	for i := len(users); i < count; i++ {
		user, err := s.f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedGroups(users []*models.User, count int) ([]*models.Group, error) {
	groups := make([]*models.Group, 0, count)
	for i := 0; i < count; i++ {
		creator := users[gofakeit.Number(0, len(users)-1)]
		group, err := s.f.CreateGroup(creator)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)

		// Roughly a third of users join each group.
		for _, user := range users {
			if gofakeit.Number(0, 2) != 0 {
				continue
			}
			if err := s.f.AddMember(group, user, models.MemberStatusActive); err != nil {
				return nil, err
			}
		}
	}
	return groups, nil
}

func (s *Seeder) seedPosts(users []*models.User, groups []*models.Group, series *models.Series, count int) ([]*models.Post, error) {
	statuses := []models.PostStatus{
		models.PostStatusPublished,
		models.PostStatusPublished,
		models.PostStatusPublished,
		models.PostStatusPendingApproval,
		models.PostStatusDraft,
	}
	types := []models.PostType{
		models.PostTypeMovie,
		models.PostTypeMovie,
		models.PostTypeTVSeries,
		models.PostTypeOther,
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[gofakeit.Number(0, len(users)-1)]
		order := i
		post, err := s.f.CreatePost(author, func(p *models.Post) {
			p.Status = statuses[gofakeit.Number(0, len(statuses)-1)]
			p.Type = types[gofakeit.Number(0, len(types)-1)]

			// One post in five belongs to a group.
			if len(groups) > 0 && gofakeit.Number(0, 4) == 0 {
				group := groups[gofakeit.Number(0, len(groups)-1)]
				p.Visibility = models.VisibilityGroupOnly
				p.GroupID = &group.ID
			}
			// Every tenth post joins the demo series.
			if order%10 == 0 {
				p.SeriesID = &series.ID
				p.OrderInSeries = order/10 + 1
			}
		})
		if err != nil {
			return nil, err
		}
		if err := s.f.CreateMediaLinks(post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (s *Seeder) seedEngagement(users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		if post.Status != models.PostStatusPublished {
			continue
		}

		reviewers := gofakeit.Number(0, 4)
		var root *models.Review
		for i := 0; i < reviewers; i++ {
			user := users[gofakeit.Number(0, len(users)-1)]
			review, err := s.f.CreateReview(user, post, nil)
			if err != nil {
				return err
			}
			if root == nil {
				root = review
			}
		}
		// Thread a couple of replies under the first review.
		if root != nil {
			for i := 0; i < gofakeit.Number(0, 2); i++ {
				user := users[gofakeit.Number(0, len(users)-1)]
				if _, err := s.f.CreateReview(user, post, root); err != nil {
					return err
				}
			}
		}

		for _, user := range users {
			roll := gofakeit.Number(0, 9)
			switch {
			case roll == 0:
				if err := s.f.React(user, post, models.ReactionDislike); err != nil {
					return err
				}
			case roll <= 3:
				if err := s.f.React(user, post, models.ReactionLike); err != nil {
					return err
				}
			}
			if gofakeit.Number(0, 9) == 0 {
				if err := s.f.Favorite(user, post); err != nil {
					return err
				}
			}
		}

		if gofakeit.Number(0, 2) == 0 {
			uploader := users[gofakeit.Number(0, len(users)-1)]
			if _, err := s.f.CreateSubtitle(uploader, post); err != nil {
				return err
			}
		}
	}
	return nil
}
