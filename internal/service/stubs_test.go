package service

import (
	"context"

	"cineverse/internal/models"
	"cineverse/internal/repository"

	"gorm.io/gorm"
)

// Function-field stubs so each test overrides only what it exercises.

type stubPostRepo struct {
	createFn        func(ctx context.Context, post *models.Post) error
	updateFn        func(ctx context.Context, post *models.Post) error
	getByIDFn       func(ctx context.Context, id uint, viewer repository.Viewer) (*models.Post, error)
	listFn          func(ctx context.Context, viewer repository.Viewer, params repository.ListPostsParams) (*repository.PostPage, error)
	listBySeriesFn  func(ctx context.Context, seriesID uint, viewer repository.Viewer) ([]*models.Post, error)
	updateStatusFn  func(ctx context.Context, id uint, status models.PostStatus) error
	hardDeleteFn    func(ctx context.Context, id uint) error
	replaceLinksFn  func(ctx context.Context, postID uint, links []models.MediaLink) error
	updateLinksFn   func(ctx context.Context, post *models.Post, links []models.MediaLink) error
}

func (s *stubPostRepo) Create(ctx context.Context, post *models.Post) error {
	if s.createFn != nil {
		return s.createFn(ctx, post)
	}
	post.ID = 1
	return nil
}

func (s *stubPostRepo) Update(ctx context.Context, post *models.Post) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, post)
	}
	return nil
}

func (s *stubPostRepo) GetByID(ctx context.Context, id uint, viewer repository.Viewer) (*models.Post, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id, viewer)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPostRepo) List(ctx context.Context, viewer repository.Viewer, params repository.ListPostsParams) (*repository.PostPage, error) {
	if s.listFn != nil {
		return s.listFn(ctx, viewer, params)
	}
	return &repository.PostPage{}, nil
}

func (s *stubPostRepo) ListBySeries(ctx context.Context, seriesID uint, viewer repository.Viewer) ([]*models.Post, error) {
	if s.listBySeriesFn != nil {
		return s.listBySeriesFn(ctx, seriesID, viewer)
	}
	return nil, nil
}

func (s *stubPostRepo) UpdateStatus(ctx context.Context, id uint, status models.PostStatus) error {
	if s.updateStatusFn != nil {
		return s.updateStatusFn(ctx, id, status)
	}
	return nil
}

func (s *stubPostRepo) HardDelete(ctx context.Context, id uint) error {
	if s.hardDeleteFn != nil {
		return s.hardDeleteFn(ctx, id)
	}
	return nil
}

func (s *stubPostRepo) ReplaceMediaLinks(ctx context.Context, postID uint, links []models.MediaLink) error {
	if s.replaceLinksFn != nil {
		return s.replaceLinksFn(ctx, postID, links)
	}
	return nil
}

func (s *stubPostRepo) UpdateWithMediaLinks(ctx context.Context, post *models.Post, links []models.MediaLink) error {
	if s.updateLinksFn != nil {
		return s.updateLinksFn(ctx, post, links)
	}
	return nil
}

type stubUserRepo struct {
	users map[uint]*models.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (s *stubUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error { return nil }

type stubGroupRepo struct {
	groups   map[uint]*models.Group
	memberOf map[uint][]uint
}

func (s *stubGroupRepo) Create(ctx context.Context, group *models.Group) error { return nil }

func (s *stubGroupRepo) ListActive(ctx context.Context) ([]*models.Group, error) {
	var out []*models.Group
	for _, g := range s.groups {
		if g.Status == models.GroupStatusActive {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *stubGroupRepo) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	for _, g := range s.groups {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubGroupRepo) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	if g, ok := s.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubGroupRepo) ActiveGroupIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.memberOf[userID], nil
}

func (s *stubGroupRepo) MemberRole(ctx context.Context, groupID, userID uint) (models.GroupMemberRole, bool, error) {
	for _, id := range s.memberOf[userID] {
		if id == groupID {
			return models.GroupRoleMember, true, nil
		}
	}
	return "", false, nil
}

func (s *stubGroupRepo) ListMemberships(ctx context.Context, userID uint) ([]*models.GroupMember, error) {
	return nil, nil
}

func (s *stubGroupRepo) Join(ctx context.Context, groupID, userID uint) error {
	s.memberOf[userID] = append(s.memberOf[userID], groupID)
	return nil
}

func (s *stubGroupRepo) Leave(ctx context.Context, groupID, userID uint) error { return nil }

type stubReviewRepo struct {
	createFn        func(ctx context.Context, review *models.Review) error
	getByIDFn       func(ctx context.Context, id uint) (*models.Review, error)
	listRootsFn     func(ctx context.Context, postID uint) ([]*models.Review, error)
	deleteSubtreeFn func(ctx context.Context, id uint) (int64, error)
}

func (s *stubReviewRepo) Create(ctx context.Context, review *models.Review) error {
	if s.createFn != nil {
		return s.createFn(ctx, review)
	}
	review.ID = 1
	return nil
}

func (s *stubReviewRepo) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubReviewRepo) ListRoots(ctx context.Context, postID uint) ([]*models.Review, error) {
	if s.listRootsFn != nil {
		return s.listRootsFn(ctx, postID)
	}
	return nil, nil
}

func (s *stubReviewRepo) DeleteSubtree(ctx context.Context, id uint) (int64, error) {
	if s.deleteSubtreeFn != nil {
		return s.deleteSubtreeFn(ctx, id)
	}
	return 1, nil
}

type stubSubtitleRepo struct{}

func (s *stubSubtitleRepo) Create(ctx context.Context, subtitle *models.Subtitle) error { return nil }
func (s *stubSubtitleRepo) GetByID(ctx context.Context, id uint) (*models.Subtitle, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubSubtitleRepo) ListByPost(ctx context.Context, postID uint) ([]*models.Subtitle, error) {
	return nil, nil
}
func (s *stubSubtitleRepo) Delete(ctx context.Context, id uint) error { return nil }

type stubMediaRepo struct{}

func (s *stubMediaRepo) ListByPost(ctx context.Context, postID uint) ([]*models.MediaLink, error) {
	return nil, nil
}

type stubReactionRepo struct {
	toggleReactionFn func(ctx context.Context, userID, postID uint, kind models.ReactionKind) (repository.ReactionState, error)
	toggleFavoriteFn func(ctx context.Context, userID, postID uint) (bool, error)
	isFavoritedFn    func(ctx context.Context, userID, postID uint) (bool, error)
}

func (s *stubReactionRepo) ToggleReaction(ctx context.Context, userID, postID uint, kind models.ReactionKind) (repository.ReactionState, error) {
	if s.toggleReactionFn != nil {
		return s.toggleReactionFn(ctx, userID, postID, kind)
	}
	return repository.ReactionState{}, nil
}

func (s *stubReactionRepo) ToggleFavorite(ctx context.Context, userID, postID uint) (bool, error) {
	if s.toggleFavoriteFn != nil {
		return s.toggleFavoriteFn(ctx, userID, postID)
	}
	return true, nil
}

func (s *stubReactionRepo) IsFavorited(ctx context.Context, userID, postID uint) (bool, error) {
	if s.isFavoritedFn != nil {
		return s.isFavoritedFn(ctx, userID, postID)
	}
	return false, nil
}

type stubPosterStore struct {
	saved   []string
	deleted []string
}

func (s *stubPosterStore) SaveImageFromDataURL(dataURL string) (string, error) {
	path := "/uploads/stub.png"
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *stubPosterStore) DeleteUploadedFile(publicPath string) {
	s.deleted = append(s.deleted, publicPath)
}
