package service

import (
	"context"
	"strings"
	"time"

	"cineverse/internal/cache"
	"cineverse/internal/middleware"
	"cineverse/internal/models"
	"cineverse/internal/repository"
)

// PosterStore abstracts the poster file storage so tests can stub it.
type PosterStore interface {
	SaveImageFromDataURL(dataURL string) (string, error)
	DeleteUploadedFile(publicPath string)
}

type PostService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	reviewRepo repository.ReviewRepository
	subRepo    repository.SubtitleRepository
	mediaRepo  repository.MediaLinkRepository
	posters    PosterStore
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	reviewRepo repository.ReviewRepository,
	subRepo repository.SubtitleRepository,
	mediaRepo repository.MediaLinkRepository,
	posters PosterStore,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		subRepo:    subRepo,
		mediaRepo:  mediaRepo,
		posters:    posters,
	}
}

// SavePostInput is the create/edit payload. PostID zero means create.
// The Status field is intentionally absent: every save lands in
// PENDING_APPROVAL so all content changes go through re-approval.
type SavePostInput struct {
	UserID        uint
	PostID        uint
	Title         string
	Description   string
	Type          models.PostType
	Visibility    models.PostVisibility
	GroupID       *uint
	Year          int
	Genres        []string
	IMDbRating    float64
	PosterDataURL string
	SeriesID      *uint
	OrderInSeries int
	MediaLinks    []models.MediaLink
}

// ListPostsInput mirrors the catalog filter surface.
type ListPostsInput struct {
	UserID         uint
	Page           int
	Limit          int
	Type           models.PostType
	Genres         []string
	YearMin        int
	YearMax        int
	RatingMin      float64
	RatingMax      float64
	HasRatingRange bool
	Window         repository.TimeWindow
	AsOf           time.Time
	AuthorID       uint
	IncludePrivate bool
	SortField      string
	SortDir        string
}

// PostDetail is a post with its attachments and review tree.
type PostDetail struct {
	Post       *models.Post        `json:"post"`
	Reviews    []*models.Review    `json:"reviews"`
	Subtitles  []*models.Subtitle  `json:"subtitles"`
	MediaLinks []*models.MediaLink `json:"media_links"`
}

// viewerFor resolves the requester into a visibility viewer.
func (s *PostService) viewerFor(ctx context.Context, userID uint) (repository.Viewer, error) {
	return resolveViewer(ctx, s.userRepo, s.groupRepo, userID)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*repository.PostPage, error) {
	viewer, err := s.viewerFor(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	// IncludePrivate exposes unpublished posts; only the author themselves
	// or a SUPER_ADMIN may ask for it.
	if in.IncludePrivate && !viewer.IsSuperAdmin && in.AuthorID != in.UserID {
		in.IncludePrivate = false
	}

	asOf := in.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	params := repository.ListPostsParams{
		Page:           in.Page,
		Limit:          in.Limit,
		Type:           in.Type,
		Genres:         in.Genres,
		YearMin:        in.YearMin,
		YearMax:        in.YearMax,
		RatingMin:      in.RatingMin,
		RatingMax:      in.RatingMax,
		HasRatingRange: in.HasRatingRange,
		Window:         in.Window,
		AsOf:           asOf,
		AuthorID:       in.AuthorID,
		IncludePrivate: in.IncludePrivate,
		SortField:      in.SortField,
		SortDir:        in.SortDir,
	}

	// The anonymous unfiltered front page is the hottest query; serve it
	// through the cache like every other read-mostly entry point.
	if viewer.Anonymous() && isFrontPage(params) {
		var page repository.PostPage
		err := cache.Aside(ctx, cache.PostsListKey(), &page, cache.ListTTL, func() error {
			fetched, fetchErr := s.postRepo.List(ctx, viewer, params)
			if fetchErr != nil {
				return fetchErr
			}
			page = *fetched
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &page, nil
	}

	return s.postRepo.List(ctx, viewer, params)
}

func isFrontPage(p repository.ListPostsParams) bool {
	return p.Page <= 1 && p.Limit <= 20 &&
		p.Type == "" && len(p.Genres) == 0 &&
		p.YearMin == 0 && p.YearMax == 0 && !p.HasRatingRange &&
		(p.Window == "" || p.Window == repository.WindowAll) &&
		p.AuthorID == 0 &&
		p.SortField == "" && p.SortDir == ""
}

// GetPost returns the post with its review tree, subtitles and media links.
// Posts outside the viewer's visibility surface as NotFound rather than
// NotAuthorized so their existence is not leaked.
func (s *PostService) GetPost(ctx context.Context, id uint, userID uint) (*PostDetail, error) {
	viewer, err := s.viewerFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	post, err := visiblePost(ctx, s.postRepo, id, viewer)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.ListRoots(ctx, id)
	if err != nil {
		return nil, err
	}
	subtitles, err := s.subRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}
	links, err := s.mediaRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, err
	}

	return &PostDetail{
		Post:       post,
		Reviews:    reviews,
		Subtitles:  subtitles,
		MediaLinks: links,
	}, nil
}

// visibleTo applies the single-post variant of the listing predicate. The
// author always sees their own post regardless of status.
func visibleTo(viewer repository.Viewer, post *models.Post) bool {
	if viewer.IsSuperAdmin {
		return true
	}
	if !viewer.Anonymous() && post.AuthorID == viewer.UserID {
		return true
	}
	if post.Status != models.PostStatusPublished {
		return false
	}
	if post.Visibility == models.VisibilityPublic {
		return true
	}
	if post.GroupID == nil {
		return false
	}
	for _, id := range viewer.GroupIDs {
		if id == *post.GroupID {
			return true
		}
	}
	return false
}

func (s *PostService) SavePost(ctx context.Context, in SavePostInput) (*models.Post, error) {
	if in.UserID == 0 {
		return nil, models.NewNotAuthenticatedError("You must be signed in to save a post")
	}
	if err := validateSaveInput(&in); err != nil {
		return nil, err
	}

	actor, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, models.NewNotFoundError("User", in.UserID)
	}

	if in.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *in.GroupID); err != nil {
			return nil, models.NewNotFoundError("Group", *in.GroupID)
		}
	}

	posterURL := ""
	if in.PosterDataURL != "" {
		if s.posters == nil {
			return nil, models.NewValidationError("Poster uploads are not available")
		}
		posterURL, err = s.posters.SaveImageFromDataURL(in.PosterDataURL)
		if err != nil {
			return nil, err
		}
	}

	if in.PostID == 0 {
		post := &models.Post{
			Title:         in.Title,
			Description:   in.Description,
			Type:          in.Type,
			Status:        models.PostStatusPendingApproval,
			Visibility:    in.Visibility,
			GroupID:       in.GroupID,
			AuthorID:      in.UserID,
			Year:          in.Year,
			GenreList:     in.Genres,
			IMDbRating:    in.IMDbRating,
			PosterURL:     posterURL,
			SeriesID:      in.SeriesID,
			OrderInSeries: in.OrderInSeries,
		}
		if err := s.postRepo.Create(ctx, post); err != nil {
			return nil, err
		}
		if len(in.MediaLinks) > 0 {
			if err := s.postRepo.ReplaceMediaLinks(ctx, post.ID, in.MediaLinks); err != nil {
				return nil, err
			}
		}
		return post, nil
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID, repository.Viewer{UserID: in.UserID, IsSuperAdmin: actor.IsSuperAdmin()})
	if err != nil {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}
	if !Can(actor, ActionEditPost, post) {
		return nil, models.NewNotAuthorizedError("You can only edit your own posts")
	}

	post.Title = in.Title
	post.Description = in.Description
	post.Type = in.Type
	post.Visibility = in.Visibility
	post.GroupID = in.GroupID
	post.Year = in.Year
	post.GenreList = in.Genres
	post.IMDbRating = in.IMDbRating
	post.SeriesID = in.SeriesID
	post.OrderInSeries = in.OrderInSeries
	if posterURL != "" {
		if post.PosterURL != "" && s.posters != nil {
			s.posters.DeleteUploadedFile(post.PosterURL)
		}
		post.PosterURL = posterURL
	}
	// Every edit goes back through moderation.
	post.Status = models.PostStatusPendingApproval

	// Row update and link replacement commit together.
	if in.MediaLinks != nil {
		if err := s.postRepo.UpdateWithMediaLinks(ctx, post, in.MediaLinks); err != nil {
			return nil, err
		}
		return post, nil
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func validateSaveInput(in *SavePostInput) error {
	const maxTitleLen = 300

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return models.NewValidationError("Title too long (max 300 characters)")
	}
	if in.Type == "" {
		in.Type = models.PostTypeMovie
	}
	if !models.ValidPostType(in.Type) {
		return models.NewInvalidArgumentError("Invalid post type")
	}
	if in.Visibility == "" {
		in.Visibility = models.VisibilityPublic
	}
	switch in.Visibility {
	case models.VisibilityPublic:
		if in.GroupID != nil {
			return models.NewValidationError("A public post cannot belong to a group")
		}
	case models.VisibilityGroupOnly:
		if in.GroupID == nil {
			return models.NewValidationError("A group-only post requires a group")
		}
	default:
		return models.NewInvalidArgumentError("Invalid visibility")
	}
	if in.IMDbRating < 0 || in.IMDbRating > 10 {
		return models.NewValidationError("IMDb rating must be between 0 and 10")
	}
	return nil
}

// UpdatePostStatus performs a moderation transition per the authorization
// matrix: SUPER_ADMIN on any post, USER_ADMIN only on their own.
func (s *PostService) UpdatePostStatus(ctx context.Context, actorID, postID uint, status models.PostStatus) error {
	if actorID == 0 {
		return models.NewNotAuthenticatedError("You must be signed in to change post status")
	}
	if !models.ValidPostStatus(status) {
		return models.NewInvalidArgumentError("Invalid post status")
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return models.NewNotFoundError("User", actorID)
	}
	post, err := s.postRepo.GetByID(ctx, postID, repository.Viewer{UserID: actorID, IsSuperAdmin: actor.IsSuperAdmin()})
	if err != nil {
		return models.NewNotFoundError("Post", postID)
	}
	if !Can(actor, ActionUpdateStatus, post) {
		return models.NewNotAuthorizedError("You are not allowed to change this post's status")
	}

	if err := s.postRepo.UpdateStatus(ctx, postID, status); err != nil {
		return err
	}
	middleware.StatusTransitions.WithLabelValues(string(status)).Inc()
	return nil
}

// DeletePost soft-deletes for an authorized USER_ADMIN and hard-deletes for
// a SUPER_ADMIN. The hard path cascades in one transaction and then removes
// the poster file best effort.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	if actorID == 0 {
		return models.NewNotAuthenticatedError("You must be signed in to delete a post")
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return models.NewNotFoundError("User", actorID)
	}
	post, err := s.postRepo.GetByID(ctx, postID, repository.Viewer{UserID: actorID, IsSuperAdmin: actor.IsSuperAdmin()})
	if err != nil {
		return models.NewNotFoundError("Post", postID)
	}
	if !Can(actor, ActionDeletePost, post) {
		return models.NewNotAuthorizedError("You are not allowed to delete this post")
	}

	if !actor.IsSuperAdmin() {
		return s.postRepo.UpdateStatus(ctx, postID, models.PostStatusPendingDeletion)
	}

	if err := s.postRepo.HardDelete(ctx, postID); err != nil {
		return err
	}
	if post.PosterURL != "" && s.posters != nil {
		s.posters.DeleteUploadedFile(post.PosterURL)
	}
	return nil
}

// AddSubtitle attaches a subtitle file reference to a post.
func (s *PostService) AddSubtitle(ctx context.Context, userID, postID uint, language, fileURL string) (*models.Subtitle, error) {
	if userID == 0 {
		return nil, models.NewNotAuthenticatedError("You must be signed in to upload subtitles")
	}
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, models.NewValidationError("Subtitle language is required")
	}
	if strings.TrimSpace(fileURL) == "" {
		return nil, models.NewValidationError("Subtitle file is required")
	}
	viewer, err := s.viewerFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := visiblePost(ctx, s.postRepo, postID, viewer); err != nil {
		return nil, err
	}

	subtitle := &models.Subtitle{
		PostID:     postID,
		Language:   language,
		FileURL:    fileURL,
		UploaderID: userID,
	}
	if err := s.subRepo.Create(ctx, subtitle); err != nil {
		return nil, err
	}
	return subtitle, nil
}

// DeleteSubtitle removes a subtitle; only its uploader or a SUPER_ADMIN may.
func (s *PostService) DeleteSubtitle(ctx context.Context, actorID, subtitleID uint) error {
	if actorID == 0 {
		return models.NewNotAuthenticatedError("You must be signed in to delete subtitles")
	}
	subtitle, err := s.subRepo.GetByID(ctx, subtitleID)
	if err != nil {
		return models.NewNotFoundError("Subtitle", subtitleID)
	}
	if subtitle.UploaderID != actorID {
		actor, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return models.NewNotFoundError("User", actorID)
		}
		if !actor.IsSuperAdmin() {
			return models.NewNotAuthorizedError("You can only delete subtitles you uploaded")
		}
	}
	return s.subRepo.Delete(ctx, subtitleID)
}

// ListSeriesPosts returns a series' posts in watch order, visibility applied.
func (s *PostService) ListSeriesPosts(ctx context.Context, seriesID uint, userID uint) ([]*models.Post, error) {
	viewer, err := s.viewerFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListBySeries(ctx, seriesID, viewer)
}
