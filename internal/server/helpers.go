package server

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"cineverse/internal/models"
	"cineverse/internal/repository"
	"cineverse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that a handler helper already wrote the HTTP
// response. Handlers return nil when they see it.
var errResponseWritten = errors.New("response already written")

const (
	defaultPaginationLimit = 20
	maxPaginationLimit     = 100
)

// Pagination holds the parsed page/limit pair from query parameters.
type Pagination struct {
	Page  int
	Limit int
}

func parsePagination(c *fiber.Ctx) Pagination {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPaginationLimit)))
	if limit < 1 {
		limit = defaultPaginationLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}
	return Pagination{Page: page, Limit: limit}
}

// parseID extracts a positive integer route parameter. On failure it writes
// the 400 response itself and returns errResponseWritten.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID reads the authenticated user ID stored by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// humanizeParam turns a camelCase route param name into words for messages,
// e.g. "reviewId" becomes "review id".
func humanizeParam(param string) string {
	words := splitCamel(param)
	return strings.ToLower(strings.Join(words, " "))
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// parseListFilters reads the catalog filter surface from query parameters.
// Unknown or malformed values fall back to their zero defaults rather than
// failing the request.
func parseListFilters(c *fiber.Ctx, userID uint) service.ListPostsInput {
	p := parsePagination(c)
	in := service.ListPostsInput{
		UserID:    userID,
		Page:      p.Page,
		Limit:     p.Limit,
		SortField: c.Query("sort_by"),
		SortDir:   c.Query("sort_dir"),
	}

	if t := c.Query("type"); t != "" {
		in.Type = models.PostType(strings.ToUpper(t))
	}
	if genres := c.Query("genres"); genres != "" {
		for _, g := range strings.Split(genres, ",") {
			if g = strings.TrimSpace(g); g != "" {
				in.Genres = append(in.Genres, g)
			}
		}
	}
	in.YearMin, _ = strconv.Atoi(c.Query("year_min"))
	in.YearMax, _ = strconv.Atoi(c.Query("year_max"))

	ratingMinRaw := c.Query("rating_min")
	ratingMaxRaw := c.Query("rating_max")
	if ratingMinRaw != "" || ratingMaxRaw != "" {
		in.HasRatingRange = true
		in.RatingMin, _ = strconv.ParseFloat(ratingMinRaw, 64)
		in.RatingMax, _ = strconv.ParseFloat(ratingMaxRaw, 64)
		if ratingMaxRaw == "" {
			in.RatingMax = 10
		}
	}

	switch c.Query("window") {
	case "today":
		in.Window = repository.WindowToday
	case "this_week":
		in.Window = repository.WindowThisWeek
	case "this_month":
		in.Window = repository.WindowThisMonth
	}
	if asOf := c.Query("as_of"); asOf != "" {
		if t, err := time.Parse(time.RFC3339, asOf); err == nil {
			in.AsOf = t.UTC()
		}
	}

	if authorID, err := strconv.ParseUint(c.Query("author_id"), 10, 32); err == nil {
		in.AuthorID = uint(authorID)
	}
	in.IncludePrivate = c.QueryBool("include_private")

	return in
}
