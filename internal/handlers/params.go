package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// parsePagination clamps page to >= 1 and limit to 1..maxLimit,
// falling back to defLimit on garbage.
func parsePagination(pageStr, limitStr string, defLimit, maxLimit int) (page, limit int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = defLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func pagination(c *fiber.Ctx, defLimit, maxLimit int) (page, limit int) {
	return parsePagination(c.Query("page", "1"), c.Query("limit", strconv.Itoa(defLimit)), defLimit, maxLimit)
}

func parseID(s string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseIDQuery returns nil when the query parameter is absent and
// (nil, false) when it is present but malformed.
func parseIDQuery(s string) (*primitive.ObjectID, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// parseIDList deduplicates and converts hex ids, dropping blanks.
// ok is false when any non-blank entry is malformed.
func parseIDList(raw []string) (ids []primitive.ObjectID, ok bool) {
	seen := map[string]struct{}{}
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, false
		}
		seen[s] = struct{}{}
		ids = append(ids, id)
	}
	return ids, true
}
