package query

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"jobboard/model"
)

const DefaultLimit = 10

// Filters is the untrusted search input as it arrives on the wire.
// Remote is tri-state: "", "true" or "false".
type Filters struct {
	Search   string
	Location string
	Type     string
	Remote   string
	Page     int64
	Limit    int64
}

// JobQuery is a validated store query. Filter always carries the
// is_active base predicate; ByRelevance is set when a text search term
// is present so the store can rank by score before recency.
type JobQuery struct {
	Filter      bson.M
	ByRelevance bool
	Page        int64
	Limit       int64
}

func (q JobQuery) Skip() int64 {
	return (q.Page - 1) * q.Limit
}

// Sort returns the stable ordering for this query: newest first, with
// text relevance ahead of it when a search term was given.
func (q JobQuery) Sort() bson.D {
	if q.ByRelevance {
		return bson.D{
			{Key: "score", Value: bson.M{"$meta": "textScore"}},
			{Key: "created_at", Value: -1},
		}
	}
	return bson.D{{Key: "created_at", Value: -1}}
}

// Translate builds a store query from raw filters. It never fails:
// unrecognized or empty values are dropped, page and limit are clamped
// to sane positives.
func Translate(f Filters) JobQuery {
	filter := bson.M{"is_active": true}

	search := strings.TrimSpace(f.Search)
	if search != "" {
		filter["$text"] = bson.M{"$search": search}
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		// QuoteMeta keeps the contract at "case-insensitive substring"
		// even when the input contains regex metacharacters.
		filter["location"] = bson.M{"$regex": regexp.QuoteMeta(loc), "$options": "i"}
	}
	if model.ValidJobType(f.Type) {
		filter["type"] = f.Type
	}
	switch f.Remote {
	case "true":
		filter["remote"] = true
	case "false":
		filter["remote"] = false
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	return JobQuery{
		Filter:      filter,
		ByRelevance: search != "",
		Page:        page,
		Limit:       limit,
	}
}

// TotalPages computes ceil(total/limit).
func TotalPages(total, limit int64) int64 {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
