package store

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Waqasabid99/rms-backend/utils"
)

// FilterAll is the sentinel that disables the status/category filter.
const FilterAll = "all"

// ListParams are the optional filters for listing order-like collections.
type ListParams struct {
	Status string
	Search string
	SortBy string
	Order  string
}

// MenuListParams filter the menu collection by category instead of status.
type MenuListParams struct {
	Category string
	Search   string
	SortBy   string
	Order    string
}

// UserSearchParams searches a collection by customer details. At least one
// field must be supplied.
type UserSearchParams struct {
	Name  string
	Email string
	Phone string
}

func (p UserSearchParams) Empty() bool {
	return p.Name == "" && p.Email == "" && p.Phone == ""
}

// ciSubstring builds a case-insensitive substring match. The term is
// quoted so user input is never interpreted as a pattern.
func ciSubstring(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// listFilter translates ListParams for a collection whose external
// identifier lives under idField (booking_id or order_id).
func listFilter(p ListParams, idField string) bson.M {
	filter := bson.M{}
	if p.Status != "" && p.Status != FilterAll {
		filter["status"] = p.Status
	}
	if p.Search != "" {
		re := ciSubstring(p.Search)
		filter["$or"] = bson.A{
			bson.M{"customer_name": re},
			bson.M{idField: re},
			bson.M{"customer_email": re},
			bson.M{"customer_phone": re},
		}
	}
	return filter
}

func menuListFilter(p MenuListParams) bson.M {
	filter := bson.M{}
	if p.Category != "" && p.Category != FilterAll {
		filter["category"] = p.Category
	}
	if p.Search != "" {
		re := ciSubstring(p.Search)
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
			bson.M{"tags": re},
		}
	}
	return filter
}

func userSearchFilter(p UserSearchParams) (bson.M, error) {
	if p.Empty() {
		return nil, utils.NewValidationError("At least one search parameter (name, email, or phone) is required")
	}

	var conditions bson.A
	if p.Name != "" {
		conditions = append(conditions, bson.M{"customer_name": ciSubstring(p.Name)})
	}
	if p.Email != "" {
		conditions = append(conditions, bson.M{"customer_email": ciSubstring(p.Email)})
	}
	if p.Phone != "" {
		conditions = append(conditions, bson.M{"customer_phone": ciSubstring(p.Phone)})
	}

	if len(conditions) == 1 {
		return conditions[0].(bson.M), nil
	}
	return bson.M{"$or": conditions}, nil
}

var sortAliases = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// listFindOptions resolves the sort field and direction, falling back to
// creation time, newest first.
func listFindOptions(sortBy, order string) *options.FindOptions {
	field := sortBy
	if field == "" {
		field = "created_at"
	}
	if alias, ok := sortAliases[field]; ok {
		field = alias
	}
	direction := -1
	if order == "asc" {
		direction = 1
	}
	return options.Find().SetSort(bson.D{{Key: field, Value: direction}})
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}
