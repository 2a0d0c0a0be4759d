package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Waqasabid99/rms-backend/utils"
)

var MenuCategories = []string{"appetizer", "main", "dessert", "beverage", "side"}

func ValidMenuCategory(category string) bool {
	for _, c := range MenuCategories {
		if c == category {
			return true
		}
	}
	return false
}

type MenuItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" binding:"required"`
	Description string             `bson:"description" json:"description" binding:"required"`
	Price       float64            `bson:"price" json:"price" binding:"min=0"`
	Category    string             `bson:"category" json:"category" binding:"required,oneof=appetizer main dessert beverage side"`
	Tags        []string           `bson:"tags" json:"tags"`
	Available   *bool              `bson:"available" json:"available"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Normalize applies schema defaults and canonical forms before persisting.
func (m *MenuItem) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Description = strings.TrimSpace(m.Description)
	m.Category = strings.ToLower(strings.TrimSpace(m.Category))
	for i := range m.Tags {
		m.Tags[i] = strings.TrimSpace(m.Tags[i])
	}
	if m.Available == nil {
		available := true
		m.Available = &available
	}
}

func (m *MenuItem) Validate() error {
	if m.Name == "" {
		return utils.NewValidationError("name is required")
	}
	if m.Description == "" {
		return utils.NewValidationError("description is required")
	}
	if m.Price < 0 {
		return utils.NewValidationError("price must not be negative")
	}
	if !ValidMenuCategory(m.Category) {
		return utils.NewValidationError(fmt.Sprintf("'%s' is not a valid category", m.Category))
	}
	return nil
}

// ApplyPatch merges the supplied fields into the item. Only mutable fields
// are accepted; the merged item is revalidated before it is persisted.
func (m *MenuItem) ApplyPatch(p Patch) error {
	for field, raw := range p {
		var err error
		switch field {
		case "name":
			err = decodePatchField(raw, field, &m.Name)
		case "description":
			err = decodePatchField(raw, field, &m.Description)
		case "price":
			err = decodePatchField(raw, field, &m.Price)
		case "category":
			err = decodePatchField(raw, field, &m.Category)
		case "tags":
			err = decodePatchField(raw, field, &m.Tags)
		case "available":
			err = decodePatchField(raw, field, &m.Available)
		default:
			err = unknownFieldError(field)
		}
		if err != nil {
			return err
		}
	}
	m.Normalize()
	return m.Validate()
}
