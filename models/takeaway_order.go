package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Waqasabid99/rms-backend/utils"
)

type TakeawayOrder struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID             string             `bson:"order_id" json:"order_id"`
	CustomerName        string             `bson:"customer_name" json:"customer_name" binding:"required"`
	CustomerPhone       string             `bson:"customer_phone" json:"customer_phone" binding:"required"`
	CustomerEmail       string             `bson:"customer_email" json:"customer_email" binding:"required,email"`
	PickupTime          string             `bson:"pickup_time" json:"pickup_time" binding:"required"`
	Items               []OrderLine        `bson:"items" json:"items" binding:"omitempty,dive"`
	Total               float64            `bson:"total" json:"total"`
	Status              string             `bson:"status" json:"status" binding:"omitempty,oneof=pending preparing ready completed cancelled"`
	SpecialInstructions string             `bson:"special_instructions" json:"special_instructions"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}

func (o *TakeawayOrder) Normalize() {
	o.CustomerName = strings.TrimSpace(o.CustomerName)
	o.CustomerPhone = strings.TrimSpace(o.CustomerPhone)
	o.CustomerEmail = strings.ToLower(strings.TrimSpace(o.CustomerEmail))
	normalizeLines(o.Items)
	if o.Status == "" {
		o.Status = StatusPending
	}
}

// ComputeTotal derives the stored total from the current line items. The
// client-supplied total is never trusted; this runs on every create and
// full update, and on any patch that touches items.
func (o *TakeawayOrder) ComputeTotal() {
	o.Total = linesTotal(o.Items)
}

func (o *TakeawayOrder) Validate() error {
	if o.CustomerName == "" || o.CustomerPhone == "" || o.CustomerEmail == "" {
		return utils.NewValidationError("customer_name, customer_phone and customer_email are required")
	}
	if o.PickupTime == "" {
		return utils.NewValidationError("pickup_time is required")
	}
	for _, item := range o.Items {
		if item.Name == "" {
			return utils.NewValidationError("every item needs a name")
		}
	}
	if !TakeawayTransitions.Knows(o.Status) {
		return utils.NewValidationError(fmt.Sprintf("'%s' is not a valid takeaway order status", o.Status))
	}
	return nil
}

func (o *TakeawayOrder) ApplyPatch(p Patch) error {
	for field, raw := range p {
		var err error
		switch field {
		case "customer_name":
			err = decodePatchField(raw, field, &o.CustomerName)
		case "customer_phone":
			err = decodePatchField(raw, field, &o.CustomerPhone)
		case "customer_email":
			err = decodePatchField(raw, field, &o.CustomerEmail)
		case "pickup_time":
			err = decodePatchField(raw, field, &o.PickupTime)
		case "items":
			err = decodePatchField(raw, field, &o.Items)
		case "status":
			err = decodePatchField(raw, field, &o.Status)
		case "special_instructions":
			err = decodePatchField(raw, field, &o.SpecialInstructions)
		default:
			err = unknownFieldError(field)
		}
		if err != nil {
			return err
		}
	}
	o.Normalize()
	if p.Has("items") {
		o.ComputeTotal()
	}
	return o.Validate()
}
