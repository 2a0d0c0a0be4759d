package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Waqasabid99/rms-backend/utils"
)

// DefaultDeliveryFee is the flat fee applied when an order does not carry
// one. The fee counts toward revenue aggregation but is never folded into
// the stored total.
const DefaultDeliveryFee = 5.00

type DeliveryOrder struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID             string             `bson:"order_id" json:"order_id"`
	CustomerName        string             `bson:"customer_name" json:"customer_name" binding:"required"`
	CustomerPhone       string             `bson:"customer_phone" json:"customer_phone" binding:"required"`
	CustomerEmail       string             `bson:"customer_email" json:"customer_email" binding:"required,email"`
	DeliveryAddress     string             `bson:"delivery_address" json:"delivery_address" binding:"required"`
	DeliveryTime        string             `bson:"delivery_time" json:"delivery_time" binding:"required"`
	Items               []OrderLine        `bson:"items" json:"items" binding:"omitempty,dive"`
	Total               float64            `bson:"total" json:"total"`
	DeliveryFee         *float64           `bson:"delivery_fee" json:"delivery_fee" binding:"omitempty,min=0"`
	Status              string             `bson:"status" json:"status" binding:"omitempty,oneof=pending preparing out_for_delivery delivered cancelled"`
	SpecialInstructions string             `bson:"special_instructions" json:"special_instructions"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updated_at"`
}

func (o *DeliveryOrder) Normalize() {
	o.CustomerName = strings.TrimSpace(o.CustomerName)
	o.CustomerPhone = strings.TrimSpace(o.CustomerPhone)
	o.CustomerEmail = strings.ToLower(strings.TrimSpace(o.CustomerEmail))
	normalizeLines(o.Items)
	if o.DeliveryFee == nil {
		fee := DefaultDeliveryFee
		o.DeliveryFee = &fee
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
}

func (o *DeliveryOrder) ComputeTotal() {
	o.Total = linesTotal(o.Items)
}

// Fee returns the delivery fee, defaulting when it was never set.
func (o *DeliveryOrder) Fee() float64 {
	if o.DeliveryFee == nil {
		return DefaultDeliveryFee
	}
	return *o.DeliveryFee
}

func (o *DeliveryOrder) Validate() error {
	if o.CustomerName == "" || o.CustomerPhone == "" || o.CustomerEmail == "" {
		return utils.NewValidationError("customer_name, customer_phone and customer_email are required")
	}
	if o.DeliveryAddress == "" {
		return utils.NewValidationError("delivery_address is required")
	}
	if o.DeliveryTime == "" {
		return utils.NewValidationError("delivery_time is required")
	}
	if o.DeliveryFee != nil && *o.DeliveryFee < 0 {
		return utils.NewValidationError("delivery_fee must not be negative")
	}
	for _, item := range o.Items {
		if item.Name == "" {
			return utils.NewValidationError("every item needs a name")
		}
	}
	if !DeliveryTransitions.Knows(o.Status) {
		return utils.NewValidationError(fmt.Sprintf("'%s' is not a valid delivery order status", o.Status))
	}
	return nil
}

func (o *DeliveryOrder) ApplyPatch(p Patch) error {
	for field, raw := range p {
		var err error
		switch field {
		case "customer_name":
			err = decodePatchField(raw, field, &o.CustomerName)
		case "customer_phone":
			err = decodePatchField(raw, field, &o.CustomerPhone)
		case "customer_email":
			err = decodePatchField(raw, field, &o.CustomerEmail)
		case "delivery_address":
			err = decodePatchField(raw, field, &o.DeliveryAddress)
		case "delivery_time":
			err = decodePatchField(raw, field, &o.DeliveryTime)
		case "items":
			err = decodePatchField(raw, field, &o.Items)
		case "delivery_fee":
			err = decodePatchField(raw, field, &o.DeliveryFee)
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
