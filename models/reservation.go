package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Waqasabid99/rms-backend/utils"
)

// Composition breaks the party size down by guest type.
type Composition struct {
	Adults         int `bson:"adults" json:"adults" binding:"omitempty,min=0"`
	Kids           int `bson:"kids" json:"kids" binding:"omitempty,min=0"`
	Elders         int `bson:"elders" json:"elders" binding:"omitempty,min=0"`
	SpeciallyAbled int `bson:"specially_abled" json:"specially_abled" binding:"omitempty,min=0"`
}

type Preferences struct {
	TableArea     string `bson:"table_area" json:"table_area" binding:"omitempty,oneof=window patio indoor bar"`
	SeatingType   string `bson:"seating_type" json:"seating_type" binding:"omitempty,oneof=booth standard high-top"`
	Accessibility bool   `bson:"accessibility" json:"accessibility"`
	Near          string `bson:"near" json:"near"`
}

type Parking struct {
	Required bool   `bson:"required" json:"required"`
	Type     string `bson:"type" json:"type" binding:"omitempty,oneof=valet self"`
}

type Dietary struct {
	Plan         string   `bson:"plan" json:"plan" binding:"omitempty,oneof=none vegetarian vegan gluten-free halal kosher"`
	Restrictions []string `bson:"restrictions" json:"restrictions"`
	Notes        string   `bson:"notes" json:"notes"`
}

type Occasion struct {
	Type    string `bson:"type" json:"type" binding:"omitempty,oneof=none birthday anniversary business celebration"`
	Details string `bson:"details" json:"details"`
}

type Reservation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookingID       string             `bson:"booking_id" json:"booking_id"`
	CustomerName    string             `bson:"customer_name" json:"customer_name" binding:"required"`
	CustomerPhone   string             `bson:"customer_phone" json:"customer_phone" binding:"required"`
	CustomerEmail   string             `bson:"customer_email" json:"customer_email" binding:"required,email"`
	ReservationTime string             `bson:"reservation_time" json:"reservation_time" binding:"required"`
	PartySize       int                `bson:"party_size" json:"party_size" binding:"required,min=1"`
	Composition     Composition        `bson:"composition" json:"composition"`
	Preferences     Preferences        `bson:"preferences" json:"preferences"`
	Parking         Parking            `bson:"parking" json:"parking"`
	KidsSeats       int                `bson:"kids_seats" json:"kids_seats" binding:"omitempty,min=0"`
	Dietary         Dietary            `bson:"dietary" json:"dietary"`
	Occasion        Occasion           `bson:"occasion" json:"occasion"`
	SpecialRequests string             `bson:"special_requests" json:"special_requests"`
	Status          string             `bson:"status" json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

func (r *Reservation) Normalize() {
	r.CustomerName = strings.TrimSpace(r.CustomerName)
	r.CustomerPhone = strings.TrimSpace(r.CustomerPhone)
	// Emails are stored lowercased so lookups by email stay consistent.
	r.CustomerEmail = strings.ToLower(strings.TrimSpace(r.CustomerEmail))
	if r.Status == "" {
		r.Status = StatusPending
	}
}

func (r *Reservation) Validate() error {
	if r.CustomerName == "" || r.CustomerPhone == "" || r.CustomerEmail == "" {
		return utils.NewValidationError("customer_name, customer_phone and customer_email are required")
	}
	if r.ReservationTime == "" {
		return utils.NewValidationError("reservation_time is required")
	}
	if r.PartySize < 1 {
		return utils.NewValidationError("party_size must be at least 1")
	}
	if !ReservationTransitions.Knows(r.Status) {
		return utils.NewValidationError(fmt.Sprintf("'%s' is not a valid reservation status", r.Status))
	}
	return nil
}

func (r *Reservation) ApplyPatch(p Patch) error {
	for field, raw := range p {
		var err error
		switch field {
		case "customer_name":
			err = decodePatchField(raw, field, &r.CustomerName)
		case "customer_phone":
			err = decodePatchField(raw, field, &r.CustomerPhone)
		case "customer_email":
			err = decodePatchField(raw, field, &r.CustomerEmail)
		case "reservation_time":
			err = decodePatchField(raw, field, &r.ReservationTime)
		case "party_size":
			err = decodePatchField(raw, field, &r.PartySize)
		case "composition":
			err = decodePatchField(raw, field, &r.Composition)
		case "preferences":
			err = decodePatchField(raw, field, &r.Preferences)
		case "parking":
			err = decodePatchField(raw, field, &r.Parking)
		case "kids_seats":
			err = decodePatchField(raw, field, &r.KidsSeats)
		case "dietary":
			err = decodePatchField(raw, field, &r.Dietary)
		case "occasion":
			err = decodePatchField(raw, field, &r.Occasion)
		case "special_requests":
			err = decodePatchField(raw, field, &r.SpecialRequests)
		case "status":
			err = decodePatchField(raw, field, &r.Status)
		default:
			err = unknownFieldError(field)
		}
		if err != nil {
			return err
		}
	}
	r.Normalize()
	return r.Validate()
}
