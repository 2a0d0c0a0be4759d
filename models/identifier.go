package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// External identifiers are the human-shareable codes customers quote back
// (booking references, order numbers). They combine a kind prefix, the
// creation timestamp in milliseconds and a random suffix, so they are
// unique in practice and not guessable. They are assigned once at create
// time and never reassigned.

func newExternalID(prefix string, suffixLen int) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("%s%d%s", prefix, time.Now().UnixMilli(), random[:suffixLen])
}

func NewBookingID() string {
	return newExternalID("BK", 9)
}

func NewTakeawayOrderID() string {
	return newExternalID("TO", 6)
}

func NewDeliveryOrderID() string {
	return newExternalID("DO", 6)
}
