package models

const (
	StatusPending        = "pending"
	StatusConfirmed      = "confirmed"
	StatusCompleted      = "completed"
	StatusCancelled      = "cancelled"
	StatusPreparing      = "preparing"
	StatusReady          = "ready"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
)

// TransitionTable lists, per current status, the statuses a record may move
// to. Enforcement is opt-in (STRICT_STATUS_TRANSITIONS): with it off any
// known status value may be written at any time, matching the historical
// behavior of the API.
type TransitionTable map[string][]string

var ReservationTransitions = TransitionTable{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

var TakeawayTransitions = TransitionTable{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
}

var DeliveryTransitions = TransitionTable{
	StatusPending:        {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
}

func (t TransitionTable) Allowed(from, to string) bool {
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Statuses returns every status the table knows about, sources and targets
// alike. Used to validate status values independently of transitions.
func (t TransitionTable) Statuses() []string {
	seen := map[string]bool{}
	var all []string
	for from, targets := range t {
		if !seen[from] {
			seen[from] = true
			all = append(all, from)
		}
		for _, to := range targets {
			if !seen[to] {
				seen[to] = true
				all = append(all, to)
			}
		}
	}
	return all
}

func (t TransitionTable) Knows(status string) bool {
	for _, s := range t.Statuses() {
		if s == status {
			return true
		}
	}
	return false
}
