package purchases

import (
	"strings"
	"time"

	"folkify/internal/apperr"
)

type Action string

const (
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
	ActionShip    Action = "ship"
	ActionDeliver Action = "deliver"
)

type transition struct {
	from Status
	to   Status
}

// Cancelling a confirmed purchase is not offered; sellers cancel while pending only.
var transitions = map[Action]transition{
	ActionConfirm: {from: StatusPending, to: StatusConfirmed},
	ActionCancel:  {from: StatusPending, to: StatusCancelled},
	ActionShip:    {from: StatusConfirmed, to: StatusShipped},
	ActionDeliver: {from: StatusShipped, to: StatusDelivered},
}

func ParseAction(raw string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := transitions[a]; !ok {
		return "", apperr.New(apperr.CodeValidation, "action must be confirm, cancel, ship or deliver")
	}
	return a, nil
}

// Target is the status an action moves to.
func (a Action) Target() Status {
	return transitions[a].to
}

// Apply moves p along the seller action. Repeating an action that already
// took effect reports changed=false without error.
func Apply(p *Purchase, action Action, now time.Time) (bool, error) {
	t, ok := transitions[action]
	if !ok {
		return false, apperr.New(apperr.CodeValidation, "unknown purchase action")
	}
	if p.Status == t.to {
		return false, nil
	}
	if p.Status != t.from {
		return false, apperr.New(apperr.CodeStateConflict, "cannot "+string(action)+" a purchase that is "+string(p.Status))
	}

	at := now
	p.Status = t.to
	switch t.to {
	case StatusConfirmed:
		p.ConfirmedAt = &at
	case StatusShipped:
		p.ShippedAt = &at
	case StatusDelivered:
		p.DeliveredAt = &at
	case StatusCancelled:
		p.CancelledAt = &at
	}
	return true, nil
}

// MarkPaid records payment. It is refused once the purchase is cancelled and
// is a no-op when the purchase is already paid.
func MarkPaid(p *Purchase, now time.Time) (bool, error) {
	if p.PaymentStatus == PaymentPaid {
		return false, nil
	}
	if p.Status == StatusCancelled {
		return false, apperr.New(apperr.CodeStateConflict, "cannot mark a cancelled purchase as paid")
	}
	at := now
	p.PaymentStatus = PaymentPaid
	p.PaidAt = &at
	return true, nil
}
