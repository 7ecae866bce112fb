package order

import (
	"errors"
	"fmt"
)

// Action is a lifecycle operation requested by one of the actors.
type Action int

const (
	ActionReopen Action = iota + 1
	ActionStartPreparing
	ActionMarkReady
	ActionAssignDeliveryPerson
	ActionReleaseDeliveryPerson
	ActionPickUp
	ActionDeliver
	ActionCustomerCancel
	ActionOwnerCancel
)

var actionNames = map[Action]string{
	ActionReopen:                "reopen",
	ActionStartPreparing:        "start preparing",
	ActionMarkReady:             "mark ready",
	ActionAssignDeliveryPerson:  "assign delivery person",
	ActionReleaseDeliveryPerson: "release delivery person",
	ActionPickUp:                "pick up",
	ActionDeliver:               "deliver",
	ActionCustomerCancel:        "customer cancel",
	ActionOwnerCancel:           "owner cancel",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

var (
	ErrTransitionNotAllowed   = errors.New("order status transition is not allowed")
	ErrStatusNotOwnerSettable = errors.New("status cannot be set by the restaurant owner")
)

// TransitionError describes a rejected (status, action) pair.
type TransitionError struct {
	From   Status
	Action Action
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s an order in status %s", ErrTransitionNotAllowed, e.Action, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrTransitionNotAllowed
}

type transition struct {
	from map[Status]struct{}
	to   Status
}

func from(statuses ...Status) map[Status]struct{} {
	set := make(map[Status]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return set
}

// transitions is the only place where lifecycle rules live.
var transitions = map[Action]transition{
	ActionReopen:                {from: from(Pending, Preparing, ReadyForDelivery), to: Pending},
	ActionStartPreparing:        {from: from(Pending, Preparing, ReadyForDelivery), to: Preparing},
	ActionMarkReady:             {from: from(Pending, Preparing, ReadyForDelivery), to: ReadyForDelivery},
	ActionAssignDeliveryPerson:  {from: from(ReadyForDelivery), to: WaitingCourier},
	ActionReleaseDeliveryPerson: {from: from(WaitingCourier), to: ReadyForDelivery},
	ActionPickUp:                {from: from(WaitingCourier), to: Delivering},
	ActionDeliver:               {from: from(Delivering), to: Delivered},
	ActionCustomerCancel:        {from: from(Pending, Preparing), to: Cancelled},
	ActionOwnerCancel: {
		from: from(Pending, Preparing, ReadyForDelivery, WaitingCourier),
		to:   Cancelled,
	},
}

// Apply returns the status reached by performing action from s.
func (s Status) Apply(action Action) (Status, error) {
	t, ok := transitions[action]
	if !ok {
		return s, &TransitionError{From: s, Action: action}
	}
	if _, allowed := t.from[s]; !allowed {
		return s, &TransitionError{From: s, Action: action}
	}
	return t.to, nil
}

// Can reports whether action is allowed from s.
func (s Status) Can(action Action) bool {
	_, err := s.Apply(action)
	return err == nil
}

// OwnerActionFor maps a status chosen by the restaurant owner to the action that reaches it.
// Only kitchen-side statuses can be set directly; everything else has a dedicated operation.
func OwnerActionFor(target Status) (Action, error) {
	switch target {
	case Pending:
		return ActionReopen, nil
	case Preparing:
		return ActionStartPreparing, nil
	case ReadyForDelivery:
		return ActionMarkReady, nil
	case Cancelled:
		return ActionOwnerCancel, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrStatusNotOwnerSettable, target)
	}
}
