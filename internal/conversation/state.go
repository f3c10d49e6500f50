package conversation

// State is a step of one of the conversation flows. Every state belongs to
// exactly one Flow; the router only ever looks at the owning flow.
type State string

// Auth flow states
const (
	StateInit             State = "INIT"
	StateAwaitingEmail    State = "AWAITING_EMAIL"
	StateAwaitingPassword State = "AWAITING_PASSWORD"
	StateAuthenticated    State = "AUTHENTICATED"
)

// Menu flow state
const StateMainMenu State = "MAIN_MENU"

// New-order flow states
const (
	StateNewOrderStart        State = "NEW_ORDER_START"
	StateAwaitingBottleType   State = "AWAITING_BOTTLE_TYPE"
	StateAwaitingQuantity     State = "AWAITING_QUANTITY"
	StateAwaitingAddress      State = "AWAITING_ADDRESS"
	StateAwaitingDeliveryDate State = "AWAITING_DELIVERY_DATE"
	StateAwaitingConfirmation State = "AWAITING_CONFIRMATION"
)

// Order-details flow state
const StateAwaitingOrderID State = "AWAITING_ORDER_ID"

// Flow identifies the state machine that owns a State
type Flow int

const (
	FlowNone Flow = iota
	FlowAuth
	FlowMenu
	FlowNewOrder
	FlowOrderDetails
)

var stateOwners = map[State]Flow{
	StateInit:             FlowAuth,
	StateAwaitingEmail:    FlowAuth,
	StateAwaitingPassword: FlowAuth,
	StateAuthenticated:    FlowAuth,

	StateMainMenu: FlowMenu,

	StateNewOrderStart:        FlowNewOrder,
	StateAwaitingBottleType:   FlowNewOrder,
	StateAwaitingQuantity:     FlowNewOrder,
	StateAwaitingAddress:      FlowNewOrder,
	StateAwaitingDeliveryDate: FlowNewOrder,
	StateAwaitingConfirmation: FlowNewOrder,

	StateAwaitingOrderID: FlowOrderDetails,
}

// Flow returns the flow that owns s, or FlowNone for unknown or empty states
func (s State) Flow() Flow {
	return stateOwners[s]
}

func (f Flow) String() string {
	switch f {
	case FlowAuth:
		return "auth"
	case FlowMenu:
		return "menu"
	case FlowNewOrder:
		return "new_order"
	case FlowOrderDetails:
		return "order_details"
	default:
		return "none"
	}
}
