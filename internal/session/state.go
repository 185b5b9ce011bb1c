package session

type State int

const (
	StateClosed State = iota
	StateResolvingIdentity
	StateAwaitingContactInfo
	StateResolvingCounterparty
	StateConnecting
	StateLoadingHistory
	StateActive
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateResolvingIdentity:
		return "resolving_identity"
	case StateAwaitingContactInfo:
		return "awaiting_contact_info"
	case StateResolvingCounterparty:
		return "resolving_counterparty"
	case StateConnecting:
		return "connecting"
	case StateLoadingHistory:
		return "loading_history"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}
