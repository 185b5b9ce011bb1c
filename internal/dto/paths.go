package dto

// Mount prefixes for the three servers. The chat widget client builds its
// request paths from these same constants, so client and registrar cannot
// drift apart.
const (
	ClientAPIPrefix = "/api/client/v1"
	PublicAPIPrefix = "/api/public/v1"
	WSAPIPrefix     = "/api/ws/v1"
)

func SupportAgentPath(prefix string) string {
	return prefix + "/support/agent"
}

func SupportHistoryPrefix(prefix string) string {
	return prefix + "/support/history/"
}

func SupportWebsocketPrefix(prefix string) string {
	return prefix + "/support/ws/"
}
