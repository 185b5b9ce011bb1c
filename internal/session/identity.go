package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type IdentityKind int

const (
	KindAnonymous IdentityKind = iota
	KindAuthenticated
)

// Identity is who is chatting. For anonymous visitors the id is generated
// locally once per panel open and never regenerated within that session.
// DisplayName and DisplayEmail are set only for anonymous visitors after
// the contact form; authenticated profiles carry their own name server-side.
type Identity struct {
	Kind         IdentityKind
	ID           string
	DisplayName  string
	DisplayEmail string
}

func (i Identity) Anonymous() bool {
	return i.Kind == KindAnonymous
}

// HasContactInfo reports whether an anonymous identity has completed the
// contact form. Authenticated identities always pass.
func (i Identity) HasContactInfo() bool {
	if i.Kind == KindAuthenticated {
		return true
	}
	return strings.TrimSpace(i.DisplayName) != "" && strings.TrimSpace(i.DisplayEmail) != ""
}

// NewAnonymousID builds a locally unique visitor id with no backend
// round-trip. The uuid fragment keeps two panels opened in the same
// millisecond from colliding.
func NewAnonymousID(now time.Time) string {
	fragment := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("anonymous_%d_%s", now.UnixMilli(), fragment)
}
