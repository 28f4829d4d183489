package models

import (
	"strings"

	"github.com/google/uuid"
)

// ID prefixes identify the entity kind inside the identifier itself.
const (
	UserIDPrefix      = "user"
	ProjectIDPrefix   = "proj"
	TaskIDPrefix      = "task"
	MilestoneIDPrefix = "mile"
	ThreadIDPrefix    = "thread"
	MessageIDPrefix   = "msg"
	ActivityIDPrefix  = "act"
	MemberIDPrefix    = "pm"
	InviteIDPrefix    = "invite"
)

// NewID returns an identifier of the form "<prefix>-<8-hex-chars>". The
// suffix is the leading 8 hex characters of a random UUID; collisions are
// treated as negligible and not checked.
func NewID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + hex[:8]
}
