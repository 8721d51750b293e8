package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CallID is a random 32 hex characters identifier.
type CallID string

// NewCallID returns a fresh random call identifier.
func NewCallID() CallID {
	return CallID(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// CallSession is the ephemeral signaling state of one WebRTC negotiation.
type CallSession struct {
	ID            CallID
	ChatID        ChatID
	CallerID      UserID
	CalleeID      UserID
	Offer         string
	Answer        string
	IceCandidates []string
	Active        bool
	CreatedAt     time.Time
}

// IsParticipant reports whether userID is the caller or the callee.
func (c CallSession) IsParticipant(userID UserID) bool {
	return userID == c.CallerID || userID == c.CalleeID
}

// Peer returns the other party of the call.
// The boolean is false when userID doesn't take part in it.
func (c CallSession) Peer(userID UserID) (UserID, bool) {
	switch userID {
	case c.CallerID:
		return c.CalleeID, true
	case c.CalleeID:
		return c.CallerID, true
	}
	return 0, false
}
