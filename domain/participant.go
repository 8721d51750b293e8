// Package domain contains core concepts of the chat system.
// This file defines participant identities and contacts.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

// UserID is the stable identifier of an authenticated account.
type UserID uint32

// Contact is an entry of a user's contact list, or a user search result.
// Username is empty until the user sets one. AddedAt is zero for search results.
type Contact struct {
	UserID   UserID
	Username string
	AddedAt  time.Time
}

type ContactList []Contact
