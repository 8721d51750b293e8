package errors

import (
	"fmt"
)

var (
	ErrWorkerPanic    = fmt.Errorf("worker panic")
	ErrListenerClosed = fmt.Errorf("listener closed")
	ErrListenerPanic  = fmt.Errorf("listener panic")
	ErrInvalidToken   = fmt.Errorf("invalid or expired token")
	ErrUnknownMethod  = fmt.Errorf("unknown method")
	ErrUsernameTaken  = fmt.Errorf("username already taken")
)

// Reason is the code carried by ChatOperationFailed.
type Reason int

const (
	ChatNotFound Reason = iota + 1
	UserNotParticipant
	InvalidMessage
	CallInProgress
	PermissionDenied
)

func (r Reason) String() string {
	switch r {
	case ChatNotFound:
		return "ChatNotFound"
	case UserNotParticipant:
		return "UserNotParticipant"
	case InvalidMessage:
		return "InvalidMessage"
	case CallInProgress:
		return "CallInProgress"
	case PermissionDenied:
		return "PermissionDenied"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// ChatOperationFailed is the typed failure reported synchronously to the caller
// of a chat or signaling operation.
type ChatOperationFailed struct {
	Reason Reason
}

func (e *ChatOperationFailed) Error() string {
	return "chat operation failed: " + e.Reason.String()
}

// Is matches any ChatOperationFailed carrying the same reason,
// so wrapped failures still satisfy errors.Is(err, ErrChatNotFound).
func (e *ChatOperationFailed) Is(target error) bool {
	t, ok := target.(*ChatOperationFailed)
	return ok && t.Reason == e.Reason
}

var (
	ErrChatNotFound       = &ChatOperationFailed{Reason: ChatNotFound}
	ErrUserNotParticipant = &ChatOperationFailed{Reason: UserNotParticipant}
	ErrInvalidMessage     = &ChatOperationFailed{Reason: InvalidMessage}
	ErrCallInProgress     = &ChatOperationFailed{Reason: CallInProgress}
	ErrPermissionDenied   = &ChatOperationFailed{Reason: PermissionDenied}
)
