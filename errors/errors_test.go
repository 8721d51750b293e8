package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestChatOperationFailed_Is(t *testing.T) {
	req := require.New(t)

	wrapped := fmt.Errorf("answer call: %w", &ChatOperationFailed{Reason: ChatNotFound})

	req.ErrorIs(wrapped, ErrChatNotFound)
	req.NotErrorIs(wrapped, ErrUserNotParticipant)
	req.Equal("chat operation failed: ChatNotFound", ErrChatNotFound.Error())
}

func TestMapToGRPCError(t *testing.T) {
	tests := []struct {
		description string
		err         error
		want        codes.Code
	}{
		{"chat not found", ErrChatNotFound, codes.NotFound},
		{"not a participant", fmt.Errorf("relay: %w", ErrUserNotParticipant), codes.PermissionDenied},
		{"invalid message", ErrInvalidMessage, codes.InvalidArgument},
		{"call in progress", ErrCallInProgress, codes.FailedPrecondition},
		{"bad token", ErrInvalidToken, codes.Unauthenticated},
		{"username taken", fmt.Errorf("set username: %w", ErrUsernameTaken), codes.AlreadyExists},
		{"anything else", errors.New("disk on fire"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require.Equal(t, tt.want, status.Code(MapToGRPCError(tt.err)))
		})
	}
	require.NoError(t, MapToGRPCError(nil))
}
