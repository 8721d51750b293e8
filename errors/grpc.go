package errors

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// MapToGRPCError translates domain failures into gRPC status errors.
// Unknown errors become codes.Internal without leaking their message.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	var failed *ChatOperationFailed
	if errors.As(err, &failed) {
		switch failed.Reason {
		case ChatNotFound:
			return status.Error(codes.NotFound, failed.Error())
		case UserNotParticipant, PermissionDenied:
			return status.Error(codes.PermissionDenied, failed.Error())
		case InvalidMessage:
			return status.Error(codes.InvalidArgument, failed.Error())
		case CallInProgress:
			return status.Error(codes.FailedPrecondition, failed.Error())
		}
	}
	switch {
	case errors.Is(err, ErrInvalidToken):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, ErrUnknownMethod):
		return status.Error(codes.Unimplemented, err.Error())
	case errors.Is(err, ErrUsernameTaken):
		return status.Error(codes.AlreadyExists, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
