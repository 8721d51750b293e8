package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/nikitapn/npchat/errors"
)

var validate = validator.New()

type InitiateCallCommand struct {
	ChatID   uint32 `validate:"required"`
	CalleeID uint32 `validate:"required"`
	Offer    string `validate:"required"`
}

type AnswerCallCommand struct {
	CallID string `validate:"required,len=32,hexadecimal"`
	Answer string `validate:"required"`
}

type IceCandidateCommand struct {
	CallID    string `validate:"required,len=32,hexadecimal"`
	Candidate string `validate:"required"`
}

type SetUsernameCommand struct {
	Username string `validate:"required,min=3,max=32,excludesall=:*?"`
}

// validateUsername also refuses any white space inside the name.
func validateUsername(cmd SetUsernameCommand) error {
	if err := validateStruct(cmd); err != nil {
		return err
	}
	if strings.IndexFunc(cmd.Username, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: username contains white space", errors.ErrInvalidMessage)
	}
	return nil
}

// validateStruct reports any violation as an invalid message.
func validateStruct(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidMessage, err)
	}
	return nil
}

// validateContent checks a message body against the configured maximum length, counted in runes.
func validateContent(content string, maxLength int) error {
	if err := validate.Var(content, fmt.Sprintf("required,max=%d", maxLength)); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidMessage, err)
	}
	return nil
}
