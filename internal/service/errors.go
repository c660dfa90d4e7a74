package service

import (
	"errors"

	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/apperr"
)

var (
	ErrEmailExists        = apperr.New(apperr.KindConflict, "User with this email already exists")
	ErrInvalidCredentials = apperr.New(apperr.KindAuthentication, "Invalid email or password")
	ErrInvalidVerifyCode  = apperr.New(apperr.KindValidation, "Invalid or expired verification code")
	ErrUserNotFound       = apperr.New(apperr.KindAuthentication, "User not found")
	ErrEmailNotVerified   = apperr.New(apperr.KindAuthorization, "Please verify your email before continuing")
	ErrQuotaExceeded      = apperr.New(apperr.KindQuotaExceeded, "You have reached your monthly optimization limit")
	ErrInvalidOAuthState  = apperr.New(apperr.KindAuthentication, "Invalid or expired sign-in attempt")
	ErrUnknownProvider    = apperr.New(apperr.KindValidation, "Unsupported sign-in provider")
	ErrPlanUserNotFound   = apperr.New(apperr.KindValidation, "User does not exist")

	ErrEmailDelivery = errors.New("failed to send verification email")
	ErrOTPGeneration = errors.New("could not generate a unique verification code")
)
