/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Adoption Business Logic Errors
	ErrPetNotFound:           {Code: ErrPetNotFound, Message: "Pet not found.", Status: http.StatusNotFound},
	ErrPetNotAdoptable:       {Code: ErrPetNotAdoptable, Message: "This pet is no longer available for adoption."},
	ErrResourceNotFound:      {Code: ErrResourceNotFound, Message: "Resource not found.", Status: http.StatusNotFound},
	ErrAppointmentNotFound:   {Code: ErrAppointmentNotFound, Message: "Appointment not found.", Status: http.StatusNotFound},
	ErrAppointmentInPast:     {Code: ErrAppointmentInPast, Message: "Appointments must be booked for a future time."},
	ErrApplicationNotFound:   {Code: ErrApplicationNotFound, Message: "Application not found.", Status: http.StatusNotFound},
	ErrApplicationExists:     {Code: ErrApplicationExists, Message: "You already have an application for this pet."},
	ErrApplicationClosed:     {Code: ErrApplicationClosed, Message: "This application has already been reviewed."},
	ErrContactNotFound:       {Code: ErrContactNotFound, Message: "Emergency contact not found.", Status: http.StatusNotFound},
	ErrMedicalRecordNotFound: {Code: ErrMedicalRecordNotFound, Message: "Medical record not found.", Status: http.StatusNotFound},
	ErrFileSizeTooLarge:      {Code: ErrFileSizeTooLarge, Message: "Photo is too large."},
	ErrFileTypeInvalid:       {Code: ErrFileTypeInvalid, Message: "Photo type is not supported."},

	// 3xxx: User, Session, and Security Errors
	ErrPowChallengeRequired: {Code: ErrPowChallengeRequired, Message: "Verification required. Please try again."},
	ErrPowChallengeInvalid:  {Code: ErrPowChallengeInvalid, Message: "Verification failed. Please try again."},
	ErrAlreadyLoggedIn:      {Code: ErrAlreadyLoggedIn, Message: "You are already signed in."},
	ErrInvalidUsername:      {Code: ErrInvalidUsername, Message: "Invalid username."},
	ErrInvalidPassword:      {Code: ErrInvalidPassword, Message: "Invalid password."},
	ErrUserAlreadyExists:    {Code: ErrUserAlreadyExists, Message: "Username is already taken."},
	ErrInvalidCredentials:   {Code: ErrInvalidCredentials, Message: "Incorrect username or password."},
	ErrUserNotFound:         {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrUnauthorized:         {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrForbidden:            {Code: ErrForbidden, Message: "You do not have permission to do that.", Status: http.StatusForbidden},

	// 5xxx: Internal System Errors
	ErrUnknown:           {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrFileStorageFailed: {Code: ErrFileStorageFailed, Message: "Photo upload failed. Please try again."},
}
