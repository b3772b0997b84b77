/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1005

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1006
)

// 2xxx: Adoption Business Logic Errors
const (
	// ErrPetNotFound indicates that the requested pet listing does not exist.
	ErrPetNotFound = 2101

	// ErrPetNotAdoptable indicates an application or appointment targeted a pet
	// that is no longer available for adoption.
	ErrPetNotAdoptable = 2102

	// ErrResourceNotFound indicates that the requested care resource does not exist.
	ErrResourceNotFound = 2201

	// ErrAppointmentNotFound indicates that the requested appointment does not exist.
	ErrAppointmentNotFound = 2301

	// ErrAppointmentInPast indicates a booking request for a time that has already passed.
	ErrAppointmentInPast = 2302

	// ErrApplicationNotFound indicates that the requested adoption application does not exist.
	ErrApplicationNotFound = 2401

	// ErrApplicationExists indicates the user already has a live application for this pet.
	ErrApplicationExists = 2402

	// ErrApplicationClosed indicates a review action on an already-decided application.
	ErrApplicationClosed = 2403

	// ErrContactNotFound indicates that the requested emergency contact does not exist.
	ErrContactNotFound = 2501

	// ErrMedicalRecordNotFound indicates that the requested medical record does not exist.
	ErrMedicalRecordNotFound = 2601

	// ErrFileSizeTooLarge indicates an uploaded photo exceeded the size limit.
	ErrFileSizeTooLarge = 2701

	// ErrFileTypeInvalid indicates an uploaded photo has a disallowed type or extension.
	ErrFileTypeInvalid = 2702
)

// 3xxx: User, Session, and Security Errors
const (
	// ErrPowChallengeRequired indicates the client must complete a Proof-of-Work challenge first.
	ErrPowChallengeRequired = 3001

	// ErrPowChallengeInvalid indicates that the PoW proof provided by the client is invalid or incorrect.
	ErrPowChallengeInvalid = 3002

	// ErrAlreadyLoggedIn indicates a register/login attempt from an authenticated session.
	ErrAlreadyLoggedIn = 3101

	// ErrInvalidUsername indicates the supplied username does not meet format rules.
	ErrInvalidUsername = 3102

	// ErrInvalidPassword indicates the supplied password does not meet length rules.
	ErrInvalidPassword = 3103

	// ErrUserAlreadyExists indicates the username or email is already taken.
	ErrUserAlreadyExists = 3104

	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = 3105

	// ErrUserNotFound indicates the account does not exist.
	ErrUserNotFound = 3106

	// ErrUnauthorized indicates a request that requires authentication arrived without it.
	ErrUnauthorized = 3107

	// ErrForbidden indicates the authenticated user lacks the required role.
	ErrForbidden = 3108
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrFileStorageFailed indicates a failure talking to the photo storage backend.
	ErrFileStorageFailed = 5001
)
