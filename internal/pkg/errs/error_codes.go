/*
Package errs provides the coded error type and the application error catalog.

Codes are grouped by concern so both REST responses and WebSocket error events
can report a stable business code alongside a user-facing message.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates an unsupported Content-Type header.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates a malformed JSON request body.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates trailing content after the JSON document.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates the client exceeded the request rate limit.
	ErrRateLimitExceeded = 1005
)

// 2xxx: Community and Message Business Errors
const (
	// ErrCommunityNameExists indicates a community with that name already exists.
	ErrCommunityNameExists = 2101

	// ErrCommunityNotFound indicates the requested community does not exist.
	ErrCommunityNotFound = 2102

	// ErrAlreadyMember indicates the user already belongs to the community.
	// Reported as a benign conflict, never as a fatal failure.
	ErrAlreadyMember = 2103

	// ErrNotAMember indicates the user has no membership in the community.
	ErrNotAMember = 2104

	// ErrEmptyContent indicates the message content is empty after trimming.
	ErrEmptyContent = 2201

	// ErrMessageTooLong indicates the message content exceeds the size limit.
	ErrMessageTooLong = 2202

	// ErrMessageNotFound indicates the requested message does not exist.
	ErrMessageNotFound = 2301

	// ErrNotMessageAuthor indicates a delete attempt by someone other than the author.
	ErrNotMessageAuthor = 2302
)

// 3xxx: Authentication and User Errors
const (
	// ErrInvalidToken indicates a missing, malformed, or expired credential.
	ErrInvalidToken = 3001

	// ErrUserNotFound indicates the token subject has no user record.
	ErrUserNotFound = 3002

	// ErrUserBanned indicates the account has been banned.
	ErrUserBanned = 3003

	// ErrUserInactive indicates the account has been deactivated.
	ErrUserInactive = 3004

	// ErrInvalidCredentials indicates a failed email/password login.
	ErrInvalidCredentials = 3005

	// ErrInvalidUsername indicates a username that fails validation.
	ErrInvalidUsername = 3006

	// ErrInvalidEmail indicates an email address that fails validation.
	ErrInvalidEmail = 3007

	// ErrWeakPassword indicates a password that fails the strength rules.
	ErrWeakPassword = 3008

	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = 3009

	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = 3010

	// ErrUnauthorized indicates the request requires authentication.
	ErrUnauthorized = 3011
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal error.
	ErrUnknown = 5000

	// ErrPersistence indicates a durable write failed.
	ErrPersistence = 5001

	// ErrStorageUnavailable indicates the object storage service is not configured.
	ErrStorageUnavailable = 5002
)
