package errs

import "net/http"

// errorMap holds the catalog entry for every application error code.
// Entries without an explicit Status default to 400 in NewError.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Request body is not valid JSON."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Community and Message Business Errors
	ErrCommunityNameExists: {Code: ErrCommunityNameExists, Message: "Community name already exists.", Status: http.StatusConflict},
	ErrCommunityNotFound:   {Code: ErrCommunityNotFound, Message: "Community not found.", Status: http.StatusNotFound},
	ErrAlreadyMember:       {Code: ErrAlreadyMember, Message: "Already a member of this community.", Status: http.StatusConflict},
	ErrNotAMember:          {Code: ErrNotAMember, Message: "You must be a member of this community.", Status: http.StatusForbidden},
	ErrEmptyContent:        {Code: ErrEmptyContent, Message: "Message content cannot be empty."},
	ErrMessageTooLong:      {Code: ErrMessageTooLong, Message: "Message is too long."},
	ErrMessageNotFound:     {Code: ErrMessageNotFound, Message: "Message not found.", Status: http.StatusNotFound},
	ErrNotMessageAuthor:    {Code: ErrNotMessageAuthor, Message: "You can only delete your own messages.", Status: http.StatusForbidden},

	// 3xxx: Authentication and User Errors
	ErrInvalidToken:       {Code: ErrInvalidToken, Message: "Invalid or expired token", Status: http.StatusUnauthorized},
	ErrUserNotFound:       {Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusNotFound},
	ErrUserBanned:         {Code: ErrUserBanned, Message: "Your account has been banned.", Status: http.StatusForbidden},
	ErrUserInactive:       {Code: ErrUserInactive, Message: "Your account is inactive.", Status: http.StatusForbidden},
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Message: "Incorrect email or password.", Status: http.StatusUnauthorized},
	ErrInvalidUsername:    {Code: ErrInvalidUsername, Message: "Username must be at least 3 characters long."},
	ErrInvalidEmail:       {Code: ErrInvalidEmail, Message: "Invalid email format."},
	ErrWeakPassword:       {Code: ErrWeakPassword, Message: "Password must be at least 8 characters with an uppercase letter, a lowercase letter and a number."},
	ErrUsernameTaken:      {Code: ErrUsernameTaken, Message: "Username already exists.", Status: http.StatusConflict},
	ErrEmailTaken:         {Code: ErrEmailTaken, Message: "Email already registered.", Status: http.StatusConflict},
	ErrUnauthorized:       {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:            {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrPersistence:        {Code: ErrPersistence, Message: "Failed to save your data. Please try again.", Status: http.StatusInternalServerError},
	ErrStorageUnavailable: {Code: ErrStorageUnavailable, Message: "File storage is not available.", Status: http.StatusServiceUnavailable},
}
