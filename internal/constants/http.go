package constants

// HTTP Header Names
const (
	HeaderContentType    = "Content-Type"
	HeaderAuthorization  = "Authorization"
	HeaderUserAgent      = "User-Agent"
	HeaderXRequestID     = "X-Request-ID"
	HeaderXForwardedFor  = "X-Forwarded-For"
	HeaderXRealIP        = "X-Real-IP"
	HeaderCFConnectingIP = "CF-Connecting-IP"
)

// Authorization scheme
const BearerPrefix = "Bearer "

// HTTP Content Types
const (
	ContentTypeJSON      = "application/json"
	ContentTypeMultipart = "multipart/form-data"
)

// Multipart field names
const (
	FormFieldLicenseFront = "driversLicenseFront"
	FormFieldLicenseBack  = "driversLicenseBack"
	FormFieldImage        = "image"
)

// Common HTTP Error Messages
const (
	MsgUnauthorized       = "Unauthorized access"
	MsgForbidden          = "Access forbidden"
	MsgNotFound           = "Resource not found"
	MsgBadRequest         = "Invalid request"
	MsgInternalError      = "Internal server error"
	MsgServiceUnavailable = "Service temporarily unavailable"
	MsgTimeout            = "Request timeout"
)

// Per-operation fallbacks for unexpected failures
const (
	MsgRegisterFailed    = "Error registering user"
	MsgLoginFailed       = "Error logging in"
	MsgSendCodeFailed    = "Error sending verification code"
	MsgVerifyPhoneFailed = "Error verifying phone number"
)

// Request parsing messages
const (
	MsgInvalidBody  = "Invalid request body"
	MsgInvalidCarID = "Invalid car ID"
	MsgInvalidUser  = "Invalid user ID"
)

// HTTP Success Messages
const (
	MsgVerificationSent = "Verification code sent successfully"
	MsgPhoneVerified    = "Phone number verified successfully"
	MsgFileUploaded     = "File uploaded successfully"
	MsgCarListed        = "Car listed successfully"
	MsgCarUpdated       = "Car updated successfully"
	MsgCarDeleted       = "Car deleted successfully"
	MsgProfileUpdated   = "Profile updated successfully"
	MsgCacheInvalidated = "Cache entry removed"
)
