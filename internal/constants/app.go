package constants

// Application Information
const (
	AppName    = "Car Rental Service"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "5000"
	DefaultEnvironment = EnvDevelopment
)

// Cache Key Prefixes
const (
	CacheKeyPrefix = "carrental:"
	CacheKeyUser   = CacheKeyPrefix + "user:"
)

// User Roles
const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// Upload locations, relative to the configured upload dir
const (
	UploadSubdirLicenses = "licenses"
	UploadSubdirCars     = "cars"
	UploadURLPrefix      = "/uploads"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)
