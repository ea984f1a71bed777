package constants

import "math"

// Pagination Query Parameters
const (
	QueryParamPage  = "page"
	QueryParamLimit = "limit"
)

// Default Pagination Values (as strings for query parsing)
const (
	DefaultPage  = "1"
	DefaultLimit = "10"
)

// Pagination Limits (as integers for validation)
const (
	MinPage  = 1
	MinLimit = 1
	MaxLimit = 100

	// MaxPage keeps (page-1)*limit within an int.
	MaxPage = math.MaxInt / MaxLimit
)
