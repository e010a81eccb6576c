package utils

// API error codes returned alongside human readable messages.
const (
	ErrorTokenAuthFail   = 40101
	ErrorInvalidArgument = 40001
	ErrorNotFound        = 40401
	ErrorForbidden       = 40301
	ErrorRemoteFailure   = 50201
)
