package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInsufficientHistory  ErrorCode = 106
	ErrCodeInvalidPeriod        ErrorCode = 108
	ErrCodeMissingParameter     ErrorCode = 109
	ErrCodeInvalidVersion       ErrorCode = 110
	ErrCodeInvalidThreshold     ErrorCode = 112

	// Data/Resource errors (200-299)
	ErrCodeDataUnavailable       ErrorCode = 200
	ErrCodeDataSourceUnavailable ErrorCode = 201
	ErrCodeQueryFailed           ErrorCode = 202
	ErrCodeHistoricalDataFailed  ErrorCode = 203
	ErrCodeMalformedBar          ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorCalculation ErrorCode = 302

	// Signal errors (400-499)
	ErrCodeSignalSynthesis ErrorCode = 400
	ErrCodeVersionMismatch ErrorCode = 404

	// Notification errors (500-599)
	ErrCodeNotificationFailed ErrorCode = 500

	// Market data errors (700-799)
	ErrCodeMarketDataFetchFailed ErrorCode = 700
	ErrCodeMarketDataWriteFailed ErrorCode = 701
	ErrCodeMarketDataParseFailed ErrorCode = 702
	ErrCodeInvalidProvider       ErrorCode = 704
	ErrCodeExportFailed          ErrorCode = 705
)
