package dashboard

import "errors"

// RefreshFailedMessage is the single message shown when a batch load fails
const RefreshFailedMessage = "Failed to load dashboard data. Make sure the backend server is running."

var (
	ErrNoSnapshot    = errors.New("no attendance data available")
	ErrRefreshFailed = errors.New(RefreshFailedMessage)
)
