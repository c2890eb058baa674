package azure

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// hasStatus reports whether err carries an ARM response with one of the
// given HTTP status codes anywhere in its chain.
func hasStatus(err error, statuses ...int) bool {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return false
	}
	for _, status := range statuses {
		if respErr.StatusCode == status {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err is an ARM 404.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict reports whether err is an ARM 409, returned for example when a
// role assignment already exists.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// IsPreconditionFailed reports whether err is an ARM 412, returned when a
// conditional write lost against an existing resource.
func IsPreconditionFailed(err error) bool {
	return hasStatus(err, http.StatusPreconditionFailed)
}
