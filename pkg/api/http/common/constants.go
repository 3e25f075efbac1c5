package common

import (
	"net/http"
)

const (
	// API_ANALYZE is used to start an assessment or poll its status
	API_ANALYZE = "analyze"

	// DefaultBaseURL is the public SSL Labs v2 API
	DefaultBaseURL = "https://api.ssllabs.com/api/v2/"
)

// StatusMessages are the fixed descriptions of the service's documented error
// status codes. These always win over whatever the body says.
var StatusMessages = map[int]string{
	http.StatusNotFound:            "HTTP client error!",
	http.StatusBadRequest:          "Invalid query parameters!",
	http.StatusTooManyRequests:     "Too frequent polling!",
	http.StatusInternalServerError: "Internal error on remote server side!",
	http.StatusServiceUnavailable:  "Remote system unavailable!",
	StatusOverloaded:               "Remote system is overloaded!",
}

// StatusOverloaded is the service's non standard "overloaded" code.
const StatusOverloaded = 529
