package structs

// Status is the state of an assessment as reported by the remote service.
type Status string

const (
	// transient states
	DNS         Status = "DNS"
	IN_PROGRESS Status = "IN_PROGRESS"

	// end states
	READY Status = "READY"
	ERROR Status = "ERROR"
)

func IsFinalStatus(status Status) bool {
	switch status {
	case READY, ERROR:
		return true
	default:
		return false
	}
}

// ToStatus maps the service's status field. Matching is exact; anything else
// is "".
func ToStatus(s string) Status {
	switch s {
	case "DNS":
		return DNS
	case "IN_PROGRESS":
		return IN_PROGRESS
	case "READY":
		return READY
	case "ERROR":
		return ERROR
	default:
		return ""
	}
}
