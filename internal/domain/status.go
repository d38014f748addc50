package domain

// ServiceStatus is the single status enumeration used past the API facade.
// The backend speaks two wire dialects for the same field: a string
// enumeration ("ACTIVE"/"BLOCK"/"NOT PAID") and small integer codes
// (1/0/-1). Both are mapped here and neither leaks into the view layer.
type ServiceStatus int

const (
	StatusUnknown ServiceStatus = iota
	StatusActive
	StatusBlocked
	StatusNotPaid
	StatusDisabled
)

func (s ServiceStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusBlocked:
		return "blocked"
	case StatusNotPaid:
		return "not paid"
	case StatusDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

var statusByName = map[string]ServiceStatus{
	"ACTIVE":   StatusActive,
	"BLOCK":    StatusBlocked,
	"NOT PAID": StatusNotPaid,
	"DISABLED": StatusDisabled,
}

var statusByCode = map[int]ServiceStatus{
	1:  StatusActive,
	0:  StatusDisabled,
	-1: StatusBlocked,
}

func StatusFromName(raw string) ServiceStatus {
	if s, ok := statusByName[raw]; ok {
		return s
	}
	return StatusUnknown
}

func StatusFromCode(code int) ServiceStatus {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return StatusUnknown
}
