package shm

import (
	"encoding/json"
	"time"

	"github.com/bkeenke/bkcloud-cli/internal/domain"
)

// wireTime parses the date formats the backend has been seen emitting.
// Unparsable values decode to the zero time rather than failing the whole
// payload.
type wireTime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	if raw == "" {
		return nil
	}

	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return nil
}

// wireStatus accepts both status dialects: the string enumeration
// ("ACTIVE"/"BLOCK"/"NOT PAID") and the integer codes (1/0/-1).
type wireStatus domain.ServiceStatus

func (s *wireStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = wireStatus(domain.StatusFromName(name))
		return nil
	}

	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		*s = wireStatus(domain.StatusFromCode(code))
		return nil
	}

	*s = wireStatus(domain.StatusUnknown)
	return nil
}

func (s wireStatus) toDomain() domain.ServiceStatus {
	return domain.ServiceStatus(s)
}
