package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// wireSnapshot mirrors the JSON document with pointer fields so a missing
// field can be told apart from a zero value.
type wireSnapshot struct {
	TotalRequests *int64       `json:"total_requests"`
	UptimeSeconds *float64     `json:"uptime_seconds"`
	Servers       []wireServer `json:"servers"`
}

type wireServer struct {
	Name     *string `json:"name"`
	URL      *string `json:"url"`
	Requests *int64  `json:"requests"`
	Healthy  *bool   `json:"healthy"`
}

func (w wireSnapshot) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.TotalRequests, validation.NotNil, validation.Min(int64(0))),
		validation.Field(&w.UptimeSeconds, validation.NotNil, validation.Min(0.0)),
		validation.Field(&w.Servers, validation.NotNil, validation.By(uniqueNames)),
	)
}

// uniqueNames rejects a server list in which a name appears twice. Nameless
// entries are left to wireServer.Validate.
func uniqueNames(value interface{}) error {
	servers, ok := value.([]wireServer)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a server list")
	}

	seen := make(map[string]struct{}, len(servers))
	for _, s := range servers {
		if s.Name == nil || *s.Name == "" {
			continue
		}
		if _, dup := seen[*s.Name]; dup {
			return validation.NewError("validation_duplicate_name", fmt.Sprintf("duplicate server name %q", *s.Name))
		}
		seen[*s.Name] = struct{}{}
	}

	return nil
}

func (s wireServer) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required),
		validation.Field(&s.URL, validation.NotNil),
		validation.Field(&s.Requests, validation.NotNil, validation.Min(int64(0))),
		validation.Field(&s.Healthy, validation.NotNil),
	)
}

// Decode reads one snapshot document. Unknown fields are ignored; a missing
// required field, a negative counter or a repeated server name is an error.
func Decode(r io.Reader) (*Snapshot, error) {
	var w wireSnapshot
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	snap := &Snapshot{
		TotalRequests: *w.TotalRequests,
		UptimeSeconds: *w.UptimeSeconds,
		Servers:       make([]ServerEntry, 0, len(w.Servers)),
	}

	for _, s := range w.Servers {
		snap.Servers = append(snap.Servers, ServerEntry{
			Name:     *s.Name,
			URL:      *s.URL,
			Requests: *s.Requests,
			Healthy:  *s.Healthy,
		})
	}

	return snap, nil
}
