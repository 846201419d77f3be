package transport

import (
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Timestamp is a protobuf timestamp that travels in its canonical JSON
// form: an RFC 3339 string in UTC, for example "2024-05-01T07:00:00Z".
type Timestamp struct {
	*timestamppb.Timestamp
}

func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Timestamp: timestamppb.New(t)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Timestamp == nil {
		return []byte("null"), nil
	}
	return protojson.Marshal(t.Timestamp)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Timestamp = nil
		return nil
	}
	ts := &timestamppb.Timestamp{}
	if err := protojson.Unmarshal(data, ts); err != nil {
		return err
	}
	t.Timestamp = ts
	return nil
}
