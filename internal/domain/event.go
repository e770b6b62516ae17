package domain

import (
	"context"
	"time"
)

// RawReport is the JSON payload published to the source topic. Station is
// optional; when set it overrides the identifier found in the body.
type RawReport struct {
	Station string `json:"station,omitempty"`
	Body    string `json:"body"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Token kinds, in dispatch order.
const (
	KindWind        = "wind"
	KindVisibility  = "visibility"
	KindWeather     = "weather"
	KindSky         = "sky"
	KindTemperature = "temperature"
	KindDewPoint    = "dew_point"
)

// DecodedToken is one report group and its rendering.
type DecodedToken struct {
	Token string `json:"token"`
	Kind  string `json:"kind"`
	Text  string `json:"text"`
}

// DecodedReport is the localized decoding of a whole report.
type DecodedReport struct {
	ID          string         `json:"id"`
	Station     string         `json:"station,omitempty"`
	Time        string         `json:"time,omitempty"` // DDHHMMZ as reported
	Raw         string         `json:"raw"`
	Locale      string         `json:"locale"`
	Tokens      []DecodedToken `json:"tokens"`
	Unparsed    []string       `json:"unparsed,omitempty"`
	ProcessedAt time.Time      `json:"processed_at"`
}
