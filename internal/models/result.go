package models

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"time"
)

// Result represents a single measurement belonging to exactly one user
type Result struct {
	ID     int
	User   User
	Result float64
	Time   time.Time
}

// TimeLayout is the canonical serialization layout for measurement times
const TimeLayout = time.RFC3339

// timeLayouts are the accepted input layouts for measurement times
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTime parses a client-supplied measurement time
func ParseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time value: %q", value)
}

// ResultPayload is the canonical wire representation of a Result
type ResultPayload struct {
	XMLName xml.Name    `json:"-" xml:"result"`
	ID      int         `json:"id" xml:"id,attr"`
	User    UserPayload `json:"user" xml:"user"`
	Result  float64     `json:"result" xml:"result"`
	Time    string      `json:"time" xml:"time"`
}

// Payload builds the wire representation of the result
func (r *Result) Payload() ResultPayload {
	payload := ResultPayload{
		ID:     r.ID,
		User:   r.User.Payload(),
		Result: r.Result,
		Time:   r.Time.Format(TimeLayout),
	}
	// the nested user element must not carry its own root name
	payload.User.XMLName = xml.Name{}
	return payload
}

// ETag returns the cache-validation fingerprint of the result, an md5 over
// the canonical JSON representation.
func (r *Result) ETag() string {
	payload, _ := json.Marshal(r.Payload())
	return etagOf(payload)
}

// ResultsETag returns the cache-validation fingerprint of a collection
func ResultsETag(results []Result) string {
	items := make([]resultItem, len(results))
	for i := range results {
		items[i] = resultItem{Result: results[i].Payload()}
	}
	payload, _ := json.Marshal(resultsEnvelope{Results: items})
	return etagOf(payload)
}

// resultEnvelope wraps a result payload as {"result": {...}}
type resultEnvelope struct {
	Result ResultPayload `json:"result"`
}

// resultItem is one entry of the JSON collection envelope
type resultItem struct {
	Result ResultPayload `json:"result"`
}

// resultsEnvelope wraps the collection as {"results": [{"result": {...}}, ...]}
type resultsEnvelope struct {
	Results []resultItem `json:"results"`
}

// xmlResults is the XML shape of the collection envelope
type xmlResults struct {
	XMLName xml.Name        `xml:"results"`
	Results []ResultPayload `xml:"result"`
}

// MarshalResult serializes a bare result representation in the given format
func MarshalResult(r *Result, format string) ([]byte, error) {
	switch format {
	case "xml":
		return xml.Marshal(r.Payload())
	default:
		return json.Marshal(r.Payload())
	}
}

// MarshalResultWrapped serializes the single-result envelope {"result": {...}}
func MarshalResultWrapped(r *Result, format string) ([]byte, error) {
	switch format {
	case "xml":
		return xml.Marshal(r.Payload())
	default:
		return json.Marshal(resultEnvelope{Result: r.Payload()})
	}
}

// MarshalResults serializes the collection envelope in the given format
func MarshalResults(results []Result, format string) ([]byte, error) {
	switch format {
	case "xml":
		payload := xmlResults{Results: make([]ResultPayload, len(results))}
		for i := range results {
			payload.Results[i] = results[i].Payload()
		}
		return xml.Marshal(payload)
	default:
		items := make([]resultItem, len(results))
		for i := range results {
			items[i] = resultItem{Result: results[i].Payload()}
		}
		return json.Marshal(resultsEnvelope{Results: items})
	}
}
