// Package models contains the domain entities and their wire representations
package models

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"encoding/xml"
)

// User represents a user account in the system
type User struct {
	ID           int      `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"` // Never serialize password hash
	Roles        []string `json:"roles"`
}

// UserPayload is the canonical wire representation of a User.
// Field order is fixed; the password hash is never included.
type UserPayload struct {
	XMLName xml.Name `json:"-" xml:"user"`
	ID      int      `json:"id" xml:"id,attr"`
	Email   string   `json:"email" xml:"email"`
	Roles   []string `json:"roles" xml:"roles>role"`
}

// Payload builds the wire representation of the user
func (u *User) Payload() UserPayload {
	return UserPayload{
		ID:    u.ID,
		Email: u.Email,
		Roles: u.Roles,
	}
}

// ETag returns the optimistic-locking fingerprint of the user: an md5 over
// the canonical JSON representation combined with the current password hash,
// so that any credential change also invalidates held tags.
func (u *User) ETag() string {
	payload, _ := json.Marshal(u.Payload())
	return etagOf(append(payload, []byte(u.PasswordHash)...))
}

// userEnvelope wraps a user payload as {"user": {...}}
type userEnvelope struct {
	User UserPayload `json:"user"`
}

// MarshalUser serializes the single-user envelope in the given format
func MarshalUser(u *User, format string) ([]byte, error) {
	switch format {
	case "xml":
		return xml.Marshal(u.Payload())
	default:
		return json.Marshal(userEnvelope{User: u.Payload()})
	}
}

// etagOf returns the hex md5 digest used as an ETag value
func etagOf(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}

// ErrorPayload is the uniform error envelope for non-2xx responses.
// Message is a pointer so bodiless failures serialize a null message.
type ErrorPayload struct {
	XMLName xml.Name `json:"-" xml:"error"`
	Code    int      `json:"code" xml:"code"`
	Message *string  `json:"message" xml:"message"`
}

// MarshalError serializes the error envelope in the given format
func MarshalError(code int, message *string, format string) ([]byte, error) {
	payload := ErrorPayload{Code: code, Message: message}
	switch format {
	case "xml":
		return xml.Marshal(payload)
	default:
		return json.Marshal(payload)
	}
}

// ContentType returns the response content type for a negotiated format
func ContentType(format string) string {
	if format == "xml" {
		return "application/xml; charset=utf-8"
	}
	return "application/json; charset=utf-8"
}
