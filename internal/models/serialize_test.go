package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *User {
	return &User{
		ID:           5,
		Email:        "a@b.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Roles:        []string{"ROLE_USER"},
	}
}

func testResult() *Result {
	return &Result{
		ID:     7,
		User:   *testUser(),
		Result: 42.5,
		Time:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMarshalUser_JSON(t *testing.T) {
	body, err := MarshalUser(testUser(), "json")
	require.NoError(t, err)

	assert.JSONEq(t, `{"user":{"id":5,"email":"a@b.com","roles":["ROLE_USER"]}}`, string(body))
	assert.NotContains(t, string(body), "password")
}

func TestMarshalUser_XML(t *testing.T) {
	body, err := MarshalUser(testUser(), "xml")
	require.NoError(t, err)

	assert.Equal(t,
		`<user id="5"><email>a@b.com</email><roles><role>ROLE_USER</role></roles></user>`,
		string(body))
}

func TestMarshalResult_JSON(t *testing.T) {
	body, err := MarshalResult(testResult(), "json")
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"id":7,"user":{"id":5,"email":"a@b.com","roles":["ROLE_USER"]},"result":42.5,"time":"2024-01-01T00:00:00Z"}`,
		string(body))
}

func TestMarshalResult_XML(t *testing.T) {
	body, err := MarshalResult(testResult(), "xml")
	require.NoError(t, err)

	assert.Equal(t,
		`<result id="7"><user id="5"><email>a@b.com</email><roles><role>ROLE_USER</role></roles></user><result>42.5</result><time>2024-01-01T00:00:00Z</time></result>`,
		string(body))
}

func TestMarshalResultWrapped_JSON(t *testing.T) {
	body, err := MarshalResultWrapped(testResult(), "json")
	require.NoError(t, err)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &envelope))
	assert.Contains(t, envelope, "result")
}

func TestMarshalResults(t *testing.T) {
	results := []Result{*testResult()}

	jsonBody, err := MarshalResults(results, "json")
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"results":[{"result":{"id":7,"user":{"id":5,"email":"a@b.com","roles":["ROLE_USER"]},"result":42.5,"time":"2024-01-01T00:00:00Z"}}]}`,
		string(jsonBody))

	xmlBody, err := MarshalResults(results, "xml")
	require.NoError(t, err)
	assert.Contains(t, string(xmlBody), "<results>")
	assert.Contains(t, string(xmlBody), `<result id="7">`)
}

func TestMarshalError(t *testing.T) {
	msg := "Not Found: Result not found."
	body, err := MarshalError(404, &msg, "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":404,"message":"Not Found: Result not found."}`, string(body))

	// nil message serializes as null for bodiless failures
	body, err = MarshalError(404, nil, "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":404,"message":null}`, string(body))

	body, err = MarshalError(404, &msg, "xml")
	require.NoError(t, err)
	assert.Contains(t, string(body), "<code>404</code>")
}

func TestUserETag(t *testing.T) {
	user := testUser()

	etag := user.ETag()
	assert.Len(t, etag, 32)
	assert.Equal(t, etag, user.ETag(), "ETag must be stable for an unchanged user")

	// any attribute change invalidates the tag
	changed := *user
	changed.Email = "c@d.com"
	assert.NotEqual(t, etag, changed.ETag())

	// the password hash participates even though it is never serialized
	rehashed := *user
	rehashed.PasswordHash = "$2a$10$vutsrqponmlkjihgfedcba"
	assert.NotEqual(t, etag, rehashed.ETag())
}

func TestResultETag(t *testing.T) {
	result := testResult()

	etag := result.ETag()
	assert.Len(t, etag, 32)
	assert.Equal(t, etag, result.ETag())

	changed := *result
	changed.Result = 1.0
	assert.NotEqual(t, etag, changed.ETag())
}

func TestResultsETag(t *testing.T) {
	results := []Result{*testResult()}

	etag := ResultsETag(results)
	assert.Len(t, etag, 32)
	assert.Equal(t, etag, ResultsETag(results))

	more := append([]Result{}, results...)
	more = append(more, *testResult())
	assert.NotEqual(t, etag, ResultsETag(more))
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "RFC3339", value: "2024-01-01T00:00:00Z", wantErr: false},
		{name: "no timezone", value: "2024-01-01T00:00:00", wantErr: false},
		{name: "space separated", value: "2024-01-01 00:00:00", wantErr: false},
		{name: "garbage", value: "yesterday", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseTime(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2024, parsed.Year())
		})
	}
}
