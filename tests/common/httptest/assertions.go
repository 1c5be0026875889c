//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// envelope mirrors the API response wrapper so assertions can unwrap data.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String())) {
		return
	}

	if expectedStatus < 200 || expectedStatus >= 300 {
		return
	}

	var env envelope
	err := json.Unmarshal(w.Body.Bytes(), &env)
	if !assert.NoError(t, err, fmt.Sprintf("Failed to decode response JSON: %s", w.Body.String())) {
		return
	}
	assert.True(t, env.Success, "Expected success=true in response envelope")

	if targetStruct != nil {
		err = json.Unmarshal(env.Data, targetStruct)
		assert.NoError(t, err, fmt.Sprintf("Failed to decode response data: %s", w.Body.String()))
	}
}

func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d", expectedStatus, w.Code))

	var env envelope
	err := json.Unmarshal(w.Body.Bytes(), &env)
	assert.NoError(t, err, fmt.Sprintf("Failed to decode error response JSON: %s", w.Body.String()))
	assert.False(t, env.Success, "Expected success=false in error envelope")

	if expectedErrorMsg != "" {
		assert.Contains(t, env.Error, expectedErrorMsg,
			"Response error message doesn't contain expected text")
	}
}
