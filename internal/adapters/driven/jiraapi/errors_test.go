package jiraapi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{StatusCode: 404, Method: "GET", URL: "https://jira.example.com/x", Body: "gone"}
	assert.Equal(t, "status 404: gone", err.Error())

	bare := &APIError{StatusCode: 500}
	assert.Equal(t, "status 500", bare.Error())
}

func TestIsNotFound(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &APIError{StatusCode: 404})
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(&APIError{StatusCode: 401}))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&APIError{StatusCode: 401}))
	assert.False(t, IsUnauthorized(&APIError{StatusCode: 404}))
}
