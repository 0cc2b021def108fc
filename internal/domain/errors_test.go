package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportErrorMessage(t *testing.T) {
	t.Parallel()

	withDetail := &TransportError{StatusCode: 409, Detail: "Insufficient stock"}
	assert.Equal(t, "trade server error: status 409: Insufficient stock", withDetail.Error())

	bare := &TransportError{StatusCode: 502}
	assert.Equal(t, "trade server error: status 502", bare.Error())
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Reason: "no items selected"}
	assert.Equal(t, "trade validation failed: no items selected", err.Error())
}
