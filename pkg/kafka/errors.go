package kafka

import (
	"errors"
	"fmt"
)

// Error types for Kafka operations
var (
	// ErrProducerClosed indicates the producer has been closed
	ErrProducerClosed = errors.New("kafka producer is closed")

	// ErrEmptyKey indicates the message key is empty
	ErrEmptyKey = errors.New("message key cannot be empty")

	// ErrEmptyValue indicates the message value is empty
	ErrEmptyValue = errors.New("message value cannot be empty")
)

// KafkaError wraps errors with additional context
type KafkaError struct {
	Permanent bool
	Message   string
	Err       error
}

// Error implements the error interface
func (e *KafkaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *KafkaError) Unwrap() error {
	return e.Err
}

// NewPermanentError creates an error that retrying will not fix (bad payload, bad config)
func NewPermanentError(message string, err error) *KafkaError {
	return &KafkaError{
		Permanent: true,
		Message:   message,
		Err:       err,
	}
}

// IsPermanent reports whether err wraps a permanent KafkaError
func IsPermanent(err error) bool {
	var kafkaErr *KafkaError
	return errors.As(err, &kafkaErr) && kafkaErr.Permanent
}
