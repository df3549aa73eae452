package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSequence(t *testing.T) {
	got, err := FormatSequence(SequenceInvoice, 1)
	require.NoError(t, err)
	assert.Equal(t, "INV0001", got)

	got, err = FormatSequence(SequenceStaff, 42)
	require.NoError(t, err)
	assert.Equal(t, "STAFF0042", got)

	got, err = FormatSequence(SequenceInvoice, 12345)
	require.NoError(t, err)
	assert.Equal(t, "INV12345", got)

	_, err = FormatSequence("ticket", 1)
	assert.Error(t, err)
}

func TestNext_UnknownSequenceDoesNotTouchRedis(t *testing.T) {
	svc := NewSequenceService(nil, quietLogger())

	_, err := svc.Next(context.Background(), "ticket")

	assert.ErrorContains(t, err, "unknown sequence")
}
