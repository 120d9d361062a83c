package sequence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/boutique-api/internal/domain/sequence"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "CUST001", sequence.Format(sequence.PrefixCustomer, 1))
	assert.Equal(t, "ORD042", sequence.Format(sequence.PrefixOrder, 42))
	assert.Equal(t, "PAY1234", sequence.Format(sequence.PrefixPayment, 1234))
}
