package archive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withAvailableMemory(t *testing.T, available uint64, err error) {
	t.Helper()
	original := availableMemory
	availableMemory = func() (uint64, error) { return available, err }
	t.Cleanup(func() { availableMemory = original })
}

func TestFitsInMemory(t *testing.T) {
	withAvailableMemory(t, 4096, nil)
	assert.True(t, FitsInMemory(0))
	assert.True(t, FitsInMemory(1024))
	assert.False(t, FitsInMemory(1025))

	withAvailableMemory(t, 0, errors.New("no /proc"))
	assert.True(t, FitsInMemory(1<<40))
}

func TestFitsInMemory_RealSystem(t *testing.T) {
	assert.True(t, FitsInMemory(1))
}
