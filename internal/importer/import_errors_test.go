package importer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportErrorSentinelMatching(t *testing.T) {
	assert.True(t, errors.Is(NewExtractError("u-1", "bad xref"), ErrExtractFailed))
	assert.True(t, errors.Is(NewEmptyContentError("u-1"), ErrEmptyContent))
	assert.True(t, errors.Is(NewUnsupportedKindError("u-1", "ext .txt"), ErrUnsupportedKind))
	assert.True(t, errors.Is(NewFileTooLargeError("u-1", "30 MB"), ErrFileTooLarge))
	assert.True(t, errors.Is(NewPersistError("u-1", "redis down"), ErrPersistFailed))

	assert.False(t, errors.Is(NewExtractError("u-1", ""), ErrFileTooLarge))
}

func TestImportErrorMessage(t *testing.T) {
	err := NewFileTooLargeError("u-42", "declared size too big")
	assert.Contains(t, err.Error(), "u-42")
	assert.Contains(t, err.Error(), "declared size too big")

	// UUID尚未分配时不输出空的UUID段
	noUUID := NewExtractError("", "corrupt header")
	assert.NotContains(t, noUUID.Error(), "UUID")
	assert.Contains(t, noUUID.Error(), "corrupt header")
}
