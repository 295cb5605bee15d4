package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert.Equal(t, "tag_not_found", Code(ErrTagNotFound))
	assert.Equal(t, "tag_not_found", Code(fmt.Errorf("find tag: %w", ErrTagNotFound)))
	assert.Empty(t, Code(errors.New("boom")))
	assert.Empty(t, Code(nil))
}

func TestGenerateID(t *testing.T) {
	now := time.Unix(1700000000, 0)
	assert.Equal(t, fmt.Sprintf("%x", int64(1700000000)*10_000_000), GenerateID(now))
	assert.NotEqual(t, GenerateID(now), GenerateID(now.Add(time.Microsecond)))
}

func TestValidateTagName(t *testing.T) {
	assert.NoError(t, ValidateTagName("rules"))
	assert.ErrorIs(t, ValidateTagName(""), ErrTagNameInvalid)
	assert.ErrorIs(t, ValidateTagName("Rules"), ErrTagNameInvalid)
	assert.ErrorIs(t, ValidateTagName("rule1"), ErrTagNameInvalid)
	assert.ErrorIs(t, ValidateTagName(strings.Repeat("a", MaxTagNameLength+1)), ErrTagNameTooLong)
	assert.NoError(t, ValidateTagName(strings.Repeat("a", MaxTagNameLength)))
}

func TestValidateWarnRules(t *testing.T) {
	assert.NoError(t, ValidateWarnType("spam"))
	assert.ErrorIs(t, ValidateWarnType("spam!"), ErrWarnTypeInvalid)
	assert.ErrorIs(t, ValidateWarnType(strings.Repeat("x", 26)), ErrWarnTypeTooLong)

	assert.NoError(t, ValidatePoints(MinPoints))
	assert.NoError(t, ValidatePoints(MaxPoints))
	assert.ErrorIs(t, ValidatePoints(0), ErrPointsOutOfRange)
	assert.ErrorIs(t, ValidatePoints(21), ErrPointsOutOfRange)

	assert.NoError(t, ValidateComment(strings.Repeat("é", MaxCommentLength)))
	assert.ErrorIs(t, ValidateComment(strings.Repeat("c", MaxCommentLength+1)), ErrCommentTooLong)
}

func TestValidateConfigValues(t *testing.T) {
	assert.NoError(t, ValidatePrefix("+"))
	assert.NoError(t, ValidatePrefix("bb!"))
	assert.ErrorIs(t, ValidatePrefix(""), ErrPrefixInvalid)
	assert.ErrorIs(t, ValidatePrefix("a b"), ErrPrefixInvalid)
	assert.ErrorIs(t, ValidatePrefix("toolong"), ErrPrefixInvalid)

	assert.NoError(t, ValidateLocale("fr"))
	assert.ErrorIs(t, ValidateLocale("de"), ErrLocaleInvalid)

	assert.ErrorIs(t, ValidateMaxPoints(0), ErrMaxPointsRange)
	assert.NoError(t, ValidateMaxPoints(100))
	assert.ErrorIs(t, ValidateMaxStrikes(11), ErrMaxStrikesRange)

	assert.ErrorIs(t, ValidateGateText(strings.Repeat("g", 251)), ErrGateTextTooLong)
	assert.ErrorIs(t, ValidateGateText("  "), ErrInvalidValue)
}

func TestOrdinal(t *testing.T) {
	for n, want := range map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 102: "102nd", 111: "111th"} {
		assert.Equal(t, want, Ordinal(n))
	}
}
