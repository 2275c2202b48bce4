package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCodeAndDetails(t *testing.T) {
	base := Schema([]string{"gender", "ET"})
	wrapped := Wrap(base, "loading survey")

	assert.True(t, IsSchema(wrapped))
	assert.Equal(t, []string{"gender", "ET"}, GetDetails(wrapped))
	assert.Equal(t, "loading survey: required columns missing: gender, ET", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	err := Wrapf(fmt.Errorf("disk full"), "writing %s", "chart.png")
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Equal(t, "writing chart.png: disk full", err.Error())
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeComparisonUndefined, Wrap(fmt.Errorf("sample too small"), "mann-whitney"))
	assert.True(t, IsComparisonUndefined(err))
	assert.Equal(t, "mann-whitney: sample too small", err.Error())

	assert.Equal(t, CodeNotFound, GetCode(WithCode(CodeNotFound, fmt.Errorf("gone"))))
	assert.Nil(t, WithCode(CodeNotFound, nil))
}

func TestPredicates(t *testing.T) {
	cause := fmt.Errorf("no such file")
	load := DataLoad("cleaned_data.csv", cause)

	assert.True(t, IsDataLoad(load))
	assert.False(t, IsSchema(load))
	assert.True(t, stderrors.Is(load, cause))
	assert.Equal(t, []string{"cleaned_data.csv"}, GetDetails(load))

	assert.True(t, IsFilterConstruction(FilterConstruction("bad value")))
	assert.Equal(t, "selection not found", NotFound("selection").Error())
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
	assert.False(t, HasCode(nil, CodeInternalError))
	assert.True(t, IsAppError(Wrap(InvalidInput("x"), "y")))
}
