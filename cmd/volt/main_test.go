package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitArgsSeparatesInputsFromOutputs(t *testing.T) {
	inputs, outputs, err := splitArgs([]string{"a.volt", "b.volt", "-o", "a.out", "b.out"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"a.volt", "b.volt"}, inputs)
	assert.Equal(t, []string{"a.out", "b.out"}, outputs)
}

func TestSplitArgsRejectsMissingSeparator(t *testing.T) {
	_, _, err := splitArgs([]string{"a.volt", "b.volt"})
	assert.Error(t, err)
}

func TestSplitArgsRejectsCountMismatch(t *testing.T) {
	_, _, err := splitArgs([]string{"a.volt", "b.volt", "-o", "a.out"})
	assert.Error(t, err)
}

func TestSplitArgsRejectsEmptyInputs(t *testing.T) {
	_, _, err := splitArgs([]string{"-o", "a.out"})
	assert.Error(t, err)
}
