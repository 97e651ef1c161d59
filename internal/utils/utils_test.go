package utils_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/takoeight0821/lox/internal/token"
	"github.com/takoeight0821/lox/internal/utils"
)

func TestErrorAt(t *testing.T) {
	err := utils.ErrorAt(token.Token{Kind: token.PLUS, Lexeme: "+", Line: 3}, "bad %s", "thing")
	assert.EqualError(t, err, "[line 3] at `+`: bad thing")

	err = utils.ErrorAt(token.Token{Kind: token.EOF, Line: 2}, "expected expression")
	assert.EqualError(t, err, "[line 2] at end: expected expression")

	assert.EqualError(t, utils.Errorf("no position"), "no position")
}

func TestSentence(t *testing.T) {
	assert.Equal(t, "Missing end-quote.", utils.Sentence(errors.New("Missing end-quote")))
	assert.Equal(t, "done.", utils.Sentence(errors.New("done.")))
	assert.Equal(t, "trimmed.", utils.Sentence(errors.New("trimmed \n")))
}

func TestReadTestData(t *testing.T) {
	data := utils.ReadTestData([]byte(`
- label: on
  enable: true
  input: 1 + 2
  expected:
    eval: "3"
- label: off
  enable: false
  input: x
`))
	assert.Len(t, data, 1)
	assert.Equal(t, "on", data[0].Label)
	assert.Equal(t, "1 + 2", data[0].Input)
	assert.Equal(t, "3", data[0].Expected["eval"])
}
