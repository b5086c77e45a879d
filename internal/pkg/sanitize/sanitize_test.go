package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(""))
	assert.Equal(t, "Cozy 2BR near campus", Text("  Cozy 2BR near campus "))
	assert.Equal(t, "Hello", Text("<p>Hello</p><script>alert('xss')</script>"))
	assert.Equal(t, "Tom & Jerry's place", Text("Tom & Jerry's place"))
	assert.Equal(t, "Click", Text(`<a href="javascript:alert(1)">Click</a>`))
}

func TestPtr(t *testing.T) {
	assert.Nil(t, Ptr(nil))

	in := "<b>bold</b>"
	assert.Equal(t, "bold", *Ptr(&in))
}
