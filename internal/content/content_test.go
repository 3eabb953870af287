package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nagabalm/internal/model"
)

func TestFAQ(t *testing.T) {
	en := FAQ(model.LocaleEN)
	km := FAQ(model.LocaleKM)

	assert.Len(t, km, len(en))
	assert.NotEmpty(t, en)

	for i := range en {
		assert.NotEmpty(t, en[i].Question)
		assert.NotEmpty(t, en[i].Answer)
		assert.NotEmpty(t, km[i].Question)
		assert.NotEqual(t, en[i].Question, km[i].Question)
	}
}

func TestLocations(t *testing.T) {
	en := Locations(model.LocaleEN)
	km := Locations(model.LocaleKM)

	assert.Len(t, km, len(en))
	assert.NotEmpty(t, en)

	for i := range en {
		assert.NotEmpty(t, en[i].Title)
		assert.NotEqual(t, en[i].Title, km[i].Title)
		// Partner names are not translated
		assert.Equal(t, en[i].Locations, km[i].Locations)
		assert.NotEmpty(t, en[i].Locations)
	}
}
