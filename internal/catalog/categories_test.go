package catalog

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("devices", ""))
	assert.True(t, IsValid("devices", "Laptops"))
	assert.False(t, IsValid("devices", "Comics"))
	assert.False(t, IsValid("Devices", ""))
	assert.False(t, IsValid("", ""))
}

func TestListCategoriesHandler(t *testing.T) {
	app := fiber.New()
	app.Get("/categories", ListCategoriesHandler())

	resp, err := app.Test(httptest.NewRequest("GET", "/categories", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var got []Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 13)
	assert.Equal(t, "alexa-skills", got[0].Slug)
	assert.Equal(t, "alexa skills", got[0].Label)
	assert.Equal(t, "furniture and outdoor", got[12].Label)
}
