// Package catalog holds the business categories a user can sign up with.
package catalog

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Category struct {
	Slug          string   `json:"slug"`
	Label         string   `json:"label"`
	SubCategories []string `json:"subCategories"`
}

// Categories is ordered as shown on the signup form.
var Categories = []Category{
	{Slug: "alexa-skills", SubCategories: []string{"Smart Home", "Games", "Productivity"}},
	{Slug: "devices", SubCategories: []string{"Smartphones", "Laptops", "Tablets"}},
	{Slug: "fashion", SubCategories: []string{"Men", "Women", "Kids"}},
	{Slug: "pharmacy", SubCategories: []string{"Medicines", "Health Supplements", "Personal Care"}},
	{Slug: "appliances", SubCategories: []string{"Kitchen", "Home", "Electronics"}},
	{Slug: "apps-and-games", SubCategories: []string{"Mobile Apps", "PC Games", "Console Games"}},
	{Slug: "audiobooks", SubCategories: []string{"Fiction", "Non-fiction", "Self-help"}},
	{Slug: "books", SubCategories: []string{"Novels", "Educational", "Comics"}},
	{Slug: "clothing-and-accessories", SubCategories: []string{"Casual", "Formal", "Sportswear"}},
	{Slug: "electronics", SubCategories: []string{"Cameras", "Audio", "Wearables"}},
	{Slug: "cars-and-motorbikes", SubCategories: []string{"Cars", "Bikes", "Accessories"}},
	{Slug: "deals", SubCategories: []string{"Daily Deals", "Coupons", "Flash Sales"}},
	{Slug: "furniture-and-outdoor", SubCategories: []string{"Indoor", "Outdoor", "Office"}},
}

var bySlug = func() map[string]Category {
	m := make(map[string]Category, len(Categories))
	for i := range Categories {
		Categories[i].Label = strings.ReplaceAll(Categories[i].Slug, "-", " ")
		m[Categories[i].Slug] = Categories[i]
	}
	return m
}()

// IsValid reports whether category exists and sub, when given, belongs to it.
func IsValid(category, sub string) bool {
	c, ok := bySlug[category]
	if !ok {
		return false
	}
	if sub == "" {
		return true
	}
	for _, s := range c.SubCategories {
		if s == sub {
			return true
		}
	}
	return false
}

// GET /categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(Categories)
	}
}
