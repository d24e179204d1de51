package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

type CategoryDTO struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	MetaTitle    string `json:"metaTitle"`
	ProductCount int    `json:"productCount"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// SlugValidator backs the "slug" binding tag on category inputs.
func SlugValidator(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}
