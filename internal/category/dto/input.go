package dto

type CreateCategoryInput struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"omitempty,slug"`
	Description string `json:"description"`
	MetaTitle   string `json:"metaTitle"`
}

type UpdateCategoryInput struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"omitempty,slug"`
	Description string `json:"description"`
	MetaTitle   string `json:"metaTitle"`
}
