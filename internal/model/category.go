package model

type Category struct {
	BaseModel
	Title       string `db:"title" json:"title"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
	MetaTitle   string `db:"meta_title" json:"metaTitle"`
}
