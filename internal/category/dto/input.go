package dto

type CreateCategoryInput struct {
	Name      string
	ImageLink string
}
