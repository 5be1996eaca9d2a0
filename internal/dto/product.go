package dto

type ProductDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl"`
}

type ProductListResponse struct {
	Products []ProductDTO `json:"products"`
}
