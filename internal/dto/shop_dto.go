package dto

type CreateShopRequest struct {
	Name    string  `json:"name"    validate:"required,min=2"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type UpdateShopRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

type ShopResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Active  bool    `json:"active"`
}
