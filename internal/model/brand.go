package model

type BrandRequest struct {
	Name     string `json:"name_brand"`
	Warranty int    `json:"warranty"`
	Country  string `json:"country"`
}

type BrandResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name_brand"`
	Warranty int    `json:"warranty"`
	Country  string `json:"country"`
}

type Brand struct {
	ID       int64
	Name     string
	Warranty int
	Country  string
}

func ToBrandResponse(b Brand) BrandResponse {
	return BrandResponse{
		ID:       b.ID,
		Name:     b.Name,
		Warranty: b.Warranty,
		Country:  b.Country,
	}
}
