package model

type CarRequest struct {
	BrandID     int64   `json:"idBrand"`
	Model       string  `json:"model"`
	Milleage    int     `json:"milleage"`
	Price       float64 `json:"price"`
	YearCar     int     `json:"year_car"`
	Description string  `json:"description"`
	Colour      string  `json:"colour"`
	FuelType    string  `json:"fuel_type"`
	NumDoors    int     `json:"num_doors"`
}

type CarResponse struct {
	ID          int64         `json:"id"`
	Brand       BrandResponse `json:"brand"`
	Model       string        `json:"model"`
	Milleage    int           `json:"milleage"`
	Price       float64       `json:"price"`
	Year        int           `json:"year"`
	Description string        `json:"description"`
	Colour      string        `json:"colour"`
	FuelType    string        `json:"fuelType"`
	NumDoors    int           `json:"numDoors"`
}

// Car is the stored inventory record with its brand reference resolved.
type Car struct {
	ID          int64
	Brand       Brand
	Model       string
	Milleage    int
	Price       float64
	YearCar     int
	Description string
	Colour      string
	FuelType    string
	NumDoors    int
}

func ToCarResponse(c Car) CarResponse {
	return CarResponse{
		ID:          c.ID,
		Brand:       ToBrandResponse(c.Brand),
		Model:       c.Model,
		Milleage:    c.Milleage,
		Price:       c.Price,
		Year:        c.YearCar,
		Description: c.Description,
		Colour:      c.Colour,
		FuelType:    c.FuelType,
		NumDoors:    c.NumDoors,
	}
}

func ToCarResponses(cars []Car) []CarResponse {
	out := make([]CarResponse, 0, len(cars))
	for _, c := range cars {
		out = append(out, ToCarResponse(c))
	}
	return out
}
