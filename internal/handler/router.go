package handler

import (
	"github.com/car-registry/backend/internal/model"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth  *AuthHandler
	User  *UserHandler
	Brand *BrandHandler
	Car   *CarHandler
}

// NewRouter builds the route table. Role requirements live here,
// declaratively next to each route; the identity middleware only
// establishes who is calling.
func NewRouter(h Handlers, middlewares ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares...)

	router.GET("/ping", Ping)
	router.GET("/", Root)

	client := RequireRole(model.RoleClient)
	vendor := RequireRole(model.RoleVendor)
	anyRole := RequireRole(model.RoleClient, model.RoleVendor)

	user := router.Group("/api/user")
	{
		user.POST("/signup", h.Auth.Signup)
		user.POST("/login", h.Auth.Login)
		user.POST("/addImgUser/:id/add", anyRole, h.User.AddImgUser)
		user.GET("/userImg/:id", anyRole, h.User.GetUserImg)
	}

	brand := router.Group("/api/brand")
	{
		brand.POST("/addBrand", vendor, h.Brand.AddBrand)
		brand.POST("/addBrands", vendor, h.Brand.AddBrands)
		brand.GET("/getBrand/:id", client, h.Brand.GetBrand)
		brand.GET("/getBrands", client, h.Brand.GetBrands)
		brand.PUT("/updateBrand/:id", vendor, h.Brand.UpdateBrand)
		brand.DELETE("/deleteBrand/:id", vendor, h.Brand.DeleteBrand)
	}

	car := router.Group("/api/car")
	{
		car.POST("/addCar", vendor, h.Car.AddCar)
		car.POST("/addCars", vendor, h.Car.AddCars)
		car.GET("/getCar/:id", client, h.Car.GetCar)
		car.GET("/getCars", client, h.Car.GetCars)
		car.PUT("/updateCar/:id", vendor, h.Car.UpdateCar)
		car.DELETE("/deleteCar/:id", vendor, h.Car.DeleteCar)
		car.POST("/uploadCSV", vendor, h.Car.UploadCSV)
		car.GET("/downloadFileCars", anyRole, h.Car.DownloadFileCars)
	}

	return router
}
