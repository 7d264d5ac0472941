package transport

import (
	"github.com/Skotchmaster/storefront/internal/identity"
	"github.com/Skotchmaster/storefront/internal/service"
)

// Every request type is bound from the query string on GET and from a JSON
// or urlencoded body on POST.

type RegisterCustomerRequest struct {
	Username string `json:"username" query:"username" form:"username"`
	Email    string `json:"email"    query:"email"    form:"email"`
	Password string `json:"password" query:"password" form:"password"`
}

func (r RegisterCustomerRequest) Input() service.RegisterInput {
	return service.RegisterInput{
		Role:     identity.RoleCustomer,
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
}

type RegisterAdminRequest struct {
	Username string `json:"username" query:"username" form:"username"`
	Password string `json:"password" query:"password" form:"password"`
}

func (r RegisterAdminRequest) Input() service.RegisterInput {
	return service.RegisterInput{
		Role:     identity.RoleAdmin,
		Username: r.Username,
		Password: r.Password,
	}
}

type LoginRequest struct {
	Username string `json:"username" query:"username" form:"username"`
	Password string `json:"password" query:"password" form:"password"`
}

type AddProductRequest struct {
	Name        string   `json:"name"        query:"name"        form:"name"`
	Price       OptFloat `json:"price"       query:"price"       form:"price"`
	Description string   `json:"description" query:"description" form:"description"`
	Category    string   `json:"category"    query:"category"    form:"category"`
}

func (r AddProductRequest) Input() service.ProductInput {
	return service.ProductInput{
		Name:        optString(r.Name),
		Price:       r.Price.Ptr(),
		Description: optString(r.Description),
		Category:    optString(r.Category),
	}
}

type CategoryRequest struct {
	Category string `json:"category" query:"category" form:"category"`
}

type GetProductRequest struct {
	ProductKey string `json:"product_id" query:"product_id" form:"product_id"`
}

type DeleteProductRequest struct {
	ProductID OptInt `json:"productId" query:"productId" form:"productId"`
}

type UpdateProductRequest struct {
	ProductID   OptInt   `json:"productId"   query:"productId"   form:"productId"`
	Name        string   `json:"name"        query:"name"        form:"name"`
	Price       OptFloat `json:"price"       query:"price"       form:"price"`
	Description string   `json:"description" query:"description" form:"description"`
	Category    string   `json:"category"    query:"category"    form:"category"`
}

func (r UpdateProductRequest) Input() service.ProductInput {
	return service.ProductInput{
		Name:        optString(r.Name),
		Price:       r.Price.Ptr(),
		Description: optString(r.Description),
		Category:    optString(r.Category),
	}
}

type SearchRequest struct {
	Query string `json:"q"    query:"q"    form:"q"`
	Page  int    `json:"page" query:"page" form:"page"`
	Size  int    `json:"size" query:"size" form:"size"`
}

// optString treats the empty string as "not supplied".
func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
