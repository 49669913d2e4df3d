// Package products serves SKU preview, commit and decode.
package products

import (
	"net/http"
	"time"

	"github.com/apexhome/products-manager/internal/apisrv/response"
	"github.com/apexhome/products-manager/internal/engine"
	"github.com/apexhome/products-manager/internal/entity"
	"github.com/apexhome/products-manager/internal/form"
	"github.com/apexhome/products-manager/internal/middleware"
	"github.com/apexhome/products-manager/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// Server implements the product handlers.
type Server struct {
	eng *engine.Engine
	rl  *ratelimit.MultiKeyLimiter
}

func New(eng *engine.Engine, rl *ratelimit.MultiKeyLimiter) *Server {
	return &Server{eng: eng, rl: rl}
}

// Routes mounts under /api/products.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", s.createProduct)
	r.Post("/next-sku", s.nextSKU)
	r.Get("/sku/{sku}", s.decodeSKU)
	return r
}

type SKUResponse struct {
	SKU       string `json:"sku"`
	ModelCode string `json:"model_code"`
	Sequence  int64  `json:"sequence"`
	Tentative bool   `json:"tentative"`
}

type ProductResponse struct {
	Id            int             `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	BrandId       int             `json:"brand_id"`
	CategoryId    int             `json:"category_id"`
	SubcategoryId *int32          `json:"subcategory_id,omitempty"`
	ItemType      string          `json:"item_type"`
	ModelCode     string          `json:"model_code"`
	MRP           decimal.Decimal `json:"mrp"`
	CreatedAt     time.Time       `json:"created_at"`
	Deleted       bool            `json:"deleted,omitempty"`
}

func newProductResponse(p *entity.Product) *ProductResponse {
	resp := &ProductResponse{
		Id:         p.Id,
		SKU:        p.SKU,
		Name:       p.Name,
		BrandId:    p.BrandId,
		CategoryId: p.CategoryId,
		ItemType:   p.ItemType,
		ModelCode:  p.ModelCode,
		MRP:        p.MRP,
		CreatedAt:  p.CreatedAt,
		Deleted:    p.DeletedAt.Valid,
	}
	if p.SubcategoryId.Valid {
		id := p.SubcategoryId.Int32
		resp.SubcategoryId = &id
	}
	return resp
}

type DecodeResponse struct {
	SKU         string           `json:"sku"`
	Brand       string           `json:"brand"`
	Category    string           `json:"category"`
	Subcategory string           `json:"subcategory"`
	ItemType    string           `json:"item_type"`
	Model       string           `json:"model"`
	Sequence    int64            `json:"sequence"`
	Product     *ProductResponse `json:"product,omitempty"`
}

// nextSKU previews by default: the returned SKU is tentative and identical requests
// may receive the same one. Only "commit": true allocates, and committed SKUs are
// never returned twice.
func (s *Server) nextSKU(w http.ResponseWriter, r *http.Request) {
	var req form.NextSKURequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	var (
		res *entity.SKUResult
		err error
	)
	if req.Commit {
		res, err = s.eng.CommitSKU(r.Context(), req.SKURequest())
	} else {
		if err := s.rl.CheckPreview(middleware.GetClientIP(r.Context())); err != nil {
			response.Error(w, r, err)
			return
		}
		res, err = s.eng.PreviewSKU(r.Context(), req.SKURequest())
	}
	if err != nil {
		response.Error(w, r, err)
		return
	}
	status := http.StatusOK
	if req.Commit {
		status = http.StatusCreated
	}
	response.OK(w, r, status, &SKUResponse{
		SKU:       res.SKU,
		ModelCode: res.ModelCode,
		Sequence:  res.Sequence,
		Tentative: res.Tentative,
	})
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	var req form.CreateProductRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	p, err := s.eng.CreateProduct(r.Context(), req.ProductNew())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusCreated, newProductResponse(p))
}

func (s *Server) decodeSKU(w http.ResponseWriter, r *http.Request) {
	info, err := s.eng.DecodeSKU(r.Context(), chi.URLParam(r, "sku"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	resp := &DecodeResponse{
		SKU:         info.SKU,
		Brand:       info.Components.Brand,
		Category:    info.Components.Category,
		Subcategory: info.Components.Subcategory,
		ItemType:    info.Components.ItemType,
		Model:       info.Components.Model,
		Sequence:    info.Components.Sequence,
	}
	if info.Product != nil {
		resp.Product = newProductResponse(info.Product)
	}
	response.OK(w, r, http.StatusOK, resp)
}
