// Package serialization serves barcode issuing, scanner validation and the
// supplier/model code registries.
package serialization

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/apexhome/products-manager/internal/apisrv/response"
	"github.com/apexhome/products-manager/internal/auth/jwt"
	"github.com/apexhome/products-manager/internal/dependency"
	"github.com/apexhome/products-manager/internal/engine"
	"github.com/apexhome/products-manager/internal/entity"
	"github.com/apexhome/products-manager/internal/form"
	"github.com/apexhome/products-manager/internal/labels"
	"github.com/apexhome/products-manager/internal/middleware"
	"github.com/apexhome/products-manager/internal/ratelimit"
	"github.com/apexhome/products-manager/internal/registry"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// Server implements the serialization handlers.
type Server struct {
	eng *engine.Engine
	reg *registry.Service
	// archive is nil when no object store is configured.
	archive dependency.FileStore
	rl      *ratelimit.MultiKeyLimiter
}

func New(eng *engine.Engine, reg *registry.Service, archive dependency.FileStore, rl *ratelimit.MultiKeyLimiter) *Server {
	return &Server{
		eng:     eng,
		reg:     reg,
		archive: archive,
		rl:      rl,
	}
}

// Routes mounts under /api/serialization. Registry administration goes through admin.
func (s *Server) Routes(admin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/validate/{barcode}", s.validate)
	r.Get("/validate/", s.validate)
	r.Get("/validate", s.validate)
	r.Post("/receipts", s.receiveGoods)
	r.Get("/receipts/{id}", s.getReceipt)
	r.Get("/receipts/{id}/labels", s.getLabels)

	r.Group(func(r chi.Router) {
		r.Use(admin)
		r.Get("/suppliers", s.listSuppliers)
		r.Post("/suppliers", s.registerSupplier)
		r.Get("/models", s.listModels)
		r.Post("/models", s.registerModel)
		r.Post("/seed-codes", s.seedCodes)
		r.Get("/backups", s.listBackups)
	})
	return r
}

type ValidationResponse struct {
	Valid   bool   `json:"valid"`
	Outcome string `json:"outcome"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	// Item is set when the barcode could be decoded.
	Item *ValidationItem `json:"item,omitempty"`
}

type ValidationItem struct {
	Barcode      string `json:"barcode"`
	SupplierCode string `json:"supplier_code"`
	SupplierName string `json:"supplier_name,omitempty"`
	ModelCode    string `json:"model_code"`
	ModelName    string `json:"model_name,omitempty"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	Sequence     int64  `json:"sequence"`
	ProductSKU   string `json:"product_sku,omitempty"`
	// Unit is set once the barcode was issued to a received unit.
	Unit *UnitResponse `json:"unit,omitempty"`
}

func newValidationResponse(v *entity.BarcodeValidation) *ValidationResponse {
	resp := &ValidationResponse{
		Valid:   v.Valid(),
		Outcome: string(v.Outcome),
		Message: v.Message,
		Field:   v.Field,
	}
	it := v.Item
	if it == nil {
		return resp
	}
	item := &ValidationItem{
		Barcode:      it.Barcode,
		SupplierCode: it.Fields.SupplierCode,
		ModelCode:    it.Fields.ModelCode,
		Year:         it.Fields.Year,
		Month:        int(it.Fields.Month),
		Sequence:     it.Fields.Sequence,
	}
	if it.Supplier != nil {
		item.SupplierName = it.Supplier.Name
	}
	if it.Model != nil {
		item.ModelName = it.Model.Name
		item.ProductSKU = it.Model.ProductSKU.String
	}
	if it.Unit != nil {
		item.Unit = newUnitResponse(it.Unit)
	}
	resp.Item = item
	return resp
}

type UnitResponse struct {
	Barcode      string          `json:"barcode"`
	ReceiptId    string          `json:"receipt_id"`
	SupplierCode string          `json:"supplier_code"`
	ModelCode    string          `json:"model_code"`
	ProductSKU   string          `json:"product_sku,omitempty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	ReceivedAt   time.Time       `json:"received_at"`
}

func newUnitResponse(u *entity.SerialItem) *UnitResponse {
	return &UnitResponse{
		Barcode:      u.Barcode,
		ReceiptId:    u.ReceiptId,
		SupplierCode: u.SupplierCode,
		ModelCode:    u.ModelCode,
		ProductSKU:   u.ProductSKU.String,
		UnitCost:     u.UnitCost,
		ReceivedAt:   u.ReceivedAt,
	}
}

type ReceiptResponse struct {
	Id    string          `json:"id"`
	Units []*UnitResponse `json:"units"`
}

func newReceiptResponse(rec *entity.GoodsReceipt) *ReceiptResponse {
	resp := &ReceiptResponse{Id: rec.Id, Units: make([]*UnitResponse, 0, len(rec.Items))}
	for i := range rec.Items {
		resp.Units = append(resp.Units, newUnitResponse(&rec.Items[i]))
	}
	return resp
}

// validate always answers 200 for scanner input; the outcome is in the body.
// A request without a barcode segment is an empty scan.
func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	if err := s.rl.CheckValidation(middleware.GetClientIP(r.Context())); err != nil {
		response.Error(w, r, err)
		return
	}
	v, err := s.eng.ValidateBarcode(r.Context(), chi.URLParam(r, "barcode"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, newValidationResponse(v))
}

func (s *Server) receiveGoods(w http.ResponseWriter, r *http.Request) {
	var req form.ReceiveGoodsRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	rec, err := s.eng.ReceiveGoods(r.Context(), req.GoodsReceiptNew())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusCreated, newReceiptResponse(rec))
}

func (s *Server) getReceipt(w http.ResponseWriter, r *http.Request) {
	rec, err := s.eng.GetReceipt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, newReceiptResponse(rec))
}

// getLabels returns the label sheet of a receipt and archives a copy when an
// object store is configured. A failed archive does not fail the download.
func (s *Server) getLabels(w http.ResponseWriter, r *http.Request) {
	rec, err := s.eng.GetReceipt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := labels.Render(&buf, rec); err != nil {
		response.Error(w, r, err)
		return
	}

	if s.archive != nil {
		location, err := labels.Archive(r.Context(), s.archive, rec)
		if err != nil {
			slog.Default().ErrorContext(r.Context(), "can't archive label sheet",
				slog.String("err", err.Error()),
				slog.String("receipt", rec.Id),
			)
		} else {
			w.Header().Set("X-Archive-Location", location)
		}
	}

	w.Header().Set("Content-Type", labels.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Id+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type SupplierResponse struct {
	Id        int       `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	VendorId  *int32    `json:"vendor_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newSupplierResponse(sc *entity.SupplierCode) *SupplierResponse {
	resp := &SupplierResponse{Id: sc.Id, Code: sc.Code, Name: sc.Name, CreatedAt: sc.CreatedAt}
	if sc.VendorId.Valid {
		id := sc.VendorId.Int32
		resp.VendorId = &id
	}
	return resp
}

type ModelResponse struct {
	Id         int       `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	ProductSKU string    `json:"product_sku,omitempty"`
	ItemType   string    `json:"item_type,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func newModelResponse(mc *entity.BarcodeModelCode) *ModelResponse {
	return &ModelResponse{
		Id:         mc.Id,
		Code:       mc.Code,
		Name:       mc.Name,
		ProductSKU: mc.ProductSKU.String,
		ItemType:   mc.ItemType,
		CreatedAt:  mc.CreatedAt,
	}
}

func (s *Server) registerSupplier(w http.ResponseWriter, r *http.Request) {
	var req form.RegisterSupplierRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	sc, err := s.reg.RegisterSupplier(r.Context(), req.Code, req.Name, req.Vendor())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	slog.Default().InfoContext(r.Context(), "supplier code registered by operator",
		slog.String("code", sc.Code),
		slog.String("operator", jwt.Subject(r.Context())),
	)
	response.OK(w, r, http.StatusCreated, newSupplierResponse(sc))
}

func (s *Server) listSuppliers(w http.ResponseWriter, r *http.Request) {
	scs, err := s.reg.ListSuppliers(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	resp := make([]*SupplierResponse, 0, len(scs))
	for i := range scs {
		resp = append(resp, newSupplierResponse(&scs[i]))
	}
	response.OK(w, r, http.StatusOK, resp)
}

func (s *Server) registerModel(w http.ResponseWriter, r *http.Request) {
	var req form.RegisterModelRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	mc, err := s.reg.RegisterModel(r.Context(), req.Code, req.Name, req.ProductSKU, req.ItemType)
	if err != nil {
		response.Error(w, r, err)
		return
	}
	slog.Default().InfoContext(r.Context(), "model code registered by operator",
		slog.String("code", mc.Code),
		slog.String("operator", jwt.Subject(r.Context())),
	)
	response.OK(w, r, http.StatusCreated, newModelResponse(mc))
}

func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	mcs, err := s.reg.ListModels(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	resp := make([]*ModelResponse, 0, len(mcs))
	for i := range mcs {
		resp = append(resp, newModelResponse(&mcs[i]))
	}
	response.OK(w, r, http.StatusOK, resp)
}

type ReseedResponse struct {
	SuppliersRemoved int    `json:"suppliers_removed"`
	ModelsRemoved    int    `json:"models_removed"`
	SuppliersCreated int    `json:"suppliers_created"`
	ModelsCreated    int    `json:"models_created"`
	BackupLocation   string `json:"backup_location,omitempty"`
}

// seedCodes replaces both registries. With dry_run the seed is returned and nothing is written.
func (s *Server) seedCodes(w http.ResponseWriter, r *http.Request) {
	var req form.SeedCodesRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, r, err)
		return
	}
	if req.DryRun {
		seed, err := s.reg.PreviewSeed(r.Context(), req.ReseedRequest())
		if err != nil {
			response.Error(w, r, err)
			return
		}
		response.OK(w, r, http.StatusOK, registry.SnapshotOf(seed))
		return
	}

	slog.Default().WarnContext(r.Context(), "registry reseed requested",
		slog.String("operator", jwt.Subject(r.Context())),
		slog.Bool("derive", req.Derive),
	)
	res, err := s.reg.Reseed(r.Context(), req.ReseedRequest())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, &ReseedResponse{
		SuppliersRemoved: res.SuppliersRemoved,
		ModelsRemoved:    res.ModelsRemoved,
		SuppliersCreated: res.SuppliersCreated,
		ModelsCreated:    res.ModelsCreated,
		BackupLocation:   res.BackupLocation,
	})
}

func (s *Server) listBackups(w http.ResponseWriter, r *http.Request) {
	objs, err := s.reg.ListBackups(r.Context())
	if err != nil {
		response.Error(w, r, err)
		return
	}
	response.OK(w, r, http.StatusOK, objs)
}
