package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/zeroandone/catalog-ai/internal/core/catalog"
	"github.com/zeroandone/catalog-ai/internal/core/classify"
	"github.com/zeroandone/catalog-ai/internal/core/docextract"
	"github.com/zeroandone/catalog-ai/internal/core/embedding"
	"github.com/zeroandone/catalog-ai/internal/core/search"
	"github.com/zeroandone/catalog-ai/internal/core/translate"
)

// Handler はカタログAPIのHTTPハンドラ群
type Handler struct {
	catalog    *catalog.Service
	search     *search.Engine
	embeddings *embedding.Maintenance
	translate  *translate.Maintenance
	classify   *classify.Service
	docextract *docextract.Service
	logger     *slog.Logger
}

// NewHandler は新しいHandlerを作成する
func NewHandler(
	catalogSvc *catalog.Service,
	searchEngine *search.Engine,
	embeddings *embedding.Maintenance,
	translateSvc *translate.Maintenance,
	classifySvc *classify.Service,
	docextractSvc *docextract.Service,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		catalog:    catalogSvc,
		search:     searchEngine,
		embeddings: embeddings,
		translate:  translateSvc,
		classify:   classifySvc,
		docextract: docextractSvc,
		logger:     logger,
	}
}

// SemanticSearch は GET /api/products/search を処理する
func (h *Handler) SemanticSearch(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		respondError(c, http.StatusBadRequest, "query text required")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	results, err := h.search.Search(c.Request.Context(), query, limit)
	if err != nil {
		h.serverError(c, "semantic search failed", err)
		return
	}

	respondOK(c, "Products retrieved successfully", results)
}

// BatchEmbed は POST /api/products/batch-embed を処理する
func (h *Handler) BatchEmbed(c *gin.Context) {
	report, err := h.embeddings.Run(c.Request.Context())
	if err != nil {
		h.serverError(c, "batch embedding failed", err)
		return
	}

	respondOK(c, "Batch Embedding Complete", gin.H{
		"result":   "Batch Embedding Complete",
		"embedded": report.Embedded,
		"failed":   report.Failed,
		"failures": report.Failures,
	})
}

// BatchTranslate は POST /api/products/translate を処理する
func (h *Handler) BatchTranslate(c *gin.Context) {
	report, err := h.translate.Run(c.Request.Context())
	if err != nil {
		h.serverError(c, "batch translation failed", err)
		return
	}

	respondOK(c, "Batch Translation Complete", gin.H{
		"result":     "Batch Translation Complete",
		"translated": report.Translated,
		"failed":     report.Failed,
		"failures":   report.Failures,
	})
}

type classifyRequest struct {
	ProductIDs []int64 `json:"product_ids"`
}

// ClassifyProducts は POST /api/products/classify を処理する
func (h *Handler) ClassifyProducts(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.ProductIDs) == 0 {
		respondError(c, http.StatusBadRequest, "product ids are required")
		return
	}

	classifications, err := h.classify.ClassifyProducts(c.Request.Context(), req.ProductIDs)
	if err != nil {
		h.serverError(c, "classification failed", err)
		return
	}

	respondOK(c, "Products classified successfully", gin.H{
		"classified_products": classifications,
	})
}

type extractTextRequest struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// ExtractText は POST /api/extract-text を処理する
func (h *Handler) ExtractText(c *gin.Context) {
	var req extractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Bucket == "" || req.Key == "" {
		respondError(c, http.StatusBadRequest, "bucket and key are required")
		return
	}

	text, err := h.docextract.ExtractFromStorage(c.Request.Context(), req.Bucket, req.Key)
	if err != nil {
		h.serverError(c, "document extraction failed", err)
		return
	}

	respondOK(c, "Document extracted successfully", gin.H{"text": text})
}

// CreateProduct は POST /api/products を処理する
func (h *Handler) CreateProduct(c *gin.Context) {
	var product catalog.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		respondError(c, http.StatusBadRequest, "invalid product payload")
		return
	}

	created, err := h.catalog.Create(c.Request.Context(), &product)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidProduct) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.serverError(c, "product creation failed", err)
		return
	}

	respondOK(c, "Product created successfully", created)
}

// ListProducts は GET /api/products を処理する
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "product listing failed", err)
		return
	}

	respondOK(c, "Products retrieved successfully", products)
}

// GetProduct は GET /api/products/:id を処理する
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	product, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "product not found")
			return
		}
		h.serverError(c, "product fetch failed", err)
		return
	}

	respondOK(c, "Product retrieved successfully", product)
}

// UpdateProduct は PUT /api/products/:id を処理する
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	var product catalog.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		respondError(c, http.StatusBadRequest, "invalid product payload")
		return
	}
	product.ID = id

	updated, err := h.catalog.Update(c.Request.Context(), &product)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidProduct):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, catalog.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "product not found")
		default:
			h.serverError(c, "product update failed", err)
		}
		return
	}

	respondOK(c, "Product updated successfully", updated)
}

// DeleteProduct は DELETE /api/products/:id を処理する
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "product not found")
			return
		}
		h.serverError(c, "product deletion failed", err)
		return
	}

	respondOK(c, "Product deleted successfully", nil)
}

// UploadProducts は POST /api/products/upload を処理する
// Excelの "Products" シート（ヘッダ行: Name, Description, Category, Price, Quantity, InStock）を
// 取り込み、不正な行はスキップして件数を報告する
func (h *Handler) UploadProducts(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "file is required")
		return
	}

	f, err := file.Open()
	if err != nil {
		h.serverError(c, "failed to open uploaded file", err)
		return
	}
	defer f.Close()

	xlsx, err := excelize.OpenReader(f)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid Excel file")
		return
	}
	defer xlsx.Close()

	rows, err := xlsx.GetRows("Products")
	if err != nil {
		respondError(c, http.StatusBadRequest, "sheet 'Products' not found")
		return
	}

	inserted, skipped := 0, 0
	for i, row := range rows {
		if i == 0 {
			continue // ヘッダ行
		}

		product, ok := parseProductRow(row)
		if !ok {
			skipped++
			continue
		}

		if _, err := h.catalog.Create(c.Request.Context(), product); err != nil {
			h.logger.Error("failed to insert uploaded product", slog.Int("row", i), slog.String("error", err.Error()))
			skipped++
			continue
		}
		inserted++
	}

	respondOK(c, "Upload successful", gin.H{
		"inserted": inserted,
		"skipped":  skipped,
	})
}

// parseProductRow はExcelの1行を商品に変換する
func parseProductRow(row []string) (*catalog.Product, bool) {
	if len(row) < 4 || row[0] == "" || row[1] == "" {
		return nil, false
	}

	price, err := strconv.ParseFloat(row[3], 64)
	if err != nil || price < 0 {
		return nil, false
	}

	product := &catalog.Product{
		Name:        row[0],
		Description: row[1],
		Price:       price,
		InStock:     true,
	}
	if row[2] != "" {
		category := row[2]
		product.Category = &category
	}
	if len(row) > 4 && row[4] != "" {
		quantity, err := strconv.Atoi(row[4])
		if err != nil || quantity < 0 {
			return nil, false
		}
		product.Quantity = quantity
	}
	if len(row) > 5 && row[5] != "" {
		inStock, err := strconv.ParseBool(row[5])
		if err != nil {
			return nil, false
		}
		product.InStock = inStock
	}
	return product, true
}

// productID はパスパラメータ :id を検証して返す
func (h *Handler) productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}

// serverError は内部エラーをログに残し、クライアントには固定メッセージのみ返す
func (h *Handler) serverError(c *gin.Context, message string, err error) {
	h.logger.Error(message,
		slog.String("request_id", c.GetString(requestIDKey)),
		slog.String("error", err.Error()),
	)
	respondError(c, http.StatusInternalServerError, genericErrorMessage)
}
