package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/cascade"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/shift"
)

// DocumentHandler maneja la contabilización y consulta de documentos (protegido).
type DocumentHandler struct {
	orchestrator *cascade.Orchestrator
	receiptUC    *cascade.ReceiptUseCase
	shiftUC      *shift.UseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(orchestrator *cascade.Orchestrator, receiptUC *cascade.ReceiptUseCase, shiftUC *shift.UseCase) *DocumentHandler {
	return &DocumentHandler{orchestrator: orchestrator, receiptUC: receiptUC, shiftUC: shiftUC}
}

// Post contabiliza un documento. El turno abierto del cajero (si existe) se
// resuelve aquí y se pasa explícito a la cascada: la contabilidad de caja
// nunca depende de estado ambiente.
// POST /api/documents
func (h *DocumentHandler) Post(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.PostDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	shiftID := ""
	if active, err := h.shiftUC.GetActive(c.Context(), userID); err == nil && active != nil {
		shiftID = active.ID
	}

	doc, err := h.orchestrator.Post(c.Context(), userID, shiftID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// GetByID obtiene un documento con sus líneas.
// GET /api/documents/:id
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	doc, err := h.orchestrator.GetDocument(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(doc)
}

// List lista documentos por tipo y rango de fechas.
// GET /api/documents?type=sale&from=2025-01-01&to=2025-01-31&limit=50&offset=0
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido (YYYY-MM-DD)"})
	}
	docs, err := h.orchestrator.ListDocuments(c.Context(), c.Query("type"),
		from, to, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(docs)
}

// Receipt descarga el comprobante del documento en PDF.
// GET /api/documents/:id/receipt
func (h *DocumentHandler) Receipt(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	pdfBytes, filename, err := h.receiptUC.DownloadReceiptPDF(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// parseDateRange lee from/to (YYYY-MM-DD) de la query. to es inclusivo: se
// extiende al final del día.
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, err
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}
