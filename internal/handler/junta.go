package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/segyhp/yunta/internal/domain"
	"github.com/segyhp/yunta/internal/export"
	"github.com/segyhp/yunta/internal/service"
	customError "github.com/segyhp/yunta/pkg/errors"
	"github.com/segyhp/yunta/pkg/response"
	"github.com/segyhp/yunta/pkg/utils"
)

type JuntaHandler struct {
	service   service.Service
	validator *validator.Validate
}

func NewJuntaHandler(service service.Service) *JuntaHandler {
	return &JuntaHandler{
		service:   service,
		validator: newValidator(),
	}
}

// newValidator lets gt/required tags see decimal amounts as numbers
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// CreateJunta handles POST /juntas
func (h *JuntaHandler) CreateJunta(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateJuntaRequest
	if err := h.decode(r, &req, false); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.CreateJunta(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, result)
}

func (h *JuntaHandler) GetActiveJunta(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.GetActiveJunta(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, state)
}

func (h *JuntaHandler) GetJunta(w http.ResponseWriter, r *http.Request) {
	juntaID, err := pathUUID(r, "juntaId")
	if err != nil {
		writeError(w, err)
		return
	}

	state, err := h.service.GetJunta(r.Context(), juntaID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, state)
}

// ScheduleTurns handles POST /juntas/{juntaId}/turns. The body is optional.
func (h *JuntaHandler) ScheduleTurns(w http.ResponseWriter, r *http.Request) {
	juntaID, err := pathUUID(r, "juntaId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req domain.ScheduleTurnsRequest
	if err := h.decode(r, &req, true); err != nil {
		writeError(w, err)
		return
	}

	turns, err := h.service.ScheduleTurns(r.Context(), juntaID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, turns)
}

func (h *JuntaHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	juntaID, err := pathUUID(r, "juntaId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req domain.RecordPaymentRequest
	if err := h.decode(r, &req, false); err != nil {
		writeError(w, err)
		return
	}

	payment, err := h.service.RecordPayment(r.Context(), juntaID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, payment)
}

func (h *JuntaHandler) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	juntaID, date, err := juntaDay(r)
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := h.service.GetDailySummary(r.Context(), juntaID, date)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, summary)
}

func (h *JuntaHandler) RescheduleTurn(w http.ResponseWriter, r *http.Request) {
	juntaID, date, err := juntaDay(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req domain.RescheduleTurnRequest
	if err := h.decode(r, &req, false); err != nil {
		writeError(w, err)
		return
	}
	beneficiaryID, err := uuid.Parse(req.BeneficiaryID)
	if err != nil {
		writeError(w, customError.WrapInvalidInput("beneficiary_id must be a UUID"))
		return
	}

	turn, err := h.service.RescheduleTurn(r.Context(), juntaID, date, beneficiaryID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, turn)
}

func (h *JuntaHandler) CloseDay(w http.ResponseWriter, r *http.Request) {
	h.turnAction(w, r, h.service.CloseDay)
}

func (h *JuntaHandler) ReopenDay(w http.ResponseWriter, r *http.Request) {
	h.turnAction(w, r, h.service.ReopenDay)
}

func (h *JuntaHandler) DeliverTurn(w http.ResponseWriter, r *http.Request) {
	h.turnAction(w, r, h.service.DeliverTurn)
}

type turnActionFunc func(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error)

func (h *JuntaHandler) turnAction(w http.ResponseWriter, r *http.Request, action turnActionFunc) {
	juntaID, date, err := juntaDay(r)
	if err != nil {
		writeError(w, err)
		return
	}

	turn, err := action(r.Context(), juntaID, date)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, turn)
}

// GetKardex handles GET /juntas/{juntaId}/participants/{shareId}/kardex?format=json|csv|pdf
func (h *JuntaHandler) GetKardex(w http.ResponseWriter, r *http.Request) {
	juntaID, err := pathUUID(r, "juntaId")
	if err != nil {
		writeError(w, err)
		return
	}
	shareID, err := pathUUID(r, "shareId")
	if err != nil {
		writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" && format != "pdf" {
		writeError(w, customError.WrapInvalidInput(fmt.Sprintf("unsupported format %q", format)))
		return
	}

	kardex, err := h.service.GetKardex(r.Context(), juntaID, shareID)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	filename := fmt.Sprintf("kardex-%s.%s", shareID, format)
	switch format {
	case "csv":
		if err := export.KardexCSV(&buf, kardex); err != nil {
			writeError(w, err)
			return
		}
		response.Attachment(w, "text/csv", filename, buf.Bytes())
	case "pdf":
		if err := export.KardexPDF(&buf, kardex); err != nil {
			writeError(w, err)
			return
		}
		response.Attachment(w, "application/pdf", filename, buf.Bytes())
	default:
		response.Success(w, kardex)
	}
}

func (h *JuntaHandler) ArchiveJunta(w http.ResponseWriter, r *http.Request) {
	juntaID, err := pathUUID(r, "juntaId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req domain.ArchiveJuntaRequest
	if err := h.decode(r, &req, true); err != nil {
		writeError(w, err)
		return
	}

	report, err := h.service.ArchiveJunta(r.Context(), juntaID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, report)
}

func (h *JuntaHandler) CancelJunta(w http.ResponseWriter, r *http.Request) {
	juntaID, err := pathUUID(r, "juntaId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req domain.ArchiveJuntaRequest
	if err := h.decode(r, &req, true); err != nil {
		writeError(w, err)
		return
	}

	junta, err := h.service.CancelJunta(r.Context(), juntaID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, junta)
}

func (h *JuntaHandler) DuplicateJunta(w http.ResponseWriter, r *http.Request) {
	sourceID, err := pathUUID(r, "juntaId")
	if err != nil {
		writeError(w, err)
		return
	}

	var req domain.DuplicateJuntaRequest
	if err := h.decode(r, &req, false); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.service.DuplicateJunta(r.Context(), sourceID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, result)
}

func (h *JuntaHandler) ListArchivedJuntas(w http.ResponseWriter, r *http.Request) {
	archives, err := h.service.ListArchivedJuntas(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, archives)
}

func (h *JuntaHandler) GetArchiveReport(w http.ResponseWriter, r *http.Request) {
	juntaID, err := pathUUID(r, "juntaId")
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := h.service.GetArchiveReport(r.Context(), juntaID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, report)
}

// decode reads a JSON body into dst and validates it. An empty body is
// accepted when optional is set.
func (h *JuntaHandler) decode(r *http.Request, dst interface{}, optional bool) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return customError.WrapInvalidInput("Invalid request body")
	}

	if err := h.validator.Struct(dst); err != nil {
		return customError.WrapInvalidInput(err.Error())
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, customError.WrapInvalidInput(fmt.Sprintf("%s must be a UUID", name))
	}
	return id, nil
}

func juntaDay(r *http.Request) (uuid.UUID, time.Time, error) {
	juntaID, err := pathUUID(r, "juntaId")
	if err != nil {
		return uuid.Nil, time.Time{}, err
	}

	raw := mux.Vars(r)["date"]
	date, err := utils.ParseDate(raw)
	if err != nil {
		return uuid.Nil, time.Time{}, customError.WrapInvalidDate(raw)
	}
	return juntaID, date, nil
}

// writeError maps service errors onto status codes. Unexpected errors are
// logged and answered without internals.
func writeError(w http.ResponseWriter, err error) {
	message := err.Error()
	var be *customError.BusinessError
	if errors.As(err, &be) {
		message = be.Message
	}

	switch customError.CategoryOf(err) {
	case customError.CategoryValidation:
		response.BadRequest(w, message, err)
	case customError.CategoryNotFound:
		response.NotFound(w, message)
	case customError.CategoryConflict:
		response.Conflict(w, message, err)
	default:
		slog.Error("request failed", "error", err)
		response.InternalServerError(w, "Internal server error", nil)
	}
}
