package http

import (
	"errors"
	"net/http"
	"strconv"

	domain "fleet-checklist-backend/internal/domain/checklist"
	checklistUC "fleet-checklist-backend/internal/usecase/checklist"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ChecklistHandler struct {
	uc  *checklistUC.Usecase
	log *zap.SugaredLogger
}

func NewChecklistHandler(uc *checklistUC.Usecase, log *zap.SugaredLogger) *ChecklistHandler {
	return &ChecklistHandler{uc: uc, log: log}
}

type createChecklistReq struct {
	VehicleNumber      string  `json:"vehicleNumber" validate:"required"`
	ParkingBrake       *bool   `json:"parkingBrake" validate:"required"`
	FluidLevels        *bool   `json:"fluidLevels" validate:"required"`
	Tires              *bool   `json:"tires" validate:"required"`
	EngineFluids       *bool   `json:"engineFluids" validate:"required"`
	Lights             *bool   `json:"lights" validate:"required"`
	DoorsAndSeatbelts  *bool   `json:"doorsAndSeatbelts" validate:"required"`
	EmergencyEquipment *bool   `json:"emergencyEquipment" validate:"required"`
	Notes              *string `json:"notes"`
	Status             string  `json:"status" validate:"omitempty,oneof=completed draft"`
}

func (h *ChecklistHandler) Create(c echo.Context) error {
	var req createChecklistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Validation error", Errors: ToFieldErrors(err)})
	}

	in := checklistUC.SubmitInput{
		VehicleNumber: req.VehicleNumber,
		Inspection: domain.Inspection{
			ParkingBrake:       *req.ParkingBrake,
			FluidLevels:        *req.FluidLevels,
			Tires:              *req.Tires,
			EngineFluids:       *req.EngineFluids,
			Lights:             *req.Lights,
			DoorsAndSeatbelts:  *req.DoorsAndSeatbelts,
			EmergencyEquipment: *req.EmergencyEquipment,
		},
		Status: domain.Status(req.Status),
	}
	if req.Notes != nil {
		in.Notes = *req.Notes
	}

	created, err := h.uc.Submit(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateSubmission) {
			return c.JSON(http.StatusConflict, ErrorResponse{
				Message: "Duplicate submission not allowed",
				Error:   "A checklist for this vehicle has already been submitted today. Only one checklist per vehicle per day is allowed.",
			})
		}
		h.log.Errorw("create checklist", "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to create checklist"})
	}
	return c.JSON(http.StatusOK, created)
}

func (h *ChecklistHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	out, err := h.uc.ListRecent(c.Request().Context(), limit)
	if err != nil {
		h.log.Errorw("list checklists", "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to fetch checklists"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ChecklistHandler) Get(c echo.Context) error {
	got, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Message: "Checklist not found"})
		}
		h.log.Errorw("get checklist", "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to fetch checklist"})
	}
	return c.JSON(http.StatusOK, got)
}

type updateChecklistReq struct {
	VehicleNumber      *string `json:"vehicleNumber" validate:"omitempty,min=1"`
	ParkingBrake       *bool   `json:"parkingBrake"`
	FluidLevels        *bool   `json:"fluidLevels"`
	Tires              *bool   `json:"tires"`
	EngineFluids       *bool   `json:"engineFluids"`
	Lights             *bool   `json:"lights"`
	DoorsAndSeatbelts  *bool   `json:"doorsAndSeatbelts"`
	EmergencyEquipment *bool   `json:"emergencyEquipment"`
	Notes              *string `json:"notes"`
	Status             *string `json:"status" validate:"omitempty,oneof=completed draft"`
}

func (h *ChecklistHandler) Update(c echo.Context) error {
	var req updateChecklistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Validation error", Errors: ToFieldErrors(err)})
	}

	in := checklistUC.UpdateInput{
		VehicleNumber:      req.VehicleNumber,
		ParkingBrake:       req.ParkingBrake,
		FluidLevels:        req.FluidLevels,
		Tires:              req.Tires,
		EngineFluids:       req.EngineFluids,
		Lights:             req.Lights,
		DoorsAndSeatbelts:  req.DoorsAndSeatbelts,
		EmergencyEquipment: req.EmergencyEquipment,
		Notes:              req.Notes,
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		in.Status = &s
	}

	updated, err := h.uc.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.JSON(http.StatusNotFound, ErrorResponse{Message: "Checklist not found"})
		case errors.Is(err, domain.ErrDuplicateSubmission):
			return c.JSON(http.StatusConflict, ErrorResponse{
				Message: "Duplicate submission not allowed",
				Error:   "A checklist for this vehicle has already been submitted today. Only one checklist per vehicle per day is allowed.",
			})
		}
		h.log.Errorw("update checklist", "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to update checklist"})
	}
	return c.JSON(http.StatusOK, updated)
}

type todayResponse struct {
	HasChecklist bool              `json:"hasChecklist"`
	Checklist    *domain.Checklist `json:"checklist,omitempty"`
}

func (h *ChecklistHandler) Today(c echo.Context) error {
	got, err := h.uc.TodayForVehicle(c.Request().Context(), c.Param("vehicleNumber"))
	if err != nil {
		h.log.Errorw("today checklist", "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to check today's checklist"})
	}
	return c.JSON(http.StatusOK, todayResponse{HasChecklist: got != nil, Checklist: got})
}

func (h *ChecklistHandler) Dashboard(c echo.Context) error {
	dto, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		h.log.Errorw("dashboard", "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to fetch dashboard data"})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ChecklistHandler) Export(c echo.Context) error {
	yearRaw := c.QueryParam("year")
	monthRaw := c.QueryParam("month")
	if yearRaw == "" || monthRaw == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Year and month are required"})
	}
	year, errY := strconv.Atoi(yearRaw)
	month, errM := strconv.Atoi(monthRaw)
	if errY != nil || errM != nil || month < 1 || month > 12 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid year or month"})
	}

	format := c.QueryParam("format")
	if format == "" {
		format = checklistUC.FormatCSV
	}

	res, err := h.uc.Export(c.Request().Context(), checklistUC.ExportInput{
		VehicleNumber: c.QueryParam("vehicleNumber"),
		Year:          year,
		Month:         month,
		Format:        format,
	})
	if err != nil {
		h.log.Errorw("export checklists", "err", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to export checklists"})
	}

	if format != checklistUC.FormatCSV {
		return c.JSON(http.StatusOK, res.Records)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+res.Filename+`"`)
	return c.Blob(http.StatusOK, res.ContentType, res.CSV)
}
