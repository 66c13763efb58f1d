package assignment

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carelink/carelink/internal/platform/auth"
	"github.com/carelink/carelink/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the mapping endpoints on the authenticated API group.
// GET /mappings/:patient_id and DELETE /mappings/:id share a pattern; echo
// dispatches by method so both resolve cleanly.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/mappings", h.Assign)
	api.GET("/mappings", h.ListAll)
	api.GET("/mappings/:patient_id", h.ListForPatient)
	api.DELETE("/mappings/:id", h.Unassign)
}

func requester(c echo.Context) (uuid.UUID, error) {
	id, ok := auth.AccountID(c.Request().Context())
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return id, nil
}

type assignRequest struct {
	PatientID uuid.UUID `json:"patient_id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
}

func (h *Handler) Assign(c echo.Context) error {
	accountID, err := requester(c)
	if err != nil {
		return err
	}
	var in assignRequest
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.PatientID == uuid.Nil || in.DoctorID == uuid.Nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id and doctor_id are required")
	}
	a, err := h.svc.Assign(c.Request().Context(), accountID, in.PatientID, in.DoctorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "doctor assigned to patient successfully",
		"mapping": a,
	})
}

func (h *Handler) ListAll(c echo.Context) error {
	accountID, err := requester(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	assignments, total, err := h.svc.ListAll(c.Request().Context(), accountID, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(assignments, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListForPatient(c echo.Context) error {
	accountID, err := requester(c)
	if err != nil {
		return err
	}
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	patient, assignments, err := h.svc.ListForPatient(c.Request().Context(), accountID, patientID)
	if err != nil {
		return err
	}
	if assignments == nil {
		assignments = []*Assignment{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"patient":  patient.Name,
		"count":    len(assignments),
		"mappings": assignments,
	})
}

func (h *Handler) Unassign(c echo.Context) error {
	accountID, err := requester(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "mapping not found")
	}
	if err := h.svc.Unassign(c.Request().Context(), accountID, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "doctor removed from patient successfully"})
}
