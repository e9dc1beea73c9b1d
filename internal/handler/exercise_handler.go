package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"exercisetracker/internal/service"
)

// ExerciseHandler serves the exercise log.
type ExerciseHandler struct {
	svc     service.ExerciseService
	respond Responder
}

// NewExerciseHandler creates a new exercise handler.
func NewExerciseHandler(svc service.ExerciseService, respond Responder) *ExerciseHandler {
	return &ExerciseHandler{svc: svc, respond: respond}
}

// AddExerciseRequest is the body of POST /api/users/{id}/exercises.
type AddExerciseRequest struct {
	Description string  `json:"description" form:"description"`
	Duration    FlexInt `json:"duration" form:"duration" swaggertype:"integer"`
	Date        string  `json:"date,omitempty" form:"date"`
}

// AddExercise godoc
// @Summary Append an exercise to a user's log
// @Description A missing user is reported as {"error": "User not found"}.
// @Tags exercises
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "User ID"
// @Param request body AddExerciseRequest true "Exercise data"
// @Success 200 {object} service.LogEntryView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/exercises [post]
func (h *ExerciseHandler) AddExercise(c echo.Context) error {
	var req AddExerciseRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	view, err := h.svc.AddEntry(c.Request().Context(), service.AddEntryInput{
		UserID:      c.Param("id"),
		Description: req.Description,
		Duration:    int(req.Duration),
		Date:        req.Date,
	})
	if err != nil {
		return h.respond.Error(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// GetLogs godoc
// @Summary Get a user's exercise log
// @Description from and to are inclusive calendar dates; limit caps the number of entries.
// @Tags exercises
// @Produce json
// @Param id path string true "User ID"
// @Param from query string false "Earliest date (YYYY-MM-DD)"
// @Param to query string false "Latest date (YYYY-MM-DD)"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {object} service.LogView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/logs [get]
func (h *ExerciseHandler) GetLogs(c echo.Context) error {
	view, err := h.svc.GetLogs(c.Request().Context(), c.Param("id"), service.LogQuery{
		From:  c.QueryParam("from"),
		To:    c.QueryParam("to"),
		Limit: parseLimit(c.QueryParam("limit")),
	})
	if err != nil {
		return h.respond.Error(c, err)
	}
	return c.JSON(http.StatusOK, view)
}
