package controller

import (
	"io"
	"net/http"
	"strings"

	"tender-drafting-api/internal/common"
	"tender-drafting-api/internal/entity"
	"tender-drafting-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type tenderRoutesHandler struct {
	tenderService service.Tender
	validate      *validator.Validate
}

func newTenderRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *tenderRoutesHandler {
	h := &tenderRoutesHandler{tenderService: services.Tender, validate: v}

	outer.GET("/tenders", h.GetTenders)
	outer.POST("/tenders/new", h.PostTender)
	outer.POST("/tenders/reload", h.ReloadTenders)

	outer.GET("/tenders/active", h.GetActiveTender)
	outer.PUT("/tenders/active", h.SelectActiveTender)
	outer.GET("/tenders/active/progress", h.GetProgress)
	outer.PUT("/tenders/active/progress", h.SetStage)
	outer.POST("/tenders/active/progress/next", h.NextStage)
	outer.POST("/tenders/active/progress/prev", h.PrevStage)

	outer.GET("/tenders/:tenderId", h.GetTender)
	outer.PATCH("/tenders/:tenderId/edit", h.EditTender)
	outer.PUT("/tenders/:tenderId/status", h.UpdateTenderStatus)
	outer.DELETE("/tenders/:tenderId", h.DeleteTender)
	outer.PATCH("/tenders/:tenderId/stages/:stageKey", h.PatchStageData)

	return h
}

type getTendersOutput struct {
	Loaded  bool                       `json:"loaded"`
	Saving  bool                       `json:"saving"`
	Tenders []entity.TenderOutputModel `json:"tenders"`
}

// /tenders
func (h *tenderRoutesHandler) GetTenders(c echo.Context) error {
	output := getTendersOutput{
		Loaded:  h.tenderService.Loaded(),
		Saving:  h.tenderService.Saving(),
		Tenders: h.tenderService.Tenders(),
	}
	if e := c.JSON(http.StatusOK, output); e != nil {
		return e
	}

	return nil
}

// /tenders/new
func (h *tenderRoutesHandler) PostTender(c echo.Context) error {
	tender, err := h.tenderService.CreateTender(c.Request().Context())
	if err == nil {
		if e := c.JSON(http.StatusOK, tender); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrTendersNotLoaded:
		if e := c.JSON(http.StatusServiceUnavailable, errorResponse{"Tender list is not loaded yet"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadGateway, errorResponse{"Could not store the new tender"}); e != nil {
			return e
		}
	}

	return err
}

// /tenders/reload
func (h *tenderRoutesHandler) ReloadTenders(c echo.Context) error {
	if err := h.tenderService.LoadAll(c.Request().Context()); err != nil {
		if e := c.JSON(http.StatusBadGateway, errorResponse{"Could not load tenders from the store"}); e != nil {
			return e
		}

		return err
	}

	output := getTendersOutput{
		Loaded:  h.tenderService.Loaded(),
		Saving:  h.tenderService.Saving(),
		Tenders: h.tenderService.Tenders(),
	}
	if e := c.JSON(http.StatusOK, output); e != nil {
		return e
	}

	return nil
}

type activeTenderOutput struct {
	ActiveTenderId string                           `json:"activeTenderId"`
	Tender         *entity.TenderDetailsOutputModel `json:"tender"`
}

// /tenders/active
func (h *tenderRoutesHandler) GetActiveTender(c echo.Context) error {
	output := activeTenderOutput{ActiveTenderId: h.tenderService.ActiveTenderId()}
	if output.ActiveTenderId != "" {
		tender, err := h.tenderService.GetTender(output.ActiveTenderId)
		if err == nil {
			output.Tender = tender
		}
	}

	if e := c.JSON(http.StatusOK, output); e != nil {
		return e
	}

	return nil
}

type selectTenderInput struct {
	TenderId string `json:"tenderId" validate:"required,max=100"`
}

// /tenders/active
func (h *tenderRoutesHandler) SelectActiveTender(c echo.Context) error {
	var input selectTenderInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	if err := h.tenderService.SelectTender(input.TenderId); err != nil {
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no tender with given id"}); e != nil {
			return e
		}

		return err
	}

	tender, err := h.tenderService.GetTender(input.TenderId)
	if err != nil {
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no tender with given id"}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, tender); e != nil {
		return e
	}

	return nil
}

type progressOutput struct {
	CurrentStage    int   `json:"currentStage"`
	CompletedStages []int `json:"completedStages"`
}

func (h *tenderRoutesHandler) progress() progressOutput {
	current, completed := h.tenderService.Progress()

	return progressOutput{CurrentStage: current, CompletedStages: completed}
}

// /tenders/active/progress
func (h *tenderRoutesHandler) GetProgress(c echo.Context) error {
	if e := c.JSON(http.StatusOK, h.progress()); e != nil {
		return e
	}

	return nil
}

type setStageInput struct {
	Stage int `json:"stage" validate:"required,min=1,max=5"`
}

// /tenders/active/progress
func (h *tenderRoutesHandler) SetStage(c echo.Context) error {
	var input setStageInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	if err := h.tenderService.SetStage(input.Stage); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"There is no stage with given number"}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, h.progress()); e != nil {
		return e
	}

	return nil
}

// /tenders/active/progress/next
func (h *tenderRoutesHandler) NextStage(c echo.Context) error {
	err := h.tenderService.AdvanceStage(c.Request().Context())
	if err == nil {
		if e := c.JSON(http.StatusOK, h.progress()); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrNoActiveTender:
		if e := c.JSON(http.StatusConflict, errorResponse{"No tender is selected"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadGateway, errorResponse{"Could not finish the last stage"}); e != nil {
			return e
		}
	}

	return err
}

// /tenders/active/progress/prev
func (h *tenderRoutesHandler) PrevStage(c echo.Context) error {
	h.tenderService.PrevStage()
	if e := c.JSON(http.StatusOK, h.progress()); e != nil {
		return e
	}

	return nil
}

// /tenders/:tenderId
func (h *tenderRoutesHandler) GetTender(c echo.Context) error {
	tender, err := h.tenderService.GetTender(c.Param("tenderId"))
	if err != nil {
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no tender with given id"}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, tender); e != nil {
		return e
	}

	return nil
}

type editTenderInput struct {
	TenderId string  `param:"tenderId" validate:"required,max=100"`
	Name     *string `json:"name" validate:"omitempty,max=200"`
	Status   *string `json:"status" validate:"omitempty,max=50"`
}

// /tenders/:tenderId/edit
func (h *tenderRoutesHandler) EditTender(c echo.Context) error {
	var input editTenderInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	input.TenderId = c.Param("tenderId")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.TenderMetaInput{Name: input.Name, Status: input.Status}
	tender, err := h.tenderService.UpdateTenderMeta(c.Request().Context(), input.TenderId, model)
	if err == nil {
		if e := c.JSON(http.StatusOK, tender); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrTenderNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no tender with given id"}); e != nil {
			return e
		}
	case service.ErrInvalidStatus:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"There is no status with given name"}); e != nil {
			return e
		}
	case service.ErrInvalidStatusTransition:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Status can't move backwards in the workflow"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadGateway, errorResponse{"Could not store the tender update"}); e != nil {
			return e
		}
	}

	return err
}

type updateTenderStatusInput struct {
	TenderId string `param:"tenderId" validate:"required,max=100"`
	Status   string `query:"status" validate:"required,max=50"`
}

// /tenders/:tenderId/status
func (h *tenderRoutesHandler) UpdateTenderStatus(c echo.Context) error {
	var input updateTenderStatusInput
	if err := c.Bind(&input); err != nil {
		msg := err.Error()
		if !strings.Contains(msg, "Request body can't be empty") {
			if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
				return e
			}

			return err
		}
	}

	input.TenderId, input.Status = c.Param("tenderId"), c.QueryParam("status")
	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	model := &entity.TenderMetaInput{Status: &input.Status}
	tender, err := h.tenderService.UpdateTenderMeta(c.Request().Context(), input.TenderId, model)
	if err == nil {
		if e := c.JSON(http.StatusOK, tender); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrTenderNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no tender with given id"}); e != nil {
			return e
		}
	case service.ErrInvalidStatus:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"There is no status with given name"}); e != nil {
			return e
		}
	case service.ErrInvalidStatusTransition:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Status can't move backwards in the workflow"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadGateway, errorResponse{"Could not store the tender update"}); e != nil {
			return e
		}
	}

	return err
}

// /tenders/:tenderId
func (h *tenderRoutesHandler) DeleteTender(c echo.Context) error {
	err := h.tenderService.DeleteTender(c.Request().Context(), c.Param("tenderId"))
	if err == nil {
		if e := c.NoContent(http.StatusNoContent); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrTenderNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no tender with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadGateway, errorResponse{"Could not delete the tender from the store"}); e != nil {
			return e
		}
	}

	return err
}

// /tenders/:tenderId/stages/:stageKey
func (h *tenderRoutesHandler) PatchStageData(c echo.Context) error {
	stageKey := c.Param("stageKey")
	if !common.IsValidStageKey(stageKey) {
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no stage with given key"}); e != nil {
			return e
		}

		return service.ErrUnknownStage
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	patch, err := entity.DecodeStagePatch(stageKey, body)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	tender, err := h.tenderService.PatchStageData(c.Param("tenderId"), patch)
	if err == nil {
		if e := c.JSON(http.StatusOK, tender); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrTenderNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no tender with given id"}); e != nil {
			return e
		}
	case service.ErrTendersNotLoaded:
		if e := c.JSON(http.StatusServiceUnavailable, errorResponse{"Tender list is not loaded yet"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
