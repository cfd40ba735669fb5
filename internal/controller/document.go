package controller

import (
	"errors"
	"net/http"

	"tender-drafting-api/internal/ai"
	"tender-drafting-api/internal/editor"
	"tender-drafting-api/internal/entity"
	"tender-drafting-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type documentRoutesHandler struct {
	documentService service.Document
	validate        *validator.Validate
}

func newDocumentRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *documentRoutesHandler {
	h := &documentRoutesHandler{documentService: services.Document, validate: v}

	outer.GET("/documents/fields", h.GetDocumentFields)

	outer.GET("/tenders/:tenderId/documents/:field", h.GetDocument)
	outer.PUT("/tenders/:tenderId/documents/:field/active", h.SelectVersion)

	outer.POST("/tenders/:tenderId/documents/:field/edit", h.BeginEdit)
	outer.PUT("/tenders/:tenderId/documents/:field/edit", h.SetEditBuffer)
	outer.POST("/tenders/:tenderId/documents/:field/edit/commit", h.CommitEdit)
	outer.DELETE("/tenders/:tenderId/documents/:field/edit", h.CancelEdit)

	outer.POST("/tenders/:tenderId/documents/:field/ai", h.ApplyAIAction)
	outer.POST("/tenders/:tenderId/documents/:field/workflow", h.TriggerWorkflow)

	return h
}

// /documents/fields
func (h *documentRoutesHandler) GetDocumentFields(c echo.Context) error {
	if e := c.JSON(http.StatusOK, entity.DocumentFieldIdentifiers()); e != nil {
		return e
	}

	return nil
}

func (h *documentRoutesHandler) writeDocumentError(c echo.Context, err error) error {
	switch err {
	case service.ErrTenderNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no tender with given id"}); e != nil {
			return e
		}
	case service.ErrDocumentFieldUnknown:
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no document field with given identifier"}); e != nil {
			return e
		}
	case service.ErrTendersNotLoaded:
		if e := c.JSON(http.StatusServiceUnavailable, errorResponse{"Tender list is not loaded yet"}); e != nil {
			return e
		}
	case service.ErrVersionNotFound:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"No such version"}); e != nil {
			return e
		}
	case service.ErrEditInProgress, editor.ErrAlreadyEditing:
		if e := c.JSON(http.StatusConflict, errorResponse{"The field is being edited"}); e != nil {
			return e
		}
	case editor.ErrNotEditing:
		if e := c.JSON(http.StatusConflict, errorResponse{"The field is not being edited"}); e != nil {
			return e
		}
	default:
		if errors.Is(err, ai.ErrGenerationFailed) {
			if e := c.JSON(http.StatusBadGateway, errorResponse{"Text generation failed"}); e != nil {
				return e
			}

			return err
		}
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /tenders/:tenderId/documents/:field
func (h *documentRoutesHandler) GetDocument(c echo.Context) error {
	doc, err := h.documentService.GetDocument(c.Param("tenderId"), c.Param("field"))
	if err != nil {
		return h.writeDocumentError(c, err)
	}
	if e := c.JSON(http.StatusOK, doc); e != nil {
		return e
	}

	return nil
}

type selectVersionInput struct {
	VersionId string `json:"versionId" validate:"required,max=100"`
}

// /tenders/:tenderId/documents/:field/active
func (h *documentRoutesHandler) SelectVersion(c echo.Context) error {
	var input selectVersionInput
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

	doc, err := h.documentService.SelectVersion(c.Param("tenderId"), c.Param("field"), input.VersionId)
	if err != nil {
		return h.writeDocumentError(c, err)
	}
	if e := c.JSON(http.StatusOK, doc); e != nil {
		return e
	}

	return nil
}

// /tenders/:tenderId/documents/:field/edit
func (h *documentRoutesHandler) BeginEdit(c echo.Context) error {
	if err := h.documentService.BeginEdit(c.Param("tenderId"), c.Param("field")); err != nil {
		return h.writeDocumentError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

type setBufferInput struct {
	Content string `json:"content"`
}

// /tenders/:tenderId/documents/:field/edit
func (h *documentRoutesHandler) SetEditBuffer(c echo.Context) error {
	var input setBufferInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.documentService.SetEditBuffer(c.Param("tenderId"), c.Param("field"), input.Content); err != nil {
		return h.writeDocumentError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

// /tenders/:tenderId/documents/:field/edit/commit
func (h *documentRoutesHandler) CommitEdit(c echo.Context) error {
	doc, err := h.documentService.CommitEdit(c.Param("tenderId"), c.Param("field"))
	if err != nil {
		return h.writeDocumentError(c, err)
	}
	if e := c.JSON(http.StatusOK, doc); e != nil {
		return e
	}

	return nil
}

// /tenders/:tenderId/documents/:field/edit
func (h *documentRoutesHandler) CancelEdit(c echo.Context) error {
	if err := h.documentService.CancelEdit(c.Param("tenderId"), c.Param("field")); err != nil {
		return h.writeDocumentError(c, err)
	}
	if e := c.NoContent(http.StatusNoContent); e != nil {
		return e
	}

	return nil
}

type aiActionInput struct {
	Action string `json:"action" validate:"required,oneof=generate expand shorten rewrite"`
}

// /tenders/:tenderId/documents/:field/ai
func (h *documentRoutesHandler) ApplyAIAction(c echo.Context) error {
	var input aiActionInput
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

	action, err := ai.ParseAction(input.Action)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"There is no action with given name"}); e != nil {
			return e
		}

		return err
	}

	doc, err := h.documentService.ApplyAIAction(c.Request().Context(), c.Param("tenderId"), c.Param("field"), action)
	if err != nil {
		return h.writeDocumentError(c, err)
	}
	if e := c.JSON(http.StatusOK, doc); e != nil {
		return e
	}

	return nil
}

// /tenders/:tenderId/documents/:field/workflow
func (h *documentRoutesHandler) TriggerWorkflow(c echo.Context) error {
	if err := h.documentService.TriggerWorkflow(c.Request().Context(), c.Param("tenderId"), c.Param("field")); err != nil {
		return h.writeDocumentError(c, err)
	}
	if e := c.NoContent(http.StatusAccepted); e != nil {
		return e
	}

	return nil
}
