package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/jmehdipour/email-tracker/internal/model"
	"github.com/jmehdipour/email-tracker/internal/service/tracker"
	"github.com/jmehdipour/email-tracker/internal/tracking"
	echo "github.com/labstack/echo/v4"
)

const (
	msgCreated         = "Email tracking data saved successfully!"
	msgUpdated         = "Email tracking data updated successfully!"
	msgValidationError = "Validation error"
	msgSaveFailed      = "Failed to save email tracking data"
	msgLookupFailed    = "Failed to load email tracking data"
	msgNotFound        = "Email tracking data not found"
)

// Tracker is the slice of the tracking service the HTTP layer needs.
type Tracker interface {
	Track(ctx context.Context, customerID, tenantID string) (tracker.Result, error)
	Lookup(ctx context.Context, customerID, tenantID string) (*model.TrackingRecord, error)
	Ready(ctx context.Context) error
}

type messageResp struct {
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
	Kind    string `json:"error_kind,omitempty"`
}

// trackEmailHandler serves GET /track-email?customer_number=..&tenant=..
func trackEmailHandler(svc Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := svc.Track(c.Request().Context(), c.QueryParam("customer_number"), c.QueryParam("tenant"))
		if err != nil {
			return writeTrackingError(c, err, msgSaveFailed)
		}

		msg := msgUpdated
		if res.Outcome == model.OutcomeCreated {
			msg = msgCreated
		}
		return c.JSON(http.StatusOK, messageResp{Message: msg})
	}
}

// lookupHandler serves GET /v1/tracking?customer_number=..&tenant=..
func lookupHandler(svc Tracker) echo.HandlerFunc {
	return func(c echo.Context) error {
		rec, err := svc.Lookup(c.Request().Context(), c.QueryParam("customer_number"), c.QueryParam("tenant"))
		if err != nil {
			return writeTrackingError(c, err, msgLookupFailed)
		}
		if rec == nil {
			return c.JSON(http.StatusNotFound, messageResp{Message: msgNotFound})
		}
		return c.JSON(http.StatusOK, rec)
	}
}

func writeTrackingError(c echo.Context, err error, failMsg string) error {
	var terr *tracking.Error
	if errors.As(err, &terr) && terr.Kind == tracking.KindInvalidInput {
		return c.JSON(terr.HTTPStatus(), messageResp{
			Message: msgValidationError,
			Errors:  terr.Details,
			Kind:    string(terr.Kind),
		})
	}

	return c.JSON(http.StatusInternalServerError, messageResp{
		Message: failMsg,
		Errors:  err.Error(),
		Kind:    string(tracking.KindStoreUnavailable),
	})
}
