package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sysregister/sysregister/core"
	"github.com/sysregister/sysregister/core/classeviva"
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that recovers
// every error into a structured JSON body; raw errors never cross the
// boundary.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *classeviva.APIError:
			code = origErr.Status
			message = apiErrorBody(origErr)
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			body := echo.Map{}
			if msg := origErr.Error(); msg != "" {
				body["error"] = msg
			}
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				body["fields"] = fldErrs
			}
			code = http.StatusBadRequest
			message = body
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = echo.Map{
				"error":   "Server error",
				"details": err.Error(),
			}
			logger.Error("unhandled server error", errors.Wrap(err, "server error"))
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// apiErrorBody renders the machine-readable error contract: Blocked carries
// the isBlocked flag so callers can suggest demo mode; upstream rejections
// carry the relayed status and body excerpt.
func apiErrorBody(err *classeviva.APIError) echo.Map {
	body := echo.Map{"error": err.Message}

	switch err.Kind {
	case classeviva.KindBlocked:
		body["message"] = "ClasseViva API is blocking requests from this server environment."
		body["details"] = err.Details
		body["isBlocked"] = true
	case classeviva.KindUpstreamRejected:
		body["details"] = err.Details
		body["status"] = err.Status
	case classeviva.KindMalformedResponse:
		body["details"] = "Server returned non-JSON response"
		if err.Details != "" {
			body["rawResponse"] = err.Details
		}
	case classeviva.KindNetworkFailure:
		body["details"] = err.Details
	}
	return body
}
