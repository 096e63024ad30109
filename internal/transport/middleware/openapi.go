package middleware

import (
	goerrors "errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"

	errors "github.com/frahmantamala/earned-wage-access/internal"
	"github.com/frahmantamala/earned-wage-access/internal/transport"
)

// LoadOpenAPI parses and validates an OpenAPI 3 document.
func LoadOpenAPI(data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}

// RequestValidator rejects requests whose parameters or body do not match
// the document. Routes the document does not describe pass through
// unchanged. Authentication is left to the session middleware.
func RequestValidator(doc *openapi3.T, base *transport.BaseHandler) (func(http.Handler) http.Handler, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				if goerrors.Is(err, routers.ErrPathNotFound) || goerrors.Is(err, routers.ErrMethodNotAllowed) {
					next.ServeHTTP(w, r)
					return
				}
				base.HandleServiceError(w, err)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				base.HandleError(w, requestValidationError(err))
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

func requestValidationError(err error) *errors.AppError {
	var details []errors.ValidationError

	var multi openapi3.MultiError
	if goerrors.As(err, &multi) {
		for _, e := range multi {
			details = append(details, validationDetail(e))
		}
	} else {
		details = append(details, validationDetail(err))
	}

	return errors.NewValidationError("Request does not match the API schema", errors.ErrCodeValidationFailed).
		WithDetails(errors.ValidationErrors{Errors: details})
}

func validationDetail(err error) errors.ValidationError {
	detail := errors.ValidationError{Message: err.Error(), Code: string(errors.ErrCodeValidationFailed)}

	var reqErr *openapi3filter.RequestError
	if goerrors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			detail.Field = reqErr.Parameter.Name
		} else if reqErr.RequestBody != nil {
			detail.Field = "body"
		}
		if reqErr.Reason != "" {
			detail.Message = reqErr.Reason
		}
	}
	return detail
}
