package http

import (
	_ "embed"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var openapiSpec []byte

var loadSpec = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	return doc, nil
})

// OpenAPI handles GET /openapi.json - serves the API description.
// The embedded document is parsed and validated once on first request.
func (s *Server) OpenAPI(ctx echo.Context) error {
	doc, err := loadSpec()
	if err != nil {
		ctx.Logger().Error(err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
	return ctx.JSON(http.StatusOK, doc)
}
