package http

import (
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

// apiDoc serves the OpenAPI document to the swagger UI.
type apiDoc struct {
	doc *openapi3.T
}

func (d apiDoc) ReadDoc() string {
	data, err := d.doc.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}

var registerDoc sync.Once

// RegisterDocs mounts the swagger UI under /swagger. swag keeps one global
// registry, so only the first document is registered.
func RegisterDocs(e *echo.Echo, doc *openapi3.T) {
	registerDoc.Do(func() {
		swag.Register(swag.Name, apiDoc{doc: doc})
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
