// Package api embeds the OpenAPI document of the dispatch HTTP surface.
// Requests are validated against it and /swagger serves it.
package api

import _ "embed"

//go:embed openapi.yaml
var Spec []byte
