package api

import (
	_ "embed"
)

// Spec is the OpenAPI 3 document for the HTTP API.
//
//go:embed openapi.yml
var Spec []byte
