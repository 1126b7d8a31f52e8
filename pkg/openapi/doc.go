// Package openapi exports compiled form schemas as OpenAPI 3 component
// schemas. UI annotations without an OpenAPI keyword travel as x- extensions
// so API tooling can carry them next to request bodies.
package openapi
