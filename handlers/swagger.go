package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves the API description of the ESPD service.
// - GET /swagger/index.html  -> Swagger UI page loading doc.json
// - GET /swagger/doc.json    -> OpenAPI document
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>espd-service: Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "espd-service", "version": "v0.1.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } }
  },
  "paths": {
    "/api/criteria": {
      "get": {
        "summary": "List the criterion taxonomy",
        "parameters": [
          { "name": "set", "in": "query", "schema": { "type": "string", "enum": ["exclusion", "selection", "other"] } },
          { "name": "variant", "in": "query", "schema": { "type": "string" } }
        ],
        "responses": { "200": { "description": "criteria in declared order" }, "400": { "description": "unknown set or variant" } }
      }
    },
    "/api/criteria/{id}": {
      "get": { "summary": "Get one criterion by identifier", "responses": { "200": { "description": "criterion" }, "404": { "description": "unknown criterion" } } }
    },
    "/api/espd": {
      "get": { "summary": "List ESPD documents", "responses": { "200": { "description": "documents" } } },
      "post": { "summary": "Create an ESPD document", "security": [ { "bearer": [] } ], "responses": { "201": { "description": "created" }, "400": { "description": "malformed document" } } }
    },
    "/api/espd/{id}": {
      "get": { "summary": "Get a document", "responses": { "200": { "description": "document" }, "404": { "description": "not found" } } },
      "put": { "summary": "Replace a document", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "updated" }, "400": { "description": "malformed document" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete a document", "security": [ { "bearer": [] } ], "responses": { "204": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/espd/{id}/summary": {
      "get": { "summary": "Selection and procurement information predicates", "responses": { "200": { "description": "summary" }, "404": { "description": "not found" } } }
    },
    "/api/espd/{id}/exclusion/activate": {
      "post": { "summary": "Activate every exclusion criterion", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "sweep report" }, "404": { "description": "not found" } } }
    },
    "/api/espd/{id}/exclusion/activate-eu": {
      "post": { "summary": "Activate EU exclusion grounds, leaving purely national grounds inactive", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "sweep report" }, "404": { "description": "not found" } } }
    },
    "/api/espd/{id}/selection/activate": {
      "post": { "summary": "Activate every selection criterion", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "sweep report" }, "404": { "description": "not found" } } }
    },
    "/api/espd/{id}/criteria/{field}": {
      "get": { "summary": "Read one criterion field", "responses": { "200": { "description": "criterion or null" }, "404": { "description": "unknown document or field" } } },
      "put": { "summary": "Write one criterion field; null clears it", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "stored criterion" }, "204": { "description": "cleared" }, "400": { "description": "malformed criterion" }, "404": { "description": "unknown document or field" } } }
    },
    "/api/espd/{id}/export": {
      "post": { "summary": "Render the document to HTML and upload it", "security": [ { "bearer": [] } ], "responses": { "201": { "description": "export record" }, "404": { "description": "not found" }, "502": { "description": "object storage failure" } } }
    },
    "/api/espd/{id}/exports": {
      "get": { "summary": "List exports of a document", "responses": { "200": { "description": "export records" } } }
    },
    "/api/espd/{id}/exports/{exportId}/content": {
      "get": { "summary": "Stream the stored HTML of one export", "responses": { "200": { "description": "text/html" }, "404": { "description": "unknown export" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
