// Package docs holds the OpenAPI document served under -tags=swagger.
// Regenerate with `swag init -g cmd/bookslib/docs.go -o docs` after changing
// handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "bookslib maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/state": {
            "get": {
                "description": "Forms, busy flags, error slot, available items and latest attempts.",
                "produces": ["application/json"],
                "summary": "Controller state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StateResponse"}}
                }
            }
        },
        "/items": {
            "get": {
                "produces": ["application/json"],
                "summary": "Available items",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ItemsResponse"}}
                }
            }
        },
        "/forms/{form}/fields/{field}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Edit a form field",
                "parameters": [
                    {"type": "string", "description": "add, checkout or return", "name": "form", "in": "path", "required": true},
                    {"type": "string", "description": "author, title, copies or itemId", "name": "field", "in": "path", "required": true},
                    {"description": "new value", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.FieldUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/ops/{op}": {
            "post": {
                "description": "Starts add, checkout, return or list. With wait=1 the response is sent once the attempt settles; a failed attempt is still a 200 carrying its reason.",
                "produces": ["application/json"],
                "summary": "Trigger an operation",
                "parameters": [
                    {"type": "string", "description": "add, checkout, return or list", "name": "op", "in": "path", "required": true},
                    {"type": "string", "description": "1 to wait for settlement", "name": "wait", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.OpResponse"}},
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/types.OpResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/error": {
            "delete": {
                "summary": "Dismiss the error banner",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "types.AddItemForm": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "title": {"type": "string"},
                "copies": {"type": "string"}
            }
        },
        "types.ItemRefForm": {
            "type": "object",
            "properties": {
                "itemId": {"type": "string"}
            }
        },
        "types.FormsState": {
            "type": "object",
            "properties": {
                "addItem": {"$ref": "#/definitions/types.AddItemForm"},
                "checkout": {"$ref": "#/definitions/types.ItemRefForm"},
                "return": {"$ref": "#/definitions/types.ItemRefForm"}
            }
        },
        "types.ErrorBanner": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Book not available"},
                "kind": {"type": "string", "example": "rejected"},
                "op": {"type": "string", "example": "checkout"},
                "at_unix": {"type": "integer", "example": 1700000000}
            }
        },
        "types.AttemptStatus": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "6f1c2f8e-7d8a-4c3e-9f55-0a3b1f0d2c11"},
                "op": {"type": "string", "example": "add"},
                "state": {"type": "string", "example": "succeeded"},
                "tx_id": {"type": "string"},
                "reason": {"type": "string"},
                "kind": {"type": "string"},
                "started_unix": {"type": "integer"},
                "duration_ms": {"type": "integer"}
            }
        },
        "types.StateResponse": {
            "type": "object",
            "properties": {
                "connected": {"type": "boolean", "example": true},
                "account": {"type": "string", "example": "0x970E8128AB834E8EAC17Ab8E3812F010678CF791"},
                "registry": {"type": "string", "example": "0x29c7DA5e258E1bAc4E203a9f1127D7f279591F05"},
                "session_error": {"type": "string"},
                "forms": {"$ref": "#/definitions/types.FormsState"},
                "busy": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "error": {"$ref": "#/definitions/types.ErrorBanner"},
                "available_items": {"type": "array", "items": {"type": "string"}},
                "show_results": {"type": "boolean"},
                "attempts": {"type": "object", "additionalProperties": {"$ref": "#/definitions/types.AttemptStatus"}}
            }
        },
        "types.OpResponse": {
            "type": "object",
            "properties": {
                "attempt_id": {"type": "string"},
                "op": {"type": "string", "example": "list"},
                "state": {"type": "string", "example": "pending"},
                "reason": {"type": "string"},
                "kind": {"type": "string"},
                "tx_id": {"type": "string"},
                "items": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.ItemsResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"type": "string"}}
            }
        },
        "types.FieldUpdateRequest": {
            "type": "object",
            "properties": {
                "value": {"type": "string", "example": "42"}
            }
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid JSON body"},
                "code": {"type": "integer", "example": 400}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "bookslib API",
	Description:      "Controller for the books library registry: forms, operations and the error banner.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
