// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/board": {
            "get": {
                "tags": ["Board"],
                "summary": "Board snapshot",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BoardResponse"}}}
            }
        },
        "/board/columns/{column}": {
            "get": {
                "tags": ["Board"],
                "summary": "Single column by gesture id",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Column id", "name": "column", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ColumnResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/board/leads/{id}": {
            "get": {
                "tags": ["Board"],
                "summary": "Column and position of a lead on the board",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Lead ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.LocateResponse"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/board/drag": {
            "post": {
                "tags": ["Board"],
                "summary": "Apply a finished drag gesture",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"description": "Drag gesture", "name": "gesture", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pipeline.DragEvent"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.DragResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/board/reload": {
            "post": {
                "tags": ["Board"],
                "summary": "Refetch leads and rebuild the board",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ReloadResponse"}}}
            }
        },
        "/board/notifier": {
            "get": {
                "tags": ["Board"],
                "summary": "Stage update delivery counters",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/notifier.Stats"}}}
            }
        },
        "/leads": {
            "get": {
                "tags": ["Leads"],
                "summary": "Lead batch in the remote wire format",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/source.Batch"}}}
            }
        },
        "/leads/status": {
            "post": {
                "tags": ["Leads"],
                "summary": "Persist a lead's stage",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"description": "Stage update", "name": "update", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.StageUpdate"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/leads/{id}/transitions": {
            "get": {
                "tags": ["Leads"],
                "summary": "Stage change audit trail of a lead",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Lead ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.TransitionResponse"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "model.Lead": {
            "type": "object",
            "properties": {
                "Id": {"type": "integer"},
                "LeadsStatus": {"type": "integer", "enum": [0, 1, 2, 3]},
                "AdName": {"type": "string"},
                "FullName": {"type": "string"},
                "PhoneNumber": {"type": "string"},
                "Email": {"type": "string"},
                "City": {"type": "string"},
                "Platform": {"type": "string"},
                "CreatedTime": {"type": "string"}
            }
        },
        "model.StageUpdate": {
            "type": "object",
            "required": ["LeadId"],
            "properties": {
                "LeadId": {"type": "integer"},
                "LeadsStatus": {"type": "integer", "enum": [0, 1, 2, 3]},
                "UserID": {"type": "string"}
            }
        },
        "pipeline.DragEvent": {
            "type": "object",
            "required": ["sourceColumnId"],
            "properties": {
                "sourceColumnId": {"type": "string"},
                "sourceIndex": {"type": "integer", "minimum": 0},
                "destColumnId": {"type": "string"},
                "destIndex": {"type": "integer"}
            }
        },
        "handler.ColumnResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "stage": {"type": "integer"},
                "leads": {"type": "array", "items": {"$ref": "#/definitions/model.Lead"}}
            }
        },
        "handler.BoardResponse": {
            "type": "object",
            "properties": {
                "version": {"type": "integer"},
                "total": {"type": "integer"},
                "columns": {"type": "array", "items": {"$ref": "#/definitions/handler.ColumnResponse"}}
            }
        },
        "handler.DragResponse": {
            "type": "object",
            "properties": {
                "moved": {"type": "boolean"},
                "reordered": {"type": "boolean"},
                "lead": {"$ref": "#/definitions/model.Lead"},
                "from": {"type": "string"},
                "to": {"type": "string"},
                "notified": {"type": "integer"}
            }
        },
        "handler.LocateResponse": {
            "type": "object",
            "properties": {
                "lead_id": {"type": "integer"},
                "column": {"type": "string"},
                "stage": {"type": "integer"},
                "index": {"type": "integer"}
            }
        },
        "handler.ReloadResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "columns": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "handler.TransitionResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "lead_id": {"type": "integer"},
                "from": {"type": "string"},
                "to": {"type": "string"},
                "user_id": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "notifier.Stats": {
            "type": "object",
            "properties": {
                "sent": {"type": "integer"},
                "failed": {"type": "integer"},
                "dropped": {"type": "integer"}
            }
        },
        "source.Batch": {
            "type": "object",
            "properties": {
                "leadsList": {"type": "array", "items": {"$ref": "#/definitions/model.Lead"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Lead Board API",
	Description:      "Sales pipeline board: drag leads between stages and persist stage changes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
