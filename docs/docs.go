// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/ai/generate": {
            "post": {
                "description": "Calls the completion provider with the transcript and optional instruction, then stores the result",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["AI"],
                "summary": "Generate summary",
                "parameters": [
                    {
                        "description": "Transcript and instruction",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/summary.GenerateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/summary.GenerateResponse"}},
                    "400": {"description": "Malformed JSON", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Provider or store failure", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/ai/save": {
            "post": {
                "description": "Replaces the edited text of a stored summary and bumps updatedAt",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["AI"],
                "summary": "Save edited summary",
                "parameters": [
                    {
                        "description": "Summary ID and edited text",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/summary.SaveRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/summary.DocResponse"}},
                    "400": {"description": "Missing summaryId", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "404": {"description": "Summary not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/ai/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["AI"],
                "summary": "Get summary",
                "parameters": [
                    {"type": "string", "description": "Summary ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/summary.DocResponse"}},
                    "404": {"description": "Summary not found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/api/email/send": {
            "post": {
                "description": "Sends the body as plain text with an HTML alternative. \"to\" accepts a comma-separated string or a list.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Email"],
                "summary": "Send summary by email",
                "parameters": [
                    {
                        "description": "Recipients, subject and body",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/email.SendRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/email.SendResponse"}},
                    "400": {"description": "Missing or invalid recipients or body", "schema": {"$ref": "#/definitions/common.ErrorResponse"}},
                    "500": {"description": "Delivery failure", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "common.ErrorResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "error": {"type": "string"},
                "code": {"type": "string"},
                "info": {"type": "string"},
                "generated": {"type": "string"}
            }
        },
        "email.SendRequest": {
            "type": "object",
            "properties": {
                "to": {"type": "string", "example": "alice@example.com, bob@example.com"},
                "subject": {"type": "string", "example": "Meeting Summary"},
                "body": {"type": "string"}
            }
        },
        "email.SendResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "info": {"$ref": "#/definitions/mailer.DeliveryInfo"}
            }
        },
        "mailer.DeliveryInfo": {
            "type": "object",
            "properties": {
                "messageId": {"type": "string"},
                "accepted": {"type": "array", "items": {"type": "string"}},
                "envelope": {"$ref": "#/definitions/mailer.Envelope"}
            }
        },
        "mailer.Envelope": {
            "type": "object",
            "properties": {
                "from": {"type": "string"},
                "to": {"type": "array", "items": {"type": "string"}}
            }
        },
        "summary.DocResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "doc": {"$ref": "#/definitions/summary.SummaryResponse"}
            }
        },
        "summary.GenerateRequest": {
            "type": "object",
            "properties": {
                "transcript": {"type": "string", "example": "Alice: let's ship on Friday."},
                "prompt": {"type": "string", "example": "Summarize in bullet points for executives"}
            }
        },
        "summary.GenerateResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "summaryId": {"type": "string"},
                "generated": {"type": "string"}
            }
        },
        "summary.SaveRequest": {
            "type": "object",
            "properties": {
                "summaryId": {"type": "string"},
                "edited": {"type": "string"}
            }
        },
        "summary.SummaryResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "transcript": {"type": "string"},
                "prompt": {"type": "string"},
                "generated": {"type": "string"},
                "edited": {"type": "string"},
                "model": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Meeting Summarizer API",
	Description:      "Generate, edit, store and email AI meeting summaries",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
