// Package docs holds the OpenAPI document served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/server/main.go
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
        "/api/chat": {
            "post": {
                "description": "Retrieves and ranks professors for the last message and streams the model's reply as plain text",
                "consumes": ["application/json"],
                "produces": ["text/plain"],
                "tags": ["chat"],
                "summary": "Recommend professors",
                "parameters": [
                    {
                        "description": "Conversation, oldest first",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/llm.Message"}
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "streamed reply", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/chat/preview": {
            "post": {
                "description": "Runs retrieval, ranking and prompt assembly without calling the completion model",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["chat"],
                "summary": "Preview the assembled prompt",
                "parameters": [
                    {
                        "description": "Conversation, oldest first",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/llm.Message"}
                        }
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/chat.PreviewResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/api/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Ping",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.PingResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/health.Response"}}
                }
            }
        }
    },
    "definitions": {
        "chat.PreviewResponse": {
            "type": "object",
            "properties": {
                "candidates": {"type": "array", "items": {"$ref": "#/definitions/ranker.Ranked"}},
                "messages": {"type": "array", "items": {"$ref": "#/definitions/llm.Message"}},
                "query": {"type": "string"}
            }
        },
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "health.PingResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "health.Response": {
            "type": "object",
            "properties": {
                "llm_provider": {"type": "string"},
                "service": {"type": "string"},
                "status": {"type": "string"},
                "vector_backend": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "llm.Message": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "assistant", "system"]}
            }
        },
        "ranker.Ranked": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "metadata": {"type": "object", "additionalProperties": true},
                "rankScore": {"type": "number"},
                "similarity": {"type": "number"}
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
	Title:            "Rate My Professor API",
	Description:      "Retrieval-augmented professor recommendations with streamed replies",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
