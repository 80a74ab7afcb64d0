// Package docs registers the OpenAPI description of the HTTP surface with swag.
// Regenerate with: swag init -g cmd/blogd/main.go -o internal/api/docs
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
        "/graphql": {
            "post": {
                "description": "Runs a query or mutation. Send \"Authorization: Bearer <token>\" for mutations other than signup and login.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["graphql"],
                "summary": "Execute a GraphQL operation",
                "parameters": [
                    {
                        "description": "GraphQL request",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.graphqlRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.graphqlResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.graphqlResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.graphqlResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.graphqlResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.graphqlRequest": {
            "type": "object",
            "required": ["query"],
            "properties": {
                "operationName": {"type": "string"},
                "query": {"type": "string"},
                "variables": {"type": "object", "additionalProperties": true}
            }
        },
        "handler.graphqlResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "object", "additionalProperties": true},
                "errors": {"type": "array", "items": {"type": "object", "additionalProperties": true}}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "dependencies": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}
                },
                "status": {"type": "string"}
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
	Title:            "Blog GraphQL API",
	Description:      "GraphQL backend for users, posts and comments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
