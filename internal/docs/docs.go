// Package docs registers the OpenAPI document served under /swagger.
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
        "/register": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a user",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "first_name", "in": "formData"},
                    {"type": "string", "name": "last_name", "in": "formData"},
                    {"type": "string", "name": "email", "in": "formData"},
                    {"type": "string", "name": "phone", "in": "formData"},
                    {"type": "file", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Existing user updated", "schema": {"$ref": "#/definitions/handlers.RegisterResponse"}},
                    "201": {"description": "User registered", "schema": {"$ref": "#/definitions/handlers.RegisterResponse"}},
                    "400": {"description": "Invalid form or no face in image", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "503": {"description": "Biometric service unavailable", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Face login",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "file", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Session started", "schema": {"$ref": "#/definitions/handlers.LoginResponse"}},
                    "401": {"description": "Face does not match", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Unknown username", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/family/login": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Family face login",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "file", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Session started", "schema": {"$ref": "#/definitions/handlers.LoginResponse"}},
                    "401": {"description": "Face does not match", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Unknown username", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/family/register": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["family"],
                "summary": "Register a family member",
                "parameters": [
                    {"type": "string", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "name": "name", "in": "formData"},
                    {"type": "string", "name": "relationship", "in": "formData"},
                    {"type": "file", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Family member registered", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "403": {"description": "Family sessions cannot register members", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Family member already registered or username taken", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "Logged out", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "401": {"description": "No session", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Transfer history",
                "parameters": [
                    {"type": "integer", "default": 50, "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HistoryResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Initiate a transfer",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.InitiateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Pending transfer created", "schema": {"$ref": "#/definitions/handlers.TransactionResponse"}},
                    "400": {"description": "Invalid amount or branch", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Sender account not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Insufficient funds", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions/face-verification": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Face check for the pending transfer",
                "parameters": [
                    {"type": "file", "name": "image", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "Face verified", "schema": {"$ref": "#/definitions/handlers.MessageResponse"}},
                    "400": {"description": "No pending transfer or no face in image", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Face does not match", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/transactions/verify": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Verify OTP",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.VerifyRequest"}}
                ],
                "responses": {
                    "200": {"description": "Transfer settled", "schema": {"$ref": "#/definitions/handlers.TransactionResponse"}},
                    "400": {"description": "Invalid OTP or no pending transfer", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Face check required", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Insufficient funds or transfer closed", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "423": {"description": "Too many OTP attempts", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "default": "face verification failed"},
                "similarity": {"type": "number"}
            }
        },
        "handlers.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "handlers.RegisterResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "default": "User registered successfully"},
                "created": {"type": "boolean"}
            }
        },
        "handlers.LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string", "default": "JWT_TOKEN"},
                "display_name": {"type": "string"},
                "is_primary": {"type": "boolean"}
            }
        },
        "handlers.InitiateRequest": {
            "type": "object",
            "required": ["sender_account_id", "amount", "receiver_account_number"],
            "properties": {
                "sender_account_id": {"type": "string"},
                "branch": {"type": "string", "default": "Kochi"},
                "amount": {"type": "integer", "default": 400},
                "receiver_account_number": {"type": "integer"},
                "receiver_name": {"type": "string"}
            }
        },
        "handlers.VerifyRequest": {
            "type": "object",
            "required": ["otp"],
            "properties": {"otp": {"type": "string", "default": "123456"}}
        },
        "handlers.TransactionResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "transaction_id": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "verified", "locked"]},
                "amount": {"type": "integer"},
                "receiver_account_number": {"type": "integer"},
                "receiver_name": {"type": "string"},
                "created_at": {"type": "string"},
                "verified_at": {"type": "string"}
            }
        },
        "handlers.HistoryResponse": {
            "type": "object",
            "properties": {
                "transactions": {"type": "array", "items": {"type": "object"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "face-bank API",
	Description:      "Face-verified login and OTP-confirmed money transfers",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
