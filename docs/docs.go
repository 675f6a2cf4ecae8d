// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go -o docs
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
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [{"description": "Registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login user",
                "parameters": [{"description": "Login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/auth/refresh-token": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh access token",
                "parameters": [{"description": "Email and refresh token", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RefreshRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.AuthResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errors.ErrorResponse"}}
                }
            }
        },
        "/users/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get the authenticated user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}}}
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/users/{userId}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get user by id", "parameters": [{"type": "string", "name": "userId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update user", "parameters": [{"type": "string", "name": "userId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Delete user", "parameters": [{"type": "string", "name": "userId", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/products": {
            "get": {"tags": ["products"], "summary": "List products", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Create product", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Product"}}}}
        },
        "/products/import": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Bulk create or update products by name", "responses": {"200": {"description": "OK"}}}
        },
        "/products/{productId}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Get product by id", "parameters": [{"type": "string", "name": "productId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Product"}}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Update product", "parameters": [{"type": "string", "name": "productId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Product"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Delete product", "parameters": [{"type": "string", "name": "productId", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/carts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "List cart entries with the total to pay", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "Add a product to a cart", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/model.CartEntry"}}}}
        },
        "/carts/{cartId}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "Get cart entry", "parameters": [{"type": "string", "name": "cartId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.CartEntry"}}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "Update cart entry", "parameters": [{"type": "string", "name": "cartId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.CartEntry"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["carts"], "summary": "Delete cart entry", "parameters": [{"type": "string", "name": "cartId", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/orders": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "List orders", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Place an order; the caller's pending cart is emptied", "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Order"}}}}
        },
        "/orders/{orderId}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Get order", "parameters": [{"type": "string", "name": "orderId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Order"}}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Update order", "parameters": [{"type": "string", "name": "orderId", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Order"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Delete order", "parameters": [{"type": "string", "name": "orderId", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}}}
        }
    },
    "definitions": {
        "errors.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/errors.FieldError"}}
            }
        },
        "errors.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "location": {"type": "string"},
                "messages": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.RegisterRequest": {
            "type": "object",
            "required": ["email", "name", "password"],
            "properties": {"email": {"type": "string"}, "name": {"type": "string", "maxLength": 128}, "password": {"type": "string", "minLength": 6, "maxLength": 72}}
        },
        "handler.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.RefreshRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "refreshToken": {"type": "string"}}
        },
        "handler.AuthResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/model.User"},
                "token": {
                    "type": "object",
                    "properties": {"tokenType": {"type": "string"}, "accessToken": {"type": "string"}, "refreshToken": {"type": "string"}, "expiresIn": {"type": "integer"}}
                }
            }
        },
        "model.User": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string", "enum": ["user", "admin"]}, "createdAt": {"type": "string"}}
        },
        "model.Product": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "category": {"type": "string"}, "price": {"type": "string"}, "stock": {"type": "integer"}, "createdAt": {"type": "string"}}
        },
        "model.CartEntry": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "productId": {"type": "string"}, "amount": {"type": "integer", "minimum": 0, "maximum": 10}, "userId": {"type": "string"}, "status": {"type": "string", "enum": ["pending", "ordered"]}, "createdAt": {"type": "string"}}
        },
        "model.Order": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "cart": {"type": "array", "items": {"type": "array", "items": {}}}, "total": {"type": "string"}, "userId": {"type": "string"}, "status": {"type": "string", "enum": ["pending", "confirmed"]}, "createdAt": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Storefront API",
	Description:      "Commerce backend with products, carts, orders and JWT authentication.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
