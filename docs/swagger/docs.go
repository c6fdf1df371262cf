// Package swagger registers the OpenAPI document served at /swagger/doc.json.
// The document is maintained by hand; keep it in sync when routes change.
package swagger

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
        "/users": {
            "get": {"tags": ["users"], "summary": "List all users", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["users"], "summary": "Create user", "responses": {"201": {"description": "Created"}, "409": {"description": "Email already exists"}}}
        },
        "/users/{id}": {
            "get": {"tags": ["users"], "summary": "Get user by id", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "patch": {"tags": ["users"], "summary": "Partially update user", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["users"], "summary": "Delete user", "responses": {"200": {"description": "OK"}}}
        },
        "/items": {
            "get": {"tags": ["items"], "summary": "List caller's items with bookings and comments", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["items"], "summary": "Create item", "responses": {"201": {"description": "Created"}}}
        },
        "/items/{id}": {
            "get": {"tags": ["items"], "summary": "Get item with comments (bookings for owner)", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["items"], "summary": "Partially update item (owner only)", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found or not owner"}}}
        },
        "/items/search": {
            "get": {"tags": ["items"], "summary": "Search available items by text", "responses": {"200": {"description": "OK"}}}
        },
        "/items/{id}/comment": {
            "post": {"tags": ["items"], "summary": "Comment on a previously rented item", "responses": {"200": {"description": "OK"}, "400": {"description": "No finished approved booking"}}}
        },
        "/items/request/{requestId}": {
            "get": {"tags": ["items"], "summary": "List items created for a request", "responses": {"200": {"description": "OK"}}}
        },
        "/bookings": {
            "get": {"tags": ["bookings"], "summary": "List caller's bookings by state", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["bookings"], "summary": "Create booking", "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid window, unavailable item or self-booking"}}}
        },
        "/bookings/{id}": {
            "get": {"tags": ["bookings"], "summary": "Get booking (booker or owner only)", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "patch": {"tags": ["bookings"], "summary": "Approve or reject a waiting booking", "responses": {"200": {"description": "OK"}, "400": {"description": "Not waiting or caller not owner"}}}
        },
        "/bookings/owner": {
            "get": {"tags": ["bookings"], "summary": "List bookings on caller's items by state", "responses": {"200": {"description": "OK"}, "404": {"description": "User has no items"}}}
        },
        "/requests": {
            "get": {"tags": ["requests"], "summary": "List caller's item requests", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["requests"], "summary": "Create item request", "responses": {"201": {"description": "Created"}}}
        },
        "/requests/all": {
            "get": {"tags": ["requests"], "summary": "Page through other users' requests", "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid pagination"}}}
        },
        "/requests/{id}": {
            "get": {"tags": ["requests"], "summary": "Get request with its items", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "LendShare API",
	Description:      "Peer-to-peer item-sharing backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
