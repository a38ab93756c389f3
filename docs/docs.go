// Package docs chứa tài liệu swagger của API, được gin-swagger phục vụ tại /swagger/index.html
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a user account", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/auth/register/admin": {"post": {"tags": ["auth"], "summary": "Register an admin account", "parameters": [{"type": "string", "name": "X-Admin-Key", "in": "header", "required": true}], "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}},
        "/auth/verify": {"get": {"tags": ["auth"], "summary": "Activate an account from the emailed link", "parameters": [{"type": "string", "name": "token", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/auth/resend-verification": {"post": {"tags": ["auth"], "summary": "Resend the verification email", "responses": {"200": {"description": "OK"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Log in with username or email", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/google": {"post": {"tags": ["auth"], "summary": "Log in with a Google ID token", "responses": {"200": {"description": "OK"}}}},
        "/auth/logout": {"delete": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Log out", "responses": {"204": {"description": "No Content"}}}},
        "/users": {"get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List accounts", "responses": {"200": {"description": "OK"}}}},
        "/users/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get a user account", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Edit a user account", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Delete a user account", "responses": {"200": {"description": "OK"}}}
        },
        "/users/{id}/fund": {"post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Fund an account balance", "responses": {"200": {"description": "OK"}}}},
        "/users/{id}/payments": {"get": {"security": [{"BearerAuth": []}], "tags": ["payments"], "summary": "Payment history", "responses": {"200": {"description": "OK"}}}},
        "/users/{id}/bookings": {"get": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "Bookings of a user", "responses": {"200": {"description": "OK"}}}},
        "/users/{id}/comments": {"get": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Comments of a user", "responses": {"200": {"description": "OK"}}}},
        "/admins/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admins"], "summary": "Get an admin account", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["admins"], "summary": "Edit an admin account", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["admins"], "summary": "Delete an admin account", "responses": {"200": {"description": "OK"}}}
        },
        "/hotels": {
            "get": {"tags": ["hotels"], "summary": "List hotels, optionally by state", "parameters": [{"type": "string", "name": "state", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["hotels"], "summary": "Create a hotel with its rooms", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/hotels/{id}": {
            "get": {"tags": ["hotels"], "summary": "Get a hotel", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["hotels"], "summary": "Edit a hotel", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["hotels"], "summary": "Delete a hotel", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/hotels/{id}/pictures": {"post": {"security": [{"BearerAuth": []}], "tags": ["hotels"], "summary": "Upload hotel pictures", "consumes": ["multipart/form-data"], "responses": {"201": {"description": "Created"}}}},
        "/hotels/{id}/rooms": {
            "get": {"tags": ["rooms"], "summary": "Rooms of a hotel", "parameters": [{"type": "string", "name": "type", "in": "query"}, {"type": "boolean", "name": "available", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["rooms"], "summary": "Add a room to a hotel", "responses": {"201": {"description": "Created"}}}
        },
        "/hotels/{id}/rooms/{roomId}/activate": {"put": {"security": [{"BearerAuth": []}], "tags": ["rooms"], "summary": "Mark a room available", "responses": {"200": {"description": "OK"}}}},
        "/hotels/{id}/rooms/{roomId}/deactivate": {"put": {"security": [{"BearerAuth": []}], "tags": ["rooms"], "summary": "Mark a room unavailable", "responses": {"200": {"description": "OK"}}}},
        "/hotels/{id}/comments": {
            "get": {"tags": ["comments"], "summary": "Comments of a hotel", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Comment on a recent stay", "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}}
        },
        "/hotels/{id}/comments/{commentId}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["comments"], "summary": "Delete a comment", "responses": {"200": {"description": "OK"}}}},
        "/states/{state}/hotels/count": {"get": {"tags": ["hotels"], "summary": "Count hotels in a state", "responses": {"200": {"description": "OK"}}}},
        "/states/{state}/hotels/most-booked": {"get": {"tags": ["hotels"], "summary": "Hotels in a state ranked by bookings", "responses": {"200": {"description": "OK"}}}},
        "/rooms/search": {"get": {"tags": ["rooms"], "summary": "Rooms by price range and state", "parameters": [{"type": "number", "name": "min", "in": "query"}, {"type": "number", "name": "max", "in": "query"}, {"type": "string", "name": "state", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/rooms/{roomId}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["rooms"], "summary": "Edit a room", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["rooms"], "summary": "Delete a room", "responses": {"200": {"description": "OK"}}}
        },
        "/rooms/{roomId}/availability": {"get": {"tags": ["rooms"], "summary": "Check room availability", "responses": {"200": {"description": "OK"}}}},
        "/rooms/{roomId}/pictures": {"post": {"security": [{"BearerAuth": []}], "tags": ["rooms"], "summary": "Upload room pictures", "consumes": ["multipart/form-data"], "responses": {"201": {"description": "Created"}}}},
        "/bookings": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "List all bookings", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "Book a room", "responses": {"201": {"description": "Created"}, "402": {"description": "Payment Required"}, "409": {"description": "Conflict"}}}
        },
        "/bookings/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "Get a booking", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "Change dates or room of a booking", "responses": {"200": {"description": "OK"}}}
        },
        "/bookings/{id}/cancel": {"post": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "Cancel a booking with refund", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo giữ thông tin có thể chỉnh lúc chạy, ví dụ Host
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Bimber Hotel Booking API",
	Description:      "Hotel discovery and room booking with wallet payments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
