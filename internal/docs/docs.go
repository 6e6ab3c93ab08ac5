// Package docs serves a machine-readable description of the HTTP API.
package docs

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type info struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

type securityScheme struct {
	Type string `json:"type"`
	Name string `json:"name"`
	In   string `json:"in"`
}

type parameter struct {
	In       string `json:"in"`
	Name     string `json:"name"`
	Required bool   `json:"required,omitempty"`
	Type     string `json:"type,omitempty"`
	Schema   any    `json:"schema,omitempty"`
}

type operation struct {
	Description string              `json:"description"`
	Security    []map[string][]any  `json:"security,omitempty"`
	Parameters  []parameter         `json:"parameters,omitempty"`
	Responses   map[string]response `json:"responses"`
}

type response struct {
	Description string `json:"description"`
}

type document struct {
	Swagger             string                          `json:"swagger"`
	Info                info                            `json:"info"`
	SecurityDefinitions map[string]securityScheme       `json:"securityDefinitions"`
	Paths               map[string]map[string]operation `json:"paths"`
}

var bearer = []map[string][]any{{"Bearer": {}}}

func objectSchema(required []string, props map[string]string) any {
	properties := make(map[string]map[string]string, len(props))
	for name, typ := range props {
		properties[name] = map[string]string{"type": typ}
	}
	return map[string]any{
		"type":       "object",
		"required":   required,
		"properties": properties,
	}
}

var userBody = parameter{
	In:   "body",
	Name: "user",
	Schema: objectSchema(
		[]string{"name", "email", "password"},
		map[string]string{"name": "string", "email": "string", "password": "string"},
	),
}

var credentialsBody = parameter{
	In:   "body",
	Name: "user",
	Schema: objectSchema(
		[]string{"email", "password"},
		map[string]string{"email": "string", "password": "string"},
	),
}

var productBody = parameter{
	In:   "body",
	Name: "product",
	Schema: objectSchema(
		[]string{"name", "description", "price"},
		map[string]string{"name": "string", "description": "string", "price": "number"},
	),
}

var productID = parameter{
	In:       "path",
	Name:     "id",
	Required: true,
	Type:     "string",
}

var apiSpec = document{
	Swagger: "2.0",
	Info: info{
		Title:       "API Documentation",
		Description: "Users and products API",
		Version:     "1.0.0",
	},
	SecurityDefinitions: map[string]securityScheme{
		"Bearer": {Type: "apiKey", Name: "Authorization", In: "header"},
	},
	Paths: map[string]map[string]operation{
		"/users": {
			"post": {
				Description: "Create a new user",
				Parameters:  []parameter{userBody},
				Responses: map[string]response{
					"201": {"User created successfully"},
					"400": {"User already exists"},
					"500": {"Internal Server Error"},
				},
			},
		},
		"/users/login": {
			"post": {
				Description: "Login a user",
				Parameters:  []parameter{credentialsBody},
				Responses: map[string]response{
					"200": {"Login successful"},
					"400": {"Invalid email or password"},
					"500": {"Internal Server Error"},
				},
			},
		},
		"/users/logout": {
			"get": {
				Description: "Logout a user",
				Responses: map[string]response{
					"200": {"Logout successful"},
					"500": {"Internal Server Error"},
				},
			},
		},
		"/users/me": {
			"get": {
				Description: "Get currently logged in user",
				Security:    bearer,
				Responses: map[string]response{
					"200": {"User details"},
					"401": {"Unauthorized"},
					"500": {"Internal Server Error"},
				},
			},
		},
		"/products": {
			"post": {
				Description: "Create a new product",
				Security:    bearer,
				Parameters:  []parameter{productBody},
				Responses: map[string]response{
					"201": {"Product created successfully"},
					"404": {"User not found"},
					"500": {"Internal Server Error"},
				},
			},
			"get": {
				Description: "Get all products",
				Security:    bearer,
				Responses: map[string]response{
					"200": {"List of products"},
					"404": {"User not found"},
					"500": {"Internal Server Error"},
				},
			},
		},
		"/products/{id}": {
			"put": {
				Description: "Update a product",
				Security:    bearer,
				Parameters:  []parameter{productID, productBody},
				Responses: map[string]response{
					"200": {"Product updated successfully"},
					"403": {"Forbidden"},
					"404": {"Product not found"},
					"500": {"Internal Server Error"},
				},
			},
			"delete": {
				Description: "Delete a product",
				Security:    bearer,
				Parameters:  []parameter{productID},
				Responses: map[string]response{
					"200": {"Product deleted successfully"},
					"404": {"Product not found"},
					"500": {"Internal Server Error"},
				},
			},
		},
	},
}

// Handler serves the API description document.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(apiSpec); err != nil {
		log.Error().Err(err).Msg("Failed to encode API documentation")
	}
}
