// Package docs holds the OpenAPI description served at /swagger.
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
        "/v1/flights/cheapest": {
            "get": {
                "description": "Queries the flight-search provider once and returns its first best round-trip offer.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "flights"
                ],
                "summary": "Cheapest round-trip flight",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Departure airport code, e.g. FRA",
                        "name": "departure_id",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Arrival airport code, e.g. AUS",
                        "name": "arrival_id",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "format": "date",
                        "description": "Outbound date, YYYY-MM-DD",
                        "name": "outbound_date",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "format": "date",
                        "description": "Return date, YYYY-MM-DD, not before outbound_date",
                        "name": "return_date",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/flight.SearchResult"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "502": {
                        "description": "Bad Gateway",
                        "schema": {
                            "$ref": "#/definitions/flight.SearchResult"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "flight.FlightOffer": {
            "type": "object",
            "properties": {
                "booking_token": {
                    "type": "string"
                },
                "flightId": {
                    "type": "string"
                },
                "price": {
                    "type": "number"
                },
                "segments": {
                    "type": "array",
                    "items": {
                        "type": "object"
                    }
                }
            }
        },
        "flight.SearchResult": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/flight.FlightOffer"
                },
                "kind": {
                    "type": "string",
                    "enum": [
                        "TRANSPORT_ERROR",
                        "HTTP_STATUS_ERROR",
                        "PAYLOAD_PARSE_ERROR",
                        "PROVIDER_ERROR",
                        "NO_RESULTS",
                        "INCOMPLETE_DATA"
                    ]
                },
                "message": {
                    "type": "string"
                },
                "search_id": {
                    "type": "string"
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "success",
                        "failed"
                    ]
                }
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
	Title:            "Flight Search API",
	Description:      "Cheapest round-trip flight lookup backed by the SerpApi google_flights engine.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
