package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable API",
        "description": "Randomized weekly timetable generation",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetable", "description": "Timetable generation and export"},
        {"name": "System", "description": "Probes and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate a weekly timetable",
                "description": "Places each subject's weekly lectures on (day, slot, room) without faculty or room double-booking. Demand that cannot be placed is dropped silently.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ScheduledLecture"}}},
                    "500": {"description": "Generation failed", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/api/ai/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate a weekly timetable (proxy-compatible)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/GenerateTimetableAliasResponse"}},
                    "500": {"description": "Generation failed", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/api/v1/timetable/generate": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate a weekly timetable (versioned)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ScheduledLecture"}}},
                    "500": {"description": "Generation failed", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/api/v1/timetable/slots": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Build slot labels from institution settings",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/SlotSettingsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid settings", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/timetable/export": {
            "post": {
                "tags": ["Timetable"],
                "summary": "Generate a timetable and download it as CSV or PDF",
                "consumes": ["application/json"],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"in": "query", "name": "format", "type": "string", "enum": ["csv", "pdf"], "required": true},
                    {"in": "query", "name": "title", "type": "string", "required": false},
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}
                ],
                "responses": {
                    "200": {"description": "Timetable document", "schema": {"type": "file"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Exports disabled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubjectDemandRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "faculty": {"type": "string"},
                "lecturesPerWeek": {"type": "integer", "default": 1}
            }
        },
        "GenerateTimetableRequest": {
            "type": "object",
            "properties": {
                "subjects": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/SubjectDemandRequest"}
                },
                "days": {"type": "array", "items": {"type": "string"}},
                "slots": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ScheduledLecture": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "faculty": {"type": "string"},
                "room": {"type": "string"},
                "day": {"type": "string"},
                "slot": {"type": "string"}
            }
        },
        "GenerateTimetableAliasResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "timetable": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ScheduledLecture"}
                }
            }
        },
        "SlotSettingsRequest": {
            "type": "object",
            "properties": {
                "startTime": {"type": "string", "example": "09:00"},
                "slotDuration": {"type": "integer"},
                "slotsPerDay": {"type": "integer"},
                "breakAfterSlot": {"type": "integer"},
                "breakDuration": {"type": "integer"}
            }
        },
        "Failure": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "AI generation failed"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
