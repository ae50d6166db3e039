// Package docs holds the OpenAPI description of the course API served under /swagger.
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
        "/courses": {
            "get": {
                "description": "Get every course with its lessons",
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "List courses",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Course"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            },
            "post": {
                "description": "Create a new course. The identifier is normally generated by the client.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Create a course",
                "parameters": [
                    {
                        "description": "Course creation request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.CreateCourseRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/models.CreateCourseResponse"}
                    },
                    "400": {
                        "description": "Invalid request body",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "413": {
                        "description": "Request body too large",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "500": {
                        "description": "Duplicate identifier or store failure",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/courses/{id}": {
            "delete": {
                "description": "Delete a course and its lessons. Deleting an unknown course succeeds.",
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Delete a course",
                "parameters": [
                    {"type": "string", "description": "Course ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/models.SuccessResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            },
            "patch": {
                "description": "Merge any subset of title, description and lessons over the stored course",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Update a course",
                "parameters": [
                    {"type": "string", "description": "Course ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Course update request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.UpdateCourseRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/models.SuccessResponse"}
                    },
                    "400": {
                        "description": "Invalid request body",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "404": {
                        "description": "Course not found",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "models.Course": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "lessons": {"type": "array", "items": {"$ref": "#/definitions/models.Lesson"}}
            }
        },
        "models.Lesson": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "type": {"$ref": "#/definitions/models.LessonType"},
                "content": {"type": "string"},
                "fileName": {"type": "string"}
            }
        },
        "models.LessonType": {
            "type": "string",
            "enum": ["youtube", "file"],
            "x-enum-varnames": ["LessonTypeYouTube", "LessonTypeFile"]
        },
        "models.CreateCourseRequest": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "k3j9x0a1b"},
                "title": {"type": "string", "example": "Linear algebra"},
                "description": {"type": "string", "example": "Lecture recordings and notes"},
                "lessons": {"type": "array", "items": {"$ref": "#/definitions/models.Lesson"}}
            }
        },
        "models.UpdateCourseRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "lessons": {"type": "array", "items": {"$ref": "#/definitions/models.Lesson"}}
            }
        },
        "models.CreateCourseResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "id": {"type": "string"}
            }
        },
        "models.SuccessResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Study shelf course API",
	Description:      "Stores courses and their lessons for the study shelf client",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
