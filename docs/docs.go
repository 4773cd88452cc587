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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Dependency health",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/projects": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "List projects",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"projects": {"type": "array", "items": {"$ref": "#/definitions/model.Project"}}}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Create a project",
                "parameters": [
                    {"description": "Project", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.ProjectRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Project"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/projects/{projectId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Get a project",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "projectId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Project"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "Rename a project",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "projectId", "in": "path", "required": true},
                    {"description": "Project", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.ProjectRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Project"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Projects"],
                "summary": "Delete a project",
                "description": "Delete the project, its songs and their stored files",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "projectId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/projects/{projectId}/songs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Projects"],
                "summary": "List project songs",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "projectId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"songs": {"type": "array", "items": {"$ref": "#/definitions/model.Song"}}}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/songs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Songs"],
                "summary": "List songs",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"songs": {"type": "array", "items": {"$ref": "#/definitions/model.Song"}}}}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Songs"],
                "summary": "Upload a song",
                "description": "Store the original track and create a song with pending jobs",
                "parameters": [
                    {"type": "file", "description": "Audio file (WAV, MP3, M4A, AAC, FLAC)", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Project ID", "name": "projectId", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Song"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/songs/{songId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Songs"],
                "summary": "Get a song",
                "parameters": [
                    {"type": "string", "description": "Song ID", "name": "songId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Song"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Songs"],
                "summary": "Delete a song",
                "description": "Remove the song and its stored files. Refused while a job is running.",
                "parameters": [
                    {"type": "string", "description": "Song ID", "name": "songId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/songs/{songId}/target": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Songs"],
                "summary": "Set routine type and target duration",
                "parameters": [
                    {"type": "string", "description": "Song ID", "name": "songId", "in": "path", "required": true},
                    {"description": "Routine", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.SetTargetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Song"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/songs/{songId}/tags": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Songs"],
                "summary": "Edit section tags",
                "description": "Apply tag edits in order. A null tag clears the section.",
                "parameters": [
                    {"type": "string", "description": "Song ID", "name": "songId", "in": "path", "required": true},
                    {"description": "Tag edits", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.SetTagsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Song"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "412": {"description": "Precondition Failed", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/songs/{songId}/preview": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Songs"],
                "summary": "Preview the cut plan",
                "description": "Compose the plan a generation would use, with optional overrides. Nothing is stored on the song.",
                "parameters": [
                    {"type": "string", "description": "Song ID", "name": "songId", "in": "path", "required": true},
                    {"description": "Overrides", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/model.PreviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.CutPlan"}},
                    "412": {"description": "Precondition Failed", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/songs/{songId}/analyze": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Start analysis",
                "parameters": [
                    {"type": "string", "description": "Song ID", "name": "songId", "in": "path", "required": true}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/model.JobStartResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/songs/{songId}/generate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Start cut generation",
                "description": "Compose the cut plan and dispatch it to the render worker",
                "parameters": [
                    {"type": "string", "description": "Song ID", "name": "songId", "in": "path", "required": true}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/model.JobStartResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "412": {"description": "Precondition Failed", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/songs/{songId}/jobs/{kind}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Jobs"],
                "summary": "Job status",
                "parameters": [
                    {"type": "string", "description": "Song ID", "name": "songId", "in": "path", "required": true},
                    {"enum": ["analysis", "generation"], "type": "string", "description": "Job kind", "name": "kind", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.JobStatusResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/songs/{songId}/download": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Downloads"],
                "summary": "Signed download URL",
                "parameters": [
                    {"type": "string", "description": "Song ID", "name": "songId", "in": "path", "required": true},
                    {"enum": ["original", "cut"], "type": "string", "description": "File", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.DownloadResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/downloads/batch": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Downloads"],
                "summary": "Signed cut URLs for several songs",
                "parameters": [
                    {"description": "Songs", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.BatchDownloadRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.BatchDownloadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/api/webhook/worker": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Workers"],
                "summary": "Advisory completion notification",
                "parameters": [
                    {"type": "string", "description": "Shared worker secret", "name": "X-Webhook-Secret", "in": "header", "required": true},
                    {"description": "Notification", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.WebhookRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.WebhookResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/internal/worker/songs/{songId}/analysis": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Workers"],
                "summary": "Analysis worker result",
                "parameters": [
                    {"type": "string", "description": "Shared worker secret", "name": "X-Webhook-Secret", "in": "header", "required": true},
                    {"type": "string", "description": "Song ID", "name": "songId", "in": "path", "required": true},
                    {"description": "Result", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.AnalysisResultRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.WorkerWriteResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/internal/worker/songs/{songId}/cut": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Workers"],
                "summary": "Render worker result",
                "parameters": [
                    {"type": "string", "description": "Shared worker secret", "name": "X-Webhook-Secret", "in": "header", "required": true},
                    {"type": "string", "description": "Song ID", "name": "songId", "in": "path", "required": true},
                    {"description": "Result", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CutResultRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.WorkerWriteResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.Project": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "name": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.ProjectRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 120}
            }
        },
        "model.Job": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string", "enum": ["analysis", "generation"]},
                "status": {"type": "string", "enum": ["pending", "running", "ready", "failed"]},
                "error": {"type": "string"},
                "plan": {"$ref": "#/definitions/model.CutPlan"},
                "createdAt": {"type": "string"},
                "startedAt": {"type": "string"},
                "completedAt": {"type": "string"}
            }
        },
        "model.RawSection": {
            "type": "object",
            "required": ["label"],
            "properties": {
                "label": {"type": "string"},
                "start": {"type": "number", "minimum": 0},
                "end": {"type": "number"}
            }
        },
        "model.SongAnalysis": {
            "type": "object",
            "properties": {
                "sections": {"type": "array", "items": {"$ref": "#/definitions/model.RawSection"}},
                "beats": {"type": "array", "items": {"type": "number"}},
                "downbeats": {"type": "array", "items": {"type": "number"}},
                "bpm": {"type": "number"}
            }
        },
        "model.TagAssignment": {
            "type": "object",
            "required": ["section", "tag"],
            "properties": {
                "section": {"type": "string"},
                "tag": {"type": "string", "enum": ["MUST", "KEEP", "SKIP", "OPEN", "FINALE"]}
            }
        },
        "model.TagEdit": {
            "type": "object",
            "required": ["section"],
            "properties": {
                "section": {"type": "string", "maxLength": 64},
                "tag": {"type": "string", "enum": ["MUST", "KEEP", "SKIP", "OPEN", "FINALE"]}
            }
        },
        "model.CutMetadata": {
            "type": "object",
            "properties": {
                "sections_used": {"type": "array", "items": {"type": "string"}},
                "crossfade_points": {"type": "array", "items": {"type": "number"}},
                "tempo_adjustment_pct": {"type": "number"},
                "final_duration_ms": {"type": "integer"}
            }
        },
        "model.CutResult": {
            "type": "object",
            "properties": {
                "storageKey": {"type": "string"},
                "durationMs": {"type": "integer"},
                "metadata": {"$ref": "#/definitions/model.CutMetadata"}
            }
        },
        "model.Song": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "projectId": {"type": "string"},
                "userId": {"type": "string"},
                "originalFilename": {"type": "string"},
                "storageKey": {"type": "string"},
                "originalDurationMs": {"type": "integer"},
                "bpm": {"type": "number"},
                "analysis": {"$ref": "#/definitions/model.SongAnalysis"},
                "routineType": {"type": "string", "enum": ["solo", "duo", "small_group", "large_group", "production", "custom"]},
                "targetDurationMs": {"type": "integer"},
                "sectionTags": {"type": "array", "items": {"$ref": "#/definitions/model.TagAssignment"}},
                "analysisJob": {"$ref": "#/definitions/model.Job"},
                "cutJob": {"$ref": "#/definitions/model.Job"},
                "cut": {"$ref": "#/definitions/model.CutResult"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "model.SectionRef": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "label": {"type": "string"},
                "start": {"type": "number"},
                "end": {"type": "number"},
                "playStart": {"type": "number"},
                "playEnd": {"type": "number"}
            }
        },
        "model.Warning": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "model.CutPlan": {
            "type": "object",
            "properties": {
                "sections": {"type": "array", "items": {"$ref": "#/definitions/model.SectionRef"}},
                "crossfadePoints": {"type": "array", "items": {"type": "number"}},
                "crossfadeSeconds": {"type": "number"},
                "tempoAdjustmentPct": {"type": "number"},
                "rawDurationMs": {"type": "integer"},
                "plannedDurationMs": {"type": "integer"},
                "targetDurationMs": {"type": "integer"},
                "mode": {"type": "string", "enum": ["auto", "manual"]},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/model.Warning"}}
            }
        },
        "model.SetTargetRequest": {
            "type": "object",
            "required": ["routineType"],
            "properties": {
                "routineType": {"type": "string", "enum": ["solo", "duo", "small_group", "large_group", "production", "custom"]},
                "targetDurationMs": {"type": "integer", "minimum": 10000, "maximum": 900000}
            }
        },
        "model.SetTagsRequest": {
            "type": "object",
            "required": ["tags"],
            "properties": {
                "tags": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/model.TagEdit"}}
            }
        },
        "model.PreviewRequest": {
            "type": "object",
            "properties": {
                "tags": {"type": "array", "items": {"$ref": "#/definitions/model.TagAssignment"}},
                "targetDurationMs": {"type": "integer", "minimum": 1000}
            }
        },
        "model.JobStartResponse": {
            "type": "object",
            "properties": {
                "songId": {"type": "string"},
                "jobId": {"type": "string"},
                "kind": {"type": "string"},
                "status": {"type": "string"},
                "plan": {"$ref": "#/definitions/model.CutPlan"},
                "startedAt": {"type": "string"}
            }
        },
        "model.JobStatusResponse": {
            "type": "object",
            "properties": {
                "songId": {"type": "string"},
                "jobId": {"type": "string"},
                "kind": {"type": "string"},
                "status": {"type": "string"},
                "error": {"type": "string"},
                "plan": {"$ref": "#/definitions/model.CutPlan"},
                "startedAt": {"type": "string"},
                "completedAt": {"type": "string"}
            }
        },
        "model.DownloadResponse": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "filename": {"type": "string"}
            }
        },
        "model.BatchDownloadRequest": {
            "type": "object",
            "required": ["songIds"],
            "properties": {
                "songIds": {"type": "array", "minItems": 1, "maxItems": 100, "items": {"type": "string"}}
            }
        },
        "model.BatchDownloadItem": {
            "type": "object",
            "properties": {
                "songId": {"type": "string"},
                "url": {"type": "string"},
                "filename": {"type": "string"}
            }
        },
        "model.BatchDownloadResponse": {
            "type": "object",
            "properties": {
                "downloads": {"type": "array", "items": {"$ref": "#/definitions/model.BatchDownloadItem"}}
            }
        },
        "model.WebhookRequest": {
            "type": "object",
            "required": ["song_id", "event"],
            "properties": {
                "song_id": {"type": "string"},
                "event": {"type": "string"},
                "payload": {"type": "object"}
            }
        },
        "model.WebhookResponse": {
            "type": "object",
            "properties": {
                "received": {"type": "boolean"}
            }
        },
        "model.AnalysisResultRequest": {
            "type": "object",
            "required": ["job_id", "status"],
            "properties": {
                "job_id": {"type": "string"},
                "status": {"type": "string", "enum": ["ready", "failed"]},
                "analysis": {"$ref": "#/definitions/model.SongAnalysis"},
                "duration_ms": {"type": "integer"},
                "error": {"type": "string"}
            }
        },
        "model.CutResultRequest": {
            "type": "object",
            "required": ["job_id", "status"],
            "properties": {
                "job_id": {"type": "string"},
                "status": {"type": "string", "enum": ["ready", "failed"]},
                "cut_storage_key": {"type": "string"},
                "cut_duration_ms": {"type": "integer"},
                "cut_metadata": {"$ref": "#/definitions/model.CutMetadata"},
                "error": {"type": "string"}
            }
        },
        "model.WorkerWriteResponse": {
            "type": "object",
            "properties": {
                "applied": {"type": "boolean"}
            }
        },
        "response.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/response.ErrorDetail"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Enter your bearer token in the format **Bearer &lt;token&gt;**",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "ChoreoSync API",
	Description:      "Backend API for ChoreoSync: song analysis, section tagging and competition cut planning.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
