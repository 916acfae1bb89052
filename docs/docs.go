package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "SupportWise Insights API",
    "description": "Natural-language analytics over support tickets: metrics summaries, semantic search insights and dashboard data.",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/healthz": {
      "get": {
        "tags": ["health"],
        "summary": "Health check",
        "produces": ["application/json"],
        "responses": {
          "200": {"description": "OK"},
          "503": {"description": "Database unavailable", "schema": {"$ref": "#/definitions/errorResponse"}}
        }
      }
    },
    "/api/chat/ask": {
      "post": {
        "tags": ["chat"],
        "summary": "Ask a question about support tickets",
        "consumes": ["application/json"],
        "produces": ["application/json"],
        "parameters": [
          {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ChatAskRequest"}}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/AnswerResult"}},
          "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
          "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
        }
      }
    },
    "/api/search/insights": {
      "post": {
        "tags": ["search"],
        "summary": "Summarize tickets similar to a query",
        "consumes": ["application/json"],
        "produces": ["application/json"],
        "parameters": [
          {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/SearchInsightsRequest"}}
        ],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/InsightsResult"}},
          "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
          "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
        }
      }
    },
    "/api/dashboard/metrics": {
      "get": {
        "tags": ["dashboard"],
        "summary": "Dashboard metrics",
        "produces": ["application/json"],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/MetricsSnapshot"}},
          "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
        }
      }
    },
    "/api/dashboard/charts/daily": {
      "get": {
        "tags": ["dashboard"],
        "summary": "Daily ticket volume chart",
        "produces": ["image/svg+xml"],
        "responses": {
          "200": {"description": "SVG document"},
          "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errorResponse"}}
        }
      }
    }
  },
  "definitions": {
    "errorResponse": {
      "type": "object",
      "properties": {"error": {"type": "string"}}
    },
    "ChatAskRequest": {
      "type": "object",
      "required": ["message"],
      "properties": {"message": {"type": "string"}}
    },
    "SearchInsightsRequest": {
      "type": "object",
      "required": ["query"],
      "properties": {"query": {"type": "string"}, "k": {"type": "integer", "minimum": 1}}
    },
    "RetrievedMatch": {
      "type": "object",
      "properties": {
        "ticket_id": {"type": "string"},
        "subject": {"type": "string"},
        "description": {"type": "string"},
        "similarity": {"type": "number"}
      }
    },
    "MetricsSnapshot": {
      "type": "object",
      "properties": {
        "daily": {"type": "array", "items": {"type": "object", "properties": {"day": {"type": "string"}, "count": {"type": "integer"}}}},
        "status": {"type": "array", "items": {"type": "object", "properties": {"status": {"type": "string"}, "count": {"type": "integer"}}}},
        "priority": {"type": "array", "items": {"type": "object", "properties": {"priority": {"type": "string"}, "count": {"type": "integer"}}}},
        "tags": {"type": "array", "items": {"type": "object", "properties": {"tag": {"type": "string"}, "count": {"type": "integer"}}}}
      }
    },
    "AnswerResult": {
      "type": "object",
      "properties": {
        "route": {"type": "string", "enum": ["metrics", "semantic"]},
        "answer": {"type": "string"},
        "metrics": {"$ref": "#/definitions/MetricsSnapshot"},
        "matches": {"type": "array", "items": {"$ref": "#/definitions/RetrievedMatch"}}
      }
    },
    "InsightsResult": {
      "type": "object",
      "properties": {
        "query": {"type": "string"},
        "matches": {"type": "array", "items": {"$ref": "#/definitions/RetrievedMatch"}},
        "summary": {"type": "string"}
      }
    }
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
