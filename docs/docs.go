// Package docs holds the OpenAPI document served under /api/swagger.
// Regenerate it with `swag init` from the module root.
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
		"/matches/{match_id}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Fetches the fixture of a match together with its derived status",
				"produces": [
					"application/json"
				],
				"tags": [
					"match"
				],
				"operationId": "GetMatch",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/matches/{match_id}/close": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Closes a started match once the referees have signed",
				"produces": [
					"application/json"
				],
				"tags": [
					"lifecycle"
				],
				"operationId": "CloseMatch",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/matches/{match_id}/delete": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Erases all match day data of a match. The fixture is kept.",
				"produces": [
					"application/json"
				],
				"tags": [
					"lifecycle"
				],
				"operationId": "DeleteMatchData",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					},
					{
						"description": "Confirmation",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controller.DeleteMatchDataRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/matches/{match_id}/lineup-approvals": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Lists the signed lineups of a match and whether it has been started",
				"produces": [
					"application/json"
				],
				"tags": [
					"approval"
				],
				"operationId": "GetLineupApprovals",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Signs the lineup of one venue",
				"produces": [
					"application/json"
				],
				"tags": [
					"approval"
				],
				"operationId": "ApproveLineup",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					},
					{
						"description": "Approval",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controller.LineupApprovalRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/matches/{match_id}/lineup-approvals/{venue}/signature": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Returns the stored signature of a venue as PNG",
				"produces": [
					"image/png"
				],
				"tags": [
					"approval"
				],
				"operationId": "GetLineupSignature",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "Hjemme or Ude",
						"name": "venue",
						"in": "path",
						"required": true
					},
					{
						"type": "string",
						"description": "1 to download as attachment",
						"name": "download",
						"in": "query",
						"required": false
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/matches/{match_id}/move-request": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Fetches the latest move request of a match and what the caller may do with it",
				"produces": [
					"application/json"
				],
				"tags": [
					"move-request"
				],
				"operationId": "GetLatestMoveRequest",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			},
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Proposes a new date and/or time for a match on behalf of the home team",
				"produces": [
					"application/json"
				],
				"tags": [
					"move-request"
				],
				"operationId": "CreateMoveRequest",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					},
					{
						"description": "Proposal",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controller.MoveRequestCreate"
						}
					}
				],
				"responses": {
					"201": {
						"description": "Created"
					}
				}
			}
		},
		"/matches/{match_id}/move-request/accept": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Away team accepts the pending move request",
				"produces": [
					"application/json"
				],
				"tags": [
					"move-request"
				],
				"operationId": "AcceptMoveRequest",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/matches/{match_id}/move-request/reject": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Away team rejects the pending move request",
				"produces": [
					"application/json"
				],
				"tags": [
					"move-request"
				],
				"operationId": "RejectMoveRequest",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					},
					{
						"description": "Reason",
						"name": "body",
						"in": "body",
						"required": false,
						"schema": {
							"$ref": "#/definitions/controller.MoveRequestReject"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/matches/{match_id}/referee-approvals": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Signs the match report for one referee seat",
				"produces": [
					"application/json"
				],
				"tags": [
					"approval"
				],
				"operationId": "ApproveReferee",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					},
					{
						"description": "Approval",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controller.RefereeApprovalRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/matches/{match_id}/reserves": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Replaces the reserve marks of one venue's lineup",
				"produces": [
					"application/json"
				],
				"tags": [
					"lineup"
				],
				"operationId": "SetReserves",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					},
					{
						"description": "Reserve jersey numbers",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controller.ReservesRequest"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/matches/{match_id}/start": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Starts a match once both lineups are signed",
				"produces": [
					"application/json"
				],
				"tags": [
					"lifecycle"
				],
				"operationId": "StartMatch",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/matches/{match_id}/status": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Derives the status of a match from its match day rows",
				"produces": [
					"application/json"
				],
				"tags": [
					"match"
				],
				"operationId": "GetMatchStatus",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/move-requests/pending": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Lists move requests awaiting the tournament authority, oldest first",
				"produces": [
					"application/json"
				],
				"tags": [
					"move-request"
				],
				"operationId": "GetPendingMoveRequests",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/move-requests/{request_id}/decide": {
			"post": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Tournament authority approves or rejects a move request",
				"produces": [
					"application/json"
				],
				"tags": [
					"move-request"
				],
				"operationId": "DecideMoveRequest",
				"parameters": [
					{
						"type": "string",
						"description": "Move request Id",
						"name": "request_id",
						"in": "path",
						"required": true
					},
					{
						"description": "Decision",
						"name": "body",
						"in": "body",
						"required": true,
						"schema": {
							"$ref": "#/definitions/controller.MoveRequestDecision"
						}
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/users/self": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Fetches the signed in user with the approved roles only",
				"produces": [
					"application/json"
				],
				"tags": [
					"user"
				],
				"operationId": "GetSelf",
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		},
		"/users/self/matches/{match_id}": {
			"get": {
				"security": [
					{
						"BearerAuth": []
					}
				],
				"description": "Fetches what the signed in user may do on a match",
				"produces": [
					"application/json"
				],
				"tags": [
					"user"
				],
				"operationId": "GetSelfMatchCapabilities",
				"parameters": [
					{
						"type": "integer",
						"description": "Match Id",
						"name": "match_id",
						"in": "path",
						"required": true
					}
				],
				"responses": {
					"200": {
						"description": "OK"
					}
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	},
	"definitions": {
		"controller.DeleteMatchDataRequest": {
			"type": "object"
		},
		"controller.LineupApprovalRequest": {
			"type": "object"
		},
		"controller.MoveRequestCreate": {
			"type": "object"
		},
		"controller.MoveRequestDecision": {
			"type": "object"
		},
		"controller.MoveRequestReject": {
			"type": "object"
		},
		"controller.RefereeApprovalRequest": {
			"type": "object"
		},
		"controller.ReservesRequest": {
			"type": "object"
		}
	}
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Match Day API",
	Description:      "Match day lifecycle of the league: lineup and referee sign-off, start and close gates, reserves and move requests.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
