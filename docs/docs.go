// Package docs is the swagger description served under /swagger/.
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
        "/session": {
            "get": {
                "description": "Renders the current session as view blocks",
                "produces": ["application/json"],
                "tags": ["session"],
                "summary": "Get the page",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionView"}}}
            }
        },
        "/provider/detect": {
            "post": {
                "description": "Re-checks the configured keystore for a Solana wallet provider",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Probe for a wallet provider",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ProviderResponse"}}}
            }
        },
        "/wallet/connect": {
            "post": {
                "description": "Asks the provider for its account and stores the address",
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Connect wallet",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ConnectResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/wallet/disconnect": {
            "post": {
                "produces": ["application/json"],
                "tags": ["wallet"],
                "summary": "Disconnect wallet",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.ConnectResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/account": {
            "post": {
                "description": "Generates a fresh keypair held in memory for this session",
                "produces": ["application/json"],
                "tags": ["account"],
                "summary": "Create local account",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.CreateAccountResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/account/balance": {
            "post": {
                "description": "Reads the local account balance from devnet",
                "produces": ["application/json"],
                "tags": ["account"],
                "summary": "Refresh balance",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.BalanceResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/account/airdrop": {
            "post": {
                "description": "Requests 2 SOL from the devnet faucet and waits for confirmation",
                "produces": ["application/json"],
                "tags": ["account"],
                "summary": "Airdrop SOL",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AirdropResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/account/transactions": {
            "get": {
                "description": "Gets SOL transactions of the local account with filtering capability",
                "produces": ["application/json"],
                "tags": ["account"],
                "summary": "Get local account transactions",
                "parameters": [
                    {"type": "string", "description": "Transaction type: DEBIT or CREDIT", "name": "type", "in": "query"},
                    {"type": "string", "description": "Transaction ID", "name": "txId", "in": "query"},
                    {"type": "string", "description": "Start date (YYYY-MM-DD)", "name": "from", "in": "query"},
                    {"type": "string", "description": "End date (YYYY-MM-DD)", "name": "to", "in": "query"},
                    {"type": "string", "description": "Minimum amount in SOL", "name": "minAmount", "in": "query"},
                    {"type": "string", "description": "Maximum amount in SOL", "name": "maxAmount", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.HistoryResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/transfer": {
            "post": {
                "description": "Sends 2 SOL from the local account to the connected wallet. A failed send is reported in the body, not the status.",
                "produces": ["application/json"],
                "tags": ["transfer"],
                "summary": "Transfer to the connected wallet",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.TransferResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/transfer/dismiss": {
            "post": {
                "produces": ["application/json"],
                "tags": ["transfer"],
                "summary": "Close the transfer result",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionView"}}}
            }
        }
    },
    "definitions": {
        "model.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "code": {"type": "string"}}
        },
        "model.ProviderResponse": {
            "type": "object",
            "properties": {"found": {"type": "boolean"}}
        },
        "model.ConnectResponse": {
            "type": "object",
            "properties": {"connected": {"type": "boolean"}, "address": {"type": "string"}}
        },
        "model.CreateAccountResponse": {
            "type": "object",
            "properties": {"address": {"type": "string"}}
        },
        "model.BalanceResponse": {
            "type": "object",
            "properties": {"address": {"type": "string"}, "lamports": {"type": "integer"}, "sol": {"type": "string"}}
        },
        "model.AirdropResponse": {
            "type": "object",
            "properties": {"signature": {"type": "string"}, "lamports": {"type": "integer"}, "sol": {"type": "string"}}
        },
        "model.TransferResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "signature": {"type": "string"},
                "title": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "model.Transaction": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "txId": {"type": "string"},
                "from": {"type": "string"},
                "to": {"type": "string"},
                "amount": {"type": "string"},
                "feeSOL": {"type": "string"},
                "timestamp": {"type": "string"},
                "blockNumber": {"type": "integer"},
                "status": {"type": "string"}
            }
        },
        "model.HistoryResponse": {
            "type": "object",
            "properties": {
                "address": {"type": "string"},
                "total_received_SOL": {"type": "string"},
                "total_sent_SOL": {"type": "string"},
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/model.Transaction"}}
            }
        },
        "model.ActionBlock": {
            "type": "object",
            "properties": {"label": {"type": "string"}, "method": {"type": "string"}, "action": {"type": "string"}}
        },
        "model.AlertBlock": {
            "type": "object",
            "properties": {"variant": {"type": "string"}, "message": {"type": "string"}, "link": {"type": "string"}}
        },
        "model.SessionView": {
            "type": "object",
            "properties": {
                "state": {"type": "string"},
                "createButton": {"type": "object"},
                "accountCard": {"type": "object"},
                "connectButton": {"$ref": "#/definitions/model.ActionBlock"},
                "walletCard": {"type": "object"},
                "lowBalanceAlert": {"$ref": "#/definitions/model.AlertBlock"},
                "resultModal": {"type": "object"},
                "disconnectButton": {"$ref": "#/definitions/model.ActionBlock"},
                "installAlert": {"$ref": "#/definitions/model.AlertBlock"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Devnet Session API",
	Description:      "Local Solana devnet account, airdrop and transfer to a keystore wallet.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
