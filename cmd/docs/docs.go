// Package docs holds the swagger document served under /swagger.
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
        "/wallets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["wallets"],
                "summary": "List wallets",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListWalletsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallets"],
                "summary": "Create a new wallet",
                "parameters": [
                    {"description": "Wallet details", "name": "wallet", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateWalletRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.WalletResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Initial balance beyond the credit limit", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/wallets/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["wallets"],
                "summary": "Get a wallet by ID",
                "parameters": [{"type": "string", "description": "Wallet ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.WalletResponse"}},
                    "403": {"description": "Wallet belongs to another user", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Wallet not found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["wallets"],
                "summary": "Update a wallet",
                "parameters": [
                    {"type": "string", "description": "Wallet ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "wallet", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateWalletRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.WalletResponse"}},
                    "409": {"description": "Concurrent modification", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Current balance beyond the new credit limit", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["wallets"],
                "summary": "Delete a wallet and its transactions",
                "parameters": [{"type": "string", "description": "Wallet ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DeleteWalletResult"}},
                    "404": {"description": "Wallet not found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/wallets/{id}/reconcile": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["wallets"],
                "summary": "Reconcile a wallet balance",
                "parameters": [
                    {"type": "string", "description": "Wallet ID", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "default": false, "description": "Overwrite the stored balance", "name": "repair", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Reconciliation"}}
                }
            }
        },
        "/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List transactions",
                "parameters": [
                    {"type": "string", "name": "walletId", "in": "query"},
                    {"type": "string", "enum": ["INCOME", "EXPENSE", "TRANSFER"], "name": "type", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "format": "date", "name": "from", "in": "query"},
                    {"type": "string", "format": "date", "name": "to", "in": "query"},
                    {"type": "integer", "default": 20, "name": "limit", "in": "query"},
                    {"type": "string", "name": "nextToken", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListTransactionsResponse"}},
                    "400": {"description": "Invalid query parameters", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Record a transaction",
                "parameters": [
                    {"description": "Transaction details", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateTransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.LedgerResultResponse"}},
                    "400": {"description": "Invalid amount, date or fields", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Wallet not found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Insufficient funds or credit limit exceeded", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/transactions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Get a transaction by ID",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}},
                    "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Edit a transaction",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateTransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LedgerResultResponse"}},
                    "409": {"description": "Version mismatch", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "422": {"description": "Insufficient funds or credit limit exceeded", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Delete a transaction",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LedgerResultResponse"}},
                    "422": {"description": "Reversal would overdraw a wallet", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/reports/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Dashboard summary",
                "parameters": [
                    {"type": "string", "format": "date", "name": "from", "in": "query"},
                    {"type": "string", "format": "date", "name": "to", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/reports/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Category breakdown",
                "parameters": [
                    {"type": "string", "enum": ["INCOME", "EXPENSE"], "default": "EXPENSE", "name": "type", "in": "query"},
                    {"type": "string", "format": "date", "name": "from", "in": "query"},
                    {"type": "string", "format": "date", "name": "to", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/reports/calendar": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Monthly calendar",
                "parameters": [
                    {"type": "integer", "name": "year", "in": "query"},
                    {"type": "integer", "minimum": 1, "maximum": 12, "name": "month", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        }
    },
    "definitions": {
        "errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "dto.CreateWalletRequest": {
            "type": "object",
            "required": ["name", "walletType"],
            "properties": {
                "name": {"type": "string", "maxLength": 50},
                "walletType": {"type": "string", "enum": ["CASH", "BANK_ACCOUNT", "CREDIT_CARD", "SAVINGS", "INVESTMENT", "OTHER"]},
                "initialBalance": {"type": "string"},
                "creditLimit": {"type": "string"},
                "currencyCode": {"type": "string"}
            }
        },
        "dto.UpdateWalletRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "maxLength": 50},
                "walletType": {"type": "string", "enum": ["CASH", "BANK_ACCOUNT", "CREDIT_CARD", "SAVINGS", "INVESTMENT", "OTHER"]},
                "creditLimit": {"type": "string"},
                "clearCreditLimit": {"type": "boolean"},
                "currencyCode": {"type": "string"}
            }
        },
        "dto.WalletResponse": {
            "type": "object",
            "properties": {
                "walletID": {"type": "string"},
                "name": {"type": "string"},
                "walletType": {"type": "string"},
                "balance": {"type": "string"},
                "initialBalance": {"type": "string"},
                "creditLimit": {"type": "string"},
                "availableCredit": {"type": "string"},
                "currencyCode": {"type": "string"},
                "version": {"type": "integer"},
                "createdAt": {"type": "string"},
                "createdBy": {"type": "string"},
                "lastUpdatedAt": {"type": "string"},
                "lastUpdatedBy": {"type": "string"}
            }
        },
        "dto.ListWalletsResponse": {
            "type": "object",
            "properties": {
                "wallets": {"type": "array", "items": {"$ref": "#/definitions/dto.WalletResponse"}}
            }
        },
        "dto.DeleteWalletResult": {
            "type": "object",
            "properties": {
                "walletID": {"type": "string"},
                "deletedTransactions": {"type": "integer"},
                "adjustedWallets": {"type": "array", "items": {"$ref": "#/definitions/dto.WalletResponse"}}
            }
        },
        "domain.Reconciliation": {
            "type": "object",
            "properties": {
                "walletID": {"type": "string"},
                "storedBalance": {"type": "string"},
                "computedBalance": {"type": "string"},
                "drift": {"type": "string"},
                "transactionCount": {"type": "integer"},
                "repaired": {"type": "boolean"},
                "deferred": {"type": "boolean"}
            }
        },
        "dto.CreateTransactionRequest": {
            "type": "object",
            "required": ["walletID", "transactionType", "category"],
            "properties": {
                "walletID": {"type": "string"},
                "toWalletID": {"type": "string"},
                "amount": {"type": "string"},
                "transactionType": {"type": "string", "enum": ["INCOME", "EXPENSE", "TRANSFER"]},
                "category": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "reason": {"type": "string", "maxLength": 255},
                "notes": {"type": "string", "maxLength": 1000},
                "expectedReturnDate": {"type": "string", "format": "date"}
            }
        },
        "dto.UpdateTransactionRequest": {
            "type": "object",
            "properties": {
                "walletID": {"type": "string"},
                "toWalletID": {"type": "string"},
                "amount": {"type": "string"},
                "transactionType": {"type": "string", "enum": ["INCOME", "EXPENSE", "TRANSFER"]},
                "category": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "reason": {"type": "string"},
                "notes": {"type": "string"},
                "expectedReturnDate": {"type": "string", "format": "date"},
                "clearExpectedReturnDate": {"type": "boolean"},
                "version": {"type": "integer"}
            }
        },
        "dto.TransactionResponse": {
            "type": "object",
            "properties": {
                "transactionID": {"type": "string"},
                "walletID": {"type": "string"},
                "toWalletID": {"type": "string"},
                "amount": {"type": "string"},
                "transactionType": {"type": "string"},
                "category": {"type": "string"},
                "date": {"type": "string", "format": "date"},
                "reason": {"type": "string"},
                "notes": {"type": "string"},
                "expectedReturnDate": {"type": "string", "format": "date"},
                "version": {"type": "integer"}
            }
        },
        "dto.LedgerResultResponse": {
            "type": "object",
            "properties": {
                "transaction": {"$ref": "#/definitions/dto.TransactionResponse"},
                "wallets": {"type": "array", "items": {"$ref": "#/definitions/dto.WalletResponse"}}
            }
        },
        "dto.ListTransactionsResponse": {
            "type": "object",
            "properties": {
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}},
                "nextToken": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Monetra API",
	Description:      "Wallet balances, transactions and reports for personal finance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
