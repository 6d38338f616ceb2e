// Package docs is generated by swaggo/swag. Regenerate with:
//
//	swag init -g cmd/ledger_backend/main.go -o cmd/docs
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
        "/accounts": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Creates an account with zero balances and no closed period",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "accounts"
                ],
                "summary": "Create a new account",
                "parameters": [
                    {
                        "description": "Account details",
                        "name": "account",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateAccountRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid input format or validation error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Failed to create account",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "accounts"
                ],
                "summary": "List accounts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.AccountResponse"
                            }
                        }
                    }
                }
            }
        },
        "/accounts/{accountID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "accounts"
                ],
                "summary": "Get an account by ID",
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "accountID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountResponse"
                        }
                    },
                    "404": {
                        "description": "Account not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/accounts/{accountID}/booklets": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "booklets"
                ],
                "summary": "Register a receipt booklet",
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "accountID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Numbering range",
                        "name": "booklet",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateBookletRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.BookletResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid range",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Range overlaps an existing booklet",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/accounts/{accountID}/credits": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Records money received into one or more ledger heads",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "Post a credit",
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "accountID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Client request id; replays return the original transaction",
                        "name": "Idempotency-Key",
                        "in": "header",
                        "type": "string"
                    },
                    {
                        "description": "Credit details",
                        "name": "transaction",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.PostTransactionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TransactionResponse"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "403": {
                        "description": "Override without admin role",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Account or ledger head not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Closed period, used receipt or duplicate request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/accounts/{accountID}/debits": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Moves money out of source heads into the target head",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "Post a debit",
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "accountID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Client request id; replays return the original transaction",
                        "name": "Idempotency-Key",
                        "in": "header",
                        "type": "string"
                    },
                    {
                        "description": "Debit details",
                        "name": "transaction",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.PostTransactionRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TransactionResponse"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "403": {
                        "description": "Override without admin role",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Closed period or duplicate request",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Insufficient balance",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/accounts/{accountID}/ledger-heads": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Adds a debit or credit head to the account with zero balances",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ledger-heads"
                ],
                "summary": "Create a ledger head",
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "accountID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Ledger head details",
                        "name": "head",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.CreateLedgerHeadRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LedgerHeadResponse"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Account not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Duplicate head name",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ledger-heads"
                ],
                "summary": "List the ledger heads of an account",
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "accountID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.LedgerHeadResponse"
                            }
                        }
                    }
                }
            }
        },
        "/accounts/{accountID}/ledger-heads/{ledgerHeadID}/recalculate": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "periods"
                ],
                "summary": "Recalculate one ledger head",
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "accountID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Ledger head ID",
                        "name": "ledgerHeadID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Start date",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.RecalculateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.RecalculationResponse"
                        }
                    }
                }
            }
        },
        "/accounts/{accountID}/open-period": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "periods"
                ],
                "summary": "Get the open period of an account",
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "accountID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.OpenPeriodResponse"
                        }
                    },
                    "404": {
                        "description": "No open period",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/accounts/{accountID}/periods/open": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "periods"
                ],
                "summary": "Open a month for an account",
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "accountID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Month to open",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.OpenPeriodRequest"
                        }
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Opened"
                    },
                    "409": {
                        "description": "Month is closed",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/accounts/{accountID}/periods/reopen": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Reopens every month after the new closing date; optionally recalculates afterwards",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "periods"
                ],
                "summary": "Move last_closed_date back",
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "accountID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "New closing date",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ReopenPeriodRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AccountResponse"
                        }
                    },
                    "400": {
                        "description": "Date not before the current closing date",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/accounts/{accountID}/recalculate": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "periods"
                ],
                "summary": "Recalculate every ledger head of an account",
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "accountID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Start date",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.RecalculateRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.RecalculationResponse"
                            }
                        }
                    }
                }
            }
        },
        "/accounts/{accountID}/transactions": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Newest first, paged with an opaque token",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "List transactions of an account",
                "parameters": [
                    {
                        "description": "Account ID",
                        "name": "accountID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "Page size",
                        "name": "limit",
                        "in": "query",
                        "type": "integer"
                    },
                    {
                        "description": "Token from the previous page",
                        "name": "nextToken",
                        "in": "query",
                        "type": "string"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ListTransactionsResponse"
                        }
                    }
                }
            }
        },
        "/booklets/{bookletID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "booklets"
                ],
                "summary": "Get a booklet with its free pages",
                "parameters": [
                    {
                        "description": "Booklet ID",
                        "name": "bookletID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.BookletResponse"
                        }
                    },
                    "404": {
                        "description": "Booklet not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/cheques/{chequeID}/cancel": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "cheques"
                ],
                "summary": "Cancel a pending cheque",
                "parameters": [
                    {
                        "description": "Cheque ID",
                        "name": "chequeID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ChequeResponse"
                        }
                    },
                    "409": {
                        "description": "Cheque not pending",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/cheques/{chequeID}/clear": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Completes the cheque transaction and applies it to bank balances",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "cheques"
                ],
                "summary": "Clear a pending cheque",
                "parameters": [
                    {
                        "description": "Cheque ID",
                        "name": "chequeID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ChequeResponse"
                        }
                    },
                    "409": {
                        "description": "Cheque not pending",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Insufficient bank balance",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/ledger-heads/{ledgerHeadID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ledger-heads"
                ],
                "summary": "Get a ledger head",
                "parameters": [
                    {
                        "description": "Ledger head ID",
                        "name": "ledgerHeadID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LedgerHeadResponse"
                        }
                    },
                    "404": {
                        "description": "Ledger head not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/ledger-heads/{ledgerHeadID}/snapshots": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ledger-heads"
                ],
                "summary": "List monthly balances of a ledger head",
                "parameters": [
                    {
                        "description": "Ledger head ID",
                        "name": "ledgerHeadID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.SnapshotResponse"
                            }
                        }
                    }
                }
            }
        },
        "/periods/close": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Closes the month for one account, or for every account when accountID is omitted",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "periods"
                ],
                "summary": "Close a month",
                "parameters": [
                    {
                        "description": "Month to close",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ClosePeriodRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ClosePeriodResponse"
                        }
                    },
                    "400": {
                        "description": "Future month",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "403": {
                        "description": "Admin role required",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Already closed or out of sequence",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/reconciliation/run": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "periods"
                ],
                "summary": "Run the reconciliation sweep now",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/domain.ReconciliationReport"
                        }
                    }
                }
            }
        },
        "/transactions/{transactionID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "Get a transaction with its items",
                "parameters": [
                    {
                        "description": "Transaction ID",
                        "name": "transactionID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TransactionResponse"
                        }
                    },
                    "404": {
                        "description": "Transaction not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Reverses the stored effect and posts the new content in one step",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "transactions"
                ],
                "summary": "Edit a completed transaction",
                "parameters": [
                    {
                        "description": "Transaction ID",
                        "name": "transactionID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "description": "New content",
                        "name": "transaction",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UpdateTransactionRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TransactionResponse"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Closed period",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "422": {
                        "description": "Insufficient balance",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Reverses its balance effect and deletes it; refused in a closed period",
                "tags": [
                    "transactions"
                ],
                "summary": "Void a transaction",
                "parameters": [
                    {
                        "description": "Transaction ID",
                        "name": "transactionID",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "Voided"
                    },
                    "404": {
                        "description": "Transaction not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "409": {
                        "description": "Closed period",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "domain.BalanceCorrection": {
            "type": "object",
            "properties": {
                "correctionID": {
                    "type": "string"
                },
                "accountID": {
                    "type": "string"
                },
                "ledgerHeadID": {
                    "type": "string"
                },
                "snapshotID": {
                    "type": "string"
                },
                "month": {
                    "type": "integer"
                },
                "year": {
                    "type": "integer"
                },
                "oldBalance": {
                    "type": "number"
                },
                "newBalance": {
                    "type": "number"
                },
                "correctedAt": {
                    "type": "string"
                }
            }
        },
        "domain.CashType": {
            "type": "string",
            "enum": [
                "cash",
                "bank",
                "cheque",
                "multiple",
                "other"
            ]
        },
        "domain.ChequeStatus": {
            "type": "string",
            "enum": [
                "pending",
                "cleared",
                "cancelled"
            ]
        },
        "domain.HeadType": {
            "type": "string",
            "enum": [
                "debit",
                "credit"
            ]
        },
        "domain.ReconciliationReport": {
            "type": "object",
            "properties": {
                "checked": {
                    "type": "integer"
                },
                "skipped": {
                    "type": "integer"
                },
                "failed": {
                    "type": "integer"
                },
                "corrections": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/domain.BalanceCorrection"
                    }
                },
                "startedAt": {
                    "type": "string"
                },
                "finishedAt": {
                    "type": "string"
                }
            }
        },
        "domain.Side": {
            "type": "string",
            "enum": [
                "+",
                "-"
            ]
        },
        "domain.TxStatus": {
            "type": "string",
            "enum": [
                "pending",
                "completed",
                "cancelled"
            ]
        },
        "domain.TxType": {
            "type": "string",
            "enum": [
                "credit",
                "debit"
            ]
        },
        "dto.AccountResponse": {
            "type": "object",
            "properties": {
                "accountID": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "cashBalance": {
                    "type": "number"
                },
                "bankBalance": {
                    "type": "number"
                },
                "closingBalance": {
                    "type": "number"
                },
                "lastClosedDate": {
                    "type": "string"
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                }
            }
        },
        "dto.BookletResponse": {
            "type": "object",
            "properties": {
                "bookletID": {
                    "type": "string"
                },
                "accountID": {
                    "type": "string"
                },
                "startNumber": {
                    "type": "integer"
                },
                "endNumber": {
                    "type": "integer"
                },
                "availablePages": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "isClosed": {
                    "type": "boolean"
                }
            }
        },
        "dto.ChequeRequest": {
            "type": "object",
            "required": [
                "chequeNumber"
            ],
            "properties": {
                "chequeNumber": {
                    "type": "string"
                },
                "bankName": {
                    "type": "string"
                }
            }
        },
        "dto.ChequeResponse": {
            "type": "object",
            "properties": {
                "chequeID": {
                    "type": "string"
                },
                "transactionID": {
                    "type": "string"
                },
                "chequeNumber": {
                    "type": "string"
                },
                "bankName": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/domain.ChequeStatus"
                },
                "clearedAt": {
                    "type": "string"
                }
            }
        },
        "dto.ClosePeriodRequest": {
            "type": "object",
            "required": [
                "month",
                "year"
            ],
            "properties": {
                "month": {
                    "type": "integer"
                },
                "year": {
                    "type": "integer"
                },
                "accountID": {
                    "type": "string"
                }
            }
        },
        "dto.ClosePeriodResponse": {
            "type": "object",
            "properties": {
                "results": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.PeriodCloseResultResponse"
                    }
                }
            }
        },
        "dto.CreateAccountRequest": {
            "type": "object",
            "required": [
                "name"
            ],
            "properties": {
                "name": {
                    "type": "string"
                }
            }
        },
        "dto.CreateBookletRequest": {
            "type": "object",
            "required": [
                "endNumber",
                "startNumber"
            ],
            "properties": {
                "startNumber": {
                    "type": "integer"
                },
                "endNumber": {
                    "type": "integer"
                }
            }
        },
        "dto.CreateLedgerHeadRequest": {
            "type": "object",
            "required": [
                "headType",
                "name"
            ],
            "properties": {
                "name": {
                    "type": "string"
                },
                "headType": {
                    "$ref": "#/definitions/domain.HeadType"
                }
            }
        },
        "dto.LedgerHeadResponse": {
            "type": "object",
            "properties": {
                "ledgerHeadID": {
                    "type": "string"
                },
                "accountID": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "headType": {
                    "$ref": "#/definitions/domain.HeadType"
                },
                "currentBalance": {
                    "type": "number"
                },
                "cashBalance": {
                    "type": "number"
                },
                "bankBalance": {
                    "type": "number"
                }
            }
        },
        "dto.ListTransactionsResponse": {
            "type": "object",
            "properties": {
                "transactions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.TransactionResponse"
                    }
                },
                "nextToken": {
                    "type": "string"
                }
            }
        },
        "dto.OpenPeriodRequest": {
            "type": "object",
            "required": [
                "month",
                "year"
            ],
            "properties": {
                "month": {
                    "type": "integer"
                },
                "year": {
                    "type": "integer"
                }
            }
        },
        "dto.OpenPeriodResponse": {
            "type": "object",
            "properties": {
                "accountID": {
                    "type": "string"
                },
                "month": {
                    "type": "integer"
                },
                "year": {
                    "type": "integer"
                }
            }
        },
        "dto.PeriodCloseResultResponse": {
            "type": "object",
            "properties": {
                "accountID": {
                    "type": "string"
                },
                "month": {
                    "type": "integer"
                },
                "year": {
                    "type": "integer"
                },
                "lastClosedDate": {
                    "type": "string"
                },
                "headsClosed": {
                    "type": "integer"
                },
                "error": {
                    "type": "string"
                }
            }
        },
        "dto.PostTransactionRequest": {
            "type": "object",
            "required": [
                "cashType",
                "splits",
                "txDate"
            ],
            "properties": {
                "cashType": {
                    "$ref": "#/definitions/domain.CashType"
                },
                "amount": {
                    "type": "number"
                },
                "cashAmount": {
                    "type": "number"
                },
                "bankAmount": {
                    "type": "number"
                },
                "txDate": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "splits": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.SplitRequest"
                    }
                },
                "targetLedgerHeadID": {
                    "type": "string"
                },
                "bookletID": {
                    "type": "string"
                },
                "receiptNumber": {
                    "type": "integer"
                },
                "cheque": {
                    "$ref": "#/definitions/dto.ChequeRequest"
                },
                "adminOverride": {
                    "type": "boolean"
                }
            }
        },
        "dto.RecalculateRequest": {
            "type": "object",
            "required": [
                "fromDate"
            ],
            "properties": {
                "fromDate": {
                    "type": "string"
                }
            }
        },
        "dto.RecalculationResponse": {
            "type": "object",
            "properties": {
                "ledgerHeadID": {
                    "type": "string"
                },
                "from": {
                    "type": "string"
                },
                "to": {
                    "type": "string"
                },
                "currentBalance": {
                    "type": "number"
                },
                "snapshots": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.SnapshotResponse"
                    }
                }
            }
        },
        "dto.ReopenPeriodRequest": {
            "type": "object",
            "required": [
                "newClosingDate"
            ],
            "properties": {
                "newClosingDate": {
                    "type": "string"
                },
                "recalculate": {
                    "type": "boolean"
                }
            }
        },
        "dto.SnapshotResponse": {
            "type": "object",
            "properties": {
                "ledgerHeadID": {
                    "type": "string"
                },
                "month": {
                    "type": "integer"
                },
                "year": {
                    "type": "integer"
                },
                "openingBalance": {
                    "type": "number"
                },
                "receipts": {
                    "type": "number"
                },
                "payments": {
                    "type": "number"
                },
                "closingBalance": {
                    "type": "number"
                },
                "cashInHand": {
                    "type": "number"
                },
                "cashInBank": {
                    "type": "number"
                },
                "isOpen": {
                    "type": "boolean"
                }
            }
        },
        "dto.SplitRequest": {
            "type": "object",
            "required": [
                "ledgerHeadID"
            ],
            "properties": {
                "ledgerHeadID": {
                    "type": "string"
                },
                "amount": {
                    "type": "number"
                },
                "cashAmount": {
                    "type": "number"
                },
                "bankAmount": {
                    "type": "number"
                }
            }
        },
        "dto.TransactionItemResponse": {
            "type": "object",
            "properties": {
                "itemID": {
                    "type": "string"
                },
                "ledgerHeadID": {
                    "type": "string"
                },
                "amount": {
                    "type": "number"
                },
                "cashAmount": {
                    "type": "number"
                },
                "bankAmount": {
                    "type": "number"
                },
                "side": {
                    "$ref": "#/definitions/domain.Side"
                }
            }
        },
        "dto.TransactionResponse": {
            "type": "object",
            "properties": {
                "transactionID": {
                    "type": "string"
                },
                "accountID": {
                    "type": "string"
                },
                "txType": {
                    "$ref": "#/definitions/domain.TxType"
                },
                "cashType": {
                    "$ref": "#/definitions/domain.CashType"
                },
                "amount": {
                    "type": "number"
                },
                "cashAmount": {
                    "type": "number"
                },
                "bankAmount": {
                    "type": "number"
                },
                "txDate": {
                    "type": "string"
                },
                "status": {
                    "$ref": "#/definitions/domain.TxStatus"
                },
                "bookletID": {
                    "type": "string"
                },
                "receiptNumber": {
                    "type": "integer"
                },
                "requiresRecalculation": {
                    "type": "boolean"
                },
                "description": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.TransactionItemResponse"
                    }
                },
                "createdAt": {
                    "type": "string"
                },
                "createdBy": {
                    "type": "string"
                }
            }
        },
        "dto.UpdateTransactionRequest": {
            "type": "object",
            "properties": {
                "txType": {
                    "$ref": "#/definitions/domain.TxType"
                }
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Ledger Period Engine API",
	Description:      "Posting, period closure, recalculation and reconciliation of monthly ledger balances.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
