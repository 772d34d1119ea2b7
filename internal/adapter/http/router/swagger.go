package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Invest Account Service API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Invest Account Service API",
    "version": "1.0.0"
  },
  "components": {
    "securitySchemes": {
      "BearerAuth": {
        "type": "http",
        "scheme": "bearer",
        "bearerFormat": "JWT"
      }
    },
    "schemas": {
      "Response": {
        "type": "object",
        "properties": {
          "success": {"type": "boolean"},
          "message": {"type": "string"},
          "data": {"type": "object", "nullable": true},
          "errors": {"type": "array", "items": {"type": "string"}}
        }
      },
      "RegisterRequest": {
        "type": "object",
        "required": ["name", "email", "password"],
        "properties": {
          "name": {"type": "string"},
          "email": {"type": "string", "format": "email"},
          "password": {"type": "string", "minLength": 8},
          "country": {"type": "string"},
          "phone": {"type": "string"},
          "address": {"type": "string"},
          "city": {"type": "string"},
          "postalCode": {"type": "string"},
          "dateOfBirth": {"type": "string", "example": "1990-01-01"}
        }
      },
      "LoginRequest": {
        "type": "object",
        "required": ["email", "password"],
        "properties": {
          "email": {"type": "string", "format": "email"},
          "password": {"type": "string"}
        }
      },
      "DepositRequest": {
        "type": "object",
        "required": ["amount", "method"],
        "properties": {
          "amount": {"type": "string", "example": "250.00"},
          "method": {"type": "string", "example": "bank_transfer"},
          "details": {"type": "object", "additionalProperties": {"type": "string"}}
        }
      },
      "WithdrawRequest": {
        "type": "object",
        "required": ["amount", "method"],
        "properties": {
          "amount": {"type": "string", "example": "100.00"},
          "method": {"type": "string", "example": "bank_transfer"},
          "details": {"type": "object", "additionalProperties": {"type": "string"}}
        }
      },
      "InvestRequest": {
        "type": "object",
        "required": ["planName", "amount", "durationDays", "expectedReturn"],
        "properties": {
          "planName": {"type": "string", "example": "Starter"},
          "amount": {"type": "string", "example": "500.00"},
          "durationDays": {"type": "integer", "example": 30},
          "expectedReturn": {"type": "string", "example": "12.5"}
        }
      },
      "SubmitVerificationRequest": {
        "type": "object",
        "properties": {
          "requestedStatus": {"type": "string", "enum": ["pending", "approved", "rejected"]},
          "idDocument": {"type": "string"},
          "proofOfAddress": {"type": "string"}
        }
      }
    }
  },
  "paths": {
    "/register": {
      "post": {
        "summary": "Register a new account",
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/RegisterRequest"}}}},
        "responses": {
          "201": {"description": "Account created"},
          "400": {"description": "Validation failed"},
          "409": {"description": "Email already registered"}
        }
      }
    },
    "/login": {
      "post": {
        "summary": "Authenticate and receive a session token",
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/LoginRequest"}}}},
        "responses": {
          "200": {"description": "Login successful"},
          "401": {"description": "Invalid credentials"}
        }
      }
    },
    "/profile": {
      "get": {
        "summary": "Fetch the authenticated profile with the computed balance",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {"description": "Profile"},
          "401": {"description": "Unauthorized"}
        }
      }
    },
    "/users": {
      "get": {
        "summary": "List all registered accounts",
        "security": [{"BearerAuth": []}],
        "responses": {"200": {"description": "Accounts"}}
      }
    },
    "/update-profile": {
      "post": {
        "summary": "Merge profile fields into the stored record",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {"description": "Profile updated"},
          "400": {"description": "Validation failed"}
        }
      }
    },
    "/submit-verification": {
      "post": {
        "summary": "Submit verification documents",
        "security": [{"BearerAuth": []}],
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/SubmitVerificationRequest"}}}},
        "responses": {"200": {"description": "Verification stored"}}
      }
    },
    "/deposit": {
      "post": {
        "summary": "Record a deposit",
        "security": [{"BearerAuth": []}],
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/DepositRequest"}}}},
        "responses": {
          "201": {"description": "Deposit recorded"},
          "400": {"description": "Validation failed"}
        }
      }
    },
    "/withdraw": {
      "post": {
        "summary": "Withdraw against the ledger balance",
        "security": [{"BearerAuth": []}],
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/WithdrawRequest"}}}},
        "responses": {
          "201": {"description": "Withdrawal recorded"},
          "422": {"description": "Insufficient balance"}
        }
      }
    },
    "/transactions": {
      "get": {
        "summary": "List the authenticated account's transactions",
        "security": [{"BearerAuth": []}],
        "responses": {"200": {"description": "Transactions"}}
      }
    },
    "/all-transactions": {
      "get": {
        "summary": "List transactions across all accounts",
        "security": [{"BearerAuth": []}],
        "responses": {"200": {"description": "Transactions"}}
      }
    },
    "/transaction-status": {
      "post": {
        "summary": "Update the status of one of the account's transactions",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {"description": "Status updated"},
          "404": {"description": "Transaction not found"}
        }
      }
    },
    "/invest": {
      "post": {
        "summary": "Open an investment plan",
        "security": [{"BearerAuth": []}],
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/InvestRequest"}}}},
        "responses": {
          "201": {"description": "Investment opened"},
          "422": {"description": "Insufficient balance"}
        }
      }
    },
    "/investments": {
      "get": {
        "summary": "List the authenticated account's investments",
        "security": [{"BearerAuth": []}],
        "responses": {"200": {"description": "Investments"}}
      }
    },
    "/all-investments": {
      "get": {
        "summary": "List investments across all accounts",
        "security": [{"BearerAuth": []}],
        "responses": {"200": {"description": "Investments"}}
      }
    },
    "/accrue-profits": {
      "post": {
        "summary": "Credit daily profits for the account's active plans",
        "security": [{"BearerAuth": []}],
        "responses": {"200": {"description": "Accrual summary"}}
      }
    }
  }
}`
