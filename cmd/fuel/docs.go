package main

// @title Fuel Service API
// @version 1.0
// @description Fuel tank ledger with receipts, refuelings and receiving integration, with full observability (logging, tracing, metrics)

// @host localhost:8085
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Tanks
// @tag.description Tank management and stock recomputation

// @tag.name Receipts
// @tag.description Fuel entering tanks

// @tag.name Refuelings
// @tag.description Fuel dispensed to equipment

// @tag.name Receiving
// @tag.description Receiving workflow integration

// @tag.name Health
// @tag.description Health check endpoints
